package repository

import (
	"context"
	"fmt"
	"sync"

	"participation-tracker/internal/biddingerrors"
	model "participation-tracker/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the read side of the auction store used to build a user's participation
type AuctionDB interface {
	// FindBidGroupsByBidder returns every bid group containing at least one bid by userID.
	FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error)
	// FindAuctionsByIDs returns the auctions with the given IDs. Unknown IDs are skipped.
	FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu         sync.RWMutex
	auctions   map[string]model.Auction   // key: auctionID -> value: auction
	bidGroups  map[string]*model.BidGroup // key: auctionID -> value: bid group
	groupOrder []string                   // auctionIDs in the order their groups were created
}

// Compile-time interface check.
var _ AuctionDB = (*MemoryRepo)(nil)

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions:  make(map[string]model.Auction),
		bidGroups: make(map[string]*model.BidGroup),
	}
}

// FindBidGroupsByBidder returns all bid groups the user has bid in
func (r *MemoryRepo) FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find bid groups for user %s: %w", userID, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := []model.BidGroup{}
	for _, auctionID := range r.groupOrder {
		group := r.bidGroups[auctionID]
		for _, b := range group.Bids {
			if b.BidderID == userID {
				groups = append(groups, copyGroup(group))
				break
			}
		}
	}
	return groups, nil
}

// FindAuctionsByIDs returns the auctions for the given IDs, in request order
func (r *MemoryRepo) FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("find auctions by ids: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(ids))
	for _, id := range ids {
		if auction, ok := r.auctions[id]; ok {
			auction.Images = append([]string(nil), auction.Images...)
			auctions = append(auctions, auction)
		}
	}
	return auctions, nil
}

// AddAuction adds or replaces an auction. Used for seeding and tests.
func (r *MemoryRepo) AddAuction(auction model.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = auction
}

// RecordBid appends a bid to the auction's group and refreshes the cached leader,
// the way the write path of the store keeps HighestBid/HighestBidder current.
// Used for seeding and tests.
func (r *MemoryRepo) RecordBid(auctionID string, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("record bid for auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}

	group, ok := r.bidGroups[auctionID]
	if !ok {
		group = &model.BidGroup{AuctionID: auctionID}
		r.bidGroups[auctionID] = group
		r.groupOrder = append(r.groupOrder, auctionID)
	}

	group.Bids = append(group.Bids, bid)
	group.TotalBids = len(group.Bids)
	if group.HighestBidder == "" || bid.BidAmount > group.HighestBid {
		group.HighestBid = bid.BidAmount
		group.HighestBidder = bid.BidderID
	}
	return nil
}

// PutBidGroup stores a bid group verbatim, cached leader included. Used for tests.
func (r *MemoryRepo) PutBidGroup(group model.BidGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bidGroups[group.AuctionID]; !ok {
		r.groupOrder = append(r.groupOrder, group.AuctionID)
	}
	g := copyGroup(&group)
	r.bidGroups[group.AuctionID] = &g
}

func copyGroup(group *model.BidGroup) model.BidGroup {
	g := *group
	g.Bids = append([]model.Bid(nil), group.Bids...)
	return g
}
