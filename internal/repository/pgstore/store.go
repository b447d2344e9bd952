// Package pgstore implements the auction read store on PostgreSQL.
package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	model "participation-tracker/internal/models"
	"participation-tracker/internal/repository"
)

// Store implements repository.AuctionDB using PostgreSQL.
type Store struct {
	pool *Pool
}

// NewStore creates a new Store.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Compile-time interface check.
var _ repository.AuctionDB = (*Store)(nil)

// FindBidGroupsByBidder returns every bid group the user has bid in, with all
// of the group's bids (not only the user's) in bid time order.
func (s *Store) FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error) {
	query := `
		SELECT g.auction_id, g.highest_bid, g.highest_bidder, g.total_bids,
			array_agg(b.bidder_id ORDER BY b.bid_time, b.id),
			array_agg(b.bid_amount ORDER BY b.bid_time, b.id),
			array_agg(b.bid_time ORDER BY b.bid_time, b.id)
		FROM bid_groups g
		JOIN bids b ON b.auction_id = g.auction_id
		WHERE EXISTS (
			SELECT 1 FROM bids mine
			WHERE mine.auction_id = g.auction_id AND mine.bidder_id = $1
		)
		GROUP BY g.auction_id, g.highest_bid, g.highest_bidder, g.total_bids
		ORDER BY g.auction_id
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, repository.StoreError(ctx, "postgres "+repository.OpFindBidGroups, err)
	}
	defer rows.Close()

	groups, err := scanBidGroups(rows)
	if err != nil {
		return nil, repository.StoreError(ctx, "postgres "+repository.OpFindBidGroups, err)
	}
	return groups, nil
}

// FindAuctionsByIDs returns the auctions whose id is in ids. An empty list
// returns nothing without querying.
func (s *Store) FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error) {
	if len(ids) == 0 {
		return []model.Auction{}, nil
	}

	query := `
		SELECT id, title, description, images, status, starting_price, end_time, total_quantity
		FROM auctions
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, repository.StoreError(ctx, "postgres "+repository.OpFindAuctions, err)
	}
	defer rows.Close()

	auctions, err := scanAuctions(rows)
	if err != nil {
		return nil, repository.StoreError(ctx, "postgres "+repository.OpFindAuctions, err)
	}
	return auctions, nil
}

// scanBidGroups scans aggregated bid group rows.
func scanBidGroups(rows pgx.Rows) ([]model.BidGroup, error) {
	groups := []model.BidGroup{}

	for rows.Next() {
		var g model.BidGroup
		var bidders []string
		var amounts []float64
		var times []time.Time

		err := rows.Scan(
			&g.AuctionID,
			&g.HighestBid,
			&g.HighestBidder,
			&g.TotalBids,
			&bidders,
			&amounts,
			&times,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bid group row: %w", err)
		}

		g.Bids = make([]model.Bid, len(bidders))
		for i := range bidders {
			g.Bids[i] = model.Bid{BidderID: bidders[i], BidAmount: amounts[i], BidTime: times[i].UTC()}
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bid group rows: %w", err)
	}
	return groups, nil
}

// scanAuctions scans multiple rows into a slice of Auction.
func scanAuctions(rows pgx.Rows) ([]model.Auction, error) {
	auctions := []model.Auction{}

	for rows.Next() {
		var a model.Auction
		var status string

		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.Images,
			&status,
			&a.StartingPrice,
			&a.EndTime,
			&a.TotalQuantity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan auction row: %w", err)
		}

		a.Status = model.AuctionStatus(status)
		a.EndTime = a.EndTime.UTC()
		auctions = append(auctions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auction rows: %w", err)
	}
	return auctions, nil
}
