package bidding

import (
	"context"
	"fmt"
	"time"

	"participation-tracker/internal/biddingerrors"
	"participation-tracker/internal/metrics"
	"participation-tracker/internal/models"
	"participation-tracker/internal/reconcile"
	"participation-tracker/internal/repository"
	"participation-tracker/utils"
)

// ParticipationService builds a user's view of every auction they bid on
type ParticipationService struct {
	repo repository.AuctionDB
	now  func() time.Time
}

// NewParticipationService creates a new ParticipationService instance
func NewParticipationService(repo repository.AuctionDB) *ParticipationService {
	return &ParticipationService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to compute time left. Used in tests.
func (s *ParticipationService) WithClock(now func() time.Time) *ParticipationService {
	s.now = now
	return s
}

// GetParticipation loads the user's bid history and the auctions it touches,
// reconciles them at the current instant and partitions the result.
// Either the whole participation is returned or an error; never partial data.
func (s *ParticipationService) GetParticipation(ctx context.Context, userID string) (models.Participation, error) {
	groups, err := s.LoadBidHistory(ctx, userID)
	if err != nil {
		return models.Participation{}, err
	}

	auctions, err := s.LoadAuctions(ctx, auctionIDs(groups))
	if err != nil {
		return models.Participation{}, err
	}

	if err := ctx.Err(); err != nil {
		return models.Participation{}, fmt.Errorf("service: participation for user %s aborted: %w", userID, err)
	}

	s.probeLeaderCache(userID, groups)

	views := reconcile.Reconcile(userID, auctions, groups, s.now())
	metrics.RecordParticipation(len(views))
	return reconcile.Partition(views), nil
}

// LoadBidHistory returns every bid group the user has bid in
func (s *ParticipationService) LoadBidHistory(ctx context.Context, userID string) ([]models.BidGroup, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrUnauthenticated)
	}

	groups, err := s.repo.FindBidGroupsByBidder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load bid history for user %s: %w", userID, err)
	}
	if groups == nil {
		groups = []models.BidGroup{}
	}
	return groups, nil
}

// LoadAuctions returns the auctions for the given IDs. Duplicate and empty IDs
// are dropped; with nothing left to look up the store is not queried at all.
func (s *ParticipationService) LoadAuctions(ctx context.Context, ids []string) ([]models.Auction, error) {
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return []models.Auction{}, nil
	}

	auctions, err := s.repo.FindAuctionsByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load %d auctions: %w", len(unique), err)
	}
	if auctions == nil {
		auctions = []models.Auction{}
	}
	return auctions, nil
}

// probeLeaderCache logs bid groups whose cached leader no longer matches their bids.
// The reconciled view still uses the cached values.
func (s *ParticipationService) probeLeaderCache(userID string, groups []models.BidGroup) {
	for _, g := range groups {
		check := reconcile.CheckLeader(g)
		if check.Consistent {
			continue
		}
		metrics.RecordLeaderDrift()
		utils.Warn("ParticipationService: cached leader disagrees with bids", map[string]any{
			"user_id":         userID,
			"auction_id":      check.AuctionID,
			"cached_bid":      check.CachedBid,
			"cached_bidder":   check.CachedBidder,
			"computed_bid":    check.ComputedBid,
			"computed_bidder": check.ComputedBidder,
		})
	}
}

func auctionIDs(groups []models.BidGroup) []string {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.AuctionID)
	}
	return ids
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
