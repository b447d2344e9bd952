package repository

import (
	"context"
	"fmt"
	"time"

	"participation-tracker/internal/biddingerrors"
	"participation-tracker/internal/metrics"
	model "participation-tracker/internal/models"
)

// Store operation names used in metrics and errors
const (
	OpFindBidGroups = "find_bid_groups"
	OpFindAuctions  = "find_auctions"
)

// InstrumentedDB records query latency and failures for any AuctionDB
type InstrumentedDB struct {
	db      AuctionDB
	backend string
}

// Compile-time interface check.
var _ AuctionDB = (*InstrumentedDB)(nil)

// NewInstrumentedDB wraps db, labelling its metrics with backend
func NewInstrumentedDB(db AuctionDB, backend string) *InstrumentedDB {
	return &InstrumentedDB{db: db, backend: backend}
}

// FindBidGroupsByBidder delegates to the wrapped store
func (i *InstrumentedDB) FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error) {
	start := time.Now()
	groups, err := i.db.FindBidGroupsByBidder(ctx, userID)
	metrics.RecordStoreQuery(i.backend, OpFindBidGroups, time.Since(start).Seconds(), err)
	return groups, err
}

// FindAuctionsByIDs delegates to the wrapped store
func (i *InstrumentedDB) FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error) {
	start := time.Now()
	auctions, err := i.db.FindAuctionsByIDs(ctx, ids)
	metrics.RecordStoreQuery(i.backend, OpFindAuctions, time.Since(start).Seconds(), err)
	return auctions, err
}

// StoreError classifies a failed store call. A cancelled or expired context
// is reported as such; anything else is a transient store failure.
func StoreError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	return fmt.Errorf("%s: %w: %w", op, biddingerrors.ErrStoreUnavailable, err)
}
