package reconcile

import (
	model "participation-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const monetaryPrecision = 2

// LeaderCheck compares a group's cached leader with the one derived from its raw bids
type LeaderCheck struct {
	AuctionID      string
	CachedBid      float64
	CachedBidder   string
	ComputedBid    float64
	ComputedBidder string
	Consistent     bool
}

// CheckLeader recomputes the leading bid from the raw bid list. Amounts are
// compared at cent precision; equal amounts go to the earlier bid.
// Reconcile never uses the result, it only exists to surface cache drift.
func CheckLeader(group model.BidGroup) LeaderCheck {
	check := LeaderCheck{
		AuctionID:    group.AuctionID,
		CachedBid:    group.HighestBid,
		CachedBidder: group.HighestBidder,
	}

	if len(group.Bids) == 0 {
		check.Consistent = group.HighestBidder == "" && roundMoney(group.HighestBid).IsZero()
		return check
	}

	leader := group.Bids[0]
	for _, b := range group.Bids[1:] {
		cmp := roundMoney(b.BidAmount).Cmp(roundMoney(leader.BidAmount))
		if cmp > 0 || (cmp == 0 && b.BidTime.Before(leader.BidTime)) {
			leader = b
		}
	}

	check.ComputedBid = leader.BidAmount
	check.ComputedBidder = leader.BidderID
	check.Consistent = roundMoney(group.HighestBid).Equal(roundMoney(leader.BidAmount)) &&
		group.HighestBidder == leader.BidderID
	return check
}

func roundMoney(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(monetaryPrecision)
}
