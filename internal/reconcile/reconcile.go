// Package reconcile joins auctions with a user's bid groups and derives the
// per-user standing for each auction. Everything here is pure: the caller
// supplies the clock reading, so the same inputs always produce the same views.
package reconcile

import (
	"fmt"
	"sort"
	"time"

	model "participation-tracker/internal/models"
)

// Status text for auctions that are no longer running
const (
	TimeLeftEnded = "Ended"
	TimeLeftWon   = "Won"
	TimeLeftLost  = "Lost"
	TimeLeftNA    = "N/A"
)

// Reconcile produces one view per auction, in auction order.
// Groups without a matching auction are ignored; if two groups share an
// auction ID the first one wins.
func Reconcile(userID string, auctions []model.Auction, groups []model.BidGroup, now time.Time) []model.ReconciledView {
	byAuction := make(map[string]*model.BidGroup, len(groups))
	for i := range groups {
		if _, seen := byAuction[groups[i].AuctionID]; !seen {
			byAuction[groups[i].AuctionID] = &groups[i]
		}
	}

	views := make([]model.ReconciledView, 0, len(auctions))
	for _, auction := range auctions {
		views = append(views, reconcileOne(userID, auction, byAuction[auction.ID], now))
	}
	return views
}

func reconcileOne(userID string, auction model.Auction, group *model.BidGroup, now time.Time) model.ReconciledView {
	view := model.ReconciledView{
		ID:            auction.ID,
		Title:         auction.Title,
		Description:   auction.Description,
		ImageURL:      model.PlaceholderImageURL,
		Status:        auction.Status,
		CurrentBid:    auction.StartingPrice,
		EndTime:       auction.EndTime,
		TotalQuantity: auction.TotalQuantity,
	}
	if len(auction.Images) > 0 && auction.Images[0] != "" {
		view.ImageURL = auction.Images[0]
	}

	// zero time when the user never bid, so every competing bid counts as new
	var lastBidTime time.Time
	if group != nil {
		if latest, ok := latestBidBy(userID, group.Bids); ok {
			view.MyBid = latest.BidAmount
			lastBidTime = latest.BidTime
		}
		if group.HighestBid > 0 {
			view.CurrentBid = group.HighestBid
		}
		view.HighestBid = group.HighestBid
		view.BidCount = group.TotalBids
		view.IsLeading = group.HighestBidder == userID
		view.HasNewActivity = hasActivitySince(userID, group.Bids, lastBidTime)
	}

	switch auction.Status {
	case model.AuctionStatusActive:
		view.TimeLeft = FormatTimeLeft(auction.EndTime, now)
	case model.AuctionStatusEnded:
		if view.IsLeading {
			view.TimeLeft = TimeLeftWon
		} else {
			view.TimeLeft = TimeLeftLost
		}
	default:
		view.TimeLeft = TimeLeftNA
	}

	return view
}

// FormatTimeLeft renders the remaining duration as whole hours and whole
// remaining minutes ("3h 42m"). An end time at or before now yields "Ended".
func FormatTimeLeft(endTime, now time.Time) string {
	remaining := endTime.Sub(now)
	if remaining <= 0 {
		return TimeLeftEnded
	}
	hours := int64(remaining / time.Hour)
	minutes := int64((remaining % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// latestBidBy returns the user's most recent bid
func latestBidBy(userID string, bids []model.Bid) (model.Bid, bool) {
	mine := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		if b.BidderID == userID {
			mine = append(mine, b)
		}
	}
	if len(mine) == 0 {
		return model.Bid{}, false
	}

	sort.SliceStable(mine, func(i, j int) bool { return mine[i].BidTime.After(mine[j].BidTime) })
	return mine[0], true
}

func hasActivitySince(userID string, bids []model.Bid, since time.Time) bool {
	for _, b := range bids {
		if b.BidderID != userID && b.BidTime.After(since) {
			return true
		}
	}
	return false
}
