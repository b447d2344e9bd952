package perftests

import (
	"fmt"
	"math/rand"
	"time"

	model "participation-tracker/internal/models"
	repository "participation-tracker/internal/repository"
)

var benchNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// seedRepo fills a memory repo with numAuctions auctions and bidsPerUser bids for each of numUsers users.
// Every third auction has ended.
func seedRepo(numUsers, numAuctions, bidsPerUser int, rnd *rand.Rand) *repository.MemoryRepo {
	repo := repository.NewMemoryRepo()
	for i := 0; i < numAuctions; i++ {
		status := model.AuctionStatusActive
		end := benchNow.Add(time.Duration(i+1) * time.Minute)
		if i%3 == 0 {
			status = model.AuctionStatusEnded
			end = benchNow.Add(-time.Hour)
		}
		repo.AddAuction(model.Auction{
			ID:            auctionID(i),
			Title:         fmt.Sprintf("title_%d", i),
			Description:   "Load test auction",
			Status:        status,
			StartingPrice: 100,
			EndTime:       end,
			TotalQuantity: 1,
		})
	}

	for u := 0; u < numUsers; u++ {
		for b := 0; b < bidsPerUser; b++ {
			bid := model.Bid{
				BidderID:  userID(u),
				BidAmount: float64(100 + rnd.Intn(500)),
				BidTime:   benchNow.Add(-time.Duration(rnd.Intn(3600)) * time.Second),
			}
			_ = repo.RecordBid(auctionID(rnd.Intn(numAuctions)), bid)
		}
	}
	return repo
}

// syntheticInput builds reconcile input for one user over n auctions without a store
func syntheticInput(n, bidsPerGroup int) ([]model.Auction, []model.BidGroup) {
	auctions := make([]model.Auction, 0, n)
	groups := make([]model.BidGroup, 0, n)
	for i := 0; i < n; i++ {
		status := model.AuctionStatusActive
		if i%2 == 0 {
			status = model.AuctionStatusEnded
		}
		auctions = append(auctions, model.Auction{ID: auctionID(i), Status: status, StartingPrice: 10, EndTime: benchNow.Add(time.Hour)})

		bids := make([]model.Bid, 0, bidsPerGroup)
		for b := 0; b < bidsPerGroup; b++ {
			bidder := "rival"
			if b%2 == 0 {
				bidder = "user_0"
			}
			bids = append(bids, model.Bid{BidderID: bidder, BidAmount: float64(10 + b), BidTime: benchNow.Add(time.Duration(b) * time.Second)})
		}
		last := bids[len(bids)-1]
		groups = append(groups, model.BidGroup{AuctionID: auctionID(i), Bids: bids, HighestBid: last.BidAmount, HighestBidder: last.BidderID, TotalBids: len(bids)})
	}
	return auctions, groups
}

func auctionID(i int) string { return fmt.Sprintf("auction_%d", i) }
func userID(i int) string    { return fmt.Sprintf("user_%d", i) }
