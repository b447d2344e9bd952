package integrationtests

import (
	"net/http"
	"testing"
	"time"

	model "participation-tracker/internal/models"
	"participation-tracker/internal/repository"

	"github.com/stretchr/testify/require"
)

func bidAt(bidder string, amount float64, offset time.Duration) model.Bid {
	return model.Bid{BidderID: bidder, BidAmount: amount, BidTime: testNow.Add(offset)}
}

func TestParticipation_Unauthenticated(t *testing.T) {
	db := &countingDB{AuctionDB: repository.NewMemoryRepo()}
	router := SetupTestRouter(db)

	for _, url := range []string{"/bids/participation", "/users/me/participation"} {
		resp, w := ExecuteRequestAndParse(t, router, url, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, map[string]any{"message": "Unauthorized"}, resp)
	}
	require.Zero(t, db.queries.Load(), "unauthenticated requests must not query the store")
}

func TestParticipation_NoHistory(t *testing.T) {
	db := &countingDB{AuctionDB: repository.NewMemoryRepo()}
	router := SetupTestRouter(db)

	resp, w := ExecuteRequestAndParse(t, router, "/bids/participation", "user1")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"participated":[],"activeBids":[],"won":[],"lost":[]}`, w.Body.String())
	require.Len(t, resp, 4)
	require.Equal(t, int64(1), db.queries.Load(), "auction lookup is skipped with no bid history")
}

func TestParticipation_WonLostActive(t *testing.T) {
	auctions := []model.Auction{
		{ID: "lamp", Title: "Lamp", Description: "Brass", Images: []string{"/img/lamp.jpg", "/img/lamp2.jpg"}, Status: model.AuctionStatusActive, StartingPrice: 20, EndTime: testNow.Add(3*time.Hour + 42*time.Minute), TotalQuantity: 1},
		{ID: "clock", Title: "Clock", Status: model.AuctionStatusEnded, StartingPrice: 40, EndTime: testNow.Add(-time.Hour), TotalQuantity: 2},
		{ID: "radio", Title: "Radio", Status: model.AuctionStatusEnded, StartingPrice: 60, EndTime: testNow.Add(-time.Hour), TotalQuantity: 1},
		{ID: "untouched", Title: "Untouched", Status: model.AuctionStatusActive, StartingPrice: 5, EndTime: testNow.Add(time.Hour)},
	}
	bids := map[string][]model.Bid{
		"lamp":      {bidAt("user1", 25, -2*time.Hour), bidAt("user2", 30, -time.Hour)},
		"clock":     {bidAt("user2", 41, -5*time.Hour), bidAt("user1", 45, -4*time.Hour)},
		"radio":     {bidAt("user1", 65, -3*time.Hour), bidAt("user2", 80, -2*time.Hour)},
		"untouched": {bidAt("user2", 6, -time.Hour)},
	}
	router := SetupTestRouter(SetupTestRepo(t, auctions, bids))

	resp, w := ExecuteRequestAndParse(t, router, "/users/me/participation", "user1")
	require.Equal(t, http.StatusOK, w.Code)

	participated := viewsByID(t, resp["participated"])
	require.Len(t, participated, 3)
	require.NotContains(t, participated, "untouched")

	active := viewsByID(t, resp["activeBids"])
	require.Len(t, active, 1)
	lamp := active["lamp"]
	require.Equal(t, "3h 42m", lamp["timeLeft"])
	require.Equal(t, "/img/lamp.jpg", lamp["imageUrl"])
	require.Equal(t, 30.0, lamp["currentBid"])
	require.Equal(t, 25.0, lamp["myBid"])
	require.Equal(t, false, lamp["isHighestBidder"])
	require.Equal(t, true, lamp["hasNewActivity"])
	require.Equal(t, 2.0, lamp["bids"])

	won := viewsByID(t, resp["won"])
	require.Len(t, won, 1)
	clock := won["clock"]
	require.Equal(t, "Won", clock["timeLeft"])
	require.Equal(t, "/placeholder.svg", clock["imageUrl"])
	require.Equal(t, true, clock["isHighestBidder"])
	require.Equal(t, false, clock["hasNewActivity"])
	require.Equal(t, 2.0, clock["totalQuantity"])

	lost := viewsByID(t, resp["lost"])
	require.Len(t, lost, 1)
	radio := lost["radio"]
	require.Equal(t, "Lost", radio["timeLeft"])
	require.Equal(t, 80.0, radio["highestBid"])
	require.Equal(t, 65.0, radio["myBid"])

	// the rival sees the mirror image
	resp, w = ExecuteRequestAndParse(t, router, "/bids/participation", "user2")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, viewsByID(t, resp["participated"]), 4)
	require.Len(t, viewsByID(t, resp["activeBids"]), 2)
	require.Contains(t, viewsByID(t, resp["lost"]), "clock")
	require.Contains(t, viewsByID(t, resp["won"]), "radio")
}

func TestParticipation_Idempotent(t *testing.T) {
	auctions := []model.Auction{
		{ID: "lamp", Title: "Lamp", Status: model.AuctionStatusActive, StartingPrice: 20, EndTime: testNow.Add(time.Hour)},
	}
	bids := map[string][]model.Bid{"lamp": {bidAt("user1", 25, -time.Minute)}}
	router := SetupTestRouter(SetupTestRepo(t, auctions, bids))

	_, first := ExecuteRequestAndParse(t, router, "/bids/participation", "user1")
	_, second := ExecuteRequestAndParse(t, router, "/bids/participation", "user1")
	require.Equal(t, http.StatusOK, first.Code)
	require.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestParticipation_RequestIDAndHealth(t *testing.T) {
	router := SetupTestRouter(repository.NewMemoryRepo())

	resp, w := ExecuteRequestAndParse(t, router, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", resp["message"])
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
