package integrationtests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	bidding "participation-tracker/internal/biddingService"
	"participation-tracker/internal/identity"
	model "participation-tracker/internal/models"
	"participation-tracker/internal/repository"
	"participation-tracker/internal/server"

	"github.com/gin-gonic/gin"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// countingDB records how many store queries a request triggered
type countingDB struct {
	repository.AuctionDB
	queries atomic.Int64
}

func (c *countingDB) FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error) {
	c.queries.Add(1)
	return c.AuctionDB.FindBidGroupsByBidder(ctx, userID)
}

func (c *countingDB) FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error) {
	c.queries.Add(1)
	return c.AuctionDB.FindAuctionsByIDs(ctx, ids)
}

// SetupTestRouter initializes the router over the given repo with header-based identity and a fixed clock.
func SetupTestRouter(repo repository.AuctionDB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := bidding.NewParticipationService(repository.NewInstrumentedDB(repo, "memory")).
		WithClock(func() time.Time { return testNow })
	return server.SetupRouter(server.RouterConfig{
		Service:        service,
		Resolver:       identity.HeaderResolver{},
		RequestTimeout: 5 * time.Second,
		StoreBackend:   "memory",
	})
}

// SetupTestRepo seeds a memory repo with auctions and bids
func SetupTestRepo(t *testing.T, auctions []model.Auction, bids map[string][]model.Bid) *repository.MemoryRepo {
	t.Helper()
	repo := repository.NewMemoryRepo()
	for _, a := range auctions {
		repo.AddAuction(a)
	}
	for auctionID, list := range bids {
		for _, bid := range list {
			if err := repo.RecordBid(auctionID, bid); err != nil {
				t.Fatalf("failed to seed bid: %v", err)
			}
		}
	}
	return repo
}

// ExecuteRequestAndParse executes a GET as userID (empty for anonymous) and parses the JSON body
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, url, userID string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	if userID != "" {
		req.Header.Set(identity.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// viewsByID indexes a response list by auction id
func viewsByID(t *testing.T, raw any) map[string]map[string]any {
	t.Helper()
	list, ok := raw.([]any)
	if !ok {
		t.Fatalf("expected a JSON array, got %T", raw)
	}
	out := make(map[string]map[string]any, len(list))
	for _, item := range list {
		view := item.(map[string]any)
		out[view["_id"].(string)] = view
	}
	return out
}
