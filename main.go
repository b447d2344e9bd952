package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "participation-tracker/internal/biddingService"
	"participation-tracker/internal/config"
	"participation-tracker/internal/identity"
	model "participation-tracker/internal/models"
	"participation-tracker/internal/repository"
	"participation-tracker/internal/repository/mongostore"
	"participation-tracker/internal/repository/pgstore"
	"participation-tracker/internal/server"
	"participation-tracker/utils"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("Failed to load config", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Warn("Ignoring LOG_LEVEL", map[string]any{"error": err.Error()})
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		utils.Fatal("Failed to open data store", map[string]any{"backend": cfg.StoreBackend, "error": err.Error()})
	}
	defer closeStore()

	resolver, closeResolver, err := openResolver(cfg)
	if err != nil {
		utils.Fatal("Failed to set up identity", map[string]any{"auth_mode": cfg.AuthMode, "error": err.Error()})
	}
	defer closeResolver()

	participationSvc := bidding.NewParticipationService(repository.NewInstrumentedDB(store, cfg.StoreBackend))

	gin.SetMode(gin.ReleaseMode)
	router := server.SetupRouter(server.RouterConfig{
		Service:        participationSvc,
		Resolver:       resolver,
		RequestTimeout: cfg.RequestTimeout,
		StoreBackend:   cfg.StoreBackend,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		utils.Info("Starting participation server", map[string]any{
			"addr":      srv.Addr,
			"backend":   cfg.StoreBackend,
			"auth_mode": cfg.AuthMode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	utils.Info("Shutting down server", map[string]any{"signal": sig.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}
	utils.Info("Server exited", nil)
}

// openStore connects the configured backend and returns a close func for it
func openStore(ctx context.Context, cfg *config.Config) (repository.AuctionDB, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				utils.Warn("Mongo disconnect failed", map[string]any{"error": err.Error()})
			}
		}
		return mongostore.NewStore(client.Database(cfg.MongoDatabase)), closeFn, nil

	case config.StorePostgres:
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgstore.NewStore(pool), pool.Close, nil

	default:
		repo := repository.NewMemoryRepo()
		if cfg.SeedDemoData {
			if err := seedDemoData(repo, time.Now().UTC()); err != nil {
				return nil, nil, err
			}
		}
		return repo, func() {}, nil
	}
}

// openResolver builds the identity resolver for the configured auth mode
func openResolver(cfg *config.Config) (identity.Resolver, func(), error) {
	if cfg.AuthMode == config.AuthHeader {
		utils.Warn("AUTH_MODE=header trusts the X-User-ID header; run behind an authenticating gateway", nil)
		return identity.HeaderResolver{}, func() {}, nil
	}

	client, err := identity.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			utils.Warn("Redis close failed", map[string]any{"error": err.Error()})
		}
	}
	return identity.NewSessionResolver(identity.NewRedisSessionStore(client)), closeFn, nil
}

// seedDemoData adds sample auctions and bids to the in-memory repo
func seedDemoData(repo *repository.MemoryRepo, now time.Time) error {
	auctions := []model.Auction{
		{ID: utils.GenerateID(), Title: "Vintage desk lamp", Description: "Brass, working", Images: []string{"/images/lamp.jpg"}, Status: model.AuctionStatusActive, StartingPrice: 20, EndTime: now.Add(3*time.Hour + 42*time.Minute), TotalQuantity: 1},
		{ID: utils.GenerateID(), Title: "Mantel clock", Description: "Needs winding", Status: model.AuctionStatusEnded, StartingPrice: 40, EndTime: now.Add(-24 * time.Hour), TotalQuantity: 1},
		{ID: utils.GenerateID(), Title: "Record player", Description: "Belt drive", Status: model.AuctionStatusEnded, StartingPrice: 60, EndTime: now.Add(-2 * time.Hour), TotalQuantity: 1},
	}
	for _, a := range auctions {
		repo.AddAuction(a)
	}

	bids := []struct {
		auction int
		bidder  string
		amount  float64
		ago     time.Duration
	}{
		{0, "demo-user", 25, 2 * time.Hour},
		{0, "demo-rival", 30, time.Hour},
		{1, "demo-user", 45, 30 * time.Hour},
		{2, "demo-user", 65, 5 * time.Hour},
		{2, "demo-rival", 80, 4 * time.Hour},
	}
	for _, b := range bids {
		bid := model.Bid{BidderID: b.bidder, BidAmount: b.amount, BidTime: now.Add(-b.ago)}
		if err := repo.RecordBid(auctions[b.auction].ID, bid); err != nil {
			return err
		}
	}

	utils.Info("Seeded demo data", map[string]any{"auctions": len(auctions), "bids": len(bids)})
	return nil
}
