// Package mongostore reads auctions and bid groups from MongoDB collections
// laid out as one document per auction ("auctions") and one bid document per
// auction holding every bid plus the cached leader ("bids").
package mongostore

import (
	"context"
	"fmt"
	"time"

	model "participation-tracker/internal/models"
	"participation-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	AuctionsCollection = "auctions"
	BidsCollection     = "bids"
)

type bidEntry struct {
	BidderID  primitive.ObjectID `bson:"bidderId"`
	BidAmount float64            `bson:"bidAmount"`
	BidTime   time.Time          `bson:"bidTime"`
}

type bidDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AuctionID     primitive.ObjectID `bson:"auctionId"`
	Bids          []bidEntry         `bson:"bids"`
	HighestBid    float64            `bson:"highestBid"`
	HighestBidder primitive.ObjectID `bson:"highestBidder,omitempty"`
	TotalBids     int                `bson:"totalBids"`
}

type auctionDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	AuctionTitle  string             `bson:"auctionTitle"`
	Description   string             `bson:"description"`
	ItemImg       []string           `bson:"itemImg"`
	Status        string             `bson:"status"`
	StartingPrice float64            `bson:"startingPrice"`
	EndTime       time.Time          `bson:"endTime"`
	TotalQuantity int                `bson:"totalQuantity"`
}

// Store implements repository.AuctionDB on MongoDB
type Store struct {
	auctions *mongo.Collection
	bids     *mongo.Collection
}

// Compile-time interface check.
var _ repository.AuctionDB = (*Store)(nil)

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewStore creates a Store over the given database
func NewStore(db *mongo.Database) *Store {
	return &Store{
		auctions: db.Collection(AuctionsCollection),
		bids:     db.Collection(BidsCollection),
	}
}

// FindBidGroupsByBidder returns every bid document with an entry by userID.
// User IDs that are not ObjectIDs cannot appear in any document, so they match nothing.
func (s *Store) FindBidGroupsByBidder(ctx context.Context, userID string) ([]model.BidGroup, error) {
	bidderID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []model.BidGroup{}, nil
	}

	cursor, err := s.bids.Find(ctx, bson.M{"bids.bidderId": bidderID})
	if err != nil {
		return nil, repository.StoreError(ctx, "mongo "+repository.OpFindBidGroups, err)
	}

	var docs []bidDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, repository.StoreError(ctx, "mongo "+repository.OpFindBidGroups, err)
	}

	groups := make([]model.BidGroup, 0, len(docs))
	for _, doc := range docs {
		groups = append(groups, doc.toModel())
	}
	return groups, nil
}

// FindAuctionsByIDs returns the auctions whose _id is in ids.
// An empty or all-invalid ID list returns nothing without querying.
func (s *Store) FindAuctionsByIDs(ctx context.Context, ids []string) ([]model.Auction, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, oid)
	}
	if len(objectIDs) == 0 {
		return []model.Auction{}, nil
	}

	cursor, err := s.auctions.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, repository.StoreError(ctx, "mongo "+repository.OpFindAuctions, err)
	}

	var docs []auctionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, repository.StoreError(ctx, "mongo "+repository.OpFindAuctions, err)
	}

	auctions := make([]model.Auction, 0, len(docs))
	for _, doc := range docs {
		auctions = append(auctions, doc.toModel())
	}
	return auctions, nil
}

func (d bidDocument) toModel() model.BidGroup {
	group := model.BidGroup{
		AuctionID:  hexOrEmpty(d.AuctionID),
		Bids:       make([]model.Bid, 0, len(d.Bids)),
		HighestBid: d.HighestBid,
		TotalBids:  d.TotalBids,
	}
	group.HighestBidder = hexOrEmpty(d.HighestBidder)
	for _, b := range d.Bids {
		group.Bids = append(group.Bids, model.Bid{
			BidderID:  hexOrEmpty(b.BidderID),
			BidAmount: b.BidAmount,
			BidTime:   b.BidTime,
		})
	}
	return group
}

func (d auctionDocument) toModel() model.Auction {
	return model.Auction{
		ID:            d.ID.Hex(),
		Title:         d.AuctionTitle,
		Description:   d.Description,
		Images:        d.ItemImg,
		Status:        model.AuctionStatus(d.Status),
		StartingPrice: d.StartingPrice,
		EndTime:       d.EndTime,
		TotalQuantity: d.TotalQuantity,
	}
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
