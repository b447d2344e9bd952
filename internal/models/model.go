package models

import "time"

// AuctionStatus is the lifecycle state of an auction as stored
type AuctionStatus string

const (
	AuctionStatusActive AuctionStatus = "active"
	AuctionStatusEnded  AuctionStatus = "ended"
)

// PlaceholderImageURL is served when an auction has no images
const PlaceholderImageURL = "/placeholder.svg"

// Auction represents a canonical auction listing
type Auction struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Images        []string      `json:"images"`
	Status        AuctionStatus `json:"status"`
	StartingPrice float64       `json:"starting_price"`
	EndTime       time.Time     `json:"end_time"`
	TotalQuantity int           `json:"total_quantity"`
}

// Bid represents a single bid inside a bid group
type Bid struct {
	BidderID  string    `json:"bidder_id"`
	BidAmount float64   `json:"bid_amount"`
	BidTime   time.Time `json:"bid_time"`
}

// BidGroup holds every bid placed on one auction plus the denormalized leader.
// HighestBid and HighestBidder are written alongside the bids and are trusted as-is.
type BidGroup struct {
	AuctionID     string  `json:"auction_id"`
	Bids          []Bid   `json:"bids"`
	HighestBid    float64 `json:"highest_bid"`
	HighestBidder string  `json:"highest_bidder"`
	TotalBids     int     `json:"total_bids"`
}

// ReconciledView is one auction as seen by one user at one instant
type ReconciledView struct {
	ID             string
	Title          string
	Description    string
	ImageURL       string
	Status         AuctionStatus
	CurrentBid     float64
	MyBid          float64
	IsLeading      bool
	HasNewActivity bool
	BidCount       int
	TimeLeft       string
	EndTime        time.Time
	TotalQuantity  int
	HighestBid     float64
}

// Participation groups a user's reconciled auctions into disjoint buckets.
// Participated holds every view, including those whose status is neither active nor ended.
type Participation struct {
	Participated []ReconciledView
	Active       []ReconciledView
	Won          []ReconciledView
	Lost         []ReconciledView
}
