package helpers

import (
	"time"

	model "participation-tracker/internal/models"
)

// Response DTOs
type ReconciledViewResponse struct {
	ID              string  `json:"_id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ImageURL        string  `json:"imageUrl"`
	Status          string  `json:"status"`
	CurrentBid      float64 `json:"currentBid"`
	MyBid           float64 `json:"myBid"`
	IsHighestBidder bool    `json:"isHighestBidder"`
	HasNewActivity  bool    `json:"hasNewActivity"`
	Bids            int     `json:"bids"`
	TimeLeft        string  `json:"timeLeft"`
	EndTime         string  `json:"endTime"`
	TotalQuantity   int     `json:"totalQuantity"`
	HighestBid      float64 `json:"highestBid"`
}

type ParticipationResponse struct {
	Participated []ReconciledViewResponse `json:"participated"`
	ActiveBids   []ReconciledViewResponse `json:"activeBids"`
	Won          []ReconciledViewResponse `json:"won"`
	Lost         []ReconciledViewResponse `json:"lost"`
}

// NewParticipationResponse converts a participation into its wire form.
// Every list is non-nil so empty partitions encode as [] rather than null.
func NewParticipationResponse(p model.Participation) ParticipationResponse {
	return ParticipationResponse{
		Participated: toViewResponses(p.Participated),
		ActiveBids:   toViewResponses(p.Active),
		Won:          toViewResponses(p.Won),
		Lost:         toViewResponses(p.Lost),
	}
}

func toViewResponses(views []model.ReconciledView) []ReconciledViewResponse {
	out := make([]ReconciledViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewReconciledViewResponse(v))
	}
	return out
}

func NewReconciledViewResponse(v model.ReconciledView) ReconciledViewResponse {
	return ReconciledViewResponse{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		ImageURL:        v.ImageURL,
		Status:          string(v.Status),
		CurrentBid:      v.CurrentBid,
		MyBid:           v.MyBid,
		IsHighestBidder: v.IsLeading,
		HasNewActivity:  v.HasNewActivity,
		Bids:            v.BidCount,
		TimeLeft:        v.TimeLeft,
		EndTime:         v.EndTime.UTC().Format(time.RFC3339),
		TotalQuantity:   v.TotalQuantity,
		HighestBid:      v.HighestBid,
	}
}
