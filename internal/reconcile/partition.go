package reconcile

import model "participation-tracker/internal/models"

// Partition splits reconciled views into active, won and lost buckets.
// A view lands in at most one bucket; views with any other status only
// appear in Participated. All slices are non-nil.
func Partition(views []model.ReconciledView) model.Participation {
	p := model.Participation{
		Participated: make([]model.ReconciledView, 0, len(views)),
		Active:       []model.ReconciledView{},
		Won:          []model.ReconciledView{},
		Lost:         []model.ReconciledView{},
	}

	for _, v := range views {
		p.Participated = append(p.Participated, v)
		switch v.Status {
		case model.AuctionStatusActive:
			p.Active = append(p.Active, v)
		case model.AuctionStatusEnded:
			if v.IsLeading {
				p.Won = append(p.Won, v)
			} else {
				p.Lost = append(p.Lost, v)
			}
		}
	}
	return p
}
