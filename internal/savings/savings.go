package savings

import (
	"math"
	"time"

	savingsDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/savings"
)

// Goal is a named savings target and the amount put towards it so far.
type Goal struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	CreatedAt time.Time `json:"created_at"`
}

type Band string

const (
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Progress is the share of the target reached, capped at 100.
func (g Goal) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	pct := g.Current / g.Target * 100
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	return math.Min(100, pct)
}

func (g Goal) Band() Band {
	switch p := g.Progress(); {
	case p < 33:
		return BandLow
	case p < 66:
		return BandMid
	default:
		return BandHigh
	}
}

func FromDataModel(s *savingsDatamodel.Saving) Goal {
	return Goal{
		ID:        s.ID,
		Name:      s.Name,
		Target:    s.Target,
		Current:   s.Current,
		CreatedAt: s.CreatedAt,
	}
}
