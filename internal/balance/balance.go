package balance

import (
	"time"

	balanceDatamodel "github.com/frahmantamala/household-expenses/internal/core/datamodel/balance"
	"github.com/frahmantamala/household-expenses/internal/month"
)

// Balance is the starting balance recorded for one month.
type Balance struct {
	MonthKey        month.Key  `json:"month_key"`
	StartingBalance float64    `json:"starting_balance"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// Empty is what a month without a recorded balance reports.
func Empty(key month.Key) Balance {
	return Balance{MonthKey: key}
}

func FromDataModel(b *balanceDatamodel.Balance) Balance {
	out := Balance{
		MonthKey:        month.Key(b.MonthKey),
		StartingBalance: b.StartingBalance,
	}
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
