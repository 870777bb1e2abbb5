package balance

import (
	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/month"
)

// SetBalanceDTO is the body of POST /balances.
type SetBalanceDTO struct {
	MonthKey        string   `json:"month_key"`
	StartingBalance *float64 `json:"starting_balance"`
}

var ErrMissingFields = errors.NewValidationError("Missing fields", errors.ErrCodeMissingFields)

func (d SetBalanceDTO) Validate() error {
	if d.MonthKey == "" || d.StartingBalance == nil {
		return ErrMissingFields
	}
	if _, err := month.Parse(d.MonthKey); err != nil {
		return errors.NewValidationError("Invalid month", errors.ErrCodeInvalidMonth)
	}
	return nil
}

type BalancesResponse struct {
	Balances []Balance `json:"balances"`
}
