package savings

import (
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
)

type CreateGoalDTO struct {
	Name   string   `json:"name"`
	Target *float64 `json:"target"`
}

var (
	ErrMissingFields = errors.NewValidationError("Missing fields", errors.ErrCodeMissingFields)
	ErrMissingAmount = errors.NewValidationError("Missing amount", errors.ErrCodeInvalidAmount)
)

func (d CreateGoalDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" || d.Target == nil {
		return ErrMissingFields
	}
	return nil
}

type ContributeDTO struct {
	Amount *float64 `json:"amount"`
}

func (d ContributeDTO) Validate() error {
	if d.Amount == nil {
		return ErrMissingAmount
	}
	return nil
}

type GoalsResponse struct {
	Savings []Goal `json:"savings"`
}

type GoalResponse struct {
	Saving Goal `json:"saving"`
}
