package app

import (
	"context"
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/session"
)

var (
	ErrGoalName     = errors.NewValidationFieldError("name", "Name is required", errors.ErrCodeMissingFields)
	ErrGoalTarget   = errors.NewValidationFieldError("target", "Target must be greater than zero", errors.ErrCodeInvalidAmount)
	ErrContribution = errors.NewValidationFieldError("amount", "Contribution must be greater than zero", errors.ErrCodeInvalidAmount)
)

// LoadSavings fetches and renders every goal.
func (a *App) LoadSavings(ctx context.Context) ([]savings.Goal, error) {
	if err := a.gate.Require(session.CapabilityManageSavings); err != nil {
		return nil, a.fail("LoadSavings", err)
	}
	goals, err := a.api.ListSavings(ctx)
	if err != nil {
		return nil, a.fail("LoadSavings", err)
	}
	a.view.RenderSavings(goals, a.gate.Controls())
	return goals, nil
}

func (a *App) AddSavingsGoal(ctx context.Context, name string, target float64) error {
	if err := a.gate.Require(session.CapabilityManageSavings); err != nil {
		return a.fail("AddSavingsGoal", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return a.fail("AddSavingsGoal", ErrGoalName)
	}
	if !(target > 0) {
		return a.fail("AddSavingsGoal", ErrGoalTarget)
	}
	if _, err := a.api.CreateSaving(ctx, name, target); err != nil {
		return a.fail("AddSavingsGoal", err)
	}
	_, err := a.LoadSavings(ctx)
	return err
}

func (a *App) Contribute(ctx context.Context, id int64, amount float64) error {
	if err := a.gate.Require(session.CapabilityManageSavings); err != nil {
		return a.fail("Contribute", err)
	}
	if !(amount > 0) {
		return a.fail("Contribute", ErrContribution)
	}
	if _, err := a.api.Contribute(ctx, id, amount); err != nil {
		return a.fail("Contribute", err)
	}
	_, err := a.LoadSavings(ctx)
	return err
}

func (a *App) DeleteSavingsGoal(ctx context.Context, id int64) error {
	if err := a.gate.Require(session.CapabilityManageSavings); err != nil {
		return a.fail("DeleteSavingsGoal", err)
	}
	if err := a.api.DeleteSaving(ctx, id); err != nil {
		return a.fail("DeleteSavingsGoal", err)
	}
	_, err := a.LoadSavings(ctx)
	return err
}
