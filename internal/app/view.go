package app

import (
	"fmt"

	"github.com/frahmantamala/household-expenses/internal/aggregate"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/session"
	"github.com/frahmantamala/household-expenses/internal/user"
)

// View is whatever displays the application state.
type View interface {
	ShowAuth()
	ShowSession(u coreUser.User, controls session.Controls)
	RenderExpenses(list ExpenseList)
	RenderSummary(key month.Key, summary aggregate.Summary)
	RenderBalance(b BalanceView)
	RenderCategoryTotals(summary aggregate.Summary)
	RenderDashboard(d Dashboard)
	RenderSavings(goals []savings.Goal, controls session.Controls)
	RenderUsers(users []user.User)
	SyncInfo(msg string)
	Notify(msg string)
	Alert(msg string)
}

// ExpenseList is the filtered, newest-first list for one month.
type ExpenseList struct {
	Month    month.Key
	Filter   expense.Filter
	Expenses []expense.Expense
	// MonthCount counts the whole month, ignoring the filter.
	MonthCount int
	Controls   session.Controls
}

func (l ExpenseList) Counter() string {
	return fmt.Sprintf("%d expense(s) this month", l.MonthCount)
}

type BalanceView struct {
	Month     month.Key
	Starting  float64
	Spent     float64
	Remaining float64
	Editable  bool
}

func (b BalanceView) Overdrawn() bool {
	return b.Remaining < 0
}

type Dashboard struct {
	Month      month.Key
	PrevMonth  month.Key
	Comparison aggregate.Comparison
}

func (d Dashboard) Change() string {
	return aggregate.FormatChange(d.Comparison.Diff, d.Comparison.Pct)
}
