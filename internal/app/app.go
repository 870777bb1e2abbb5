// Package app drives the client: every write goes through the role gate, then
// client-side validation, then the server, and is followed by a full re-fetch.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/aggregate"
	"github.com/frahmantamala/household-expenses/internal/balance"
	"github.com/frahmantamala/household-expenses/internal/core/events"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/navigator"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/session"
	"github.com/frahmantamala/household-expenses/internal/store"
	"github.com/frahmantamala/household-expenses/internal/user"
	"golang.org/x/sync/errgroup"
)

// API is the backend surface the application consumes. *client.Client implements it.
type API interface {
	session.API
	OnUnauthorized(fn func())

	ListExpenses(ctx context.Context, key month.Key) ([]expense.Expense, error)
	CreateExpense(ctx context.Context, dto expense.CreateExpenseDTO) (*expense.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	AddExpenseItem(ctx context.Context, dto expense.AddItemDTO) (*expense.Item, error)
	DeleteExpenseItem(ctx context.Context, id int64) error
	GetBalance(ctx context.Context, key month.Key) (balance.Balance, error)
	SetBalance(ctx context.Context, key month.Key, amount float64) (balance.Balance, error)
	ListSavings(ctx context.Context) ([]savings.Goal, error)
	CreateSaving(ctx context.Context, name string, target float64) (*savings.Goal, error)
	Contribute(ctx context.Context, id int64, amount float64) (*savings.Goal, error)
	DeleteSaving(ctx context.Context, id int64) error
	CreateUser(ctx context.Context, dto user.CreateUserDTO) (int64, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	Receipt(ctx context.Context, path string) ([]byte, error)
}

type Deps struct {
	API    API
	View   View
	Bus    *events.EventBus
	Logger *slog.Logger
	// Month is the month shown first; zero means the current month.
	Month time.Time
	// Filter is the initial list filter; empty means all.
	Filter expense.Filter
	Now    func() time.Time
}

type App struct {
	api    API
	view   View
	bus    *events.EventBus
	gate   *session.Gate
	nav    *navigator.Navigator
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	store  *store.Store
	filter expense.Filter
}

func New(deps Deps) *App {
	a := &App{
		api:    deps.API,
		view:   deps.View,
		bus:    deps.Bus,
		logger: deps.Logger,
		now:    deps.Now,
		filter: deps.Filter,
	}
	if a.filter == "" {
		a.filter = expense.FilterAll
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.bus == nil {
		a.bus = events.NewEventBus(a.logger)
	}

	start := deps.Month
	if start.IsZero() {
		start = a.now()
	}

	a.gate = session.NewGate(a.api, a.bus, a.logger)
	a.nav = navigator.New(start, a.sync, navigator.WithBus(a.bus), navigator.WithLogger(a.logger))
	a.api.OnUnauthorized(a.gate.Invalidate)

	a.bus.Subscribe(events.EventTypeSessionStarted, a.onSessionStarted)
	a.bus.Subscribe(events.EventTypeSessionEnded, a.onSessionEnded)
	return a
}

func (a *App) Gate() *session.Gate {
	return a.gate
}

func (a *App) Navigator() *navigator.Navigator {
	return a.nav
}

// Store returns the month cache of the running session, or nil when signed out.
func (a *App) Store() *store.Store {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store
}

func (a *App) onSessionStarted(ctx context.Context, e events.Event) error {
	a.mu.Lock()
	a.store = store.New()
	a.mu.Unlock()
	return nil
}

func (a *App) onSessionEnded(ctx context.Context, e events.Event) error {
	a.mu.Lock()
	if a.store != nil {
		a.store.Clear()
	}
	a.store = nil
	a.mu.Unlock()
	return nil
}

// Start resolves the existing session and, when there is one, loads the current month.
func (a *App) Start(ctx context.Context) error {
	u, err := a.gate.Check(ctx)
	if err != nil {
		return a.fail("Start", err)
	}
	if u == nil {
		a.view.ShowAuth()
		return nil
	}
	a.view.ShowSession(*u, a.gate.Controls())
	return a.Refresh(ctx)
}

func (a *App) Login(ctx context.Context, username, password string, remember bool) error {
	u, err := a.gate.Login(ctx, username, password, remember)
	if err != nil {
		if errors.IsUnauthorized(err) {
			// stay on the sign-in screen and say why
			a.logger.Warn("Login: rejected", "username", username)
			a.view.Alert(message(err))
			return err
		}
		return a.fail("Login", err)
	}
	a.view.ShowSession(*u, a.gate.Controls())
	return a.Refresh(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	err := a.gate.Logout(ctx)
	a.view.ShowAuth()
	if err != nil {
		a.view.Alert(message(err))
	}
	return err
}

// Refresh re-runs the month pipeline for the month on screen.
func (a *App) Refresh(ctx context.Context) error {
	return a.nav.Reload(ctx)
}

func (a *App) NextMonth(ctx context.Context) error {
	return a.nav.Next(ctx)
}

func (a *App) PrevMonth(ctx context.Context) error {
	return a.nav.Prev(ctx)
}

func (a *App) SetMonth(ctx context.Context, date time.Time) error {
	return a.nav.Set(ctx, date)
}

// sync is the pipeline run on every month transition. Its steps run in a fixed order:
// expenses, balance, list, balance display, category totals, dashboard.
func (a *App) sync(ctx context.Context, key month.Key) error {
	if err := a.gate.Require(session.CapabilityView); err != nil {
		return a.fail("Sync", err)
	}

	list, err := a.api.ListExpenses(ctx, key)
	if err != nil {
		a.renderStale(key, err)
		return a.fail("Sync: load expenses", err)
	}
	st := a.Store()
	if st == nil {
		return a.fail("Sync", errors.ErrUnauthorized)
	}
	st.SetExpenses(key, list)

	bal, err := a.api.GetBalance(ctx, key)
	if err != nil {
		a.renderStale(key, err)
		return a.fail("Sync: load balance", err)
	}
	st.SetBalance(key, bal.StartingBalance)

	a.renderMonth(key)

	if err := a.renderDashboard(ctx, key); err != nil {
		return a.fail("Sync: dashboard", err)
	}

	if err := a.bus.Publish(ctx, events.NewDataSyncedEvent(key.String(), len(list))); err != nil {
		a.logger.Warn("failed to publish sync event", "error", err)
	}
	a.view.SyncInfo("Last synced: " + a.now().Format(time.DateTime))
	return nil
}

// renderStale shows the month that was selected with whatever the cache holds for it,
// so a failed fetch never leaves another month on screen. A 401 goes to the sign-in screen instead.
func (a *App) renderStale(key month.Key, err error) {
	if errors.IsUnauthorized(err) {
		return
	}
	a.renderMonth(key)
}

// renderMonth reflects the cached month into the view without touching the network.
func (a *App) renderMonth(key month.Key) {
	st := a.Store()
	if st == nil {
		return
	}
	a.mu.Lock()
	filter := a.filter
	a.mu.Unlock()

	all := st.Expenses(key)
	controls := a.gate.Controls()
	summary := aggregate.Summarize(all)
	starting, _ := st.Balance(key)

	a.view.RenderExpenses(ExpenseList{
		Month:      key,
		Filter:     filter,
		Expenses:   expense.Apply(all, filter),
		MonthCount: len(all),
		Controls:   controls,
	})
	a.view.RenderSummary(key, summary)
	a.view.RenderBalance(BalanceView{
		Month:     key,
		Starting:  starting,
		Spent:     summary.Total,
		Remaining: aggregate.Remaining(starting, summary),
		Editable:  controls.BalanceEditable,
	})
	a.view.RenderCategoryTotals(summary)
}

// renderDashboard fetches the month and the one before it concurrently.
func (a *App) renderDashboard(ctx context.Context, key month.Key) error {
	prevKey := key.Prev()
	var this, prev []expense.Expense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := a.api.ListExpenses(gctx, key)
		this = list
		return err
	})
	g.Go(func() error {
		list, err := a.api.ListExpenses(gctx, prevKey)
		prev = list
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	a.view.RenderDashboard(Dashboard{
		Month:      key,
		PrevMonth:  prevKey,
		Comparison: aggregate.Compare(aggregate.Summarize(this), aggregate.Summarize(prev)),
	})
	return nil
}

// SetFilter narrows the list on screen. The month counter still counts everything.
func (a *App) SetFilter(f expense.Filter) {
	a.mu.Lock()
	a.filter = f
	a.mu.Unlock()
	a.renderMonth(a.nav.Key())
}

func (a *App) AddExpense(ctx context.Context, dto expense.CreateExpenseDTO) (*expense.Expense, error) {
	if err := a.gate.Require(session.CapabilityAddExpense); err != nil {
		return nil, a.fail("AddExpense", err)
	}
	if err := dto.Validate(); err != nil {
		return nil, a.fail("AddExpense", err)
	}
	dto.Items = dto.KeptItems()

	created, err := a.api.CreateExpense(ctx, dto)
	if err != nil {
		return nil, a.fail("AddExpense", err)
	}
	return created, a.Refresh(ctx)
}

func (a *App) DeleteExpense(ctx context.Context, id int64) error {
	if err := a.gate.Require(session.CapabilityDeleteExpense); err != nil {
		return a.fail("DeleteExpense", err)
	}
	if err := a.api.DeleteExpense(ctx, id); err != nil {
		return a.fail("DeleteExpense", err)
	}
	return a.Refresh(ctx)
}

func (a *App) AddItem(ctx context.Context, dto expense.AddItemDTO) error {
	if err := a.gate.Require(session.CapabilityAddExpense); err != nil {
		return a.fail("AddItem", err)
	}
	if err := dto.Validate(); err != nil {
		return a.fail("AddItem", err)
	}
	if _, err := a.api.AddExpenseItem(ctx, dto); err != nil {
		return a.fail("AddItem", err)
	}
	return a.Refresh(ctx)
}

func (a *App) DeleteItem(ctx context.Context, id int64) error {
	if err := a.gate.Require(session.CapabilityDeleteExpense); err != nil {
		return a.fail("DeleteItem", err)
	}
	if err := a.api.DeleteExpenseItem(ctx, id); err != nil {
		return a.fail("DeleteItem", err)
	}
	return a.Refresh(ctx)
}

var ErrNegativeBalance = errors.NewValidationError("Balance cannot be negative", errors.ErrCodeInvalidAmount)

func (a *App) SaveStartingBalance(ctx context.Context, amount float64) error {
	if err := a.gate.Require(session.CapabilityEditBalance); err != nil {
		return a.fail("SaveStartingBalance", err)
	}
	if !(amount >= 0) {
		return a.fail("SaveStartingBalance", ErrNegativeBalance)
	}
	if _, err := a.api.SetBalance(ctx, a.nav.Key(), amount); err != nil {
		return a.fail("SaveStartingBalance", err)
	}
	return a.Refresh(ctx)
}

// User returns the signed-in user, if any.
func (a *App) User() (coreUser.User, bool) {
	return a.gate.User()
}

func (a *App) Receipt(ctx context.Context, path string) ([]byte, error) {
	if err := a.gate.Require(session.CapabilityView); err != nil {
		return nil, a.fail("Receipt", err)
	}
	data, err := a.api.Receipt(ctx, path)
	if err != nil {
		return nil, a.fail("Receipt", err)
	}
	return data, nil
}

// fail logs err, surfaces it and hands it back. A 401 sends the user to the sign-in screen instead of an alert.
func (a *App) fail(op string, err error) error {
	if errors.IsUnauthorized(err) {
		a.logger.Warn(op+": session invalid", "error", err)
		a.view.ShowAuth()
		return err
	}
	if errors.IsType(err, errors.ErrorTypeValidation) || errors.IsType(err, errors.ErrorTypeForbidden) {
		a.logger.Warn(op+": rejected", "error", err)
	} else {
		a.logger.Error(op+": failed", "error", err)
	}
	a.view.Alert(message(err))
	return err
}

func message(err error) string {
	if appErr, ok := errors.IsAppError(err); ok {
		return appErr.GetDetailedMessage()
	}
	return err.Error()
}
