package session

import (
	"context"
	"log/slog"
	"sync"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/core/events"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
)

type Capability string

const (
	CapabilityView          Capability = "view"
	CapabilityAddExpense    Capability = "add_expense"
	CapabilityDeleteExpense Capability = "delete_expense"
	CapabilityEditBalance   Capability = "edit_balance"
	CapabilityManageSavings Capability = "manage_savings"
	CapabilityManageUsers   Capability = "manage_users"
)

var capabilityPermissions = map[Capability]coreUser.Permission{
	CapabilityView:          coreUser.PermissionViewExpenses,
	CapabilityAddExpense:    coreUser.PermissionWriteExpenses,
	CapabilityDeleteExpense: coreUser.PermissionWriteExpenses,
	CapabilityEditBalance:   coreUser.PermissionEditBalance,
	CapabilityManageSavings: coreUser.PermissionManageSavings,
	CapabilityManageUsers:   coreUser.PermissionManageUsers,
}

// API is the part of the REST client the gate drives.
type API interface {
	Me(ctx context.Context) (*coreUser.User, error)
	Login(ctx context.Context, username, password string, remember bool) error
	Logout(ctx context.Context) error
}

// Controls says which parts of the interface the current session may see or use.
type Controls struct {
	AddEnabled      bool `json:"add_enabled"`
	DeleteVisible   bool `json:"delete_visible"`
	BalanceEditable bool `json:"balance_editable"`
	SavingsNav      bool `json:"savings_nav"`
	AdminNav        bool `json:"admin_nav"`
	Logout          bool `json:"logout"`
}

// Gate holds the session state: nil user means unauthenticated.
type Gate struct {
	api    API
	bus    *events.EventBus
	logger *slog.Logger

	mu   sync.RWMutex
	user *coreUser.User
}

func NewGate(api API, bus *events.EventBus, logger *slog.Logger) *Gate {
	return &Gate{api: api, bus: bus, logger: logger}
}

// User returns a copy of the signed-in user.
func (g *Gate) User() (coreUser.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.user == nil {
		return coreUser.User{}, false
	}
	return *g.user, true
}

func (g *Gate) Authenticated() bool {
	_, ok := g.User()
	return ok
}

// Check asks the backend who the session belongs to. An anonymous answer is not an error.
func (g *Gate) Check(ctx context.Context) (*coreUser.User, error) {
	u, err := g.api.Me(ctx)
	if err != nil {
		if errors.IsUnauthorized(err) {
			g.Invalidate()
			return nil, nil
		}
		g.logger.Error("Check: session lookup failed", "error", err)
		g.end(ctx, events.EndReasonUnauthorized)
		return nil, err
	}
	if u == nil {
		g.Invalidate()
		return nil, nil
	}

	g.start(ctx, u)
	return u, nil
}

func (g *Gate) Login(ctx context.Context, username, password string, remember bool) (*coreUser.User, error) {
	if err := g.api.Login(ctx, username, password, remember); err != nil {
		g.logger.Warn("Login: rejected", "username", username, "error", err)
		return nil, err
	}

	u, err := g.Check(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.ErrUnauthorized
	}
	return u, nil
}

// Logout always ends the local session, even when the server call fails.
func (g *Gate) Logout(ctx context.Context) error {
	err := g.api.Logout(ctx)
	if err != nil && !errors.IsUnauthorized(err) {
		g.logger.Error("Logout: server call failed", "error", err)
	} else {
		err = nil
	}
	g.end(ctx, events.EndReasonLogout)
	return err
}

// Invalidate drops the session after a 401. It is a no-op when already signed out.
func (g *Gate) Invalidate() {
	g.end(context.Background(), events.EndReasonUnauthorized)
}

// Require reports whether the current session may use c. It never touches the network.
func (g *Gate) Require(c Capability) error {
	u, ok := g.User()
	if !ok {
		return errors.ErrUnauthorized
	}
	perm, known := capabilityPermissions[c]
	if !known || !u.Role.Can(perm) {
		return errors.ErrForbidden
	}
	return nil
}

func (g *Gate) Can(c Capability) bool {
	return g.Require(c) == nil
}

func (g *Gate) Controls() Controls {
	if !g.Authenticated() {
		return Controls{}
	}
	return Controls{
		AddEnabled:      g.Can(CapabilityAddExpense),
		DeleteVisible:   g.Can(CapabilityDeleteExpense),
		BalanceEditable: g.Can(CapabilityEditBalance),
		SavingsNav:      g.Can(CapabilityManageSavings),
		AdminNav:        g.Can(CapabilityManageUsers),
		Logout:          true,
	}
}

func (g *Gate) start(ctx context.Context, u *coreUser.User) {
	cp := *u

	g.mu.Lock()
	prev := g.user
	g.user = &cp
	g.mu.Unlock()

	if prev != nil && prev.ID == cp.ID && prev.Role == cp.Role {
		return
	}
	g.logger.Info("session started", "user_id", cp.ID, "username", cp.Username, "role", cp.Role)
	g.publish(ctx, events.NewSessionStartedEvent(cp.ID, cp.Username, string(cp.Role)))
}

func (g *Gate) end(ctx context.Context, reason string) {
	g.mu.Lock()
	prev := g.user
	g.user = nil
	g.mu.Unlock()

	if prev == nil {
		return
	}
	g.logger.Info("session ended", "user_id", prev.ID, "reason", reason)
	g.publish(ctx, events.NewSessionEndedEvent(reason))
}

func (g *Gate) publish(ctx context.Context, event events.Event) {
	if g.bus == nil {
		return
	}
	if err := g.bus.PublishSync(ctx, event); err != nil {
		g.logger.Error("session event handler failed", "event", event.EventType(), "error", err)
	}
}
