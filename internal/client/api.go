package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frahmantamala/household-expenses/internal/auth"
	"github.com/frahmantamala/household-expenses/internal/balance"
	coreUser "github.com/frahmantamala/household-expenses/internal/core/user"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/savings"
	"github.com/frahmantamala/household-expenses/internal/user"
)

// Me returns the signed-in user; an anonymous caller gets ErrUnauthorized.
func (c *Client) Me(ctx context.Context) (*coreUser.User, error) {
	var resp auth.MeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Login(ctx context.Context, username, password string, remember bool) error {
	dto := auth.LoginDTO{Username: username, Password: password, Remember: remember}
	return c.do(ctx, http.MethodPost, "/auth/login", dto, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListExpenses(ctx context.Context, key month.Key) ([]expense.Expense, error) {
	var resp expense.ExpensesResponse
	path := "/expenses?month=" + url.QueryEscape(key.String())
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Expenses, nil
}

func (c *Client) CreateExpense(ctx context.Context, dto expense.CreateExpenseDTO) (*expense.Expense, error) {
	var resp expense.ExpenseResponse
	if err := c.do(ctx, http.MethodPost, "/expenses", dto, &resp); err != nil {
		return nil, err
	}
	return &resp.Expense, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) AddExpenseItem(ctx context.Context, dto expense.AddItemDTO) (*expense.Item, error) {
	var resp expense.ItemResponse
	if err := c.do(ctx, http.MethodPost, "/expense-items", dto, &resp); err != nil {
		return nil, err
	}
	return &resp.Item, nil
}

func (c *Client) DeleteExpenseItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/expense-items/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) GetBalance(ctx context.Context, key month.Key) (balance.Balance, error) {
	var out balance.Balance
	path := "/balances?month=" + url.QueryEscape(key.String())
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return balance.Balance{}, err
	}
	return out, nil
}

func (c *Client) SetBalance(ctx context.Context, key month.Key, amount float64) (balance.Balance, error) {
	var out balance.Balance
	dto := balance.SetBalanceDTO{MonthKey: key.String(), StartingBalance: &amount}
	if err := c.do(ctx, http.MethodPost, "/balances", dto, &out); err != nil {
		return balance.Balance{}, err
	}
	return out, nil
}

func (c *Client) ListSavings(ctx context.Context) ([]savings.Goal, error) {
	var resp savings.GoalsResponse
	if err := c.do(ctx, http.MethodGet, "/savings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Savings, nil
}

func (c *Client) CreateSaving(ctx context.Context, name string, target float64) (*savings.Goal, error) {
	var resp savings.GoalResponse
	dto := savings.CreateGoalDTO{Name: name, Target: &target}
	if err := c.do(ctx, http.MethodPost, "/savings", dto, &resp); err != nil {
		return nil, err
	}
	return &resp.Saving, nil
}

func (c *Client) Contribute(ctx context.Context, id int64, amount float64) (*savings.Goal, error) {
	var resp savings.GoalResponse
	path := "/savings/" + strconv.FormatInt(id, 10) + "/contribute"
	if err := c.do(ctx, http.MethodPost, path, savings.ContributeDTO{Amount: &amount}, &resp); err != nil {
		return nil, err
	}
	return &resp.Saving, nil
}

func (c *Client) DeleteSaving(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/savings/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) CreateUser(ctx context.Context, dto user.CreateUserDTO) (int64, error) {
	var resp user.CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/admin/users", dto, &resp); err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	var resp user.UsersResponse
	if err := c.do(ctx, http.MethodPost, "/admin/users/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// ReceiptURL is the address a receipt is served from; the stored path is escaped as one segment.
func (c *Client) ReceiptURL(path string) string {
	return c.endpoint("/receipts/" + url.PathEscape(path))
}

func (c *Client) Receipt(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ReceiptURL(path), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	return io.ReadAll(resp.Body)
}
