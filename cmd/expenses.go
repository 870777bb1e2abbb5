package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/money"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/spf13/cobra"
)

const listSections = render.SectionExpenses | render.SectionSummary | render.SectionSync

var (
	addDescription string
	addAmount      string
	addCategory    string
	addPayer       string
	addDate        string
	addItems       []string
	addReceipt     string
)

var expensesCmd = &cobra.Command{
	Use:     "expenses",
	Aliases: []string{"expense"},
	Short:   "List, add and delete expenses",
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show one month of expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, listSections|render.SectionBalance|render.SectionCategories, func(ctx context.Context, r *clientRuntime) error {
			return r.app.Refresh(ctx)
		})
	},
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new expense",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dto, err := buildExpense()
		if err != nil {
			return err
		}
		if monthFlag == "" {
			if key, err := month.FromDate(dto.Date); err == nil {
				monthFlag = key.String()
			}
		}
		return withSession(cmd, listSections, func(ctx context.Context, r *clientRuntime) error {
			created, err := r.app.AddExpense(ctx, dto)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "Added expense %d\n", created.ID)
			return nil
		})
	},
}

var expensesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, listSections, func(ctx context.Context, r *clientRuntime) error {
			return r.app.DeleteExpense(ctx, id)
		})
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Add or delete line items of an expense",
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <expense-id> <name> <amount>",
	Short: "Attach a line item to an expense",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := money.Parse(args[2])
		if err != nil {
			return err
		}
		dto := expense.AddItemDTO{ExpenseID: id, Name: args[1], Amount: amount}
		return withSession(cmd, listSections, func(ctx context.Context, r *clientRuntime) error {
			return r.app.AddItem(ctx, dto)
		})
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Remove a line item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, listSections, func(ctx context.Context, r *clientRuntime) error {
			return r.app.DeleteItem(ctx, id)
		})
	},
}

func buildExpense() (expense.CreateExpenseDTO, error) {
	dto := expense.CreateExpenseDTO{
		Description: strings.TrimSpace(addDescription),
		Date:        addDate,
		Category:    addCategory,
		Payer:       addPayer,
	}
	if dto.Date == "" {
		dto.Date = time.Now().Format(month.DateLayout)
	}
	if addAmount != "" {
		amount, err := money.Parse(addAmount)
		if err != nil {
			return dto, err
		}
		dto.Amount = &amount
	}

	for _, raw := range addItems {
		name, value, ok := strings.Cut(raw, "=")
		if !ok {
			return dto, fmt.Errorf("item %q: expected name=amount", raw)
		}
		amount, err := money.Parse(value)
		if err != nil {
			return dto, fmt.Errorf("item %q: %w", raw, err)
		}
		dto.Items = append(dto.Items, expense.ItemDTO{Name: name, Amount: &amount})
	}

	if addReceipt != "" {
		data, err := os.ReadFile(addReceipt)
		if err != nil {
			return dto, fmt.Errorf("read receipt: %w", err)
		}
		dto.ReceiptName = filepath.Base(addReceipt)
		dto.ReceiptBase64 = base64.StdEncoding.EncodeToString(data)
	}
	return dto, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	for _, c := range []*cobra.Command{expensesListCmd, expensesAddCmd, expensesDeleteCmd, itemsAddCmd, itemsDeleteCmd} {
		addMonthFlag(c)
	}
	expensesListCmd.Flags().StringVar(&filterFlag, "filter", "all", "all, you, spouse or a category")

	f := expensesAddCmd.Flags()
	f.StringVar(&addDescription, "description", "", "what the money was spent on")
	f.StringVar(&addAmount, "amount", "", "amount in pounds")
	f.StringVar(&addCategory, "category", "", "one of "+strings.Join(expense.CategoryNames(), ", "))
	f.StringVar(&addPayer, "payer", "", "you or spouse")
	f.StringVar(&addDate, "date", "", "date of the expense (YYYY-MM-DD), defaults to today")
	f.StringArrayVar(&addItems, "item", nil, "line item as name=amount, repeatable")
	f.StringVar(&addReceipt, "receipt", "", "image file to attach as the receipt")

	expensesCmd.AddCommand(expensesListCmd, expensesAddCmd, expensesDeleteCmd)
	itemsCmd.AddCommand(itemsAddCmd, itemsDeleteCmd)
	rootCmd.AddCommand(expensesCmd, itemsCmd)
}
