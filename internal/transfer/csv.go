package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/money"
	"github.com/frahmantamala/household-expenses/internal/store"
)

// Columns are the CSV headers every import needs and every export writes, in export order.
var Columns = []string{"description", "amount", "date", "category", "payer"}

var (
	ErrCSVTooShort      = errors.NewFormatError("CSV must have headers and data")
	ErrCSVMissingHeader = errors.NewFormatError("CSV headers must include description, amount, date, category, payer")
)

func ExportCSV(w io.Writer, snap store.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, key := range snap.Months() {
		list := append([]expense.Expense(nil), snap.Expenses[key]...)
		expense.SortNewestFirst(list)
		for _, e := range list {
			rec := []string{
				e.Description,
				strconv.FormatFloat(e.Amount, 'f', -1, 64),
				e.Date,
				string(e.Category),
				string(e.Payer),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Table is a parsed CSV import: the header, where each required column sits, and the data rows.
type Table struct {
	Header []string
	Index  map[string]int
	Rows   [][]string
}

func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.NewFormatError("Error importing data. Please check the file format.").WithCause(err)
	}

	lines := make([][]string, 0, len(records))
	for _, rec := range records {
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if blank(rec) {
			continue
		}
		lines = append(lines, rec)
	}
	if len(lines) < 2 {
		return nil, ErrCSVTooShort
	}

	t := &Table{Header: make([]string, len(lines[0])), Index: make(map[string]int, len(Columns)), Rows: lines[1:]}
	for i, h := range lines[0] {
		t.Header[i] = strings.ToLower(h)
	}
	for _, col := range Columns {
		idx := indexOf(t.Header, col)
		if idx < 0 {
			return nil, ErrCSVMissingHeader
		}
		t.Index[col] = idx
	}
	return t, nil
}

// Poster creates one expense on the backend.
type Poster interface {
	CreateExpense(ctx context.Context, dto expense.CreateExpenseDTO) (*expense.Expense, error)
}

type Result struct {
	Success int
	Failed  int
	Skipped int
}

func (r Result) Message() string {
	return fmt.Sprintf("CSV import completed. Success: %d, Failed: %d", r.Success, r.Failed)
}

// ImportCSV posts every row on its own. Rows shorter than the header are skipped.
// A row fails when a required field is empty, the amount is not a number, or the server rejects it.
// Nothing is rolled back; a 401 stops the import and the counts so far are returned with the error.
func ImportCSV(ctx context.Context, t *Table, poster Poster, logger *slog.Logger) (Result, error) {
	var res Result
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if len(row) < len(t.Header) {
			res.Skipped++
			continue
		}

		dto, ok := rowToDTO(t, row)
		if !ok {
			logger.Debug("csv row rejected", "row", i+2)
			res.Failed++
			continue
		}

		if _, err := poster.CreateExpense(ctx, dto); err != nil {
			if errors.IsUnauthorized(err) {
				return res, err
			}
			logger.Warn("csv row not accepted", "row", i+2, "error", err)
			res.Failed++
			continue
		}
		res.Success++
	}
	return res, nil
}

// rowToDTO applies the import-time checks only; category and payer values are left to the server.
func rowToDTO(t *Table, row []string) (expense.CreateExpenseDTO, bool) {
	get := func(col string) string { return row[t.Index[col]] }

	dto := expense.CreateExpenseDTO{
		Description: get("description"),
		Date:        get("date"),
		Category:    get("category"),
		Payer:       get("payer"),
	}
	if dto.Description == "" || dto.Date == "" || dto.Category == "" || dto.Payer == "" {
		return dto, false
	}
	amount, err := money.Parse(get("amount"))
	if err != nil {
		return dto, false
	}
	dto.Amount = &amount
	return dto, true
}

func blank(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
