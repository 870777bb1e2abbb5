// Package transfer moves the cached months in and out of the process as JSON or CSV files.
package transfer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/store"
)

// ErrInvalidDocument is returned for a JSON import without both top-level maps.
var ErrInvalidDocument = errors.NewFormatError("Invalid data format. Import failed.")

type Document struct {
	Expenses   map[month.Key][]expense.Expense `json:"expenses"`
	Balances   map[month.Key]float64           `json:"balances"`
	ExportDate string                          `json:"exportDate"`
}

func ExportJSON(w io.Writer, snap store.Snapshot, now time.Time) error {
	doc := Document{
		Expenses:   snap.Expenses,
		Balances:   snap.Balances,
		ExportDate: now.UTC().Format(time.RFC3339),
	}
	if doc.Expenses == nil {
		doc.Expenses = map[month.Key][]expense.Expense{}
	}
	if doc.Balances == nil {
		doc.Balances = map[month.Key]float64{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportFileName is "expenses_YYYY-MM-DD.json" for the day of now.
func ExportFileName(now time.Time) string {
	return "expenses_" + now.Format(month.DateLayout) + ".json"
}

func CSVFileName(now time.Time) string {
	return "expenses_" + now.Format(month.DateLayout) + ".csv"
}

// DecodeJSON reads an exported document. Both maps must be present and non-null.
func DecodeJSON(r io.Reader) (store.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(skipBOM(r)).Decode(&raw); err != nil {
		return store.Snapshot{}, ErrInvalidDocument.WithCause(err)
	}
	for _, key := range []string{"expenses", "balances"} {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			return store.Snapshot{}, ErrInvalidDocument
		}
	}

	snap := store.NewSnapshot()
	if err := json.Unmarshal(raw["expenses"], &snap.Expenses); err != nil {
		return store.Snapshot{}, ErrInvalidDocument.WithCause(err)
	}
	if err := json.Unmarshal(raw["balances"], &snap.Balances); err != nil {
		return store.Snapshot{}, ErrInvalidDocument.WithCause(err)
	}
	return snap, nil
}

// Select keeps only the listed months; an empty list keeps everything.
func Select(snap store.Snapshot, months []month.Key) store.Snapshot {
	if len(months) == 0 {
		return snap
	}
	out := store.NewSnapshot()
	for _, k := range months {
		if list, ok := snap.Expenses[k]; ok {
			out.Expenses[k] = list
		}
		if v, ok := snap.Balances[k]; ok {
			out.Balances[k] = v
		}
	}
	return out
}

var bom = []byte("\ufeff")

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet tools like to write.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}
	return br
}
