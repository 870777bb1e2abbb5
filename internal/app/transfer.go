package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	errors "github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/session"
	"github.com/frahmantamala/household-expenses/internal/transfer"
)

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// ParseExportFormat accepts json or csv in any case; empty means json.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return f, nil
	default:
		return "", errors.NewValidationError(fmt.Sprintf("unknown export format %q", s), errors.ErrCodeValidationFailed)
	}
}

// Export writes the cached months, or only the listed ones, to w.
func (a *App) Export(w io.Writer, format ExportFormat, months []month.Key) error {
	if err := a.gate.Require(session.CapabilityView); err != nil {
		return a.fail("Export", err)
	}
	st := a.Store()
	if st == nil {
		return a.fail("Export", errors.ErrUnauthorized)
	}

	snap := transfer.Select(st.Snapshot(), months)
	now := a.now()

	format, err := ParseExportFormat(string(format))
	if err != nil {
		return a.fail("Export", err)
	}
	if format == FormatCSV {
		err = transfer.ExportCSV(w, snap)
	} else {
		err = transfer.ExportJSON(w, snap, now)
	}
	if err != nil {
		return a.fail("Export", err)
	}
	a.view.SyncInfo("Exported: " + now.Format(time.DateTime))
	return nil
}

// ImportJSON replaces the whole cache with the document read from r. Nothing changes if it is rejected.
func (a *App) ImportJSON(r io.Reader) error {
	if err := a.gate.Require(session.CapabilityView); err != nil {
		return a.fail("ImportJSON", err)
	}
	st := a.Store()
	if st == nil {
		return a.fail("ImportJSON", errors.ErrUnauthorized)
	}

	snap, err := transfer.DecodeJSON(r)
	if err != nil {
		return a.fail("ImportJSON", err)
	}
	st.Replace(snap)

	a.renderMonth(a.nav.Key())
	a.view.SyncInfo("Imported: " + a.now().Format(time.DateTime))
	a.view.Notify("Data imported successfully!")
	return nil
}

// ImportCSV posts each row as a new expense, then re-fetches the month on screen.
func (a *App) ImportCSV(ctx context.Context, r io.Reader) (transfer.Result, error) {
	if err := a.gate.Require(session.CapabilityAddExpense); err != nil {
		return transfer.Result{}, a.fail("ImportCSV", err)
	}

	table, err := transfer.ParseCSV(r)
	if err != nil {
		return transfer.Result{}, a.fail("ImportCSV", err)
	}

	res, err := transfer.ImportCSV(ctx, table, a.api, a.logger)
	if err != nil {
		return res, a.fail("ImportCSV", err)
	}
	a.logger.Info("csv import finished", "success", res.Success, "failed", res.Failed, "skipped", res.Skipped)

	if err := a.Refresh(ctx); err != nil {
		return res, err
	}
	a.view.SyncInfo("Imported CSV: " + a.now().Format(time.DateTime))
	a.view.Notify(res.Message())
	return res, nil
}
