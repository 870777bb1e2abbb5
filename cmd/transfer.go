package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/app"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/frahmantamala/household-expenses/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
	exportMonths []string
	receiptOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write months of expenses and balances to a JSON or CSV file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := app.ParseExportFormat(exportFormat)
		if err != nil {
			return err
		}
		keys, err := parseMonths(exportMonths)
		if err != nil {
			return err
		}

		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			if len(keys) == 0 {
				keys = []month.Key{r.app.Navigator().Key()}
			}
			// load every month into the cache before writing it out
			for _, k := range keys {
				t, err := k.Time()
				if err != nil {
					return err
				}
				if err := r.app.SetMonth(ctx, t); err != nil {
					return err
				}
			}

			out := exportOut
			if out == "" {
				out = exportFileName(format, time.Now())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := r.app.Export(f, format, keys); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "Wrote %s\n", out)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file.json|file.csv>",
	Short: "Load an exported JSON document or post every row of a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return withSession(cmd, listSections, func(ctx context.Context, r *clientRuntime) error {
			in, err := openInput(path)
			if err != nil {
				return err
			}
			defer in.Close()

			if strings.EqualFold(filepath.Ext(path), ".csv") {
				_, err = r.app.ImportCSV(ctx, in)
				return err
			}
			return r.app.ImportJSON(in)
		})
	},
}

var receiptCmd = &cobra.Command{
	Use:   "receipt <path>",
	Short: "Download a stored receipt image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return withSession(cmd, render.SectionSync, func(ctx context.Context, r *clientRuntime) error {
			data, err := r.app.Receipt(ctx, path)
			if err != nil {
				return err
			}
			out := receiptOut
			if out == "" {
				out = filepath.Base(path)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "Saved %s (%d bytes)\n", out, len(data))
			return nil
		})
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Step through months interactively",
	Long: `Step through months interactively. Commands read from stdin:
  n  next month
  p  previous month
  r  reload the month on screen
  f  <filter> narrow the list (all, you, spouse or a category)
  q  quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, render.SectionAll, func(ctx context.Context, r *clientRuntime) error {
			// other failures are already on screen; keep browsing
			if err := r.app.Refresh(ctx); internal.IsUnauthorized(err) {
				return err
			}
			return browse(ctx, r, bufio.NewScanner(cmd.InOrStdin()))
		})
	},
}

func browse(ctx context.Context, r *clientRuntime, in *bufio.Scanner) error {
	prompt := func() {
		fmt.Fprintf(r.out, "\n[%s] n/p/r/f <filter>/q > ", r.app.Navigator().Key().Label())
	}
	prompt()
	for in.Scan() {
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			prompt()
			continue
		}

		var err error
		switch fields[0] {
		case "n":
			err = r.app.NextMonth(ctx)
		case "p":
			err = r.app.PrevMonth(ctx)
		case "r":
			err = r.app.Refresh(ctx)
		case "f":
			f := expense.FilterAll
			if len(fields) > 1 {
				if f, err = expense.ParseFilter(fields[1]); err != nil {
					fmt.Fprintln(r.errOut, "error:", err)
					err = nil
					break
				}
			}
			r.app.SetFilter(f)
		case "q":
			return nil
		default:
			fmt.Fprintf(r.errOut, "unknown command %q\n", fields[0])
		}
		if internal.IsUnauthorized(err) {
			return err
		}
		prompt()
	}
	return in.Err()
}

func parseMonths(raw []string) ([]month.Key, error) {
	var keys []month.Key
	for _, s := range raw {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			k, err := month.Parse(part)
			if err != nil {
				return nil, err
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func exportFileName(format app.ExportFormat, now time.Time) string {
	if format == app.FormatCSV {
		return transfer.CSVFileName(now)
	}
	return transfer.ExportFileName(now)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "file to write, defaults to a dated name")
	exportCmd.Flags().StringVar(&exportFormat, "format", string(app.FormatJSON), "json or csv")
	exportCmd.Flags().StringSliceVar(&exportMonths, "months", nil, "months to export (YYYY-MM,...), defaults to --month")
	addMonthFlag(exportCmd)
	addMonthFlag(importCmd)
	addMonthFlag(browseCmd)

	receiptCmd.Flags().StringVarP(&receiptOut, "out", "o", "", "file to write, defaults to the receipt name")

	rootCmd.AddCommand(exportCmd, importCmd, receiptCmd, browseCmd)
}
