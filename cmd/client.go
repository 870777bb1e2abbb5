package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/household-expenses/internal"
	"github.com/frahmantamala/household-expenses/internal/app"
	"github.com/frahmantamala/household-expenses/internal/client"
	"github.com/frahmantamala/household-expenses/internal/core/events"
	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
	"github.com/frahmantamala/household-expenses/internal/render"
	"github.com/spf13/cobra"
)

var (
	monthFlag  string
	filterFlag string
)

// clientRuntime is one CLI invocation talking to the backend.
type clientRuntime struct {
	cfg    *internal.Config
	client *client.Client
	app    *app.App
	bus    *events.EventBus
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func addMonthFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&monthFlag, "month", "", "month to work on (YYYY-MM), defaults to the current month")
}

func selectedMonth() (time.Time, error) {
	if monthFlag == "" {
		return time.Now(), nil
	}
	key, err := month.Parse(monthFlag)
	if err != nil {
		return time.Time{}, err
	}
	return key.Time()
}

// newClientRuntime builds the client and app and restores the saved session cookie.
func newClientRuntime(cmd *cobra.Command, sections render.Section) (*clientRuntime, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	log := setupLogger(cfg, os.Stderr)

	start, err := selectedMonth()
	if err != nil {
		return nil, err
	}
	filter, err := expense.ParseFilter(filterFlag)
	if err != nil {
		return nil, err
	}

	c, err := client.New(client.Config{
		APIBaseURL: cfg.Client.APIBaseURL,
		Timeout:    cfg.Client.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := c.LoadSession(cfg.Client.SessionFile); err != nil {
		log.Warn("ignoring unreadable session file", "path", cfg.Client.SessionFile, "error", err)
	}

	bus := events.NewEventBus(log)
	if traceEvents {
		traceBus(bus, log)
	}
	a := app.New(app.Deps{
		API:    c,
		View:   render.NewTextView(cmd.OutOrStdout(), cmd.ErrOrStderr(), sections),
		Bus:    bus,
		Logger: log,
		Month:  start,
		Filter: filter,
	})

	return &clientRuntime{
		cfg:    cfg,
		client: c,
		app:    a,
		bus:    bus,
		logger: log,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

// signIn resolves the saved session without loading any month.
func (r *clientRuntime) signIn(ctx context.Context) error {
	u, err := r.app.Gate().Check(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(r.errOut, "Not signed in. Run `household login <username>` first.")
		return errReported
	}
	return nil
}

// save writes the cookie jar back so the next invocation keeps the session.
func (r *clientRuntime) save() {
	r.bus.Wait()
	if err := r.client.SaveSession(r.cfg.Client.SessionFile); err != nil {
		r.logger.Warn("failed to save session", "path", r.cfg.Client.SessionFile, "error", err)
	}
}

// withSession runs fn with a resolved session and persists cookies afterwards.
func withSession(cmd *cobra.Command, sections render.Section, fn func(ctx context.Context, r *clientRuntime) error) error {
	r, err := newClientRuntime(cmd, sections)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer r.save()

	if err := r.signIn(ctx); err != nil {
		return err
	}
	return reported(fn(ctx, r))
}

// reported turns app errors, which the view has already printed, into errReported.
func reported(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := internal.IsAppError(err); ok {
		return errReported
	}
	return err
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}
