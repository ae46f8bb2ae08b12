package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/app"
	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/config"
	"github.com/templui/studytrack/internal/credential"
	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/logger"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/syncstore"
	"github.com/templui/studytrack/internal/theme"
)

// workspace is what one CLI invocation works against: the configured document
// store, the stores of the signed-in user and the notifications they raise.
type workspace struct {
	app        *app.App
	goals      *syncstore.GoalStore
	activities *syncstore.ActivityStore
	queue      *notify.Queue
	out        io.Writer
	flushLogs  func()
}

func loadConfig() (*config.Config, func()) {
	cfg := config.Load()
	flush := logger.Init(logger.Options{
		Dev:       cfg.IsDevelopment(),
		SentryDSN: cfg.SentryDSN,
		Out:       os.Stderr,
		Level:     slog.LevelWarn,
	})
	return cfg, flush
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	cfg, flushLogs := loadConfig()

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		flushLogs()
		return nil, err
	}

	provider := signedIn(a.Tokens)
	queue := &notify.Queue{}

	return &workspace{
		app:        a,
		goals:      syncstore.NewGoalStore(a.GoalRepository, provider, queue),
		activities: syncstore.NewActivityStore(a.ActivityRepository, provider, queue),
		queue:      queue,
		out:        cmd.OutOrStdout(),
		flushLogs:  flushLogs,
	}, nil
}

// signedIn returns the session of the stored token. A missing or expired token
// yields a signed-out session, so every store call reports that sign-in is needed.
func signedIn(tokens *auth.TokenIssuer) *auth.Session {
	creds, err := credential.Open()
	if err != nil {
		slog.Warn("keyring unavailable", "error", err)
		return auth.NewSession("")
	}

	token, err := creds.Token()
	if err != nil {
		return auth.NewSession("")
	}

	session, err := tokens.SessionFromToken(token)
	if err != nil {
		slog.Warn("stored token rejected", "error", err)
		return auth.NewSession("")
	}
	return session
}

// notifications prints and clears pending notifications.
func (w *workspace) notifications() {
	fmt.Fprint(w.out, theme.Notifications(w.queue.Drain()))
}

func (w *workspace) close() {
	w.notifications()
	err := w.app.Close()
	if err != nil {
		slog.Error("failed to close app", "error", err)
	}
	w.flushLogs()
}

// run opens a workspace, calls fn and always prints the notifications it raised.
func run(cmd *cobra.Command, fn func(w *workspace) error) error {
	w, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer w.close()

	return fn(w)
}

func parseTarget(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dates.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("target date %q: use yyyy-mm-dd", value)
	}
	return t, nil
}

// confirm asks a yes/no question unless skip is set.
func confirm(title string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}

	ok := false
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
