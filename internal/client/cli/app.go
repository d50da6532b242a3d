// Package cli is the scriptable command surface of the client. Every command
// drives the same API gateway the TUI uses; nothing here talks HTTP itself.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"itemvault/internal/client/api"
	"itemvault/internal/client/config"
	"itemvault/internal/client/session"
	"itemvault/internal/logging"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func ok(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✔ "+msg))
}

func fail(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render("✖ "+msg))
}

// App bundles the gateway, the token store, and the I/O streams commands
// read from and write to.
type App struct {
	client api.Client
	tokens session.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewApp wires the client stack from config. A token handed over out of
// band (OAuth redirect completion) is persisted before anything else runs,
// so the subsequent current-user check picks it up.
func NewApp(cfg *config.Config) (*App, error) {
	tokens, err := session.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if cfg.Token != "" {
		if err := tokens.Set(cfg.Token); err != nil {
			return nil, fmt.Errorf("store handed-over token: %w", err)
		}
	}

	log := newLogger(cfg.LogFile)
	client := api.New(cfg.ServerURL, tokens, log)

	return &App{
		client: client,
		tokens: tokens,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
	}, nil
}

// newLogger logs to the given file, or to stderr at warn level when no file
// is configured. The TUI owns the terminal, so file logging is the default
// there.
func newLogger(path string) logging.Logger {
	if path == "" {
		return logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	}
	return logging.NewTextLogger(f, slog.LevelDebug)
}
