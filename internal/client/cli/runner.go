package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"itemvault/internal/client/config"
	"itemvault/internal/client/tui"
)

// Run dispatches a subcommand and returns a process exit code. With no
// subcommand the interactive dashboard starts.
func Run(args []string, cfg *config.Config) int {
	app, err := NewApp(cfg)
	if err != nil {
		fail(os.Stderr, err.Error())
		return 1
	}

	cmd := "ui"
	var rest []string
	if len(args) > 0 {
		cmd, rest = args[0], args[1:]
	}

	ctx := context.Background()

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ui":
		return app.runUI()
	case "login":
		return app.doLogin(ctx)
	case "signup":
		return app.doSignup(ctx)
	case "logout":
		return app.doLogout(ctx)
	case "whoami":
		return app.doWhoAmI(ctx)
	case "ls":
		return app.doList(ctx)
	case "add":
		if len(rest) == 0 {
			fail(app.errOut, "usage: itemvault add <name> [description...]")
			return 2
		}
		return app.doAdd(ctx, rest[0], strings.Join(rest[1:], " "))
	case "edit":
		if len(rest) < 2 {
			fail(app.errOut, "usage: itemvault edit <id> <name> [description...]")
			return 2
		}
		return app.doEdit(ctx, rest[0], rest[1], strings.Join(rest[2:], " "))
	case "rm":
		if len(rest) != 1 {
			fail(app.errOut, "usage: itemvault rm <id>")
			return 2
		}
		return app.doRemove(ctx, rest[0])
	}

	fail(app.errOut, "unknown subcommand: "+cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

// runUI starts the interactive dashboard. It refuses to run without a
// terminal; scripts should use the plain subcommands instead.
func (a *App) runUI() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail(a.errOut, "the dashboard needs a terminal; use the subcommands for scripting")
		return 1
	}

	p := tea.NewProgram(tui.New(a.client, a.tokens, a.log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fail(a.errOut, "ui: "+err.Error())
		return 1
	}
	return 0
}

func PrintHelp() {
	fmt.Printf(`itemvault - manage your items from the terminal

Usage:
  itemvault [flags] <subcommand> [args]

Subcommands:
  ui                          Interactive dashboard (default)
  login                       Sign in with email and password
  signup                      Create an account
  logout                      Drop the stored session token
  whoami                      Show the signed-in user
  ls                          List items
  add <name> [description]    Create an item
  edit <id> <name> [descr.]   Replace an item's name and description
  rm <id>                     Delete an item (asks for confirmation)

Flags:
  -s <url>      server base URL (default http://localhost:8080)
  -d <dir>      data directory (default ~/.itemvault)
  -token <tok>  adopt a token from an OAuth redirect, then proceed
  -log <file>   write logs to file

Examples:
  itemvault login
  itemvault add "Book" "Read it"
  itemvault ls
`)
}
