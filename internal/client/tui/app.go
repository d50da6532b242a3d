// Package tui is the interactive dashboard. The Model reconciles gateway
// results into view state over three independent axes: the auth state, the
// item collection, and the create/edit dialog.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"itemvault/internal/client/api"
	"itemvault/internal/client/models"
	"itemvault/internal/client/session"
	"itemvault/internal/logging"
)

// Model is the root Bubble Tea model.
//
// Auth axis: checking (initial, gates rendering) resolves exactly once into
// signed-in (user set) or anonymous (auth form shown). Items are meaningful
// only while signed in and are cleared whenever the user goes away.
type Model struct {
	client api.Client
	tokens session.Store
	log    logging.Logger

	width  int
	height int

	checking     bool
	user         *models.User
	items        []models.Item
	loadingItems bool
	cursor       int
	status       string

	// confirmDelete holds the id pending a y/n answer, empty when none.
	confirmDelete string

	auth    authForm
	modal   itemModal
	spinner spinner.Model
}

// New builds the root model around an API client and the session store the
// OAuth flow persists tokens into.
func New(client api.Client, tokens session.Store, log logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		client:   client,
		tokens:   tokens,
		log:      log,
		checking: true,
		auth:     newAuthForm(),
		modal:    newItemModal(),
		spinner:  sp,
	}
}

// Init starts the one-time auth resolution. Any out-of-band token was
// persisted to the session store before the program started, so the
// current-user check picks it up here.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, checkUserCmd(m.client))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case currentUserMsg:
		m.checking = false
		if msg.user == nil {
			return m, nil
		}
		m.user = msg.user
		m.loadingItems = true
		return m, tea.Batch(m.spinner.Tick, fetchItemsCmd(m.client))

	case authResultMsg:
		m.auth.busy = false
		m.auth.oauthURL = ""
		if msg.err != nil {
			m.auth.errMsg = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.auth = newAuthForm()
		m.loadingItems = true
		return m, tea.Batch(m.spinner.Tick, fetchItemsCmd(m.client))

	case itemsMsg:
		m.loadingItems = false
		if msg.err != nil {
			m.log.Error(context.Background(), "fetch items", "err", msg.err)
			m.status = "could not load items: " + msg.err.Error()
			return m, nil
		}
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case savedMsg:
		m.modal.saving = false
		if msg.err != nil {
			m.log.Error(context.Background(), "save item", "err", msg.err)
			m.modal.errMsg = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.modal.close()
		m.loadingItems = true
		return m, tea.Batch(m.spinner.Tick, fetchItemsCmd(m.client))

	case deletedMsg:
		if msg.err != nil {
			m.log.Error(context.Background(), "delete item", "err", msg.err)
			m.status = "delete failed: " + msg.err.Error()
		}
		// Refetch regardless of outcome; the server list is the truth.
		m.loadingItems = true
		return m, tea.Batch(m.spinner.Tick, fetchItemsCmd(m.client))

	case oauthTokenMsg:
		m.auth.busy = false
		m.auth.oauthURL = ""
		if msg.err != nil {
			m.auth.errMsg = "browser sign-in did not complete: " + msg.err.Error()
			return m, nil
		}
		if err := m.tokens.Set(msg.token); err != nil {
			m.auth.errMsg = "could not store token: " + err.Error()
			return m, nil
		}
		m.checking = true
		return m, tea.Batch(m.spinner.Tick, checkUserCmd(m.client))

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.checking {
		return m, nil
	}
	if m.user == nil {
		return m.updateAuth(msg)
	}
	if m.modal.open {
		return m.updateModal(msg)
	}
	return m.updateDashboard(msg)
}

// busy reports whether anything is in flight and the spinner should run.
func (m Model) busy() bool {
	return m.checking || m.loadingItems || m.auth.busy || m.modal.saving
}

func (m Model) View() string {
	if m.checking {
		return panelStyle.Render(m.spinner.View() + " signing you in…")
	}
	if m.user == nil {
		return m.viewAuth()
	}
	if m.modal.open {
		return m.viewModal()
	}
	return m.viewDashboard()
}
