package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"itemvault/internal/client/api"
	"itemvault/internal/client/models"
	"itemvault/internal/client/oauth"
)

// Messages folded into the model by Update. Each corresponds to the
// completion of one gateway call.
type (
	// currentUserMsg resolves the initial auth check. A nil user means
	// anonymous; the gateway never reports an error for this call.
	currentUserMsg struct{ user *models.User }

	// authResultMsg is the outcome of a login or signup attempt.
	authResultMsg struct {
		user *models.User
		err  error
	}

	// itemsMsg is a completed item fetch.
	itemsMsg struct {
		items []models.Item
		err   error
	}

	// savedMsg is a completed create or update.
	savedMsg struct{ err error }

	// deletedMsg is a completed delete.
	deletedMsg struct{ err error }

	// oauthTokenMsg is the redirect flow handing back a token.
	oauthTokenMsg struct {
		token string
		err   error
	}
)

// oauthWaitTimeout bounds how long the loopback listener waits for the
// browser to come back.
const oauthWaitTimeout = 3 * time.Minute

func checkUserCmd(c api.Client) tea.Cmd {
	return func() tea.Msg {
		user, _ := c.CurrentUser(context.Background())
		return currentUserMsg{user: user}
	}
}

func loginCmd(c api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.Login(context.Background(), email, password)
		return authResultMsg{user: user, err: err}
	}
}

func signupCmd(c api.Client, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.Signup(context.Background(), name, email, password)
		return authResultMsg{user: user, err: err}
	}
}

func fetchItemsCmd(c api.Client) tea.Cmd {
	return func() tea.Msg {
		items, err := c.Items(context.Background())
		return itemsMsg{items: items, err: err}
	}
}

// saveItemCmd resolves create vs. update by the caller's choice: a non-empty
// id updates, an empty one creates.
func saveItemCmd(c api.Client, id string, draft models.Draft) tea.Cmd {
	return func() tea.Msg {
		var err error
		if id == "" {
			_, err = c.CreateItem(context.Background(), draft)
		} else {
			_, err = c.UpdateItem(context.Background(), id, draft)
		}
		return savedMsg{err: err}
	}
}

func deleteItemCmd(c api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: c.DeleteItem(context.Background(), id)}
	}
}

func waitOAuthCmd(l *oauth.Listener) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), oauthWaitTimeout)
		defer cancel()
		token, err := l.Wait(ctx)
		return oauthTokenMsg{token: token, err: err}
	}
}
