package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemvault/internal/client/api"
	"itemvault/internal/client/models"
	"itemvault/internal/client/session"
)

// fakeClient counts gateway calls and serves canned results.
type fakeClient struct {
	user  *models.User
	items []models.Item

	loginErr  error
	itemsErr  error
	saveErr   error
	deleteErr error

	loginCalls   int
	signupCalls  int
	currentCalls int
	itemsCalls   int
	createCalls  int
	updateCalls  int
	deleteCalls  int
	logoutCalls  int

	deletedID string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.user, nil
}

func (f *fakeClient) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	f.signupCalls++
	return f.user, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.currentCalls++
	return f.user, nil
}

func (f *fakeClient) Items(ctx context.Context) ([]models.Item, error) {
	f.itemsCalls++
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	return f.items, nil
}

func (f *fakeClient) CreateItem(ctx context.Context, draft models.Draft) (*models.Item, error) {
	f.createCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	item := models.Item{ID: "new", Name: draft.Name, Description: draft.Description, CreatedAt: time.Now()}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, id string, draft models.Draft) (*models.Item, error) {
	f.updateCalls++
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Name = draft.Name
			f.items[i].Description = draft.Description
			return &f.items[i], nil
		}
	}
	return nil, &api.RequestError{Status: 404, Message: "not found"}
}

func (f *fakeClient) DeleteItem(ctx context.Context, id string) error {
	f.deleteCalls++
	f.deletedID = id
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeClient) AuthRedirectURL(redirectURI string) string {
	return "http://fake/auth/google/login?redirect_uri=" + redirectURI
}

func newTestModel(f *fakeClient) (Model, *session.Memory) {
	tokens := session.NewMemory()
	return New(f, tokens, nil), tokens
}

// step applies one message and returns the updated model and emitted command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// collect executes a command tree and returns every produced message,
// flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, collect(sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// drive pushes a message and keeps feeding produced messages back until the
// model settles, skipping spinner ticks so the loop terminates.
func drive(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		var cmd tea.Cmd
		m, cmd = step(t, m, next)
		for _, produced := range collect(cmd) {
			switch produced.(type) {
			case currentUserMsg, authResultMsg, itemsMsg, savedMsg, deletedMsg, oauthTokenMsg:
				queue = append(queue, produced)
			}
		}
	}
	return m
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestStartupResolvesToAnonymous(t *testing.T) {
	f := &fakeClient{}
	m, _ := newTestModel(f)

	require.True(t, m.checking, "auth state starts unknown")
	assert.Contains(t, m.View(), "signing you in", "global loading gate before resolution")

	m, _ = step(t, m, currentUserMsg{user: nil})

	assert.False(t, m.checking)
	assert.Nil(t, m.user)
	assert.Contains(t, m.View(), "Welcome Back!")
}

func TestStartupResolvesToSignedInAndFetches(t *testing.T) {
	f := &fakeClient{
		user:  &models.User{ID: "u1", Name: "Demo"},
		items: []models.Item{{ID: "i1", Name: "Book"}},
	}
	m, _ := newTestModel(f)

	m = drive(t, m, currentUserMsg{user: f.user})

	assert.False(t, m.checking)
	require.NotNil(t, m.user)
	assert.Equal(t, 1, f.itemsCalls)
	assert.Len(t, m.items, 1)
	assert.Contains(t, m.View(), "Book")
}

func TestLoginFailureShowsErrorThenClearsOnRetry(t *testing.T) {
	f := &fakeClient{loginErr: &api.AuthError{Status: 401, Message: "invalid email or password"}}
	m, _ := newTestModel(f)
	m, _ = step(t, m, currentUserMsg{user: nil})

	// Fill the form: email, then password.
	m = typeKeys(t, m, "demo@example.com")
	m, _ = step(t, m, keyMsg("tab"))
	m = typeKeys(t, m, "wrong")
	m = drive(t, m, keyMsg("enter"))

	assert.Equal(t, 1, f.loginCalls)
	assert.Equal(t, "invalid email or password", m.auth.errMsg)
	assert.Contains(t, m.View(), "invalid email or password")

	// Next attempt clears the message before the call resolves.
	f.loginErr = nil
	f.user = &models.User{ID: "u1", Name: "Demo"}
	m, _ = step(t, m, keyMsg("enter"))
	assert.Empty(t, m.auth.errMsg)
	assert.True(t, m.auth.busy)
}

func TestLoginSuccessEntersDashboard(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1", Name: "Demo"}}
	m, _ := newTestModel(f)
	m, _ = step(t, m, currentUserMsg{user: nil})

	m = typeKeys(t, m, "demo@example.com")
	m, _ = step(t, m, keyMsg("tab"))
	m = typeKeys(t, m, "password")
	m = drive(t, m, keyMsg("enter"))

	require.NotNil(t, m.user)
	assert.Equal(t, 1, f.loginCalls)
	assert.Equal(t, 1, f.itemsCalls)
	assert.Contains(t, m.View(), "signed in as Demo")
}

func TestDoubleSubmitIsGuarded(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1"}}
	m, _ := newTestModel(f)
	m, _ = step(t, m, currentUserMsg{user: nil})

	m = typeKeys(t, m, "demo@example.com")
	m, _ = step(t, m, keyMsg("tab"))
	m = typeKeys(t, m, "password")

	// First enter starts the attempt; the second lands while busy and
	// must not produce a second command.
	var cmd tea.Cmd
	m, cmd = step(t, m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.auth.busy)

	_, cmd = step(t, m, keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestSignOutClearsEverything(t *testing.T) {
	f := &fakeClient{
		user:  &models.User{ID: "u1", Name: "Demo"},
		items: []models.Item{{ID: "i1", Name: "Book"}},
	}
	m, tokens := newTestModel(f)
	require.NoError(t, tokens.Set("abc"))
	m = drive(t, m, currentUserMsg{user: f.user})
	require.Len(t, m.items, 1)

	m, _ = step(t, m, keyMsg("s"))

	assert.Nil(t, m.user)
	assert.Empty(t, m.items, "items are cleared unconditionally on sign-out")
	assert.Equal(t, 1, f.logoutCalls)
	assert.Contains(t, m.View(), "Welcome Back!")
}

func TestEmptyNameRejectedBeforeNetwork(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1", Name: "Demo"}}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})

	m, _ = step(t, m, keyMsg("a"))
	require.True(t, m.modal.open)

	// Submit with the name blank.
	var cmd tea.Cmd
	m, cmd = step(t, m, keyMsg("enter"))

	assert.Nil(t, cmd, "no command may be issued for an invalid draft")
	assert.Zero(t, f.createCalls)
	assert.Zero(t, f.updateCalls)
	assert.NotEmpty(t, m.modal.errMsg)
	assert.True(t, m.modal.open, "modal stays open")
}

func TestCreateFlowRefetchesAndCloses(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1", Name: "Demo"}}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})
	fetchesBefore := f.itemsCalls

	m, _ = step(t, m, keyMsg("a"))
	m = typeKeys(t, m, "Book")
	m, _ = step(t, m, keyMsg("tab"))
	m = typeKeys(t, m, "Read it")
	m = drive(t, m, keyMsg("enter"))

	assert.Equal(t, 1, f.createCalls)
	assert.Equal(t, fetchesBefore+1, f.itemsCalls, "mutation triggers a full refetch")
	assert.False(t, m.modal.open)
	assert.Contains(t, m.View(), "Book")
}

func TestEditSeedsFormFromItem(t *testing.T) {
	f := &fakeClient{
		user:  &models.User{ID: "u1", Name: "Demo"},
		items: []models.Item{{ID: "i1", Name: "Book", Description: "Read it"}},
	}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})

	m, _ = step(t, m, keyMsg("e"))
	require.True(t, m.modal.open)
	require.NotNil(t, m.modal.editing)
	assert.Equal(t, "Book", m.modal.name.Value())
	assert.Equal(t, "Read it", m.modal.desc.Value())

	// Saving goes through update, not create.
	m = drive(t, m, keyMsg("enter"))
	assert.Equal(t, 1, f.updateCalls)
	assert.Zero(t, f.createCalls)
}

func TestSaveFailureKeepsModalOpenWithMessage(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1", Name: "Demo"}, saveErr: errors.New("boom")}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})

	m, _ = step(t, m, keyMsg("a"))
	m = typeKeys(t, m, "Book")
	m = drive(t, m, keyMsg("enter"))

	assert.True(t, m.modal.open)
	assert.Contains(t, m.modal.errMsg, "boom")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := &fakeClient{
		user:  &models.User{ID: "u1", Name: "Demo"},
		items: []models.Item{{ID: "i1", Name: "Book"}},
	}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})

	m, _ = step(t, m, keyMsg("d"))
	assert.Equal(t, "i1", m.confirmDelete)
	assert.Zero(t, f.deleteCalls, "nothing deleted before confirmation")

	// Anything but y aborts.
	m, _ = step(t, m, keyMsg("n"))
	assert.Empty(t, m.confirmDelete)
	assert.Zero(t, f.deleteCalls)

	m, _ = step(t, m, keyMsg("d"))
	m = drive(t, m, keyMsg("y"))
	assert.Equal(t, 1, f.deleteCalls)
	assert.Equal(t, "i1", f.deletedID)
	assert.Empty(t, m.items, "refetch reflects the deletion")
}

func TestDeleteFailureSurfacesStatusAndStillRefetches(t *testing.T) {
	f := &fakeClient{
		user:      &models.User{ID: "u1", Name: "Demo"},
		items:     []models.Item{{ID: "i1", Name: "Book"}},
		deleteErr: &api.RequestError{Status: 500, Message: "boom"},
	}
	m, _ := newTestModel(f)
	m = drive(t, m, currentUserMsg{user: f.user})
	fetchesBefore := f.itemsCalls

	m, _ = step(t, m, keyMsg("d"))
	m = drive(t, m, keyMsg("y"))

	assert.Contains(t, m.status, "delete failed")
	assert.Equal(t, fetchesBefore+1, f.itemsCalls)
	assert.Contains(t, strings.ToLower(m.View()), "delete failed")
}

func TestOAuthTokenPersistsAndRechecks(t *testing.T) {
	f := &fakeClient{user: &models.User{ID: "u1", Name: "Demo"}}
	m, tokens := newTestModel(f)
	m, _ = step(t, m, currentUserMsg{user: nil})

	m = drive(t, m, oauthTokenMsg{token: "oauth-tok"})

	tok, ok := tokens.Get()
	require.True(t, ok)
	assert.Equal(t, "oauth-tok", tok)
	require.NotNil(t, m.user, "recheck signs the user in")
}
