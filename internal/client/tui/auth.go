package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"itemvault/internal/client/oauth"
)

// authForm is the sign-in / sign-up screen. One form serves both modes; the
// name field only participates while signupMode is set.
type authForm struct {
	signupMode bool
	name       textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      int
	errMsg     string
	busy       bool
	oauthURL   string
}

func newAuthForm() authForm {
	name := textinput.New()
	name.Prompt = "  Name     > "
	name.Placeholder = "Full Name"
	name.CharLimit = 100

	email := textinput.New()
	email.Prompt = "  Email    > "
	email.Placeholder = "you@example.com"
	email.CharLimit = 200

	password := textinput.New()
	password.Prompt = "  Password > "
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 200

	f := authForm{name: name, email: email, password: password}
	f.setFocus(0)
	return f
}

// fields returns the active inputs in tab order for the current mode.
func (f *authForm) fields() []*textinput.Model {
	if f.signupMode {
		return []*textinput.Model{&f.name, &f.email, &f.password}
	}
	return []*textinput.Model{&f.email, &f.password}
}

func (f *authForm) setFocus(i int) {
	fields := f.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	f.focus = i
	for n, ti := range fields {
		if n == i {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

func (f *authForm) toggleMode() {
	f.signupMode = !f.signupMode
	f.errMsg = ""
	f.setFocus(0)
}

// updateAuth handles key input while anonymous.
func (m Model) updateAuth(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The busy flag is the double-submit guard: while a login or signup is
	// in flight every submission path is closed, not just a disabled button.
	if m.auth.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.auth.setFocus(m.auth.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.auth.setFocus(m.auth.focus - 1)
		return m, nil
	case "ctrl+t":
		m.auth.toggleMode()
		return m, nil
	case "ctrl+g":
		return m.startOAuth()
	case "enter":
		return m.submitAuth()
	}

	var cmd tea.Cmd
	fields := m.auth.fields()
	*fields[m.auth.focus], cmd = fields[m.auth.focus].Update(msg)
	return m, cmd
}

func (m Model) submitAuth() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.auth.email.Value())
	password := m.auth.password.Value()
	if email == "" || password == "" {
		m.auth.errMsg = "email and password are required"
		return m, nil
	}

	// A new attempt clears the previous error.
	m.auth.errMsg = ""
	m.auth.busy = true

	if m.auth.signupMode {
		name := strings.TrimSpace(m.auth.name.Value())
		if name == "" {
			m.auth.busy = false
			m.auth.errMsg = "name is required"
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, signupCmd(m.client, name, email, password))
	}
	return m, tea.Batch(m.spinner.Tick, loginCmd(m.client, email, password))
}

// startOAuth opens a loopback callback listener and shows the URL to visit.
// The token comes back as an oauthTokenMsg.
func (m Model) startOAuth() (Model, tea.Cmd) {
	l, err := oauth.NewListener()
	if err != nil {
		m.auth.errMsg = fmt.Sprintf("could not start callback listener: %v", err)
		return m, nil
	}
	m.auth.errMsg = ""
	m.auth.oauthURL = m.client.AuthRedirectURL(l.RedirectURI())
	m.auth.busy = true
	return m, tea.Batch(m.spinner.Tick, waitOAuthCmd(l))
}

func (m Model) viewAuth() string {
	f := m.auth

	title := "Welcome Back!"
	subtitle := "Sign in to continue"
	action := "sign in"
	if f.signupMode {
		title = "Create Account"
		subtitle = "Get started with your new account"
		action = "sign up"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(mutedStyle.Render(subtitle) + "\n\n")

	if f.errMsg != "" {
		b.WriteString(errorStyle.Render("✖ "+f.errMsg) + "\n\n")
	}

	if f.signupMode {
		b.WriteString(f.name.View() + "\n")
	}
	b.WriteString(f.email.View() + "\n")
	b.WriteString(f.password.View() + "\n\n")

	if f.busy {
		if f.oauthURL != "" {
			b.WriteString(m.spinner.View() + " waiting for browser sign-in\n")
			b.WriteString(mutedStyle.Render("open: "+f.oauthURL) + "\n")
		} else {
			b.WriteString(m.spinner.View() + " " + action + "…\n")
		}
	} else {
		b.WriteString(helpStyle.Render("enter "+action+" • ctrl+t switch login/signup • ctrl+g google • ctrl+c quit") + "\n")
	}

	return panelStyle.Render(b.String())
}
