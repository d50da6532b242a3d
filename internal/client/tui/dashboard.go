package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateDashboard(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Pending delete confirmation swallows everything except the answer.
	if m.confirmDelete != "" {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmDelete
			m.confirmDelete = ""
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, deleteItemCmd(m.client, id))
		default:
			m.confirmDelete = ""
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		m.modal.openFor(nil)
		return m, nil

	case "e":
		if m.cursor >= 0 && m.cursor < len(m.items) {
			item := m.items[m.cursor]
			m.modal.openFor(&item)
		}
		return m, nil

	case "d":
		if m.cursor >= 0 && m.cursor < len(m.items) {
			m.confirmDelete = m.items[m.cursor].ID
		}
		return m, nil

	case "r":
		m.loadingItems = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, fetchItemsCmd(m.client))

	case "s":
		return m.signOut()
	}

	return m, nil
}

// signOut is always-succeeding locally: the token store and the view state
// are cleared even though no server round trip happens.
func (m Model) signOut() (Model, tea.Cmd) {
	if err := m.client.Logout(context.Background()); err != nil {
		m.log.Warn(context.Background(), "logout", "err", err)
	}
	m.user = nil
	m.items = nil
	m.cursor = 0
	m.status = ""
	m.confirmDelete = ""
	m.modal.close()
	m.auth = newAuthForm()
	return m, nil
}

func (m Model) viewDashboard() string {
	var b strings.Builder

	header := fmt.Sprintf("%s   %s",
		titleStyle.Render("Itemvault"),
		mutedStyle.Render("signed in as "+m.user.Name))
	b.WriteString(header + "\n\n")

	switch {
	case m.loadingItems:
		b.WriteString(m.spinner.View() + " loading items…\n")
	case len(m.items) == 0:
		b.WriteString(mutedStyle.Render("No items yet. Press 'a' to add one.") + "\n")
	default:
		for i, item := range m.items {
			prefix := "  "
			name := item.Name
			if i == m.cursor {
				prefix = selectedStyle.Render("> ")
				name = titleStyle.Render(name)
			}
			line := fmt.Sprintf("%s%s  %s", prefix, name, mutedStyle.Render(item.Description))
			b.WriteString(line + "\n")
			b.WriteString("    " + mutedStyle.Render("created "+item.CreatedAt.Format("2006-01-02")) + "\n")
		}
	}

	b.WriteString("\n")
	if m.confirmDelete != "" {
		b.WriteString(errorStyle.Render("delete this item? (y/n)") + "\n")
	} else if m.status != "" {
		b.WriteString(errorStyle.Render("✖ "+m.status) + "\n")
	} else {
		b.WriteString(helpStyle.Render("a add • e edit • d delete • r reload • s sign out • q quit") + "\n")
	}

	return panelStyle.Render(b.String())
}
