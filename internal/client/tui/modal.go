package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"itemvault/internal/client/models"
)

// itemModal is the create/edit dialog. A nil editing pointer means the save
// will create; otherwise it updates the targeted item.
type itemModal struct {
	open    bool
	editing *models.Item
	name    textinput.Model
	desc    textinput.Model
	focus   int
	saving  bool
	errMsg  string
}

func newItemModal() itemModal {
	name := textinput.New()
	name.Prompt = "  Name        > "
	name.CharLimit = 200

	desc := textinput.New()
	desc.Prompt = "  Description > "
	desc.CharLimit = 500

	return itemModal{name: name, desc: desc}
}

// openFor seeds the form: empty for create, from the target for edit.
func (d *itemModal) openFor(item *models.Item) {
	d.open = true
	d.editing = item
	d.errMsg = ""
	d.saving = false
	if item != nil {
		d.name.SetValue(item.Name)
		d.desc.SetValue(item.Description)
	} else {
		d.name.SetValue("")
		d.desc.SetValue("")
	}
	d.setFocus(0)
}

// close resets the dialog, dropping the edit target.
func (d *itemModal) close() {
	d.open = false
	d.editing = nil
	d.saving = false
	d.errMsg = ""
	d.name.SetValue("")
	d.desc.SetValue("")
}

func (d *itemModal) fields() []*textinput.Model {
	return []*textinput.Model{&d.name, &d.desc}
}

func (d *itemModal) setFocus(i int) {
	fields := d.fields()
	if i < 0 {
		i = len(fields) - 1
	}
	if i >= len(fields) {
		i = 0
	}
	d.focus = i
	for n, ti := range fields {
		if n == i {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

// draft builds the payload from the form fields.
func (d *itemModal) draft() models.Draft {
	return models.Draft{
		Name:        strings.TrimSpace(d.name.Value()),
		Description: strings.TrimSpace(d.desc.Value()),
	}
}

func (m Model) updateModal(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modal.saving {
		// Same single guard as the auth form: nothing submits twice.
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal.close()
		return m, nil
	case "tab", "down":
		m.modal.setFocus(m.modal.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.modal.setFocus(m.modal.focus - 1)
		return m, nil
	case "enter":
		return m.submitModal()
	}

	var cmd tea.Cmd
	fields := m.modal.fields()
	*fields[m.modal.focus], cmd = fields[m.modal.focus].Update(msg)
	return m, cmd
}

func (m Model) submitModal() (Model, tea.Cmd) {
	draft := m.modal.draft()
	// Rejected here, before any network call.
	if err := draft.Validate(); err != nil {
		m.modal.errMsg = err.Error()
		return m, nil
	}

	m.modal.errMsg = ""
	m.modal.saving = true

	id := ""
	if m.modal.editing != nil {
		id = m.modal.editing.ID
	}
	return m, tea.Batch(m.spinner.Tick, saveItemCmd(m.client, id, draft))
}

func (m Model) viewModal() string {
	d := m.modal

	title := "Create New Item"
	if d.editing != nil {
		title = "Edit Item"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	if d.errMsg != "" {
		b.WriteString(errorStyle.Render("✖ "+d.errMsg) + "\n\n")
	}
	b.WriteString(d.name.View() + "\n")
	b.WriteString(d.desc.View() + "\n\n")

	if d.saving {
		b.WriteString(m.spinner.View() + " saving…\n")
	} else {
		b.WriteString(helpStyle.Render("enter save • tab next field • esc cancel") + "\n")
	}

	return panelStyle.Render(b.String())
}
