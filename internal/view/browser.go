package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/contact"
)

// chromeHeight is the number of lines the browser draws around the table.
const chromeHeight = 4

// Browser is the Bubble Tea model for scrolling through contacts.
type Browser struct {
	table    table.Model
	total    int
	quitting bool
}

// NewBrowser creates a Browser over a snapshot of contacts.
func NewBrowser(contacts []contact.Contact) Browser {
	firstW, lastW, phoneW := len("First"), len("Last"), len("Phone")
	rows := make([]table.Row, len(contacts))
	for i, c := range contacts {
		rows[i] = table.Row{c.FirstName, c.LastName, c.PhoneNumber}
		firstW = max(firstW, lipgloss.Width(c.FirstName))
		lastW = max(lastW, lipgloss.Width(c.LastName))
		phoneW = max(phoneW, lipgloss.Width(c.PhoneNumber))
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "First", Width: firstW},
			{Title: "Last", Width: lastW},
			{Title: "Phone", Width: phoneW},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(1, min(len(rows), 10))),
	)

	return Browser{table: t, total: len(contacts)}
}

// Init has no startup command.
func (b Browser) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages; navigation is delegated to the table.
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			b.quitting = true
			return b, tea.Quit
		}
	case tea.WindowSizeMsg:
		b.table.SetHeight(max(1, msg.Height-chromeHeight))
		return b, nil
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the title, table, and key help.
func (b Browser) View() string {
	if b.quitting {
		return ""
	}
	title := headerStyle.Render("Contacts") + " " + dimStyle.Render(countLabel(b.total))
	help := dimStyle.Render("↑/↓ move • q quit")
	return title + "\n" + b.table.View() + "\n" + help + "\n"
}

// Selected returns the contact under the cursor, or false when the list is empty.
func (b Browser) Selected() (contact.Contact, bool) {
	row := b.table.SelectedRow()
	if len(row) < 3 {
		return contact.Contact{}, false
	}
	return contact.Contact{FirstName: row[0], LastName: row[1], PhoneNumber: row[2]}, true
}
