package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/wifipass/internal/credential"
	"github.com/muurk/wifipass/internal/ui"
)

// credentialItem wraps a Record for use with bubbles/list
type credentialItem struct {
	record credential.Record
}

// FilterValue filters by network name only
func (c credentialItem) FilterValue() string { return c.record.NetworkName }

func toItems(records []credential.Record) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = credentialItem{record: r}
	}
	return items
}

// credentialDelegate renders a record as a name line and a secret line
type credentialDelegate struct{}

func (d credentialDelegate) Height() int { return 2 }

func (d credentialDelegate) Spacing() int { return 1 }

func (d credentialDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d credentialDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(credentialItem)
	if !ok {
		return
	}

	name := ItemStyle.Render("  " + ci.record.NetworkName)
	if index == m.Index() {
		name = SelectedItemStyle.Render("→ " + ci.record.NetworkName)
	}
	fmt.Fprintf(w, "%s\n    %s", name, ui.RenderSecret(ci.record.Secret))
}
