package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxDetailIDs bounds the row ids listed in the detail pane.
const maxDetailIDs = 12

// =============================================================================
// EntryBrowserModel - Interactive result browser
// =============================================================================

// EntryBrowserModel is the bubbletea model for browsing ranked entries.
type EntryBrowserModel struct {
	Entries []tagcloud.Entry
	Stats   tagcloud.Stats
	Cursor  int
	Offset  int
	Height  int
	Detail  bool
}

// NewEntryBrowserModel creates a browser over a pipeline result.
func NewEntryBrowserModel(res *pipeline.Result) EntryBrowserModel {
	return EntryBrowserModel{
		Entries: res.Entries,
		Stats:   res.Stats,
		Height:  15,
	}
}

func (m EntryBrowserModel) Init() tea.Cmd {
	return nil
}

func (m EntryBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Entries); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the footer and the detail pane.
		m.Height = max(msg.Height-14, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m EntryBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tag Cloud"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  no entries"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Entries))
	maxSize := m.Entries[0].Size
	for _, e := range m.Entries {
		maxSize = max(maxSize, e.Size)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, entryLabel(e), formatSize(e.Size), bar(e.Size, maxSize)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Label", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return styleBar
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))
	if m.Stats.Clipped {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  of %d distinct", m.Stats.Distinct)))
	}
	b.WriteString("\n")

	if m.Detail {
		b.WriteString("\n")
		b.WriteString(m.detailView(m.Entries[m.Cursor]))
	}
	return b.String()
}

func (m EntryBrowserModel) detailView(e tagcloud.Entry) string {
	var b strings.Builder
	line := func(key, value string) {
		keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(8)
		b.WriteString("  " + keyStyle.Render(key) + " " + StyleValue.Render(value) + "\n")
	}

	line("key", e.Key.String())
	line("size", formatSize(e.Size))
	if len(e.Tags) > 0 {
		line("tags", strings.Join(e.Tags, ", "))
	}
	if e.Color != nil {
		line("color", swatch(e.Color))
	}

	ids := e.RowIDs
	more := ""
	if len(ids) > maxDetailIDs {
		more = fmt.Sprintf(" (+%d more)", len(ids)-maxDetailIDs)
		ids = ids[:maxDetailIDs]
	}
	line("rows", strings.Join(ids, ", ")+more)
	return b.String()
}
