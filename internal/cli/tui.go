package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FieldBrowserModel - Interactive descriptor field browser
// =============================================================================

// fieldEntry is one browsable metadata field.
type fieldEntry struct {
	Label string
	Value string   // single-line value shown in the list
	Lines []string // full value shown in the detail pane
}

// FieldBrowserModel is the bubbletea model for browsing descriptor fields.
type FieldBrowserModel struct {
	Title  string
	Fields []fieldEntry
	Cursor int
	Height int
	Offset int
}

// NewFieldBrowserModel builds the browser model from a descriptor.
func NewFieldBrowserModel(d *descriptor.Descriptor) FieldBrowserModel {
	return FieldBrowserModel{
		Title:  fmt.Sprintf("%s %s", d.Name, d.VersionString()),
		Fields: fieldEntries(d),
		Height: 15,
	}
}

func (m FieldBrowserModel) Init() tea.Cmd {
	return nil
}

func (m FieldBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Fields)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FieldBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Fields) {
		end = len(m.Fields)
	}

	for i := m.Offset; i < end; i++ {
		f := m.Fields[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-18s %s", cursor, f.Label, listDimStyle.Render(f.Value))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	for _, line := range m.Fields[m.Cursor].Lines {
		b.WriteString("  " + StyleValue.Render(line) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Fields))))

	return b.String()
}

// runBrowser starts the interactive field browser.
func runBrowser(d *descriptor.Descriptor) error {
	p := tea.NewProgram(NewFieldBrowserModel(d))
	_, err := p.Run()
	return err
}

// fieldEntries flattens the descriptor into browsable entries, skipping
// empty optional fields.
func fieldEntries(d *descriptor.Descriptor) []fieldEntry {
	var fields []fieldEntry

	add := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		fields = append(fields, fieldEntry{
			Label: label,
			Value: firstLine(value),
			Lines: strings.Split(value, "\n"),
		})
	}
	addList := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		fields = append(fields, fieldEntry{
			Label: label,
			Value: fmt.Sprintf("%d entries", len(values)),
			Lines: values,
		})
	}

	add("Name", d.Name)
	add("Version", d.VersionString())
	add("Summary", d.Summary)
	add("Description", d.Description)
	add("Long description", d.LongDescription)
	add("Organisation", d.Organisation)
	add("Maintainer", contact(d.Maintainer, d.MaintainerEmail))
	add("Author", contact(d.Author, d.AuthorEmail))
	add("License", d.LicenseID())
	add("Homepage", d.URL)
	add("Download", d.DownloadURL)
	if d.ExtraName != "" {
		add(d.ExtraName, d.ExtraURL)
	}
	addList("Platforms", d.PlatformList())
	add("Release", boolLabel(d.Release))
	addList("Classifiers", d.Classifiers)
	addList("Provides", d.Provides)
	addList("Requires", d.Requires)
	for _, group := range sortedGroups(d.ExtraRequires) {
		addList("Extra ["+group+"]", d.ExtraRequires[group])
	}

	return fields
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
