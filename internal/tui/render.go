package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-file-manager/internal/model"
	"go-file-manager/internal/view"
)

const (
	cardWidth   = 20
	defaultCols = 4
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tabStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("8"))
	activeTab     = tabStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("12")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cardStyle     = lipgloss.NewStyle().Width(cardWidth).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	activeCard    = cardStyle.BorderForeground(lipgloss.Color("12"))
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	activeRow     = lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("12")).Bold(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 2)
	previewMarker = okStyle.Render("◆")
)

var sections = []model.Section{model.SectionAll, model.SectionRecent, model.SectionTrash}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("File Manager"))
	b.WriteString("  ")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	b.WriteString(m.search.View())
	b.WriteString("   ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("sort: %s · view: %s", m.query.Sort, m.query.Mode)))
	b.WriteString("\n\n")

	if m.modal != nil {
		b.WriteString(modalStyle.Render(m.modal.form.View() + "\n\n" + mutedStyle.Render("enter confirm · esc cancel")))
		b.WriteString("\n\n")
	} else {
		b.WriteString(titleStyle.Render(m.page.Title))
		b.WriteString("\n")
		b.WriteString(m.renderBody())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderGauge())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render(m.status))
		} else {
			b.WriteString(okStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(sections))
	for i, section := range sections {
		label := fmt.Sprintf("%d %s", i+1, section.Title())
		if section == m.query.Section {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderBody() string {
	if m.page.Empty {
		return mutedStyle.Render("\n  📂 No files found\n  Upload files or create a folder to get started")
	}

	if m.page.Mode == model.ViewList {
		return m.renderList()
	}
	return m.renderGrid()
}

func (m *Model) renderGrid() string {
	cols := defaultCols
	if m.width > 0 {
		cols = max(1, m.width/(cardWidth+4))
	}

	rows := make([]string, 0, len(m.page.Items)/cols+1)
	cards := make([]string, 0, cols)
	for i, item := range m.page.Items {
		style := cardStyle
		if i == m.cursor {
			style = activeCard
		}
		cards = append(cards, style.Render(renderCard(item)))

		if len(cards) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = cards[:0]
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCard(item view.Item) string {
	glyph := item.Glyph
	if item.Thumbnail != "" {
		glyph += " " + previewMarker
	}

	return strings.Join([]string{
		glyph,
		truncate(item.Name, cardWidth-2),
		mutedStyle.Render(item.SizeHuman),
	}, "\n")
}

func (m *Model) renderList() string {
	lines := make([]string, 0, len(m.page.Items))
	for i, item := range m.page.Items {
		marker := " "
		if item.Thumbnail != "" {
			marker = previewMarker
		}

		line := fmt.Sprintf("%s %s %-40s %10s  %s",
			item.Glyph, marker, truncate(item.Name, 40), item.SizeHuman, mutedStyle.Render(item.DateHuman))

		if i == m.cursor {
			lines = append(lines, activeRow.Render(line))
		} else {
			lines = append(lines, rowStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderGauge() string {
	usage := m.page.Usage
	return m.gauge.ViewAs(usage.BarPercent/100) + " " + usage.Text
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
