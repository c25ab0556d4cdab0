package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/domain"
	"github.com/mmcdole/dojo/internal/tui/styles"
)

// View renders the current page with its header and footer
func (m Model) View() string {
	if m.page == nil {
		return ""
	}

	var body string
	if m.State == StateHome {
		body = m.renderHome()
	} else {
		body = m.page.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(m.readerHeight()).MaxHeight(m.readerHeight()).Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := styles.BadgeStyle.Render("dojo") + " " + m.page.page.Title

	if lesson, ok := m.page.env.LessonContext(); ok {
		if pos := m.Progress.Curriculum().Position(lesson); pos > 0 {
			title += styles.DimStyle.Render(fmt.Sprintf("  lesson %d/%d · %s",
				pos, m.Progress.Curriculum().Len(), lesson))
		}
	}
	if m.page.tracker.Completed() {
		title += " " + styles.DoneBadgeStyle.Render(styles.DoneChar+" complete")
	}

	return styles.HeaderStyle.Width(m.Width).MaxWidth(m.Width).Render(title)
}

func (m Model) renderFooter() string {
	var parts []string

	switch {
	case m.page.tracker.RedirectPending():
		parts = append(parts, styles.SuccessStyle.Render("All lessons complete, returning home..."))
	case m.Flash != "":
		parts = append(parts, styles.AccentStyle.Render(m.Flash))
	}

	if m.State == StateReading {
		parts = append(parts,
			fmt.Sprintf("%3.0f%%", m.page.viewport.ScrollPercent()*100),
			helpItem(Keys.Down), helpItem(Keys.PageDown), helpItem(Keys.Back), helpItem(Keys.Quit))
	} else {
		parts = append(parts,
			helpItem(Keys.Enter), helpItem(Keys.Filter), helpItem(Keys.Quit))
	}

	return styles.FooterStyle.Width(m.Width).MaxWidth(m.Width).Render(strings.Join(parts, "  "))
}

func helpItem(b key.Binding) string {
	h := b.Help()
	return styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
}

func (m Model) renderHome() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Security training"))
	b.WriteString("\n")
	if m.ShowProgress {
		b.WriteString(fmt.Sprintf("%s %d/%d lessons complete\n",
			styles.ProgressBar(m.Summary.Completed, m.Summary.Total, 20),
			m.Summary.Completed, m.Summary.Total))
		if m.Summary.AllDone() {
			b.WriteString(styles.SuccessStyle.Render("All training complete"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if m.Filtering || m.Filter.Value() != "" {
		b.WriteString(styles.FilterPromptStyle.Render(m.Filter.View()))
		b.WriteString("\n\n")
	}

	entries := m.visible()
	if len(entries) == 0 {
		b.WriteString(styles.DimStyle.Render("  no matching lessons"))
		return b.String()
	}

	for i, e := range entries {
		b.WriteString(m.renderEntry(e, i == m.Cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEntry(e homeEntry, selected bool) string {
	mark := " "
	lesson, hasLesson := e.page.LessonContext()
	if m.ShowProgress && hasLesson && m.Progress.Curriculum().Contains(lesson) {
		mark = styles.PendingDot
		if s, ok := m.Summary.StatusOf(lesson); ok && s.IsDone() {
			mark = styles.DoneCheck
		}
	}

	title := highlight(e.page.Title, e.matchedIndexes)
	detail := styles.DimStyle.Render(lessonLabel(e.page, lesson, hasLesson))

	row := fmt.Sprintf("%s %s  %s", mark, title, detail)
	if selected {
		return styles.SelectedItemStyle.Render(row)
	}
	return styles.NormalItemStyle.Render(row)
}

func lessonLabel(page content.Page, lesson domain.LessonID, ok bool) string {
	if !ok {
		return page.Path
	}
	return page.Path + " · " + string(lesson)
}

// highlight styles the runes at matched positions
func highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range []rune(s) {
		if hit[i] {
			b.WriteString(styles.MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
