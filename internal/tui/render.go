package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/dojo/internal/content"
	"github.com/mmcdole/dojo/internal/tui/styles"
)

// renderPage wraps a page body to width and styles headings and code blocks.
// Every rendered line is one viewport row.
func renderPage(page content.Page, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for i, line := range strings.Split(page.Body, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch {
		case strings.HasPrefix(line, "#"):
			b.WriteString(styles.HeadingStyle.Render(strings.TrimSpace(strings.TrimLeft(line, "#"))))
		case strings.HasPrefix(line, "    "):
			b.WriteString(styles.CodeStyle.Render(line))
		case strings.TrimSpace(line) == "":
		default:
			b.WriteString(wrap.Render(line))
		}
	}
	return b.String()
}
