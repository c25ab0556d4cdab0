package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	DojoRed    = lipgloss.Color("#DC2626")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#E5A00D")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(DojoRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	CodeStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(DojoRed).
			Bold(true)
)

// Raw completion status characters (unstyled)
const (
	PendingChar = "●"
	DoneChar    = "✓"
)

// Completion status indicators
var (
	PendingDot = lipgloss.NewStyle().Foreground(DimGray).Render(PendingChar)
	DoneCheck  = lipgloss.NewStyle().Foreground(Green).Render(DoneChar)
)

// Chrome styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateDark).
			Padding(0, 1)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(DojoRed).
			Padding(0, 1)

	DoneBadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Green).
			Padding(0, 1)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(DojoRed)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Progress bar styles
var (
	ProgressFullStyle = lipgloss.NewStyle().
				Foreground(Green)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Filter and match styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(DojoRed).
				Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(DojoRed).
				Bold(true)
)

// ProgressBar renders a fixed-width bar for done out of total
func ProgressBar(done, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := min(done*width/total, width)
	return ProgressFullStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
