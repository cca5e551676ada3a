package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/simibol/planpoint/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor returns the style for a session risk level.
func RiskColor(risk domain.RiskLevel) lipgloss.Style {
	switch risk {
	case domain.RiskOnTrack:
		return StyleGreen
	case domain.RiskWarning:
		return StyleYellow
	case domain.RiskLate:
		return StyleOrange
	case domain.RiskAtRisk:
		return StyleRed
	default:
		return StyleDim
	}
}

// RiskIndicator returns a colored risk pill such as "● AT RISK".
func RiskIndicator(risk domain.RiskLevel) string {
	label := strings.ToUpper(strings.ReplaceAll(string(risk), "-", " "))
	if label == "" {
		label = "UNKNOWN"
	}
	return RiskColor(risk).Render("● " + label)
}

// StatusPill returns a colored indicator for a session status.
func StatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.SessionInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.SessionCompleted:
		return StyleDim.Render("✔ Done")
	case domain.SessionTodo:
		return StyleYellow.Render("◌ Todo")
	default:
		return StyleDim.Render(string(status))
	}
}

// SeverityPill returns a colored notification severity marker.
func SeverityPill(sev domain.NotificationSeverity) string {
	switch sev {
	case domain.SeverityUrgent:
		return StyleRed.Render("▲ urgent")
	case domain.SeverityWarning:
		return StyleYellow.Render("● warning")
	default:
		return StyleBlue.Render("· info")
	}
}

// ProgressPill returns a colored weekly progress status.
func ProgressPill(status domain.ProgressStatus) string {
	switch status {
	case domain.ProgressOnTrack:
		return StyleGreen.Render("on track")
	case domain.ProgressBehind:
		return StyleYellow.Render("behind")
	default:
		return StyleRed.Render("at risk")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len([]rune(upper)))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
