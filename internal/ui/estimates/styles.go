package estimates

import (
	"strings"

	"managrr/internal/domain/entities"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#16A34A")
	colorRed    = lipgloss.Color("#DC2626")
	colorYellow = lipgloss.Color("#CA8A04")
	colorGray   = lipgloss.Color("#6B7280")
	colorBlue   = lipgloss.Color("#2563EB")

	titleStyle    = lipgloss.NewStyle().Bold(true)
	amountStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorGray)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	approvedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	actionStyle   = lipgloss.NewStyle().Foreground(colorBlue)
	disabledStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	activeBadge   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorGreen).Padding(0, 1)
	bannerStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorGreen).Padding(0, 1)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBlue).Padding(0, 1)
)

// statusStyle picks the badge color for a status. Unknown statuses stay neutral.
func statusStyle(s entities.EstimateStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case entities.EstimateStatusApproved:
		return base.Foreground(colorGreen)
	case entities.EstimateStatusRejected:
		return base.Foreground(colorRed)
	case entities.EstimateStatusPending:
		return base.Foreground(colorYellow)
	default:
		return base.Foreground(colorGray)
	}
}

func statusBadge(s entities.EstimateStatus) string {
	label := string(s)
	if label == "" {
		label = "unknown"
	}
	return statusStyle(s).Render("[" + strings.ToLower(label) + "]")
}

func keyHint(key, label string) string {
	return actionStyle.Render("["+key+"]") + " " + label
}
