package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Path      lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
}

// NewStyles returns colored styles for terminals and plain ones otherwise.
func NewStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Header:        plain,
			Subheader:     plain,
			Success:       plain,
			Warning:       plain,
			Error:         plain,
			Muted:         plain,
			Path:          plain,
			StatusSuccess: plain.SetString("[ok]"),
			StatusWarning: plain.SetString("[warn]"),
			StatusError:   plain.SetString("[fail]"),
		}
	}

	green := lipgloss.Color("10")
	yellow := lipgloss.Color("11")
	red := lipgloss.Color("9")
	gray := lipgloss.Color("8")
	cyan := lipgloss.Color("14")

	return &Styles{
		Header:        lipgloss.NewStyle().Bold(true).Foreground(cyan),
		Subheader:     lipgloss.NewStyle().Bold(true),
		Success:       lipgloss.NewStyle().Foreground(green),
		Warning:       lipgloss.NewStyle().Foreground(yellow),
		Error:         lipgloss.NewStyle().Foreground(red),
		Muted:         lipgloss.NewStyle().Foreground(gray),
		Path:          lipgloss.NewStyle().Underline(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(green).SetString("✓"),
		StatusWarning: lipgloss.NewStyle().Foreground(yellow).SetString("!"),
		StatusError:   lipgloss.NewStyle().Foreground(red).SetString("✗"),
	}
}
