package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Task status colors
	StatusAssigned   = lipgloss.Color("#9CA3AF") // Gray
	StatusReceived   = lipgloss.Color("#60A5FA") // Blue
	StatusInProgress = lipgloss.Color("#F59E0B") // Amber
	StatusDone       = lipgloss.Color("#10B981") // Green

	// Priority colors
	PriorityHigh   = lipgloss.Color("#F87171") // Red
	PriorityMedium = lipgloss.Color("#F59E0B") // Amber
	PriorityLow    = lipgloss.Color("#60A5FA") // Blue

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// Tab styles
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	// TabBadge marks the inbox tab when unfinished tasks are waiting
	TabBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)

	// Status badge styles
	StatusBadge = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1)

	// Task cards
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	Overdue = lipgloss.NewStyle().
		Bold(true).
		Foreground(ErrorColor)

	ReadReceipt = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	// Stats header
	StatsBar = lipgloss.NewStyle().
			Foreground(MutedColor).
			MarginBottom(1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Error banner
	ErrorBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	// Flash message for new assignments
	Flash = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)
)
