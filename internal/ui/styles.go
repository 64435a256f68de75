package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Core color palette
	primaryColor  = lipgloss.Color("#0969DA") // Blue
	accentColor   = lipgloss.Color("#2DA44E") // Green
	errorColor    = lipgloss.Color("#CF222E") // Red
	textColor     = lipgloss.Color("#FFFFFF") // White
	dimColor      = lipgloss.Color("#6E7681") // Gray
	titleColor    = lipgloss.Color("#39D353") // Bright green
	dateColor     = lipgloss.Color("#A371F7") // Light purple
	sourceColor   = lipgloss.Color("#FFA657") // Light orange
	likedColor    = lipgloss.Color("#F778BA") // Pink
	selectedBg    = lipgloss.Color("#2D333B") // Selected item background
	numberColor   = lipgloss.Color("#D29922") // Orange, quantifiable highlights
	clusterColor  = lipgloss.Color("#58A6FF") // Light blue, merged-source notes
	secondaryText = lipgloss.Color("#8250DF") // Purple

	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Background(selectedBg).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	textStyle = lipgloss.NewStyle().
			Foreground(textColor)

	dateStyle = lipgloss.NewStyle().
			Foreground(dateColor).
			Italic(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(sourceColor).
			Bold(true)

	likedStyle = lipgloss.NewStyle().
			Foreground(likedColor).
			Bold(true)

	numberStyle = lipgloss.NewStyle().
			Foreground(numberColor).
			Bold(true)

	clusterStyle = lipgloss.NewStyle().
			Foreground(clusterColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	searchStyle = lipgloss.NewStyle().
			Foreground(secondaryText).
			Bold(true)

	readingStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)
)
