package main

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every command.
var (
	salmonPink = lipgloss.Color("#FFB3BA") // primary accent
	coralPink  = lipgloss.Color("#FFCCCB") // secondary accent
	mintGreen  = lipgloss.Color("#A8E6CF") // success, upcoming
	mutedGray  = lipgloss.Color("#6B7280") // secondary text
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(coralPink).
			Bold(true).
			MarginTop(1)

	activeStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Width(16)

	successStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(salmonPink).
			Padding(0, 1)
)
