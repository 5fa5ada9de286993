package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorWarn      = lipgloss.Color("214") // Amber
	colorDanger    = lipgloss.Color("196") // Red
)

// TabActive style for the selected tab label.
var TabActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// TabInactive style for unselected tab labels.
var TabInactive = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SelectedRow style for the highlighted journal row.
var SelectedRow = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalRow style for unselected journal rows.
var NormalRow = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// PendingScore style for provisional (survey-missing) daily totals.
var PendingScore = lipgloss.NewStyle().
	Foreground(colorWarn)

// BloodMarker style for the bloody-stool tally.
var BloodMarker = lipgloss.NewStyle().
	Foreground(colorDanger)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in the status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ReminderBar style for the survey-due banner.
var ReminderBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("232")).
	Background(colorWarn).
	Bold(true).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// FormTitle style for entry-form headers.
var FormTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// FormField style for unselected form fields.
var FormField = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 2)

// FormFieldActive style for the focused form field.
var FormFieldActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 2)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// severityStyles maps insight severities to row styles.
var severityStyles = map[string]lipgloss.Style{
	"low":    lipgloss.NewStyle().Foreground(colorSecondary).Padding(0, 1),
	"medium": lipgloss.NewStyle().Foreground(colorWarn).Padding(0, 1),
	"high":   lipgloss.NewStyle().Foreground(colorDanger).Bold(true).Padding(0, 1),
}
