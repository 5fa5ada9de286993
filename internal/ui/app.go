package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nroussel/gutlog/internal/insight"
	"github.com/nroussel/gutlog/internal/journal"
	"github.com/nroussel/gutlog/internal/score"
)

// mode selects which screen the app is showing.
type mode int

const (
	modeJournal mode = iota
	modeInsights
	modeMovement
	modeSurvey
	modeNote
)

// AppConfig carries the command closures the App runs against the store.
// IMPORTANT: App does NOT hold the store. All persistence goes through these.
type AppConfig struct {
	LoadDays     func() tea.Cmd
	LoadInsights func() tea.Cmd
	SaveMovement func(bristol int, blood bool) tea.Cmd
	SaveSurvey   func(s journal.Survey) tea.Cmd
	SaveNote     func(content string, tags []string) tea.Cmd
}

// surveyFields are the four survey questions in form order.
var surveyFields = []string{"Incontinence", "Abdominal pain", "General well-being", "Antidiarrheal taken"}

// Answer option cycles per survey field.
var (
	yesNoOptions = []journal.YesNo{journal.No, journal.Yes}
	painOptions  = []journal.PainLevel{journal.PainNone, journal.PainMild, journal.PainModerate, journal.PainSevere}
	stateOptions = []journal.GeneralState{
		journal.StatePerfect, journal.StateVeryGood, journal.StateGood,
		journal.StateAverage, journal.StateBad, journal.StateVeryBad,
	}
)

// App is the root Bubble Tea model.
type App struct {
	cfg AppConfig

	mode   mode
	days   []score.Summary
	cursor int

	insights []insight.Insight

	// Movement capture state.
	bristol int
	blood   bool

	// Survey form state.
	surveyField   int
	surveyAnswers [4]int // index into the option cycle per field

	// Note entry state.
	noteInput textinput.Model

	surveyDue string // day key of a pending reminder, empty when none
	err       error
	width     int
	height    int
	ready     bool
	loading   bool
}

// NewApp creates the root model with the given command closures.
func NewApp(cfg AppConfig) App {
	input := textinput.New()
	input.Placeholder = "Ate out, two coffees #coffee #restaurant"
	input.CharLimit = 500

	return App{
		cfg:       cfg,
		bristol:   4,
		noteInput: input,
	}
}

// Init loads the journal and kicks off the first analysis.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.cfg.LoadDays != nil {
		a.loading = true
		cmds = append(cmds, a.cfg.LoadDays())
	}
	if a.cfg.LoadInsights != nil {
		cmds = append(cmds, a.cfg.LoadInsights())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case DaysLoaded:
		a.loading = false
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.days = msg.Days
			a.err = nil
			if a.cursor >= len(a.days) && len(a.days) > 0 {
				a.cursor = len(a.days) - 1
			}
		}
		return a, nil

	case InsightsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.insights = msg.Insights
		}
		return a, nil

	case MovementSaved:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		return a.reloadDays()

	case SurveySaved:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		if msg.Day == a.surveyDue {
			a.surveyDue = ""
		}
		return a.reloadDays()

	case NoteSaved:
		if msg.Err != nil {
			a.err = msg.Err
		}
		return a, nil

	case ScoreRecomputed:
		return a.reloadDays()

	case SurveyDue:
		a.surveyDue = msg.Day
		return a, nil

	case RefreshTick:
		return a.reloadDays()
	}

	// Forward everything else to the note input while it is focused.
	if a.mode == modeNote {
		var cmd tea.Cmd
		a.noteInput, cmd = a.noteInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

// reloadDays re-fetches the journal rows.
func (a App) reloadDays() (tea.Model, tea.Cmd) {
	if a.cfg.LoadDays == nil {
		return a, nil
	}
	a.loading = true
	return a, a.cfg.LoadDays()
}

// handleKeyMsg processes keyboard input, dispatching per mode.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The note editor owns the keyboard except for exit keys.
	if a.mode == modeNote {
		return a.handleNoteKey(msg)
	}

	// Clear any existing error on key press.
	if a.err != nil {
		a.err = nil
	}

	switch a.mode {
	case modeMovement:
		return a.handleMovementKey(msg)
	case modeSurvey:
		return a.handleSurveyKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab":
		if a.mode == modeJournal {
			a.mode = modeInsights
		} else {
			a.mode = modeJournal
		}
		return a, nil

	case "j", "down":
		if a.mode == modeJournal && a.cursor < len(a.days)-1 {
			a.cursor++
		}
		return a, nil

	case "k", "up":
		if a.mode == modeJournal && a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "g", "home":
		a.cursor = 0
		return a, nil

	case "G", "end":
		if len(a.days) > 0 {
			a.cursor = len(a.days) - 1
		}
		return a, nil

	case "m":
		a.mode = modeMovement
		a.bristol = 4
		a.blood = false
		return a, nil

	case "s":
		a.mode = modeSurvey
		a.surveyField = 0
		a.surveyAnswers = [4]int{}
		return a, nil

	case "n":
		a.mode = modeNote
		a.noteInput.SetValue("")
		return a, a.noteInput.Focus()

	case "r":
		return a.reloadDays()
	}

	return a, nil
}

// handleMovementKey captures a bowel movement: digits pick the Bristol type,
// b toggles blood, enter saves.
func (a App) handleMovementKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "q":
		a.mode = modeJournal
		return a, nil

	case "1", "2", "3", "4", "5", "6", "7":
		a.bristol = int(key[0] - '0')
		return a, nil

	case "j", "down", "h", "left":
		if a.bristol > 1 {
			a.bristol--
		}
		return a, nil

	case "k", "up", "l", "right":
		if a.bristol < 7 {
			a.bristol++
		}
		return a, nil

	case "b":
		a.blood = !a.blood
		return a, nil

	case "enter":
		a.mode = modeJournal
		if a.cfg.SaveMovement != nil {
			return a, a.cfg.SaveMovement(a.bristol, a.blood)
		}
		return a, nil
	}
	return a, nil
}

// handleSurveyKey drives the four-question survey form.
func (a App) handleSurveyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		a.mode = modeJournal
		return a, nil

	case "j", "down", "tab":
		if a.surveyField < len(surveyFields)-1 {
			a.surveyField++
		}
		return a, nil

	case "k", "up", "shift+tab":
		if a.surveyField > 0 {
			a.surveyField--
		}
		return a, nil

	case "l", "right", " ":
		a.surveyAnswers[a.surveyField] = (a.surveyAnswers[a.surveyField] + 1) % optionCount(a.surveyField)
		return a, nil

	case "h", "left":
		n := optionCount(a.surveyField)
		a.surveyAnswers[a.surveyField] = (a.surveyAnswers[a.surveyField] + n - 1) % n
		return a, nil

	case "enter":
		a.mode = modeJournal
		if a.cfg.SaveSurvey != nil {
			return a, a.cfg.SaveSurvey(a.buildSurvey())
		}
		return a, nil
	}
	return a, nil
}

// handleNoteKey routes keys to the note editor, saving on enter.
func (a App) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeJournal
		a.noteInput.Blur()
		return a, nil

	case "ctrl+c":
		return a, tea.Quit

	case "enter":
		content := strings.TrimSpace(a.noteInput.Value())
		a.mode = modeJournal
		a.noteInput.Blur()
		if content == "" || a.cfg.SaveNote == nil {
			return a, nil
		}
		return a, a.cfg.SaveNote(content, extractTags(content))
	}

	var cmd tea.Cmd
	a.noteInput, cmd = a.noteInput.Update(msg)
	return a, cmd
}

// buildSurvey converts the form's option indexes to stored answers.
func (a App) buildSurvey() journal.Survey {
	return journal.Survey{
		Incontinence:  yesNoOptions[a.surveyAnswers[0]],
		Pain:          painOptions[a.surveyAnswers[1]],
		State:         stateOptions[a.surveyAnswers[2]],
		Antidiarrheal: yesNoOptions[a.surveyAnswers[3]],
	}
}

// optionCount returns the length of the option cycle for a survey field.
func optionCount(field int) int {
	switch field {
	case 1:
		return len(painOptions)
	case 2:
		return len(stateOptions)
	default:
		return len(yesNoOptions)
	}
}

// extractTags pulls #tag words out of note content, lowercased, in order of
// first appearance.
func extractTags(content string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(content) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.ToLower(strings.Trim(word[1:], ".,;:!?"))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.mode {
	case modeInsights:
		b.WriteString(a.renderInsights())
	case modeMovement:
		b.WriteString(a.renderMovementForm())
	case modeSurvey:
		b.WriteString(a.renderSurveyForm())
	case modeNote:
		b.WriteString(a.renderNoteForm())
	default:
		b.WriteString(a.renderJournal())
	}
	b.WriteString("\n")

	if a.surveyDue != "" {
		b.WriteString(ReminderBar.Width(a.width).Render("Daily survey pending for " + a.surveyDue + " — press 's' to fill it in"))
		b.WriteString("\n")
	}
	if a.err != nil {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: " + a.err.Error() + " (press any key to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString(a.renderStatusBar())
	return b.String()
}

// renderTabs draws the Journal/Insights tab strip.
func (a App) renderTabs() string {
	journalTab := TabInactive.Render("Journal")
	insightsTab := TabInactive.Render("Insights")
	if a.mode == modeInsights {
		insightsTab = TabActive.Render("Insights")
	} else {
		journalTab = TabActive.Render("Journal")
	}
	return journalTab + " " + insightsTab
}

// renderJournal draws one row per day, newest first.
func (a App) renderJournal() string {
	if len(a.days) == 0 {
		return HelpStyle.Render("No entries yet. Press 'm' to record a movement.")
	}

	var b strings.Builder
	for i, day := range a.days {
		line := formatDayRow(day)
		if i == a.cursor {
			b.WriteString(SelectedRow.Width(a.width).Render(line))
		} else {
			b.WriteString(NormalRow.Width(a.width).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatDayRow renders one journal line: day, tallies, and the score or its
// provisional stand-in.
func formatDayRow(day score.Summary) string {
	scorePart := fmt.Sprintf("score %d", day.Score)
	if !day.HasScore {
		scorePart = fmt.Sprintf("~%d (survey pending)", day.Provisional)
	}

	bloodPart := ""
	if day.Bloody > 0 {
		bloodPart = BloodMarker.Render(fmt.Sprintf("  %d bloody", day.Bloody))
	}

	return fmt.Sprintf("%s  %2d stools%s  %s", day.Day, day.Movements, bloodPart, scorePart)
}

// renderInsights lists the formatted correlation insights by severity color.
func (a App) renderInsights() string {
	if len(a.insights) == 0 {
		return HelpStyle.Render("No patterns found yet. Keep tagging notes and they will show up here.")
	}

	var b strings.Builder
	for _, ins := range a.insights {
		style, ok := severityStyles[string(ins.Severity)]
		if !ok {
			style = NormalRow
		}
		b.WriteString(style.Render(ins.Icon + " " + ins.Title))
		b.WriteString("\n")
		b.WriteString(NormalRow.Render("   " + ins.Description))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMovementForm draws the Bristol picker.
func (a App) renderMovementForm() string {
	var b strings.Builder
	b.WriteString(FormTitle.Render("Record movement"))
	b.WriteString("\n\n")

	for t := 1; t <= 7; t++ {
		label := fmt.Sprintf("Type %d", t)
		if t == a.bristol {
			b.WriteString(FormFieldActive.Render("> " + label))
		} else {
			b.WriteString(FormField.Render("  " + label))
		}
		b.WriteString("\n")
	}

	blood := "[ ] blood"
	if a.blood {
		blood = BloodMarker.Render("[x] blood")
	}
	b.WriteString("\n")
	b.WriteString(FormField.Render(blood))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("1-7 pick type · b toggle blood · enter save · esc cancel"))
	return b.String()
}

// renderSurveyForm draws the four-question daily survey.
func (a App) renderSurveyForm() string {
	answers := [4]string{
		string(yesNoOptions[a.surveyAnswers[0]]),
		string(painOptions[a.surveyAnswers[1]]),
		string(stateOptions[a.surveyAnswers[2]]),
		string(yesNoOptions[a.surveyAnswers[3]]),
	}

	var b strings.Builder
	b.WriteString(FormTitle.Render("Daily survey"))
	b.WriteString("\n\n")
	for i, field := range surveyFields {
		line := fmt.Sprintf("%-22s < %s >", field, answers[i])
		if i == a.surveyField {
			b.WriteString(FormFieldActive.Render("> " + line))
		} else {
			b.WriteString(FormField.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("j/k move · h/l change answer · enter save · esc cancel"))
	return b.String()
}

// renderNoteForm draws the note editor.
func (a App) renderNoteForm() string {
	var b strings.Builder
	b.WriteString(FormTitle.Render("New note"))
	b.WriteString("\n\n")
	b.WriteString(FormField.Render(a.noteInput.View()))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Use #tags to mark foods or events · enter save · esc cancel"))
	return b.String()
}

// renderStatusBar draws the bottom key-hint bar.
func (a App) renderStatusBar() string {
	hints := []string{
		StatusBarKey.Render("m") + StatusBarText.Render(" movement"),
		StatusBarKey.Render("s") + StatusBarText.Render(" survey"),
		StatusBarKey.Render("n") + StatusBarText.Render(" note"),
		StatusBarKey.Render("tab") + StatusBarText.Render(" insights"),
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"),
	}
	status := strings.Join(hints, "  ")
	if a.loading {
		status += StatusBarText.Render("  · loading…")
	}
	return StatusBar.Width(a.width).Render(status)
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Days returns the loaded journal rows (for testing).
func (a App) Days() []score.Summary {
	return a.days
}
