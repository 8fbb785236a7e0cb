package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// Step represents the current step in the wizard
type Step int

const (
	StepType Step = iota
	StepStart
	StepEnd
	StepRating
	StepNote
	StepSave
)

var stepLabels = []string{"Type", "Fell asleep", "Woke up", "Rating", "Note", "Save"}

// SaveEntryFunc persists a manual entry
type SaveEntryFunc func(app.ManualEntry) (*models.Session, error)

// AddEntryModel is the step-by-step wizard for entering a past sleep
type AddEntryModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	save SaveEntryFunc
	now  func() time.Time

	// Entry data
	typ    models.SleepType
	start  time.Time
	end    time.Time
	rating int
	note   string

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	saved         *models.Session

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

// NewAddEntryModel creates the wizard. prefilled may carry type, start, end,
// rating and note as typed on the command line.
func NewAddEntryModel(save SaveEntryFunc, now func() time.Time, prefilled map[string]string) AddEntryModel {
	if now == nil {
		now = time.Now
	}

	inputs := make([]textinput.Model, int(StepSave))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepType].Placeholder = "main or nap (Enter for main)"
	inputs[StepType].CharLimit = 4
	inputs[StepType].Focus()

	inputs[StepStart].Placeholder = "HH:mm or yyyy-mm-dd HH:mm (required)"
	inputs[StepStart].CharLimit = 20

	inputs[StepEnd].Placeholder = "HH:mm (rolls to next day) or yyyy-mm-dd HH:mm"
	inputs[StepEnd].CharLimit = 20

	inputs[StepRating].Placeholder = "1-5 (required)"
	inputs[StepRating].CharLimit = 1

	inputs[StepNote].Placeholder = "Anything worth remembering (Enter to skip)"
	inputs[StepNote].CharLimit = 500

	m := AddEntryModel{
		currentStep: StepType,
		inputs:      inputs,
		save:        save,
		now:         now,
		typ:         models.SleepMain,
	}

	keys := map[string]Step{"type": StepType, "start": StepStart, "end": StepEnd, "rating": StepRating, "note": StepNote}
	for key, step := range keys {
		if v, ok := prefilled[key]; ok {
			m.inputs[step].SetValue(v)
		}
	}
	m.note = m.inputs[StepNote].Value()

	return m
}

// Init initializes the model
func (m AddEntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AddEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := max(30, min(80, m.width*2/3-10))
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			return m.handleModalKey(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
		if m.currentStep == StepNote {
			m.note = m.inputs[StepNote].Value()
		}
	}
	return m, cmd
}

// handleModalKey processes keys while the save confirmation is open
func (m AddEntryModel) handleModalKey(msg tea.KeyMsg) (AddEntryModel, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		m.saveModalChoice = !m.saveModalChoice
	case "y", "Y":
		m.saveModalChoice = true
		return m.handleSaveChoice()
	case "n", "N":
		m.saveModalChoice = false
		return m.handleSaveChoice()
	case "enter":
		return m.handleSaveChoice()
	case "esc":
		m.showSaveModal = false
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// handleEnter validates the current step and advances
func (m AddEntryModel) handleEnter() (AddEntryModel, tea.Cmd) {
	m.validationErr = ""
	value := strings.TrimSpace(m.inputs[min(m.currentStep, StepNote)].Value())

	switch m.currentStep {
	case StepType:
		typ := models.SleepType(strings.ToLower(value))
		if value == "" {
			typ = models.SleepMain
		}
		if !typ.Valid() {
			m.validationErr = "Type must be main or nap"
			return m, nil
		}
		m.typ = typ

	case StepStart:
		start, err := m.parseStart(value)
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.start = start

	case StepEnd:
		end, err := m.parseEnd(value)
		if err != nil {
			m.validationErr = err.Error()
			return m, nil
		}
		m.end = end

	case StepRating:
		r, err := strconv.Atoi(value)
		if err != nil || r < 1 || r > 5 {
			m.validationErr = "Rating must be between 1 and 5"
			return m, nil
		}
		m.rating = r

	case StepNote:
		m.note = value

	case StepSave:
		return m.saveEntry()
	}

	return m.nextStep()
}

// parseStart reads the start time. A bare clock time later than now means last night.
func (m AddEntryModel) parseStart(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("Start time is required")
	}
	now := m.now()
	start, err := parser.ParseDateTime(value, now)
	if err != nil {
		return time.Time{}, err
	}
	if len(strings.Fields(value)) == 1 && start.After(now) {
		start = start.AddDate(0, 0, -1)
	}
	return start, nil
}

// parseEnd reads the end time. A bare clock time lands on the start's day and
// rolls over when it is not after the start.
func (m AddEntryModel) parseEnd(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("End time is required")
	}
	if len(strings.Fields(value)) == 1 {
		h, mm, err := parser.ParseClock(value)
		if err != nil {
			return time.Time{}, err
		}
		end := parser.At(m.start, h, mm)
		if !end.After(m.start) {
			end = end.AddDate(0, 0, 1)
		}
		return end, nil
	}
	return parser.ParseDateTime(value, m.now())
}

// nextStep moves to the next step
func (m AddEntryModel) nextStep() (AddEntryModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m AddEntryModel) prevStep() (AddEntryModel, tea.Cmd) {
	if m.currentStep > StepType {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	m.validationErr = ""
	return m, textinput.Blink
}

// hasChanges reports whether anything was typed
func (m AddEntryModel) hasChanges() bool {
	for _, in := range m.inputs {
		if strings.TrimSpace(in.Value()) != "" {
			return true
		}
	}
	return false
}

// entry assembles the collected values
func (m AddEntryModel) entry() app.ManualEntry {
	return app.ManualEntry{Type: m.typ, Start: m.start, End: m.end, Rating: m.rating, Note: m.note}
}

// saveEntry persists the entry. Validation failures keep the wizard open.
func (m AddEntryModel) saveEntry() (AddEntryModel, tea.Cmd) {
	if m.start.IsZero() || m.end.IsZero() || m.rating == 0 {
		m.validationErr = "Start, end and rating are required"
		return m, nil
	}

	s, err := m.save(m.entry())
	if err != nil {
		if sleep.IsValidation(err) {
			m.validationErr = err.Error()
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}

	m.completed = true
	m.saved = s
	return m, tea.Quit
}

// handleSaveChoice handles the save confirmation modal response
func (m AddEntryModel) handleSaveChoice() (AddEntryModel, tea.Cmd) {
	m.showSaveModal = false
	if !m.saveModalChoice {
		m.cancelled = true
		return m, tea.Quit
	}
	return m.saveEntry()
}

// Result reports how the wizard ended
func (m AddEntryModel) Result() (saved *models.Session, cancelled bool, err error) {
	return m.saved, m.cancelled, m.err
}

// View renders the TUI
func (m AddEntryModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	if m.showSaveModal {
		return m.renderSaveModal()
	}

	wizard := m.renderWizard()
	if m.width < 85 {
		return lipgloss.NewStyle().Padding(1).Render(wizard + "\n\n" + m.renderPreview())
	}

	rightWidth := 44
	leftWidth := m.width - rightWidth - 4

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().
			Width(leftWidth).
			Height(m.height-2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(1).
			Render(wizard),
		" ",
		lipgloss.NewStyle().Width(rightWidth).Height(m.height-2).Padding(1).Render(m.renderPreview()),
	)
}

// renderWizard renders the step list and the current input
func (m AddEntryModel) renderWizard() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("🌙 Log a Sleep"))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	for i, label := range stepLabels {
		step := Step(i)
		if step == StepSave {
			b.WriteString("\n")
			label = "💾 " + label
		}
		switch {
		case step == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case step < m.currentStep:
			b.WriteString(done.Render("✓ " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.currentStep < StepSave {
		b.WriteString(stepLabels[m.currentStep])
		b.WriteString("\n")
		b.WriteString(m.inputs[m.currentStep].View())
	} else {
		b.WriteString("Press Enter to save, ↑ to go back")
	}

	if m.validationErr != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("✗ " + m.validationErr))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next · ↑/shift+tab back · esc quit"))

	return b.String()
}

// renderPreview shows the entry as it will be saved
func (m AddEntryModel) renderPreview() string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("-")

	row := func(name, v string) string {
		if v == "" {
			v = empty
		} else {
			v = value.Render(v)
		}
		return label.Render(fmt.Sprintf("%-10s", name)) + v + "\n"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Render("Preview"))
	b.WriteString("\n\n")
	b.WriteString(row("Type", string(m.typ)))

	var start, end, length string
	if !m.start.IsZero() {
		start = m.start.Format("Mon 02 Jan 15:04")
	}
	if !m.end.IsZero() {
		end = m.end.Format("Mon 02 Jan 15:04")
		length = sleep.FormatHoursMinutes(sleep.MinutesBetween(m.start, m.end))
	}
	b.WriteString(row("Start", start))
	b.WriteString(row("End", end))
	b.WriteString(row("Length", length))

	rating := ""
	if m.rating > 0 {
		rating = Stars(m.rating)
	}
	b.WriteString(row("Rating", rating))
	b.WriteString(row("Note", m.note))
	return b.String()
}

// renderSaveModal renders the save confirmation modal
func (m AddEntryModel) renderSaveModal() string {
	yes := lipgloss.NewStyle().Padding(0, 2)
	no := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yes = yes.Background(lipgloss.Color(ColorAccentBright)).Foreground(lipgloss.Color("#000000")).Bold(true)
	} else {
		no = no.Background(lipgloss.Color(ColorError)).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}

	content := "Save this sleep?\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Center, yes.Render("Yes"), "   ", no.Render("No")) +
		"\n\n← → or Y/N to choose, Enter to confirm\nEsc to keep editing"

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
