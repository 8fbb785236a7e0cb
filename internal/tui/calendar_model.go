package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/parser"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// MonthLoader returns the summary for one calendar month
type MonthLoader func(year int, month time.Month) (sleep.Summary, error)

// CalendarModel is a month grid with a day detail panel
type CalendarModel struct {
	width  int
	height int

	load  MonthLoader
	today string

	year    int
	month   time.Month
	summary sleep.Summary
	cursor  int // index into summary.Days
	err     error
}

// NewCalendarModel opens the calendar on the month containing today ("yyyy-mm-dd")
func NewCalendarModel(load MonthLoader, today string) CalendarModel {
	t, err := time.Parse(sleep.DateLayout, today)
	if err != nil {
		t = time.Now()
	}

	m := CalendarModel{load: load, today: today}
	m = m.loadMonth(t.Year(), t.Month())
	m.cursor = t.Day() - 1
	m.clampCursor()
	return m
}

// loadMonth swaps in another month's summary
func (m CalendarModel) loadMonth(year int, month time.Month) CalendarModel {
	// normalize month overflow like time.Date does
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	m.year, m.month = first.Year(), first.Month()

	m.summary, m.err = m.load(m.year, m.month)
	return m
}

func (m *CalendarModel) clampCursor() {
	if m.cursor >= len(m.summary.Days) {
		m.cursor = len(m.summary.Days) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init initializes the model
func (m CalendarModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "left", "h":
			return m.move(-1), nil
		case "right", "l":
			return m.move(1), nil
		case "up", "k":
			return m.move(-7), nil
		case "down", "j":
			return m.move(7), nil
		case "[", "p":
			m = m.loadMonth(m.year, m.month-1)
			m.clampCursor()
			return m, nil
		case "]", "n":
			m = m.loadMonth(m.year, m.month+1)
			m.clampCursor()
			return m, nil
		case "t":
			return NewCalendarModel(m.load, m.today).withSize(m.width, m.height), nil
		}
	}

	return m, nil
}

func (m CalendarModel) withSize(w, h int) CalendarModel {
	m.width, m.height = w, h
	return m
}

// move shifts the cursor by delta days, crossing into adjacent months
func (m CalendarModel) move(delta int) CalendarModel {
	target := m.cursor + delta
	switch {
	case target < 0:
		m = m.loadMonth(m.year, m.month-1)
		m.cursor = len(m.summary.Days) + target
	case target >= len(m.summary.Days):
		over := target - len(m.summary.Days)
		m = m.loadMonth(m.year, m.month+1)
		m.cursor = over
	default:
		m.cursor = target
	}
	m.clampCursor()
	return m
}

// Selected returns the day under the cursor
func (m CalendarModel) Selected() (sleep.DaySummary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.summary.Days) {
		return sleep.DaySummary{}, false
	}
	return m.summary.Days[m.cursor], true
}

// View renders the TUI
func (m CalendarModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("Error: " + m.err.Error())
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(leftWidth),
		" ",
		m.renderDay(rightWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left, "", content, "", m.renderHelpBar())
}

// renderGrid renders the month with reached days highlighted
func (m CalendarModel) renderGrid(width int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Render(fmt.Sprintf("🌙 %s %d", m.month, m.year))
	b.WriteString(title)
	b.WriteString("\n\n")

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for _, wd := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		b.WriteString(header.Render(fmt.Sprintf(" %s ", wd)))
	}
	b.WriteString("\n")

	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // Monday first
	b.WriteString(strings.Repeat("    ", offset))

	for i, day := range m.summary.Days {
		b.WriteString(m.renderCell(i, day))
		if (offset+i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n\n")

	sum := m.summary
	goalLine := fmt.Sprintf("Goal %s · reached %d/%d days · avg %s",
		sleep.FormatHoursMinutes(sum.GoalMinutes),
		sum.DaysReached, len(sum.Days),
		sleep.FormatHoursMinutes(sum.AverageMinutes))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(goalLine))

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1).
		Render(b.String())
}

// renderCell renders one day number
func (m CalendarModel) renderCell(i int, day sleep.DaySummary) string {
	color := ColorDisabledText
	switch {
	case day.Reached:
		color = ColorSuccess
	case len(day.Sessions) > 0:
		color = ColorWarning
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if day.Date == m.today {
		style = style.Underline(true)
	}
	if i == m.cursor {
		style = style.
			Background(lipgloss.Color(ColorAccentMain)).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Bold(true)
	}
	return " " + style.Render(fmt.Sprintf("%2d", i+1)) + " "
}

// renderDay renders the selected day's totals and sessions
func (m CalendarModel) renderDay(width int) string {
	day, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Render(parser.FormatDay(day.Date, m.today)))
	b.WriteString("\n\n")

	status := "not reached"
	statusColor := ColorWarning
	if day.Reached {
		status = "goal reached"
		statusColor = ColorSuccess
	}
	fmt.Fprintf(&b, "Total  %s  (%s)\n", sleep.FormatHoursMinutes(day.Totals.TotalMinutes),
		lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(status))
	fmt.Fprintf(&b, "Score  %.1f\n\n", day.Totals.Score)

	if len(day.Sessions) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render("No sleep recorded"))
	}
	for _, s := range day.Sessions {
		b.WriteString(SessionLine(s))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Padding(1).Render(b.String())
}

// SessionLine renders one session on a single line
func SessionLine(s models.Session) string {
	mins := sleep.MinutesBetween(s.Start, s.End)
	line := fmt.Sprintf("%s → %s  %-4s %-7s %s",
		s.Start.Format("15:04"), s.End.Format("15:04"), s.Type,
		sleep.FormatHoursMinutes(mins), Stars(s.RatingValue()))
	if s.Note != "" {
		line += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Render(s.Note)
	}
	return line
}

// Stars renders a 1-5 rating
func Stars(rating int) string {
	if rating <= 0 {
		return "-----"
	}
	rating = min(rating, 5)
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// renderHelpBar renders the help bar with hotkey hints
func (m CalendarModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("←/→ day · ↑/↓ week · [/] month · t today · q/esc quit")
}
