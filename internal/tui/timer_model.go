package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// SleepTimerModel shows a running sleep and collects the wake-up rating
type SleepTimerModel struct {
	width  int
	height int
	active *models.ActiveSleep
	goal   int // minutes
	now    func() time.Time

	// Timer state
	elapsed   time.Duration
	animation int

	// UI state
	rating    int  // 1-5 once chosen
	prompting bool // rating prompt open
	ending    bool // user confirmed a rating, end the sleep
	exiting   bool // leave the sleep running
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// NewSleepTimerModel creates a timer for the active sleep
func NewSleepTimerModel(active *models.ActiveSleep, goalMinutes int, now func() time.Time) SleepTimerModel {
	if now == nil {
		now = time.Now
	}
	return SleepTimerModel{
		active:  active,
		goal:    goalMinutes,
		now:     now,
		elapsed: now().Sub(active.Start),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Init starts the ticker
func (m SleepTimerModel) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m SleepTimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = m.now().Sub(m.active.Start)
		m.animation = (m.animation + 1) % len(moonPhases)
		if m.ending || m.exiting {
			return m, nil
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.handleRatingKey(msg)
		}

		switch msg.String() {
		case "e", "E", "w", "W":
			// Wake up: ask for a rating before ending
			m.prompting = true
			return m, nil
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleRatingKey processes keys while the rating prompt is open
func (m SleepTimerModel) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4", "5":
		m.rating = int(key[0] - '0')
		m.ending = true
		return m, tea.Quit
	case "esc":
		m.prompting = false
		return m, nil
	case "ctrl+c":
		m.exiting = true
		return m, tea.Quit
	}
	return m, nil
}

// Ending reports whether the user chose to end the sleep, with the rating
func (m SleepTimerModel) Ending() (int, bool) {
	return m.rating, m.ending
}

// View renders the timer TUI
func (m SleepTimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	// Narrow view: just the clock
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderClockPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderClockPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

var moonPhases = []string{"🌑", "🌒", "🌓", "🌔", "🌕", "🌖", "🌗", "🌘"}

// renderClockPanel renders the left panel with the elapsed time
func (m SleepTimerModel) renderClockPanel(width, height int) string {
	center := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	phase := moonPhases[m.animation]
	label := "SLEEPING"
	if m.active.Type == models.SleepNap {
		label = "NAPPING"
	}

	var components []string
	components = append(components, center.
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Render(fmt.Sprintf("%s  %s  %s", phase, label, phase)))

	var clock []string
	for _, line := range strings.Split(renderBigClock(m.elapsed), "\n") {
		clock = append(clock, center.Render(line))
	}
	components = append(components, strings.Join(clock, "\n"))

	started := fmt.Sprintf("Since %s (%s)", m.active.Start.Format("15:04"), humanize.Time(m.active.Start))
	components = append(components, center.
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Render(started))

	if m.prompting {
		components = append(components, center.
			Foreground(lipgloss.Color(ColorMoon)).
			Bold(true).
			Render("How did you sleep? Press 1-5"))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// renderDetailsPanel renders the right panel with type, note and goal progress
func (m SleepTimerModel) renderDetailsPanel(width, height int) string {
	row := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)
	value := func(color, s string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1).
		Render("Tonight"))
	b.WriteString("\n\n")

	b.WriteString(row.Render("🛏  Type: " + value(ColorAccentBright, string(m.active.Type))))
	b.WriteString("\n")
	b.WriteString(row.Render("🕰  Started: " + value(ColorSecondaryText, m.active.Start.Format("Mon 02 Jan 15:04"))))
	b.WriteString("\n")

	note := "none"
	noteColor := ColorDisabledText
	if m.active.Note != "" {
		note = m.active.Note
		noteColor = ColorSecondaryText
	}
	b.WriteString(row.Render("📝 Note: " + value(noteColor, note)))
	b.WriteString("\n\n")

	mins := sleep.MinutesBetween(m.active.Start, m.active.Start.Add(m.elapsed))
	goalLine := fmt.Sprintf("🎯 Goal: %s / %s", sleep.FormatHoursMinutes(mins), sleep.FormatHoursMinutes(m.goal))
	b.WriteString(row.Render(goalLine))
	b.WriteString("\n")
	b.WriteString(row.Render(progressBar(mins, m.goal, min(width-16, 40))))

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

// progressBar renders done/total as a filled bar
func progressBar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if total > 0 && done < total {
		filled = done * width / total
	}
	color := ColorAccentBright
	if total > 0 && done >= total {
		color = ColorSuccess
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", width-filled))
}

// bigDigits is 5-row block art for the clock
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// renderBigClock renders elapsed time as HH:MM:SS block digits
func renderBigClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	text := fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)

	var lines [5]strings.Builder
	for _, r := range text {
		art, ok := bigDigits[r]
		if !ok {
			continue
		}
		for i := range art {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMoon)).Bold(true)
	rows := make([]string, len(lines))
	for i := range lines {
		rows[i] = style.Render(lines[i].String())
	}
	return strings.Join(rows, "\n")
}

// renderHelpBar renders the help bar at the bottom
func (m SleepTimerModel) renderHelpBar() string {
	helpText := "e wake up & rate · esc/q exit (keep sleeping) · ctrl+c force quit"
	if m.prompting {
		helpText = "1-5 rate & save · esc back"
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(helpText)
}
