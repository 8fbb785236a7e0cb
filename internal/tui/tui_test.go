package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

var refNow = time.Date(2024, time.January, 10, 8, 15, 0, 0, time.UTC)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestSleepTimer_WakeUpNeedsRating(t *testing.T) {
	active := &models.ActiveSleep{Start: refNow.Add(-90 * time.Minute), Type: models.SleepMain}
	var m tea.Model = NewSleepTimerModel(active, 480, func() time.Time { return refNow })

	assert.Equal(t, 90*time.Minute, m.(SleepTimerModel).elapsed)

	// digits do nothing until the prompt is open
	m = press(m, keys("3"))
	_, ending := m.(SleepTimerModel).Ending()
	assert.False(t, ending)

	m = press(m, keys("e"))
	assert.True(t, m.(SleepTimerModel).prompting)

	// esc closes the prompt without leaving
	m = press(m, esc)
	assert.False(t, m.(SleepTimerModel).prompting)
	assert.False(t, m.(SleepTimerModel).exiting)

	m, cmd := press(m, keys("e")).Update(keys("4"))
	require.NotNil(t, cmd)
	rating, ending := m.(SleepTimerModel).Ending()
	assert.True(t, ending)
	assert.Equal(t, 4, rating)
}

func TestSleepTimer_QuitKeepsSleeping(t *testing.T) {
	active := &models.ActiveSleep{Start: refNow.Add(-time.Hour), Type: models.SleepNap}
	m := press(NewSleepTimerModel(active, 480, func() time.Time { return refNow }), keys("q"))

	_, ending := m.(SleepTimerModel).Ending()
	assert.False(t, ending)
	assert.True(t, m.(SleepTimerModel).exiting)
}

func TestRenderBigClock(t *testing.T) {
	out := renderBigClock(7*time.Hour + 5*time.Minute)
	assert.Len(t, splitLines(out), 5)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func TestAddWizard_SavesEntry(t *testing.T) {
	var got app.ManualEntry
	save := func(e app.ManualEntry) (*models.Session, error) {
		got = e
		return &models.Session{ID: "s1", Type: e.Type, Start: e.Start, End: e.End}, nil
	}

	var m tea.Model = NewAddEntryModel(save, func() time.Time { return refNow }, map[string]string{
		"type":   "nap",
		"start":  "23:00",
		"end":    "07:30",
		"rating": "4",
		"note":   "ok",
	})

	// type, start, end, rating, note, save
	m = press(m, enter, enter, enter, enter, enter)
	assert.Equal(t, StepSave, m.(AddEntryModel).currentStep)
	m = press(m, enter)

	saved, cancelled, err := m.(AddEntryModel).Result()
	require.NoError(t, err)
	assert.False(t, cancelled)
	require.NotNil(t, saved)

	assert.Equal(t, models.SleepNap, got.Type)
	assert.Equal(t, time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC), got.Start)
	assert.Equal(t, time.Date(2024, 1, 10, 7, 30, 0, 0, time.UTC), got.End)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, "ok", got.Note)
}

func TestAddWizard_RejectsBadRating(t *testing.T) {
	save := func(app.ManualEntry) (*models.Session, error) { return nil, errors.New("unreachable") }
	var m tea.Model = NewAddEntryModel(save, func() time.Time { return refNow }, map[string]string{
		"start": "23:00", "end": "07:00", "rating": "9",
	})

	m = press(m, enter, enter, enter, enter)
	am := m.(AddEntryModel)
	assert.Equal(t, StepRating, am.currentStep)
	assert.NotEmpty(t, am.validationErr)
}

func TestAddWizard_OverlapKeepsWizardOpen(t *testing.T) {
	save := func(app.ManualEntry) (*models.Session, error) {
		return nil, &sleep.OverlapError{SessionID: "other", Start: refNow.Add(-10 * time.Hour), End: refNow.Add(-2 * time.Hour)}
	}
	var m tea.Model = NewAddEntryModel(save, func() time.Time { return refNow }, map[string]string{
		"start": "23:00", "end": "07:00", "rating": "3",
	})

	m = press(m, enter, enter, enter, enter, enter, enter)
	am := m.(AddEntryModel)
	assert.Equal(t, StepSave, am.currentStep)
	assert.Contains(t, am.validationErr, "overlaps")
	saved, cancelled, err := am.Result()
	assert.Nil(t, saved)
	assert.False(t, cancelled)
	assert.NoError(t, err)
}

func TestAddWizard_EscWithoutInputCancels(t *testing.T) {
	m := press(NewAddEntryModel(nil, func() time.Time { return refNow }, nil), esc)
	_, cancelled, _ := m.(AddEntryModel).Result()
	assert.True(t, cancelled)
}

func monthLoader(grouped map[string][]models.Session) MonthLoader {
	return func(year int, month time.Month) (sleep.Summary, error) {
		return sleep.Summarize(sleep.MonthDays(year, month), grouped, 480), nil
	}
}

func TestCalendar_Navigation(t *testing.T) {
	grouped := map[string][]models.Session{
		"2024-01-31": {{ID: "a", Start: time.Date(2024, 1, 31, 22, 0, 0, 0, time.UTC), End: time.Date(2024, 2, 1, 6, 30, 0, 0, time.UTC)}},
	}
	var m tea.Model = NewCalendarModel(monthLoader(grouped), "2024-01-31")

	day, ok := m.(CalendarModel).Selected()
	require.True(t, ok)
	assert.Equal(t, "2024-01-31", day.Date)
	assert.True(t, day.Reached)

	m = press(m, keys("l"))
	day, _ = m.(CalendarModel).Selected()
	assert.Equal(t, "2024-02-01", day.Date)
	assert.False(t, day.Reached)

	m = press(m, keys("h"), keys("k"))
	day, _ = m.(CalendarModel).Selected()
	assert.Equal(t, "2024-01-24", day.Date)

	m = press(m, keys("["))
	day, _ = m.(CalendarModel).Selected()
	assert.Equal(t, "2023-12-24", day.Date)

	m = press(m, keys("t"))
	day, _ = m.(CalendarModel).Selected()
	assert.Equal(t, "2024-01-31", day.Date)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4))
	assert.Equal(t, "-----", Stars(0))
}
