package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/sleeplog/internal/app"
	"github.com/balkashynov/sleeplog/internal/models"
	"github.com/balkashynov/sleeplog/internal/sleep"
)

// RunSleepTimer shows the running sleep. Waking up with a rating ends it.
func RunSleepTimer(ctx context.Context, a *app.App) error {
	st := a.Status()
	if !st.Sleeping() {
		return errors.New("no sleep in progress")
	}

	active := *st.Active
	active.Start = active.Start.In(a.Location())

	p := tea.NewProgram(NewSleepTimerModel(&active, a.GoalMinutes(), a.Now), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(SleepTimerModel)
	if !ok {
		return nil
	}
	rating, ending := m.Ending()
	if !ending {
		fmt.Println("💤 Still sleeping. Use 'sleeplog end' when you wake up.")
		return nil
	}

	s, err := a.EndSleep(ctx, rating, "")
	if err != nil {
		return fmt.Errorf("failed to end sleep: %w", err)
	}
	if s != nil {
		PrintEnded(s)
	}
	return nil
}

// PrintEnded prints the summary line for a finished sleep
func PrintEnded(s *models.Session) {
	mins := sleep.MinutesBetween(s.Start, s.End)
	fmt.Printf("☀️  Good morning! %s logged: %s %s\n", s.Type, sleep.FormatHoursMinutes(mins), Stars(s.RatingValue()))
}

// RunCalendar opens the month calendar on today's month
func RunCalendar(ctx context.Context, a *app.App) error {
	load := func(year int, month time.Month) (sleep.Summary, error) {
		return a.Month(ctx, year, month)
	}

	p := tea.NewProgram(NewCalendarModel(load, a.Today()), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// RunAddWizard starts the interactive manual entry wizard
func RunAddWizard(ctx context.Context, a *app.App, prefilled map[string]string) error {
	save := func(e app.ManualEntry) (*models.Session, error) {
		return a.AddManual(ctx, e)
	}

	p := tea.NewProgram(NewAddEntryModel(save, a.Now, prefilled), tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(AddEntryModel)
	if !ok {
		return nil
	}

	saved, cancelled, err := m.Result()
	switch {
	case err != nil:
		fmt.Printf("❌ Error: %v\n", err)
	case cancelled:
		fmt.Println("❌ Entry cancelled.")
	case saved != nil:
		mins := sleep.MinutesBetween(saved.Start, saved.End)
		fmt.Printf("✅ Logged %s sleep %s → %s (%s)\n", saved.Type,
			saved.Start.Format("Mon 02 Jan 15:04"), saved.End.Format("15:04"), sleep.FormatHoursMinutes(mins))
	}
	return nil
}
