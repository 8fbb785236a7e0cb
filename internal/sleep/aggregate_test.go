package sleep

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/sleeplog/internal/models"
)

func rating(r int) *int { return &r }

func session(id string, start, end time.Time, r int) models.Session {
	s := models.Session{ID: id, Type: models.SleepMain, Start: start, End: end}
	if r > 0 {
		s.Rating = rating(r)
	}
	return s
}

func TestDayTotals(t *testing.T) {
	sessions := []models.Session{
		session("a", at(1, 22, 0), at(2, 6, 0), 5),
		session("b", at(2, 13, 0), at(2, 13, 30), 3),
	}

	got := DayTotals(sessions)
	assert.Equal(t, 510, got.TotalMinutes)
	assert.InDelta(t, 41.5, got.Score, 1e-9)
}

func TestDayTotals_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, DayTotals(nil))
}

func TestDayTotals_MissingRatingScoresZero(t *testing.T) {
	got := DayTotals([]models.Session{session("a", at(1, 22, 0), at(2, 6, 0), 0)})
	assert.Equal(t, 480, got.TotalMinutes)
	assert.Zero(t, got.Score)
}

func TestDayTotals_IgnoresStoredDuration(t *testing.T) {
	s := session("a", at(1, 22, 0), at(2, 6, 0), 4)
	stale := 10
	s.DurationMinutes = &stale

	assert.Equal(t, 480, DayTotals([]models.Session{s}).TotalMinutes)
}

func TestGroupByDay(t *testing.T) {
	two := MustParseBoundary("02:00")
	sessions := []models.Session{
		session("late", at(1, 23, 0), at(2, 7, 0), 4),
		session("after-midnight", at(2, 1, 30), at(2, 7, 0), 4),
		session("nap", at(2, 14, 0), at(2, 14, 40), 3),
		session("next", at(3, 0, 10), at(3, 8, 0), 5),
	}

	grouped := GroupByDay(sessions, two)
	require.Len(t, grouped, 2)

	ids := func(list []models.Session) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []string{"late", "after-midnight"}, ids(grouped["2024-01-01"]))
	assert.Equal(t, []string{"nap", "next"}, ids(grouped["2024-01-02"]))
}

func TestGroupByDay_Additivity(t *testing.T) {
	sessions := []models.Session{
		session("a", at(1, 23, 0), at(2, 7, 0), 4),
		session("b", at(2, 1, 30), at(2, 3, 0), 2),
		session("c", at(2, 14, 0), at(2, 14, 40), 3),
		session("d", at(5, 0, 10), at(5, 8, 0), 5),
		session("e", at(9, 12, 0), at(9, 11, 0), 1), // inverted legacy row
	}

	var want int
	for _, s := range sessions {
		want += MinutesBetween(s.Start, s.End)
	}

	for _, b := range []string{"00:00", "02:00", "04:30", "23:59"} {
		var got int
		for _, bucket := range GroupByDay(sessions, MustParseBoundary(b)) {
			got += DayTotals(bucket).TotalMinutes
		}
		assert.Equal(t, want, got, "boundary %s", b)
	}
}

func TestMonthDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		count int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		days := MonthDays(tt.year, tt.month)
		require.Len(t, days, tt.count, "%d-%02d", tt.year, tt.month)
		assert.Equal(t, time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC).Format(DateLayout), days[0])
		assert.Equal(t, time.Date(tt.year, tt.month, tt.count, 0, 0, 0, 0, time.UTC).Format(DateLayout), days[tt.count-1])
	}
}

func TestWeekDays(t *testing.T) {
	// 2024-01-03 is a Wednesday
	days := WeekDays(time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}, days)

	// Sunday belongs to the week that started the previous Monday
	sunday := WeekDays(time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-01", sunday[0])
}

func TestGoalMinutes(t *testing.T) {
	mins := 450
	zero := 0
	seven, eight := 7, 8

	assert.Equal(t, 480, GoalMinutes(nil))
	assert.Equal(t, 450, GoalMinutes(&models.Settings{GoalHours: &eight, GoalMinutes: &mins}))
	assert.Equal(t, 420, GoalMinutes(&models.Settings{GoalHours: &seven}))
	assert.Equal(t, 480, GoalMinutes(&models.Settings{}))
	assert.Equal(t, 0, GoalMinutes(&models.Settings{GoalHours: &eight, GoalMinutes: &zero}))

	// hours stored as 0 with no minutes is a zero goal, not the default
	assert.Equal(t, 0, GoalMinutes(&models.Settings{GoalHours: &zero}))
}

func TestReached(t *testing.T) {
	assert.True(t, Reached(Totals{TotalMinutes: 480}, 480))
	assert.True(t, Reached(Totals{TotalMinutes: 481}, 480))
	assert.False(t, Reached(Totals{TotalMinutes: 479}, 480))
}

func TestSummarize(t *testing.T) {
	two := MustParseBoundary("02:00")
	sessions := []models.Session{
		session("a", at(1, 23, 0), at(2, 7, 0), 4),  // 480 on the 1st
		session("b", at(2, 23, 30), at(3, 6, 0), 3), // 390 on the 2nd
		session("c", at(3, 13, 0), at(3, 14, 0), 2), // 60 on the 3rd
	}
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}

	sum := Summarize(days, GroupByDay(sessions, two), 420)

	require.Len(t, sum.Days, 4)
	assert.True(t, sum.Days[0].Reached)
	assert.False(t, sum.Days[1].Reached)
	assert.False(t, sum.Days[2].Reached)
	assert.False(t, sum.Days[3].Reached)
	assert.Empty(t, sum.Days[3].Sessions)

	assert.Equal(t, 930, sum.TotalMinutes)
	assert.Equal(t, 1, sum.DaysReached)
	assert.Equal(t, 3, sum.DaysWithSleep)
	assert.Equal(t, 310, sum.AverageMinutes)
	assert.InDelta(t, 32+19.5+2, sum.Score, 1e-9)
}

func TestSummarize_ZeroGoalNeverReached(t *testing.T) {
	sessions := []models.Session{session("a", at(1, 23, 0), at(2, 7, 0), 4)}
	sum := Summarize([]string{"2024-01-01"}, GroupByDay(sessions, MustParseBoundary("02:00")), 0)

	assert.False(t, sum.Days[0].Reached)
	assert.Zero(t, sum.DaysReached)
}
