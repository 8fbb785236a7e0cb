package sleep

import (
	"time"

	"github.com/jinzhu/now"

	"github.com/balkashynov/sleeplog/internal/models"
)

// DefaultGoalMinutes is used when a profile has no goal configured
const DefaultGoalMinutes = 8 * 60

// Totals is the reduced value of one day's sessions
type Totals struct {
	TotalMinutes int     `json:"totalMinutes"`
	Score        float64 `json:"score"`
}

// DaySummary is one attributed day within a week or month view
type DaySummary struct {
	Date     string           `json:"date"`
	Totals   Totals           `json:"totals"`
	Reached  bool             `json:"reached"`
	Sessions []models.Session `json:"sessions"`
}

// Summary aggregates a run of days against a goal
type Summary struct {
	Days           []DaySummary `json:"days"`
	GoalMinutes    int          `json:"goalMinutes"`
	TotalMinutes   int          `json:"totalMinutes"`
	Score          float64      `json:"score"`
	DaysReached    int          `json:"daysReached"`
	DaysWithSleep  int          `json:"daysWithSleep"`
	AverageMinutes int          `json:"averageMinutes"` // over days with any sleep
}

// GroupByDay buckets sessions by attributed date, keeping input order inside a bucket
func GroupByDay(sessions []models.Session, b Boundary) map[string][]models.Session {
	grouped := make(map[string][]models.Session)
	for _, s := range sessions {
		key := AttributedDate(s.Start, b)
		grouped[key] = append(grouped[key], s)
	}
	return grouped
}

// DayTotals sums duration and score over a day's sessions
func DayTotals(sessions []models.Session) Totals {
	var t Totals
	for _, s := range sessions {
		mins := MinutesBetween(s.Start, s.End)
		t.TotalMinutes += mins
		t.Score += SessionScore(mins, s.RatingValue())
	}
	return t
}

// MonthDays lists every date of the given month in order
func MonthDays(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := now.With(first).EndOfMonth().Day()

	days := make([]string, 0, last)
	for d := 1; d <= last; d++ {
		days = append(days, time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(DateLayout))
	}
	return days
}

// WeekDays lists the Monday-to-Sunday dates of the week containing day
func WeekDays(day time.Time) []string {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: day.Location()}
	start := cfg.With(day).BeginningOfWeek()

	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return days
}

// GoalMinutes resolves the daily goal: minutes field, then hours, then the default
func GoalMinutes(s *models.Settings) int {
	if s == nil {
		return DefaultGoalMinutes
	}
	if s.GoalMinutes != nil {
		return *s.GoalMinutes
	}
	if s.GoalHours != nil {
		return *s.GoalHours * 60
	}
	return DefaultGoalMinutes
}

// Reached reports whether a day's totals meet the goal
func Reached(t Totals, goalMinutes int) bool {
	return t.TotalMinutes >= goalMinutes
}

// Summarize builds per-day summaries for days, in the order given
func Summarize(days []string, grouped map[string][]models.Session, goalMinutes int) Summary {
	sum := Summary{
		Days:        make([]DaySummary, 0, len(days)),
		GoalMinutes: goalMinutes,
	}

	for _, date := range days {
		sessions := grouped[date]
		totals := DayTotals(sessions)
		// a zero goal disables highlighting rather than marking every day reached
		reached := goalMinutes > 0 && Reached(totals, goalMinutes)

		sum.Days = append(sum.Days, DaySummary{
			Date:     date,
			Totals:   totals,
			Reached:  reached,
			Sessions: sessions,
		})

		sum.TotalMinutes += totals.TotalMinutes
		sum.Score += totals.Score
		if reached {
			sum.DaysReached++
		}
		if len(sessions) > 0 {
			sum.DaysWithSleep++
		}
	}

	if sum.DaysWithSleep > 0 {
		sum.AverageMinutes = sum.TotalMinutes / sum.DaysWithSleep
	}
	return sum
}
