package market

import (
	"time"

	"github.com/rentwise/admin-dashboard/pkg/metric"
	"github.com/rentwise/admin-dashboard/pkg/model"
)

// GrowthRate is the percentage change from previous to current, rounded to
// two decimals. A previous period of zero yields 0.
func GrowthRate(previous, current int) float64 {
	if previous == 0 {
		return 0
	}
	return metric.Round(float64(current-previous)/float64(previous)*100, 2)
}

// FormatGrowth renders GrowthRate as a two-decimal percentage.
func FormatGrowth(previous, current int) string {
	return metric.Percent(GrowthRate(previous, current), 2)
}

// Period is a half-open time range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// startOfDay is local midnight of t in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekPeriods returns last week and this week, with weeks starting Monday at
// midnight in now's location.
func WeekPeriods(now time.Time) (lastWeek, thisWeek Period) {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	prevMonday := time.Date(y, m, d-offset-7, 0, 0, 0, 0, now.Location())
	nextMonday := time.Date(y, m, d-offset+7, 0, 0, 0, 0, now.Location())
	return Period{Start: prevMonday, End: monday}, Period{Start: monday, End: nextMonday}
}

// DayPeriods returns yesterday and today, split at local midnight.
func DayPeriods(now time.Time) (yesterday, today Period) {
	midnight := startOfDay(now)
	y, m, d := midnight.Date()
	prev := time.Date(y, m, d-1, 0, 0, 0, 0, now.Location())
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return Period{Start: prev, End: midnight}, Period{Start: midnight, End: next}
}

// CountIn counts the timestamps inside p.
func CountIn(times []time.Time, p Period) int {
	n := 0
	for _, t := range times {
		if p.Contains(t) {
			n++
		}
	}
	return n
}

// UserCreationTimes extracts user signup timestamps.
func UserCreationTimes(users []model.UserRecord) []time.Time {
	times := make([]time.Time, len(users))
	for i, u := range users {
		times[i] = u.CreatedAt
	}
	return times
}

// OrderCreationTimes extracts order timestamps.
func OrderCreationTimes(orders []model.OrderRecord) []time.Time {
	times := make([]time.Time, len(orders))
	for i, o := range orders {
		times[i] = o.CreatedAt
	}
	return times
}

// WeeklyUserGrowth compares this week's signups with last week's.
func WeeklyUserGrowth(users []model.UserRecord, now time.Time) model.UserGrowth {
	lastWeek, thisWeek := WeekPeriods(now)
	times := UserCreationTimes(users)
	prev, curr := CountIn(times, lastWeek), CountIn(times, thisWeek)
	return model.UserGrowth{
		UsersLastWeek:    prev,
		NewUsersThisWeek: curr,
		UserGrowthRate:   FormatGrowth(prev, curr),
	}
}

// DailyUserGrowth compares today's signups with yesterday's.
func DailyUserGrowth(users []model.UserRecord, now time.Time) model.DailyUserGrowth {
	yesterday, today := DayPeriods(now)
	times := UserCreationTimes(users)
	prev, curr := CountIn(times, yesterday), CountIn(times, today)
	return model.DailyUserGrowth{
		UsersYesterday:  prev,
		NewUsersToday:   curr,
		DailyGrowthRate: FormatGrowth(prev, curr),
	}
}

// WeeklyOrderGrowth compares this week's orders with last week's.
func WeeklyOrderGrowth(orders []model.OrderRecord, now time.Time) model.OrderGrowth {
	lastWeek, thisWeek := WeekPeriods(now)
	times := OrderCreationTimes(orders)
	prev, curr := CountIn(times, lastWeek), CountIn(times, thisWeek)
	return model.OrderGrowth{
		OrdersLastWeek:  prev,
		OrdersThisWeek:  curr,
		OrderGrowthRate: FormatGrowth(prev, curr),
	}
}
