package subscription

import (
	"time"

	"github.com/LauraM111/jobtowners-backend-sub001/models"
)

// PeriodEnd computes when a period starting at start runs out. Month and year
// arithmetic is calendar based with the day clamped to the target month, so
// Jan 31 + 1 month lands on Feb 29 in a leap year, not Mar 2. An interval the
// table does not know falls back to one month.
func PeriodEnd(start time.Time, interval models.PlanInterval, count int) time.Time {
	if count < 1 {
		count = 1
	}

	switch interval {
	case models.PlanIntervalDay:
		return start.AddDate(0, 0, count)
	case models.PlanIntervalWeek:
		return start.AddDate(0, 0, 7*count)
	case models.PlanIntervalMonth:
		return addMonthsClamped(start, count)
	case models.PlanIntervalYear:
		return addMonthsClamped(start, 12*count)
	default:
		return addMonthsClamped(start, 1)
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// Normalized first-of-month carries the year/month arithmetic, then the
	// day is clamped to that month's length.
	first := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
