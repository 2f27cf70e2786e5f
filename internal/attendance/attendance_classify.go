package attendance

import (
	"time"

	"github.com/Thomas-Sunil/newhrms/internal/leave"
)

type DayStatus string

const (
	DayHoliday  DayStatus = "Holiday"
	DayOnLeave  DayStatus = "On Leave"
	DayPresent  DayStatus = "Present"
	DayAbsent   DayStatus = "Absent"
	DayNoRecord DayStatus = "No Record"
)

// HolidaySet holds holiday dates keyed by YYYY-MM-DD.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[dateKey(d)] = struct{}{}
	}
	return set
}

func (h HolidaySet) Contains(day time.Time) bool {
	_, ok := h[dateKey(day)]
	return ok
}

type LeaveInterval struct {
	Start  time.Time
	End    time.Time
	Status leave.Status
}

func (l LeaveInterval) covers(day time.Time) bool {
	d := civil(day)
	return !d.Before(civil(l.Start)) && !d.After(civil(l.End))
}

// Classify returns the status of one calendar day. Holidays win over leave,
// leave over a clock-in, and a clock-in over an absence mark.
func Classify(day time.Time, holidays HolidaySet, leaves []LeaveInterval, record *Attendance) DayStatus {
	if holidays.Contains(day) {
		return DayHoliday
	}
	for _, l := range leaves {
		if l.Status.CountsAsLeave() && l.covers(day) {
			return DayOnLeave
		}
	}
	if record != nil {
		if record.ClockIn != nil {
			return DayPresent
		}
		if record.Status == StatusAbsent {
			return DayAbsent
		}
	}
	return DayNoRecord
}

// MonthDays returns every day of the month starting at first.
func MonthDays(first time.Time) []time.Time {
	start := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 0, 31)
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
