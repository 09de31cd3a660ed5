package schedule

import (
	"fmt"
	"time"

	"github.com/pharos-media/pharos/internal/model"
)

const minutesPerDay = 24 * 60

// allDays is the normalized form of an absent days_of_week restriction.
const allDays DaySet = 0x7F

// DaySet is a weekday set encoded as a bit mask, bit 0 = Sunday.
type DaySet uint8

// NewDaySet normalizes a days-of-week list. An empty or nil list means the
// schedule recurs every day, so it normalizes to the full set.
func NewDaySet(days []int64) (DaySet, error) {
	if len(days) == 0 {
		return allDays, nil
	}
	var s DaySet
	for _, d := range days {
		if d < 0 || d > 6 {
			return 0, fmt.Errorf("day of week %d outside [0,6]", d)
		}
		s |= 1 << uint(d)
	}
	return s, nil
}

func (s DaySet) Has(d time.Weekday) bool { return s&(1<<uint(d)) != 0 }

func (s DaySet) Intersects(o DaySet) bool { return s&o != 0 }

// DateRange is an inclusive calendar-date interval. A zero bound is open on
// that side.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes optional date bounds, truncating any time-of-day
// component. End before start is rejected.
func NewDateRange(start, end *time.Time) (DateRange, error) {
	var r DateRange
	if start != nil {
		r.Start = dateOnly(*start)
	}
	if end != nil {
		r.End = dateOnly(*end)
	}
	if start != nil && end != nil && r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("end date %s before start date %s",
			r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"))
	}
	return r, nil
}

// Overlaps reports whether two date ranges share at least one calendar day.
// Open bounds behave as unbounded, and bounds are inclusive: ranges that
// touch on a single day do overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	if !r.Start.IsZero() && !o.End.IsZero() && o.End.Before(r.Start) {
		return false
	}
	if !o.Start.IsZero() && !r.End.IsZero() && r.End.Before(o.Start) {
		return false
	}
	return true
}

func (r DateRange) Contains(day time.Time) bool {
	day = dateOnly(day)
	if !r.Start.IsZero() && day.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && day.After(r.End) {
		return false
	}
	return true
}

// TimeWindow is a daily half-open minute interval [Start, End) on a 48-hour
// timeline. A window whose clock end is not after its clock start wraps past
// midnight and keeps End shifted by a full day, so 22:00-02:00 becomes
// [1320, 1560). Equal start and end means the whole 1440-minute day.
type TimeWindow struct {
	Start int
	End   int
}

// NewTimeWindow normalizes optional "HH:MM" clock values. Both absent means
// no daily restriction: the full-day window.
func NewTimeWindow(start, end *string) (TimeWindow, error) {
	if start == nil && end == nil {
		return TimeWindow{0, minutesPerDay}, nil
	}
	if start == nil || end == nil {
		return TimeWindow{}, fmt.Errorf("start_time and end_time must be supplied together")
	}
	s, err := ParseClock(*start)
	if err != nil {
		return TimeWindow{}, err
	}
	e, err := ParseClock(*end)
	if err != nil {
		return TimeWindow{}, err
	}
	if e <= s {
		e += minutesPerDay
	}
	return TimeWindow{s, e}, nil
}

// ParseClock parses an "HH:MM" value into a minute-of-day offset.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Duration returns the window length in minutes, wrap included.
func (w TimeWindow) Duration() int { return w.End - w.Start }

// spans projects the window onto the doubled timeline: the window itself and
// a copy shifted by one day. The shifted copy lets a window that ends at
// 02:00 meet windows starting late the previous day under one uniform
// interval test instead of wrap-specific branches.
func (w TimeWindow) spans() [2][2]int {
	return [2][2]int{
		{w.Start, w.End},
		{w.Start + minutesPerDay, w.End + minutesPerDay},
	}
}

// Overlaps tests strict interval intersection across the projected spans of
// both windows. Touching boundaries (one window ending exactly where the
// other starts) is not overlap.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	for _, a := range w.spans() {
		for _, b := range o.spans() {
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}

// ContainsMinute reports whether minute-of-day m falls inside the window.
// nextDay tests the minute against the wrapped tail of a window entered the
// previous day.
func (w TimeWindow) ContainsMinute(m int, nextDay bool) bool {
	if nextDay {
		m += minutesPerDay
	}
	return m >= w.Start && m < w.End
}

// Interval is a schedule's normalized activation region across the three
// dimensions the conflict detector compares.
type Interval struct {
	Dates  DateRange
	Days   DaySet
	Window TimeWindow
}

// FromSchedule normalizes a stored schedule into its interval form.
func FromSchedule(s model.Schedule) (Interval, error) {
	dates, err := NewDateRange(s.StartDate, s.EndDate)
	if err != nil {
		return Interval{}, err
	}
	window, err := NewTimeWindow(s.StartTime, s.EndTime)
	if err != nil {
		return Interval{}, err
	}
	days, err := NewDaySet(s.DaysOfWeek)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Dates: dates, Days: days, Window: window}, nil
}

// Overlaps is true only when all three dimensions intersect: schedules on
// disjoint weekdays never conflict however their dates and times line up.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Dates.Overlaps(o.Dates) &&
		iv.Days.Intersects(o.Days) &&
		iv.Window.Overlaps(o.Window)
}

// ContainsInstant reports whether the interval is active at the given wall
// clock instant. An overnight window entered the previous day still covers
// the early minutes of the current one, so the previous day's membership is
// checked against the wrapped span.
func (iv Interval) ContainsInstant(at time.Time) bool {
	m := at.Hour()*60 + at.Minute()
	today := dateOnly(at)
	if iv.Days.Has(at.Weekday()) && iv.Window.ContainsMinute(m, false) && iv.Dates.Contains(today) {
		return true
	}
	yesterday := today.AddDate(0, 0, -1)
	return iv.Days.Has(yesterday.Weekday()) && iv.Window.ContainsMinute(m, true) && iv.Dates.Contains(yesterday)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
