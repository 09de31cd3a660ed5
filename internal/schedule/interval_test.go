package schedule

import (
	"testing"
	"time"

	"github.com/pharos-media/pharos/internal/model"
)

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewDaySet_EmptyMeansEveryDay(t *testing.T) {
	s, err := NewDaySet(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !s.Has(d) {
			t.Errorf("empty day list should include %v", d)
		}
	}
}

func TestNewDaySet_RejectsOutOfRange(t *testing.T) {
	for _, days := range [][]int64{{7}, {-1}, {0, 3, 9}} {
		if _, err := NewDaySet(days); err == nil {
			t.Errorf("NewDaySet(%v) should fail", days)
		}
	}
}

func TestNewDaySet_Intersects(t *testing.T) {
	weekdays, _ := NewDaySet([]int64{1, 2, 3, 4, 5})
	weekend, _ := NewDaySet([]int64{0, 6})
	if weekdays.Intersects(weekend) {
		t.Error("weekdays and weekend should be disjoint")
	}
	all, _ := NewDaySet(nil)
	if !all.Intersects(weekend) {
		t.Error("full set should intersect weekend")
	}
}

func TestDateRange_OpenBounds(t *testing.T) {
	open, err := NewDateRange(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounded, err := NewDateRange(datePtr(2026, 9, 1), datePtr(2026, 9, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open.Overlaps(bounded) || !bounded.Overlaps(open) {
		t.Error("open range should overlap any bounded range")
	}
	if !open.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("open range should contain any day")
	}
}

func TestDateRange_InclusiveTouch(t *testing.T) {
	a, _ := NewDateRange(datePtr(2026, 9, 1), datePtr(2026, 9, 10))
	b, _ := NewDateRange(datePtr(2026, 9, 10), datePtr(2026, 9, 20))
	c, _ := NewDateRange(datePtr(2026, 9, 11), datePtr(2026, 9, 20))
	if !a.Overlaps(b) {
		t.Error("ranges sharing a boundary day overlap")
	}
	if a.Overlaps(c) {
		t.Error("adjacent ranges do not overlap")
	}
}

func TestNewDateRange_RejectsEndBeforeStart(t *testing.T) {
	if _, err := NewDateRange(datePtr(2026, 9, 10), datePtr(2026, 9, 1)); err == nil {
		t.Error("end before start should fail")
	}
}

func TestNewTimeWindow_Normalization(t *testing.T) {
	tests := []struct {
		name       string
		start, end *string
		wantStart  int
		wantEnd    int
		wantErr    bool
	}{
		{"both absent is full day", nil, nil, 0, 1440, false},
		{"plain daytime", strPtr("09:00"), strPtr("17:00"), 540, 1020, false},
		{"overnight wraps", strPtr("22:00"), strPtr("02:00"), 1320, 1560, false},
		{"equal bounds is full day", strPtr("08:00"), strPtr("08:00"), 480, 1920, false},
		{"start alone", strPtr("09:00"), nil, 0, 0, true},
		{"end alone", nil, strPtr("17:00"), 0, 0, true},
		{"bad clock", strPtr("25:00"), strPtr("26:00"), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewTimeWindow(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w.Start != tt.wantStart || w.End != tt.wantEnd {
				t.Errorf("got [%d,%d), want [%d,%d)", w.Start, w.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestTimeWindow_EqualBoundsCoverFullDay(t *testing.T) {
	w, err := NewTimeWindow(strPtr("08:00"), strPtr("08:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Duration() != 1440 {
		t.Fatalf("duration = %d, want 1440", w.Duration())
	}
	other, _ := NewTimeWindow(strPtr("03:00"), strPtr("04:00"))
	if !w.Overlaps(other) {
		t.Error("full-day window should overlap any window")
	}
}

func TestTimeWindow_TouchingIsNotOverlap(t *testing.T) {
	morning, _ := NewTimeWindow(strPtr("09:00"), strPtr("10:00"))
	late, _ := NewTimeWindow(strPtr("10:00"), strPtr("11:00"))
	if morning.Overlaps(late) {
		t.Error("windows meeting at 10:00 do not overlap")
	}
	shifted, _ := NewTimeWindow(strPtr("09:30"), strPtr("10:30"))
	if !morning.Overlaps(shifted) {
		t.Error("09:00-10:00 and 09:30-10:30 overlap")
	}
}

func TestTimeWindow_OvernightOverlap(t *testing.T) {
	overnight, _ := NewTimeWindow(strPtr("22:00"), strPtr("02:00"))
	early, _ := NewTimeWindow(strPtr("01:00"), strPtr("03:00"))
	evening, _ := NewTimeWindow(strPtr("21:00"), strPtr("23:00"))
	midday, _ := NewTimeWindow(strPtr("10:00"), strPtr("12:00"))
	if !overnight.Overlaps(early) {
		t.Error("wrapped tail 00:00-02:00 overlaps 01:00-03:00")
	}
	if !overnight.Overlaps(evening) {
		t.Error("22:00-02:00 overlaps 21:00-23:00")
	}
	if overnight.Overlaps(midday) {
		t.Error("22:00-02:00 does not overlap 10:00-12:00")
	}
	// touching at the wrap boundary
	after, _ := NewTimeWindow(strPtr("02:00"), strPtr("04:00"))
	if overnight.Overlaps(after) {
		t.Error("windows meeting at 02:00 do not overlap")
	}
}

func TestInterval_DisjointDaysNeverConflict(t *testing.T) {
	a := model.Schedule{StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), DaysOfWeek: []int64{1, 2, 3}}
	b := model.Schedule{StartTime: strPtr("09:00"), EndTime: strPtr("17:00"), DaysOfWeek: []int64{4, 5}}
	ia, err := FromSchedule(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ib, err := FromSchedule(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ia.Overlaps(ib) {
		t.Error("identical windows on disjoint weekdays do not overlap")
	}
}

func TestInterval_ContainsInstant(t *testing.T) {
	// Wednesdays 09:00-17:00 during September 2026
	iv, err := FromSchedule(model.Schedule{
		StartDate:  datePtr(2026, 9, 1),
		EndDate:    datePtr(2026, 9, 30),
		StartTime:  strPtr("09:00"),
		EndTime:    strPtr("17:00"),
		DaysOfWeek: []int64{3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2026-09-02 is a Wednesday
	if !iv.ContainsInstant(time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)) {
		t.Error("noon Wednesday should be active")
	}
	if iv.ContainsInstant(time.Date(2026, 9, 2, 17, 0, 0, 0, time.UTC)) {
		t.Error("half-open window excludes its end minute")
	}
	if iv.ContainsInstant(time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)) {
		t.Error("Thursday is not in the day set")
	}
	if iv.ContainsInstant(time.Date(2026, 10, 7, 12, 0, 0, 0, time.UTC)) {
		t.Error("October is past the end date")
	}
}

func TestInterval_ContainsInstantOvernight(t *testing.T) {
	// Friday nights 22:00-02:00
	iv, err := FromSchedule(model.Schedule{
		StartTime:  strPtr("22:00"),
		EndTime:    strPtr("02:00"),
		DaysOfWeek: []int64{5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2026-09-04 is a Friday
	if !iv.ContainsInstant(time.Date(2026, 9, 4, 23, 0, 0, 0, time.UTC)) {
		t.Error("Friday 23:00 should be active")
	}
	// early Saturday still belongs to the Friday window
	if !iv.ContainsInstant(time.Date(2026, 9, 5, 1, 30, 0, 0, time.UTC)) {
		t.Error("Saturday 01:30 belongs to the Friday window")
	}
	if iv.ContainsInstant(time.Date(2026, 9, 5, 2, 0, 0, 0, time.UTC)) {
		t.Error("Saturday 02:00 is past the wrapped end")
	}
	if iv.ContainsInstant(time.Date(2026, 9, 5, 23, 0, 0, 0, time.UTC)) {
		t.Error("Saturday 23:00 is not in the day set")
	}
}

func TestInterval_OvernightDateBoundary(t *testing.T) {
	// window entered on the range's final day spills past its end date
	iv, err := FromSchedule(model.Schedule{
		StartDate: datePtr(2026, 9, 1),
		EndDate:   datePtr(2026, 9, 4),
		StartTime: strPtr("22:00"),
		EndTime:   strPtr("02:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !iv.ContainsInstant(time.Date(2026, 9, 5, 1, 0, 0, 0, time.UTC)) {
		t.Error("tail of the final day's window should still be active")
	}
	if iv.ContainsInstant(time.Date(2026, 9, 5, 23, 0, 0, 0, time.UTC)) {
		t.Error("a fresh window past the end date should not start")
	}
}
