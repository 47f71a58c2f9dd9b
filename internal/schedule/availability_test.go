package schedule

import (
	"reflect"
	"testing"
	"time"
)

// 2026-01-05 is a Monday.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

var monWedPattern = Pattern{
	WorkingDays: []string{"Monday", "Wednesday"},
	Slots:       []string{"09:00", "10:00", "11:00"},
}

func TestSlotAccounting(t *testing.T) {
	booked := []Booked{{Date: "2026-01-05", Slot: "10:00"}}

	got := Compute(monWedPattern, booked, monday, 7)

	want := []DayAvailability{
		{Date: "2026-01-05", Slots: []string{"09:00", "11:00"}},
		{Date: "2026-01-07", Slots: []string{"09:00", "10:00", "11:00"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFullyBookedDayStaysPresent(t *testing.T) {
	booked := []Booked{
		{Date: "2026-01-05", Slot: "09:00"},
		{Date: "2026-01-05", Slot: "10:00"},
		{Date: "2026-01-05", Slot: "11:00"},
	}

	got := Compute(monWedPattern, booked, monday, 3)

	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	if got[0].Date != "2026-01-05" {
		t.Errorf("date: got %s", got[0].Date)
	}
	// no slots left, but the day still appears
	if len(got[0].Slots) != 0 {
		t.Errorf("expected empty slots, got %v", got[0].Slots)
	}
}

func TestZeroWindow(t *testing.T) {
	if got := Compute(monWedPattern, nil, monday, 0); len(got) != 0 {
		t.Errorf("windowDays=0: expected empty, got %+v", got)
	}
	if got := Compute(monWedPattern, nil, monday, -3); len(got) != 0 {
		t.Errorf("negative window: expected empty, got %+v", got)
	}
}

func TestNoWorkingDays(t *testing.T) {
	p := Pattern{WorkingDays: nil, Slots: []string{"09:00"}}
	if got := Compute(p, nil, monday, 14); len(got) != 0 {
		t.Errorf("expected no seeded dates, got %+v", got)
	}
}

func TestUnknownWeekdayNamesIgnored(t *testing.T) {
	p := Pattern{
		WorkingDays: []string{"Monday", "Funday"},
		Slots:       []string{"09:00"},
	}
	got := Compute(p, nil, monday, 7)
	if len(got) != 1 || got[0].Date != "2026-01-05" {
		t.Errorf("expected only the Monday, got %+v", got)
	}
}

func TestDuplicateBookingsAreIdempotent(t *testing.T) {
	booked := []Booked{
		{Date: "2026-01-05", Slot: "10:00"},
		{Date: "2026-01-05", Slot: "10:00"},
	}
	got := Compute(monWedPattern, booked, monday, 1)
	want := []string{"09:00", "11:00"}
	if !reflect.DeepEqual(got[0].Slots, want) {
		t.Errorf("got %v, want %v", got[0].Slots, want)
	}
}

func TestBookingsOutsideWindowIgnored(t *testing.T) {
	booked := []Booked{
		{Date: "2026-01-12", Slot: "09:00"}, // last day of the window
		{Date: "2026-01-19", Slot: "09:00"}, // past the window
	}
	got := Compute(monWedPattern, booked, monday, 8)
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	if !reflect.DeepEqual(got[2].Slots, []string{"10:00", "11:00"}) {
		t.Errorf("2026-01-12: got %v", got[2].Slots)
	}
}

func TestSlotOrderIsCanonical(t *testing.T) {
	// removing a middle slot must not disturb the remaining order
	booked := []Booked{{Date: "2026-01-07", Slot: "10:00"}}
	got := Compute(monWedPattern, booked, monday, 7)
	if !reflect.DeepEqual(got[1].Slots, []string{"09:00", "11:00"}) {
		t.Errorf("got %v, want canonical order [09:00 11:00]", got[1].Slots)
	}
}

func TestMidweekStart(t *testing.T) {
	// starting on a Tuesday: the Monday before is excluded, Wednesday is in
	tuesday := monday.AddDate(0, 0, 1)
	got := Compute(monWedPattern, nil, tuesday, 7)
	want := []DayAvailability{
		{Date: "2026-01-07", Slots: []string{"09:00", "10:00", "11:00"}},
		{Date: "2026-01-12", Slots: []string{"09:00", "10:00", "11:00"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
