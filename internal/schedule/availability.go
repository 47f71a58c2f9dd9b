// Package schedule computes open appointment slots for a provider from their
// weekly working pattern and the set of active bookings. It is pure: callers
// fetch bookings from the store and pass them in.
package schedule

import (
	"time"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

// Pattern is a provider's weekly availability: the weekdays they work and the
// ordered slot grid for each working day.
type Pattern struct {
	WorkingDays []string
	Slots       []string
}

// Booked identifies one taken slot.
type Booked struct {
	Date string
	Slot string
}

// DayAvailability lists the open slots for one calendar day, in the pattern's
// canonical order. A working day whose slots are all taken is present with an
// empty Slots slice; non-working days do not appear at all.
type DayAvailability struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Compute returns availability for each working day in
// [from, from+windowDays), ordered by date. Days are calendar days in from's
// location; slots already elapsed on the current day are not filtered out.
func Compute(p Pattern, booked []Booked, from time.Time, windowDays int) []DayAvailability {
	if windowDays <= 0 || len(p.WorkingDays) == 0 {
		return []DayAvailability{}
	}

	working := make(map[time.Weekday]bool, len(p.WorkingDays))
	for _, name := range p.WorkingDays {
		if d, ok := model.ParseWeekday(name); ok {
			working[d] = true
		}
	}

	taken := make(map[Booked]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	out := make([]DayAvailability, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		date := day.AddDate(0, 0, i)
		if !working[date.Weekday()] {
			continue
		}
		ds := date.Format(model.DateLayout)
		open := make([]string, 0, len(p.Slots))
		for _, slot := range p.Slots {
			if !taken[Booked{Date: ds, Slot: slot}] {
				open = append(open, slot)
			}
		}
		out = append(out, DayAvailability{Date: ds, Slots: open})
	}
	return out
}
