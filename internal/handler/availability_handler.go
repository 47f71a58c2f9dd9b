package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
	"github.com/harshcode1/BetterMind-sub000/internal/schedule"
)

const (
	defaultAvailabilityDays = 14
	maxWindowDays           = 60
)

// ListDoctors is the patient-facing provider directory: verified doctors
// only.
func (h *Handler) ListDoctors(c echo.Context) error {
	doctors, err := h.store.ListDoctors(c.Request().Context(), true)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]echo.Map, len(doctors))
	for i, d := range doctors {
		out[i] = echo.Map{
			"id":           d.ID,
			"name":         d.Name,
			"working_days": d.WorkingDays,
			"slots":        d.Slots,
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"doctors": out})
}

// Availability returns the open slots for a provider over a date window,
// one entry per working day, ordered. A working day with every slot taken
// is still present with an empty list.
func (h *Handler) Availability(c echo.Context) error {
	ctx := c.Request().Context()

	provider, err := h.store.UserByID(ctx, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if provider.Role != model.RoleDoctor || !provider.Verified {
		return notFound(c)
	}

	from, fromDate, days, err := windowParams(c, defaultAvailabilityDays)
	if err != nil {
		return invalid(c, err.Error())
	}

	appts, err := h.store.ListActiveByProviderWindow(ctx, provider.ID, from, days)
	if err != nil {
		return h.fail(c, err)
	}

	booked := make([]schedule.Booked, len(appts))
	for i, a := range appts {
		booked[i] = schedule.Booked{Date: a.Date, Slot: a.Slot}
	}

	pattern := schedule.Pattern{WorkingDays: provider.WorkingDays, Slots: provider.Slots}
	days2 := schedule.Compute(pattern, booked, fromDate, days)

	return c.JSON(http.StatusOK, echo.Map{
		"provider_id": provider.ID,
		"from":        from,
		"days":        days,
		"available":   days2,
	})
}

// windowParams reads the optional from/days query parameters shared by the
// availability and provider-view endpoints. It returns the window start both
// as the canonical string and parsed, so callers never re-parse it.
func windowParams(c echo.Context, defaultDays int) (string, time.Time, int, error) {
	from := c.QueryParam("from")
	var fromDate time.Time
	if from == "" {
		fromDate = time.Now()
		from = fromDate.Format(model.DateLayout)
	} else {
		var err error
		fromDate, err = time.Parse(model.DateLayout, from)
		if err != nil {
			return "", time.Time{}, 0, fmt.Errorf("from must be YYYY-MM-DD")
		}
	}

	days := defaultDays
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return "", time.Time{}, 0, fmt.Errorf("days must be a non-negative integer")
		}
		days = n
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	return from, fromDate, days, nil
}
