package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/middleware"
	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

type bookRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	Reason     string `json:"reason"`
}

func (h *Handler) BookAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	patient := middleware.CurrentUser(c)

	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return invalid(c, "malformed request body")
	}
	if req.ProviderID == "" || req.Date == "" || req.Slot == "" {
		return invalid(c, "provider_id, date and slot required")
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return invalid(c, "date must be YYYY-MM-DD")
	}
	if pastDate(req.Date) {
		return invalid(c, "cannot book in the past")
	}

	provider, err := h.store.UserByID(ctx, req.ProviderID)
	if err != nil {
		return h.fail(c, err)
	}
	// an unverified or non-doctor target is answered exactly like a missing
	// one
	if provider.Role != model.RoleDoctor || !provider.Verified {
		return notFound(c)
	}
	if !slices.Contains(provider.Slots, req.Slot) {
		return invalid(c, "slot is not on the provider's grid")
	}
	if !slices.Contains(provider.WorkingDays, date.Weekday().String()) {
		return invalid(c, "provider does not work on that day")
	}

	// friendly pre-check; the store's unique index is what actually closes
	// the race
	if taken, err := h.store.SlotTaken(ctx, req.ProviderID, req.Date, req.Slot, ""); err != nil {
		return h.fail(c, err)
	} else if taken {
		return conflict(c, "slot no longer available")
	}

	a := &model.Appointment{
		ID:         uuid.New().String(),
		PatientID:  patient.ID,
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Slot:       req.Slot,
		Reason:     req.Reason,
		Status:     model.StatusScheduled,
	}
	if err := h.store.CreateAppointment(ctx, a); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	u := middleware.CurrentUser(c)
	appts, err := h.store.ListAppointmentsForUser(c.Request().Context(), u.ID)
	if err != nil {
		return h.fail(c, err)
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": appts})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	u := middleware.CurrentUser(c)
	a, err := h.store.GetAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if a.PatientID != u.ID && a.ProviderID != u.ID {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, a)
}

type rescheduleRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	u := middleware.CurrentUser(c)

	var req rescheduleRequest
	if err := c.Bind(&req); err != nil {
		return invalid(c, "malformed request body")
	}
	if req.Date == "" || req.Slot == "" {
		return invalid(c, "date and slot required")
	}
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return invalid(c, "date must be YYYY-MM-DD")
	}
	if pastDate(req.Date) {
		return invalid(c, "cannot reschedule into the past")
	}

	a, err := h.store.GetAppointment(ctx, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if a.PatientID != u.ID {
		return notFound(c)
	}
	if a.Status == model.StatusCancelled {
		return conflict(c, "appointment is cancelled")
	}

	provider, err := h.store.UserByID(ctx, a.ProviderID)
	if err != nil {
		return h.fail(c, err)
	}
	if !slices.Contains(provider.Slots, req.Slot) {
		return invalid(c, "slot is not on the provider's grid")
	}
	if !slices.Contains(provider.WorkingDays, date.Weekday().String()) {
		return invalid(c, "provider does not work on that day")
	}

	// exclude this appointment so moving within its own slot is a no-op
	if taken, err := h.store.SlotTaken(ctx, a.ProviderID, req.Date, req.Slot, a.ID); err != nil {
		return h.fail(c, err)
	} else if taken {
		return conflict(c, "slot no longer available")
	}

	if err := h.store.RescheduleAppointment(ctx, a.ID, req.Date, req.Slot); err != nil {
		return h.fail(c, err)
	}

	a, err = h.store.GetAppointment(ctx, a.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// CancelAppointment is idempotent: cancelling an already cancelled
// appointment reports success, mirroring a user double-clicking "cancel".
func (h *Handler) CancelAppointment(c echo.Context) error {
	ctx := c.Request().Context()
	u := middleware.CurrentUser(c)

	a, err := h.store.GetAppointment(ctx, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if a.PatientID != u.ID && a.ProviderID != u.ID {
		return notFound(c)
	}
	if a.Status != model.StatusCancelled {
		if err := h.store.CancelAppointment(ctx, a.ID); err != nil {
			return h.fail(c, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "status": model.StatusCancelled})
}

// ProviderAppointments is the verified doctor's schedule view over a date
// window.
func (h *Handler) ProviderAppointments(c echo.Context) error {
	u := middleware.CurrentUser(c)

	from, _, days, err := windowParams(c, 7)
	if err != nil {
		return invalid(c, err.Error())
	}

	appts, err := h.store.ListActiveByProviderWindow(c.Request().Context(), u.ID, from, days)
	if err != nil {
		return h.fail(c, err)
	}
	if appts == nil {
		appts = []model.Appointment{}
	}
	return c.JSON(http.StatusOK, echo.Map{"appointments": appts, "from": from, "days": days})
}

// pastDate reports whether a YYYY-MM-DD date falls before today, today being
// the inclusive lower bound. The strings compare lexically as dates, which
// keeps the answer independent of the server's time zone; a parsed time would
// sit at UTC midnight and disagree with a local-zone "today" west of UTC.
func pastDate(date string) bool {
	return date < time.Now().Format(model.DateLayout)
}
