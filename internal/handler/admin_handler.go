package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/middleware"
	"github.com/harshcode1/BetterMind-sub000/internal/store"
)

type verifyRequest struct {
	Note string `json:"note"`
}

func (h *Handler) VerifyDoctor(c echo.Context) error {
	return h.applyVerification(c, store.ActionVerified)
}

func (h *Handler) RejectDoctor(c echo.Context) error {
	return h.applyVerification(c, store.ActionRejected)
}

func (h *Handler) applyVerification(c echo.Context, action string) error {
	admin := middleware.CurrentUser(c)

	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return invalid(c, "malformed request body")
	}

	doctorID := c.Param("id")
	if err := h.store.ApplyVerification(c.Request().Context(), doctorID, admin.ID, action, req.Note); err != nil {
		return h.fail(c, err)
	}

	h.log.Info().
		Str("doctor_id", doctorID).
		Str("admin_id", admin.ID).
		Str("action", action).
		Msg("doctor verification decision")

	return c.JSON(http.StatusOK, echo.Map{"doctor_id": doctorID, "action": action})
}

// PendingDoctors lists doctor accounts awaiting a verification decision.
func (h *Handler) PendingDoctors(c echo.Context) error {
	doctors, err := h.store.ListDoctors(c.Request().Context(), false)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]echo.Map, len(doctors))
	for i, d := range doctors {
		out[i] = echo.Map{
			"id":    d.ID,
			"name":  d.Name,
			"email": d.Email,
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"doctors": out})
}
