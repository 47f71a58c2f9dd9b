package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/harshcode1/BetterMind-sub000/internal/auth"
	"github.com/harshcode1/BetterMind-sub000/internal/middleware"
	"github.com/harshcode1/BetterMind-sub000/internal/model"
	"github.com/harshcode1/BetterMind-sub000/internal/store"
)

type Handler struct {
	store  *store.Store
	tokens *auth.TokenService
	log    zerolog.Logger
}

func New(st *store.Store, tokens *auth.TokenService, log zerolog.Logger) *Handler {
	return &Handler{store: st, tokens: tokens, log: log}
}

// Routes registers the API surface. The edge filter, request logger and
// recovery middleware are installed globally by the caller.
func (h *Handler) Routes(e *echo.Echo, rl *middleware.RateLimiter) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")

	ag := api.Group("/auth")
	ag.POST("/register", h.RegisterUser, middleware.RateLimit(rl))
	ag.POST("/login", h.Login, middleware.RateLimit(rl))
	ag.POST("/logout", h.Logout)
	ag.GET("/me", h.Me, middleware.Resolve(h.store))

	sec := api.Group("", middleware.Resolve(h.store))
	sec.GET("/doctors", h.ListDoctors)
	sec.GET("/doctors/:id/availability", h.Availability)
	sec.POST("/appointments", h.BookAppointment, middleware.RequireRole(model.RolePatient))
	sec.GET("/appointments", h.ListAppointments)
	sec.GET("/appointments/:id", h.GetAppointment)
	sec.PATCH("/appointments/:id", h.RescheduleAppointment, middleware.RequireRole(model.RolePatient))
	sec.POST("/appointments/:id/cancel", h.CancelAppointment)
	sec.GET("/provider/appointments", h.ProviderAppointments, middleware.RequireVerifiedDoctor())

	admin := api.Group("/admin", middleware.Resolve(h.store), middleware.RequireRole(model.RoleAdmin))
	admin.POST("/doctors/:id/verify", h.VerifyDoctor)
	admin.POST("/doctors/:id/reject", h.RejectDoctor)
	admin.GET("/doctors/pending", h.PendingDoctors)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// fail maps store failures to responses. Conflicts carry a distinct code so
// the client can offer "pick another slot" instead of "fix your input";
// everything unrecognized is logged and answered as a generic internal error.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound(c)
	case errors.Is(err, store.ErrSlotTaken):
		return conflict(c, "slot no longer available")
	case errors.Is(err, store.ErrDuplicateEmail):
		return conflict(c, "registration failed")
	default:
		h.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("internal error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

func invalid(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg, "code": "invalid"})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": msg, "code": "conflict"})
}

// notFound is also the answer when a record exists but belongs to someone
// else: forbidden would confirm its existence.
func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
}
