package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/auth"
	"github.com/harshcode1/BetterMind-sub000/internal/middleware"
	"github.com/harshcode1/BetterMind-sub000/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (h *Handler) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return invalid(c, "malformed request body")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return invalid(c, "all fields required")
	}
	if len(req.Password) < 8 {
		return invalid(c, "password too short")
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RolePatient
	}
	// admin accounts are provisioned at startup, never self-registered
	if role != model.RolePatient && role != model.RoleDoctor {
		return invalid(c, "role must be patient or doctor")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	}
	if role == model.RoleDoctor {
		// doctors start unverified and become bookable only after an admin
		// decision
		u.WorkingDays = model.DefaultWorkingDays
		u.Slots = model.DefaultSlots
	}

	if err := h.store.CreateUser(c.Request().Context(), u); err != nil {
		return h.fail(c, err)
	}

	tok, err := h.tokens.Issue(u)
	if err != nil {
		return h.fail(c, err)
	}
	setSessionCookie(c, tok)

	return c.JSON(http.StatusCreated, echo.Map{"user_id": u.ID, "token": tok})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalid(c, "malformed request body")
	}
	if req.Email == "" || req.Password == "" {
		return invalid(c, "email and password required")
	}

	u, err := h.store.UserByEmail(c.Request().Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := h.tokens.Issue(u)
	if err != nil {
		return h.fail(c, err)
	}
	setSessionCookie(c, tok)

	return c.JSON(http.StatusOK, echo.Map{
		"token":   tok,
		"user_id": u.ID,
		"name":    u.Name,
		"role":    u.Role,
	})
}

// Logout clears the session cookie. The token itself stays valid until its
// expiry — sessions are stateless, there is nothing server-side to revoke.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *Handler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, userView(u))
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func userView(u *model.User) echo.Map {
	v := echo.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
	if u.Role == model.RoleDoctor {
		v["verified"] = u.Verified
		v["working_days"] = u.WorkingDays
		v["slots"] = u.Slots
	}
	return v
}
