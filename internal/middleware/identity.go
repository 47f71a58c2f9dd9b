package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/model"
	"github.com/harshcode1/BetterMind-sub000/internal/store"
)

// Resolve turns the edge filter's verified claims into a live user record.
// Role and verification status are read from the store on every request:
// a token outlives admin actions (verification, account removal), so signed
// claims alone are never trusted for those decisions. A subject that no
// longer resolves is treated as unauthenticated.
func Resolve(st *store.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := TokenClaims(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			u, err := st.UserByID(c.Request().Context(), claims.UserID())
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}
			c.Set("user", u)
			return next(c)
		}
	}
}

// CurrentUser returns the user Resolve attached to the request.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get("user").(*model.User)
	return u
}

// RequireRole rejects resolved users whose live role is not in the allowed
// set.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil || !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireVerifiedDoctor gates provider-side actions on the live verified
// flag, not on anything carried in the token.
func RequireVerifiedDoctor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil || u.Role != model.RoleDoctor || !u.Verified {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
