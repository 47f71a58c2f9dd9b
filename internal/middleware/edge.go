package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/harshcode1/BetterMind-sub000/internal/auth"
)

// PathClass is the edge filter's request classification.
type PathClass int

const (
	// ClassPublic paths pass through regardless of token state.
	ClassPublic PathClass = iota
	// ClassAuthOnly paths (login/signup) must not be used while
	// authenticated.
	ClassAuthOnly
	// ClassProtected pages require a valid token; failures redirect to the
	// login page with the original path as the return target.
	ClassProtected
	// ClassProtectedAPI endpoints require a valid token; failures get a 401
	// instead of a redirect.
	ClassProtectedAPI
)

// SessionCookie is where the interactive frontend keeps the session token.
// API clients may send it as a bearer token instead.
const SessionCookie = "session"

var publicPaths = map[string]bool{
	"/":        true,
	"/healthz": true,
	"/about":   true,
}

var publicPrefixes = []string{"/static/", "/resources/"}

var authOnlyPaths = map[string]bool{
	"/login":             true,
	"/signup":            true,
	"/api/auth/login":    true,
	"/api/auth/register": true,
}

// Classify buckets a request path. Everything not explicitly public or
// auth-only is protected; anything under /api/ additionally gets API error
// semantics.
func Classify(path string) PathClass {
	if authOnlyPaths[path] {
		return ClassAuthOnly
	}
	if publicPaths[path] {
		return ClassPublic
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return ClassPublic
		}
	}
	if strings.HasPrefix(path, "/api/") {
		return ClassProtectedAPI
	}
	return ClassProtected
}

// EdgeFilter gates every request on signature and expiry alone — it never
// touches the store, which is what keeps it cheap enough to run on requests
// that will be rejected before reaching a handler. Handlers that need live
// identity state run Resolve on top of it.
func EdgeFilter(tokens *auth.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			setSecurityHeaders(c)

			claims, ok := verifyRequestToken(tokens, c)
			if ok {
				c.Set("claims", claims)
			}

			switch Classify(c.Request().URL.Path) {
			case ClassPublic:
				return next(c)
			case ClassAuthOnly:
				if ok {
					return c.Redirect(http.StatusSeeOther, "/")
				}
				return next(c)
			case ClassProtectedAPI:
				if !ok {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
				}
				return next(c)
			default: // ClassProtected
				if !ok {
					target := "/login?next=" + url.QueryEscape(c.Request().URL.Path)
					return c.Redirect(http.StatusSeeOther, target)
				}
				return next(c)
			}
		}
	}
}

// TokenClaims returns the verified claims the edge filter attached, if any.
func TokenClaims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get("claims").(*auth.Claims)
	return claims, ok
}

func verifyRequestToken(tokens *auth.TokenService, c echo.Context) (*auth.Claims, bool) {
	raw := ""
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		h := c.Request().Header.Get(echo.HeaderAuthorization)
		raw = strings.TrimPrefix(h, "Bearer ")
	}
	if raw == "" {
		return nil, false
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setSecurityHeaders(c echo.Context) {
	h := c.Response().Header()
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
}
