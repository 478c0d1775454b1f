package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"taskmarket.com/taskmarket/internal/apperrors"
	"taskmarket.com/taskmarket/internal/constants"
	"taskmarket.com/taskmarket/internal/services"
)

const (
	callerContextKey = "caller"
	tokenContextKey  = "authToken"
)

// RequireAuth resolves the bearer token into a caller identity and attaches
// it to the request context.
func RequireAuth(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, found := strings.Cut(c.Request().Header.Get("Authorization"), " ")
			if !found || scheme != "Bearer" || token == "" {
				return apperrors.Unauthorized("Authentication required")
			}

			caller, err := authService.ResolveCaller(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(callerContextKey, caller)
			c.Set(tokenContextKey, token)
			return next(c)
		}
	}
}

// RequireRole gates a route on the caller's role. Must run after
// RequireAuth.
func RequireRole(roles ...constants.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := c.Get(callerContextKey).(*services.Caller)
			if !ok {
				return apperrors.Unauthorized("Authentication required")
			}

			for _, role := range roles {
				if caller.Role == role {
					return next(c)
				}
			}
			return apperrors.Forbidden("Insufficient permissions")
		}
	}
}

// Caller returns the identity attached by RequireAuth, nil when absent.
func Caller(c echo.Context) *services.Caller {
	caller, _ := c.Get(callerContextKey).(*services.Caller)
	return caller
}

// Token returns the bearer token attached by RequireAuth.
func Token(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
