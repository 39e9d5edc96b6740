package echoapi

import (
	"github.com/labstack/echo/v4"
)

// roleMiddleware gates a route to users holding at least one of the given
// roles (guard B). It must be registered after the JWT middleware.
// An empty allow-list is a route registration mistake, not an open door.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	if len(roles) == 0 {
		panic("roleMiddleware: empty role allow-list")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if claims.HasRole(role) {
					return next(ctx)
				}
			}
			return errAcessoNegado
		}
	}
}
