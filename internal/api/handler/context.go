package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxAccountID extracts the account id injected by the Auth middleware.
// Presence proves the middleware ran; handlers fail fast otherwise.
func ctxAccountID(c echo.Context) (string, error) {
	id, _ := c.Get("account_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
