package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/walletgate/identity-service/internal/api/metrics"
	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

// AuthHandler exposes the reconciliation engine's authenticate operation.
type AuthHandler struct {
	identity ports.IdentityService
}

func NewAuthHandler(identity ports.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Authenticate resolves the supplied attributes to exactly one account and
// returns a session credential.
//
// @Summary      Authenticate by wallet and/or username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Identifying attributes (both optional)"
// @Success      200   {object}  authResponse  "Existing account"
// @Success      201   {object}  authResponse  "New account created"
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/auth/wallet [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	res, err := h.identity.Authenticate(c.Request().Context(), ports.AuthenticateInput{
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
	})
	if err != nil {
		outcome := "error"
		if domain.IsConflict(err) {
			outcome = "conflict"
		}
		metrics.AuthenticateDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		return err
	}
	metrics.AuthenticateDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	metrics.LoginsTotal.WithLabelValues(res.AuthType, boolLabel(res.IsNewUser)).Inc()

	status := http.StatusOK
	if res.IsNewUser {
		status = http.StatusCreated
	}
	return c.JSON(status, toAuthResponse(res))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
