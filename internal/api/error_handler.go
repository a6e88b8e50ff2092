package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/walletgate/identity-service/internal/api/metrics"
	"github.com/walletgate/identity-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind is
// populated for conflicts so clients can branch without parsing messages.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the closed set of domain errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "...", "kind": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		kind := domain.ConflictKind(err)
		if kind != "" {
			metrics.ConflictsTotal.WithLabelValues(kind).Inc()
		}
		_ = c.JSON(code, errorResponse{Error: msg, Kind: kind})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case domain.IsConflict(err):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return http.StatusBadRequest, "invalid identifier"
	case errors.Is(err, domain.ErrStoreUnavailable):
		// Transient: safe for the caller to retry. The service itself never
		// retries, to avoid duplicate-insert risk.
		return http.StatusServiceUnavailable, "temporarily unavailable, retry"
	}

	// Unexpected error (including invariant violations): log the real cause,
	// return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
