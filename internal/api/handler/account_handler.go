package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/walletgate/identity-service/internal/api/metrics"
	"github.com/walletgate/identity-service/internal/core/ports"
)

// AccountHandler exposes the linking policy and account views for callers
// already holding a session credential.
type AccountHandler struct {
	identity ports.IdentityService
}

func NewAccountHandler(identity ports.IdentityService) *AccountHandler {
	return &AccountHandler{identity: identity}
}

// LinkWallet attaches a wallet address to the authenticated account.
//
// @Summary      Link a wallet to the authenticated account
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      linkWalletRequest  true  "Wallet address"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/account/wallet [post]
func (h *AccountHandler) LinkWallet(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req linkWalletRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	acc, err := h.identity.LinkWallet(c.Request().Context(), uid, req.WalletAddress)
	if err != nil {
		return err
	}
	metrics.WalletLinksTotal.Inc()

	return c.JSON(http.StatusOK, toAccountResponse(acc))
}

// Rename sets or changes the authenticated account's username.
//
// @Summary      Rename the authenticated account
// @Tags         account
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      renameRequest  true  "New username"
// @Success      200   {object}  accountResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/account/username [put]
func (h *AccountHandler) Rename(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	acc, err := h.identity.Rename(c.Request().Context(), uid, req.Username)
	if err != nil {
		return err
	}
	metrics.RenamesTotal.Inc()

	return c.JSON(http.StatusOK, toAccountResponse(acc))
}

// Me returns the authenticated account.
//
// @Summary      Get the authenticated account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/account [get]
func (h *AccountHandler) Me(c echo.Context) error {
	uid, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	acc, err := h.identity.GetAccount(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(acc))
}
