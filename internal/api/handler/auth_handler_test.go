package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

type stubIdentityService struct {
	authenticateFn func(ctx context.Context, in ports.AuthenticateInput) (*ports.AuthResult, error)
	linkWalletFn   func(ctx context.Context, uid, wallet string) (*domain.Account, error)
	renameFn       func(ctx context.Context, uid, username string) (*domain.Account, error)
	getAccountFn   func(ctx context.Context, uid string) (*domain.Account, error)
}

func (s *stubIdentityService) Authenticate(ctx context.Context, in ports.AuthenticateInput) (*ports.AuthResult, error) {
	return s.authenticateFn(ctx, in)
}

func (s *stubIdentityService) LinkWallet(ctx context.Context, uid, wallet string) (*domain.Account, error) {
	return s.linkWalletFn(ctx, uid, wallet)
}

func (s *stubIdentityService) Rename(ctx context.Context, uid, username string) (*domain.Account, error) {
	return s.renameFn(ctx, uid, username)
}

func (s *stubIdentityService) GetAccount(ctx context.Context, uid string) (*domain.Account, error) {
	return s.getAccountFn(ctx, uid)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Authenticate_NewAccount(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(_ context.Context, in ports.AuthenticateInput) (*ports.AuthResult, error) {
			if in.WalletAddress != "0xABC" || in.Username != "alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				UID:       "u1",
				Username:  "alice",
				IsNewUser: true,
				AuthType:  domain.AuthTypeWallet,
				Token:     "token123",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/wallet",
		`{"wallet_address":"0xABC","username":"alice"}`)

	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a new account, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["uid"] != "u1" || resp["token"] != "token123" || resp["is_new_user"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Authenticate_ExistingAccount(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(context.Context, ports.AuthenticateInput) (*ports.AuthResult, error) {
			return &ports.AuthResult{UID: "u1", Username: "alice", AuthType: domain.AuthTypeWallet, Token: "t"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/wallet", `{"wallet_address":"0xABC"}`)

	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for an existing account, got %d", rec.Code)
	}
}

func TestAuthHandler_Authenticate_EmptyBodyAllowed(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(_ context.Context, in ports.AuthenticateInput) (*ports.AuthResult, error) {
			if in.WalletAddress != "" || in.Username != "" {
				t.Fatalf("expected empty input, got %+v", in)
			}
			return &ports.AuthResult{UID: "u2", IsNewUser: true, IsAnonymous: true, AuthType: domain.AuthTypeAnonymous, Token: "t"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/wallet", `{}`)

	if err := h.Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Authenticate_ConflictPropagates(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(context.Context, ports.AuthenticateInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUsernameLinkedToDifferentWallet
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/wallet",
		`{"wallet_address":"0xDEF","username":"dave"}`)

	err := h.Authenticate(c)
	if err != domain.ErrUsernameLinkedToDifferentWallet {
		t.Fatalf("expected conflict to propagate to the error handler, got %v", err)
	}
}

func TestAuthHandler_Authenticate_InvalidPayload(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(context.Context, ports.AuthenticateInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/wallet", "not-json")

	err := h.Authenticate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Authenticate_ValidationFailure(t *testing.T) {
	stub := &stubIdentityService{
		authenticateFn: func(context.Context, ports.AuthenticateInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	// Wallet address below the minimum length.
	c, _ := newTestContext(t, http.MethodPost, "/v1/auth/wallet", `{"wallet_address":"ab"}`)

	err := h.Authenticate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}
