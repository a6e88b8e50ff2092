package handler

import (
	"time"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

// authenticateRequest carries the caller's identifying attributes. Both are
// optional: wallet only, username only, both, or neither (fresh anonymous
// account) are all valid.
type authenticateRequest struct {
	WalletAddress string `json:"wallet_address" validate:"omitempty,min=3,max=128"`
	Username      string `json:"username"       validate:"omitempty,min=1,max=64"`
}

type authResponse struct {
	UID         string `json:"uid"`
	Username    string `json:"username,omitempty"`
	IsNewUser   bool   `json:"is_new_user"`
	IsAnonymous bool   `json:"is_anonymous"`
	AuthType    string `json:"auth_type"`
	Token       string `json:"token"`
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		UID:         r.UID,
		Username:    r.Username,
		IsNewUser:   r.IsNewUser,
		IsAnonymous: r.IsAnonymous,
		AuthType:    r.AuthType,
		Token:       r.Token,
	}
}

type linkWalletRequest struct {
	WalletAddress string `json:"wallet_address" validate:"required,min=3,max=128"`
}

type renameRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

type accountResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username,omitempty"`
	WalletAddress  string     `json:"wallet_address,omitempty"`
	IsAnonymous    bool       `json:"is_anonymous"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActiveAt   time.Time  `json:"last_active_at"`
	WalletLinkedAt *time.Time `json:"wallet_linked_at,omitempty"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Username:       a.Username,
		WalletAddress:  a.WalletAddress,
		IsAnonymous:    a.IsAnonymous,
		CreatedAt:      a.CreatedAt,
		LastActiveAt:   a.LastActiveAt,
		WalletLinkedAt: a.WalletLinkedAt,
	}
}
