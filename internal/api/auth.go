package api

import (
	"context"
	"encoding/json"
	"net/http"

	"tuninggarage/internal/domain"
)

// AuthClient handles registration and login.
type AuthClient struct {
	client *Client
}

type RegisterRequest struct {
	Name     string  `json:"nombre"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"telefono,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the only endpoint that does not use the data envelope:
// token and user ride at the top level next to success/message.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"usuario,omitempty"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatarURL"`
}

func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return a.post(ctx, "Auth/register", req)
}

// UpdateAvatar points the account at an already-uploaded image URL and
// returns the updated user.
func (a *AuthClient) UpdateAvatar(ctx context.Context, url string) (domain.User, error) {
	return doEnvelope[domain.User](ctx, a.client, http.MethodPut, "Users/avatar", UpdateAvatarRequest{AvatarURL: url})
}

func (a *AuthClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return a.post(ctx, "Auth/login", req)
}

func (a *AuthClient) post(ctx context.Context, path string, body any) (*AuthResponse, error) {
	raw, err := a.client.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &Error{Kind: KindDecode, Err: err}
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		return nil, &Error{Kind: KindDomain, Message: resp.Message}
	}
	return &resp, nil
}
