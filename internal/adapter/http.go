package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clinic-client/models"
)

// Login implements [AuthAdapter]. It POSTs the credentials to
// POST /auth/login without any bearer token and decodes the access token.
// Returns an error if the request fails, the server returns a non-2xx status,
// or the response carries no token.
func (h *httpServerAdapter) Login(ctx context.Context, creds models.Credentials) (models.TokenResponse, error) {
	resp, err := h.anonymousRequest(ctx).
		SetBody(creds).
		Post("/auth/login")
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TokenResponse{}, err
	}

	var token models.TokenResponse
	if err = json.Unmarshal(resp.Body(), &token); err != nil {
		return models.TokenResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	if token.AccessToken == "" {
		return models.TokenResponse{}, fmt.Errorf("login response: %w", ErrEmptyToken)
	}

	return token, nil
}

// Register implements [AuthAdapter]. It POSTs the new account to
// POST /auth/register without any bearer token and returns the created user.
func (h *httpServerAdapter) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	resp, err := h.anonymousRequest(ctx).
		SetBody(reg).
		Post("/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}

	return decodeUser(resp, "register")
}

// Me implements [AuthAdapter]. The token is taken from the context override
// if present, otherwise from the token source.
func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	resp, err := h.request(ctx).Get("/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}

	return decodeUser(resp, "me")
}

// UpdateMe implements [AuthAdapter]. Only the non-nil fields of update are
// sent.
func (h *httpServerAdapter) UpdateMe(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	resp, err := h.request(ctx).
		SetBody(update).
		Put("/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("update me request: %w", err)
	}

	return decodeUser(resp, "update me")
}

// ChangePassword implements [AuthAdapter].
func (h *httpServerAdapter) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	resp, err := h.request(ctx).
		SetBody(change).
		Put("/auth/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

// Logout implements [AuthAdapter].
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

func decodeUser(resp *resty.Response, op string) (models.User, error) {
	if err := mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode %s response: %w", op, err)
	}
	return user, nil
}
