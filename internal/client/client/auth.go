package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/photodesk/internal/client/models"
)

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "login"), loginRequest{Email: email, Password: password}, &resp); err != nil {
		return models.Session{}, err
	}
	if resp.Token == "" {
		return models.Session{}, fmt.Errorf("login response has no token")
	}
	return models.Session{Token: resp.Token, User: resp.User.toModel()}, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	var resp sessionResponse
	in := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "register"), in, &resp); err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: resp.Token, User: resp.User.toModel()}, nil
}

// VerifyOTP confirms a registered email with the one-time code the backend
// mailed to it.
func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) error {
	in := verifyOTPRequest{Email: email, OTP: otp}
	return c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "verify-otp"), in, nil)
}

// Profile returns the user the credential belongs to.
func (c *HTTPClient) Profile(ctx context.Context) (models.User, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "auth", "me"), nil, &resp); err != nil {
		return models.User{}, err
	}
	return *resp.User.toModel(), nil
}
