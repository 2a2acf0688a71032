package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/photodesk/internal/client/client"
	"github.com/dmitrijs2005/photodesk/internal/client/models"
	"github.com/dmitrijs2005/photodesk/internal/common"
)

const minPasswordLen = 6

// AuthService wraps the account endpoints with client-side validation.
// Tokens are returned to the caller and never stored.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Register(ctx context.Context, name, email, password string) (models.Session, error)
	WhoAmI(ctx context.Context) (models.User, error)
	VerifyOTP(ctx context.Context, email, otp string) error
}

type authService struct {
	api client.AuthAPI
}

func NewAuthService(api client.AuthAPI) AuthService {
	return &authService{api: api}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return models.Session{}, err
	}
	if password == "" {
		return models.Session{}, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	s, err := a.api.Login(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("login error: %w", err)
	}
	return s, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return models.Session{}, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return models.Session{}, err
	}
	if len(password) < minPasswordLen {
		return models.Session{}, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLen)
	}

	s, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("register error: %w", err)
	}
	return s, nil
}

func (a *authService) WhoAmI(ctx context.Context) (models.User, error) {
	return a.api.Profile(ctx)
}

func (a *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	email, otp = strings.TrimSpace(email), strings.TrimSpace(otp)
	if err := validateEmail(email); err != nil {
		return err
	}
	if otp == "" {
		return fmt.Errorf("%w: otp is required", common.ErrValidation)
	}

	if err := a.api.VerifyOTP(ctx, email, otp); err != nil {
		return fmt.Errorf("verify otp error: %w", err)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email %q", common.ErrValidation, email)
	}
	return nil
}
