package client

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Credential is the bearer token handed to an HTTPClient at construction.
// The zero value means anonymous access (gallery and download endpoints).
type Credential struct {
	Token string
}

func NewCredential(token string) Credential {
	return Credential{Token: token}
}

func (c Credential) IsZero() bool { return c.Token == "" }

// ExpiresAt reads the exp claim without verifying the signature; only the
// backend can verify. ok is false when the token carries no exp claim.
func (c Credential) ExpiresAt() (exp time.Time, ok bool, err error) {
	if c.Token == "" {
		return time.Time{}, false, nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false, nil
	}
	return claims.ExpiresAt.Time, true, nil
}

// Check returns ErrTokenExpired when the token's exp is not after now, and
// ErrInvalidToken when it is not a decodable JWT. A JWT without exp passes.
func (c Credential) Check(now time.Time) error {
	exp, ok, err := c.ExpiresAt()
	if err != nil {
		return err
	}
	if ok && !exp.After(now) {
		return fmt.Errorf("%w at %s", common.ErrTokenExpired, exp.Format(time.RFC3339))
	}
	return nil
}
