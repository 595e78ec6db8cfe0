package httpapi

import (
	"net/http"

	"docshelf/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// checkToken rejects a bearer token that is visibly expired, without a round
// trip. Signatures are not verified here; the API does that. Tokens that are
// not JWTs are passed through untouched.
func (c *Client) checkToken(op string) error {
	if c.token == "" {
		return nil
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		return nil
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(c.now()) {
		c.logger.Warn("API token expired", "op", op, "expired_at", claims.ExpiresAt.Time)
		return &domain.CollaboratorError{
			Op:      op,
			Status:  http.StatusUnauthorized,
			Message: "session expired, please log in again",
			Err:     domain.ErrUnauthorized,
		}
	}
	return nil
}
