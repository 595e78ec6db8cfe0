package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"docshelf/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// Auth verifies HS256 bearer tokens signed with secret and stores the
// numeric subject as the user id. An empty secret disables the check, which
// is how the dev server runs against local fixtures.
func Auth(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		parser := jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		keyFunc := func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS pre-flight carries no credentials
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			var claims jwt.RegisteredClaims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				logger.Debug("token rejected", "error", err, "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			userID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				logger.Debug("token subject is not a user id", "subject", claims.Subject)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
