package middleware

import (
	"net/http"

	"book-review/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate attaches the caller principal when the Authorization header
// carries a valid token. It never rejects: resolvers decide what anonymous
// callers may do.
func Authenticate(tokens *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal := utils.PrincipalFromClaims(tokens.GetUserFromToken(header))
			if principal == nil {
				logger.Debug("Ignoring invalid bearer token",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
