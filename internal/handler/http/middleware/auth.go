package middleware

import (
	"net/http"

	"github.com/alefshop/attendance-backend/internal/domain/auth"
	"github.com/alefshop/attendance-backend/internal/handler/http/response"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired admits requests carrying a verified, unrevoked access token.
// It must run after jwtauth.Verify reading the Authorization header.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims[jwt.ClaimType].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
