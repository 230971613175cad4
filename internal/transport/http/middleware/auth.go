package middleware

import (
	"context"
	"net/http"
	"strings"

	"smartleave/internal/domain/auth"
)

type ctxKeyType string

const ctxKeyUser ctxKeyType = "user"

// UserContext is the authenticated identity carried through the request.
type UserContext struct {
	EmpID int
	Name  string
	Role  string
}

// Auth attaches the user context when a valid bearer token is present.
// Requests without a token pass through anonymously; RequirePermission is
// where absence turns into a 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				EmpID: claims.EmpID,
				Name:  claims.Name,
				Role:  claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
