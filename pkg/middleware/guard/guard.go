// Package guard is the adapter-level bearer check. The registry core never
// authenticates; whatever mounts it over HTTP decides, and this middleware
// is that decision for deployments that want a shared-secret JWT.
package guard

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
)

type ctxKey struct{}

// Middleware verifies HS256 bearer tokens against a shared secret. An empty
// secret disables the guard entirely.
type Middleware struct {
	secret []byte
}

func New(secret string) *Middleware { return &Middleware{secret: []byte(secret)} }

func (m *Middleware) Enabled() bool { return len(m.secret) > 0 }

func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			hdr := r.Header.Get("Authorization")
			raw := strings.TrimPrefix(hdr, "Bearer ")
			if raw == "" || raw == hdr {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.secret, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !tok.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, tok.Claims)))
		})
	}
}

// Claims returns the verified token claims when the guard admitted the
// request.
func Claims(ctx context.Context) (jwt.Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(jwt.Claims)
	return c, ok
}

func ProvideGuard() *Middleware { return New(os.Getenv("GUARD_JWT_SECRET")) }

var Module = fx.Options(
	fx.Provide(ProvideGuard),
)
