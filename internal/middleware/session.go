package middleware

import (
	"context"
	"net/http"
	"time"

	"go-dealership/internal/model"
)

// SessionCookieName carries the signed session token. The cookie is the
// only session state; there is no server-side store.
const SessionCookieName = "jwt"

// Redirect targets shared with the router.
const (
	LoginPath       = "/account/login"
	AccountHomePath = "/account/"
)

type tokenDecoder interface {
	Decode(tokenString string) (model.AccountIdentity, error)
}

type contextKey string

const identityContextKey contextKey = "account_identity"

// Session is the per-request choke point that turns the session cookie into
// a request-scoped identity. It runs before every route.
type Session struct {
	codec  tokenDecoder
	secure bool
}

func NewSession(codec tokenDecoder, secure bool) *Session {
	return &Session{codec: codec, secure: secure}
}

// Handler evaluates the cookie fresh on every request. No cookie means an
// anonymous request and the chain continues. A cookie that fails to decode
// for any reason short-circuits: the cookie is cleared, a notice is flashed
// and the client is sent to the login page; the requested handler never
// runs.
func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := s.codec.Decode(cookie.Value)
		if err != nil {
			ClearSessionCookie(w, s.secure)
			SetFlash(w, "Please log in.", s.secure)
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity the session middleware decoded,
// if any. Handlers treat the value as read-only.
func IdentityFromContext(ctx context.Context) (model.AccountIdentity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.AccountIdentity)
	return identity, ok
}

// WithIdentity returns a context carrying the identity. Tests use it to
// build authenticated requests without a real cookie.
func WithIdentity(ctx context.Context, identity model.AccountIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// SetSessionCookie installs a freshly issued token. Max-age mirrors the
// token TTL so the cookie and the token expire together.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the cookie on the client. The token itself
// stays valid until its embedded expiry; logout is purely client-side.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
