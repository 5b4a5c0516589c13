package middleware

import (
	"net/http"

	"go-dealership/internal/model"
)

// The gates are pure functions of the request context the session
// middleware populated. They decide pass/redirect and nothing else;
// ownership of a specific resource is re-asserted inside the mutating
// store query.

// RequireLogin redirects anonymous requests to the login page with a
// notice. Evaluating it twice on the same context yields the same result.
func (s *Session) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			SetFlash(w, "Please log in.", s.secure)
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStaff admits Employee and Admin accounts to the inventory
// management screens. Anonymous requests go to login; logged-in clients go
// back to their account page.
func (s *Session) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			SetFlash(w, "Please log in.", s.secure)
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		if !identity.IsStaff() {
			SetFlash(w, "You are not authorized to access that page.", s.secure)
			http.Redirect(w, r, AccountHomePath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IsOwner reports whether the identity owns the resource. Owner ids always
// come from a fresh store lookup, never from submitted form fields.
func IsOwner(identity model.AccountIdentity, ownerID int64) bool {
	return identity.AccountID > 0 && identity.AccountID == ownerID
}
