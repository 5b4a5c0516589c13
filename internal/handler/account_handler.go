package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"go-dealership/internal/middleware"
	"go-dealership/internal/model"
	"go-dealership/internal/service"
)

type AccountHandler struct {
	*Base
	accounts   *service.AccountService
	reviews    *service.ReviewService
	sessionTTL time.Duration
}

func NewAccountHandler(base *Base, accounts *service.AccountService, reviews *service.ReviewService, sessionTTL time.Duration) *AccountHandler {
	return &AccountHandler{Base: base, accounts: accounts, reviews: reviews, sessionTTL: sessionTTL}
}

func (h *AccountHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Login", nil, map[string]any{"email": ""})
}

// Login authenticates and installs the session cookie. Every failure mode
// renders the same message and never sets a cookie.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	email := r.PostFormValue("account_email")
	password := r.PostFormValue("account_password")

	identity, token, err := h.accounts.Login(r.Context(), email, password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		h.render(w, r, http.StatusBadRequest, "login", "Login",
			[]string{"Please check your credentials and try again."},
			map[string]any{"email": email})
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, token, h.sessionTTL, h.secure)
	h.redirectWithFlash(w, r, "Welcome back, "+identity.FirstName+".", middleware.AccountHomePath)
}

func (h *AccountHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", "Register", nil, map[string]any{
		"firstName": "", "lastName": "", "email": "",
	})
}

// Register creates a Client account. Success sends the user to the login
// page rather than starting a session.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	form := registrationForm{
		FirstName: r.PostFormValue("account_firstname"),
		LastName:  r.PostFormValue("account_lastname"),
		Email:     r.PostFormValue("account_email"),
		Password:  r.PostFormValue("account_password"),
	}

	sticky := map[string]any{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
	}

	if errs := form.validate(); len(errs) > 0 {
		h.render(w, r, http.StatusBadRequest, "register", "Register", errs, sticky)
		return
	}

	err := h.accounts.Register(r.Context(), form.FirstName, form.LastName, form.Email, form.Password)
	if errors.Is(err, model.ErrEmailTaken) {
		h.render(w, r, http.StatusBadRequest, "register", "Register",
			[]string{"That email address is already registered. Please log in or use a different email."},
			sticky)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r,
		"Congratulations, you're registered "+form.FirstName+". Please log in.",
		middleware.LoginPath)
}

// Management is the logged-in landing page: greeting, the staff link when
// the account type allows it, and the account's own reviews.
func (h *AccountHandler) Management(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviews.AccountReviews(r.Context(), identity.AccountID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "account", "Account Management", nil, map[string]any{
		"reviews": reviews,
	})
}

// Logout clears the cookie. The token itself is not revoked; it simply
// ages out.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.secure)
	h.redirectWithFlash(w, r, "You have been logged out.", "/")
}

// ShowUpdate renders the profile and password forms. The id in the URL must
// match the session identity; accounts cannot open each other's forms.
func (h *AccountHandler) ShowUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil || id != identity.AccountID {
		h.redirectWithFlash(w, r, "You are not authorized to access that page.", middleware.AccountHomePath)
		return
	}

	h.renderUpdate(w, r, http.StatusOK, nil, map[string]any{
		"firstName": identity.FirstName,
		"lastName":  identity.LastName,
		"email":     identity.Email,
	})
}

// Update changes name and email, then swaps the session cookie for one
// carrying the updated identity.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	form := profileForm{
		FirstName: r.PostFormValue("account_firstname"),
		LastName:  r.PostFormValue("account_lastname"),
		Email:     r.PostFormValue("account_email"),
	}

	sticky := map[string]any{
		"firstName": form.FirstName,
		"lastName":  form.LastName,
		"email":     form.Email,
	}

	if errs := form.validate(); len(errs) > 0 {
		h.renderUpdate(w, r, http.StatusBadRequest, errs, sticky)
		return
	}

	_, token, err := h.accounts.UpdateProfile(r.Context(), identity.AccountID, form.FirstName, form.LastName, form.Email)
	if errors.Is(err, model.ErrEmailTaken) {
		h.renderUpdate(w, r, http.StatusBadRequest,
			[]string{"That email address is already in use by another account."}, sticky)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, token, h.sessionTTL, h.secure)
	h.redirectWithFlash(w, r, "Your account was successfully updated.", middleware.AccountHomePath)
}

// UpdatePassword stores a new password hash and refreshes the session.
func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	sticky := map[string]any{
		"firstName": identity.FirstName,
		"lastName":  identity.LastName,
		"email":     identity.Email,
	}

	password := r.PostFormValue("account_password")
	if !validatePassword(password) {
		h.renderUpdate(w, r, http.StatusBadRequest,
			[]string{"Password does not meet requirements."}, sticky)
		return
	}

	_, token, err := h.accounts.UpdatePassword(r.Context(), identity.AccountID, password)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, token, h.sessionTTL, h.secure)
	h.redirectWithFlash(w, r, "Your password was successfully updated.", middleware.AccountHomePath)
}

func (h *AccountHandler) renderUpdate(w http.ResponseWriter, r *http.Request, status int, errs []string, content map[string]any) {
	h.render(w, r, status, "account_update", "Edit Account", errs, content)
}
