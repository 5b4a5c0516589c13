package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"go-dealership/internal/middleware"
	"go-dealership/internal/model"
	"go-dealership/internal/service"
)

type ReviewHandler struct {
	*Base
	reviews *service.ReviewService
}

func NewReviewHandler(base *Base, reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Base: base, reviews: reviews}
}

// Add creates a review for the logged-in account. The owner is the session
// identity; the form only names the vehicle.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	vehicleID, err := strconv.ParseInt(r.PostFormValue("inv_id"), 10, 64)
	if err != nil || vehicleID <= 0 {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "Invalid vehicle id.")
		return
	}

	text := r.PostFormValue("review_text")
	detailPath := "/inv/detail/" + strconv.FormatInt(vehicleID, 10)

	err = h.reviews.Add(r.Context(), vehicleID, identity.AccountID, text)
	if errors.Is(err, model.ErrInvalidInput) {
		h.redirectWithFlash(w, r, "Please write a few words before submitting your review.", detailPath)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "Thank you, your review was added.", detailPath)
}

// ShowEdit loads an owned review into the edit form. A review that does not
// exist and a review owned by someone else are handled identically.
func (h *ReviewHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil || reviewID <= 0 {
		h.notAuthorized(w, r)
		return
	}

	review, err := h.reviews.ForEdit(r.Context(), reviewID, identity.AccountID)
	if errors.Is(err, model.ErrReviewNotAuthorized) {
		h.notAuthorized(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "review_edit", "Edit "+review.VehicleTitle()+" Review", nil, map[string]any{
		"review":     review,
		"reviewText": review.Text,
	})
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	reviewID, err := strconv.ParseInt(r.PostFormValue("review_id"), 10, 64)
	if err != nil || reviewID <= 0 {
		h.notAuthorized(w, r)
		return
	}

	text := r.PostFormValue("review_text")

	err = h.reviews.Update(r.Context(), reviewID, identity.AccountID, text)
	if errors.Is(err, model.ErrInvalidInput) {
		review, loadErr := h.reviews.ForEdit(r.Context(), reviewID, identity.AccountID)
		if loadErr != nil {
			h.notAuthorized(w, r)
			return
		}
		h.render(w, r, http.StatusBadRequest, "review_edit", "Edit "+review.VehicleTitle()+" Review",
			[]string{"Review text must be at least 3 characters long."},
			map[string]any{"review": review, "reviewText": strings.TrimSpace(text)})
		return
	}
	if errors.Is(err, model.ErrReviewNotAuthorized) {
		h.notAuthorized(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "Your review was successfully updated.", middleware.AccountHomePath)
}

// ShowDelete renders the delete confirmation for an owned review.
func (h *ReviewHandler) ShowDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil || reviewID <= 0 {
		h.notAuthorized(w, r)
		return
	}

	review, err := h.reviews.ForEdit(r.Context(), reviewID, identity.AccountID)
	if errors.Is(err, model.ErrReviewNotAuthorized) {
		h.notAuthorized(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "review_delete", "Delete "+review.VehicleTitle()+" Review", nil, map[string]any{
		"review": review,
	})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	reviewID, err := strconv.ParseInt(r.PostFormValue("review_id"), 10, 64)
	if err != nil || reviewID <= 0 {
		h.notAuthorized(w, r)
		return
	}

	err = h.reviews.Delete(r.Context(), reviewID, identity.AccountID)
	if errors.Is(err, model.ErrReviewNotAuthorized) {
		h.notAuthorized(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "Your review was successfully deleted.", middleware.AccountHomePath)
}

func (h *ReviewHandler) notAuthorized(w http.ResponseWriter, r *http.Request) {
	h.redirectWithFlash(w, r, "You are not authorized to modify that review.", middleware.AccountHomePath)
}
