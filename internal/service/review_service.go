package service

import (
	"context"
	"strings"

	"go-dealership/internal/model"
)

const reviewMinLength = 3

type ReviewStore interface {
	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.VehicleReview, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.AccountReview, error)
	FindOwned(ctx context.Context, reviewID, accountID int64) (model.AccountReview, error)
	Create(ctx context.Context, vehicleID, accountID int64, text string) (int64, error)
	UpdateOwned(ctx context.Context, reviewID, accountID int64, text string) error
	DeleteOwned(ctx context.Context, reviewID, accountID int64) error
}

// ReviewService owns the review lifecycle. The accountID on every mutation
// comes from the request identity, never from form fields, and the store
// queries are owner-scoped, so the ownership rule holds even if a handler
// check were skipped.
type ReviewService struct {
	store ReviewStore
}

func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{store: store}
}

func (s *ReviewService) VehicleReviews(ctx context.Context, vehicleID int64) ([]model.VehicleReview, error) {
	return s.store.ListByVehicle(ctx, vehicleID)
}

func (s *ReviewService) AccountReviews(ctx context.Context, accountID int64) ([]model.AccountReview, error) {
	return s.store.ListByAccount(ctx, accountID)
}

func (s *ReviewService) Add(ctx context.Context, vehicleID, accountID int64, text string) error {
	text = strings.TrimSpace(text)
	if len(text) < reviewMinLength {
		return model.ErrInvalidInput
	}

	_, err := s.store.Create(ctx, vehicleID, accountID, text)
	return err
}

// ForEdit loads a review for the edit and delete-confirmation views. The
// lookup is already owner-scoped: a missing review and someone else's
// review both return ErrReviewNotAuthorized.
func (s *ReviewService) ForEdit(ctx context.Context, reviewID, accountID int64) (model.AccountReview, error) {
	return s.store.FindOwned(ctx, reviewID, accountID)
}

func (s *ReviewService) Update(ctx context.Context, reviewID, accountID int64, text string) error {
	text = strings.TrimSpace(text)
	if len(text) < reviewMinLength {
		return model.ErrInvalidInput
	}

	return s.store.UpdateOwned(ctx, reviewID, accountID, text)
}

func (s *ReviewService) Delete(ctx context.Context, reviewID, accountID int64) error {
	return s.store.DeleteOwned(ctx, reviewID, accountID)
}
