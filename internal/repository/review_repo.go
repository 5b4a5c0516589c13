package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-dealership/internal/model"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// ListByVehicle returns a vehicle's reviews newest-first, joined with the
// reviewer's name for display.
func (r *ReviewRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.VehicleReview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rv.review_id, rv.review_text, rv.review_date,
		        a.account_firstname, a.account_lastname
		 FROM review rv
		 JOIN account a ON rv.account_id = a.account_id
		 WHERE rv.inv_id = $1
		 ORDER BY rv.review_date DESC`, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by vehicle: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.VehicleReview, 0)
	for rows.Next() {
		var rv model.VehicleReview
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.Date, &rv.FirstName, &rv.LastName); err != nil {
			return nil, fmt.Errorf("scan vehicle review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// ListByAccount returns an account's own reviews newest-first, joined with
// the reviewed vehicle.
func (r *ReviewRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.AccountReview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT rv.review_id, rv.review_text, rv.review_date, rv.inv_id, rv.account_id,
		        i.inv_year, i.inv_make, i.inv_model
		 FROM review rv
		 JOIN inventory i ON rv.inv_id = i.inv_id
		 WHERE rv.account_id = $1
		 ORDER BY rv.review_date DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by account: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.AccountReview, 0)
	for rows.Next() {
		var rv model.AccountReview
		if err := rows.Scan(&rv.ID, &rv.Text, &rv.Date, &rv.VehicleID, &rv.AccountID,
			&rv.VehicleYear, &rv.VehicleMake, &rv.VehicleModel); err != nil {
			return nil, fmt.Errorf("scan account review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// FindOwned returns a review joined with its vehicle, but only when the
// given account owns it. A missing review and a review owned by someone
// else are indistinguishable to the caller.
func (r *ReviewRepository) FindOwned(ctx context.Context, reviewID, accountID int64) (model.AccountReview, error) {
	var rv model.AccountReview
	err := r.pool.QueryRow(ctx,
		`SELECT rv.review_id, rv.review_text, rv.review_date, rv.inv_id, rv.account_id,
		        i.inv_year, i.inv_make, i.inv_model
		 FROM review rv
		 JOIN inventory i ON rv.inv_id = i.inv_id
		 WHERE rv.review_id = $1 AND rv.account_id = $2`, reviewID, accountID).
		Scan(&rv.ID, &rv.Text, &rv.Date, &rv.VehicleID, &rv.AccountID,
			&rv.VehicleYear, &rv.VehicleMake, &rv.VehicleModel)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.AccountReview{}, model.ErrReviewNotAuthorized
	}
	if err != nil {
		return model.AccountReview{}, fmt.Errorf("find owned review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, vehicleID, accountID int64, text string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO review (review_text, review_date, inv_id, account_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING review_id`,
		text, time.Now().UTC(), vehicleID, accountID).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create review: %w", err)
	}
	return id, nil
}

// UpdateOwned rewrites the review text. The statement itself filters by
// owner, so a stale or skipped ownership check upstream cannot let another
// account's update through.
func (r *ReviewRepository) UpdateOwned(ctx context.Context, reviewID, accountID int64, text string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE review SET review_text = $3, review_date = $4
		 WHERE review_id = $1 AND account_id = $2`,
		reviewID, accountID, text, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotAuthorized
	}
	return nil
}

// DeleteOwned removes the review, owner-scoped like UpdateOwned.
func (r *ReviewRepository) DeleteOwned(ctx context.Context, reviewID, accountID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM review WHERE review_id = $1 AND account_id = $2`,
		reviewID, accountID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotAuthorized
	}
	return nil
}
