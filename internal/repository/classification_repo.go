package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-dealership/internal/model"
)

type ClassificationRepository struct {
	pool *pgxpool.Pool
}

func NewClassificationRepository(pool *pgxpool.Pool) *ClassificationRepository {
	return &ClassificationRepository{pool: pool}
}

// List returns every classification ordered by name; the navigation bar is
// built from this on every page render.
func (r *ClassificationRepository) List(ctx context.Context) ([]model.Classification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT classification_id, classification_name
		 FROM classification ORDER BY classification_name`)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()

	out := make([]model.Classification, 0)
	for rows.Next() {
		var c model.Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClassificationRepository) FindByID(ctx context.Context, id int64) (model.Classification, error) {
	var c model.Classification
	err := r.pool.QueryRow(ctx,
		`SELECT classification_id, classification_name
		 FROM classification WHERE classification_id = $1`, id).
		Scan(&c.ID, &c.Name)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Classification{}, model.ErrClassificationNotFound
	}
	if err != nil {
		return model.Classification{}, fmt.Errorf("find classification: %w", err)
	}
	return c, nil
}

func (r *ClassificationRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM classification WHERE lower(classification_name) = lower($1)
		)`, strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check classification name: %w", err)
	}
	return exists, nil
}

func (r *ClassificationRepository) Create(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classification (classification_name) VALUES ($1)
		 RETURNING classification_id`, strings.TrimSpace(name)).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create classification: %w", err)
	}
	return id, nil
}

// Delete removes a classification. The delete is refused while inventory
// still references it; the NOT EXISTS guard and the delete run as one
// statement so a concurrent insert cannot slip between check and delete.
func (r *ClassificationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM classification c
		 WHERE c.classification_id = $1
		   AND NOT EXISTS (
			SELECT 1 FROM inventory i WHERE i.classification_id = c.classification_id
		 )`, id)
	if err != nil {
		return fmt.Errorf("delete classification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var inUse bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM inventory WHERE classification_id = $1)`, id).
			Scan(&inUse); err != nil {
			return fmt.Errorf("check classification inventory: %w", err)
		}
		if inUse {
			return model.ErrClassificationInUse
		}
		return model.ErrClassificationNotFound
	}
	return nil
}
