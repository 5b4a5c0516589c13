package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-dealership/internal/model"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

const vehicleColumns = `inv_id, inv_make, inv_model, inv_year, inv_description,
	inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id`

func scanVehicle(row pgx.Row) (model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Image, &v.Thumbnail, &v.Price, &v.Miles, &v.Color, &v.ClassificationID)
	return v, err
}

func (r *InventoryRepository) ListByClassification(ctx context.Context, classificationID int64) ([]model.Vehicle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vehicleColumns+`
		 FROM inventory
		 WHERE classification_id = $1
		 ORDER BY inv_make, inv_model`, classificationID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by classification: %w", err)
	}
	defer rows.Close()

	vehicles := make([]model.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (model.Vehicle, error) {
	v, err := scanVehicle(r.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM inventory WHERE inv_id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Vehicle{}, model.ErrVehicleNotFound
	}
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("find vehicle by id: %w", err)
	}
	return v, nil
}

func (r *InventoryRepository) Create(ctx context.Context, v model.Vehicle) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO inventory
		 (inv_make, inv_model, inv_year, inv_description, inv_image,
		  inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING inv_id`,
		v.Make, v.Model, v.Year, v.Description, v.Image,
		v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create vehicle: %w", err)
	}
	return id, nil
}

func (r *InventoryRepository) Update(ctx context.Context, v model.Vehicle) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE inventory
		 SET inv_make = $2, inv_model = $3, inv_year = $4, inv_description = $5,
		     inv_image = $6, inv_thumbnail = $7, inv_price = $8, inv_miles = $9,
		     inv_color = $10, classification_id = $11
		 WHERE inv_id = $1`,
		v.ID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVehicleNotFound
	}
	return nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE inv_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVehicleNotFound
	}
	return nil
}
