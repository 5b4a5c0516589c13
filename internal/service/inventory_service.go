package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"go-dealership/internal/model"
)

const (
	defaultVehicleImage     = "/images/vehicles/no-image.png"
	defaultVehicleThumbnail = "/images/vehicles/no-image-tn.png"
)

type ClassificationStore interface {
	List(ctx context.Context) ([]model.Classification, error)
	FindByID(ctx context.Context, id int64) (model.Classification, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type InventoryStore interface {
	ListByClassification(ctx context.Context, classificationID int64) ([]model.Vehicle, error)
	FindByID(ctx context.Context, id int64) (model.Vehicle, error)
	Create(ctx context.Context, v model.Vehicle) (int64, error)
	Update(ctx context.Context, v model.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

type thumbnailer interface {
	Generate(webImagePath string) (string, error)
}

type InventoryService struct {
	classifications ClassificationStore
	inventory       InventoryStore
	thumbs          thumbnailer
}

func NewInventoryService(classifications ClassificationStore, inventory InventoryStore, thumbs thumbnailer) *InventoryService {
	return &InventoryService{classifications: classifications, inventory: inventory, thumbs: thumbs}
}

func (s *InventoryService) Classifications(ctx context.Context) ([]model.Classification, error) {
	return s.classifications.List(ctx)
}

func (s *InventoryService) ClassificationByID(ctx context.Context, id int64) (model.Classification, error) {
	return s.classifications.FindByID(ctx, id)
}

// AddClassification creates a classification. Names are a single word of
// letters and digits; anything else is rejected before reaching the store.
func (s *InventoryService) AddClassification(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if !validClassificationName(name) {
		return 0, model.ErrInvalidInput
	}

	taken, err := s.classifications.NameExists(ctx, name)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, model.ErrClassificationTaken
	}

	return s.classifications.Create(ctx, name)
}

// DeleteClassification removes an empty classification; the store refuses
// while inventory still references it.
func (s *InventoryService) DeleteClassification(ctx context.Context, id int64) error {
	return s.classifications.Delete(ctx, id)
}

func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID int64) ([]model.Vehicle, error) {
	return s.inventory.ListByClassification(ctx, classificationID)
}

func (s *InventoryService) VehicleByID(ctx context.Context, id int64) (model.Vehicle, error) {
	return s.inventory.FindByID(ctx, id)
}

// AddVehicle stores a new inventory row. The classification must exist, and
// a thumbnail is generated from the photo when one is available.
func (s *InventoryService) AddVehicle(ctx context.Context, v model.Vehicle) (int64, error) {
	if _, err := s.classifications.FindByID(ctx, v.ClassificationID); err != nil {
		return 0, err
	}

	s.fillImages(&v)
	return s.inventory.Create(ctx, v)
}

func (s *InventoryService) UpdateVehicle(ctx context.Context, v model.Vehicle) error {
	if _, err := s.classifications.FindByID(ctx, v.ClassificationID); err != nil {
		return err
	}

	s.fillImages(&v)
	return s.inventory.Update(ctx, v)
}

func (s *InventoryService) DeleteVehicle(ctx context.Context, id int64) error {
	return s.inventory.Delete(ctx, id)
}

// fillImages defaults missing image paths and derives the thumbnail. A
// failed thumbnail generation falls back to the placeholder rather than
// failing the save; the photo may simply not be on disk yet.
func (s *InventoryService) fillImages(v *model.Vehicle) {
	v.Image = strings.TrimSpace(v.Image)
	if v.Image == "" {
		v.Image = defaultVehicleImage
		v.Thumbnail = defaultVehicleThumbnail
		return
	}

	if v.Image == defaultVehicleImage {
		v.Thumbnail = defaultVehicleThumbnail
		return
	}

	if s.thumbs == nil {
		if strings.TrimSpace(v.Thumbnail) == "" {
			v.Thumbnail = defaultVehicleThumbnail
		}
		return
	}

	thumb, err := s.thumbs.Generate(v.Image)
	if err != nil {
		slog.Warn("thumbnail generation failed", "image", v.Image, "error", err)
		if strings.TrimSpace(v.Thumbnail) == "" {
			v.Thumbnail = defaultVehicleThumbnail
		}
		return
	}
	v.Thumbnail = thumb
}

func validClassificationName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
