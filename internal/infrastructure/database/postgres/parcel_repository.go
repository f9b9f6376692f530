package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casillero-backend/internal/domain/parcel"
	"casillero-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParcelRepository struct {
	db *DB
}

func NewParcelRepository(db *DB) *ParcelRepository {
	return &ParcelRepository{db: db}
}

func (r *ParcelRepository) Create(ctx context.Context, p *parcel.Parcel) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = parcel.DefaultStatus
	}

	dbModel := toParcelModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return parcel.ErrDuplicateTrackingNumber
		}
		if strings.Contains(err.Error(), "foreign key") {
			return parcel.ErrUnknownOwner
		}
		return fmt.Errorf("failed to create parcel: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ParcelRepository) GetByID(ctx context.Context, parcelID uuid.UUID) (*parcel.Parcel, error) {
	var dbModel models.ParcelModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", parcelID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrParcelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parcel: %w", err)
	}

	return toParcelEntity(&dbModel), nil
}

func (r *ParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	var dbModel models.ParcelModel
	err := r.db.DB.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrParcelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parcel by tracking number: %w", err)
	}

	return toParcelEntity(&dbModel), nil
}

func (r *ParcelRepository) GetByTrackingAndOwner(ctx context.Context, trackingNumber string, ownerID uuid.UUID) (*parcel.Parcel, error) {
	var dbModel models.ParcelModel
	err := r.db.DB.WithContext(ctx).
		Where("tracking_number = ? AND owner_id = ?", trackingNumber, ownerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, parcel.ErrParcelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parcel for owner: %w", err)
	}

	return toParcelEntity(&dbModel), nil
}

// ListByOwner returns the owner's parcels, pre-alerts first, matching the
// order staff review them in.
func (r *ParcelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*parcel.Parcel, error) {
	var dbModels []models.ParcelModel
	err := r.db.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("pre_alert DESC, created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels for owner: %w", err)
	}

	parcels := make([]*parcel.Parcel, len(dbModels))
	for i, dbModel := range dbModels {
		parcels[i] = toParcelEntity(&dbModel)
	}

	return parcels, nil
}

func (r *ParcelRepository) List(ctx context.Context) ([]*parcel.Parcel, error) {
	var dbModels []models.ParcelModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list parcels: %w", err)
	}

	parcels := make([]*parcel.Parcel, len(dbModels))
	for i, dbModel := range dbModels {
		parcels[i] = toParcelEntity(&dbModel)
	}

	return parcels, nil
}

// Update writes status and details in one statement so a failed commit
// leaves no partial field writes behind.
func (r *ParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.ParcelModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":            p.Name,
			"price":           p.Price,
			"tracking_number": p.TrackingNumber,
			"weight":          p.Weight,
			"status":          string(p.Status),
			"pre_alert":       p.PreAlert,
			"received_at":     p.ReceivedAt,
			"updated_at":      p.UpdatedAt,
		})

	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key") {
			return parcel.ErrDuplicateTrackingNumber
		}
		return fmt.Errorf("failed to update parcel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrParcelNotFound
	}

	return nil
}

func (r *ParcelRepository) UpdateConsolidate(ctx context.Context, parcelID uuid.UUID, consolidate bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.ParcelModel{}).
		Where("id = ?", parcelID).
		Updates(map[string]interface{}{
			"consolidate": consolidate,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update consolidate flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrParcelNotFound
	}

	return nil
}

func (r *ParcelRepository) Delete(ctx context.Context, parcelID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", parcelID).
		Delete(&models.ParcelModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete parcel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return parcel.ErrParcelNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models
func toParcelModel(p *parcel.Parcel) *models.ParcelModel {
	return &models.ParcelModel{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Name:           p.Name,
		Price:          p.Price,
		TrackingNumber: p.TrackingNumber,
		Weight:         p.Weight,
		Status:         string(p.Status),
		PreAlert:       p.PreAlert,
		Consolidate:    p.Consolidate,
		ReceivedAt:     p.ReceivedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toParcelEntity(m *models.ParcelModel) *parcel.Parcel {
	return &parcel.Parcel{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Price:          m.Price,
		TrackingNumber: m.TrackingNumber,
		Weight:         m.Weight,
		Status:         parcel.Status(m.Status),
		PreAlert:       m.PreAlert,
		Consolidate:    m.Consolidate,
		ReceivedAt:     m.ReceivedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
