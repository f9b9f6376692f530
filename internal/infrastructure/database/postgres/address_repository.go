package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casillero-backend/internal/domain/address"
	"casillero-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository struct {
	db *DB
}

func NewAddressRepository(db *DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	dbModel := toAddressModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}

	a.ID = dbModel.ID
	a.CreatedAt = dbModel.CreatedAt
	a.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, addressID uuid.UUID) (*address.Address, error) {
	var dbModel models.AddressModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", addressID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, address.ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	return toAddressEntity(&dbModel), nil
}

func (r *AddressRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*address.Address, error) {
	var dbModels []models.AddressModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	addresses := make([]*address.Address, len(dbModels))
	for i, dbModel := range dbModels {
		addresses[i] = toAddressEntity(&dbModel)
	}

	return addresses, nil
}

func (r *AddressRepository) Delete(ctx context.Context, addressID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", addressID).
		Delete(&models.AddressModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return address.ErrAddressNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models
func toAddressModel(a *address.Address) *models.AddressModel {
	return &models.AddressModel{
		ID:         a.ID,
		UserID:     a.UserID,
		Country:    a.Country,
		City:       a.City,
		StreetLine: a.StreetLine,
		PostalCode: a.PostalCode,
		Name:       a.Name,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toAddressEntity(m *models.AddressModel) *address.Address {
	return &address.Address{
		ID:         m.ID,
		UserID:     m.UserID,
		Country:    m.Country,
		City:       m.City,
		StreetLine: m.StreetLine,
		PostalCode: m.PostalCode,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
