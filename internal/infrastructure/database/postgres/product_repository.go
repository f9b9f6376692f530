package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casillero-backend/internal/domain/product"
	"casillero-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	dbModel := toProductModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	p.ID = dbModel.ID
	p.CreatedAt = dbModel.CreatedAt
	p.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (*product.Product, error) {
	var dbModel models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*product.Product, error) {
	var dbModels []models.ProductModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*product.Product, len(dbModels))
	for i, dbModel := range dbModels {
		products[i] = toProductEntity(&dbModel)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"name":       p.Name,
		"price":      p.Price,
		"weight":     p.Weight,
		"category":   p.Category,
		"updated_at": p.UpdatedAt,
	}
	if p.Image != nil {
		updates["image"] = *p.Image
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ?", p.ID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.ProductModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models
func toProductModel(p *product.Product) *models.ProductModel {
	return &models.ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Weight:    p.Weight,
		Image:     p.Image,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toProductEntity(m *models.ProductModel) *product.Product {
	return &product.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Weight:    m.Weight,
		Image:     m.Image,
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
