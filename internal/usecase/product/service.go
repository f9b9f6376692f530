package product

import (
	"context"
	"time"

	domainProduct "casillero-backend/internal/domain/product"
	"casillero-backend/internal/logger"
	appErrors "casillero-backend/pkg/errors"
	"casillero-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the storefront catalog use cases. The image argument is
// an opaque reference produced by the handler layer; the service never touches
// the filesystem.
type Service struct {
	productRepo domainProduct.Repository
}

// NewService creates a new product service
func NewService(productRepo domainProduct.Repository) *Service {
	return &Service{productRepo: productRepo}
}

func (s *Service) Create(ctx context.Context, req *CreateProductRequest, image *string) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p := &domainProduct.Product{
		Name:      req.Name,
		Price:     req.Price,
		Weight:    req.Weight,
		Image:     image,
		Category:  req.Category,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.String("event", "product_created"),
	)

	return ToProductResponse(p), nil
}

func (s *Service) Get(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

func (s *Service) List(ctx context.Context) ([]*ProductResponse, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponseList(products), nil
}

// Update replaces the catalog fields. A nil image keeps the stored reference.
func (s *Service) Update(ctx context.Context, productID uuid.UUID, req *UpdateProductRequest, image *string) (*ProductResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Price = req.Price
	p.Weight = req.Weight
	p.Category = req.Category
	if image != nil {
		p.Image = image
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Product updated",
		zap.String("product_id", p.ID.String()),
		zap.String("event", "product_updated"),
	)

	return ToProductResponse(p), nil
}

func (s *Service) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	logger.Info("Product deleted",
		zap.String("product_id", productID.String()),
		zap.String("event", "product_deleted"),
	)

	return nil
}
