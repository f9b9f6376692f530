package product

import (
	"time"

	domainProduct "casillero-backend/internal/domain/product"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name     string `form:"name" json:"name" validate:"required,max=100"`
	Price    string `form:"price" json:"price" validate:"required,max=50"`
	Weight   string `form:"weight" json:"weight" validate:"required,max=50"`
	Category string `form:"category" json:"category" validate:"required,max=100"`
}

type UpdateProductRequest struct {
	Name     string `form:"name" json:"name" validate:"required,max=100"`
	Price    string `form:"price" json:"price" validate:"required,max=50"`
	Weight   string `form:"weight" json:"weight" validate:"required,max=50"`
	Category string `form:"category" json:"category" validate:"required,max=100"`
}

type ProductResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Weight    string    `json:"weight"`
	Image     *string   `json:"image,omitempty"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToProductResponse(p *domainProduct.Product) *ProductResponse {
	return &ProductResponse{
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

func ToProductResponseList(products []*domainProduct.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}
