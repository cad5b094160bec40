package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwinzi/freshmart-api/internal/domain/entity"
	"github.com/mwinzi/freshmart-api/internal/domain/repository"
	"github.com/mwinzi/freshmart-api/pkg/apperror"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the create/update product input. Price is a
// decimal amount per kilogram.
type ProductInput struct {
	Name       string
	Type       string
	PricePerKg float64
}

// ProductListResult is the catalog keyed by product id, the shape the
// order entry form consumes for lookups.
type ProductListResult struct {
	Count int                          `json:"count"`
	Rows  map[uuid.UUID]entity.Product `json:"rows"`
}

// ListProducts returns the whole catalog keyed by id
func (s *ProductService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		rows[p.ID] = p
	}

	return &ProductListResult{
		Count: len(rows),
		Rows:  rows,
	}, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// CreateProduct adds a catalog entry
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if input.PricePerKg < 0 {
		return nil, apperror.NewBadRequestError("Price per kg cannot be negative")
	}

	product := &entity.Product{
		Name: input.Name,
		Type: input.Type,
	}
	product.SetPricePerKgFromDecimal(input.PricePerKg)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates a catalog entry. Persisted order items keep
// their denormalized copies; only future entries see the new price.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if input.PricePerKg < 0 {
		return nil, apperror.NewBadRequestError("Price per kg cannot be negative")
	}

	product.Name = input.Name
	product.Type = input.Type
	product.SetPricePerKgFromDecimal(input.PricePerKg)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a catalog entry
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
