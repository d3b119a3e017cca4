package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo   repository.ProductRepository
	events ProductEvents
	logger *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, events ProductEvents, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// CreateProductInput holds the parameters for creating a product. InStock
// defaults to true and Featured to false.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Sizes       []string
	Colors      []string
	InStock     *bool
	Featured    *bool
}

// CreateProduct creates a new product with the given input.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Sizes:       nonNil(input.Sizes),
		Colors:      nonNil(input.Colors),
		InStock:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.events.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("category", product.Category),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns the whole catalog.
func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.InvalidInput("product name must not be blank")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	if patch.IsEmpty() {
		return product, nil
	}

	product.Apply(patch)
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.events.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", product.ID))

	return product, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
