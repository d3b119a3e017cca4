package service

import (
	"context"
	"fmt"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// CatalogQuery is a storefront catalog request. Nil price bounds default to
// the bounds of the current catalog.
type CatalogQuery struct {
	Category string
	Sizes    []string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Page     int
	PageSize int
}

// CatalogResult is one catalog page plus the catalog-wide price bounds the
// storefront uses to initialise its price slider.
type CatalogResult struct {
	domain.CatalogPage
	Filter      domain.FilterState `json:"filter"`
	PriceBounds *domain.PriceRange `json:"priceBounds"`
}

// CatalogService filters and paginates the product catalog in memory.
type CatalogService struct {
	products repository.ProductRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// Query loads the full catalog snapshot and applies the filter and page.
func (s *CatalogService) Query(ctx context.Context, q CatalogQuery) (*CatalogResult, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	filter := domain.FilterState{
		Category: q.Category,
		Sizes:    nonNil(q.Sizes),
		Search:   q.Search,
	}

	result := &CatalogResult{}
	bounds, ok := domain.PriceBounds(products)
	if ok {
		result.PriceBounds = &bounds
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		r := bounds
		if q.MinPrice != nil {
			r.Min = *q.MinPrice
		}
		if q.MaxPrice != nil {
			r.Max = *q.MaxPrice
		}
		filter.Price = &r
	}

	result.CatalogPage = domain.QueryCatalog(products, filter, q.Page, q.PageSize)
	result.Filter = filter
	return result, nil
}
