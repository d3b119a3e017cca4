package repository

import (
	"context"

	"github.com/utafrali/AngelsParadise/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
// Reviews are append-only.
type ReviewRepository interface {
	// Create inserts a new review into the store.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns every review for a product in no particular order.
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)

	// ListByProductSorted returns every review for a product ordered by
	// creation time. SortNone behaves like ListByProduct.
	ListByProductSorted(ctx context.Context, productID string, order domain.SortOrder) ([]domain.Review, error)
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListAll returns the full catalog in creation order.
	ListAll(ctx context.Context) ([]domain.Product, error)

	// Update overwrites an existing product.
	Update(ctx context.Context, product *domain.Product) error
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order into the store.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns all orders, newest first.
	List(ctx context.Context) ([]domain.Order, error)

	// Update overwrites the mutable fields of an existing order.
	Update(ctx context.Context, order *domain.Order) error
}

// BusinessInfoRepository stores the single business info document.
type BusinessInfoRepository interface {
	// Get returns the stored document, or a not-found error when none exists.
	Get(ctx context.Context) (*domain.BusinessInfo, error)

	// Save creates or replaces the document.
	Save(ctx context.Context, info *domain.BusinessInfo) error
}

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its owner.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// SaveIfVersion persists cart only if the stored version still equals
	// expectedVersion, then bumps cart.Version. It reports false on a
	// concurrent modification.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)

	// Delete removes a cart by its owner.
	Delete(ctx context.Context, userID string) error
}
