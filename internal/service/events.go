package service

import (
	"context"

	"github.com/utafrali/AngelsParadise/internal/domain"
)

// ProductEvents publishes product lifecycle events.
type ProductEvents interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
}

// OrderEvents publishes order lifecycle events.
type OrderEvents interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
	PublishOrderUpdated(ctx context.Context, order *domain.Order) error
}

// CartEvents publishes cart changes.
type CartEvents interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
}

// BusinessInfoEvents publishes business info changes.
type BusinessInfoEvents interface {
	PublishBusinessInfoUpdated(ctx context.Context, info *domain.BusinessInfo) error
}
