package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// Cart limits.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines in a cart.
	MaxItemsPerCart = 50

	maxSaveAttempts = 3
)

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID string  `json:"productId" validate:"notblank"`
	Name      string  `json:"name" validate:"notblank"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1,lte=100"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
}

// CartService implements the business logic for cart operations. Every
// mutation is a read-modify-write guarded by the cart version.
type CartService struct {
	repo   repository.CartRepository
	events CartEvents
	logger *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, events CartEvents, logger *slog.Logger) *CartService {
	return &CartService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Snapshot returns the user's cart with totals. A missing cart is empty.
func (s *CartService) Snapshot(ctx context.Context, userID string) (*domain.CartSnapshot, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := cart.Snapshot()
	return &snap, nil
}

// Add merges an item into the cart. The same product in the same size and
// color increases the existing line.
func (s *CartService) Add(ctx context.Context, userID string, input *AddItemInput) (*domain.CartSnapshot, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	item := domain.CartItem{
		ProductID: strings.TrimSpace(input.ProductID),
		Name:      input.Name,
		Image:     input.Image,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Size:      input.Size,
		Color:     input.Color,
		Category:  input.Category,
	}

	cart, err := s.mutate(ctx, userID, func(c *domain.Cart) error {
		if i := c.FindItemIndex(item.Key()); i >= 0 {
			if c.Items[i].Quantity+item.Quantity > MaxQuantityPerItem {
				return apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
			}
		} else if len(c.Items) >= MaxItemsPerCart {
			return apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		c.Add(item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", item.ProductID),
		slog.Int("quantity", item.Quantity),
	)

	snap := cart.Snapshot()
	return &snap, nil
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, userID string, key domain.LineKey) (*domain.CartSnapshot, error) {
	cart, err := s.mutate(ctx, userID, func(c *domain.Cart) error {
		if !c.Remove(key) {
			return apperrors.NotFound("cart item", key.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", key.ProductID),
	)

	snap := cart.Snapshot()
	return &snap, nil
}

// UpdateQuantity sets the quantity of a line. Zero removes it.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, key domain.LineKey, quantity int) (*domain.CartSnapshot, error) {
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	cart, err := s.mutate(ctx, userID, func(c *domain.Cart) error {
		if !c.UpdateQuantity(key, quantity) {
			return apperrors.NotFound("cart item", key.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("user_id", userID),
		slog.String("product_id", key.ProductID),
		slog.Int("quantity", quantity),
	)

	snap := cart.Snapshot()
	return &snap, nil
}

// Clear removes every line from the cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.InvalidInput("user id is required")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	cart := domain.NewCart(userID)
	if err := s.events.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))
	return nil
}

func (s *CartService) load(ctx context.Context, userID string) (*domain.Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// mutate applies fn to a fresh copy of the cart and saves it, retrying when a
// concurrent writer bumped the version in between.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		cart, err := s.load(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := fn(cart); err != nil {
			return nil, err
		}

		ok, err := s.repo.SaveIfVersion(ctx, cart, cart.Version)
		if err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
		if ok {
			if err := s.events.PublishCartUpdated(ctx, cart); err != nil {
				s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
					slog.String("user_id", userID),
					slog.String("error", err.Error()),
				)
			}
			return cart, nil
		}

		s.logger.DebugContext(ctx, "cart version conflict, retrying",
			slog.String("user_id", userID),
			slog.Int("attempt", attempt),
		)
	}
	return nil, apperrors.Conflict("cart was modified concurrently, please retry")
}
