package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/repository"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
)

// BusinessInfoService manages the storefront's single business profile.
type BusinessInfoService struct {
	repo   repository.BusinessInfoRepository
	events BusinessInfoEvents
	logger *slog.Logger
}

// NewBusinessInfoService creates a new business info service.
func NewBusinessInfoService(repo repository.BusinessInfoRepository, events BusinessInfoEvents, logger *slog.Logger) *BusinessInfoService {
	return &BusinessInfoService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// Get returns the business info, or nil when none has been saved yet.
func (s *BusinessInfoService) Get(ctx context.Context) (*domain.BusinessInfo, error) {
	info, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business info: %w", err)
	}
	return info, nil
}

// Upsert creates the business info when absent and otherwise merges the set
// fields of patch into the stored document.
func (s *BusinessInfoService) Upsert(ctx context.Context, patch domain.BusinessInfoPatch) (*domain.BusinessInfo, error) {
	info, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	created := info == nil
	if created {
		info = &domain.BusinessInfo{ID: uuid.New().String()}
	}

	info.Apply(patch)
	info.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, info); err != nil {
		return nil, fmt.Errorf("save business info: %w", err)
	}

	if err := s.events.PublishBusinessInfoUpdated(ctx, info); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish business_info.updated event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "business info saved", slog.Bool("created", created))

	return info, nil
}
