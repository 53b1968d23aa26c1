package service

import (
	"context"
	"errors"
	"fmt"

	carouselcache "carousel-backend/internal/domains/carousel/cache"
	"carousel-backend/internal/domains/carousel/model"
	"carousel-backend/internal/domains/carousel/render"
	"carousel-backend/internal/domains/carousel/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type carouselService struct {
	repo     repository.CarouselRepository
	cache    *carouselcache.CarouselCache
	renderer *render.Renderer
}

func NewCarouselService(
	repo repository.CarouselRepository,
	cache *carouselcache.CarouselCache,
	renderer *render.Renderer,
) ServiceInterface {
	return &carouselService{
		repo:     repo,
		cache:    cache,
		renderer: renderer,
	}
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *carouselService) SaveCarousel(ctx context.Context, req model.SaveCarouselRequest) (*model.SaveCarouselResponse, error) {
	// Step 1: Apply defaults, then validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	// Step 2: Build the record (full replace: slides and settings always
	// travel together, there is no partial patch)
	carousel := &model.Carousel{
		ID:       req.ID,
		Name:     req.Name,
		Slug:     req.Slug,
		Slides:   req.Slides,
		Settings: *req.Settings,
	}

	// Step 3: Persist. The repository's change observer invalidates the
	// caches synchronously, so the next render sees the new content
	// within the same request cycle.
	id, err := s.repo.Save(ctx, carousel)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrSlugTaken):
			return nil, model.NewSlugTakenError(req.Slug)
		case errors.Is(err, model.ErrCarouselNotFound):
			return nil, model.NewNotFoundError()
		default:
			return nil, model.NewPersistenceError(err)
		}
	}

	return &model.SaveCarouselResponse{ID: id}, nil
}

func (s *carouselService) DeleteCarousel(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrCarouselNotFound) {
			return model.NewNotFoundError()
		}
		return model.NewPersistenceError(err)
	}
	return nil
}

// =====================================================
// READS
// =====================================================

func (s *carouselService) GetCarousel(ctx context.Context, id int64) (*model.Carousel, error) {
	carousel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCarouselNotFound) {
			return nil, model.NewNotFoundError()
		}
		return nil, model.NewPersistenceError(err)
	}
	return carousel, nil
}

func (s *carouselService) ListCarousels(ctx context.Context) ([]model.CarouselSummary, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return summaries, nil
}

func (s *carouselService) RenderCarousel(ctx context.Context, slug, deviceClass string) (string, error) {
	html, err := s.renderer.Render(ctx, slug, deviceClass)
	if err != nil {
		return "", fmt.Errorf("failed to render carousel %q: %w", slug, err)
	}
	return html, nil
}

// =====================================================
// CACHE CONTROL
// =====================================================

func (s *carouselService) ClearCache(ctx context.Context) error {
	if err := s.cache.FlushAll(ctx); err != nil {
		return &model.CarouselError{
			Code:    model.ErrCodeCacheClear,
			Message: "Cache clear did not complete",
			Err:     err,
		}
	}
	return nil
}

func (s *carouselService) NotifyPageSaved(ctx context.Context, body string) (bool, error) {
	return s.cache.PageSaved(ctx, body)
}

func (s *carouselService) NotifySettingChanged(ctx context.Context, name string) error {
	return s.cache.SettingChanged(ctx, name)
}
