package service

import (
	"context"

	"carousel-backend/internal/domains/carousel/model"
)

type ServiceInterface interface {
	// SaveCarousel creates a carousel (zero id) or fully replaces one.
	SaveCarousel(ctx context.Context, req model.SaveCarouselRequest) (*model.SaveCarouselResponse, error)

	// GetCarousel returns a carousel by id; missing ids are an explicit
	// not-found failure.
	GetCarousel(ctx context.Context, id int64) (*model.Carousel, error)

	// ListCarousels returns summaries, newest first.
	ListCarousels(ctx context.Context) ([]model.CarouselSummary, error)

	// DeleteCarousel removes a carousel by id.
	DeleteCarousel(ctx context.Context, id int64) error

	// RenderCarousel returns the embed markup for a slug, or the empty
	// string when the slug is unknown or nothing renders.
	RenderCarousel(ctx context.Context, slug, deviceClass string) (string, error)

	// ClearCache flushes every carousel cache entry.
	ClearCache(ctx context.Context) error

	// NotifyPageSaved applies the page-content invalidation heuristic.
	// Reports whether a flush ran.
	NotifyPageSaved(ctx context.Context, body string) (bool, error)

	// NotifySettingChanged flushes caches when a critical site setting
	// changed.
	NotifySettingChanged(ctx context.Context, name string) error
}
