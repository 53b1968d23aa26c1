package cache

import (
	"context"
	"fmt"
	"time"

	"carousel-backend/internal/domains/carousel/model"
	"carousel-backend/internal/domains/carousel/repository"
	"carousel-backend/pkg/cache"
	"carousel-backend/pkg/logger"
)

// CarouselCache is the multi-tier read-through cache in front of the
// carousel repository:
//
//	hot tier  (in-process, ~1h TTL)  -> warm tier (Redis, ~15m TTL) -> repository
//
// A warm hit is promoted into the hot tier. A repository hit populates
// both tiers. Not-found results are never cached, so a carousel created
// moments later is visible immediately.
//
// Tier failures degrade silently to the next tier; a cache outage only
// ever costs latency, never correctness.
type CarouselCache struct {
	hot  cache.Cache
	warm cache.Cache
	repo repository.CarouselRepository

	hotTTL  time.Duration
	warmTTL time.Duration

	critical map[string]struct{}
	scanner  TokenScanner
}

type Options struct {
	HotTTL  time.Duration
	WarmTTL time.Duration
	// CriticalSettings lists site setting keys whose change flushes
	// everything.
	CriticalSettings []string
	// Scanner drives the page-content invalidation heuristic. Nil
	// disables it.
	Scanner TokenScanner
}

func NewCarouselCache(hot, warm cache.Cache, repo repository.CarouselRepository, opts Options) *CarouselCache {
	critical := make(map[string]struct{}, len(opts.CriticalSettings))
	for _, name := range opts.CriticalSettings {
		critical[name] = struct{}{}
	}

	scanner := opts.Scanner
	if scanner == nil {
		scanner = NopScanner{}
	}

	c := &CarouselCache{
		hot:      hot,
		warm:     warm,
		repo:     repo,
		hotTTL:   opts.HotTTL,
		warmTTL:  opts.WarmTTL,
		critical: critical,
		scanner:  scanner,
	}

	// Subscribe to store mutations so updates are visible within the
	// same request cycle.
	repo.OnChange(c.handleChange)

	return c
}

// =====================================================
// READ PATH
// =====================================================

// GetCarousel reads through the tiers. Returns model.ErrCarouselNotFound
// for unknown slugs.
func (c *CarouselCache) GetCarousel(ctx context.Context, slug string) (*model.Carousel, error) {
	baseKey := recordKey(slug, nil)

	var carousel model.Carousel
	if found, err := c.hot.Get(ctx, baseKey, &carousel); err != nil {
		logger.Warn("hot tier read failed", err)
	} else if found {
		return &carousel, nil
	}

	if found, err := c.warm.Get(ctx, warmKey(slug), &carousel); err != nil {
		logger.Warn("warm tier read failed", err)
	} else if found {
		c.populateHot(ctx, slug, &carousel)
		return &carousel, nil
	}

	loaded, err := c.repo.GetBySlug(ctx, slug)
	if err != nil {
		// Not-found is deliberately not cached.
		return nil, err
	}

	c.populateHot(ctx, slug, loaded)
	if err := c.warm.Set(ctx, warmKey(slug), loaded, c.warmTTL); err != nil {
		logger.Warn("warm tier write failed", err)
	}

	return loaded, nil
}

// populateHot writes the record under the base key and under the
// fingerprint of its actual stored settings.
func (c *CarouselCache) populateHot(ctx context.Context, slug string, carousel *model.Carousel) {
	settings := carousel.Settings
	for _, key := range []string{recordKey(slug, nil), recordKey(slug, &settings)} {
		if err := c.hot.Set(ctx, key, carousel, c.hotTTL); err != nil {
			logger.Warn("hot tier write failed", err)
			return
		}
	}
}

// =====================================================
// FRAGMENT CACHE
// =====================================================

// GetFragment returns the rendered markup cached for (slug, deviceClass).
func (c *CarouselCache) GetFragment(ctx context.Context, slug, deviceClass string) (string, bool) {
	var html string
	found, err := c.warm.Get(ctx, fragmentKey(slug, deviceClass), &html)
	if err != nil {
		logger.Warn("fragment cache read failed", err)
		return "", false
	}
	return html, found
}

// SetFragment caches rendered markup. Empty fragments are skipped so an
// unknown slug or an all-filtered carousel is re-evaluated on every
// request.
func (c *CarouselCache) SetFragment(ctx context.Context, slug, deviceClass, html string) {
	if html == "" {
		return
	}
	if err := c.warm.Set(ctx, fragmentKey(slug, deviceClass), html, c.warmTTL); err != nil {
		logger.Warn("fragment cache write failed", err)
	}
}

// =====================================================
// INVALIDATION
// =====================================================

func (c *CarouselCache) handleChange(ctx context.Context, event repository.ChangeEvent) {
	c.InvalidateCarousel(ctx, event.Slug)
	if event.PreviousSlug != "" && event.PreviousSlug != event.Slug {
		c.InvalidateCarousel(ctx, event.PreviousSlug)
	}
}

// InvalidateCarousel clears every cache entry keyed by slug: the base
// hot key, the full fan-out of settings fingerprints, the warm entry and
// both device-class fragments. Idempotent.
func (c *CarouselCache) InvalidateCarousel(ctx context.Context, slug string) {
	if err := c.hot.Delete(ctx, recordKeyFanOut(slug)...); err != nil {
		logger.Warn("hot tier invalidation failed", err)
	}

	warmKeys := []string{
		warmKey(slug),
		fragmentKey(slug, model.DeviceDesktop),
		fragmentKey(slug, model.DeviceMobile),
	}
	if err := c.warm.Delete(ctx, warmKeys...); err != nil {
		logger.Warn("warm tier invalidation failed", err)
	}
}

// SettingChanged flushes everything when a critical site setting (such
// as currency or country) changes. Non-critical settings are ignored.
func (c *CarouselCache) SettingChanged(ctx context.Context, name string) error {
	if _, ok := c.critical[name]; !ok {
		return nil
	}
	return c.FlushAll(ctx)
}

// PageSaved applies the content heuristic: when a saved page body may
// embed a carousel, all caches are flushed. Reports whether a flush ran.
func (c *CarouselCache) PageSaved(ctx context.Context, body string) (bool, error) {
	if !c.scanner.ContentMayReferenceCarousel(body) {
		return false, nil
	}
	return true, c.FlushAll(ctx)
}

// FlushAll empties the hot tier and deletes every namespaced key from
// the warm tier (records and fragments alike). Idempotent and safe to
// run concurrently with reads: a racing read misses and falls through to
// the repository, which is correct behavior. On failure the entries
// already cleared stay cleared; retrying is always safe.
func (c *CarouselCache) FlushAll(ctx context.Context) error {
	if err := c.hot.DeletePattern(ctx, FlushPattern); err != nil {
		logger.Warn("hot tier flush failed", err)
	}

	if err := c.warm.DeletePattern(ctx, FlushPattern); err != nil {
		return fmt.Errorf("cache flush incomplete: %w", err)
	}

	logger.Info("carousel caches flushed", nil)
	return nil
}
