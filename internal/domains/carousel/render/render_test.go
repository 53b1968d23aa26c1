package render

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carouselcache "carousel-backend/internal/domains/carousel/cache"
	"carousel-backend/internal/domains/carousel/model"
	"carousel-backend/internal/domains/carousel/repository"
	infracache "carousel-backend/internal/infrastructure/cache"
)

// fixedRepo serves a static set of carousels and counts reads.
type fixedRepo struct {
	mu        sync.Mutex
	bySlug    map[string]*model.Carousel
	slugReads int
}

func newFixedRepo(carousels ...*model.Carousel) *fixedRepo {
	r := &fixedRepo{bySlug: map[string]*model.Carousel{}}
	for _, c := range carousels {
		r.bySlug[c.Slug] = c
	}
	return r
}

func (r *fixedRepo) OnChange(repository.ChangeListener) {}

func (r *fixedRepo) List(context.Context) ([]model.CarouselSummary, error) { return nil, nil }

func (r *fixedRepo) GetBySlug(ctx context.Context, slug string) (*model.Carousel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slugReads++
	if c, ok := r.bySlug[slug]; ok {
		return c.Clone(), nil
	}
	return nil, model.ErrCarouselNotFound
}

func (r *fixedRepo) GetByID(context.Context, int64) (*model.Carousel, error) {
	return nil, model.ErrCarouselNotFound
}

func (r *fixedRepo) Save(context.Context, *model.Carousel) (int64, error) {
	return 0, model.ErrPersistence
}

func (r *fixedRepo) Delete(context.Context, int64) error { return model.ErrPersistence }

func newTestRenderer(t *testing.T, repo repository.CarouselRepository) *Renderer {
	t.Helper()
	cc := carouselcache.NewCarouselCache(
		infracache.NewMemoryCache(),
		infracache.NewMemoryCache(),
		repo,
		carouselcache.Options{HotTTL: time.Hour, WarmTTL: time.Minute},
	)
	r, err := NewRenderer(cc)
	require.NoError(t, err)
	return r
}

func TestRenderFiltersSlidesWithoutImages(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:   1,
		Name: "Summer Sale",
		Slug: "summer-sale",
		Slides: []model.Slide{
			{BackgroundImage: "promo-1.jpg", Title: "Hot Deals"},
			{Title: "No Image Yet"},
		},
		Settings: model.DefaultSettings(),
	})

	html, err := newTestRenderer(t, repo).Render(ctx, "summer-sale", model.DeviceDesktop)
	require.NoError(t, err)

	assert.Contains(t, html, "promo-1.jpg")
	assert.Contains(t, html, "Hot Deals")
	assert.NotContains(t, html, "No Image Yet")
	assert.Equal(t, 1, strings.Count(html, `class="oc-slide"`))
	assert.Equal(t, 1, strings.Count(html, "oc-carousel-dot"))
}

func TestRenderUnknownSlugEmpty(t *testing.T) {
	ctx := context.Background()
	r := newTestRenderer(t, newFixedRepo())

	html, err := r.Render(ctx, "nope", model.DeviceDesktop)
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestRenderAllSlidesFilteredEmptyAndNotCached(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:       1,
		Name:     "Draft",
		Slug:     "draft",
		Slides:   []model.Slide{{Title: "pending"}, {Title: "pending too"}},
		Settings: model.DefaultSettings(),
	})
	r := newTestRenderer(t, repo)

	for i := 0; i < 2; i++ {
		html, err := r.Render(ctx, "draft", model.DeviceDesktop)
		require.NoError(t, err)
		assert.Empty(t, html)
	}
}

func TestRenderLoadingHints(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:   1,
		Slug: "summer-sale",
		Slides: []model.Slide{
			{BackgroundImage: "first.jpg"},
			{BackgroundImage: "second.jpg"},
			{BackgroundImage: "third.jpg"},
		},
		Settings: model.DefaultSettings(),
	})

	html, err := newTestRenderer(t, repo).Render(ctx, "summer-sale", model.DeviceDesktop)
	require.NoError(t, err)

	// Only the first slide is eager and high priority.
	assert.Equal(t, 1, strings.Count(html, `loading="eager"`))
	assert.Equal(t, 1, strings.Count(html, `fetchpriority="high"`))
	assert.Equal(t, 2, strings.Count(html, `loading="lazy"`))
	assert.Equal(t, 2, strings.Count(html, `fetchpriority="low"`))

	first := strings.Index(html, "first.jpg")
	eager := strings.Index(html, `loading="eager"`)
	second := strings.Index(html, "second.jpg")
	assert.Less(t, eager, first)
	assert.Less(t, first, second)
}

func TestRenderSettingsAsDataAttributes(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:     1,
		Name:   "Summer Sale",
		Slug:   "summer-sale",
		Slides: []model.Slide{{BackgroundImage: "a.jpg", Title: "T"}},
		Settings: model.DisplaySettings{
			SlidesPerView:   2,
			Effect:          model.EffectFade,
			Autoplay:        true,
			AutoplayDelayMs: 4500,
		},
	})

	html, err := newTestRenderer(t, repo).Render(ctx, "summer-sale", model.DeviceMobile)
	require.NoError(t, err)

	assert.Contains(t, html, `data-slides-per-view="2"`)
	assert.Contains(t, html, `data-effect="fade"`)
	assert.Contains(t, html, `data-autoplay="true"`)
	assert.Contains(t, html, `data-autoplay-delay="4500"`)
	assert.Contains(t, html, `data-device-class="mobile"`)
	assert.Contains(t, html, "<h2 class=\"oc-carousel-title\">Summer Sale</h2>")
}

func TestRenderDefaultButtonText(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:   1,
		Slug: "summer-sale",
		Slides: []model.Slide{
			{BackgroundImage: "a.jpg", ButtonText: "Grab It"},
			{BackgroundImage: "b.jpg"},
		},
		Settings: model.DefaultSettings(),
	})

	html, err := newTestRenderer(t, repo).Render(ctx, "summer-sale", model.DeviceDesktop)
	require.NoError(t, err)

	assert.Contains(t, html, "<span>Grab It</span>")
	assert.Contains(t, html, "<span>"+model.DefaultButtonText+"</span>")
}

func TestRenderReusesFragmentCache(t *testing.T) {
	ctx := context.Background()
	repo := newFixedRepo(&model.Carousel{
		ID:       1,
		Slug:     "summer-sale",
		Slides:   []model.Slide{{BackgroundImage: "a.jpg"}},
		Settings: model.DefaultSettings(),
	})
	r := newTestRenderer(t, repo)

	first, err := r.Render(ctx, "summer-sale", model.DeviceDesktop)
	require.NoError(t, err)
	reads := repo.slugReads

	second, err := r.Render(ctx, "summer-sale", model.DeviceDesktop)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, reads, repo.slugReads, "fragment hit must skip the record lookup")

	// A different device class is a separate fragment.
	mobile, err := r.Render(ctx, "summer-sale", model.DeviceMobile)
	require.NoError(t, err)
	assert.Contains(t, mobile, `data-device-class="mobile"`)
}

func TestDeviceClassFromUserAgent(t *testing.T) {
	cases := map[string]string{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)": model.DeviceMobile,
		"Mozilla/5.0 (Linux; Android 14; Pixel 8)":               model.DeviceMobile,
		"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X)":          model.DeviceMobile,
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64)":              model.DeviceDesktop,
		"": model.DeviceDesktop,
	}

	for ua, want := range cases {
		assert.Equal(t, want, DeviceClassFromUserAgent(ua), "ua %q", ua)
	}
}
