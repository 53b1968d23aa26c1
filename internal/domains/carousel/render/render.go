package render

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	carouselcache "carousel-backend/internal/domains/carousel/cache"
	"carousel-backend/internal/domains/carousel/model"
)

// Renderer maps a carousel record and a device class to a markup
// fragment. Pure given its inputs, except for the fragment cache it
// reads and repopulates.
type Renderer struct {
	cache *carouselcache.CarouselCache
	tmpl  *template.Template
}

func NewRenderer(cache *carouselcache.CarouselCache) (*Renderer, error) {
	tmpl, err := template.New("fragment").Parse(fragmentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment template: %w", err)
	}
	return &Renderer{cache: cache, tmpl: tmpl}, nil
}

type fragmentData struct {
	Name        string
	Settings    model.DisplaySettings
	DeviceClass string
	Slides      []slideView
}

type slideView struct {
	Index         int
	Position      int // 1-based, for aria labels
	Image         string
	Title         string
	Subtitle      string
	ButtonLink    string
	ButtonText    string
	Loading       string
	FetchPriority string
}

// Render returns the markup fragment for (slug, deviceClass), or the
// empty string when the slug is unknown or no slide survives filtering.
// Empty results are never cached.
func (r *Renderer) Render(ctx context.Context, slug, deviceClass string) (string, error) {
	if deviceClass != model.DeviceMobile {
		deviceClass = model.DeviceDesktop
	}

	if html, ok := r.cache.GetFragment(ctx, slug, deviceClass); ok {
		return html, nil
	}

	carousel, err := r.cache.GetCarousel(ctx, slug)
	if errors.Is(err, model.ErrCarouselNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	visible := carousel.VisibleSlides()
	if len(visible) == 0 {
		return "", nil
	}

	html, err := r.build(carousel, visible, deviceClass)
	if err != nil {
		return "", err
	}

	r.cache.SetFragment(ctx, slug, deviceClass, html)
	return html, nil
}

func (r *Renderer) build(carousel *model.Carousel, visible []model.Slide, deviceClass string) (string, error) {
	data := fragmentData{
		Name:        carousel.Name,
		Settings:    carousel.Settings,
		DeviceClass: deviceClass,
		Slides:      make([]slideView, 0, len(visible)),
	}

	for i, slide := range visible {
		view := slideView{
			Index:         i,
			Position:      i + 1,
			Image:         slide.BackgroundImage,
			Title:         slide.Title,
			Subtitle:      slide.Subtitle,
			ButtonLink:    slide.ButtonLink,
			ButtonText:    slide.ButtonText,
			Loading:       "lazy",
			FetchPriority: "low",
		}
		if view.ButtonText == "" {
			view.ButtonText = model.DefaultButtonText
		}
		if i == 0 {
			view.Loading = "eager"
			view.FetchPriority = "high"
		}
		data.Slides = append(data.Slides, view)
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render fragment: %w", err)
	}

	return sb.String(), nil
}

// DeviceClassFromUserAgent classifies the requesting client. The class
// only affects loading hints in the markup.
func DeviceClassFromUserAgent(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"mobile", "android", "iphone", "ipad", "ipod"} {
		if strings.Contains(ua, marker) {
			return model.DeviceMobile
		}
	}
	return model.DeviceDesktop
}
