package model

import (
	"time"
)

// Display effects supported by the frontend widget.
const (
	EffectSlide     = "slide"
	EffectFade      = "fade"
	EffectCoverflow = "coverflow"
)

// Device classes for rendered fragments. The class only changes loading
// hints in the markup, never which slides are included.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
)

// Defaults applied when a save request leaves settings fields empty.
const (
	DefaultSlidesPerView   = 3
	DefaultAutoplayDelayMs = 3000
	MinAutoplayDelayMs     = 1000
	DefaultButtonText      = "Shop Now"
)

// Carousel is a persisted carousel definition. The slug is the public
// lookup key and embed token; changing it invalidates embeds that
// reference the old value.
type Carousel struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Slides    []Slide         `json:"slides"`
	Settings  DisplaySettings `json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Slide is one image+text+call-to-action unit. A slide without a
// background image is kept in storage but dropped at render time.
type Slide struct {
	BackgroundImage string `json:"background_image"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonLink      string `json:"button_link"`
	ButtonText      string `json:"button_text"`
}

// DisplaySettings is the whole-record display configuration. Settings are
// always submitted together with the slides; there is no field-level patch.
type DisplaySettings struct {
	SlidesPerView   int    `json:"slides_per_view"`
	Effect          string `json:"effect"`
	Autoplay        bool   `json:"autoplay"`
	AutoplayDelayMs int    `json:"autoplay_delay_ms"`
}

// DefaultSettings returns the settings applied to a carousel saved
// without explicit display configuration.
func DefaultSettings() DisplaySettings {
	return DisplaySettings{
		SlidesPerView:   DefaultSlidesPerView,
		Effect:          EffectSlide,
		Autoplay:        true,
		AutoplayDelayMs: DefaultAutoplayDelayMs,
	}
}

// VisibleSlides returns the slides that survive render filtering, in
// stored order.
func (c *Carousel) VisibleSlides() []Slide {
	out := make([]Slide, 0, len(c.Slides))
	for _, s := range c.Slides {
		if s.BackgroundImage == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Clone returns a deep copy so cached or listed records can be handed out
// without sharing the slides slice.
func (c *Carousel) Clone() *Carousel {
	cp := *c
	cp.Slides = make([]Slide, len(c.Slides))
	copy(cp.Slides, c.Slides)
	return &cp
}
