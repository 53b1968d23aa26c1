package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"carousel-backend/internal/shared/utils"
)

// SaveCarouselRequest creates a carousel when ID is zero and fully
// replaces it otherwise. Slides and settings always travel together.
type SaveCarouselRequest struct {
	ID       int64            `json:"id,omitempty"`
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Slides   []Slide          `json:"slides"`
	Settings *DisplaySettings `json:"settings,omitempty"`
}

// Normalize fills defaults for omitted settings fields. Must run before
// Validate so that zero values do not trip the bounds checks.
func (r *SaveCarouselRequest) Normalize() {
	if r.Slug == "" && r.Name != "" {
		r.Slug = utils.GenerateSlug(r.Name)
	}
	if r.Slides == nil {
		r.Slides = []Slide{}
	}

	if r.Settings == nil {
		defaults := DefaultSettings()
		r.Settings = &defaults
		return
	}
	if r.Settings.SlidesPerView == 0 {
		r.Settings.SlidesPerView = DefaultSlidesPerView
	}
	if r.Settings.Effect == "" {
		r.Settings.Effect = EffectSlide
	}
	if r.Settings.AutoplayDelayMs == 0 {
		r.Settings.AutoplayDelayMs = DefaultAutoplayDelayMs
	}
}

func (r SaveCarouselRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Required, validation.By(checkSlug)),
		validation.Field(&r.Settings, validation.Required),
	)
}

func (s DisplaySettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.SlidesPerView, validation.In(1, 2, 3, 4)),
		validation.Field(&s.Effect, validation.In(EffectSlide, EffectFade, EffectCoverflow)),
		validation.Field(&s.AutoplayDelayMs, validation.Min(MinAutoplayDelayMs)),
	)
}

func checkSlug(value interface{}) error {
	s, _ := value.(string)
	if !utils.IsValidSlug(s) {
		return validation.NewError("validation_slug", "must contain only lowercase letters, digits and hyphens")
	}
	return nil
}

// CarouselSummary is the list view: newest first, without slide payloads.
type CarouselSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveCarouselResponse struct {
	ID int64 `json:"id"`
}
