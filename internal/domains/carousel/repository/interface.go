package repository

import (
	"context"

	"carousel-backend/internal/domains/carousel/model"
)

// ChangeOp identifies the mutation that triggered a change event.
type ChangeOp string

const (
	OpSave   ChangeOp = "save"
	OpDelete ChangeOp = "delete"
)

// ChangeEvent describes a committed mutation. PreviousSlug is set when an
// update renamed the slug, so caches keyed by the old value can be purged.
type ChangeEvent struct {
	Op           ChangeOp
	ID           int64
	Slug         string
	PreviousSlug string
}

// ChangeListener is invoked after every successful Save or Delete.
type ChangeListener func(ctx context.Context, event ChangeEvent)

type CarouselRepository interface {
	// List returns summaries of all carousels, newest first.
	List(ctx context.Context) ([]model.CarouselSummary, error)

	// GetBySlug returns the carousel with the given slug, or
	// model.ErrCarouselNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.Carousel, error)

	// GetByID returns the carousel with the given id, or
	// model.ErrCarouselNotFound.
	GetByID(ctx context.Context, id int64) (*model.Carousel, error)

	// Save inserts when carousel.ID is zero, otherwise fully replaces the
	// row. Returns model.ErrSlugTaken when another record owns the slug
	// and model.ErrCarouselNotFound when updating a missing id.
	Save(ctx context.Context, carousel *model.Carousel) (int64, error)

	// Delete removes a carousel by id, or returns
	// model.ErrCarouselNotFound.
	Delete(ctx context.Context, id int64) error

	// OnChange registers a listener notified after every successful
	// mutation. Listeners must not block for long; they run on the
	// mutating request's goroutine.
	OnChange(listener ChangeListener)
}
