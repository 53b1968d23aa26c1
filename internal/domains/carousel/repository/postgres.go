package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carousel-backend/internal/domains/carousel/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

const pgUniqueViolation = "23505"

type postgresCarouselRepository struct {
	pool *pgxpool.Pool

	mu        sync.RWMutex
	listeners []ChangeListener
}

func NewPostgresCarouselRepository(pool *pgxpool.Pool) CarouselRepository {
	return &postgresCarouselRepository{pool: pool}
}

func (r *postgresCarouselRepository) OnChange(listener ChangeListener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, listener)
	r.mu.Unlock()
}

func (r *postgresCarouselRepository) notify(ctx context.Context, event ChangeEvent) {
	r.mu.RLock()
	listeners := make([]ChangeListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx, event)
	}
}

// =====================================================
// READS
// =====================================================

func (r *postgresCarouselRepository) List(ctx context.Context) ([]model.CarouselSummary, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM carousels
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousels: %w", err)
	}
	defer rows.Close()

	summaries := []model.CarouselSummary{}
	for rows.Next() {
		var s model.CarouselSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan carousel summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *postgresCarouselRepository) GetBySlug(ctx context.Context, slug string) (*model.Carousel, error) {
	query := `
		SELECT id, name, slug, slides, settings, created_at, updated_at
		FROM carousels
		WHERE slug = $1
	`
	return r.getOne(ctx, query, slug)
}

func (r *postgresCarouselRepository) GetByID(ctx context.Context, id int64) (*model.Carousel, error) {
	query := `
		SELECT id, name, slug, slides, settings, created_at, updated_at
		FROM carousels
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *postgresCarouselRepository) getOne(ctx context.Context, query string, arg interface{}) (*model.Carousel, error) {
	var (
		c            model.Carousel
		slidesJSON   []byte
		settingsJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &slidesJSON, &settingsJSON, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrCarouselNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get carousel: %w", err)
	}

	if err := json.Unmarshal(slidesJSON, &c.Slides); err != nil {
		return nil, fmt.Errorf("failed to decode slides: %w", err)
	}
	if err := json.Unmarshal(settingsJSON, &c.Settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	return &c, nil
}

// =====================================================
// WRITES
// =====================================================

func (r *postgresCarouselRepository) Save(ctx context.Context, carousel *model.Carousel) (int64, error) {
	slidesJSON, err := json.Marshal(carousel.Slides)
	if err != nil {
		return 0, fmt.Errorf("failed to encode slides: %w", err)
	}
	settingsJSON, err := json.Marshal(carousel.Settings)
	if err != nil {
		return 0, fmt.Errorf("failed to encode settings: %w", err)
	}

	now := time.Now().UTC()

	if carousel.ID == 0 {
		return r.insert(ctx, carousel, slidesJSON, settingsJSON, now)
	}
	return r.update(ctx, carousel, slidesJSON, settingsJSON, now)
}

func (r *postgresCarouselRepository) insert(ctx context.Context, carousel *model.Carousel, slidesJSON, settingsJSON []byte, now time.Time) (int64, error) {
	query := `
		INSERT INTO carousels (name, slug, slides, settings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		carousel.Name, carousel.Slug, slidesJSON, settingsJSON, now,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrSlugTaken
		}
		return 0, fmt.Errorf("failed to insert carousel: %w", err)
	}

	carousel.ID = id
	carousel.CreatedAt = now
	carousel.UpdatedAt = now

	r.notify(ctx, ChangeEvent{Op: OpSave, ID: id, Slug: carousel.Slug})
	return id, nil
}

func (r *postgresCarouselRepository) update(ctx context.Context, carousel *model.Carousel, slidesJSON, settingsJSON []byte, now time.Time) (int64, error) {
	// Fetch the current slug first: a rename must also invalidate cache
	// entries keyed by the old value.
	var previousSlug string
	err := r.pool.QueryRow(ctx,
		`SELECT slug FROM carousels WHERE id = $1`, carousel.ID,
	).Scan(&previousSlug)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, model.ErrCarouselNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load carousel for update: %w", err)
	}

	query := `
		UPDATE carousels
		SET name = $1, slug = $2, slides = $3, settings = $4, updated_at = $5
		WHERE id = $6
	`

	tag, err := r.pool.Exec(ctx, query,
		carousel.Name, carousel.Slug, slidesJSON, settingsJSON, now, carousel.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrSlugTaken
		}
		return 0, fmt.Errorf("failed to update carousel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, model.ErrCarouselNotFound
	}

	carousel.UpdatedAt = now

	event := ChangeEvent{Op: OpSave, ID: carousel.ID, Slug: carousel.Slug}
	if previousSlug != carousel.Slug {
		event.PreviousSlug = previousSlug
	}
	r.notify(ctx, event)

	return carousel.ID, nil
}

func (r *postgresCarouselRepository) Delete(ctx context.Context, id int64) error {
	var slug string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM carousels WHERE id = $1 RETURNING slug`, id,
	).Scan(&slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrCarouselNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete carousel: %w", err)
	}

	r.notify(ctx, ChangeEvent{Op: OpDelete, ID: id, Slug: slug})
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
