package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carousel-backend/internal/domains/settings/model"
)

type postgresSettingsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &postgresSettingsRepository{pool: pool}
}

func (r *postgresSettingsRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	query := `SELECT key, value, updated_at FROM site_settings WHERE key = $1`

	var s model.Setting
	err := r.pool.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrSettingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	return &s, nil
}

func (r *postgresSettingsRepository) Put(ctx context.Context, key, value string) (*model.Setting, error) {
	query := `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	if _, err := r.pool.Exec(ctx, query, key, value, now); err != nil {
		return nil, fmt.Errorf("failed to put setting: %w", err)
	}

	return &model.Setting{Key: key, Value: value, UpdatedAt: now}, nil
}
