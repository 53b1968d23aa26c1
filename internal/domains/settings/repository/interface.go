package repository

import (
	"context"

	"carousel-backend/internal/domains/settings/model"
)

type SettingsRepository interface {
	// Get returns a setting by key, or model.ErrSettingNotFound.
	Get(ctx context.Context, key string) (*model.Setting, error)

	// Put inserts or updates a setting.
	Put(ctx context.Context, key, value string) (*model.Setting, error)
}
