package service

import (
	"context"
	"fmt"

	"carousel-backend/internal/domains/settings/model"
	"carousel-backend/internal/domains/settings/repository"
	"carousel-backend/pkg/logger"
)

// CacheNotifier receives settings-change signals; the carousel cache
// flushes itself when the changed key is critical.
type CacheNotifier interface {
	NotifySettingChanged(ctx context.Context, name string) error
}

type ServiceInterface interface {
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	PutSetting(ctx context.Context, key, value string) (*model.Setting, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	notifier CacheNotifier
}

func NewSettingsService(repo repository.SettingsRepository, notifier CacheNotifier) ServiceInterface {
	return &settingsService{repo: repo, notifier: notifier}
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	return s.repo.Get(ctx, key)
}

func (s *settingsService) PutSetting(ctx context.Context, key, value string) (*model.Setting, error) {
	setting, err := s.repo.Put(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}

	// The write itself succeeded; a failed flush only delays freshness
	// and is surfaced in the logs.
	if s.notifier != nil {
		if err := s.notifier.NotifySettingChanged(ctx, key); err != nil {
			logger.Warn("cache flush after setting change failed", err)
		}
	}

	return setting, nil
}
