package services

import (
	"context"
	"time"

	"aparecida-web/app/database"
	"aparecida-web/app/models"
	"aparecida-web/app/storage"

	gocache "github.com/patrickmn/go-cache"
)

const settingsKey = "site_settings"

// SiteSettings serves the settings row through a short-lived cache. Saves
// drop the cached copy.
type SiteSettings struct {
	db    *database.DB
	cache *gocache.Cache
}

func NewSiteSettings(db *database.DB, ttl time.Duration) *SiteSettings {
	return &SiteSettings{
		db:    db,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the current settings with HeroImageURL resolved.
func (s *SiteSettings) Get(ctx context.Context) (models.SiteSettings, error) {
	if v, ok := s.cache.Get(settingsKey); ok {
		if settings, ok := v.(models.SiteSettings); ok {
			return settings, nil
		}
	}

	settings, err := database.GetSiteSettings(ctx, s.db)
	if err != nil {
		return models.SiteSettings{}, err
	}
	settings.HeroImageURL = storage.URL(settings.HeroImagePath)
	s.cache.SetDefault(settingsKey, settings)
	return settings, nil
}

// Save persists settings and invalidates the cache.
func (s *SiteSettings) Save(ctx context.Context, settings *models.SiteSettings) error {
	defer s.cache.Delete(settingsKey)
	if err := database.SaveSiteSettings(ctx, s.db, settings); err != nil {
		return err
	}
	settings.HeroImageURL = storage.URL(settings.HeroImagePath)
	return nil
}
