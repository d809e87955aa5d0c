package database

import (
	"context"
	"database/sql"
	"errors"

	"aparecida-web/app/models"
)

// settingsID keys the single site_settings row.
const settingsID = "site"

// GetSiteSettings returns the saved settings, or the defaults when nothing
// has been saved yet.
func GetSiteSettings(ctx context.Context, db *DB) (models.SiteSettings, error) {
	s := models.SiteSettings{}
	err := db.queryRow(ctx, `SELECT church_name, address, phone, email, pix_key, facebook_url,
		instagram_url, youtube_url, hero_title, hero_subtitle, hero_image_path, updated_at
		FROM site_settings WHERE id = ?`, settingsID).Scan(
		&s.ChurchName, &s.Address, &s.Phone, &s.Email, &s.PixKey, &s.FacebookURL,
		&s.InstagramURL, &s.YoutubeURL, &s.HeroTitle, &s.HeroSubtitle, &s.HeroImagePath, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return models.SiteSettings{}, err
	}
	return s, nil
}

// SaveSiteSettings upserts the settings row and stamps updatedAt on s.
func SaveSiteSettings(ctx context.Context, db *DB, s *models.SiteSettings) error {
	s.UpdatedAt = now()
	_, err := db.exec(ctx, `INSERT INTO site_settings (id, church_name, address, phone, email, pix_key,
		facebook_url, instagram_url, youtube_url, hero_title, hero_subtitle, hero_image_path, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			church_name = excluded.church_name,
			address = excluded.address,
			phone = excluded.phone,
			email = excluded.email,
			pix_key = excluded.pix_key,
			facebook_url = excluded.facebook_url,
			instagram_url = excluded.instagram_url,
			youtube_url = excluded.youtube_url,
			hero_title = excluded.hero_title,
			hero_subtitle = excluded.hero_subtitle,
			hero_image_path = excluded.hero_image_path,
			updated_at = excluded.updated_at`,
		settingsID, s.ChurchName, s.Address, s.Phone, s.Email, s.PixKey,
		s.FacebookURL, s.InstagramURL, s.YoutubeURL, s.HeroTitle, s.HeroSubtitle, s.HeroImagePath, s.UpdatedAt,
	)
	return err
}
