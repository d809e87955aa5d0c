package models

import "aparecida-web/app/dates"

// SiteSettings holds the editable site copy. There is a single row.
type SiteSettings struct {
	ChurchName    string       `json:"churchName" form:"churchName" validate:"required"`
	Address       string       `json:"address" form:"address"`
	Phone         string       `json:"phone" form:"phone"`
	Email         string       `json:"email" form:"email" validate:"omitempty,email"`
	PixKey        string       `json:"pixKey" form:"pixKey"`
	FacebookURL   string       `json:"facebookUrl" form:"facebookUrl" validate:"omitempty,http_url"`
	InstagramURL  string       `json:"instagramUrl" form:"instagramUrl" validate:"omitempty,http_url"`
	YoutubeURL    string       `json:"youtubeUrl" form:"youtubeUrl" validate:"omitempty,http_url"`
	HeroTitle     string       `json:"heroTitle" form:"heroTitle"`
	HeroSubtitle  string       `json:"heroSubtitle" form:"heroSubtitle"`
	HeroImagePath string       `json:"heroImagePath" form:"-"`
	HeroImageURL  string       `json:"heroImageUrl" form:"-"`
	UpdatedAt     dates.Millis `json:"updatedAt" form:"-"`
}

// DefaultSiteSettings is served until an admin saves the settings.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ChurchName:   "Paróquia Nossa Senhora Aparecida",
		PixKey:       "00.000.000/0000-00",
		HeroTitle:    "Paróquia Nossa Senhora Aparecida",
		HeroSubtitle: "Uma comunidade de fé, esperança e caridade",
	}
}
