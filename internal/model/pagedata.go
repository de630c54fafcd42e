package model

import (
	"net/http"

	"github.com/debemdeboas/notice-desk/internal/config"
	"github.com/debemdeboas/notice-desk/internal/theme"
)

type PageData struct {
	SiteName    string
	SiteTagline string

	PageURL string

	Theme               string
	AllowThemeSwitching bool

	// Milliseconds before a banner hides itself.
	BannerHideAfterMs int64
}

func NewPageData(r *http.Request) *PageData {
	return &PageData{
		SiteName:            config.AppConfig.Site.Name,
		SiteTagline:         config.AppConfig.Site.Tagline,
		PageURL:             r.URL.Path,
		Theme:               theme.GetThemeFromRequest(r),
		AllowThemeSwitching: config.AppConfig.Theme.AllowSwitching,
		BannerHideAfterMs:   config.AppConfig.UI.BannerHideAfter.Milliseconds(),
	}
}
