// Package theme handles the light/dark theme cookie.
package theme

import (
	"net/http"

	"github.com/debemdeboas/notice-desk/internal/config"
)

func GetThemeFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(config.CookieTheme); err == nil {
		switch cookie.Value {
		case config.LightTheme, config.DarkTheme:
			return cookie.Value
		}
	}
	return config.AppConfig.Theme.Default
}

// Opposite returns the theme a toggle switches to.
func Opposite(theme string) string {
	if theme == config.DarkTheme {
		return config.LightTheme
	}
	return config.DarkTheme
}

func GetThemeIcon(theme string) string {
	if theme == config.LightTheme {
		return config.DarkThemeIcon
	}
	return config.LightThemeIcon
}
