package config

const (
	HCType              = "Content-Type"
	HETag               = "ETag"
	HCacheControl       = "Cache-Control"
	HContentDisposition = "Content-Disposition"
	HHxRequest          = "HX-Request"
	HHxReswap           = "HX-Reswap"
	HHxTrigger          = "HX-Trigger"

	CTypeCSS  = "text/css"
	CTypeHTML = "text/html; charset=utf-8"
	CTypeJSON = "application/json"
	CTypePDF  = "application/pdf"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	CookieTheme     = "theme"
	CookieWorkspace = "notice-desk-ws"
)
