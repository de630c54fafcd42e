// Package routes defines HTTP route constants for the application.
package routes

const (
	RootPath   = "/"
	RobotsPath = "/robots.txt"
	HealthPath = "/healthz"

	ThemeToggle = "/theme/toggle"

	// SSE
	SSEPath = "/sse"

	// Partials
	PartialsTemplates    = "/partials/templates"
	PartialsHistory      = "/partials/history"
	PartialsDraftPreview = "/partials/draft/preview"

	// Actions
	ActionTemplate = "/actions/template"
	ActionGenerate = "/actions/generate"
	ActionSave     = "/actions/save"
	ActionNotice   = "/actions/notice/{id}"
	ActionPDF      = "/actions/pdf"
	ActionEmail    = "/actions/email"

	// One-shot PDF downloads
	Downloads    = "/downloads/{token}"
	DownloadsFmt = "/downloads/%s"
)
