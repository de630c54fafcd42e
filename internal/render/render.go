// Package render turns draft text and history data into display form.
package render

import (
	"time"

	"github.com/gomarkdown/markdown"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/notice-desk/internal/cache"
	"github.com/debemdeboas/notice-desk/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

var policy = bluemonday.UGCPolicy()

var renderedDrafts = cache.NewExpiring[string, []byte](0)

// EnableDraftCache keeps rendered previews for ttl.
func EnableDraftCache(ttl time.Duration) {
	renderedDrafts = cache.NewExpiring[string, []byte](ttl)
}

// SweepDraftCache drops expired previews. Previews are keyed by posted text,
// so the cache must be swept to stay bounded.
func SweepDraftCache() {
	renderedDrafts.Sweep()
}

// RenderDraft renders draft text as sanitized HTML. Drafts come back from the
// AI backend as loose markdown; single newlines are kept as line breaks.
func RenderDraft(text string) []byte {
	md := markdown.NormalizeNewlines([]byte(text))

	doc := parser.NewWithExtensions(
		parser.CommonExtensions | parser.HardLineBreak | parser.NoEmptyLineBeforeBlock,
	).Parse(md)

	renderer := md_html.NewRenderer(md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank,
	})

	return policy.SanitizeBytes(markdown.Render(doc, renderer))
}

// RenderDraftCached is RenderDraft keyed by the content hash of text.
func RenderDraftCached(text string) []byte {
	hash := util.ContentHashString(text)
	if html, ok := renderedDrafts.Get(hash); ok {
		renderLogger.Debug().Str("contentHash", hash).Msg("Cache hit for rendered draft")
		return html
	}

	html := RenderDraft(text)
	renderedDrafts.Set(hash, html)
	return html
}
