package render

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var ugc = bluemonday.UGCPolicy() //nolint:gochecknoglobals // policies are safe for concurrent use

// Sanitize strips unsafe markup from user supplied text and marks the
// remainder as trusted HTML.
func Sanitize(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(ugc.Sanitize(s)) //nolint:gosec // sanitized above
}
