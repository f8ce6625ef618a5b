// Package assets rewrites relative upload paths into fully-qualified asset
// URLs served by the CDN.
package assets

import (
	"strings"
)

// Rewriter rewrites image paths that begin with a known relative upload
// prefix into absolute URLs. Anything else passes through unchanged.
type Rewriter struct {
	baseURL      string
	uploadPrefix string
}

// NewRewriter creates a rewriter for the given asset base URL (e.g.
// "https://cdn.example.com") and relative upload prefix (e.g. "/uploads/").
func NewRewriter(baseURL, uploadPrefix string) *Rewriter {
	return &Rewriter{
		baseURL:      strings.TrimRight(baseURL, "/"),
		uploadPrefix: uploadPrefix,
	}
}

// Rewrite returns the absolute URL for a relative upload path. Absolute URLs
// and paths outside the upload prefix are returned unchanged; an empty path
// stays empty (placeholder selection is a presentation concern, not ours).
func (r *Rewriter) Rewrite(path string) string {
	if path == "" || r.baseURL == "" || r.uploadPrefix == "" {
		return path
	}
	if !strings.HasPrefix(path, r.uploadPrefix) {
		return path
	}
	return r.baseURL + path
}
