// Package seo builds head metadata and schema.org payloads for the
// public pages.
package seo

import (
	"html/template"
	"strings"
)

// Meta is the per-page head block.
type Meta struct {
	Description string
	Canonical   string
	// JSONLD holds serialized schema.org payloads, one script tag each.
	JSONLD []template.JS
}

// Canonical joins the site origin and a request path.
func Canonical(origin, path string) string {
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}
