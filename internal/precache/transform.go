// Package precache rewrites build-relative artifact URLs into the URLs they
// are served at in production, producing the final service-worker precache
// manifest.
package precache

import (
	"context"
	"fmt"
	"strings"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
)

// Build stage prefixes as laid out by the static adapter.
const (
	clientPrefix           = "client/"
	prerenderedDepsPrefix  = "prerendered/dependencies/"
	prerenderedPagesPrefix = "prerendered/pages/"

	// DefaultFallback is the build-internal path of the adapter's fallback
	// document when no override is configured.
	DefaultFallback = "prerendered/fallback.html"

	htmlExt = ".html"
)

// stage classifies an artifact path by its build stage. Order matters:
// the first matching prefix wins.
type stage int

const (
	stageClientAsset stage = iota
	stagePrerenderedDependency
	stagePrerenderedPage
	stageFallback
	stageUnmatched
)

// classify returns the artifact's stage and the path with the stage prefix
// stripped. Unmatched paths are returned unchanged.
func classify(url string) (stage, string) {
	switch {
	case strings.HasPrefix(url, clientPrefix):
		return stageClientAsset, url[len(clientPrefix):]
	case strings.HasPrefix(url, prerenderedDepsPrefix):
		return stagePrerenderedDependency, url[len(prerenderedDepsPrefix):]
	case strings.HasPrefix(url, prerenderedPagesPrefix):
		return stagePrerenderedPage, url[len(prerenderedPagesPrefix):]
	case url == DefaultFallback:
		return stageFallback, url
	default:
		return stageUnmatched, url
	}
}

// Transform rewrites each artifact's URL to its serving URL and optionally
// appends a synthetic fallback entry. Input entries are not modified; the
// result preserves input order with the synthetic entry, if any, last.
//
// The only suspension point is the fallback revision computation; a read
// failure there aborts the transform and no partial manifest is returned.
func Transform(ctx context.Context, entries []domain.ArtifactEntry, layout domain.Layout) (*domain.Manifest, error) {
	suffix := layout.TrailingSlash.Suffix()

	// Without an explicit override the adapter's fallback document is served
	// by a different mechanism and must not be precached under its
	// build-internal name.
	dropDefaultFallback := layout.Fallback == ""

	out := make([]domain.ArtifactEntry, 0, len(entries)+1)
	var warnings []string

	for _, entry := range entries {
		st, url := classify(entry.URL)

		switch st {
		case stageFallback:
			if dropDefaultFallback {
				continue
			}
			url = layout.Fallback
		case stageUnmatched:
			warnings = append(warnings,
				fmt.Sprintf("entry %q matched no build stage, URL passed through unchanged", entry.URL))
		}

		if strings.HasSuffix(url, htmlExt) {
			url = prettyURL(url, layout.Base, suffix)
		}

		entry.URL = url
		out = append(out, entry)
	}

	switch layout.SPAVariant() {
	case domain.SPACustom:
		revision, err := layout.SPA.FallbackRevision(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ArtifactEntry{
			URL:      layout.SPA.FallbackMapping,
			Revision: revision,
			Size:     0,
		})
	case domain.SPASimple:
		entry, err := buildFallbackEntry(layout)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}

	if layout.WebManifestName != "" {
		filtered := out[:0]
		for _, entry := range out {
			if entry.URL != layout.WebManifestName {
				filtered = append(filtered, entry)
			}
		}
		out = filtered
	}

	return &domain.Manifest{Entries: out, Warnings: warnings}, nil
}

// prettyURL maps an HTML document path to the extension-less directory-style
// URL the serving layer resolves it at.
func prettyURL(url, base, suffix string) string {
	url = strings.TrimPrefix(url, "/")

	switch {
	case url == "index.html":
		return base
	case strings.HasSuffix(url, "/index.html"):
		return url[:strings.LastIndex(url, "/")] + suffix
	default:
		return url[:strings.LastIndex(url, ".")] + suffix
	}
}
