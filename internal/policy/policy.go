// Package policy decides the final glob pattern sets used to enumerate build
// artifacts. Caller-supplied patterns are never dropped; baseline entries are
// appended when the caller's set does not already cover them.
package policy

import "strings"

// Baseline glob entries for a SvelteKit static build layout.
const (
	ClientPattern      = "client/**/*.{js,css,ico,png,svg,webp,woff,woff2}"
	PrerenderedPattern = "prerendered/**/*.html"
	WebManifestPattern = "client/*.webmanifest"
	ServerIgnore       = "server/*.*"

	clientPrefix      = "client/"
	prerenderedPrefix = "prerendered/"
	serverPrefix      = "server/"
	webManifestMark   = "webmanifest"
)

// BuildPatterns returns the inclusion pattern set. A nil existing slice yields
// the fixed baseline; otherwise baselines missing from the caller's set are
// appended. Coverage detection is a deliberate prefix/substring check, not
// glob-semantic overlap: a redundant pattern is harmless, a missing one is not.
// The caller's slice is never mutated.
func BuildPatterns(existing []string) []string {
	if existing == nil {
		return []string{ClientPattern, PrerenderedPattern}
	}

	patterns := make([]string, len(existing), len(existing)+3)
	copy(patterns, existing)

	if !anyHasPrefix(patterns, prerenderedPrefix) {
		patterns = append(patterns, PrerenderedPattern)
	}
	if !anyHasPrefix(patterns, clientPrefix) {
		patterns = append(patterns, ClientPattern)
	}
	if !anyContains(patterns, webManifestMark) {
		patterns = append(patterns, WebManifestPattern)
	}
	return patterns
}

// BuildIgnores returns the exclusion pattern set, appending the server-stage
// baseline when no caller-supplied ignore covers it. The caller's slice is
// never mutated.
func BuildIgnores(existing []string) []string {
	if existing == nil {
		return []string{ServerIgnore}
	}

	ignores := make([]string, len(existing), len(existing)+1)
	copy(ignores, existing)

	if !anyHasPrefix(ignores, serverPrefix) {
		ignores = append(ignores, ServerIgnore)
	}
	return ignores
}

// IncludeVersionFile appends the client version file pattern so the build-time
// version marker is precached alongside the assets it describes.
func IncludeVersionFile(patterns []string, appDir string) []string {
	if appDir == "" {
		appDir = "_app"
	}
	out := make([]string, len(patterns), len(patterns)+1)
	copy(out, patterns)
	return append(out, clientPrefix+appDir+"/version.json")
}

func anyHasPrefix(patterns []string, prefix string) bool {
	for _, p := range patterns {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func anyContains(patterns []string, substr string) bool {
	for _, p := range patterns {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}
