package domain

import (
	"context"
	"time"
)

// ArtifactEntry represents one file produced by the build, identified by a
// build-relative URL and a content revision marker.
type ArtifactEntry struct {
	URL      string `json:"url"`
	Revision string `json:"revision"`
	Size     int64  `json:"size"`
}

// TrailingSlash is the policy governing whether directory-style URLs end in "/".
type TrailingSlash string

const (
	// TrailingSlashDefault leaves pretty URLs extension-less without a slash
	TrailingSlashDefault TrailingSlash = "default"
	// TrailingSlashAlways appends "/" to every pretty URL except the root
	TrailingSlashAlways TrailingSlash = "always"
)

// Suffix returns the suffix appended to pretty URLs under this policy.
func (t TrailingSlash) Suffix() string {
	if t == TrailingSlashAlways {
		return "/"
	}
	return ""
}

// RevisionSupplier resolves a revision string for a synthetic manifest entry.
type RevisionSupplier func(ctx context.Context) (string, error)

// SPA configures single-page-app fallback behavior. When both FallbackMapping
// and FallbackRevision are set, the synthetic entry uses them; otherwise the
// revision is derived from the client version file.
type SPA struct {
	Enabled          bool
	FallbackMapping  string
	FallbackRevision RevisionSupplier
}

// Layout contains the build layout parameters resolved once per build.
// It is immutable for the life of the transform.
type Layout struct {
	Base            string
	AppDir          string
	TrailingSlash   TrailingSlash
	Fallback        string
	SPA             SPA
	WebManifestName string
	ClientOutputDir string
}

// SPAVariant is the closed set of fallback configurations.
type SPAVariant int

const (
	// SPAOff means no synthetic fallback entry is appended
	SPAOff SPAVariant = iota
	// SPASimple hashes the client version file for the fallback revision
	SPASimple
	// SPACustom uses the caller's mapping and revision supplier
	SPACustom
)

// SPAVariant dispatches the fallback configuration explicitly instead of
// probing field presence at each use site.
func (l Layout) SPAVariant() SPAVariant {
	if !l.SPA.Enabled || l.Fallback == "" {
		return SPAOff
	}
	if l.SPA.FallbackMapping != "" && l.SPA.FallbackRevision != nil {
		return SPACustom
	}
	return SPASimple
}

// Manifest is the final precache manifest handed to the consumer.
type Manifest struct {
	Entries  []ArtifactEntry `json:"entries"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Summary describes one completed build for reporting.
type Summary struct {
	GeneratedAt     time.Time `json:"generated_at"`
	OutputDir       string    `json:"output_dir"`
	EntryCount      int       `json:"entry_count"`
	TotalSize       int64     `json:"total_size"`
	EstTransferSize int64     `json:"est_transfer_size"`
	Warnings        []string  `json:"warnings,omitempty"`
}
