// Package output persists the generated manifest and build summary.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
	"github.com/vite-pwa/sveltekit-precache/internal/utils"
)

// Writer handles writing the manifest and summary to the filesystem
type Writer struct {
	manifestPath string
	summaryPath  string
	dryRun       bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	ManifestPath string
	SummaryPath  string
	DryRun       bool
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	return &Writer{
		manifestPath: opts.ManifestPath,
		summaryPath:  opts.SummaryPath,
		dryRun:       opts.DryRun,
	}
}

// WriteManifest saves the precache entry list as JSON. The file holds the
// bare entry array, the shape the precache consumer embeds directly.
func (w *Writer) WriteManifest(m *domain.Manifest) error {
	data, err := json.MarshalIndent(m.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	return w.write(w.manifestPath, data)
}

// WriteSummary saves the build summary, if a summary path is configured
func (w *Writer) WriteSummary(s *domain.Summary) error {
	if w.summaryPath == "" {
		return nil
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}

	return w.write(w.summaryPath, data)
}

func (w *Writer) write(path string, data []byte) error {
	if w.dryRun {
		return nil
	}

	if err := utils.EnsureDir(path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailed, err)
	}
	return nil
}

// ManifestPath returns the configured manifest output path
func (w *Writer) ManifestPath() string {
	return w.manifestPath
}
