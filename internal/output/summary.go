package output

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
)

// BuildSummary assembles the reporting summary for one completed build
func BuildSummary(outDir string, m *domain.Manifest, estTransfer int64) *domain.Summary {
	var total int64
	for _, e := range m.Entries {
		total += e.Size
	}

	return &domain.Summary{
		GeneratedAt:     time.Now(),
		OutputDir:       outDir,
		EntryCount:      len(m.Entries),
		TotalSize:       total,
		EstTransferSize: estTransfer,
		Warnings:        m.Warnings,
	}
}

// EstimateTransferSize gzips each artifact and sums the compressed byte
// counts, approximating what a client downloads on first precache fill.
func EstimateTransferSize(root string, rels []string) (int64, error) {
	var total int64
	counter := &countingWriter{}

	for _, rel := range rels {
		counter.n = 0

		f, err := os.Open(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return 0, domain.NewSourceReadError(rel, err)
		}

		zw := gzip.NewWriter(counter)
		_, err = io.Copy(zw, f)
		f.Close()
		if err != nil {
			return 0, domain.NewSourceReadError(rel, err)
		}
		if err := zw.Close(); err != nil {
			return 0, domain.NewSourceReadError(rel, err)
		}

		total += counter.n
	}

	return total, nil
}

type countingWriter struct {
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
