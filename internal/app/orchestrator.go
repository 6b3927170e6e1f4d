// Package app wires one build invocation together: glob policy, artifact
// scan, URL transform, and manifest output.
package app

import (
	"context"
	"path/filepath"

	"github.com/vite-pwa/sveltekit-precache/internal/cache"
	"github.com/vite-pwa/sveltekit-precache/internal/config"
	"github.com/vite-pwa/sveltekit-precache/internal/domain"
	"github.com/vite-pwa/sveltekit-precache/internal/layout"
	"github.com/vite-pwa/sveltekit-precache/internal/output"
	"github.com/vite-pwa/sveltekit-precache/internal/precache"
	"github.com/vite-pwa/sveltekit-precache/internal/scanner"
	"github.com/vite-pwa/sveltekit-precache/internal/utils"
)

// Orchestrator runs a single manifest generation pass
type Orchestrator struct {
	cfg      *config.Config
	layout   domain.Layout
	patterns []string
	ignores  []string
	store    *cache.RevisionStore
	dryRun   bool
	log      *utils.Logger
}

// Options contains options for creating an orchestrator
type Options struct {
	Config *config.Config

	// Layout overrides the layout file lookup; when nil the file named by
	// Config.Build.LayoutFile is loaded if present, else defaults apply.
	Layout *layout.Config

	// FallbackRevision, with the layout's fallback_mapping, switches the
	// synthetic fallback entry to the caller-supplied revision.
	FallbackRevision domain.RevisionSupplier

	DryRun bool
	Logger *utils.Logger
}

// NewOrchestrator creates an orchestrator and opens its revision store
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	logger = logger.WithComponent("orchestrator")

	layoutCfg := opts.Layout
	if layoutCfg == nil {
		loaded, err := loadLayoutFile(cfg.Build.LayoutFile)
		if err != nil {
			return nil, err
		}
		layoutCfg = loaded
	}

	clientDir := filepath.Join(cfg.Build.OutDir, "client")
	l := layoutCfg.ToLayout(clientDir)
	l.SPA.FallbackRevision = opts.FallbackRevision

	patterns, ignores := layoutCfg.GlobSets()

	var store *cache.RevisionStore
	if cfg.Cache.Enabled && !opts.DryRun {
		s, err := cache.NewRevisionStore(cache.Options{
			Directory: cfg.Cache.Directory,
			TTL:       cfg.Cache.TTL,
		})
		if err != nil {
			return nil, err
		}
		store = s
	}

	return &Orchestrator{
		cfg:      cfg,
		layout:   l,
		patterns: patterns,
		ignores:  ignores,
		store:    store,
		dryRun:   opts.DryRun,
		log:      logger,
	}, nil
}

// loadLayoutFile loads the layout file when present; a missing file is not an
// error, the defaults cover it.
func loadLayoutFile(path string) (*layout.Config, error) {
	if path == "" || !utils.FileExists(path) {
		return &layout.Config{}, nil
	}
	return layout.NewLoader().Load(path)
}

// Run executes one scan-transform-write pass
func (o *Orchestrator) Run(ctx context.Context) (*domain.Summary, error) {
	var revCache scanner.RevisionCache
	if o.store != nil {
		revCache = o.store
	}

	s, err := scanner.New(scanner.Options{
		OutDir:   o.cfg.Build.OutDir,
		Patterns: o.patterns,
		Ignores:  o.ignores,
		Workers:  o.cfg.Concurrency.Workers,
		Cache:    revCache,
		Progress: o.cfg.Output.Progress,
		Logger:   o.log,
	})
	if err != nil {
		return nil, err
	}

	entries, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Info().Int("artifacts", len(entries)).Msg("scanned build output")

	manifest, err := precache.Transform(ctx, entries, o.layout)
	if err != nil {
		return nil, err
	}
	for _, w := range manifest.Warnings {
		o.log.Warn().Msg(w)
	}

	writer := output.NewWriter(output.WriterOptions{
		ManifestPath: o.cfg.Output.ManifestFile,
		SummaryPath:  o.cfg.Output.SummaryFile,
		DryRun:       o.dryRun,
	})

	if err := writer.WriteManifest(manifest); err != nil {
		return nil, err
	}

	var estTransfer int64
	if o.cfg.Output.SummaryFile != "" {
		rels := make([]string, len(entries))
		for i, e := range entries {
			rels[i] = e.URL
		}
		estTransfer, err = output.EstimateTransferSize(o.cfg.Build.OutDir, rels)
		if err != nil {
			return nil, err
		}
	}

	summary := output.BuildSummary(o.cfg.Build.OutDir, manifest, estTransfer)
	if err := writer.WriteSummary(summary); err != nil {
		return nil, err
	}

	o.log.Info().
		Int("entries", summary.EntryCount).
		Int64("total_size", summary.TotalSize).
		Str("manifest", o.cfg.Output.ManifestFile).
		Msg("manifest written")

	return summary, nil
}

// Close releases the revision store, if any
func (o *Orchestrator) Close() error {
	if o.store != nil {
		return o.store.Close()
	}
	return nil
}
