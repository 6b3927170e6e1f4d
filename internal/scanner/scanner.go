// Package scanner enumerates build artifacts. It walks the adapter's output
// tree, matches relative paths against the glob policy, and computes each
// match's content revision.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/vite-pwa/sveltekit-precache/internal/cache"
	"github.com/vite-pwa/sveltekit-precache/internal/domain"
	"github.com/vite-pwa/sveltekit-precache/internal/precache"
	"github.com/vite-pwa/sveltekit-precache/internal/utils"
)

// RevisionCache resolves previously computed revisions by stat key
type RevisionCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, revision string) error
}

// Scanner enumerates and hashes build artifacts
type Scanner struct {
	outDir   string
	include  []glob.Glob
	exclude  []glob.Glob
	workers  int
	cache    RevisionCache
	progress bool
	log      *utils.Logger
}

// Options contains options for creating a scanner
type Options struct {
	OutDir   string
	Patterns []string
	Ignores  []string
	Workers  int
	Cache    RevisionCache
	Progress bool
	Logger   *utils.Logger
}

// New creates a scanner with compiled glob sets
func New(opts Options) (*Scanner, error) {
	include, err := compileAll(opts.Patterns)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(opts.Ignores)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	return &Scanner{
		outDir:   opts.OutDir,
		include:  include,
		exclude:  exclude,
		workers:  workers,
		cache:    opts.Cache,
		progress: opts.Progress,
		log:      logger.WithComponent("scanner"),
	}, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		for _, variant := range globstarVariants(p) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, &domain.PatternError{Pattern: p, Err: err}
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// globstarVariants expands "/**/" so it can also match zero path segments:
// "client/**/*.png" must match "client/favicon.png" as well as nested files.
func globstarVariants(pattern string) []string {
	i := strings.Index(pattern, "/**/")
	if i < 0 {
		return []string{pattern}
	}

	head := pattern[:i]
	tails := globstarVariants(pattern[i+3:])

	variants := make([]string, 0, len(tails)*2)
	for _, tail := range tails {
		variants = append(variants, head+"/**"+tail, head+tail)
	}
	return variants
}

// candidate is one matched file awaiting revision computation
type candidate struct {
	rel     string
	abs     string
	size    int64
	modTime time.Time
}

// Scan walks the output directory and returns one entry per matched artifact,
// ordered by relative path. Revisions are content hashes, computed
// concurrently and served from the revision cache when the file's stat info
// is unchanged.
func (s *Scanner) Scan(ctx context.Context) ([]domain.ArtifactEntry, error) {
	if !utils.DirExists(s.outDir) {
		return nil, fmt.Errorf("%w: %s", domain.ErrOutputDirMissing, s.outDir)
	}

	candidates, err := s.collect()
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("matched", len(candidates)).Str("dir", s.outDir).Msg("scan complete")

	entries := make([]domain.ArtifactEntry, len(candidates))

	bar := utils.NewProgressBar(len(candidates), utils.DescHashing)
	errs := utils.ParallelForEach(ctx, indexes(candidates), s.workers, func(ctx context.Context, i int) error {
		revision, err := s.revision(ctx, candidates[i])
		if err != nil {
			return err
		}
		entries[i] = domain.ArtifactEntry{
			URL:      candidates[i].rel,
			Revision: revision,
			Size:     candidates[i].size,
		}
		if s.progress {
			_ = bar.Add(1)
		}
		return nil
	})
	if s.progress {
		_ = bar.Finish()
	}

	if err := utils.FirstError(errs); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// collect walks the tree and applies the include/ignore sets
func (s *Scanner) collect() ([]candidate, error) {
	var candidates []candidate

	err := filepath.WalkDir(s.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.outDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !s.matches(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		candidates = append(candidates, candidate{
			rel:     rel,
			abs:     path,
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].rel < candidates[j].rel
	})
	return candidates, nil
}

func (s *Scanner) matches(rel string) bool {
	included := false
	for _, g := range s.include {
		if g.Match(rel) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	for _, g := range s.exclude {
		if g.Match(rel) {
			return false
		}
	}
	return true
}

// revision returns the content hash for a candidate, consulting the cache
// first when one is configured
func (s *Scanner) revision(ctx context.Context, c candidate) (string, error) {
	if s.cache == nil {
		return precache.CreateRevision(c.abs)
	}

	key := cache.StatKey(c.rel, c.size, c.modTime)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return cached, nil
	}

	revision, err := precache.CreateRevision(c.abs)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, revision); err != nil {
		// Cache failures never fail the build
		s.log.Warn().Err(err).Str("path", c.rel).Msg("revision cache write failed")
	}
	return revision, nil
}

func indexes(candidates []candidate) []int {
	out := make([]int, len(candidates))
	for i := range out {
		out[i] = i
	}
	return out
}

var _ RevisionCache = (*cache.RevisionStore)(nil)
