package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vite-pwa/sveltekit-precache/internal/cache"
	"github.com/vite-pwa/sveltekit-precache/internal/domain"
	"github.com/vite-pwa/sveltekit-precache/internal/policy"
)

// writeTree lays out a minimal adapter-static build output
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func defaultBuild(t *testing.T) string {
	return writeTree(t, map[string]string{
		"client/_app/immutable/chunk.js": "console.log(1)",
		"client/_app/app.css":            "body{}",
		"client/favicon.png":             "png",
		"client/robots.txt":              "User-agent: *",
		"prerendered/pages/index.html":   "<html>home</html>",
		"prerendered/pages/about.html":   "<html>about</html>",
		"server/index.js":                "export {}",
	})
}

func TestScanner_Scan(t *testing.T) {
	outDir := defaultBuild(t)

	s, err := New(Options{
		OutDir:   outDir,
		Patterns: policy.BuildPatterns(nil),
		Ignores:  policy.BuildIgnores(nil),
		Workers:  4,
	})
	require.NoError(t, err)

	entries, err := s.Scan(context.Background())
	require.NoError(t, err)

	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = e.URL
	}

	// Sorted by relative path; robots.txt and server stage excluded
	assert.Equal(t, []string{
		"client/_app/app.css",
		"client/_app/immutable/chunk.js",
		"client/favicon.png",
		"prerendered/pages/about.html",
		"prerendered/pages/index.html",
	}, urls)

	for _, e := range entries {
		assert.Len(t, e.Revision, 32)
		assert.Greater(t, e.Size, int64(0))
	}
}

func TestScanner_MissingOutDir(t *testing.T) {
	s, err := New(Options{
		OutDir:   filepath.Join(t.TempDir(), "nope"),
		Patterns: policy.BuildPatterns(nil),
	})
	require.NoError(t, err)

	_, err = s.Scan(context.Background())
	assert.ErrorIs(t, err, domain.ErrOutputDirMissing)
}

func TestScanner_InvalidPattern(t *testing.T) {
	_, err := New(Options{
		OutDir:   t.TempDir(),
		Patterns: []string{"client/[.js"},
	})

	var patternErr *domain.PatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "client/[.js", patternErr.Pattern)
}

func TestScanner_RevisionCache(t *testing.T) {
	outDir := writeTree(t, map[string]string{
		"client/a.js": "let a = 1",
	})

	store, err := cache.NewRevisionStore(cache.Options{InMemory: true, TTL: time.Hour})
	require.NoError(t, err)
	defer store.Close()

	s, err := New(Options{
		OutDir:   outDir,
		Patterns: []string{"client/**/*.js"},
		Cache:    store,
	})
	require.NoError(t, err)

	first, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, int64(1), store.Size())

	// Second scan hits the cache and yields identical revisions
	second, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGlobstarVariants(t *testing.T) {
	assert.Equal(t, []string{"client/*.png"}, globstarVariants("client/*.png"))
	assert.Equal(t,
		[]string{"client/**/*.png", "client/*.png"},
		globstarVariants("client/**/*.png"))
	assert.Len(t, globstarVariants("a/**/b/**/c"), 4)
}

func TestScanner_StableAcrossRuns(t *testing.T) {
	outDir := defaultBuild(t)

	s, err := New(Options{
		OutDir:   outDir,
		Patterns: policy.BuildPatterns(nil),
		Ignores:  policy.BuildIgnores(nil),
		Workers:  8,
	})
	require.NoError(t, err)

	a, err := s.Scan(context.Background())
	require.NoError(t, err)
	b, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
