package precache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
)

func urls(entries []domain.ArtifactEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.URL
	}
	return out
}

func TestTransform_StagePrefixes(t *testing.T) {
	layout := domain.Layout{Base: "/", TrailingSlash: domain.TrailingSlashDefault}

	entries := []domain.ArtifactEntry{
		{URL: "client/_app/immutable/chunk.js", Revision: "r1", Size: 10},
		{URL: "prerendered/dependencies/about/__data.json", Revision: "r2", Size: 20},
		{URL: "prerendered/pages/about.html", Revision: "r3", Size: 30},
		{URL: "prerendered/pages/docs/index.html", Revision: "r4", Size: 40},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"_app/immutable/chunk.js",
		"about/__data.json",
		"about",
		"docs",
	}, urls(m.Entries))

	// Revisions and sizes carry through untouched
	assert.Equal(t, "r3", m.Entries[2].Revision)
	assert.Equal(t, int64(30), m.Entries[2].Size)
}

func TestTransform_DefaultFallbackDropped(t *testing.T) {
	layout := domain.Layout{Base: "/"}

	entries := []domain.ArtifactEntry{
		{URL: "client/_app/x.js", Revision: "a"},
		{URL: "prerendered/pages/about.html", Revision: "b"},
		{URL: "prerendered/fallback.html", Revision: "c"},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"_app/x.js", "about"}, urls(m.Entries))
}

func TestTransform_FallbackOverrideKept(t *testing.T) {
	layout := domain.Layout{Base: "/", Fallback: "404.html"}

	entries := []domain.ArtifactEntry{
		{URL: "prerendered/fallback.html", Revision: "c", Size: 5},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "404", m.Entries[0].URL)
	assert.Equal(t, "c", m.Entries[0].Revision)
}

func TestTransform_RootIndexMapsToBase(t *testing.T) {
	for _, base := range []string{"/", "/app/", "/nested/base/"} {
		layout := domain.Layout{Base: base}
		entries := []domain.ArtifactEntry{
			{URL: "prerendered/pages/index.html", Revision: "r"},
		}

		m, err := Transform(context.Background(), entries, layout)
		require.NoError(t, err)
		require.Len(t, m.Entries, 1)
		assert.Equal(t, base, m.Entries[0].URL)
	}
}

func TestTransform_TrailingSlashAlways(t *testing.T) {
	layout := domain.Layout{Base: "/", TrailingSlash: domain.TrailingSlashAlways}

	entries := []domain.ArtifactEntry{
		{URL: "prerendered/pages/index.html"},
		{URL: "prerendered/pages/about.html"},
		{URL: "prerendered/pages/docs/index.html"},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "about/", "docs/"}, urls(m.Entries))

	for _, u := range urls(m.Entries)[1:] {
		assert.True(t, len(u) > 0 && u[len(u)-1] == '/')
	}
}

// An artifact path matching none of the stage rules passes through with its
// URL unchanged. Kept deliberately: see the transform's warning output.
func TestTransform_UnmatchedPassthrough(t *testing.T) {
	layout := domain.Layout{Base: "/"}

	entries := []domain.ArtifactEntry{
		{URL: "unknown/data.bin", Revision: "r", Size: 1},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "unknown/data.bin", m.Entries[0].URL)
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "unknown/data.bin")
}

func TestTransform_WebManifestFiltered(t *testing.T) {
	layout := domain.Layout{Base: "/", WebManifestName: "manifest.webmanifest"}

	entries := []domain.ArtifactEntry{
		{URL: "client/manifest.webmanifest", Revision: "r1"},
		{URL: "client/_app/x.js", Revision: "r2"},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	assert.Equal(t, []string{"_app/x.js"}, urls(m.Entries))
}

func TestTransform_SPACustomFallback(t *testing.T) {
	layout := domain.Layout{
		Base:     "/",
		Fallback: "404.html",
		SPA: domain.SPA{
			Enabled:         true,
			FallbackMapping: "/offline",
			FallbackRevision: func(ctx context.Context) (string, error) {
				return "abc", nil
			},
		},
	}

	entries := []domain.ArtifactEntry{
		{URL: "client/_app/x.js", Revision: "r1", Size: 10},
	}

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	require.Len(t, m.Entries, 2)
	last := m.Entries[len(m.Entries)-1]
	assert.Equal(t, domain.ArtifactEntry{URL: "/offline", Revision: "abc", Size: 0}, last)
}

func TestTransform_SPACustomFallbackSupplierError(t *testing.T) {
	supplierErr := errors.New("revision lookup failed")
	layout := domain.Layout{
		Base:     "/",
		Fallback: "404.html",
		SPA: domain.SPA{
			Enabled:         true,
			FallbackMapping: "/offline",
			FallbackRevision: func(ctx context.Context) (string, error) {
				return "", supplierErr
			},
		},
	}

	m, err := Transform(context.Background(), nil, layout)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, supplierErr)
}

func TestTransform_SPASimpleFallback(t *testing.T) {
	clientDir := t.TempDir()
	appDir := filepath.Join(clientDir, "_app")
	require.NoError(t, os.MkdirAll(appDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "version.json"),
		[]byte(`{"version":"1721923498123"}`), 0644))

	layout := domain.Layout{
		Base:            "/",
		Fallback:        "404.html",
		SPA:             domain.SPA{Enabled: true},
		ClientOutputDir: clientDir,
	}

	m, err := Transform(context.Background(), nil, layout)
	require.NoError(t, err)

	require.Len(t, m.Entries, 1)
	entry := m.Entries[0]
	assert.Equal(t, "404.html", entry.URL)
	assert.Equal(t, int64(0), entry.Size)
	assert.Len(t, entry.Revision, 32) // md5 hex digest

	// Same content, same revision
	again, err := Transform(context.Background(), nil, layout)
	require.NoError(t, err)
	assert.Equal(t, entry.Revision, again.Entries[0].Revision)
}

func TestTransform_SPASimpleFallbackReadFailure(t *testing.T) {
	layout := domain.Layout{
		Base:            "/",
		Fallback:        "404.html",
		SPA:             domain.SPA{Enabled: true},
		ClientOutputDir: filepath.Join(t.TempDir(), "does-not-exist"),
	}

	entries := []domain.ArtifactEntry{
		{URL: "client/_app/x.js", Revision: "r1"},
	}

	m, err := Transform(context.Background(), entries, layout)

	// No partial manifest on hash failure
	assert.Nil(t, m)
	var readErr *domain.SourceReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestTransform_SPAOffIsPureRewrite(t *testing.T) {
	layout := domain.Layout{Base: "/"}

	entries := []domain.ArtifactEntry{
		{URL: "client/a.js"},
		{URL: "client/b.css"},
		{URL: "prerendered/pages/x.html"},
	}
	input := make([]domain.ArtifactEntry, len(entries))
	copy(input, entries)

	m, err := Transform(context.Background(), entries, layout)
	require.NoError(t, err)

	assert.Len(t, m.Entries, len(entries))
	// Input slice is left alone
	assert.Equal(t, input, entries)
}

func TestCreateRevision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	rev, err := CreateRevision(path)
	require.NoError(t, err)
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", rev)

	_, err = CreateRevision(filepath.Join(t.TempDir(), "missing"))
	var readErr *domain.SourceReadError
	assert.ErrorAs(t, err, &readErr)
}
