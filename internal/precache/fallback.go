package precache

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
)

// versionFile is the well-known build-time version marker emitted into the
// client app directory. Its content hash serves as the fallback revision.
const versionFile = "version.json"

// CreateRevision streams the file at path through an MD5 hash and returns the
// hex digest, matching the revision format of the precache consumer.
func CreateRevision(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", domain.NewSourceReadError(path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", domain.NewSourceReadError(path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// buildFallbackEntry constructs the synthetic manifest entry for the SPA
// fallback document, deriving its revision from the client version file.
func buildFallbackEntry(layout domain.Layout) (domain.ArtifactEntry, error) {
	appDir := layout.AppDir
	if appDir == "" {
		appDir = "_app"
	}

	revision, err := CreateRevision(filepath.Join(layout.ClientOutputDir, appDir, versionFile))
	if err != nil {
		return domain.ArtifactEntry{}, err
	}

	return domain.ArtifactEntry{
		URL:      layout.Fallback,
		Revision: revision,
		Size:     0,
	}, nil
}
