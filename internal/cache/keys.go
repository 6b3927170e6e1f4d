package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// revisionPrefix namespaces revision entries in the store
const revisionPrefix = "rev"

// StatKey generates a revision-cache key from a file's relative path and stat
// info. Any content change moves size or mtime, so a hit means the cached
// revision is still valid.
func StatKey(path string, size int64, modTime time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())))
	return revisionPrefix + ":" + hex.EncodeToString(sum[:])
}
