// Package cache remembers which file contents were already conformant so
// repeated runs over a large tree skip the rewrap engine for unchanged
// files. Records are keyed by content hash and carry the options that
// produced them; any I/O problem degrades to a cache miss.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Increment when the payload format changes.
const schemaVersion uint16 = 1

// Fingerprint captures the rewrap options a conformance verdict depends on.
// A record only counts as a hit when the fingerprint matches exactly.
type Fingerprint struct {
	MaxLength         int
	ForceTripleQuotes bool
	WrapComments      bool
	WrapDocstrings    bool
}

type payload struct {
	Schema      uint16
	Fingerprint Fingerprint
	Size        uint32
}

// Cache is a directory of msgpack records. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns the standard cache location for the application.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open initializes a cache rooted at dir.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "files"), 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(content []byte) string {
	sum := sha256.Sum256(content)
	return filepath.Join(c.dir, "files", hex.EncodeToString(sum[:])+".mp")
}

// Clean reports whether content was previously recorded as conformant
// under the same fingerprint.
func (c *Cache) Clean(content []byte, fp Fingerprint) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(content))
	if err != nil {
		return false
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return false
	}
	return p.Schema == schemaVersion && p.Fingerprint == fp
}

// MarkClean records that content is conformant under the fingerprint. The
// record is written atomically so a crashed run never leaves a torn file.
func (c *Cache) MarkClean(content []byte, fp Fingerprint) error {
	if c == nil {
		return nil
	}
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		// Absurdly large file; not worth a cache entry.
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.pathFor(content)
	f, err := os.CreateTemp(filepath.Dir(target), "tmp-*")
	if err != nil {
		return err
	}
	// Gone after a successful rename; removal only matters on failure.
	defer os.Remove(f.Name())

	p := payload{Schema: schemaVersion, Fingerprint: fp, Size: size}
	if err := msgpack.NewEncoder(f).Encode(&p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), target)
}
