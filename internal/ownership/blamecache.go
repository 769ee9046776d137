package ownership

import (
	"encoding/json"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/files"
)

// CacheFilename is the local-only blame cache inside the data directory.
// It is never committed; init adds it to .gitignore.
const CacheFilename = ".blame-cache"

type cacheEntry struct {
	Path        string `json:"path"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Fingerprint string `json:"fingerprint"`
	Identity    string `json:"identity"`
	ResolvedAt  string `json:"resolved_at"`
}

type cacheDocument struct {
	Entries []cacheEntry `json:"entries"`
}

// BlameCache remembers resolved blame identities keyed by (path, content
// fingerprint, line range). A changed fingerprint is simply a miss; there is
// no explicit invalidation and no TTL. All I/O failures degrade silently:
// reads become misses, writes become no-ops.
type BlameCache struct {
	path   string
	logger hclog.Logger
}

// NewBlameCache creates a cache backed by the given file.
func NewBlameCache(path string, logger hclog.Logger) *BlameCache {
	return &BlameCache{
		path:   path,
		logger: logger,
	}
}

// Lookup returns the cached identity for the key, if present.
func (c *BlameCache) Lookup(path, fingerprint string, rng report.LineRange) (string, bool) {
	doc := c.load()
	for _, e := range doc.Entries {
		if e.Path == path && e.Fingerprint == fingerprint && e.Start == rng.Start && e.End == rng.End {
			return e.Identity, true
		}
	}
	return "", false
}

// Store records a resolved identity, replacing any stale entry for the same
// path and range.
func (c *BlameCache) Store(path, fingerprint string, rng report.LineRange, identity string, now time.Time) {
	doc := c.load()

	kept := doc.Entries[:0]
	for _, e := range doc.Entries {
		if e.Path == path && e.Start == rng.Start && e.End == rng.End {
			continue
		}
		kept = append(kept, e)
	}
	doc.Entries = append(kept, cacheEntry{
		Path:        path,
		Start:       rng.Start,
		End:         rng.End,
		Fingerprint: fingerprint,
		Identity:    identity,
		ResolvedAt:  now.Format(report.DateFormat),
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		c.logger.Debug("failed to serialize blame cache", "error", err)
		return
	}
	if err := files.WriteFileAtomic(c.path, data, 0644); err != nil {
		c.logger.Debug("failed to write blame cache", "error", err)
	}
}

// load reads the cache file. A missing or corrupt file is an empty cache.
func (c *BlameCache) load() cacheDocument {
	var doc cacheDocument
	data, err := os.ReadFile(c.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Debug("blame cache is corrupt, treating as empty", "path", c.path, "error", err)
		return cacheDocument{}
	}
	return doc
}
