package ownership

import (
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/report"
)

// Blamer is the version-control capability the blame strategy needs:
// a content fingerprint and per-line authorship at the current commit.
type Blamer interface {
	BlobHash(path string) (string, bool)
	BlameLines(path string, start, end int) ([]git.Line, error)
}

// BlameStrategy resolves ownership from git blame, consulting the cache
// first so unchanged files never trigger a second blame run.
type BlameStrategy struct {
	git    Blamer
	cache  *BlameCache
	logger hclog.Logger
}

// NewBlameStrategy creates the blame strategy.
func NewBlameStrategy(blamer Blamer, cache *BlameCache, logger hclog.Logger) *BlameStrategy {
	return &BlameStrategy{
		git:    blamer,
		cache:  cache,
		logger: logger,
	}
}

func (s *BlameStrategy) Name() string { return "git-blame" }

// TryResolve attributes the range to the author responsible for the most
// lines within it. A cache hit for the current fingerprint short-circuits
// the blame run entirely. Untracked files (no fingerprint) are blamed but
// never cached, since there is no stable key for them.
func (s *BlameStrategy) TryResolve(path string, rng report.LineRange) (report.Owner, bool) {
	fingerprint, tracked := s.git.BlobHash(path)
	if tracked {
		if identity, hit := s.cache.Lookup(path, fingerprint, rng); hit {
			return report.Owner{Source: report.OwnerSourceGitBlame, Identity: identity}, true
		}
	}

	lines, err := s.git.BlameLines(path, rng.Start, rng.End)
	if err != nil {
		s.logger.Debug("blame failed", "path", path, "error", err)
		return report.Owner{}, false
	}

	identity := dominantAuthor(lines)
	if identity == "" {
		return report.Owner{}, false
	}

	if tracked {
		s.cache.Store(path, fingerprint, rng, identity, time.Now())
	}
	return report.Owner{Source: report.OwnerSourceGitBlame, Identity: identity}, true
}

// dominantAuthor picks the author owning the greatest number of lines, with
// ties broken by the most recent commit timestamp among the tied authors.
func dominantAuthor(lines []git.Line) string {
	counts := make(map[string]int)
	latest := make(map[string]time.Time)
	for _, l := range lines {
		if l.Author == "" {
			continue
		}
		counts[l.Author]++
		if l.When.After(latest[l.Author]) {
			latest[l.Author] = l.When
		}
	}

	best := ""
	for author, n := range counts {
		if best == "" {
			best = author
			continue
		}
		switch {
		case n > counts[best]:
			best = author
		case n == counts[best] && latest[author].After(latest[best]):
			best = author
		}
	}
	return best
}
