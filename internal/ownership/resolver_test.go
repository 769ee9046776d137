package ownership

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/report"
)

type fakeBlamer struct {
	hash    string
	tracked bool
	lines   []git.Line
	err     error
	calls   int
}

func (f *fakeBlamer) BlobHash(path string) (string, bool) {
	return f.hash, f.tracked
}

func (f *fakeBlamer) BlameLines(path string, start, end int) ([]git.Line, error) {
	f.calls++
	return f.lines, f.err
}

type fixedStrategy struct {
	name  string
	owner report.Owner
	ok    bool
	calls int
}

func (s *fixedStrategy) Name() string { return s.name }

func (s *fixedStrategy) TryResolve(path string, rng report.LineRange) (report.Owner, bool) {
	s.calls++
	return s.owner, s.ok
}

func authored(author string, when time.Time, n int) []git.Line {
	lines := make([]git.Line, n)
	for i := range lines {
		lines[i] = git.Line{Author: author, When: when}
	}
	return lines
}

func TestFirstStrategyAnswerWins(t *testing.T) {
	first := &fixedStrategy{
		name:  "first",
		owner: report.Owner{Source: report.OwnerSourceCodeowner, Identity: "@platform-team"},
		ok:    true,
	}
	second := &fixedStrategy{name: "second"}

	resolver := NewResolverWithStrategies(hclog.NewNullLogger(), first, second)
	owner := resolver.Resolve("src/main.go", report.LineRange{Start: 1, End: 5})

	assert.Equal(t, "@platform-team", owner.Identity)
	assert.Equal(t, report.OwnerSourceCodeowner, owner.Source)
	assert.Equal(t, 0, second.calls, "later strategies must not run once one answered")
}

func TestFallsThroughToNextStrategy(t *testing.T) {
	first := &fixedStrategy{name: "first"}
	second := &fixedStrategy{
		name:  "second",
		owner: report.Owner{Source: report.OwnerSourceGitBlame, Identity: "alice@example.com"},
		ok:    true,
	}

	resolver := NewResolverWithStrategies(hclog.NewNullLogger(), first, second)
	owner := resolver.Resolve("src/main.go", report.LineRange{Start: 1, End: 5})

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, "alice@example.com", owner.Identity)
}

func TestUnknownWhenAllStrategiesFail(t *testing.T) {
	resolver := NewResolverWithStrategies(hclog.NewNullLogger(),
		&fixedStrategy{name: "first"},
		&fixedStrategy{name: "second"},
	)

	owner := resolver.Resolve("src/main.go", report.LineRange{Start: 1, End: 5})

	assert.Equal(t, report.UnknownOwner(), owner)
}

func TestNewResolverReadsCodeownersFromClientRoot(t *testing.T) {
	repoRoot := t.TempDir()
	require.NoError(t, writeFile(filepath.Join(repoRoot, "CODEOWNERS"), "src/ @platform-team\n"))

	client := git.New(repoRoot, hclog.NewNullLogger())
	resolver := NewResolver(client, hclog.NewNullLogger())

	owner := resolver.Resolve("src/main.go", report.LineRange{Start: 1, End: 5})

	assert.Equal(t, report.OwnerSourceCodeowner, owner.Source)
	assert.Equal(t, "@platform-team", owner.Identity)
}

func TestBlameCacheHitSkipsBlame(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	rng := report.LineRange{Start: 10, End: 20}
	cache.Store("src/main.go", "abc123", rng, "bob@example.com", time.Now())

	blamer := &fakeBlamer{hash: "abc123", tracked: true}
	strategy := NewBlameStrategy(blamer, cache, hclog.NewNullLogger())

	owner, ok := strategy.TryResolve("src/main.go", rng)

	require.True(t, ok)
	assert.Equal(t, "bob@example.com", owner.Identity)
	assert.Equal(t, report.OwnerSourceGitBlame, owner.Source)
	assert.Equal(t, 0, blamer.calls, "cache hit must not invoke blame")
}

func TestBlameMissRunsOnceAndPersists(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	rng := report.LineRange{Start: 1, End: 3}

	blamer := &fakeBlamer{
		hash:    "abc123",
		tracked: true,
		lines:   authored("alice@example.com", time.Now(), 3),
	}
	strategy := NewBlameStrategy(blamer, cache, hclog.NewNullLogger())

	owner, ok := strategy.TryResolve("src/main.go", rng)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", owner.Identity)
	assert.Equal(t, 1, blamer.calls)

	// Second resolution for the same fingerprint is served from the cache.
	owner, ok = strategy.TryResolve("src/main.go", rng)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", owner.Identity)
	assert.Equal(t, 1, blamer.calls)
}

func TestChangedFingerprintIsCacheMiss(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	rng := report.LineRange{Start: 1, End: 3}
	cache.Store("src/main.go", "old-hash", rng, "stale@example.com", time.Now())

	blamer := &fakeBlamer{
		hash:    "new-hash",
		tracked: true,
		lines:   authored("fresh@example.com", time.Now(), 3),
	}
	strategy := NewBlameStrategy(blamer, cache, hclog.NewNullLogger())

	owner, ok := strategy.TryResolve("src/main.go", rng)

	require.True(t, ok)
	assert.Equal(t, "fresh@example.com", owner.Identity)
	assert.Equal(t, 1, blamer.calls)
}

func TestUntrackedFileIsBlamedButNotCached(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	rng := report.LineRange{Start: 1, End: 2}

	blamer := &fakeBlamer{
		tracked: false,
		lines:   authored("alice@example.com", time.Now(), 2),
	}
	strategy := NewBlameStrategy(blamer, cache, hclog.NewNullLogger())

	_, ok := strategy.TryResolve("scratch.go", rng)
	require.True(t, ok)

	_, hit := cache.Lookup("scratch.go", "", rng)
	assert.False(t, hit)
}

func TestBlameFailureYieldsNoAnswer(t *testing.T) {
	cache := NewBlameCache(filepath.Join(t.TempDir(), CacheFilename), hclog.NewNullLogger())
	blamer := &fakeBlamer{tracked: false, err: errors.New("object not found")}
	strategy := NewBlameStrategy(blamer, cache, hclog.NewNullLogger())

	_, ok := strategy.TryResolve("src/main.go", report.LineRange{Start: 1, End: 5})

	assert.False(t, ok)
}

func TestDominantAuthorByLineCount(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lines := append(authored("alice@example.com", when, 3), authored("bob@example.com", when, 2)...)

	assert.Equal(t, "alice@example.com", dominantAuthor(lines))
}

func TestDominantAuthorTieBreaksOnRecency(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	lines := append(authored("alice@example.com", older, 2), authored("bob@example.com", newer, 2)...)

	assert.Equal(t, "bob@example.com", dominantAuthor(lines))
}

func TestDominantAuthorIgnoresEmptyAuthors(t *testing.T) {
	assert.Equal(t, "", dominantAuthor(authored("", time.Now(), 5)))
}

func TestCorruptCacheFileIsTreatedAsEmpty(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	require.NoError(t, writeFile(cachePath, "{not json"))

	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	_, hit := cache.Lookup("src/main.go", "abc", report.LineRange{Start: 1, End: 1})
	assert.False(t, hit)

	// Store must still work, replacing the corrupt file.
	cache.Store("src/main.go", "abc", report.LineRange{Start: 1, End: 1}, "alice@example.com", time.Now())
	identity, hit := cache.Lookup("src/main.go", "abc", report.LineRange{Start: 1, End: 1})
	require.True(t, hit)
	assert.Equal(t, "alice@example.com", identity)
}

func TestStoreReplacesStaleEntryForSameRange(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), CacheFilename)
	cache := NewBlameCache(cachePath, hclog.NewNullLogger())
	rng := report.LineRange{Start: 5, End: 9}

	cache.Store("src/main.go", "hash-v1", rng, "alice@example.com", time.Now())
	cache.Store("src/main.go", "hash-v2", rng, "bob@example.com", time.Now())

	_, hit := cache.Lookup("src/main.go", "hash-v1", rng)
	assert.False(t, hit, "stale fingerprint entry must be dropped")

	identity, hit := cache.Lookup("src/main.go", "hash-v2", rng)
	require.True(t, hit)
	assert.Equal(t, "bob@example.com", identity)
}
