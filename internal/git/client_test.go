package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a repository with one committed file and returns its
// root. The file has three lines, all authored by alice.
func initTestRepo(t *testing.T) string {
	t.Helper()
	repoRoot := t.TempDir()

	repo, err := gogit.PlainInit(repoRoot, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "main.go"),
		[]byte("package main\n\nfunc main() {}\n"), 0644))

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("main.go")
	require.NoError(t, err)

	_, err = worktree.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Alice",
			Email: "alice@example.com",
			When:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	return repoRoot
}

func TestFindRepositoryRootFromSubfolder(t *testing.T) {
	repoRoot := initTestRepo(t)
	nested := filepath.Join(repoRoot, "internal", "deep")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindRepositoryRoot(nested)

	require.NoError(t, err)
	assert.Equal(t, repoRoot, found)
}

func TestFindRepositoryRootOutsideRepository(t *testing.T) {
	_, err := FindRepositoryRoot(t.TempDir())

	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestFindRepositoryRootEmptyPath(t *testing.T) {
	_, err := FindRepositoryRoot("")

	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestBlobHashTrackedFile(t *testing.T) {
	repoRoot := initTestRepo(t)
	client := New(repoRoot, hclog.NewNullLogger())

	hash, tracked := client.BlobHash("main.go")

	require.True(t, tracked)
	assert.NotEmpty(t, hash)
}

func TestBlobHashUntrackedFile(t *testing.T) {
	repoRoot := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "scratch.go"), []byte("package scratch\n"), 0644))
	client := New(repoRoot, hclog.NewNullLogger())

	_, tracked := client.BlobHash("scratch.go")

	assert.False(t, tracked)
}

func TestBlobHashChangesWithContent(t *testing.T) {
	repoRoot := initTestRepo(t)
	client := New(repoRoot, hclog.NewNullLogger())
	before, tracked := client.BlobHash("main.go")
	require.True(t, tracked)

	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "main.go"),
		[]byte("package main\n\nfunc main() { println(1) }\n"), 0644))

	repo, err := gogit.PlainOpen(repoRoot)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("main.go")
	require.NoError(t, err)
	_, err = worktree.Commit("change main", &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Alice",
			Email: "alice@example.com",
			When:  time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	after, tracked := client.BlobHash("main.go")
	require.True(t, tracked)
	assert.NotEqual(t, before, after)
}

func TestBlameLinesReportsAuthor(t *testing.T) {
	repoRoot := initTestRepo(t)
	client := New(repoRoot, hclog.NewNullLogger())

	lines, err := client.BlameLines("main.go", 1, 3)

	require.NoError(t, err)
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, "alice@example.com", line.Author)
	}
}

func TestBlameLinesClampsToFileLength(t *testing.T) {
	repoRoot := initTestRepo(t)
	client := New(repoRoot, hclog.NewNullLogger())

	lines, err := client.BlameLines("main.go", 2, 100)

	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestBlameLinesMissingFile(t *testing.T) {
	repoRoot := initTestRepo(t)
	client := New(repoRoot, hclog.NewNullLogger())

	_, err := client.BlameLines("does-not-exist.go", 1, 1)

	assert.Error(t, err)
}

func TestBlameLinesNoCommits(t *testing.T) {
	repoRoot := t.TempDir()
	_, err := gogit.PlainInit(repoRoot, false)
	require.NoError(t, err)
	client := New(repoRoot, hclog.NewNullLogger())

	_, err = client.BlameLines("main.go", 1, 1)

	assert.ErrorIs(t, err, ErrNoHead)
}
