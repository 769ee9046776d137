package git

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/hashicorp/go-hclog"
)

// Client answers authorship questions about the working tree of one local
// repository. It only reads; it never mutates the repository.
type Client struct {
	repoRoot string
	logger   hclog.Logger
}

// Line is one line of blame output for a file at HEAD.
type Line struct {
	// Author is the committer identity, normally an email address.
	Author string
	// When is the commit timestamp of the commit that introduced the line.
	When time.Time
}

// New initializes a Client for the repository rooted at repoRoot.
func New(repoRoot string, logger hclog.Logger) *Client {
	return &Client{
		repoRoot: repoRoot,
		logger:   logger,
	}
}

// Root returns the repository root the client was opened on.
func (c *Client) Root() string {
	return c.repoRoot
}

// BlobHash returns the object hash of path in the tree at HEAD. The hash
// changes whenever the committed content of the file changes, which makes it
// a stable fingerprint for cache keys. The boolean is false when the file is
// untracked or the repository has no commits.
func (c *Client) BlobHash(path string) (string, bool) {
	commit, err := c.headCommit()
	if err != nil {
		c.logger.Debug("no HEAD commit for fingerprint", "path", path, "error", err)
		return "", false
	}

	tree, err := commit.Tree()
	if err != nil {
		c.logger.Debug("failed to read HEAD tree", "error", err)
		return "", false
	}

	file, err := tree.File(filepath.ToSlash(path))
	if err != nil {
		c.logger.Debug("path not in HEAD tree", "path", path)
		return "", false
	}

	return file.Hash.String(), true
}

// BlameLines runs blame for path at HEAD and returns authorship for the
// inclusive 1-based line range [start, end]. Lines beyond the end of the file
// are ignored rather than treated as an error.
func (c *Client) BlameLines(path string, start, end int) ([]Line, error) {
	commit, err := c.headCommit()
	if err != nil {
		return nil, err
	}

	result, err := git.Blame(commit, filepath.ToSlash(path))
	if err != nil {
		return nil, fmt.Errorf("blame %q: %w", path, err)
	}

	var lines []Line
	for i := start; i <= end && i <= len(result.Lines); i++ {
		bl := result.Lines[i-1]
		lines = append(lines, Line{
			Author: bl.Author,
			When:   bl.Date,
		})
	}
	return lines, nil
}

func (c *Client) headCommit() (*object.Commit, error) {
	repo, err := git.PlainOpen(c.repoRoot)
	if err != nil {
		return nil, ErrNotRepository
	}

	head, err := repo.Head()
	if err != nil {
		return nil, ErrNoHead
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD commit: %w", err)
	}
	return commit, nil
}
