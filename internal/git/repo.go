package git

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// FindRepositoryRoot walks up from the given folder until it finds a git
// repository and returns its root.
func FindRepositoryRoot(sourceFolder string) (string, error) {
	if sourceFolder == "" {
		return "", ErrNotRepository
	}

	if absSource, err := filepath.Abs(sourceFolder); err == nil {
		sourceFolder = absSource
	}

	for {
		_, err := git.PlainOpen(sourceFolder)
		if err == nil {
			return sourceFolder, nil
		}

		// move up one level
		parent := filepath.Dir(sourceFolder)
		if parent == sourceFolder {
			break
		}
		sourceFolder = parent
	}

	return "", ErrNotRepository
}
