package git

import "errors"

// Repo errors
var (
	ErrNotRepository = errors.New("not inside a git repository")
	ErrNoHead        = errors.New("repository has no commits")
)
