package ownership

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/internal/report"
)

// codeownersLocations are checked in order; the first existing file wins.
var codeownersLocations = []string{
	filepath.Join(".git", "CODEOWNERS"),
	"CODEOWNERS",
	filepath.Join(".github", "CODEOWNERS"),
	filepath.Join("docs", "CODEOWNERS"),
}

// CodeownersStrategy resolves ownership from a CODEOWNERS file. Line ranges
// are irrelevant here; CODEOWNERS assigns whole paths.
type CodeownersStrategy struct {
	repoRoot string
	logger   hclog.Logger
}

// NewCodeownersStrategy creates the CODEOWNERS strategy for a repo.
func NewCodeownersStrategy(repoRoot string, logger hclog.Logger) *CodeownersStrategy {
	return &CodeownersStrategy{
		repoRoot: repoRoot,
		logger:   logger,
	}
}

func (s *CodeownersStrategy) Name() string { return "codeowners" }

// TryResolve returns the owner of the last matching CODEOWNERS rule. Later
// rules take precedence over earlier ones, matching how CODEOWNERS files are
// evaluated elsewhere.
func (s *CodeownersStrategy) TryResolve(path string, _ report.LineRange) (report.Owner, bool) {
	content, ok := s.readCodeowners()
	if !ok {
		return report.Owner{}, false
	}

	pathForward := filepath.ToSlash(path)
	lastMatch := ""
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < 2 {
			continue
		}
		pattern, owners := tokens[0], tokens[1:]
		if patternMatches(pattern, pathForward) {
			lastMatch = owners[0]
		}
	}

	if lastMatch == "" {
		return report.Owner{}, false
	}
	return report.Owner{Source: report.OwnerSourceCodeowner, Identity: lastMatch}, true
}

func (s *CodeownersStrategy) readCodeowners() (string, bool) {
	for _, loc := range codeownersLocations {
		data, err := os.ReadFile(filepath.Join(s.repoRoot, loc))
		if err == nil {
			return string(data), true
		}
	}
	return "", false
}

// patternMatches implements a pragmatic subset of CODEOWNERS matching:
// exact paths, directory prefixes and bare-name suffixes. Full glob
// semantics are not needed for attribution purposes.
func patternMatches(pattern, path string) bool {
	pattern = strings.TrimPrefix(pattern, "/")
	path = strings.TrimPrefix(path, "/")
	if pattern == "" {
		return false
	}
	if pattern == "*" || path == pattern {
		return true
	}
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern) || strings.HasPrefix(path, strings.TrimSuffix(pattern, "/"))
	}
	return strings.HasPrefix(path, pattern) ||
		strings.HasSuffix(path, pattern) ||
		strings.Contains(path, "/"+pattern)
}
