package ownership

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/report"
)

// Strategy is one way of attributing a file/line range to an owner.
// Strategies are consulted in order; the first one that answers wins.
type Strategy interface {
	Name() string
	TryResolve(path string, rng report.LineRange) (report.Owner, bool)
}

// Resolver chains ownership strategies: CODEOWNERS first (intended
// ownership, authoritative when present), then blame history (actual
// authorship, cache-backed). Resolution is best-effort and never fails.
type Resolver struct {
	strategies []Strategy
	logger     hclog.Logger
}

// NewResolver builds the standard strategy chain for the client's repository.
func NewResolver(client *git.Client, logger hclog.Logger) *Resolver {
	cache := NewBlameCache(filepath.Join(client.Root(), report.DataDirName, CacheFilename), logger)
	return &Resolver{
		strategies: []Strategy{
			NewCodeownersStrategy(client.Root(), logger),
			NewBlameStrategy(client, cache, logger),
		},
		logger: logger,
	}
}

// NewResolverWithStrategies builds a Resolver over an explicit chain.
func NewResolverWithStrategies(logger hclog.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// Resolve walks the strategy chain and returns the first answer. When no
// strategy can attribute the range the owner is unknown; the caller still
// proceeds.
func (r *Resolver) Resolve(path string, rng report.LineRange) report.Owner {
	for _, s := range r.strategies {
		if owner, ok := s.TryResolve(path, rng); ok {
			r.logger.Debug("ownership resolved", "strategy", s.Name(), "path", path, "identity", owner.Identity)
			return owner
		}
	}
	r.logger.Warn("ownership could not be resolved", "path", path, "range", rng.String())
	return report.UnknownOwner()
}
