package check

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/policy"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
)

// Global variables for configuration
var (
	AppConfig *config.Config
	logger    hclog.Logger
)

// CheckCmd represents the CI gate. Exit code 1 when any open report is
// blocking or expired, 0 otherwise. Violations go to stderr, one line each,
// ascending by ID; CI log diffing depends on that format staying stable.
var CheckCmd = &cobra.Command{
	Use:                   "check",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  codereport check",
	Short:                 "Fail when blocking or expired open reports exist",
	Args:                  cobra.NoArgs,
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewCommandError(err, 1)
	}
	repoRoot, err := git.FindRepositoryRoot(workDir)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	cfg, err := policy.Load(repoRoot)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	store := report.NewStore(repoRoot, logger)
	entries, err := store.List(report.Filter{})
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	evaluator := policy.NewEvaluator(cfg, time.Now())
	warnUnknownTags(entries, evaluator)

	violations := evaluator.Violations(entries)
	if len(violations) == 0 {
		return nil
	}

	for i := range violations {
		v := &violations[i]
		fmt.Fprintf(os.Stderr, "%s  %s  %s  %s\n", v.ID, v.Path, v.Tag, v.Message)
	}
	return errors.NewSilentError(1)
}

// warnUnknownTags surfaces reports whose tag vanished from the config. They
// still evaluate (as low severity) rather than failing the gate outright.
func warnUnknownTags(entries []report.Report, evaluator *policy.Evaluator) {
	seen := make(map[string]bool)
	for i := range entries {
		e := evaluator.Evaluate(&entries[i])
		if !e.TagKnown && !seen[entries[i].Tag] {
			seen[entries[i].Tag] = true
			logger.Warn("report tag is not in the policy config, treating as low severity",
				"tag", entries[i].Tag, "id", entries[i].ID)
		}
	}
}
