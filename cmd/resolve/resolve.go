package resolve

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
)

// Global variables for configuration
var (
	AppConfig *config.Config
	logger    hclog.Logger
)

// ResolveCmd represents the command for marking a report as resolved.
// Resolving an already-resolved report succeeds, so CI scripts can call it
// unconditionally.
var ResolveCmd = &cobra.Command{
	Use:                   "resolve <id>",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  codereport resolve CR-000012",
	Short:                 "Mark a report as resolved",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runResolveCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runResolveCommand(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewCommandError(err, 1)
	}
	repoRoot, err := git.FindRepositoryRoot(workDir)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	store := report.NewStore(repoRoot, logger)
	if err := store.Resolve(args[0]); err != nil {
		return errors.NewCommandError(err, 1)
	}

	fmt.Printf("Resolved %s\n", args[0])
	return nil
}
