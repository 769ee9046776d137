package remove

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

// DeleteCmd represents the command for deleting a report. The ID of a
// deleted report is never reassigned.
var DeleteCmd = &cobra.Command{
	Use:                   "delete <id>",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  codereport delete CR-000012",
	Short:                 "Delete a report by ID",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runDeleteCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runDeleteCommand(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewCommandError(err, 1)
	}
	repoRoot, err := git.FindRepositoryRoot(workDir)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	store := report.NewStore(repoRoot, logger)
	if err := store.Delete(args[0]); err != nil {
		return errors.NewCommandError(err, 1)
	}

	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
