package list

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

// ListOptions holds the flag values for the list command.
type ListOptions struct {
	Tag    string
	Status string
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	listOptions ListOptions

	exampleListUsage = `  # List all reports
  codereport list

  # List open reports with a specific tag
  codereport list --tag critical --status open`
)

// ListCmd represents the command for listing reports.
var ListCmd = &cobra.Command{
	Use:                   "list [--tag TAG] [--status open|resolved]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "List reports with optional filters",
	Args:                  cobra.NoArgs,
	RunE:                  runListCommand,
}

func init() {
	ListCmd.Flags().StringVar(&listOptions.Tag, "tag", "", "only show reports with this tag")
	ListCmd.Flags().StringVar(&listOptions.Status, "status", "", "only show reports with this status (open or resolved)")
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runListCommand(cmd *cobra.Command, args []string) error {
	if err := validateListArgs(&listOptions); err != nil {
		return errors.NewCommandError(fmt.Errorf("invalid list arguments: %w", err), 1)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewCommandError(err, 1)
	}
	repoRoot, err := git.FindRepositoryRoot(workDir)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	store := report.NewStore(repoRoot, logger)
	entries, err := store.List(report.Filter{
		Tag:    listOptions.Tag,
		Status: report.Status(listOptions.Status),
	})
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	for i := range entries {
		e := &entries[i]
		fmt.Printf("%s  %s  %s  %s  %s  %s\n", e.ID, e.Path, e.Range, e.Tag, e.Status, e.Message)
	}
	return nil
}
