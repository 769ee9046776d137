package initialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/policy"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
	"github.com/codereport-dev/codereport/pkg/shared/files"
)

// Global variables for configuration
var (
	AppConfig *config.Config
	logger    hclog.Logger
)

// InitCmd represents the command for initializing the ledger in a repo.
var InitCmd = &cobra.Command{
	Use:                   "init",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  codereport init",
	Short:                 "Initialize .codereports/ with the default config",
	Args:                  cobra.NoArgs,
	RunE:                  runInitCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runInitCommand(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return errors.NewCommandError(err, 1)
	}
	repoRoot, err := git.FindRepositoryRoot(workDir)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	dataDir := filepath.Join(repoRoot, report.DataDirName)
	if err := files.CreateFolderIfNotExists(dataDir); err != nil {
		return errors.NewCommandError(err, 1)
	}

	if err := ensureRootGitignore(repoRoot); err != nil {
		return errors.NewCommandError(fmt.Errorf("failed to update repo root .gitignore: %w", err), 1)
	}

	if _, err := os.Stat(policy.ConfigPath(repoRoot)); os.IsNotExist(err) {
		if err := policy.WriteDefault(repoRoot); err != nil {
			return errors.NewCommandError(err, 1)
		}
	}

	fmt.Printf("Initialized %s in %s\n", report.DataDirName, repoRoot)
	return nil
}
