package html

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/internal/dashboard"
	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/policy"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
)

// HTMLOptions holds the flag values for the html command.
type HTMLOptions struct {
	NoOpen bool
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	htmlOptions HTMLOptions
)

// HTMLCmd represents the command for generating the HTML dashboard.
var HTMLCmd = &cobra.Command{
	Use:                   "html [--no-open]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               "  codereport html --no-open",
	Short:                 "Generate the HTML dashboard",
	Args:                  cobra.NoArgs,
	RunE:                  runHTMLCommand,
}

func init() {
	HTMLCmd.Flags().BoolVar(&htmlOptions.NoOpen, "no-open", false, "do not open the dashboard in a browser")
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runHTMLCommand(cmd *cobra.Command, args []string) error {
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
	if AppConfig.Dashboard.ExpiringSoonDays > 0 {
		evaluator.LookaheadDays = AppConfig.Dashboard.ExpiringSoonDays
	}

	indexPath, err := dashboard.Generate(repoRoot, entries, evaluator, logger)
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	fmt.Printf("Generated %s\n", indexPath)
	if !htmlOptions.NoOpen {
		if err := openBrowser(indexPath); err != nil {
			logger.Warn("could not open browser", "error", err)
		}
	}
	return nil
}
