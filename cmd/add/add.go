package add

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/ownership"
	"github.com/codereport-dev/codereport/internal/policy"
	"github.com/codereport-dev/codereport/internal/report"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
)

// AddOptions holds the flag values for the add command.
type AddOptions struct {
	Tag     string
	Message string
}

// Global variables for configuration and command arguments
var (
	AppConfig  *config.Config
	logger     hclog.Logger
	addOptions AddOptions

	exampleAddUsage = `  # Track a refactoring follow-up on lines 10-20
  codereport add src/parser.go:10-20 --tag refactor --message "split the lexer out"

  # Track a blocking issue
  codereport add internal/auth/session.go:88-104 --tag critical --message "token never expires"`
)

// AddCmd represents the command for adding a new report.
var AddCmd = &cobra.Command{
	Use:                   "add <path>:<start>-<end> --tag TAG --message TEXT",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleAddUsage,
	Short:                 "Add a new report for a file/line range",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runAddCommand,
}

func init() {
	AddCmd.Flags().StringVarP(&addOptions.Tag, "tag", "t", "", "tag classifying the report (e.g. todo, refactor, buggy, critical)")
	AddCmd.Flags().StringVarP(&addOptions.Message, "message", "m", "", "free-text description of the follow-up")
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	logger = l
}

func runAddCommand(cmd *cobra.Command, args []string) error {
	if err := validateAddArgs(&addOptions, args); err != nil {
		return errors.NewCommandError(fmt.Errorf("invalid add arguments: %w", err), 1)
	}

	path, rng, err := parseLocation(args[0])
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

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

	client := git.New(repoRoot, logger)
	resolver := ownership.NewResolver(client, logger)
	store := report.NewStore(repoRoot, logger)

	rep, err := store.Create(report.CreateParams{
		Path:    path,
		Range:   rng,
		Tag:     addOptions.Tag,
		Message: addOptions.Message,
	}, cfg, resolver, time.Now())
	if err != nil {
		return errors.NewCommandError(err, 1)
	}

	fmt.Printf("Added %s %s\n", rep.ID, rep.Path)
	return nil
}
