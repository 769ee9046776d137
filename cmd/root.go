package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codereport-dev/codereport/cmd/add"
	"github.com/codereport-dev/codereport/cmd/check"
	htmlcmd "github.com/codereport-dev/codereport/cmd/html"
	"github.com/codereport-dev/codereport/cmd/initialize"
	"github.com/codereport-dev/codereport/cmd/list"
	"github.com/codereport-dev/codereport/cmd/remove"
	"github.com/codereport-dev/codereport/cmd/resolve"
	"github.com/codereport-dev/codereport/cmd/version"
	"github.com/codereport-dev/codereport/internal/git"
	"github.com/codereport-dev/codereport/internal/logger"
	"github.com/codereport-dev/codereport/pkg/shared/config"
	"github.com/codereport-dev/codereport/pkg/shared/errors"
)

var (
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "codereport [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Codereport is a repo-local ledger of code follow-up items.",
		Long: `Codereport tracks follow-up items ("reports") anchored to file/line ranges
in a repository, attributes them to owners via CODEOWNERS or git blame,
and gates CI on blocking or expired reports.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(
		initialize.InitCmd,
		add.AddCmd,
		list.ListCmd,
		remove.DeleteCmd,
		resolve.ResolveCmd,
		check.CheckCmd,
		htmlcmd.HTMLCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and maps command failures onto process exit
// codes.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			if !cmdErr.Silent {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			return cmdErr.ExitCode
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	cfgPath := config.AppConfigFilename
	if workDir, err := os.Getwd(); err == nil {
		// The app config sits at the repo root when we are inside a repo.
		if repoRoot, err := git.FindRepositoryRoot(workDir); err == nil {
			cfgPath = filepath.Join(repoRoot, config.AppConfigFilename)
		}
	}

	var err error
	AppConfig, err = config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load app config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l := logger.NewLogger(AppConfig, "codereport")
	initialize.Init(AppConfig, l)
	add.Init(AppConfig, l)
	list.Init(AppConfig, l)
	remove.Init(AppConfig, l)
	resolve.Init(AppConfig, l)
	check.Init(AppConfig, l)
	htmlcmd.Init(AppConfig, l)
}
