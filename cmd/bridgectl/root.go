package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pushchain/svm-bridge/config"
	"github.com/pushchain/svm-bridge/logger"
)

const flagHome = "home"

// cliContext carries what every subcommand needs once the root has loaded it.
type cliContext struct {
	home   string
	cfg    config.Config
	logger zerolog.Logger
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bridgectl"
	}
	return filepath.Join(home, ".bridgectl")
}

func NewRootCmd() *cobra.Command {
	cliCtx := &cliContext{}

	rootCmd := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Inspect and exercise the SVM core and token bridges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cliCtx.home)
			if err != nil {
				return err
			}
			cliCtx.cfg = cfg
			cliCtx.logger = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&cliCtx.home, flagHome, defaultHome(), "directory holding config/ and the observer database")

	InitRootCmd(rootCmd, cliCtx)

	return rootCmd
}
