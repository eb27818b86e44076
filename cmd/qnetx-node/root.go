package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VanDung-dev/QNetX-Engine/api"
	"github.com/VanDung-dev/QNetX-Engine/config"
	"github.com/VanDung-dev/QNetX-Engine/logging"
)

// app carries the loaded configuration and logger to subcommands.
type app struct {
	cfgFile string
	config  *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "qnetx-node",
		Short:         "QNetX node: superposed routing and entangled channel mesh",
		Version:       api.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (YAML); QNETX_* variables override it")

	root.AddCommand(
		newRunCmd(a),
		newRouteCmd(a),
		newConnectCmd(a),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// load reads and validates the configuration and builds the logger.
func (a *app) load() error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.config = cfg
	a.logger = logging.New(cfg.Logger)
	return nil
}

func (a *app) close() {
	if a.logger != nil {
		logging.Sync(a.logger)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qnetx-node v%s\n", api.Version)
		},
	}
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "qnetx.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteFile(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
