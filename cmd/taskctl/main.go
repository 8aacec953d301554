package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskboard/internal/client/dashboard"
	"taskboard/internal/client/taskapi"
	"taskboard/internal/config"
)

var Version = "dev"

type app struct {
	cfg     *config.Config
	apiURL  string
	verbose bool
	logger  *zap.Logger

	// newAPI builds the task API backend once flags are parsed.
	newAPI func(a *app) dashboard.TaskAPI
}

func main() {
	a := &app{
		cfg:    config.LoadConfig(),
		logger: zap.NewNop(),
		newAPI: httpAPI,
	}

	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage tasks on a taskboard server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !a.verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			a.logger = logger
			zap.ReplaceGlobals(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", a.cfg.APIURL, "base URL of the task API")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests and failures")

	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(addCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(deleteCmd(a))
	rootCmd.AddCommand(suggestCmd(a))
	rootCmd.AddCommand(uiCmd(a))

	return rootCmd
}

func httpAPI(a *app) dashboard.TaskAPI {
	return taskapi.New(a.apiURL, taskapi.WithLogger(a.logger))
}
