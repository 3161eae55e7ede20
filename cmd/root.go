package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/schoolrun/app"
	"github.com/kilianp07/schoolrun/config"
	"github.com/kilianp07/schoolrun/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "schoolrun",
	Short:         "School commute on-time predictor",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newService() (*app.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return app.New(cfg)
}

func closeService(svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("main").Errorf("service close: %v", err)
	}
}
