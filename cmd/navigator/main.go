// Command navigator builds meeting briefings from scraped profile data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrypster/navigator/internal/config"
	"github.com/scrypster/navigator/internal/logging"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "navigator",
		Short:         "Navigator - meeting briefings from public profile activity",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (env vars override it)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newBriefCmd(opts))
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newCacheCmd(opts))
	return root
}

// load reads configuration and initializes logging.
func (o *globalOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfigFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	logging.Init(cfg.Logging.Level, os.Stderr)
	return cfg, nil
}
