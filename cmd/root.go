package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/michaelpento.lv/dexroute/config"
	"github.com/michaelpento.lv/dexroute/utils"
)

type rootOptions struct {
	cfgFile string
	envFile string
	debug   bool
}

// NewRootCmd builds the dexroute command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dexroute",
		Short: "Quote and route swaps across Uniswap V2 style exchanges",
		Long: `dexroute searches a snapshot of constant-product pairs for the best
multi-hop trades between two currencies and prints the router call that
executes them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv(opts.envFile)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with DEXROUTE_* overrides")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newQuoteCmd(opts))
	rootCmd.AddCommand(newPlatformsCmd())

	return rootCmd
}

func ExecuteContext(ctx context.Context) error {
	defer utils.CleanupLogger()
	return NewRootCmd().ExecuteContext(ctx)
}

// loadConfig reads the config file and lets --debug win over the file.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Debug = true
	}
	return cfg, nil
}
