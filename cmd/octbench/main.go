package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/octet/derive"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "octbench",
		Short:         "Benchmark and inspect octet wire encodings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env.local is loaded first so it wins over .env; both are
			// optional and never override real environment variables.
			_ = godotenv.Load(".env.local")
			_ = godotenv.Load(".env")

			viper.SetEnvPrefix("OCTBENCH")
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			viper.AutomaticEnv()
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			if viper.GetBool("verbose") {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				derive.SetLogger(logger)
			}
			return nil
		},
	}

	root.PersistentFlags().Bool("verbose", false, "log derive plan compilation")
	root.AddCommand(newBenchCmd())
	root.AddCommand(newInspectCmd())
	return root
}
