package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/fxmlkit/fxc/introspect"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "fxc",
		Short: "Compile declarative UI markup to Java source",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)
			return readConfig()
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newTypesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig loads optional defaults from fxc.yaml in the working directory
// and FXC_* environment variables. Flags always win.
func readConfig() error {
	viper.SetConfigName("fxc")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("fxc")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadRegistry builds the type registry from the built-in table plus any
// metadata files given on the command line or in the config.
func loadRegistry(paths []string) (*introspect.Registry, error) {
	if len(paths) == 0 {
		paths = viper.GetStringSlice("types")
	}
	reg := introspect.Builtins()
	for _, path := range paths {
		if err := reg.LoadFile(path); err != nil {
			return nil, fmt.Errorf("load types from %s: %w", path, err)
		}
	}
	return reg, nil
}
