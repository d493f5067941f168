package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fxmlkit/fxc"
)

func newDumpCmd() *cobra.Command {
	var (
		stage     string
		typePaths []string
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump an intermediate representation of a markup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(typePaths)
			if err != nil {
				return err
			}
			if err := fxc.Dump(reg, args[0], stage, fxc.Options{}, os.Stdout); err != nil {
				return err
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&stage, "stage", "s", "graph", "pipeline stage to dump (raw, graph)")
	cmd.Flags().StringSliceVarP(&typePaths, "types", "t", nil, "class metadata files to load")

	return cmd
}
