package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fxmlkit/fxc/format"
)

func newTypesCmd() *cobra.Command {
	var typePaths []string

	cmd := &cobra.Command{
		Use:   "types [name...]",
		Short: "List registered types or show their members",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(typePaths)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, name := range reg.Names() {
					fmt.Println(name)
				}
				return nil
			}

			for _, name := range args {
				class, ok := reg.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown type: %s", name)
				}
				enc := format.NewLineEncoder(os.Stdout)
				if err := enc.Encode(class); err != nil {
					return fmt.Errorf("encode %s: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&typePaths, "types", "t", nil, "class metadata files to load")

	return cmd
}
