package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fxmlkit/fxc"
)

func newCompileCmd() *cobra.Command {
	var (
		outDir     string
		outPackage string
		typePaths  []string
		implements []string
		preserve   []string
		jobs       int
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile markup files to Java classes",
		Long: `Compile markup files to Java classes.

Each input document becomes one .java file in the output directory, named
after the generated class. Documents compile independently: a failing
document is reported and the rest are still written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("package") {
				outPackage = viper.GetString("package")
			}
			if !cmd.Flags().Changed("out") {
				if dir := viper.GetString("out"); dir != "" {
					outDir = dir
				}
			}
			if !cmd.Flags().Changed("implements") {
				implements = viper.GetStringSlice("implements")
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = viper.GetInt("jobs")
			}

			reg, err := loadRegistry(typePaths)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}

			opts := fxc.Options{
				Package:          outPackage,
				Implements:       implements,
				PreserveIdentity: preserveOption(preserve, cmd.Flags().Changed("preserve-identity")),
				Jobs:             jobs,
				Timeout:          timeout,
			}

			failed := 0
			for _, result := range fxc.CompileAll(context.Background(), reg, args, opts) {
				if result.Err != nil {
					fmt.Fprintln(os.Stderr, result.Err)
					failed++
					continue
				}
				target := filepath.Join(outDir, result.ClassName+".java")
				if err := os.WriteFile(target, result.Source, 0644); err != nil {
					fmt.Fprintf(os.Stderr, "write %s: %v\n", target, err)
					failed++
					continue
				}
				fmt.Println(target)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory for generated sources")
	cmd.Flags().StringVarP(&outPackage, "package", "p", "", "package of the generated classes")
	cmd.Flags().StringSliceVarP(&typePaths, "types", "t", nil, "class metadata files to load")
	cmd.Flags().StringSliceVar(&implements, "implements", nil, "extra interfaces the generated classes implement")
	cmd.Flags().StringSliceVar(&preserve, "preserve-identity", nil, "types exempt from node deduplication")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "concurrent compilations (0 = one per CPU)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-document compilation timeout (0 = none)")

	return cmd
}

// preserveOption keeps nil meaning "use the default list" while letting an
// explicit empty flag disable preservation entirely.
func preserveOption(preserve []string, changed bool) []string {
	if !changed {
		if configured := viper.GetStringSlice("preserve-identity"); configured != nil {
			return configured
		}
		return nil
	}
	if preserve == nil {
		return []string{}
	}
	return preserve
}
