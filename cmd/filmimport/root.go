package main

import (
	"github.com/spf13/cobra"
)

const defaultOutputDir = "public/profiles"

func newRootCommand() *cobra.Command {
	var outputFlag string

	rootCmd := &cobra.Command{
		Use:           "filmimport <input_dir>",
		Short:         "Convert film stock measurements into JSON profiles",
		Long:          "filmimport walks input_dir for film stock folders (any folder holding a density_curve_r.csv)\nand writes one <stock>.json profile per stock into the output directory.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := runOptions{
				inputDir: args[0],
				out:      cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("output") {
				opts.outputDir = outputFlag
			}
			return runImport(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVar(&outputFlag, "output", defaultOutputDir, "Output directory for JSON profiles")
	return rootCmd
}
