package main

import (
	"github.com/spf13/cobra"
)

var (
	configPath  string
	outputDir   string
	packageName string
	modelImport string
	workers     int
)

var rootCmd = &cobra.Command{
	Use:   "docmap-generator",
	Short: "Generate document mappers from Go models and YAML configuration",
	Long: "docmap-generator compiles verified bidirectional mapping plans between\n" +
		"Go model types and tagged wire document values, then generates the\n" +
		"marshal/unmarshal code that executes them.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "mapping.yaml", "mapper configuration file")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "parallel mapper compilations (0 = CPUs)")

	rootCmd.AddCommand(checkCmd, planCmd, genCmd)
}
