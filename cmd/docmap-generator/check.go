package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/thorn-jmh/errorst"
)

var checkCmd = &cobra.Command{
	Use:   "check <packages...>",
	Short: "Compile every configured mapper and report diagnostics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := loadBatch(configPath, args)
		if err != nil {
			return err
		}

		results, err := compileBatch(cmd.Context(), b)
		if err != nil {
			return err
		}

		if printDiagnostics(results) {
			return errorst.NewError("one or more mappers failed")
		}

		ok := color.New(color.FgGreen).Sprint("ok")
		for i := range results {
			fmt.Printf("%s: mapper %s (%d properties)\n",
				ok, results[i].Mapper, len(results[i].Plan.Properties))
		}

		return nil
	},
}
