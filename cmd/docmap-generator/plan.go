package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/thorn-jmh/errorst"
)

var planCmd = &cobra.Command{
	Use:   "plan <packages...>",
	Short: "Compile mappers and dump the resolved plans",
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

		failed := printDiagnostics(results)

		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

		for i := range results {
			if results[i].Failed() {
				continue
			}

			fmt.Printf("--- mapper %s ---\n", results[i].Mapper)
			dumper.Dump(results[i].Plan)
		}

		if failed {
			return errorst.NewError("one or more mappers failed")
		}

		return nil
	},
}
