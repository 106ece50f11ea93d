package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thorn-jmh/errorst"

	"docmap-generator/internal/emit"
)

var genCmd = &cobra.Command{
	Use:   "gen <packages...>",
	Short: "Compile mappers and generate their Go source files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelImport == "" {
			return errorst.NewError("--model-import is required for gen")
		}

		b, err := loadBatch(configPath, args)
		if err != nil {
			return err
		}

		results, err := compileBatch(cmd.Context(), b)
		if err != nil {
			return err
		}

		if printDiagnostics(results) {
			return errorst.NewError("one or more mappers failed; nothing written")
		}

		emitter := emit.NewEmitter(emit.Options{
			Package:     packageName,
			ModelImport: modelImport,
		})

		files := make([]emit.GeneratedFile, 0, len(results))

		for i := range results {
			model := b.loader.Lookup(results[i].Model)

			file, err := emitter.Emit(results[i].Rendered, model)
			if err != nil {
				return errorst.Wrap(err, "emitting mapper %s", results[i].Mapper)
			}

			files = append(files, file)
		}

		if err := emit.WriteFiles(files, outputDir); err != nil {
			return err
		}

		for _, f := range files {
			fmt.Printf("wrote %s/%s\n", outputDir, f.Filename)
		}

		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&outputDir, "output", "o", "./mappers", "output directory")
	genCmd.Flags().StringVarP(&packageName, "package", "p", "mappers", "generated package name")
	genCmd.Flags().StringVarP(&modelImport, "model-import", "m", "", "import path of the model package")
}
