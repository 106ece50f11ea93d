// Package main provides the CLI entrypoint for docmap-generator.
//
// docmap-generator is a codegen tool that:
//   - Parses Go packages (go/types) to snapshot model structs
//   - Resolves verified bidirectional mapping plans against YAML configuration
//   - Generates marshal/unmarshal functions over tagged wire document values
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
