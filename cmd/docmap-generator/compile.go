package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/thorn-jmh/errorst"

	"docmap-generator/internal/analyze"
	"docmap-generator/internal/common"
	"docmap-generator/internal/config"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/internal/pipeline"
)

// batch is one loaded compilation input: the configured mappers plus the
// loader that resolved their model types.
type batch struct {
	requests []pipeline.Request
	loader   *analyze.Loader
}

// loadBatch loads the configuration file and the Go packages named as
// arguments, then pairs every configured mapper with its model snapshot.
func loadBatch(configPath string, patterns []string) (*batch, error) {
	f, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	if common.IsEmpty(f.Mappers) {
		return nil, errorst.NewError("configuration %s declares no mappers", configPath)
	}

	loader := analyze.NewLoader()

	if _, err := loader.LoadPackages(patterns...); err != nil {
		return nil, errorst.Wrap(err, "loading model packages")
	}

	b := &batch{loader: loader}

	for i := range f.Mappers {
		mc := &f.Mappers[i]

		id := parseModelID(mc.Model)

		t := loader.Lookup(id)
		if t == nil {
			return nil, errorst.NewError(
				"[%s] mapper %q: model type %s not found in loaded packages",
				diagnostic.CodeNoMapperModel, mc.Name, mc.Model)
		}

		b.requests = append(b.requests, pipeline.Request{Model: t, Config: mc})
	}

	return b, nil
}

// parseModelID splits "pkg.Type" into a TypeID; a bare name has no namespace.
func parseModelID(model string) analyze.TypeID {
	idx := strings.LastIndex(model, ".")
	if idx < 0 {
		return analyze.TypeID{Name: model}
	}

	return analyze.TypeID{Namespace: model[:idx], Name: model[idx+1:]}
}

func compileBatch(ctx context.Context, b *batch) ([]pipeline.Result, error) {
	return pipeline.NewCompiler(workers).Compile(ctx, b.requests)
}

// printDiagnostics renders every result's diagnostics and reports whether
// any mapper failed.
func printDiagnostics(results []pipeline.Result) bool {
	errLabel := color.New(color.FgRed, color.Bold).Sprint("error")
	warnLabel := color.New(color.FgYellow).Sprint("warning")
	infoLabel := color.New(color.FgCyan).Sprint("info")

	failed := false

	for i := range results {
		res := &results[i]
		if res.Failed() {
			failed = true
		}

		for _, d := range res.Diagnostics.All() {
			label := infoLabel

			switch d.Severity {
			case diagnostic.SeverityError:
				label = errLabel
			case diagnostic.SeverityWarning:
				label = warnLabel
			}

			fmt.Printf("%s: %s\n", label, d.String())
		}
	}

	return failed
}
