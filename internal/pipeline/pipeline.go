// Package pipeline drives batch compilation: analysis, configuration
// normalization, strategy resolution, construction selection, and rendering
// for a set of mappers.
//
// Mappers fail independently. One mapper's diagnostics never abort the
// batch; only cancellation does. Results come back in request order no
// matter how the work was scheduled.
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"docmap-generator/internal/analyze"
	"docmap-generator/internal/config"
	"docmap-generator/internal/diagnostic"
	"docmap-generator/internal/plan"
	"docmap-generator/internal/render"
)

// Request asks for one mapper to be compiled.
type Request struct {
	// Model is the mapped model type snapshot.
	Model *analyze.Type

	// Config is the mapper's declarative configuration.
	Config *config.MapperConfig
}

// Result is the outcome for one mapper. Exactly one of Rendered or a
// non-empty error set in Diagnostics is meaningful: a failed mapper has a
// nil Rendered and at least one error diagnostic.
type Result struct {
	Mapper string
	Model  analyze.TypeID

	Plan     *plan.Document
	Rendered *render.Rendered

	Diagnostics *diagnostic.Diagnostics
}

// Failed reports whether the mapper produced no usable plan.
func (r *Result) Failed() bool {
	return r.Rendered == nil
}

// Compiler compiles mapper batches with bounded parallelism.
type Compiler struct {
	workers int
}

// NewCompiler creates a Compiler. Non-positive workers means one worker per
// CPU.
func NewCompiler(workers int) *Compiler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Compiler{workers: workers}
}

// Compile compiles every request. The known-mapper set is the batch itself:
// a nested object reference resolves iff its type is also a request's model.
//
// The only error returned is cancellation; per-mapper failures live in each
// Result's diagnostics. On cancellation all partial results are discarded.
func (c *Compiler) Compile(ctx context.Context, reqs []Request) ([]Result, error) {
	known := make([]analyze.TypeID, 0, len(reqs))
	for i := range reqs {
		known = append(known, reqs[i].Model.ID)
	}

	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = compileOne(gctx, &reqs[i], known)

			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func compileOne(ctx context.Context, req *Request, known []analyze.TypeID) Result {
	diags := &diagnostic.Diagnostics{}

	res := Result{
		Mapper:      req.Config.Name,
		Model:       req.Model.ID,
		Diagnostics: diags,
	}

	if res.Mapper == "" {
		res.Mapper = req.Model.ID.String()
	}

	graph, aDiags := analyze.Analyze(ctx, req.Model)
	diags.Merge(*aDiags)

	if graph == nil {
		return res
	}

	cfg, nDiags := config.Normalize(req.Config, req.Model)
	diags.Merge(*nDiags)

	if cfg == nil {
		return res
	}

	doc, pDiags := plan.Build(graph, req.Model, cfg, known)
	diags.Merge(*pDiags)

	if doc == nil {
		return res
	}

	rendered, rDiags := render.Render(doc)
	diags.Merge(*rDiags)

	if rendered == nil {
		return res
	}

	res.Plan = doc
	res.Rendered = rendered

	return res
}
