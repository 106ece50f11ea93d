package emit

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/thorn-jmh/errorst"

	"docmap-generator/internal/analyze"
	"docmap-generator/internal/common"
	"docmap-generator/internal/render"
)

// Import paths referenced by the generated code.
const (
	docImport     = "docmap-generator/document"
	primImport    = "docmap-generator/primitive"
	errorstImport = "github.com/thorn-jmh/errorst"
	uuidImport    = "github.com/google/uuid"
)

// GeneratedFile is one emitted source file.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

// Options configures emission for one generation run.
type Options struct {
	// Package is the package name of the emitted files.
	Package string

	// ModelImport is the import path of the package declaring the model types.
	ModelImport string
}

// Emitter emits mapper source files.
type Emitter struct {
	opts Options
}

// NewEmitter creates an Emitter.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

// Emit produces the source file for one mapper: a Marshal<Type> function
// from the forward plan and an Unmarshal<Type> function from the reverse
// plan.
func (e *Emitter) Emit(r *render.Rendered, model *analyze.Type) (GeneratedFile, error) {
	if model == nil || model.ID != r.Forward.Model {
		return GeneratedFile{}, errorst.NewError(
			"emit: model snapshot does not match rendered plan %s", r.Forward.Model)
	}

	f := jen.NewFile(e.opts.Package)
	f.HeaderComment("Code generated by docmap-generator. DO NOT EDIT.")
	f.ImportName(docImport, "document")
	f.ImportName(primImport, "primitive")
	f.ImportName(errorstImport, "errorst")
	f.ImportName(uuidImport, "uuid")
	f.ImportName(e.opts.ModelImport, common.PkgAlias(e.opts.ModelImport))

	if err := e.emitForward(f, &r.Forward, model); err != nil {
		return GeneratedFile{}, errorst.Wrap(err, "forward plan of %s", r.Forward.Mapper)
	}

	if err := e.emitReverse(f, &r.Reverse, model); err != nil {
		return GeneratedFile{}, errorst.Wrap(err, "reverse plan of %s", r.Reverse.Mapper)
	}

	return GeneratedFile{
		Filename: fileName(model.ID),
		Content:  []byte(fmt.Sprintf("%#v", f)),
	}, nil
}

func fileName(id analyze.TypeID) string {
	return toSnake(id.Name) + "_mapper.go"
}

func toSnake(name string) string {
	out := make([]byte, 0, len(name)+4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}

			c += 'a' - 'A'
		}

		out = append(out, c)
	}

	return string(out)
}
