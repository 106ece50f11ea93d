package emit

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/thorn-jmh/errorst"

	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/render"
)

// emitForward emits the Marshal<Type> function for one forward plan.
func (e *Emitter) emitForward(f *jen.File, p *render.ForwardPlan, model *analyze.Type) error {
	name := model.ID.Name

	var body []jen.Code

	body = append(body, jen.If(jen.Id("in").Op("==").Nil()).Block(
		jen.Return(jen.Qual(docImport, "Null").Call(), jen.Nil()),
	))

	if p.BeforeHook != "" {
		body = append(body, jen.If(
			jen.Err().Op(":=").Id("in").Dot(p.BeforeHook).Call(),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(
			jen.Qual(docImport, "Value").Values(),
			jen.Qual(errorstImport, "Wrap").Call(jen.Err(), jen.Lit("before-forward hook")),
		)))
	}

	body = append(body, jen.Id("entries").Op(":=").Make(
		jen.Index().Qual(docImport, "Entry"), jen.Lit(0), jen.Lit(len(p.Steps)),
	))

	for i := range p.Steps {
		step, err := e.forwardStep(&p.Steps[i], model)
		if err != nil {
			return err
		}

		body = append(body, step)
	}

	body = append(body, jen.Id("doc").Op(":=").Qual(docImport, "Map").Call(jen.Id("entries").Op("...")))

	if p.AfterHook != "" {
		body = append(body, jen.If(
			jen.Err().Op(":=").Id("in").Dot(p.AfterHook).Call(),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(
			jen.Qual(docImport, "Value").Values(),
			jen.Qual(errorstImport, "Wrap").Call(jen.Err(), jen.Lit("after-forward hook")),
		)))
	}

	body = append(body, jen.Return(jen.Id("doc"), jen.Nil()))

	f.Commentf("Marshal%s converts a %s into a wire document value.", name, name)
	f.Func().Id("Marshal"+name).
		Params(jen.Id("in").Op("*").Qual(e.opts.ModelImport, name)).
		Params(jen.Qual(docImport, "Value"), jen.Error()).
		Block(body...)
	f.Line()

	return nil
}

// forwardStep emits the block for one forward step, including null and
// empty-string omission around the conversion.
func (e *Emitter) forwardStep(step *render.ForwardStep, model *analyze.Type) (jen.Code, error) {
	prop := model.Property(step.Property)
	if prop == nil {
		return nil, errorst.NewError("plan references unknown property %q", step.Property)
	}

	base := jen.Id("in").Dot(prop.Name)

	src := jen.Code(base)
	addr := step.Convert.Kind == render.ConvertNested

	if prop.Nullable {
		if addr {
			addr = false // a nullable field is already the pointer the delegate takes
		} else {
			src = jen.Parens(jen.Op("*").Add(jen.Id("in").Dot(prop.Name)))
		}
	}

	core := e.forwardConvert(&step.Convert, src, "v", step.Property, 0, addr)
	core = append(core, appendEntry(step.WireName, jen.Id("v")))

	if step.SkipIfEmpty {
		core = []jen.Code{jen.If(jen.Add(src).Op("!=").Lit("")).Block(core...)}
	}

	if !prop.Nullable {
		return jen.Block(core...), nil
	}

	cond := jen.Id("in").Dot(prop.Name).Op("!=").Nil()
	if step.SkipIfNull {
		return jen.Block(jen.If(cond).Block(core...)), nil
	}

	return jen.Block(
		jen.If(cond).Block(core...).Else().Block(
			appendEntry(step.WireName, jen.Qual(docImport, "Null").Call()),
		),
	), nil
}

func appendEntry(wireName string, value jen.Code) jen.Code {
	return jen.Id("entries").Op("=").Append(jen.Id("entries"), jen.Qual(docImport, "Entry").Values(jen.Dict{
		jen.Id("Name"):  jen.Lit(wireName),
		jen.Id("Value"): value,
	}))
}

// forwardConvert emits statements converting one model value into a local
// document value named dst. Nested containers get depth-suffixed locals.
func (e *Emitter) forwardConvert(
	conv *render.Conversion,
	src jen.Code,
	dst, prop string,
	depth int,
	addr bool,
) []jen.Code {
	fail := jen.Return(
		jen.Qual(docImport, "Value").Values(),
		jen.Qual(errorstImport, "Wrap").Call(jen.Err(), jen.Lit("property "+prop)),
	)
	errCheck := jen.If(jen.Err().Op("!=").Nil()).Block(fail)

	switch conv.Kind {
	case render.ConvertScalar:
		return []jen.Code{
			jen.List(jen.Id(dst), jen.Err()).Op(":=").Qual(primImport, "Format").Call(
				jen.Qual(primImport, scalarConst(conv.Scalar)),
				jen.Qual(docImport, wireConst(conv.WireKind)),
				reprExpr(conv.Scalar, src),
			),
			errCheck,
		}

	case render.ConvertEnum:
		repr := jen.String().Call(jen.Add(src))
		if conv.WireKind == document.KindNumber {
			repr = jen.Int64().Call(jen.Add(src))
		}

		return []jen.Code{
			jen.List(jen.Id(dst), jen.Err()).Op(":=").Qual(primImport, "Format").Call(
				jen.Qual(primImport, "KindEnum"),
				jen.Qual(docImport, wireConst(conv.WireKind)),
				repr,
			),
			errCheck,
		}

	case render.ConvertCustom:
		return []jen.Code{
			jen.List(jen.Id(dst), jen.Err()).Op(":=").Id("in").Dot(conv.Forward).Call(),
			errCheck,
		}

	case render.ConvertNested:
		arg := src
		if addr {
			arg = jen.Op("&").Add(src)
		}

		return []jen.Code{
			jen.List(jen.Id(dst), jen.Err()).Op(":=").Id("Marshal" + conv.Nested.Name).Call(arg),
			errCheck,
		}

	case render.ConvertList:
		items := local("items", depth)
		item := local("item", depth)
		elem := local("ev", depth)

		inner := e.forwardConvert(conv.Elem, jen.Id(item), elem, prop, depth+1, true)
		inner = append(inner, jen.Id(items).Op("=").Append(jen.Id(items), jen.Id(elem)))

		return []jen.Code{
			jen.Id(items).Op(":=").Make(
				jen.Index().Qual(docImport, "Value"), jen.Lit(0), jen.Len(jen.Add(src)),
			),
			jen.For(jen.List(jen.Id("_"), jen.Id(item)).Op(":=").Range().Add(src)).Block(inner...),
			jen.Id(dst).Op(":=").Qual(docImport, "List").Call(jen.Id(items).Op("...")),
		}

	case render.ConvertSet:
		members := local("members", depth)
		item := local("item", depth)
		elem := local("ev", depth)

		raw := jen.Id(elem).Dot("StringValue").Call()
		ctor := "StringSet"

		if conv.WireKind == document.KindNumberSet {
			raw = jen.Id(elem).Dot("NumberValue").Call()
			ctor = "NumberSet"
		}

		inner := e.forwardConvert(conv.Elem, jen.Id(item), elem, prop, depth+1, false)
		inner = append(inner, jen.Id(members).Op("=").Append(jen.Id(members), raw))

		return []jen.Code{
			jen.Id(members).Op(":=").Make(jen.Index().String(), jen.Lit(0), jen.Len(jen.Add(src))),
			jen.For(jen.List(jen.Id("_"), jen.Id(item)).Op(":=").Range().Add(src)).Block(inner...),
			jen.Id(dst).Op(":=").Qual(docImport, ctor).Call(jen.Id(members).Op("...")),
		}

	case render.ConvertMap:
		ents := local("ents", depth)
		key := local("k", depth)
		val := local("val", depth)
		keyVal := local("kv", depth)
		valVal := local("vv", depth)

		var inner []jen.Code
		inner = append(inner, e.forwardConvert(conv.Key, jen.Id(key), keyVal, prop, depth+1, false)...)
		inner = append(inner, e.forwardConvert(conv.Value, jen.Id(val), valVal, prop, depth+1, true)...)
		inner = append(inner, jen.Id(ents).Op("=").Append(jen.Id(ents), jen.Qual(docImport, "Entry").Values(jen.Dict{
			jen.Id("Name"):  jen.Id(keyVal).Dot("StringValue").Call(),
			jen.Id("Value"): jen.Id(valVal),
		})))

		return []jen.Code{
			jen.Id(ents).Op(":=").Make(
				jen.Index().Qual(docImport, "Entry"), jen.Lit(0), jen.Len(jen.Add(src)),
			),
			jen.For(jen.List(jen.Id(key), jen.Id(val)).Op(":=").Range().Add(src)).Block(inner...),
			// Map iteration order is random; sort for byte-identical output.
			jen.Qual("sort", "Slice").Call(jen.Id(ents), jen.Func().Params(
				jen.Id("i"), jen.Id("j").Int(),
			).Bool().Block(jen.Return(
				jen.Id(ents).Index(jen.Id("i")).Dot("Name").Op("<").
					Id(ents).Index(jen.Id("j")).Dot("Name"),
			))),
			jen.Id(dst).Op(":=").Qual(docImport, "Map").Call(jen.Id(ents).Op("...")),
		}

	default:
		return []jen.Code{jen.Id(dst).Op(":=").Qual(docImport, "Null").Call()}
	}
}

func local(base string, depth int) string {
	if depth == 0 {
		return base
	}

	return fmt.Sprintf("%s%d", base, depth)
}
