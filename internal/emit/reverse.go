package emit

import (
	"github.com/dave/jennifer/jen"
	"github.com/thorn-jmh/errorst"

	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/internal/construct"
	"docmap-generator/internal/render"
)

// emitReverse emits the Unmarshal<Type> function for one reverse plan.
func (e *Emitter) emitReverse(f *jen.File, p *render.ReversePlan, model *analyze.Type) error {
	name := model.ID.Name

	var body []jen.Code

	body = append(body,
		jen.If(jen.Id("dv").Dot("IsNull").Call()).Block(
			jen.Return(jen.Nil(), jen.Nil()),
		),
		jen.If(jen.Id("dv").Dot("Kind").Call().Op("!=").Qual(docImport, "KindMap")).Block(
			jen.Return(jen.Nil(), jen.Qual(errorstImport, "NewError").Call(
				jen.Lit("mapper "+p.Mapper+": expected a map value, got %s"),
				jen.Id("dv").Dot("Kind").Call(),
			)),
		),
	)

	for i := range p.Steps {
		stmts, err := e.reverseStep(&p.Steps[i], model, p.Mapper, i)
		if err != nil {
			return err
		}

		body = append(body, stmts...)
	}

	constructStmts, err := e.construction(p, model)
	if err != nil {
		return err
	}

	body = append(body, constructStmts...)

	if p.BeforeHook != "" {
		body = append(body, hookOnOut(p.BeforeHook, "before-reverse hook"))
	}

	for i := range p.Steps {
		step := &p.Steps[i]
		if step.Binding == construct.BindConstructorParameter {
			continue
		}

		body = append(body, jen.Id("out").Dot(step.Property).Op("=").Id(propLocal(i)))
	}

	if p.AfterHook != "" {
		body = append(body, hookOnOut(p.AfterHook, "after-reverse hook"))
	}

	body = append(body, jen.Return(jen.Id("out"), jen.Nil()))

	f.Commentf("Unmarshal%s recovers a %s from a wire document value.", name, name)
	f.Func().Id("Unmarshal"+name).
		Params(jen.Id("dv").Qual(docImport, "Value")).
		Params(jen.Op("*").Qual(e.opts.ModelImport, name), jen.Error()).
		Block(body...)
	f.Line()

	return nil
}

func hookOnOut(method, label string) jen.Code {
	return jen.If(
		jen.Err().Op(":=").Id("out").Dot(method).Call(),
		jen.Err().Op("!=").Nil(),
	).Block(jen.Return(
		jen.Nil(),
		jen.Qual(errorstImport, "Wrap").Call(jen.Err(), jen.Lit(label)),
	))
}

func propLocal(i int) string {
	return local("p", i+1)
}

// reverseStep emits the lookup, requiredness check, and parse for one
// reverse step. The parsed value lands in a per-step typed local.
func (e *Emitter) reverseStep(
	step *render.ReverseStep,
	model *analyze.Type,
	mapper string,
	i int,
) ([]jen.Code, error) {
	prop := model.Property(step.Property)
	if prop == nil {
		return nil, errorst.NewError("plan references unknown property %q", step.Property)
	}

	dst := propLocal(i)
	av := local("av", i+1)
	ok := local("ok", i+1)

	fieldType := e.goType(&prop.Type)
	if prop.Nullable {
		fieldType = jen.Op("*").Add(fieldType)
	}

	stmts := []jen.Code{
		jen.Var().Id(dst).Add(fieldType),
		jen.List(jen.Id(av), jen.Id(ok)).Op(":=").Id("dv").Dot("Lookup").Call(jen.Lit(step.WireName)),
	}

	if step.Required {
		stmts = append(stmts, jen.If(jen.Op("!").Id(ok)).Block(
			jen.Return(jen.Nil(), jen.Qual(errorstImport, "NewError").Call(
				jen.Lit("mapper "+mapper+": missing required attribute %q"),
				jen.Lit(step.WireName),
			)),
		))
	}

	parse := e.reverseConvert(
		&step.Convert, jen.Id(av), dst, &prop.Type, prop.Nullable, step.Property, i+1,
	)

	stmts = append(stmts, jen.If(
		jen.Id(ok).Op("&&").Op("!").Id(av).Dot("IsNull").Call(),
	).Block(parse...))

	return stmts, nil
}

// construction emits the object construction: the selected constructor with
// matched locals as arguments, or a plain composite literal.
func (e *Emitter) construction(p *render.ReversePlan, model *analyze.Type) ([]jen.Code, error) {
	if !p.Construction.UsesConstructor() {
		return []jen.Code{
			jen.Id("out").Op(":=").Op("&").Qual(e.opts.ModelImport, model.ID.Name).Values(),
		}, nil
	}

	idx := p.Construction.Index
	if idx >= len(model.Constructors) {
		return nil, errorst.NewError("constructor index %d out of range", idx)
	}

	ctor := &model.Constructors[idx]

	args := make([]jen.Code, 0, len(ctor.Parameters))

	for pi := range ctor.Parameters {
		m := &p.Construction.Matches[pi]
		if !m.Matched() {
			// Optional unmatched parameter: pass the zero value.
			args = append(args, jen.Op("*").New(e.goType(&ctor.Parameters[pi].Type)))
			continue
		}

		stepIdx := -1

		for si := range p.Steps {
			if p.Steps[si].Property == m.Property {
				stepIdx = si
				break
			}
		}

		if stepIdx < 0 {
			return nil, errorst.NewError(
				"constructor parameter %q matches unplanned property %q",
				m.Parameter, m.Property)
		}

		args = append(args, jen.Id(propLocal(stepIdx)))
	}

	return []jen.Code{
		jen.Id("out").Op(":=").Qual(e.opts.ModelImport, ctor.Name).Call(args...),
	}, nil
}

// reverseConvert emits statements parsing one document value into the typed
// local dst.
func (e *Emitter) reverseConvert(
	conv *render.Conversion,
	src jen.Code,
	dst string,
	ref *analyze.TypeRef,
	nullable bool,
	prop string,
	depth int,
) []jen.Code {
	fail := jen.Return(
		jen.Nil(),
		jen.Qual(errorstImport, "Wrap").Call(jen.Err(), jen.Lit("property "+prop)),
	)
	errCheck := jen.If(jen.Err().Op("!=").Nil()).Block(fail)

	assign := func(value jen.Code) []jen.Code {
		if !nullable {
			return []jen.Code{jen.Id(dst).Op("=").Add(value)}
		}

		tmp := local("t", depth)

		return []jen.Code{
			jen.Id(tmp).Op(":=").Add(value),
			jen.Id(dst).Op("=").Op("&").Id(tmp),
		}
	}

	switch conv.Kind {
	case render.ConvertScalar:
		raw := local("raw", depth)

		stmts := []jen.Code{
			jen.List(jen.Id(raw), jen.Err()).Op(":=").Qual(primImport, "Parse").Call(
				jen.Qual(primImport, scalarConst(conv.Scalar)),
				jen.Qual(docImport, wireConst(conv.WireKind)),
				src,
			),
			errCheck,
		}

		return append(stmts, assign(e.fromReprExpr(conv.Scalar, jen.Id(raw)))...)

	case render.ConvertEnum:
		raw := local("raw", depth)

		repr := jen.Id(raw).Assert(jen.String())
		if conv.WireKind == document.KindNumber {
			repr = jen.Id(raw).Assert(jen.Int64())
		}

		stmts := []jen.Code{
			jen.List(jen.Id(raw), jen.Err()).Op(":=").Qual(primImport, "Parse").Call(
				jen.Qual(primImport, "KindEnum"),
				jen.Qual(docImport, wireConst(conv.WireKind)),
				src,
			),
			errCheck,
		}

		cast := jen.Qual(e.opts.ModelImport, conv.TypeName).Call(repr)

		return append(stmts, assign(cast)...)

	case render.ConvertCustom:
		cv := local("c", depth)

		return []jen.Code{
			jen.List(jen.Id(cv), jen.Err()).Op(":=").Qual(e.opts.ModelImport, conv.Reverse).Call(src),
			errCheck,
			jen.Id(dst).Op("=").Id(cv),
		}

	case render.ConvertNested:
		nv := local("n", depth)

		stmts := []jen.Code{
			jen.List(jen.Id(nv), jen.Err()).Op(":=").Id("Unmarshal" + conv.Nested.Name).Call(src),
			errCheck,
		}

		if nullable {
			return append(stmts, jen.Id(dst).Op("=").Id(nv))
		}

		return append(stmts, jen.If(jen.Id(nv).Op("!=").Nil()).Block(
			jen.Id(dst).Op("=").Op("*").Id(nv),
		))

	case render.ConvertList:
		return e.reverseList(conv, src, dst, ref, nullable, prop, depth)

	case render.ConvertSet:
		return e.reverseSet(conv, src, dst, ref, nullable, prop, depth)

	case render.ConvertMap:
		return e.reverseMap(conv, src, dst, ref, nullable, prop, depth)

	default:
		return nil
	}
}

func (e *Emitter) reverseList(
	conv *render.Conversion,
	src jen.Code,
	dst string,
	ref *analyze.TypeRef,
	nullable bool,
	prop string,
	depth int,
) []jen.Code {
	items := local("items", depth)
	col := local("col", depth)
	iv := local("iv", depth)
	ev := local("e", depth)

	elemType := e.goType(ref.Elem)

	inner := []jen.Code{jen.Var().Id(ev).Add(elemType)}
	inner = append(inner,
		e.reverseConvert(conv.Elem, jen.Id(iv), ev, ref.Elem, false, prop, depth+1)...)
	inner = append(inner, jen.Id(col).Op("=").Append(jen.Id(col), jen.Id(ev)))

	stmts := []jen.Code{
		jen.Id(items).Op(":=").Add(src).Dot("ListValue").Call(),
		jen.Id(col).Op(":=").Make(
			jen.Index().Add(e.goType(ref.Elem)), jen.Lit(0), jen.Len(jen.Id(items)),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id(iv)).Op(":=").Range().Id(items)).Block(inner...),
	}

	return append(stmts, assignLocal(dst, col, nullable)...)
}

func (e *Emitter) reverseSet(
	conv *render.Conversion,
	src jen.Code,
	dst string,
	ref *analyze.TypeRef,
	nullable bool,
	prop string,
	depth int,
) []jen.Code {
	members := local("members", depth)
	col := local("col", depth)
	mv := local("m", depth)
	wv := local("w", depth)
	ev := local("e", depth)

	wrap := "String"
	if conv.WireKind == document.KindNumberSet {
		wrap = "Number"
	}

	inner := []jen.Code{
		jen.Id(wv).Op(":=").Qual(docImport, wrap).Call(jen.Id(mv)),
		jen.Var().Id(ev).Add(e.goType(ref.Elem)),
	}
	inner = append(inner,
		e.reverseConvert(conv.Elem, jen.Id(wv), ev, ref.Elem, false, prop, depth+1)...)
	inner = append(inner, jen.Id(col).Op("=").Append(jen.Id(col), jen.Id(ev)))

	stmts := []jen.Code{
		jen.Id(members).Op(":=").Add(src).Dot("SetValues").Call(),
		jen.Id(col).Op(":=").Make(
			jen.Index().Add(e.goType(ref.Elem)), jen.Lit(0), jen.Len(jen.Id(members)),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id(mv)).Op(":=").Range().Id(members)).Block(inner...),
	}

	return append(stmts, assignLocal(dst, col, nullable)...)
}

func (e *Emitter) reverseMap(
	conv *render.Conversion,
	src jen.Code,
	dst string,
	ref *analyze.TypeRef,
	nullable bool,
	prop string,
	depth int,
) []jen.Code {
	ents := local("ents", depth)
	col := local("col", depth)
	en := local("en", depth)
	kw := local("kw", depth)
	kv := local("kv", depth)
	vv := local("vv", depth)

	inner := []jen.Code{
		jen.Id(kw).Op(":=").Qual(docImport, "String").Call(jen.Id(en).Dot("Name")),
		jen.Var().Id(kv).Add(e.goType(ref.Key)),
	}
	inner = append(inner,
		e.reverseConvert(conv.Key, jen.Id(kw), kv, ref.Key, false, prop, depth+1)...)
	inner = append(inner, jen.Var().Id(vv).Add(e.goType(ref.Value)))
	inner = append(inner,
		e.reverseConvert(conv.Value, jen.Id(en).Dot("Value"), vv, ref.Value, false, prop, depth+1)...)
	inner = append(inner, jen.Id(col).Index(jen.Id(kv)).Op("=").Id(vv))

	stmts := []jen.Code{
		jen.Id(ents).Op(":=").Add(src).Dot("Entries").Call(),
		jen.Id(col).Op(":=").Make(
			jen.Map(e.goType(ref.Key)).Add(e.goType(ref.Value)), jen.Len(jen.Id(ents)),
		),
		jen.For(jen.List(jen.Id("_"), jen.Id(en)).Op(":=").Range().Id(ents)).Block(inner...),
	}

	return append(stmts, assignLocal(dst, col, nullable)...)
}

func assignLocal(dst, src string, nullable bool) []jen.Code {
	if nullable {
		return []jen.Code{jen.Id(dst).Op("=").Op("&").Id(src)}
	}

	return []jen.Code{jen.Id(dst).Op("=").Id(src)}
}
