package emit

import (
	"github.com/dave/jennifer/jen"

	"docmap-generator/document"
	"docmap-generator/internal/analyze"
	"docmap-generator/primitive"
)

// scalarConst returns the primitive kind constant name for codegen.
func scalarConst(k primitive.Kind) string {
	switch k {
	case primitive.KindString:
		return "KindString"
	case primitive.KindBool:
		return "KindBool"
	case primitive.KindInt:
		return "KindInt"
	case primitive.KindInt8:
		return "KindInt8"
	case primitive.KindInt16:
		return "KindInt16"
	case primitive.KindInt32:
		return "KindInt32"
	case primitive.KindInt64:
		return "KindInt64"
	case primitive.KindUint:
		return "KindUint"
	case primitive.KindUint8:
		return "KindUint8"
	case primitive.KindUint16:
		return "KindUint16"
	case primitive.KindUint32:
		return "KindUint32"
	case primitive.KindUint64:
		return "KindUint64"
	case primitive.KindFloat32:
		return "KindFloat32"
	case primitive.KindFloat64:
		return "KindFloat64"
	case primitive.KindTime:
		return "KindTime"
	case primitive.KindDuration:
		return "KindDuration"
	case primitive.KindGUID:
		return "KindGUID"
	case primitive.KindBytes:
		return "KindBytes"
	default:
		return "KindEnum"
	}
}

// wireConst returns the document kind constant name for codegen.
func wireConst(w document.Kind) string {
	switch w {
	case document.KindString:
		return "KindString"
	case document.KindNumber:
		return "KindNumber"
	case document.KindBool:
		return "KindBool"
	case document.KindNull:
		return "KindNull"
	case document.KindBinary:
		return "KindBinary"
	case document.KindList:
		return "KindList"
	case document.KindMap:
		return "KindMap"
	case document.KindStringSet:
		return "KindStringSet"
	case document.KindNumberSet:
		return "KindNumberSet"
	default:
		return "KindInvalid"
	}
}

// goType builds the Go type expression for a model type reference.
func (e *Emitter) goType(ref *analyze.TypeRef) jen.Code {
	switch ref.Shape {
	case analyze.ShapeScalar:
		return e.scalarGoType(ref.Scalar)
	case analyze.ShapeEnum:
		return jen.Qual(e.opts.ModelImport, ref.Name)
	case analyze.ShapeCollection:
		return jen.Index().Add(e.goType(ref.Elem))
	case analyze.ShapeMap:
		return jen.Map(e.goType(ref.Key)).Add(e.goType(ref.Value))
	case analyze.ShapeObject:
		return jen.Qual(e.opts.ModelImport, ref.Object.ID.Name)
	default:
		return jen.Any()
	}
}

func (e *Emitter) scalarGoType(k primitive.Kind) jen.Code {
	switch k {
	case primitive.KindString:
		return jen.String()
	case primitive.KindBool:
		return jen.Bool()
	case primitive.KindInt:
		return jen.Int()
	case primitive.KindInt8:
		return jen.Int8()
	case primitive.KindInt16:
		return jen.Int16()
	case primitive.KindInt32:
		return jen.Int32()
	case primitive.KindInt64:
		return jen.Int64()
	case primitive.KindUint:
		return jen.Uint()
	case primitive.KindUint8:
		return jen.Uint8()
	case primitive.KindUint16:
		return jen.Uint16()
	case primitive.KindUint32:
		return jen.Uint32()
	case primitive.KindUint64:
		return jen.Uint64()
	case primitive.KindFloat32:
		return jen.Float32()
	case primitive.KindFloat64:
		return jen.Float64()
	case primitive.KindTime:
		return jen.Qual("time", "Time")
	case primitive.KindDuration:
		return jen.Qual("time", "Duration")
	case primitive.KindGUID:
		return jen.Qual(uuidImport, "UUID")
	case primitive.KindBytes:
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

// reprExpr casts a model scalar expression to the representative type the
// primitive formatters accept.
func reprExpr(k primitive.Kind, src jen.Code) jen.Code {
	switch {
	case k.IsSigned():
		return jen.Int64().Call(jen.Add(src))
	case k.IsUnsigned():
		return jen.Uint64().Call(jen.Add(src))
	case k.IsFloat():
		return jen.Float64().Call(jen.Add(src))
	default:
		return src
	}
}

// fromReprExpr casts the any value a primitive parser produced back to the
// declared scalar type.
func (e *Emitter) fromReprExpr(k primitive.Kind, raw jen.Code) jen.Code {
	assert := func(t jen.Code) jen.Code {
		return jen.Add(raw).Assert(t)
	}

	switch k {
	case primitive.KindString:
		return assert(jen.String())
	case primitive.KindBool:
		return assert(jen.Bool())
	case primitive.KindInt64:
		return assert(jen.Int64())
	case primitive.KindUint64:
		return assert(jen.Uint64())
	case primitive.KindFloat64:
		return assert(jen.Float64())
	case primitive.KindFloat32:
		return jen.Float32().Call(assert(jen.Float64()))
	case primitive.KindTime:
		return assert(jen.Qual("time", "Time"))
	case primitive.KindDuration:
		return assert(jen.Qual("time", "Duration"))
	case primitive.KindGUID:
		return assert(jen.Qual(uuidImport, "UUID"))
	case primitive.KindBytes:
		return assert(jen.Index().Byte())
	default:
		switch {
		case k.IsSigned():
			return jen.Add(e.scalarGoType(k)).Call(assert(jen.Int64()))
		case k.IsUnsigned():
			return jen.Add(e.scalarGoType(k)).Call(assert(jen.Uint64()))
		default:
			return assert(jen.Any())
		}
	}
}
