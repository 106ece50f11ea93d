package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"docmap-generator/primitive"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader builds model type snapshots from Go packages, acting as a host
// front end for models defined as plain Go structs:
//
//   - exported struct fields become properties (pointer fields are nullable)
//   - named types over string/integer basics become enums
//   - package-level functions named New<Type> returning the type become
//     declared constructors
type Loader struct {
	types     map[TypeID]*Type
	typeCache map[types.Type]*TypeRef // handles recursive type references
	order     []TypeID
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{
		types:     make(map[TypeID]*Type),
		typeCache: make(map[types.Type]*TypeRef),
	}
}

// LoadPackages loads the given Go package patterns and returns the model
// types found, in deterministic (package, name) order.
func (l *Loader) LoadPackages(patterns ...string) ([]*Type, error) {
	cfg := &packages.Config{Mode: LoadMode}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		l.processPackage(pkg)
	}

	out := make([]*Type, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.types[id])
	}

	return out, nil
}

// Lookup returns a loaded model type by ID, or nil.
func (l *Loader) Lookup(id TypeID) *Type {
	return l.types[id]
}

func (l *Loader) processPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()

	// First pass: register struct types so references between them resolve.
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		if _, ok := typeName.Type().Underlying().(*types.Struct); !ok {
			continue
		}

		id := TypeID{Namespace: pkg.Types.Name(), Name: name}
		if _, seen := l.types[id]; seen {
			continue
		}

		l.types[id] = &Type{ID: id}
		l.order = append(l.order, id)
	}

	// Second pass: fill properties now that every struct has an identity.
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		id := TypeID{Namespace: pkg.Types.Name(), Name: name}
		l.fillProperties(l.types[id], st)
	}

	// Third pass: New<Type> functions become declared constructors.
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !fn.Exported() || !strings.HasPrefix(name, "New") {
			continue
		}

		typeName := strings.TrimPrefix(name, "New")
		id := TypeID{Namespace: pkg.Types.Name(), Name: typeName}

		target := l.types[id]
		if target == nil || !returnsType(fn, typeName) {
			continue
		}

		target.Constructors = append(target.Constructors, l.buildConstructor(fn))
	}
}

func (l *Loader) fillProperties(t *Type, st *types.Struct) {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		tag, skip := parseTag(reflect.StructTag(st.Tag(i)).Get("docmap"))
		if skip {
			continue
		}

		ref, nullable := l.refFor(field.Type())

		t.Properties = append(t.Properties, Property{
			Name:     field.Name(),
			Type:     ref,
			Nullable: nullable,
			Getter:   AccessPublic,
			Setter:   AccessPublic,
			Tag:      tag,
		})
	}
}

// parseTag interprets a `docmap` struct tag value. The first token renames
// the wire attribute, "-" excludes the field, the remaining comma-separated
// tokens are flags.
func parseTag(raw string) (Tag, bool) {
	if raw == "" {
		return Tag{}, false
	}

	if raw == "-" {
		return Tag{}, true
	}

	tokens := strings.Split(raw, ",")
	tag := Tag{WireName: tokens[0]}

	for _, opt := range tokens[1:] {
		switch opt {
		case "omitnull":
			tag.OmitNull = true
		case "omitempty":
			tag.OmitEmpty = true
		case "required":
			tag.Required = true
		}
	}

	return tag, false
}

func (l *Loader) buildConstructor(fn *types.Func) Constructor {
	sig := fn.Type().(*types.Signature)

	ctor := Constructor{Name: fn.Name()}
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		ref, _ := l.refFor(p.Type())

		ctor.Parameters = append(ctor.Parameters, Parameter{
			Name: p.Name(),
			Type: ref,
		})
	}

	return ctor
}

// refFor maps a go/types.Type to a TypeRef plus a nullability flag.
func (l *Loader) refFor(t types.Type) (TypeRef, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		ref, _ := l.refFor(ptr.Elem())
		return ref, true
	}

	if cached, ok := l.typeCache[t]; ok {
		return *cached, false
	}

	ref := l.buildRef(t)
	l.typeCache[t] = &ref

	return ref, false
}

func (l *Loader) buildRef(t types.Type) TypeRef {
	switch tt := t.(type) {
	case *types.Basic:
		if k, ok := basicKind(tt.Kind()); ok {
			return ScalarRef(k)
		}

		return OpaqueRef(tt.Name())

	case *types.Slice:
		if basic, ok := tt.Elem().(*types.Basic); ok && basic.Kind() == types.Uint8 {
			return ScalarRef(primitive.KindBytes)
		}

		elem, _ := l.refFor(tt.Elem())

		return CollectionRef(elem)

	case *types.Map:
		key, _ := l.refFor(tt.Key())
		value, _ := l.refFor(tt.Elem())

		return MapRef(key, value)

	case *types.Named:
		return l.buildNamedRef(tt)

	default:
		return OpaqueRef(t.String())
	}
}

func (l *Loader) buildNamedRef(named *types.Named) TypeRef {
	obj := named.Obj()

	// Well-known external value types.
	if obj.Pkg() != nil {
		switch obj.Pkg().Path() + "." + obj.Name() {
		case "time.Time":
			return ScalarRef(primitive.KindTime)
		case "time.Duration":
			return ScalarRef(primitive.KindDuration)
		case "github.com/google/uuid.UUID":
			return ScalarRef(primitive.KindGUID)
		}
	}

	pkgName := ""
	if obj.Pkg() != nil {
		pkgName = obj.Pkg().Name()
	}

	switch underlying := named.Underlying().(type) {
	case *types.Struct:
		id := TypeID{Namespace: pkgName, Name: obj.Name()}
		if target := l.types[id]; target != nil {
			return ObjectRef(target)
		}

		// Struct from a package outside the loaded set.
		return OpaqueRef(obj.Name())

	case *types.Basic:
		// Named type over a basic: an enum if string or integer.
		if k, ok := basicKind(underlying.Kind()); ok {
			if k == primitive.KindString || k.IsInteger() {
				return EnumRef(obj.Name(), k)
			}

			return ScalarRef(k)
		}

		return OpaqueRef(obj.Name())

	default:
		return OpaqueRef(obj.Name())
	}
}

func returnsType(fn *types.Func, typeName string) bool {
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Results().Len() == 0 {
		return false
	}

	res := sig.Results().At(0).Type()
	if ptr, ok := res.(*types.Pointer); ok {
		res = ptr.Elem()
	}

	named, ok := res.(*types.Named)

	return ok && named.Obj().Name() == typeName
}

func basicKind(k types.BasicKind) (primitive.Kind, bool) {
	switch k {
	case types.String:
		return primitive.KindString, true
	case types.Bool:
		return primitive.KindBool, true
	case types.Int:
		return primitive.KindInt, true
	case types.Int8:
		return primitive.KindInt8, true
	case types.Int16:
		return primitive.KindInt16, true
	case types.Int32:
		return primitive.KindInt32, true
	case types.Int64:
		return primitive.KindInt64, true
	case types.Uint:
		return primitive.KindUint, true
	case types.Uint8:
		return primitive.KindUint8, true
	case types.Uint16:
		return primitive.KindUint16, true
	case types.Uint32:
		return primitive.KindUint32, true
	case types.Uint64:
		return primitive.KindUint64, true
	case types.Float32:
		return primitive.KindFloat32, true
	case types.Float64:
		return primitive.KindFloat64, true
	default:
		return 0, false
	}
}
