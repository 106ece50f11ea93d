package analyze

import (
	"context"
	"sort"
	"strings"

	"docmap-generator/internal/diagnostic"
	"docmap-generator/primitive"
)

// Analyze walks the model type graph starting at root, classifies every
// property of every reachable type, and detects illegal nested-object cycles.
//
// On success the returned graph carries one classification per declared
// property, in declaration order. A cycle is a terminal failure: no graph is
// returned. Unsupported property types are not terminal here; they classify
// as CategoryUnsupported and are diagnosed during strategy resolution.
//
// Cancellation is checked at traversal steps, never mid-property; an aborted
// analysis discards all partial results.
func Analyze(ctx context.Context, root *Type) (*TypeGraph, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if root == nil {
		diags.AddInternal("", "", "analyze called with nil root type")
		return nil, diags
	}

	a := &analyzer{
		graph:   NewTypeGraph(),
		onStack: make(map[TypeID]int),
	}
	a.graph.Root = root

	if err := a.walk(ctx, root, diags); err != nil {
		return nil, diags
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return a.graph, diags
}

type analyzer struct {
	graph *TypeGraph

	// stack holds the DFS path of nested-object identities; onStack maps
	// each to its stack index for cycle extraction.
	stack   []TypeID
	onStack map[TypeID]int
}

// walkErr is a sentinel for aborted traversal; details live in diagnostics.
type walkErr struct{ reason string }

func (e *walkErr) Error() string { return e.reason }

func (a *analyzer) walk(ctx context.Context, t *Type, diags *diagnostic.Diagnostics) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, seen := a.graph.Types[t.ID]; seen {
		return nil
	}

	a.graph.Types[t.ID] = t
	a.graph.Order = append(a.graph.Order, t.ID)

	a.onStack[t.ID] = len(a.stack)
	a.stack = append(a.stack, t.ID)

	defer func() {
		a.stack = a.stack[:len(a.stack)-1]
		delete(a.onStack, t.ID)
	}()

	cls := make([]Classification, 0, len(t.Properties))

	for i := range t.Properties {
		if err := ctx.Err(); err != nil {
			return err
		}

		prop := &t.Properties[i]
		c := a.classifyRef(&prop.Type)
		cls = append(cls, c)

		// Nested model types reachable through this property extend the
		// graph; an edge back onto the traversal stack is a cycle.
		for _, obj := range nestedObjects(&c) {
			if idx, on := a.onStack[obj.ID]; on {
				cycle := append([]TypeID(nil), a.stack[idx:]...)
				diags.AddError(diagnostic.CodeCyclicReference, t.ID.String(), prop.Name,
					"cyclic nested-object reference: %s", cyclePath(cycle))

				return &walkErr{reason: "cycle"}
			}

			if err := a.walk(ctx, obj, diags); err != nil {
				return err
			}
		}
	}

	a.graph.Properties[t.ID] = cls

	return nil
}

// classifyRef classifies one declared type reference against the scalar
// capability table and the recognized container shapes.
func (a *analyzer) classifyRef(ref *TypeRef) Classification {
	switch ref.Shape {
	case ShapeScalar:
		candidates := primitive.WireCandidates(ref.Scalar)
		if len(candidates) == 0 {
			return Classification{
				Category: CategoryUnsupported,
				TypeName: ref.Name,
				Scalar:   ref.Scalar,
				Reason:   "scalar type has no wire representation",
			}
		}

		return Classification{
			Category:       CategoryScalar,
			TypeName:       ref.Name,
			Scalar:         ref.Scalar,
			WireCandidates: candidates,
		}

	case ShapeEnum:
		if ref.Scalar != primitive.KindString && !ref.Scalar.IsInteger() {
			return Classification{
				Category: CategoryUnsupported,
				TypeName: ref.Name,
				Reason:   "enum underlying type must be a string or integer",
			}
		}

		return Classification{
			Category:       CategoryEnum,
			TypeName:       ref.Name,
			Scalar:         ref.Scalar,
			WireCandidates: primitive.WireCandidates(primitive.KindEnum),
		}

	case ShapeCollection:
		elem := a.classifyRef(ref.Elem)

		return Classification{
			Category: CategoryCollection,
			TypeName: ref.Name,
			Elem:     &elem,
		}

	case ShapeMap:
		key := a.classifyRef(ref.Key)
		value := a.classifyRef(ref.Value)

		return Classification{
			Category: CategoryMap,
			TypeName: ref.Name,
			Key:      &key,
			Value:    &value,
		}

	case ShapeObject:
		if !hasPropertySurface(ref.Object) {
			return Classification{
				Category: CategoryUnsupported,
				TypeName: ref.Name,
				Reason:   "type exposes no gettable or settable properties",
			}
		}

		return Classification{
			Category: CategoryNestedObject,
			TypeName: ref.Name,
			Object:   ref.Object,
		}

	default:
		return Classification{
			Category: CategoryUnsupported,
			TypeName: ref.Name,
			Reason:   "type is opaque to the analyzer",
		}
	}
}

// hasPropertySurface reports whether the type exposes at least one property
// usable for mapping in either direction.
func hasPropertySurface(t *Type) bool {
	if t == nil {
		return false
	}

	for i := range t.Properties {
		if t.Properties[i].Readable() || t.Properties[i].Settable() {
			return true
		}
	}

	return false
}

// nestedObjects collects model types referenced anywhere inside a
// classification tree, in left-to-right declaration order.
func nestedObjects(c *Classification) []*Type {
	var out []*Type

	var visit func(*Classification)
	visit = func(c *Classification) {
		if c == nil {
			return
		}

		if c.Category == CategoryNestedObject && c.Object != nil {
			out = append(out, c.Object)
		}

		visit(c.Elem)
		visit(c.Key)
		visit(c.Value)
	}
	visit(c)

	return out
}

// cyclePath renders a cycle as "A -> B -> A", rotated so the
// lexicographically smallest type name leads. Rotation keeps the diagnostic
// stable no matter where traversal entered the cycle.
func cyclePath(cycle []TypeID) string {
	if len(cycle) == 0 {
		return ""
	}

	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = id.String()
	}

	minIdx := 0
	for i := range names {
		if names[i] < names[minIdx] {
			minIdx = i
		}
	}

	rotated := make([]string, 0, len(names)+1)
	rotated = append(rotated, names[minIdx:]...)
	rotated = append(rotated, names[:minIdx]...)
	rotated = append(rotated, rotated[0]) // close the loop

	return strings.Join(rotated, " -> ")
}

// SortedTypeIDs returns the graph's type IDs sorted by name, for callers that
// need an order independent of discovery.
func (g *TypeGraph) SortedTypeIDs() []TypeID {
	ids := append([]TypeID(nil), g.Order...)
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}
