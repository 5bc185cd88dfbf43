package jsonschema

import (
	"iter"
	"strconv"
	"strings"
)

// Resource is a draft-tagged wrapper around a decoded JSON value (the
// output of unmarshaling into `any`: nil, bool, float64/json.Number,
// string, []any, or map[string]any). It is the unit the Registry reasons
// about during discovery, before anything is compiled into a Schema.
type Resource struct {
	Draft Draft
	Value any
}

// NewResource tags a raw JSON value with the draft that governs its
// keyword semantics.
func NewResource(draft Draft, value any) Resource {
	return Resource{Draft: draft, Value: value}
}

// ID returns the resource's declared identifier ("id" pre-Draft6, "$id"
// from Draft6 onward), with a trailing "#" trimmed, if present as a string.
func (r Resource) ID() (string, bool) {
	obj, ok := r.Value.(map[string]any)
	if !ok {
		return "", false
	}
	raw, ok := obj[r.Draft.IDKeyword()]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSuffix(s, "#")
	return s, s != ""
}

// SchemaNode is one value reachable from a Resource's root via applicator
// keywords, along with the JSON Pointer (relative to that root) at which it
// was found.
type SchemaNode struct {
	Pointer string
	Value   any
}

// applicatorKeywords lists every keyword whose value is itself a schema (or
// a container of schemas) per §4.2. Boolean-position and object-position
// applicators are treated identically: both enumerate to sub_resources.
var applicatorKeywords = struct {
	single []string // value is a single schema
	list   []string // value is an array of schemas
	object []string // value is a map of name -> schema
}{
	single: []string{
		"items", "additionalItems", "contains", "additionalProperties",
		"unevaluatedProperties", "unevaluatedItems", "propertyNames",
		"not", "if", "then", "else", "contentSchema",
	},
	list: []string{"allOf", "anyOf", "oneOf", "prefixItems"},
	object: []string{
		"properties", "patternProperties", "dependentSchemas",
		"$defs", "definitions",
	},
}

// Walk performs a pre-order traversal of every applicator-reachable node
// beneath the resource's root, including the root itself (at pointer ""),
// yielding each node's relative JSON Pointer and value. Traversal does not
// stop at nested "$id"/"id" boundaries — the Registry decides, node by
// node, whether a yielded node begins a new resource; Walk just enumerates
// the applicator graph.
func (r Resource) Walk() iter.Seq[SchemaNode] {
	return func(yield func(SchemaNode) bool) {
		walkNode(r.Value, "", yield)
	}
}

func walkNode(value any, ptr string, yield func(SchemaNode) bool) bool {
	if !yield(SchemaNode{Pointer: ptr, Value: value}) {
		return false
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return true
	}
	for _, kw := range applicatorKeywords.single {
		if child, ok := obj[kw]; ok {
			if !walkNode(child, joinPtr(ptr, kw), yield) {
				return false
			}
		}
	}
	for _, kw := range applicatorKeywords.list {
		if arr, ok := obj[kw].([]any); ok {
			for i, child := range arr {
				if !walkNode(child, joinPtr(ptr, kw, strconv.Itoa(i)), yield) {
					return false
				}
			}
		}
	}
	for _, kw := range applicatorKeywords.object {
		if m, ok := obj[kw].(map[string]any); ok {
			for name, child := range m {
				if !walkNode(child, joinPtr(ptr, kw, name), yield) {
					return false
				}
			}
		}
	}
	return true
}

func joinPtr(base string, segments ...string) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(EscapeSegment(s))
	}
	return sb.String()
}

// SubResources is the lazy sequence of every node yielded by Walk other
// than the root itself — candidates the Registry must each consider for
// their own "id" and anchors.
func (r Resource) SubResources() iter.Seq[SchemaNode] {
	return func(yield func(SchemaNode) bool) {
		for node := range r.Walk() {
			if node.Pointer == "" {
				continue
			}
			if !yield(node) {
				return
			}
		}
	}
}

// ResourceAnchor is a single named anchor declared somewhere beneath a resource.
type ResourceAnchor struct {
	Name    string
	Target  string // JSON pointer, relative to the resource root, of the anchor's target
	Dynamic bool
}

// Anchors is the lazy sequence of (name, target) pairs declared anywhere
// beneath the resource, honoring "$anchor", legacy "id: #name" fragments,
// and "$dynamicAnchor".
func (r Resource) Anchors() iter.Seq[ResourceAnchor] {
	return func(yield func(ResourceAnchor) bool) {
		for node := range r.Walk() {
			obj, ok := node.Value.(map[string]any)
			if !ok {
				continue
			}
			if r.Draft == Draft4 || r.Draft == Draft6 || r.Draft == Draft7 {
				if _, hasRef := obj["$ref"]; hasRef {
					// All other properties in a "$ref" object are ignored.
					continue
				}
				if idVal, ok := obj[r.Draft.IDKeyword()].(string); ok {
					if strings.HasPrefix(idVal, "#") && len(idVal) > 1 && !strings.HasPrefix(idVal, "#/") {
						if !yield(ResourceAnchor{Name: idVal[1:], Target: node.Pointer}) {
							return
						}
					}
				}
				continue
			}
			if name, ok := obj["$anchor"].(string); ok {
				if !yield(ResourceAnchor{Name: name, Target: node.Pointer}) {
					return
				}
			}
			if name, ok := obj["$dynamicAnchor"].(string); ok {
				if !yield(ResourceAnchor{Name: name, Target: node.Pointer, Dynamic: true}) {
					return
				}
			}
		}
	}
}
