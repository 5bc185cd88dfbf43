package jsonschema

import (
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
)

// anchorEntry records the schema value a named anchor points to.
type anchorEntry struct {
	value   any
	dynamic bool
}

// Registry is the single source of truth for every schema resource the
// compiler has discovered, keyed by absolute base URI (no fragment). It owns
// the fixpoint discovery pass (Populate) that walks a document, registers
// every "$id"-bearing node as its own resource, records anchors, and follows
// external "$ref"/"$recursiveRef"/"$dynamicRef" URIs through the configured
// Retriever until no new resource is discovered. "$schema" URIs are not
// followed.
//
// Grounded on santhosh-tekuri/jsonschema's root/resource/roots model
// (_examples/other_examples root.go): a resources-by-pointer map plus a
// collectResources/collectAnchors discovery pass, adapted here to run ahead
// of compilation rather than lazily during it.
type Registry struct {
	mu        sync.Mutex
	resources map[string]Resource
	anchors   map[string]map[string]anchorEntry
	retriever Retriever
	fetched   map[string]bool
}

// NewRegistry creates an empty Registry backed by the given Retriever for
// external resources. A nil Retriever uses defaultRetriever, which always
// fails — every resource must then be supplied via Populate directly.
func NewRegistry(retriever Retriever) *Registry {
	if retriever == nil {
		retriever = defaultRetriever{}
	}
	return &Registry{
		resources: make(map[string]Resource),
		anchors:   make(map[string]map[string]anchorEntry),
		retriever: retriever,
		fetched:   make(map[string]bool),
	}
}

// Populate registers doc (already decoded to `any`) as the resource rooted
// at base, then discovers every nested "$id" boundary and anchor beneath it,
// and finally drains any externally-referenced URIs through the Retriever,
// repeating until no new resource is discovered (BFS to fixpoint, §4.3).
func (reg *Registry) Populate(base string, draft Draft, doc any) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	pending := map[string]bool{base: true}
	reg.visit(doc, base, draft, pending)

	for {
		external := reg.pendingExternalRefs(pending)
		if len(external) == 0 {
			return nil
		}
		progressed := false
		for _, uri := range external {
			if reg.fetched[uri] {
				continue
			}
			reg.fetched[uri] = true
			if _, ok := reg.resources[uri]; ok {
				continue
			}
			raw, err := reg.retriever.Retrieve(uri)
			if err != nil {
				// Unretrievable external references are left for the
				// resolver to report lazily, at the point a keyword
				// actually needs them — discovery does not fail the whole
				// compile over an optional/unused $ref.
				continue
			}
			parsed, parseErr := decodeJSON(raw)
			if parseErr != nil {
				continue
			}
			childDraft := draft
			if obj, ok := parsed.(map[string]any); ok {
				if sch, ok := obj["$schema"].(string); ok {
					if d, ok := DraftFromSchemaURI(sch); ok {
						childDraft = d
					}
				}
			}
			reg.visit(parsed, uri, childDraft, pending)
			progressed = true
		}
		if !progressed {
			return nil
		}
	}
}

// decodeJSON accepts either raw bytes/string or an already-decoded `any`
// value, so a Retriever may hand back whichever is most natural for its
// source.
func decodeJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case []byte:
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil, err
		}
		return out, nil
	case string:
		var out any
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return raw, nil
	}
}

// visit walks value, which lives at the given base URI, registering it (and
// every id-bearing descendant it finds) as a Resource, and recording every
// anchor along the way. Externally-referenced URIs it encounters ("$ref",
// "$recursiveRef", "$dynamicRef" values that are not local fragments) are
// added to pending for the fixpoint loop to chase.
func (reg *Registry) visit(value any, base string, draft Draft, pending map[string]bool) {
	obj, ok := value.(map[string]any)
	if !ok {
		return
	}

	nodeBase := base
	res := NewResource(draft, value)
	if id, ok := res.ID(); ok {
		if resolved, err := ResolveAgainst(base, id); err == nil {
			nodeBase = resolved
		}
	}
	if _, exists := reg.resources[nodeBase]; !exists {
		reg.resources[nodeBase] = NewResource(draft, value)
	}

	if reg.anchors[nodeBase] == nil {
		reg.anchors[nodeBase] = make(map[string]anchorEntry)
	}
	reg.recordLocalAnchors(obj, nodeBase, draft)

	for _, kw := range []string{"$ref", "$recursiveRef", "$dynamicRef"} {
		if ref, ok := obj[kw].(string); ok {
			reg.queueExternal(ref, nodeBase, pending)
		}
	}

	for _, kw := range applicatorKeywords.single {
		if child, ok := obj[kw]; ok {
			reg.visit(child, nodeBase, draft, pending)
		}
	}
	for _, kw := range applicatorKeywords.list {
		if arr, ok := obj[kw].([]any); ok {
			for _, child := range arr {
				reg.visit(child, nodeBase, draft, pending)
			}
		}
	}
	for _, kw := range applicatorKeywords.object {
		if m, ok := obj[kw].(map[string]any); ok {
			for _, child := range m {
				reg.visit(child, nodeBase, draft, pending)
			}
		}
	}
}

// recordLocalAnchors inspects obj itself (not its descendants) for
// "$anchor"/"$dynamicAnchor", or a fragment-only legacy "id"/"$id" for pre
// Draft2019 drafts.
func (reg *Registry) recordLocalAnchors(obj map[string]any, base string, draft Draft) {
	if draft == Draft4 || draft == Draft6 || draft == Draft7 {
		if idVal, ok := obj[draft.IDKeyword()].(string); ok {
			if strings.HasPrefix(idVal, "#") && len(idVal) > 1 && !strings.HasPrefix(idVal, "#/") {
				reg.anchors[base][idVal[1:]] = anchorEntry{value: obj}
			}
		}
		return
	}
	if name, ok := obj["$anchor"].(string); ok {
		reg.anchors[base][name] = anchorEntry{value: obj}
	}
	if name, ok := obj["$dynamicAnchor"].(string); ok {
		reg.anchors[base][name] = anchorEntry{value: obj, dynamic: true}
	}
}

// queueExternal records ref, resolved against base and with its fragment
// removed, as pending discovery. A purely local fragment reference resolves
// to base itself, which pendingExternalRefs skips because base is already
// registered.
func (reg *Registry) queueExternal(ref, base string, pending map[string]bool) {
	resolved, err := ResolveAgainst(base, ref)
	if err != nil {
		return
	}
	withoutFragment := SetFragment(resolved, nil)
	if withoutFragment == "" {
		return
	}
	pending[withoutFragment] = true
}

func (reg *Registry) pendingExternalRefs(pending map[string]bool) []string {
	var out []string
	for uri := range pending {
		if _, ok := reg.resources[uri]; !ok && !reg.fetched[uri] {
			out = append(out, uri)
		}
	}
	return out
}

// GetOrRetrieve returns the Resource registered at uri (fragment-stripped),
// attempting a just-in-time Retriever fetch and registration if it is not
// already known.
func (reg *Registry) GetOrRetrieve(uri string) (Resource, error) {
	base := SetFragment(uri, nil)

	reg.mu.Lock()
	if res, ok := reg.resources[base]; ok {
		reg.mu.Unlock()
		return res, nil
	}
	reg.mu.Unlock()

	raw, err := reg.retriever.Retrieve(base)
	if err != nil {
		return Resource{}, &UnretrievableError{URI: base, Err: err}
	}
	parsed, err := decodeJSON(raw)
	if err != nil {
		return Resource{}, &UnretrievableError{URI: base, Err: err}
	}
	draft := LatestDraft
	if obj, ok := parsed.(map[string]any); ok {
		if sch, ok := obj["$schema"].(string); ok {
			if d, ok := DraftFromSchemaURI(sch); ok {
				draft = d
			}
		}
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.visit(parsed, base, draft, map[string]bool{})
	return reg.resources[base], nil
}

// ResolveAnchor looks up a named anchor within the resource at base,
// returning the schema value it points to and whether it was declared
// dynamic.
func (reg *Registry) ResolveAnchor(base, name string) (value any, dynamic bool, ok bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	entry, ok := reg.anchors[base][name]
	return entry.value, entry.dynamic, ok
}

// Resource returns the resource registered at uri (fragment-stripped), if any.
func (reg *Registry) Resource(uri string) (Resource, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	res, ok := reg.resources[SetFragment(uri, nil)]
	return res, ok
}

// UnretrievableError reports a failure to fetch an external resource.
type UnretrievableError struct {
	URI string
	Err error
}

func (e *UnretrievableError) Error() string {
	return "could not retrieve " + quote(e.URI) + ": " + e.Err.Error()
}

func (e *UnretrievableError) Unwrap() error { return e.Err }
