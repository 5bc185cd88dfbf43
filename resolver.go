package jsonschema

// Resolver carries the compile-time state needed to make sense of a "$ref"
// encountered at some point in a schema document: which Registry to consult,
// what the current base URI is (for resolving relative references), and the
// stack of base URIs entered so far (used by $dynamicRef resolution and by
// circular-reference detection). Schema.resolveAnchorViaRegistry (ref.go)
// consults it as the fallback for an anchor that is not declared anywhere
// in the compiled *Schema tree — typically because it lives in a document
// the Registry discovered but has not compiled yet.
//
// $recursiveRef's own "outermost schema in scope" rule is instead resolved
// directly over compiled *Schema parent pointers (see ref.go/schema.go) and
// over the runtime call stack (DynamicScope, validate.go): both already have
// the schema objects in hand, so re-deriving the same answer from raw
// Registry documents would just be a second, redundant path to the same
// target.
//
// A Resolver is immutable: InScope returns a new value rather than mutating
// the receiver, so a single compilation can hold many resolvers live at once
// — one per point in the schema tree — all sharing the same Registry.
type Resolver struct {
	registry *Registry
	base     string
	scope    []string // outermost first
}

// NewResolver creates a root Resolver for the given base URI.
func NewResolver(registry *Registry, base string) Resolver {
	return Resolver{registry: registry, base: base, scope: []string{base}}
}

// Base returns the resolver's current base URI.
func (r Resolver) Base() string { return r.base }

// InScope returns a new Resolver with uri pushed onto the scope stack as the
// new base. The receiver is left untouched.
func (r Resolver) InScope(uri string) Resolver {
	scope := make([]string, len(r.scope), len(r.scope)+1)
	copy(scope, r.scope)
	scope = append(scope, uri)
	return Resolver{registry: r.registry, base: uri, scope: scope}
}

// IsCircular reports whether resolving reference against the current base
// would return to a URI already on the scope stack — i.e. following it would
// not make progress and must instead be satisfied by a $ref cycle in the
// compiled validator tree rather than by further resolution.
func (r Resolver) IsCircular(reference string) bool {
	resolved, err := ResolveAgainst(r.base, reference)
	if err != nil {
		return false
	}
	target := SetFragment(resolved, nil)
	for _, s := range r.scope {
		if SetFragment(s, nil) == target {
			return true
		}
	}
	return false
}

// Lookup resolves reference (a "$ref" value, absolute or relative, with or
// without a fragment) against the resolver's base, returning the schema
// value it points to.
func (r Resolver) Lookup(reference string) (any, error) {
	resolved, err := ResolveAgainst(r.base, reference)
	if err != nil {
		return nil, err
	}
	base := SetFragment(resolved, nil)
	res, err := r.registry.GetOrRetrieve(base)
	if err != nil {
		return nil, err
	}
	frag, hasFrag := fragmentOf(resolved)
	if !hasFrag || frag == "" {
		return res.Value, nil
	}
	if isJSONPointerFragment(frag) {
		return lookupPointer(res.Value, frag)
	}
	if value, _, ok := r.registry.ResolveAnchor(base, frag); ok {
		return value, nil
	}
	return nil, &AnchorNotFoundError{URI: base, Anchor: frag}
}

// LookupDynamicReference implements "$dynamicRef" resolution (Draft
// 2020-12): the outermost schema in scope that declares a "$dynamicAnchor"
// with this name wins; absent any such declaration, it behaves like a plain
// same-document anchor lookup against the current base.
func (r Resolver) LookupDynamicReference(name string) (any, error) {
	for _, scopeBase := range r.scope {
		base := SetFragment(scopeBase, nil)
		if value, dynamic, ok := r.registry.ResolveAnchor(base, name); ok && dynamic {
			return value, nil
		}
	}
	if value, _, ok := r.registry.ResolveAnchor(SetFragment(r.base, nil), name); ok {
		return value, nil
	}
	return nil, &AnchorNotFoundError{URI: r.base, Anchor: name}
}

// AnchorNotFoundError reports a fragment that is neither a JSON Pointer nor
// a declared "$anchor"/"$dynamicAnchor" name within the resource.
type AnchorNotFoundError struct {
	URI    string
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return "anchor " + quote(e.Anchor) + " not found in " + quote(e.URI)
}

func isJSONPointerFragment(frag string) bool {
	return frag == "" || frag[0] == '/'
}

func lookupPointer(root any, pointer string) (any, error) {
	cur := root
	for _, tok := range splitPointerTokens(pointer) {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, &AnchorNotFoundError{Anchor: pointer}
			}
			cur = next
		case []any:
			idx, ok := pointerIndex(tok, len(v))
			if !ok {
				return nil, &AnchorNotFoundError{Anchor: pointer}
			}
			cur = v[idx]
		default:
			return nil, &AnchorNotFoundError{Anchor: pointer}
		}
	}
	return cur, nil
}

func splitPointerTokens(pointer string) []string {
	if pointer == "" || pointer == "/" {
		if pointer == "/" {
			return []string{""}
		}
		return nil
	}
	var tokens []string
	start := 1
	for i := 1; i <= len(pointer); i++ {
		if i == len(pointer) || pointer[i] == '/' {
			tokens = append(tokens, UnescapeSegment(pointer[start:i]))
			start = i + 1
		}
	}
	return tokens
}

func pointerIndex(tok string, length int) (int, bool) {
	if tok == "-" {
		return -1, false
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n >= length {
		return 0, false
	}
	return n, true
}

// fragmentOf is a small helper bridging a resolved URI string to its
// fragment without re-exporting URI's internal *url.URL.
func fragmentOf(resolved string) (string, bool) {
	u, err := ParseURI(resolved)
	if err != nil {
		return "", false
	}
	return u.Fragment()
}
