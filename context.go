package jsonschema

// compileContext is the per-compilation state threaded alongside a Schema
// tree as it is built: which draft governs keyword semantics at this point,
// a Resolver scoped to the current base URI, and the set of reference URIs
// already being compiled along the current path (so a cycle is reported as a
// CircularExternalReferenceError instead of recursing forever).
//
// It is deliberately small: the bulk of same-document reference resolution
// still goes through Schema.resolveRef/resolveRefWithFullURL (ref.go), which
// walks the compiled *Schema tree directly. compileContext is where
// cross-document resolution lives instead: Compiler.enterExternalScope/
// leaveExternalScope (compiler.go) push and pop the chain of external "$ref"
// URIs currently being fetched-and-compiled through this context's Resolver,
// so an A-references-B-references-A cycle between two documents neither of
// which has finished compiling yet (so neither is in Compiler.schemas) is
// caught by isCircular/markSeen instead of recursing until the stack
// overflows. Schema.resolveAnchorViaRegistry (ref.go) uses a Resolver the
// same way for anchors the compiled tree itself never learned about.
type compileContext struct {
	draft    Draft
	resolver Resolver
	seen     map[string]bool
}

// newCompileContext starts a compileContext rooted at baseURI.
func newCompileContext(registry *Registry, draft Draft, baseURI string) *compileContext {
	return &compileContext{
		draft:    draft,
		resolver: NewResolver(registry, baseURI),
		seen:     make(map[string]bool),
	}
}

// withScope returns a child compileContext entered at uri, sharing the same
// draft and seen-set (seen is intentionally shared, not copied: once a URI
// is being compiled anywhere on the current path, every descendant must see
// it to detect cycles).
func (cc *compileContext) withScope(uri string) *compileContext {
	return &compileContext{
		draft:    cc.draft,
		resolver: cc.resolver.InScope(uri),
		seen:     cc.seen,
	}
}

// markSeen records that uri is currently being compiled, returning false if
// it already was (a cycle).
func (cc *compileContext) markSeen(uri string) bool {
	if cc.seen[uri] {
		return false
	}
	cc.seen[uri] = true
	return true
}

// isCircular reports whether reference, resolved against the current scope,
// points back to a URI already on the scope stack.
func (cc *compileContext) isCircular(reference string) bool {
	return cc.resolver.IsCircular(reference)
}

// location returns the resolver's current base URI, used as the schema
// location for annotations/errors produced at this point in the tree.
func (cc *compileContext) location() string {
	return cc.resolver.Base()
}
