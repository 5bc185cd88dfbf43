package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the registry/resolver layer (C1-C5: uri.go,
// pointer.go, resource.go, registry.go, resolver.go, context.go, draft.go)
// directly. Schema.resolveAnchorViaRegistry (ref.go) and Compiler.Compile's
// external-$ref path (compiler.go's resolveSchemaViaRegistry/
// enterExternalScope) both call into this layer for real, so these are unit
// tests of a production dependency, not a standalone subsystem.

func TestURIResolution(t *testing.T) {
	resolved, err := ResolveAgainst("https://example.com/a/b.json", "c.json")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/c.json", resolved)

	resolved, err = ResolveAgainst("https://example.com/a/b.json#/foo", "#/bar")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b.json#/bar", resolved)

	_, err = ResolveAgainst("https://example.com/a#/foo", "rel#/bar")
	require.Error(t, err)
	var bf *BaseHasFragmentError
	assert.ErrorAs(t, err, &bf)
}

func TestURIFragment(t *testing.T) {
	u, err := ParseURI("https://example.com/a#/foo/bar")
	require.NoError(t, err)
	frag, ok := u.Fragment()
	assert.True(t, ok)
	assert.Equal(t, "/foo/bar", frag)

	u, err = ParseURI("https://example.com/a")
	require.NoError(t, err)
	_, ok = u.Fragment()
	assert.False(t, ok)

	u, err = ParseURI("https://example.com/a#")
	require.NoError(t, err)
	_, ok = u.Fragment()
	assert.False(t, ok, "an explicit empty fragment canonicalizes to no fragment")
}

func TestSetFragment(t *testing.T) {
	assert.Equal(t, "https://example.com/a", SetFragment("https://example.com/a#/x", nil))
	name := "anchor1"
	assert.Equal(t, "https://example.com/a#anchor1", SetFragment("https://example.com/a", &name))
}

func TestPointerEscaping(t *testing.T) {
	assert.Equal(t, "a~0b~1c", EscapeSegment("a~b/c"))
	assert.Equal(t, "a~b/c", UnescapeSegment("a~0b~1c"))
}

func TestLocationString(t *testing.T) {
	loc := RootLocation.PushProperty("foo").PushIndex(2).PushProperty("bar/baz")
	assert.Equal(t, "/foo/2/bar~1baz", loc.String())
	assert.Equal(t, "", RootLocation.String())
}

func TestResourceIDAndDraftKeyword(t *testing.T) {
	res := NewResource(Draft2020, map[string]any{"$id": "https://example.com/schema#"})
	id, ok := res.ID()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/schema", id)

	legacy := NewResource(Draft4, map[string]any{"id": "https://example.com/legacy#"})
	id, ok = legacy.ID()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/legacy", id)
}

func TestResourceSubResourcesAndAnchors(t *testing.T) {
	doc := map[string]any{
		"$id": "https://example.com/root",
		"$defs": map[string]any{
			"named": map[string]any{
				"$anchor": "Named",
				"type":    "string",
			},
		},
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
		},
	}
	res := NewResource(Draft2020, doc)

	var pointers []string
	for node := range res.SubResources() {
		pointers = append(pointers, node.Pointer)
	}
	assert.Contains(t, pointers, "/$defs/named")
	assert.Contains(t, pointers, "/properties/a")

	var anchors []ResourceAnchor
	for a := range res.Anchors() {
		anchors = append(anchors, a)
	}
	require.Len(t, anchors, 1)
	assert.Equal(t, "Named", anchors[0].Name)
	assert.Equal(t, "/$defs/named", anchors[0].Target)
}

func TestRegistryPopulateAndLookup(t *testing.T) {
	reg := NewRegistry(nil)
	doc := map[string]any{
		"$id": "https://example.com/root.json",
		"$defs": map[string]any{
			"pos": map[string]any{
				"$anchor":  "Positive",
				"type":     "number",
				"minimum":  float64(0),
				"$comment": "reachable via #Positive",
			},
		},
	}
	err := reg.Populate("https://example.com/root.json", Draft2020, doc)
	require.NoError(t, err)

	got, ok := reg.Resource("https://example.com/root.json")
	require.True(t, ok)
	assert.Equal(t, Draft2020, got.Draft)

	value, dynamic, ok := reg.ResolveAnchor("https://example.com/root.json", "Positive")
	require.True(t, ok)
	assert.False(t, dynamic)
	asObj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "number", asObj["type"])
}

func TestRegistryExternalRetrieval(t *testing.T) {
	external := map[string]any{
		"$id":  "https://example.com/external.json",
		"type": "string",
	}
	retriever := MapRetriever{"https://example.com/external.json": external}
	reg := NewRegistry(retriever)

	doc := map[string]any{
		"$id":  "https://example.com/root.json",
		"$ref": "https://example.com/external.json",
	}
	err := reg.Populate("https://example.com/root.json", Draft2020, doc)
	require.NoError(t, err)

	res, ok := reg.Resource("https://example.com/external.json")
	require.True(t, ok, "external $ref target should have been discovered and fetched")
	asObj, ok := res.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", asObj["type"])
}

func TestRegistryGetOrRetrieveUnknown(t *testing.T) {
	reg := NewRegistry(nil)
	_, err := reg.GetOrRetrieve("https://example.com/missing.json")
	require.Error(t, err)
	var unretrievable *UnretrievableError
	assert.ErrorAs(t, err, &unretrievable)
}

func TestResolverLookupLocalAndAnchor(t *testing.T) {
	reg := NewRegistry(nil)
	doc := map[string]any{
		"$id": "https://example.com/root.json",
		"$defs": map[string]any{
			"str": map[string]any{"$anchor": "Str", "type": "string"},
		},
	}
	require.NoError(t, reg.Populate("https://example.com/root.json", Draft2020, doc))

	resolver := NewResolver(reg, "https://example.com/root.json")

	value, err := resolver.Lookup("#/$defs/str")
	require.NoError(t, err)
	asObj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", asObj["type"])

	value, err = resolver.Lookup("#Str")
	require.NoError(t, err)
	asObj, ok = value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", asObj["type"])
}

func TestResolverIsCircular(t *testing.T) {
	reg := NewRegistry(nil)
	root := NewResolver(reg, "https://example.com/root.json")
	inner := root.InScope("https://example.com/root.json#/$defs/a")

	assert.True(t, inner.IsCircular("https://example.com/root.json"))
	assert.False(t, inner.IsCircular("https://example.com/other.json"))
}

func TestResolverDynamicReference(t *testing.T) {
	reg := NewRegistry(nil)
	doc := map[string]any{
		"$id":            "https://example.com/root.json",
		"$dynamicAnchor": "Node",
		"type":           "object",
	}
	require.NoError(t, reg.Populate("https://example.com/root.json", Draft2020, doc))

	root := NewResolver(reg, "https://example.com/root.json")
	scoped := root.InScope("https://example.com/root.json")

	value, err := scoped.LookupDynamicReference("Node")
	require.NoError(t, err)
	asObj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", asObj["type"])

	_, err = scoped.LookupDynamicReference("NoSuchAnchor")
	require.Error(t, err)
}

func TestDraftFromSchemaURI(t *testing.T) {
	d, ok := DraftFromSchemaURI("https://json-schema.org/draft/2020-12/schema")
	require.True(t, ok)
	assert.Equal(t, Draft2020, d)

	d, ok = DraftFromSchemaURI("http://json-schema.org/draft-07/schema#")
	require.True(t, ok)
	assert.Equal(t, Draft7, d)

	_, ok = DraftFromSchemaURI("not-a-known-schema")
	assert.False(t, ok)
}

func TestCompileContextScopeAndCycleDetection(t *testing.T) {
	reg := NewRegistry(nil)
	cc := newCompileContext(reg, Draft2020, "https://example.com/root.json")

	assert.True(t, cc.markSeen("https://example.com/sub.json"))
	assert.False(t, cc.markSeen("https://example.com/sub.json"))

	child := cc.withScope("https://example.com/sub.json")
	assert.True(t, child.isCircular("https://example.com/sub.json"))
	assert.Equal(t, "https://example.com/sub.json", child.location())

	// seen is shared across scopes, not copied.
	assert.False(t, child.markSeen("https://example.com/sub.json"))
}

func TestResolveAnchorFallsBackToRegistry(t *testing.T) {
	compiler := NewCompiler()
	compiler.Registry = NewRegistry(nil)
	require.NoError(t, compiler.Registry.Populate("https://example.com/root.json", Draft2020, map[string]any{
		"$id": "https://example.com/root.json",
		"$defs": map[string]any{
			"pos": map[string]any{"$anchor": "Positive", "type": "number", "minimum": float64(0)},
		},
	}))

	schema, err := compiler.Compile([]byte(`{"$id": "https://example.com/root.json", "type": "object"}`))
	require.NoError(t, err)

	// The anchor was populated into the Registry directly, not compiled into
	// schema's own anchors map, so resolveAnchor must fall through to
	// resolveAnchorViaRegistry to find it.
	resolved, err := schema.resolveAnchor("Positive")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.NotNil(t, resolved.Minimum)
}
