package jsonschema

// Draft identifies which revision of the JSON Schema specification a
// schema resource was written against. The active draft changes keyword
// spelling (id vs $id), the shape of a handful of keywords (exclusiveMaximum
// as a boolean flag vs a standalone number), and which reference keywords
// exist ($recursiveRef vs $dynamicRef). Whether "format" asserts does not
// depend on the draft: evaluateFormat asserts only when Compiler.AssertFormat
// is set.
type Draft int

const (
	// DraftUnknown means no recognized $schema was found; the compiler
	// uses LatestDraft instead.
	DraftUnknown Draft = iota
	Draft4
	Draft6
	Draft7
	Draft2019
	Draft2020
)

// String returns a human readable name for the draft, used in error messages.
func (d Draft) String() string {
	switch d {
	case Draft4:
		return "draft4"
	case Draft6:
		return "draft6"
	case Draft7:
		return "draft7"
	case Draft2019:
		return "2019-09"
	case Draft2020:
		return "2020-12"
	default:
		return "unknown"
	}
}

// draftSchemaURIs maps a recognized $schema URI to its draft. Draft 4, 6
// and 7 are accepted under both http and https, mirroring real-world schema
// documents that predate the https migration; 2019-09 and 2020-12 are
// accepted under https only.
var draftSchemaURIs = map[string]Draft{
	"http://json-schema.org/draft-04/schema#":  Draft4,
	"https://json-schema.org/draft-04/schema#": Draft4,
	"http://json-schema.org/draft-06/schema#":  Draft6,
	"https://json-schema.org/draft-06/schema#": Draft6,
	"http://json-schema.org/draft-07/schema#":  Draft7,
	"https://json-schema.org/draft-07/schema#": Draft7,
	"https://json-schema.org/draft/2019-09/schema":  Draft2019,
	"https://json-schema.org/draft/2019-09/schema#": Draft2019,
	"https://json-schema.org/draft/2020-12/schema":  Draft2020,
	"https://json-schema.org/draft/2020-12/schema#": Draft2020,
}

// DraftFromSchemaURI resolves a "$schema" value to a known draft. The
// trailing fragment marker is optional on either side of the comparison.
func DraftFromSchemaURI(uri string) (Draft, bool) {
	if uri == "" {
		return DraftUnknown, false
	}
	if d, ok := draftSchemaURIs[uri]; ok {
		return d, true
	}
	if d, ok := draftSchemaURIs[uri+"#"]; ok {
		return d, true
	}
	return DraftUnknown, false
}

// IDKeyword returns the keyword that spells a schema's identifier: "id" for
// Draft4, "$id" for every later draft.
func (d Draft) IDKeyword() string {
	if d == Draft4 {
		return "id"
	}
	return "$id"
}

// HasDynamicRef reports whether $dynamicRef/$dynamicAnchor are part of this
// draft's vocabulary (2020-12 only).
func (d Draft) HasDynamicRef() bool {
	return d == Draft2020
}

// HasRecursiveRef reports whether $recursiveRef/$recursiveAnchor are part of
// this draft's vocabulary (2019-09 only; 2020-12 replaced them with
// $dynamicRef/$dynamicAnchor).
func (d Draft) HasRecursiveRef() bool {
	return d == Draft2019
}

// FormatAssertsByDefault reports whether "format" is conventionally an
// assertion (rather than a pure annotation) for this draft: Draft4/6/7
// validators conventionally assert formats; 2019-09/2020-12 require the
// format-assertion vocabulary to be explicitly enabled. Nothing in this
// package calls it; evaluateFormat decides from Compiler.AssertFormat alone.
func (d Draft) FormatAssertsByDefault() bool {
	switch d {
	case Draft4, Draft6, Draft7:
		return true
	default:
		return false
	}
}

// DefinitionsKeyword returns the keyword used for the reusable-schemas
// bucket: "definitions" pre-2019-09, "$defs" from 2019-09 onward. Both are
// always accepted on read (Schema.UnmarshalJSON folds "definitions" into
// Defs when "$defs" is absent); this is used only when a schema is
// constructed programmatically.
func (d Draft) DefinitionsKeyword() string {
	if d == Draft2019 || d == Draft2020 {
		return "$defs"
	}
	return "definitions"
}

// metaSchemaURI returns the canonical meta-schema URI for a draft. Nothing
// in this package calls it: meta-schema validation picks the embedded
// document by Draft (metaschemas.go), not by URI.
func (d Draft) metaSchemaURI() string {
	switch d {
	case Draft4:
		return "http://json-schema.org/draft-04/schema#"
	case Draft6:
		return "http://json-schema.org/draft-06/schema#"
	case Draft7:
		return "http://json-schema.org/draft-07/schema#"
	case Draft2019:
		return "https://json-schema.org/draft/2019-09/schema"
	case Draft2020:
		return "https://json-schema.org/draft/2020-12/schema"
	default:
		return ""
	}
}

// LatestDraft is used when a schema declares no recognized $schema. The
// Compiler has no option to choose a different default.
const LatestDraft = Draft2020
