package jsonschema

import (
	"embed"
	"sync"
)

//go:embed metaschemas/*.json
var metaschemasFS embed.FS

// metaschemaFiles maps each draft to the embedded document that checks the
// structural shape (not the full official vocabulary) of a schema written
// against it. Compiling these documents never triggers meta-schema
// validation of themselves: metaschemaCompiler is a dedicated Compiler with
// WithoutSchemaValidation already set, so there is no recursion to guard
// against.
var metaschemaFiles = map[Draft]string{
	Draft4:    "metaschemas/draft-04.json",
	Draft6:    "metaschemas/draft-06.json",
	Draft7:    "metaschemas/draft-07.json",
	Draft2019: "metaschemas/2019-09.json",
	Draft2020: "metaschemas/2020-12.json",
}

var (
	metaschemasOnce    sync.Once
	metaschemaByDraft  map[Draft]*Schema
	metaschemaCompiler *Compiler
)

// loadMetaschemas compiles every embedded metaschema document exactly once,
// using an isolated Compiler so compiling them never re-enters meta-schema
// validation.
func loadMetaschemas() {
	metaschemaCompiler = NewCompiler().WithoutSchemaValidation()
	metaschemaByDraft = make(map[Draft]*Schema, len(metaschemaFiles))
	for draft, path := range metaschemaFiles {
		data, err := metaschemasFS.ReadFile(path)
		if err != nil {
			continue
		}
		schema, err := metaschemaCompiler.Compile(data)
		if err != nil {
			continue
		}
		metaschemaByDraft[draft] = schema
	}
}

// validateAgainstMetaschema checks doc (the decoded schema document being
// compiled, not an instance) against the compact structural metaschema for
// draft. A draft with no embedded metaschema, or a doc that is a bare
// boolean schema, is left unchecked rather than rejected: the goal is to
// catch the keyword-shape mistakes a document author is most likely to
// make, not to re-implement the official per-draft vocabulary.
func validateAgainstMetaschema(draft Draft, doc any) *EvaluationResult {
	metaschemasOnce.Do(loadMetaschemas)

	schema, ok := metaschemaByDraft[draft]
	if !ok {
		return nil
	}
	if _, isBool := doc.(bool); isBool {
		return nil
	}
	return schema.Validate(doc)
}
