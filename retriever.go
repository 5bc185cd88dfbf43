package jsonschema

import "errors"

// Retriever fetches the document a schema resource resides at, keyed by its
// absolute URI (scheme + authority + path, no fragment). It is the external
// collaborator the Registry calls out to whenever discovery crosses outside
// the document(s) the caller supplied directly — over HTTP, from a local
// file tree, from an in-memory map, or any other source the caller wires up.
//
// The returned value may be raw JSON ([]byte or string) or an already
// decoded `any` tree; the Registry accepts either.
type Retriever interface {
	Retrieve(uri string) (any, error)
}

// RetrieverFunc adapts a plain function to the Retriever interface.
type RetrieverFunc func(uri string) (any, error)

// Retrieve calls f(uri).
func (f RetrieverFunc) Retrieve(uri string) (any, error) { return f(uri) }

// ErrDefaultRetrieverRefuses is returned by defaultRetriever for every URI:
// a validator with no configured Retriever cannot reach outside the
// document(s) it was built from, by design — fetching arbitrary network or
// filesystem locations on a schema author's behalf is an explicit opt-in.
var ErrDefaultRetrieverRefuses = errors.New("jsonschema: no retriever configured; external references are not fetched by default")

// defaultRetriever is used when NewRegistry is given a nil Retriever.
type defaultRetriever struct{}

func (defaultRetriever) Retrieve(string) (any, error) {
	return nil, ErrDefaultRetrieverRefuses
}

// MapRetriever is a Retriever backed by a fixed in-memory set of documents,
// keyed by absolute URI. Useful for tests and for embedding a closed set of
// known schemas without hitting the network.
type MapRetriever map[string]any

// Retrieve returns the document registered at uri, or an error if none was.
func (m MapRetriever) Retrieve(uri string) (any, error) {
	doc, ok := m[uri]
	if !ok {
		return nil, &UnretrievableError{URI: uri, Err: errors.New("not found in MapRetriever")}
	}
	return doc, nil
}
