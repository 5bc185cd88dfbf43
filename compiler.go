package jsonschema

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/goccy/go-yaml"
)

// FormatDef defines a custom format validation rule
type FormatDef struct {
	// Type specifies which JSON Schema type this format applies to (optional)
	// Supported values: "string", "number", "integer", "boolean", "array", "object"
	// Empty string means applies to all types
	Type string

	// Validate is the validation function
	Validate func(any) bool
}

// Compiler represents a JSON Schema compiler that manages schema compilation and caching.
type Compiler struct {
	mu             sync.RWMutex                                       // Protects concurrent access to schemas map
	schemas        map[string]*Schema                                 // Cache of compiled schemas.
	unresolvedRefs map[string][]*Schema                               // Track schemas that have unresolved references by URI
	Decoders       map[string]func(string) ([]byte, error)            // Decoders for various encoding formats.
	MediaTypes     map[string]func([]byte) (any, error)               // Media type handlers for unmarshalling data.
	Loaders        map[string]func(url string) (io.ReadCloser, error) // Functions to load schemas from URLs.
	DefaultBaseURI string                                             // Base URI used to resolve relative references.
	AssertFormat   bool                                               // Flag to enforce format validation.
	PreserveExtra  bool                                               // Keep keywords outside the specification on Schema.Extra instead of discarding them.

	// JSON encoder/decoder configuration
	jsonEncoder func(v any) ([]byte, error)
	jsonDecoder func(data []byte, v any) error

	// Default function registry
	defaultFuncs map[string]DefaultFunc // Registry for dynamic default value functions

	// Custom format registry
	customFormats   map[string]*FormatDef // Registry for custom format definitions
	customFormatsRW sync.RWMutex          // Protects concurrent access to custom formats

	// Registry discovers and caches every schema resource reachable from a
	// compiled document (including externally-retrieved ones), ahead of and
	// independent from the Schema tree built by initializeSchema.
	Registry *Registry

	// externalCtx tracks the chain of external ("$ref" to an undiscovered
	// URI) resolutions currently in flight, so resolveSchemaViaRegistry can
	// detect A-references-B-references-A cycles between documents that have
	// not finished compiling yet (and so are not in c.schemas) instead of
	// recursing until the stack overflows.
	externalCtx *compileContext

	// withoutSchemaValidation skips validating an incoming schema document
	// against its draft's metaschema before compiling it. Set via
	// WithoutSchemaValidation; the metaschemaCompiler used internally to
	// compile the metaschemas themselves always has this set, so that
	// compiling a metaschema never tries to validate itself.
	withoutSchemaValidation bool
}

// DefaultFunc represents a function that can generate dynamic default values
type DefaultFunc func(args ...any) (any, error)

// NewCompiler creates a new Compiler instance and initializes it with default settings.
func NewCompiler() *Compiler {
	compiler := &Compiler{
		schemas:        make(map[string]*Schema),
		unresolvedRefs: make(map[string][]*Schema),
		Decoders:       make(map[string]func(string) ([]byte, error)),
		MediaTypes:     make(map[string]func([]byte) (any, error)),
		Loaders:        make(map[string]func(url string) (io.ReadCloser, error)),
		DefaultBaseURI: "",
		AssertFormat:   false,
		defaultFuncs:   make(map[string]DefaultFunc),
		customFormats:  make(map[string]*FormatDef),
		Registry:       NewRegistry(nil),

		// Default to go-json-experiment JSON implementation
		jsonEncoder: func(v any) ([]byte, error) { return json.Marshal(v) },
		jsonDecoder: func(data []byte, v any) error { return json.Unmarshal(data, v) },
	}
	compiler.initDefaults()
	return compiler
}

// WithRetriever configures the Retriever the Compiler's Registry uses to
// fetch schema resources referenced from outside the document(s) passed to
// Compile/CompileBatch directly.
func (c *Compiler) WithRetriever(retriever Retriever) *Compiler {
	c.Registry = NewRegistry(retriever)
	return c
}

// populateRegistry decodes raw and registers it in the Compiler's Registry
// under base, best-effort: a malformed document or an unresolvable external
// reference never fails Compile itself, since the Schema tree built from
// the same bytes is still perfectly usable for everything that doesn't
// cross outside it. Failures surface later, lazily, if and when a keyword
// actually needs the missing resource.
func (c *Compiler) populateRegistry(base string, draft Draft, raw []byte) {
	decoded, err := decodeJSON(raw)
	if err != nil {
		return
	}
	_ = c.Registry.Populate(base, draft, decoded)
}

// WithEncoderJSON configures custom JSON encoder implementation
func (c *Compiler) WithEncoderJSON(encoder func(v any) ([]byte, error)) *Compiler {
	c.jsonEncoder = encoder
	return c
}

// WithDecoderJSON configures custom JSON decoder implementation
func (c *Compiler) WithDecoderJSON(decoder func(data []byte, v any) error) *Compiler {
	c.jsonDecoder = decoder
	return c
}

// WithoutSchemaValidation disables validating each compiled schema document
// against its draft's metaschema. By default a document that fails
// meta-schema validation is rejected: Compile returns no schema and a
// *SchemaValidationError. This exists for callers who compile documents
// known-good ahead of time and want to skip the extra pass.
func (c *Compiler) WithoutSchemaValidation() *Compiler {
	c.withoutSchemaValidation = true
	return c
}

// Compile compiles a JSON schema and caches it. If the schema has no $id and a URI is provided, that URI becomes its ID; the schema is cached under its ID only when that is a valid URI, and is not cached otherwise.
func (c *Compiler) Compile(jsonSchema []byte, uris ...string) (*Schema, error) {
	schema, err := newSchema(jsonSchema)
	if err != nil {
		return nil, err
	}

	if schema.ID == "" && len(uris) > 0 {
		schema.ID = uris[0]
	}

	uri := schema.ID

	if uri != "" && isValidURI(uri) {
		schema.uri = uri

		c.mu.RLock()
		existingSchema, exists := c.schemas[uri]
		c.mu.RUnlock()

		if exists {
			return existingSchema, nil
		}
	}

	draft := LatestDraft
	if d, ok := DraftFromSchemaURI(schema.Schema); ok {
		draft = d
	}

	if !c.withoutSchemaValidation {
		if decoded, decodeErr := decodeJSON(jsonSchema); decodeErr == nil {
			if result := validateAgainstMetaschema(draft, decoded); result != nil && !result.IsValid() {
				return nil, &SchemaValidationError{URI: uri, Result: result}
			}
		}
	}

	schema.initializeSchema(c, nil)

	if err := schema.validateRegexSyntax(); err != nil {
		return nil, err
	}

	registryBase := schema.uri
	if registryBase == "" {
		registryBase = c.DefaultBaseURI
	}
	c.populateRegistry(registryBase, draft, jsonSchema)

	c.mu.Lock()
	if schema.uri != "" && isValidURI(schema.uri) {
		c.schemas[schema.uri] = schema
	}

	// Track unresolved references from this schema
	c.trackUnresolvedReferences(schema)

	// If this schema has a URI, check if any previously compiled schemas were waiting for it
	var schemasToResolve []*Schema
	if schema.uri != "" {
		if waitingSchemas, exists := c.unresolvedRefs[schema.uri]; exists {
			schemasToResolve = make([]*Schema, len(waitingSchemas))
			copy(schemasToResolve, waitingSchemas)
			delete(c.unresolvedRefs, schema.uri) // Clear the waiting list
		}
	}
	c.mu.Unlock()

	// Only re-resolve schemas that were actually waiting for this URI
	for _, waitingSchema := range schemasToResolve {
		waitingSchema.ResolveUnresolvedReferences()
		// Re-track any still unresolved references
		c.mu.Lock()
		c.trackUnresolvedReferences(waitingSchema)
		c.mu.Unlock()
	}

	return schema, nil
}

// trackUnresolvedReferences tracks which schemas have unresolved references to which URIs
// This method should be called with mutex locked
func (c *Compiler) trackUnresolvedReferences(schema *Schema) {
	unresolvedURIs := schema.GetUnresolvedReferenceURIs()
	for _, uri := range unresolvedURIs {
		if c.unresolvedRefs[uri] == nil {
			c.unresolvedRefs[uri] = make([]*Schema, 0)
		}
		// Check if schema is already in the list to avoid duplicates
		found := false
		for _, existing := range c.unresolvedRefs[uri] {
			if existing == schema {
				found = true
				break
			}
		}
		if !found {
			c.unresolvedRefs[uri] = append(c.unresolvedRefs[uri], schema)
		}
	}
}

// resolveSchemaURL attempts to fetch and compile a schema from a URL.
func (c *Compiler) resolveSchemaURL(url string) (*Schema, error) {
	id, anchor := splitRef(url)

	c.mu.RLock()
	schema, exists := c.schemas[id]
	c.mu.RUnlock()

	if exists {
		return schema, nil // Return cached schema if available
	}

	loader, ok := c.Loaders[getURLScheme(url)]
	if !ok {
		return c.resolveSchemaViaRegistry(id, anchor)
	}

	body, err := loader(url)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, ErrDataRead
	}

	compiledSchema, err := c.Compile(data, id)

	if err != nil {
		return nil, err
	}

	if anchor != "" {
		return compiledSchema.resolveAnchor(anchor)
	}

	return compiledSchema, nil
}

// resolveSchemaViaRegistry is the fallback path for schemes that have no
// registered Loader (e.g. a bare "https://" URI when RegisterLoader was
// never called for it, or any scheme a caller's Retriever understands that
// the Compiler's Loaders do not, such as a custom "git://" or in-memory namespace).
// It asks the Compiler's Registry — and therefore its pluggable Retriever —
// for the raw document, then compiles and caches it exactly as the Loader
// path does.
func (c *Compiler) resolveSchemaViaRegistry(id, anchor string) (*Schema, error) {
	parent, err := c.enterExternalScope(id)
	if err != nil {
		return nil, err
	}
	defer func() {
		c.leaveExternalScope(parent)
		c.mu.Lock()
		delete(parent.seen, id)
		c.mu.Unlock()
	}()

	res, err := c.Registry.GetOrRetrieve(id)
	if err != nil {
		return nil, ErrNoLoaderRegistered
	}

	data, err := c.jsonEncoder(res.Value)
	if err != nil {
		return nil, ErrDataRead
	}

	compiledSchema, err := c.Compile(data, id)
	if err != nil {
		return nil, err
	}

	if anchor != "" {
		return compiledSchema.resolveAnchor(anchor)
	}
	return compiledSchema, nil
}

// enterExternalScope pushes id onto the Compiler's shared external-resolution
// scope via compileContext/Resolver (InScope/IsCircular, §4.4), returning the
// parent context to restore on exit and a CircularExternalReferenceError if
// id is already being resolved somewhere on the current chain.
func (c *Compiler) enterExternalScope(id string) (parent *compileContext, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.externalCtx == nil {
		c.externalCtx = newCompileContext(c.Registry, LatestDraft, id)
	}
	parent = c.externalCtx

	if parent.isCircular(id) || !parent.markSeen(id) {
		return parent, &CircularExternalReferenceError{URI: id}
	}

	c.externalCtx = parent.withScope(id)
	return parent, nil
}

// leaveExternalScope restores the Compiler's external-resolution context to
// parent once the recursive c.Compile call for the child scope has returned.
func (c *Compiler) leaveExternalScope(parent *compileContext) {
	c.mu.Lock()
	c.externalCtx = parent
	c.mu.Unlock()
}

// CircularExternalReferenceError reports a "$ref" chain across externally
// retrieved documents that never bottoms out at an already-compiled schema.
type CircularExternalReferenceError struct {
	URI string
}

func (e *CircularExternalReferenceError) Error() string {
	return "circular external reference to " + quote(e.URI)
}

// SchemaValidationError reports that a schema document failed its draft's
// metaschema check (see WithoutSchemaValidation). Result carries the
// underlying per-keyword failures for callers that want to inspect or
// localize them rather than just read Error().
type SchemaValidationError struct {
	URI    string
	Result *EvaluationResult
}

func (e *SchemaValidationError) Error() string {
	label := e.URI
	if label == "" {
		label = "<anonymous>"
	}
	return "schema " + quote(label) + " does not conform to its metaschema"
}

// SetSchema associates a specific schema with a URI.
func (c *Compiler) SetSchema(uri string, schema *Schema) *Compiler {
	c.mu.Lock()
	c.schemas[uri] = schema
	c.mu.Unlock()
	return c
}

// GetSchema retrieves a schema by reference. If the schema is not found in the cache and the ref is a URL, it tries to resolve it.
func (c *Compiler) GetSchema(ref string) (*Schema, error) {
	baseURI, anchor := splitRef(ref)

	c.mu.RLock()
	schema, exists := c.schemas[baseURI]
	c.mu.RUnlock()

	if exists {
		if baseURI == ref {
			return schema, nil
		}
		return schema.resolveAnchor(anchor)
	}

	return c.resolveSchemaURL(ref)
}

// SetDefaultBaseURI sets the default base URL for resolving relative references.
func (c *Compiler) SetDefaultBaseURI(baseURI string) *Compiler {
	c.DefaultBaseURI = baseURI
	return c
}

// SetAssertFormat enables or disables format assertion.
func (c *Compiler) SetAssertFormat(assert bool) *Compiler {
	c.AssertFormat = assert
	return c
}

// SetPreserveExtra controls whether keywords outside the specification are
// kept on Schema.Extra after compilation, instead of being discarded.
func (c *Compiler) SetPreserveExtra(preserve bool) *Compiler {
	c.PreserveExtra = preserve
	return c
}

// RegisterDecoder adds a new decoder function for a specific encoding.
func (c *Compiler) RegisterDecoder(encodingName string, decoderFunc func(string) ([]byte, error)) *Compiler {
	c.Decoders[encodingName] = decoderFunc
	return c
}

// RegisterMediaType adds a new unmarshal function for a specific media type.
func (c *Compiler) RegisterMediaType(mediaTypeName string, unmarshalFunc func([]byte) (any, error)) *Compiler {
	c.MediaTypes[mediaTypeName] = unmarshalFunc
	return c
}

// RegisterLoader adds a new loader function for a specific URI scheme.
func (c *Compiler) RegisterLoader(scheme string, loaderFunc func(url string) (io.ReadCloser, error)) *Compiler {
	c.Loaders[scheme] = loaderFunc
	return c
}

// RegisterDefaultFunc registers a function for dynamic default value generation
func (c *Compiler) RegisterDefaultFunc(name string, fn DefaultFunc) *Compiler {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.defaultFuncs == nil {
		c.defaultFuncs = make(map[string]DefaultFunc)
	}
	c.defaultFuncs[name] = fn
	return c
}

// getDefaultFunc retrieves a registered default function by name
func (c *Compiler) getDefaultFunc(name string) (DefaultFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, exists := c.defaultFuncs[name]
	return fn, exists
}

// initDefaults initializes default values for decoders, media types, and loaders.
func (c *Compiler) initDefaults() {
	c.Decoders["base64"] = base64.StdEncoding.DecodeString
	c.setupMediaTypes()
	c.setupLoaders()
}

// setupMediaTypes configures default media type handlers.
func (c *Compiler) setupMediaTypes() {
	c.MediaTypes["application/json"] = func(data []byte) (any, error) {
		var temp any
		if err := c.jsonDecoder(data, &temp); err != nil {
			return nil, ErrJSONUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/xml"] = func(data []byte) (any, error) {
		var temp any
		if err := xml.Unmarshal(data, &temp); err != nil {
			return nil, ErrXMLUnmarshal
		}
		return temp, nil
	}

	c.MediaTypes["application/yaml"] = func(data []byte) (any, error) {
		var temp any
		if err := yaml.Unmarshal(data, &temp); err != nil {
			return nil, ErrYAMLUnmarshal
		}
		return temp, nil
	}
}

// setupLoaders configures default loaders for fetching schemas via HTTP/HTTPS.
func (c *Compiler) setupLoaders() {
	client := &http.Client{
		Timeout: 10 * time.Second, // Set a reasonable timeout for network requests.
	}

	defaultHTTPLoader := func(url string) (io.ReadCloser, error) {
		req, err := http.NewRequestWithContext(context.Background(), "GET", url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, ErrNetworkFetch
		}

		if resp.StatusCode != http.StatusOK {
			err = resp.Body.Close()
			if err != nil {
				return nil, err
			}
			return nil, ErrInvalidStatusCode
		}

		return resp.Body, nil
	}

	c.RegisterLoader("http", defaultHTTPLoader)
	c.RegisterLoader("https", defaultHTTPLoader)
}

// CompileBatch compiles multiple schemas efficiently by deferring reference resolution
// until all schemas are compiled. This is the most efficient approach when you have
// many schemas with interdependencies.
func (c *Compiler) CompileBatch(schemas map[string][]byte) (map[string]*Schema, error) {
	compiledSchemas := make(map[string]*Schema)

	// First pass: compile all schemas without resolving references
	for id, schemaBytes := range schemas {
		schema, err := newSchema(schemaBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, err)
		}

		if schema.ID == "" {
			schema.ID = id
		}
		schema.uri = schema.ID

		draft := LatestDraft
		if d, ok := DraftFromSchemaURI(schema.Schema); ok {
			draft = d
		}

		if !c.withoutSchemaValidation {
			if decoded, decodeErr := decodeJSON(schemaBytes); decodeErr == nil {
				if result := validateAgainstMetaschema(draft, decoded); result != nil && !result.IsValid() {
					return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompilation, id, &SchemaValidationError{URI: schema.uri, Result: result})
				}
			}
		}

		// Initialize schema structure but skip reference resolution
		schema.compiler = c
		// Initialize basic properties without resolving references
		schema.initializeSchemaWithoutReferences(c, nil)

		registryBase := schema.uri
		if registryBase == "" {
			registryBase = id
		}
		c.populateRegistry(registryBase, draft, schemaBytes)

		compiledSchemas[id] = schema

		c.mu.Lock()
		if schema.uri != "" && isValidURI(schema.uri) {
			c.schemas[schema.uri] = schema
		}
		c.mu.Unlock()
	}

	// Second pass: resolve all references at once
	for _, schema := range compiledSchemas {
		schema.resolveReferences()
	}

	return compiledSchemas, nil
}

// RegisterFormat registers a custom format.
// The optional typeName parameter specifies which JSON Schema type the format applies to
// (e.g., "string", "number"). If omitted, the format applies to all types.
func (c *Compiler) RegisterFormat(name string, validator func(any) bool, typeName ...string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	var t string
	if len(typeName) > 0 {
		t = typeName[0]
	}

	c.customFormats[name] = &FormatDef{
		Type:     t,
		Validate: validator,
	}
	return c
}

// UnregisterFormat removes a custom format.
func (c *Compiler) UnregisterFormat(name string) *Compiler {
	c.customFormatsRW.Lock()
	defer c.customFormatsRW.Unlock()

	delete(c.customFormats, name)
	return c
}
