package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAdditionalPropertiesKind(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		want   additionalPropertiesKind
	}{
		{"absent", `{"type":"object"}`, additionalPropertiesNone},
		{"true", `{"additionalProperties":true}`, additionalPropertiesNone},
		{"schema only", `{"additionalProperties":{"type":"string"}}`, additionalPropertiesSchema},
		{"false only", `{"additionalProperties":false}`, additionalPropertiesFalse},
		{"schema with properties", `{"properties":{"a":{}},"additionalProperties":{"type":"string"}}`, additionalPropertiesSchemaWithProperties},
		{"false with properties", `{"properties":{"a":{}},"additionalProperties":false}`, additionalPropertiesFalseWithProperties},
		{"schema with patterns", `{"patternProperties":{"^a":{}},"additionalProperties":{"type":"string"}}`, additionalPropertiesSchemaWithPatterns},
		{"false with patterns", `{"patternProperties":{"^a":{}},"additionalProperties":false}`, additionalPropertiesFalseWithPatterns},
		{"schema with patterns and properties", `{"properties":{"a":{}},"patternProperties":{"^b":{}},"additionalProperties":{"type":"string"}}`, additionalPropertiesSchemaWithPatternsAndProperties},
		{"false with patterns and properties", `{"properties":{"a":{}},"patternProperties":{"^b":{}},"additionalProperties":false}`, additionalPropertiesFalseWithPatternsAndProperties},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			compiler := NewCompiler()
			schema, err := compiler.Compile([]byte(tc.schema))
			require.NoError(t, err)
			assert.Equal(t, tc.want, schema.additionalPropertiesKind)
		})
	}
}

func TestEvaluateAdditionalPropertiesDispatch(t *testing.T) {
	compiler := NewCompiler()

	schema, err := compiler.Compile([]byte(`{
		"properties": {"known": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "number"}},
		"additionalProperties": false
	}`))
	require.NoError(t, err)

	result := schema.Validate(map[string]any{
		"known": "ok",
		"x-tag": 1,
		"extra": "nope",
	})
	assert.False(t, result.IsValid())

	result = schema.Validate(map[string]any{
		"known": "ok",
		"x-tag": 1,
	})
	assert.True(t, result.IsValid())
}

func TestValidateSeqStopsAtKeywordBoundary(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"enum": ["x"],
		"const": "y"
	}`))
	require.NoError(t, err)

	// Validate (eager) finds both the enum and const mismatches.
	eager := schema.Validate("z")
	assert.False(t, eager.IsValid())
	assert.Len(t, eager.Errors, 2)
	assert.Contains(t, eager.Errors, "enum")
	assert.Contains(t, eager.Errors, "const")

	// ValidateSeq, stopped after the first error, never reaches const.
	var seen []*EvaluationError
	for err := range schema.ValidateSeq("z") {
		seen = append(seen, err)
		break
	}

	require.Len(t, seen, 1)
	assert.Equal(t, "value_not_in_enum", seen[0].Code)
}

func TestValidateSeqYieldsAllWhenNotCancelled(t *testing.T) {
	compiler := NewCompiler()
	schema, err := compiler.Compile([]byte(`{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`))
	require.NoError(t, err)

	var codes []string
	for err := range schema.ValidateSeq(map[string]any{}) {
		codes = append(codes, err.Code)
	}
	assert.Contains(t, codes, "missing_required_property")
}
