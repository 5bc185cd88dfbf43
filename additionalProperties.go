package jsonschema

import (
	"fmt"
	"strings"
)

// additionalPropertiesKind is the compile-time shape of the
// additionalProperties/properties/patternProperties interaction. Picking the
// shape once, rather than re-deriving which properties are "covered" on
// every evaluate() call, mirrors the eight specialized validator structs
// (AdditionalPropertiesValidator, AdditionalPropertiesFalseValidator,
// AdditionalPropertiesNotEmptyValidator, AdditionalPropertiesNotEmptyFalseValidator,
// AdditionalPropertiesWithPatternsValidator, AdditionalPropertiesWithPatternsFalseValidator,
// AdditionalPropertiesWithPatternsNotEmptyValidator,
// AdditionalPropertiesWithPatternsNotEmptyFalseValidator) that
// jsonschema-rs's keywords/additional_properties.rs dispatches to from its
// compile function, branching on patternProperties presence, then on the
// additionalProperties value being true/false/schema, then on properties
// presence. "true" (or an absent keyword) always collapses to a no-op.
type additionalPropertiesKind uint8

const (
	// additionalPropertiesNone: additionalProperties is absent or `true`.
	// No validator runs; every property is allowed.
	additionalPropertiesNone additionalPropertiesKind = iota

	// additionalPropertiesSchema: a schema, no properties/patternProperties
	// siblings. Every property in the instance is additional.
	additionalPropertiesSchema

	// additionalPropertiesFalse: `false`, no properties/patternProperties
	// siblings. Any property in the instance is a violation.
	additionalPropertiesFalse

	// additionalPropertiesSchemaWithProperties: a schema, properties present,
	// no patternProperties. A property is additional unless properties names it.
	additionalPropertiesSchemaWithProperties

	// additionalPropertiesFalseWithProperties: `false`, properties present,
	// no patternProperties.
	additionalPropertiesFalseWithProperties

	// additionalPropertiesSchemaWithPatterns: a schema, patternProperties
	// present, no properties. A property is additional unless some pattern matches it.
	additionalPropertiesSchemaWithPatterns

	// additionalPropertiesFalseWithPatterns: `false`, patternProperties
	// present, no properties.
	additionalPropertiesFalseWithPatterns

	// additionalPropertiesSchemaWithPatternsAndProperties: a schema, both
	// properties and patternProperties present. A property is additional
	// unless properties names it or some pattern matches it.
	additionalPropertiesSchemaWithPatternsAndProperties

	// additionalPropertiesFalseWithPatternsAndProperties: `false`, both
	// properties and patternProperties present.
	additionalPropertiesFalseWithPatternsAndProperties
)

// classifyAdditionalProperties picks the additionalPropertiesKind for schema
// at compile time, from the static presence of properties/patternProperties
// and the additionalProperties value's own boolean-ness.
func classifyAdditionalProperties(schema *Schema) additionalPropertiesKind {
	ap := schema.AdditionalProperties
	if ap == nil {
		return additionalPropertiesNone
	}
	isFalse := false
	if ap.Boolean != nil {
		if *ap.Boolean {
			return additionalPropertiesNone
		}
		isFalse = true
	}

	hasProperties := schema.Properties != nil && len(*schema.Properties) > 0
	hasPatterns := schema.PatternProperties != nil && len(*schema.PatternProperties) > 0

	switch {
	case hasPatterns && hasProperties:
		if isFalse {
			return additionalPropertiesFalseWithPatternsAndProperties
		}
		return additionalPropertiesSchemaWithPatternsAndProperties
	case hasPatterns:
		if isFalse {
			return additionalPropertiesFalseWithPatterns
		}
		return additionalPropertiesSchemaWithPatterns
	case hasProperties:
		if isFalse {
			return additionalPropertiesFalseWithProperties
		}
		return additionalPropertiesSchemaWithProperties
	default:
		if isFalse {
			return additionalPropertiesFalse
		}
		return additionalPropertiesSchema
	}
}

// isAdditionalProperty reports whether propName is NOT covered by
// properties/patternProperties, dispatching on schema's precomputed kind so
// that the "none of those keywords are present" shapes skip the map/regex
// lookups entirely.
func isAdditionalProperty(schema *Schema, propName string) bool {
	switch schema.additionalPropertiesKind {
	case additionalPropertiesSchema, additionalPropertiesFalse:
		return true
	case additionalPropertiesSchemaWithProperties, additionalPropertiesFalseWithProperties:
		if schema.Properties == nil {
			return true
		}
		_, covered := (*schema.Properties)[propName]
		return !covered
	case additionalPropertiesSchemaWithPatterns, additionalPropertiesFalseWithPatterns:
		return !matchesAnyPattern(schema, propName)
	case additionalPropertiesSchemaWithPatternsAndProperties, additionalPropertiesFalseWithPatternsAndProperties:
		if schema.Properties != nil {
			if _, covered := (*schema.Properties)[propName]; covered {
				return false
			}
		}
		return !matchesAnyPattern(schema, propName)
	default: // additionalPropertiesNone
		return false
	}
}

func matchesAnyPattern(schema *Schema, propName string) bool {
	for _, regex := range schema.compiledPatterns {
		if regex.MatchString(propName) {
			return true
		}
	}
	return false
}

// EvaluateAdditionalProperties checks if properties not explicitly defined or matched by patternProperties conform to the schema specified in additionalProperties.
// According to the JSON Schema Draft 2020-12:
//   - The value of "additionalProperties" must be a valid JSON Schema.
//   - This keyword validates child values of instance names that do not appear in the annotation results of either "properties" or "patternProperties".
//   - Validation succeeds for these properties if the child instance validates against the "additionalProperties" schema.
//   - Omitting "additionalProperties" has the same assertion behavior as an empty schema, which allows any type of value.
//
// This function ensures that all properties not explicitly mentioned or matched are validated according to a default schema or constraints,
// dispatching on the schema's compile-time additionalPropertiesKind rather than re-deriving the properties/patternProperties coverage set here.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-additionalproperties
func evaluateAdditionalProperties(schema *Schema, object map[string]interface{}, evaluatedProps map[string]bool, _ map[int]bool, dynamicScope *DynamicScope) ([]*EvaluationResult, *EvaluationError) {
	if schema.additionalPropertiesKind == additionalPropertiesNone {
		return nil, nil
	}

	results := []*EvaluationResult{}
	invalidProperties := []string{}

	for propName, propValue := range object {
		if !isAdditionalProperty(schema, propName) {
			continue
		}

		evaluatedProps[propName] = true

		result, _, _ := schema.AdditionalProperties.evaluate(propValue, dynamicScope)
		if result != nil {
			//nolint:errcheck
			result.SetEvaluationPath(fmt.Sprintf("/additionalProperties/%s", propName)).
				SetSchemaLocation(schema.GetSchemaLocation(fmt.Sprintf("/additionalProperties/%s", propName))).
				SetInstanceLocation(fmt.Sprintf("/%s", propName))

			results = append(results, result)
			if !result.IsValid() {
				invalidProperties = append(invalidProperties, propName)
			}
		}
	}

	if len(invalidProperties) == 1 {
		return results, NewEvaluationError("additionalProperties", "additional_property_mismatch", "Additional property {property} does not match the schema", map[string]interface{}{
			"property": fmt.Sprintf("'%s'", invalidProperties[0]),
		})
	} else if len(invalidProperties) > 1 {
		quotedProperties := make([]string, len(invalidProperties))
		for i, prop := range invalidProperties {
			quotedProperties[i] = fmt.Sprintf("'%s'", prop)
		}
		return results, NewEvaluationError("additionalProperties", "additional_properties_mismatch", "Additional properties {properties} do not match the schema", map[string]interface{}{
			"properties": strings.Join(quotedProperties, ", "),
		})
	}

	return results, nil
}
