package jsonschema

import "math/big"

// EvaluateMultipleOf checks if the numeric data is a multiple of the value specified in the "multipleOf" schema attribute.
// According to the JSON Schema Draft 2020-12:
//   - The value of "multipleOf" must be a number, strictly greater than 0.
//   - A numeric instance is valid only if division by this keyword's value results in an integer.
//
// This method ensures that the numeric data instance conforms to the divisibility constraints defined in the schema.
// If the instance does not conform, it returns a EvaluationError detailing the expected divisor and the actual value.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-multipleof
func evaluateMultipleOf(schema *Schema, value *Rat) *EvaluationError {
	if schema.MultipleOf == nil {
		return nil
	}

	if schema.MultipleOf.Sign() <= 0 {
		return NewEvaluationError("multipleOf", "invalid_multiple_of", "Multiple of {divisor} should be greater than 0", map[string]interface{}{
			"divisor": FormatRat(schema.MultipleOf),
		})
	}

	quotient := new(big.Rat).Quo(value.Rat, schema.MultipleOf.Rat)
	if quotient.IsInt() {
		return nil
	}

	return NewEvaluationError("multipleOf", "not_multiple_of", "{value} should be a multiple of {divisor}", map[string]interface{}{
		"divisor": FormatRat(schema.MultipleOf),
		"value":   FormatRat(value),
	})
}
