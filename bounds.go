package jsonschema

// countBoundsError builds the EvaluationError a count/length-bounds keyword
// (maxItems, minItems, maxLength, minLength, maxProperties, minProperties)
// emits once its configured limit is violated. Each of those keywords reads
// a different field off *Schema and counts a different kind of instance
// (array length, rune count, property count), but the "turn a violated
// limit into an EvaluationError" step at the end is identical across all
// six — this is that shared step, parameterized by the keyword name, error
// code, message template, and whichever extra parameters that keyword's
// message (or a caller inspecting Params directly) expects beyond the
// limit itself.
func countBoundsError(keyword, code, message, limitParam string, limit float64, extra map[string]interface{}) *EvaluationError {
	params := map[string]interface{}{limitParam: limit}
	for k, v := range extra {
		params[k] = v
	}
	return NewEvaluationError(keyword, code, message, params)
}
