package jsonschema

import "github.com/kaptinlin/go-i18n"

// BasicOutputUnit is a single entry in the Draft 2019-09 Basic output format:
// https://json-schema.org/draft/2019-09/json-schema-core#name-basic
//
// A valid unit's payload is Annotations, the annotation value the keyword
// produced (e.g. which properties "properties"/"unevaluatedProperties"
// evaluated); an invalid unit's payload is Error. Only one of the two is
// ever populated for a given unit, matching spec.md's "payload:
// annotation-value | error-message | nested-units".
type BasicOutputUnit struct {
	Valid                   bool           `json:"valid"`
	KeywordLocation         string         `json:"keywordLocation"`
	AbsoluteKeywordLocation string         `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string         `json:"instanceLocation"`
	Annotations             map[string]any `json:"annotations,omitempty"`
	Error                   string         `json:"error,omitempty"`
}

// BasicOutput is the top-level Basic output envelope: a flat list of
// annotation/error units covering every keyword location visited.
type BasicOutput struct {
	Valid bool              `json:"valid"`
	Units []BasicOutputUnit `json:"errors,omitempty"`
}

// ToBasicOutput flattens the result tree into the Draft 2019-09 Basic format.
func (e *EvaluationResult) ToBasicOutput() *BasicOutput {
	return e.ToLocalizeBasicOutput(nil)
}

// ToLocalizeBasicOutput is ToBasicOutput with localized error messages.
func (e *EvaluationResult) ToLocalizeBasicOutput(localizer *i18n.Localizer) *BasicOutput {
	out := &BasicOutput{Valid: e.Valid}
	e.collectBasicUnits(localizer, &out.Units)
	return out
}

func (e *EvaluationResult) collectBasicUnits(localizer *i18n.Localizer, units *[]BasicOutputUnit) {
	if len(e.Errors) == 0 {
		*units = append(*units, BasicOutputUnit{
			Valid:                   e.Valid,
			KeywordLocation:         e.EvaluationPath,
			AbsoluteKeywordLocation: e.SchemaLocation,
			InstanceLocation:        e.InstanceLocation,
			Annotations:             nonEmptyAnnotations(e.Annotations),
		})
	}

	for _, err := range e.Errors {
		message := err.Error()
		if localizer != nil {
			message = err.Localize(localizer)
		}

		keywordLocation := e.EvaluationPath
		absoluteKeywordLocation := e.SchemaLocation
		if err.Keyword != "" {
			keywordLocation = joinEvaluationPath(e.EvaluationPath, err.Keyword)
			absoluteKeywordLocation = joinAbsoluteKeywordLocation(e.SchemaLocation, err.Keyword)
		}

		*units = append(*units, BasicOutputUnit{
			Valid:                   false,
			KeywordLocation:         keywordLocation,
			AbsoluteKeywordLocation: absoluteKeywordLocation,
			InstanceLocation:        e.InstanceLocation,
			Error:                   message,
		})
	}

	for _, detail := range e.Details {
		detail.collectBasicUnits(localizer, units)
	}
}

// nonEmptyAnnotations drops the map entirely when a result carries none, so
// a unit with nothing to report omits "annotations" instead of emitting "{}".
func nonEmptyAnnotations(annotations map[string]any) map[string]any {
	if len(annotations) == 0 {
		return nil
	}
	return annotations
}

func joinEvaluationPath(base, keyword string) string {
	if base == "" || base == "#" {
		return "#/" + keyword
	}
	return base + "/" + keyword
}

// joinAbsoluteKeywordLocation appends keyword to base's fragment, where base
// is a GetSchemaLocation-shaped "<uri>#<pointer>" string (pointer may be
// empty, e.g. "file.json#" at the schema root, in which case this yields
// "file.json#/keyword"). Unlike joinEvaluationPath it cannot special-case an
// empty base against a bare "#", since base always carries a URI prefix
// before the fragment.
func joinAbsoluteKeywordLocation(base, keyword string) string {
	if base == "" {
		return ""
	}
	return base + "/" + keyword
}
