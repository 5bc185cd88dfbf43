package jsonschema

// ErrorKind is a closed taxonomy of validation failure categories, grounded
// on jsonschema-rs's ValidationErrorKind enum (error.rs). EvaluationError.Code
// remains the stable, locale-keyed string identifier for a specific failure
// message; ErrorKind groups those codes into the coarser categories a caller
// programmatically branching on error type (rather than displaying it) would
// want, independent of which keyword file happened to produce the error.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindType
	KindEnum
	KindConstant
	KindFormat
	KindPattern

	KindMultipleOf
	KindMaximum
	KindMinimum
	KindExclusiveMaximum
	KindExclusiveMinimum

	KindMaxLength
	KindMinLength

	KindMaxItems
	KindMinItems
	KindUniqueItems
	KindContains
	KindAdditionalItems
	KindItems

	KindMaxProperties
	KindMinProperties
	KindRequired
	KindAdditionalProperties
	KindPropertyNames
	KindDependentRequired
	KindDependentSchemas
	KindUnevaluatedProperties
	KindUnevaluatedItems

	KindAnyOf
	KindOneOfNotValid
	KindOneOfMultipleValid
	KindNot
	KindConditional

	KindRef
	KindFalseSchema

	KindContentEncoding
	KindContentMediaType
	KindContentSchema

	// KindReferencing covers registry/resolver failures that happen before
	// or during reference resolution (unretrievable document, malformed
	// URI, anchor not found) rather than during instance validation.
	KindReferencing
)

// evaluationErrorKinds maps every Code this package emits to its ErrorKind.
// Codes absent from this table classify as KindUnknown rather than panicking
// or erroring — Kind() is advisory, Code remains authoritative.
var evaluationErrorKinds = map[string]ErrorKind{
	"type_mismatch":      KindType,
	"invalid_numberic":    KindType,
	"value_not_in_enum":  KindEnum,
	"const_mismatch":      KindConstant,
	"const_mismatch_null": KindConstant,
	"format_mismatch":    KindFormat,
	"unknown_format":     KindFormat,
	"pattern_mismatch":   KindPattern,
	"invalid_pattern":    KindPattern,

	"invalid_multiple_of": KindMultipleOf,
	"not_multiple_of":     KindMultipleOf,
	"value_above_maximum": KindMaximum,
	"value_below_minimum": KindMinimum,
	"exclusive_maximum_mismatch": KindExclusiveMaximum,
	"exclusive_minimum_mismatch": KindExclusiveMinimum,

	"string_too_long":  KindMaxLength,
	"string_too_short": KindMinLength,

	"items_too_long":          KindMaxItems,
	"items_too_short":         KindMinItems,
	"unique_items_mismatch":   KindUniqueItems,
	"item_normalization_error": KindUniqueItems,
	"contains_too_few_items":  KindContains,
	"contains_too_many_items": KindContains,
	"item_mismatch":           KindItems,
	"items_mismatch":          KindItems,
	"prefix_item_mismatch":    KindItems,
	"prefix_items_mismatch":   KindItems,

	"too_many_properties":            KindMaxProperties,
	"too_few_properties":             KindMinProperties,
	"missing_required_property":      KindRequired,
	"missing_required_properties":    KindRequired,
	"additional_property_mismatch":   KindAdditionalProperties,
	"additional_properties_mismatch": KindAdditionalProperties,
	"property_mismatch":              KindAdditionalProperties,
	"properties_mismatch":            KindAdditionalProperties,
	"pattern_property_mismatch":      KindAdditionalProperties,
	"pattern_properties_mismatch":    KindAdditionalProperties,
	"property_name_mismatch":         KindPropertyNames,
	"property_names_mismatch":        KindPropertyNames,
	"dependent_property_required":    KindDependentRequired,
	"dependent_schema_mismatch":      KindDependentSchemas,
	"dependent_schemas_mismatch":     KindDependentSchemas,
	"unevaluated_property_mismatch":   KindUnevaluatedProperties,
	"unevaluated_properties_mismatch": KindUnevaluatedProperties,
	"unevaluated_item_mismatch":       KindUnevaluatedItems,
	"unevaluated_items_mismatch":      KindUnevaluatedItems,
	"unevaluated_items_not_allowed":   KindUnevaluatedItems,

	"any_of_item_mismatch":    KindAnyOf,
	"one_of_item_mismatch":    KindOneOfNotValid,
	"one_of_multiple_matches": KindOneOfMultipleValid,
	"all_of_item_mismatch":    KindNot, // allOf failures are reported per-index, same "subschema didn't match" family as not
	"not_schema_mismatch":     KindNot,
	"if_then_mismatch":        KindConditional,
	"if_else_mismatch":        KindConditional,

	"ref_mismatch":           KindRef,
	"dynamic_ref_mismatch":   KindRef,
	"recursive_ref_mismatch": KindRef,
	"false_schema_mismatch":  KindFalseSchema,

	"unsupported_encoding":    KindContentEncoding,
	"invalid_encoding":        KindContentEncoding,
	"unsupported_media_type":  KindContentMediaType,
	"invalid_media_type":      KindContentMediaType,
	"content_schema_mismatch": KindContentSchema,
}

// Kind classifies e's Code into its ErrorKind category.
func (e *EvaluationError) Kind() ErrorKind {
	if e == nil {
		return KindUnknown
	}
	if kind, ok := evaluationErrorKinds[e.Code]; ok {
		return kind
	}
	return KindUnknown
}

// referencingErrorKind is consulted by errors originating in the
// registry/resolver layer (registry.go, resolver.go, uri.go) rather than
// from a compiled Schema's evaluate path; those errors carry no Code at all
// today (they are Go error values, not EvaluationErrors), so this exists as
// the single place that would translate them if/when they get folded into
// an EvaluationError instead of returned as a bare error.
func referencingErrorKind() ErrorKind { return KindReferencing }
