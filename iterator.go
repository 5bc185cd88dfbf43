package jsonschema

import "iter"

// ValidateSeq lazily validates instance against s, yielding each top-level
// EvaluationError as it is found instead of building a full EvaluationResult
// tree up front. A consumer that stops pulling (breaks out of a range loop,
// or the first error is enough) causes evaluation to stop dispatching
// further keyword groups for this schema at the next keyword boundary —
// unlike Validate, which always runs every keyword before returning.
//
// Subschema units reached through $ref/$dynamicRef/$recursiveRef/allOf/
// anyOf/oneOf/not/if-then-else/properties/items/etc. still evaluate fully
// once entered (each is a self-contained correctness unit); cancellation
// takes effect at the boundary between this schema's own top-level keyword
// groups, not mid-keyword.
func (s *Schema) ValidateSeq(instance any) iter.Seq[*EvaluationError] {
	return func(yield func(*EvaluationError) bool) {
		dynamicScope := NewDynamicScope()
		s.evaluateSeq(instance, dynamicScope, yield)
	}
}

// evaluateSeq mirrors evaluate()'s top-level keyword dispatch order and
// predicates, but calls yield directly instead of accumulating into an
// EvaluationResult, stopping as soon as yield reports the consumer is done.
// The bool return reports whether the caller should keep going (false means
// yield already said stop, so ancestors must stop too).
func (s *Schema) evaluateSeq(instance any, dynamicScope *DynamicScope, yield func(*EvaluationError) bool) bool {
	dynamicScope.Push(s)
	defer dynamicScope.Pop()

	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if s.Boolean != nil {
		if err := s.evaluateBoolean(instance, evaluatedProps, evaluatedItems); err != nil {
			return yield(err)
		}
		return true
	}

	if s.PatternProperties != nil {
		s.compilePatterns()
	}

	if s.ResolvedRef != nil {
		refResult, props, items := s.ResolvedRef.evaluate(instance, dynamicScope)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
		if refResult != nil && !refResult.IsValid() {
			if !yield(NewEvaluationError("$ref", "ref_mismatch", "Value does not match the reference schema")) {
				return false
			}
		}
	}

	if s.ResolvedDynamicRef != nil {
		anchorSchema := s.ResolvedDynamicRef
		_, anchor := splitRef(s.DynamicRef)
		if !isJSONPointer(anchor) {
			if dynamicAnchor := s.ResolvedDynamicRef.DynamicAnchor; dynamicAnchor != "" {
				if schema := dynamicScope.LookupDynamicAnchor(dynamicAnchor); schema != nil {
					anchorSchema = schema
				}
			}
		}
		dynamicRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
		if dynamicRefResult != nil && !dynamicRefResult.IsValid() {
			if !yield(NewEvaluationError("$dynamicRef", "dynamic_ref_mismatch", "Value does not match the dynamic reference schema")) {
				return false
			}
		}
	}

	if s.ResolvedRecursiveRef != nil {
		anchorSchema := s.ResolvedRecursiveRef
		if anchorSchema.RecursiveAnchor != nil && *anchorSchema.RecursiveAnchor {
			if schema := dynamicScope.LookupRecursiveAnchor(); schema != nil {
				anchorSchema = schema
			}
		}
		recursiveRefResult, props, items := anchorSchema.evaluate(instance, dynamicScope)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
		if recursiveRefResult != nil && !recursiveRefResult.IsValid() {
			if !yield(NewEvaluationError("$recursiveRef", "recursive_ref_mismatch", "Value does not match the recursive reference schema")) {
				return false
			}
		}
	}

	if s.Type != nil {
		if err := evaluateType(s, instance); err != nil {
			if !yield(err) {
				return false
			}
		}
	}

	if s.Enum != nil {
		if err := evaluateEnum(s, instance); err != nil {
			if !yield(err) {
				return false
			}
		}
	}

	if s.Const != nil {
		if err := evaluateConst(s, instance); err != nil {
			if !yield(err) {
				return false
			}
		}
	}

	if s.AllOf != nil {
		_, allOfError := evaluateAllOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if allOfError != nil {
			if !yield(allOfError) {
				return false
			}
		}
	}

	if s.AnyOf != nil {
		_, anyOfError := evaluateAnyOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if anyOfError != nil {
			if !yield(anyOfError) {
				return false
			}
		}
	}

	if s.OneOf != nil {
		_, oneOfError := evaluateOneOf(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if oneOfError != nil {
			if !yield(oneOfError) {
				return false
			}
		}
	}

	if s.Not != nil {
		_, notError := evaluateNot(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if notError != nil {
			if !yield(notError) {
				return false
			}
		}
	}

	if s.If != nil || s.Then != nil || s.Else != nil {
		_, conditionalError := evaluateConditional(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if conditionalError != nil {
			if !yield(conditionalError) {
				return false
			}
		}
	}

	if len(s.PrefixItems) > 0 ||
		s.Items != nil ||
		s.Contains != nil ||
		s.MaxContains != nil ||
		s.MinContains != nil ||
		s.MaxItems != nil ||
		s.MinItems != nil ||
		s.UniqueItems != nil {
		_, arrayErrors := evaluateArray(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, arrayError := range arrayErrors {
			if !yield(arrayError) {
				return false
			}
		}
	}

	if s.MultipleOf != nil || s.Maximum != nil || s.ExclusiveMaximum != nil || s.Minimum != nil || s.ExclusiveMinimum != nil {
		for _, numericError := range evaluateNumeric(s, instance) {
			if !yield(numericError) {
				return false
			}
		}
	}

	if s.MaxLength != nil || s.MinLength != nil || s.Pattern != nil {
		for _, stringError := range evaluateString(s, instance) {
			if !yield(stringError) {
				return false
			}
		}
	}

	if s.Format != nil {
		if err := evaluateFormat(s, instance); err != nil {
			if !yield(err) {
				return false
			}
		}
	}

	if s.Properties != nil ||
		s.PatternProperties != nil ||
		s.AdditionalProperties != nil ||
		s.PropertyNames != nil ||
		s.MaxProperties != nil ||
		s.MinProperties != nil ||
		len(s.Required) > 0 ||
		len(s.DependentRequired) > 0 {
		_, objectErrors := evaluateObject(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		for _, objectError := range objectErrors {
			if !yield(objectError) {
				return false
			}
		}
	}

	if s.DependentSchemas != nil {
		_, dependentSchemasError := evaluateDependentSchemas(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if dependentSchemasError != nil {
			if !yield(dependentSchemasError) {
				return false
			}
		}
	}

	if s.UnevaluatedProperties != nil {
		_, unevaluatedPropertiesError := evaluateUnevaluatedProperties(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if unevaluatedPropertiesError != nil {
			if !yield(unevaluatedPropertiesError) {
				return false
			}
		}
	}

	if s.UnevaluatedItems != nil {
		_, unevaluatedItemsError := evaluateUnevaluatedItems(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if unevaluatedItemsError != nil {
			if !yield(unevaluatedItemsError) {
				return false
			}
		}
	}

	if s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil {
		_, contentError := evaluateContent(s, instance, evaluatedProps, evaluatedItems, dynamicScope)
		if contentError != nil {
			if !yield(contentError) {
				return false
			}
		}
	}

	return true
}
