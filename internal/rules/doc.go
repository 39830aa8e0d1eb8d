// Package rules evaluates routing conditions and repeat rules against an
// immutable answer snapshot and survey metadata.
//
// Evaluation never fails because data is missing: an absent answer or
// metadata key makes a condition false and a repeat count zero, so routing
// falls back to the default path. The only error is a repeat rule the
// evaluator does not recognise, which is a schema authoring defect.
package rules
