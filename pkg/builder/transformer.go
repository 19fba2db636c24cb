package builder

import (
	"github.com/joeydtaylor/exametl/pkg/internal/transformer"
	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// NewRecordTransformer creates the business-rule chain.
func NewRecordTransformer(options ...types.Option[*transformer.RecordTransformer]) *transformer.RecordTransformer {
	return transformer.NewRecordTransformer(options...)
}

// RecordTransformerWithMinScore filters out records scoring below min.
func RecordTransformerWithMinScore(min float64) types.Option[*transformer.RecordTransformer] {
	return transformer.WithMinScore(min)
}

// RecordTransformerWithStep appends custom steps after the built-in ones.
func RecordTransformerWithStep(steps ...types.TransformStep) types.Option[*transformer.RecordTransformer] {
	return transformer.WithStep(steps...)
}

// RecordTransformerWithoutDefaultSteps drops normalization and validation.
func RecordTransformerWithoutDefaultSteps() types.Option[*transformer.RecordTransformer] {
	return transformer.WithoutDefaultSteps()
}
