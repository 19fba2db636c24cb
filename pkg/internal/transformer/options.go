package transformer

import "github.com/joeydtaylor/exametl/pkg/internal/types"

// WithMinScore filters records scoring below min. Zero keeps every valid record.
func WithMinScore(min float64) types.Option[*RecordTransformer] {
	return func(t *RecordTransformer) {
		t.minScore = min
	}
}

// WithStep appends custom steps after the default chain.
func WithStep(steps ...types.TransformStep) types.Option[*RecordTransformer] {
	return func(t *RecordTransformer) {
		for _, s := range steps {
			if s != nil {
				t.steps = append(t.steps, s)
			}
		}
	}
}

// WithoutDefaultSteps leaves only the steps supplied through WithStep.
func WithoutDefaultSteps() types.Option[*RecordTransformer] {
	return func(t *RecordTransformer) {
		t.defaultSteps = false
	}
}
