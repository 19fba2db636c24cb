// Package transformer applies business rules to parsed exam results.
//
// A RecordTransformer runs an ordered chain of steps. Each step may rewrite the
// record, drop it from the document, or reject it with a *types.TransformError.
// The default chain is Normalize, then Validate, then the minimum-score filter.
package transformer

import (
	"errors"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// RecordTransformer is a stateless types.RecordTransformer.
type RecordTransformer struct {
	minScore     float64
	defaultSteps bool
	steps        []types.TransformStep
}

// NewRecordTransformer builds the transformer. Steps added with WithStep run after the
// default chain.
func NewRecordTransformer(options ...types.Option[*RecordTransformer]) *RecordTransformer {
	t := &RecordTransformer{defaultSteps: true}
	for _, opt := range options {
		opt(t)
	}

	custom := t.steps
	t.steps = nil
	if t.defaultSteps {
		t.steps = append(t.steps, Normalize, Validate)
		if t.minScore > MinScore {
			t.steps = append(t.steps, MinimumScore(t.minScore))
		}
	}
	t.steps = append(t.steps, custom...)
	return t
}

// MinimumScoreThreshold returns the configured filter threshold.
func (t *RecordTransformer) MinimumScoreThreshold() float64 {
	return t.minScore
}

// Transform runs the chain. keep is false when a step filtered the record.
func (t *RecordTransformer) Transform(rec types.ExamResult) (types.ExamResult, bool, error) {
	for _, step := range t.steps {
		out, keep, err := step(rec)
		if err != nil {
			var te *types.TransformError
			if errors.As(err, &te) {
				return rec, false, err
			}
			return rec, false, &types.TransformError{Line: rec.Line, Rule: "custom", Err: err}
		}
		if !keep {
			return out, false, nil
		}
		rec = out
	}
	return rec, true, nil
}
