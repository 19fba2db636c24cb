package transformer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeydtaylor/exametl/pkg/internal/types"
)

// Rule names reported in *types.TransformError.
const (
	RuleStudentIDRequired = "studentId.required"
	RuleCourseIDRequired  = "courseId.required"
	RuleScoreRange        = "score.range"
)

var (
	errEmpty      = errors.New("value is empty")
	errOutOfRange = fmt.Errorf("score outside [%g, %g]", MinScore, MaxScore)
)

// Normalize trims every text field and upper-cases the student and course identifiers.
func Normalize(rec types.ExamResult) (types.ExamResult, bool, error) {
	rec.StudentID = strings.ToUpper(strings.TrimSpace(rec.StudentID))
	rec.CourseID = strings.ToUpper(strings.TrimSpace(rec.CourseID))
	rec.StudentName = strings.TrimSpace(rec.StudentName)
	rec.ExamDate = strings.TrimSpace(rec.ExamDate)
	if len(rec.Attributes) > 0 {
		attrs := make([]types.Attribute, len(rec.Attributes))
		for i, a := range rec.Attributes {
			attrs[i] = types.Attribute{Name: a.Name, Value: strings.TrimSpace(a.Value)}
		}
		rec.Attributes = attrs
	}
	return rec, true, nil
}

// Validate rejects records with missing identifiers or an impossible score.
func Validate(rec types.ExamResult) (types.ExamResult, bool, error) {
	switch {
	case rec.StudentID == "":
		return rec, false, &types.TransformError{Line: rec.Line, Rule: RuleStudentIDRequired, Err: errEmpty}
	case rec.CourseID == "":
		return rec, false, &types.TransformError{Line: rec.Line, Rule: RuleCourseIDRequired, Err: errEmpty}
	case rec.Score < MinScore || rec.Score > MaxScore:
		return rec, false, &types.TransformError{
			Line: rec.Line,
			Rule: RuleScoreRange,
			Err:  fmt.Errorf("%w: got %g", errOutOfRange, rec.Score),
		}
	}
	return rec, true, nil
}

// MinimumScore filters out records scoring below min.
func MinimumScore(min float64) types.TransformStep {
	return func(rec types.ExamResult) (types.ExamResult, bool, error) {
		return rec, rec.Score >= min, nil
	}
}
