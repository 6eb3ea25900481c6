package workbook

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/math"
)

// DefaultTolerance is used when neither the workbook nor the evaluator
// sets one.
const DefaultTolerance = 1e-6

// errorKinds maps expect_error names to the sentinels they match.
var errorKinds = map[string]error{
	"dimension":         math.ErrInvalidDimension,
	"index":             math.ErrInvalidIndex,
	"not_square":        math.ErrNotSquare,
	"non_reversible":    math.ErrNonReversible,
	"size":              math.ErrInvalidSize,
	"unknown_operation": core.ErrUnknownOperation,
	"unknown_operand":   core.ErrUnknownOperand,
	"operand_kind":      core.ErrOperandKind,
}

// Evaluator runs workbooks. The zero value uses DefaultTolerance.
type Evaluator struct {
	Tolerance float64
}

func NewEvaluator(tolerance float64) *Evaluator {
	return &Evaluator{Tolerance: tolerance}
}

func (e *Evaluator) tolerance(wb *Workbook) float64 {
	switch {
	case wb.Tolerance > 0:
		return wb.Tolerance
	case e != nil && e.Tolerance > 0:
		return e.Tolerance
	default:
		return DefaultTolerance
	}
}

/**
 * @brief Evaluates every step of the workbook in order and reports the
 * outcome of each. A failing step does not stop the run; later steps that
 * read its result fail with an unknown operand.
 *
 * @param ctx Checked between steps.
 * @param wb The workbook to evaluate.
 * @return The report, or an error when the operands cannot be built or ctx is done.
 */
func (e *Evaluator) Evaluate(ctx context.Context, wb *Workbook) (*Report, error) {
	clock := core.NewClock()
	clock.Start()

	report := &Report{
		ID:        uuid.New(),
		Workbook:  wb.Name,
		Path:      wb.Path,
		StartedAt: time.Now(),
		Tolerance: e.tolerance(wb),
	}

	env, err := wb.buildEnvironment()
	if err != nil {
		return nil, err
	}

	for i, step := range wb.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result := evaluateStep(env, step, report.Tolerance)
		result.Index = i
		result.Label = step.Label(i)
		if !result.Passed {
			core.LogDebug("workbook %s: step %s failed: %s", wb.Name, result.Label, result.Message)
		}
		report.Steps = append(report.Steps, result)
	}

	clock.Stop()
	report.Elapsed = clock.Elapsed()
	core.MetricsRecordRun(report.Elapsed, report.Passed(), report.Failed())
	return report, nil
}

func evaluateStep(env environment, step Step, tolerance float64) StepResult {
	op, err := lookupOperation(step)
	var value Value
	if err == nil {
		value, err = op.run(env, step)
	}

	if err != nil {
		res := StepResult{Err: err}
		if step.ExpectError == "" {
			res.Message = err.Error()
			return res
		}
		if errors.Is(err, errorKinds[step.ExpectError]) {
			res.Passed = true
			res.Message = "failed as expected: " + err.Error()
			return res
		}
		res.Message = fmt.Sprintf("want %s error, got: %s", step.ExpectError, err)
		return res
	}

	res := StepResult{Value: &value}
	if step.Into != "" {
		env[step.Into] = value
	}
	if step.ExpectError != "" {
		res.Message = fmt.Sprintf("want %s error, got %s", step.ExpectError, value)
		return res
	}
	if len(step.Expect) > 0 {
		if err := compareFlat(step.Expect, value.Flat(), tolerance); err != nil {
			res.Err = err
			res.Message = err.Error()
			return res
		}
	}
	res.Passed = true
	return res
}

// compareFlat checks actual against want within tolerance. NaN only matches
// NaN.
func compareFlat(want, actual []float64, tolerance float64) error {
	if len(want) != len(actual) {
		return fmt.Errorf("%w: want %d values, got %d", core.ErrExpectationFailed, len(want), len(actual))
	}
	for i := range want {
		w, a := want[i], actual[i]
		if gomath.IsNaN(w) || gomath.IsNaN(a) {
			if gomath.IsNaN(w) && gomath.IsNaN(a) {
				continue
			}
		} else if gomath.Abs(w-a) <= tolerance {
			continue
		}
		return fmt.Errorf("%w: value %d: want %v, got %v", core.ErrExpectationFailed, i, w, a)
	}
	return nil
}
