package workbook_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, doc string) *workbook.Report {
	t.Helper()
	wb, err := workbook.Parse([]byte(doc))
	require.NoError(t, err)
	report, err := workbook.NewEvaluator(0).Evaluate(context.Background(), wb)
	require.NoError(t, err)
	return report
}

func TestEvaluate_Testbed(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testbed", "*.toml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			wb, err := workbook.Load(path)
			require.NoError(t, err)

			report, err := workbook.NewEvaluator(0).Evaluate(context.Background(), wb)
			require.NoError(t, err)
			for _, s := range report.Steps {
				assert.True(t, s.Passed, "%s: %s", s.Label, s.Message)
			}
			assert.True(t, report.OK())
			assert.Equal(t, len(wb.Steps), len(report.Steps))
		})
	}
}

func TestEvaluate_ExpectationFailure(t *testing.T) {
	report := evaluate(t, `
[[vectors]]
name = "a"
values = [3.0, 4.0]

[[steps]]
op = "magnitude"
args = ["a"]
expect = [6.0]

[[steps]]
op = "magnitude"
args = ["a"]
expect = [5.0, 0.0]
`)
	require.Len(t, report.Steps, 2)
	for _, s := range report.Steps {
		assert.False(t, s.Passed)
		require.ErrorIs(t, s.Err, core.ErrExpectationFailed)
	}
	assert.Equal(t, 0, report.Passed())
	assert.Equal(t, 2, report.Failed())
	assert.False(t, report.OK())
}

func TestEvaluate_ErrorKinds(t *testing.T) {
	report := evaluate(t, `
[[matrices]]
name = "m"
rows = 2
columns = 2
values = [1.0, 2.0, 2.0, 4.0]

# error without expect_error fails
[[steps]]
op = "inverse"
args = ["m"]

# wrong error kind fails
[[steps]]
op = "inverse"
args = ["m"]
expect_error = "not_square"

# success where an error was expected fails
[[steps]]
op = "determinant"
args = ["m"]
expect_error = "not_square"

[[steps]]
op = "inverse"
args = ["m"]
expect_error = "non_reversible"
`)
	require.Len(t, report.Steps, 4)
	assert.False(t, report.Steps[0].Passed)
	assert.False(t, report.Steps[1].Passed)
	assert.False(t, report.Steps[2].Passed)
	assert.True(t, report.Steps[3].Passed)
}

func TestEvaluate_FailedResultIsUnknown(t *testing.T) {
	report := evaluate(t, `
[[matrices]]
name = "m"
rows = 1
columns = 2
values = [1.0, 2.0]

[[steps]]
op = "inverse"
args = ["m"]
into = "inv"
expect_error = "not_square"

[[steps]]
op = "transpose"
args = ["inv"]
expect_error = "unknown_operand"
`)
	assert.True(t, report.OK())
}

func TestEvaluate_Arity(t *testing.T) {
	report := evaluate(t, `
[[vectors]]
name = "a"
values = [1.0]

[[steps]]
op = "dot"
args = ["a"]
`)
	require.Len(t, report.Steps, 1)
	require.ErrorIs(t, report.Steps[0].Err, core.ErrInvalidWorkbook)
}

func TestEvaluate_ScalarResults(t *testing.T) {
	report := evaluate(t, `
[[vectors]]
name = "a"
values = [3.0, 4.0]

[[steps]]
op = "magnitude"
args = ["a"]
into = "len"

[[steps]]
op = "add"
args = ["len", "len"]
into = "twice"
expect = [10.0]

[[steps]]
op = "scale"
args = ["twice"]
scalar = 0.5
expect = [5.0]

[[steps]]
op = "add"
args = ["len", "a"]
expect_error = "operand_kind"
`)
	for _, s := range report.Steps {
		assert.True(t, s.Passed, "%s: %s", s.Label, s.Message)
	}
}

func TestEvaluate_Tolerance(t *testing.T) {
	doc := `
[[vectors]]
name = "a"
values = [3.0, 4.0]

[[steps]]
op = "magnitude"
args = ["a"]
expect = [5.001]
`
	wb, err := workbook.Parse([]byte(doc))
	require.NoError(t, err)

	report, err := workbook.NewEvaluator(0).Evaluate(context.Background(), wb)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Equal(t, workbook.DefaultTolerance, report.Tolerance)

	report, err = workbook.NewEvaluator(0.01).Evaluate(context.Background(), wb)
	require.NoError(t, err)
	assert.True(t, report.OK())

	wb.Tolerance = 1e-5
	report, err = workbook.NewEvaluator(0.01).Evaluate(context.Background(), wb)
	require.NoError(t, err)
	assert.False(t, report.OK())
}

func TestEvaluate_InvalidOperands(t *testing.T) {
	for name, doc := range map[string]string{
		"vector too long":   "[[vectors]]\nname = \"a\"\nvalues = [1.0, 2.0, 3.0, 4.0, 5.0]\n",
		"matrix size":       "[[matrices]]\nname = \"m\"\nrows = 2\ncolumns = 2\nvalues = [1.0]\n",
		"quaternion empty":  "[[quaternions]]\nname = \"q\"\n",
		"quaternion both":   "[[quaternions]]\nname = \"q\"\ncomponents = [1.0, 0.0, 0.0, 0.0]\naxis = [0.0, 0.0, 1.0]\n",
		"random kind":       "[[randoms]]\nname = \"r\"\nkind = \"tensor\"\n",
		"random range":      "[[randoms]]\nname = \"r\"\nkind = \"vector\"\nsize = 2\nmin = 1.0\nmax = 0.0\n",
		"random vector dim": "[[randoms]]\nname = \"r\"\nkind = \"vector\"\nsize = 9\n",
	} {
		t.Run(name, func(t *testing.T) {
			wb, err := workbook.Parse([]byte(doc))
			require.NoError(t, err)
			_, err = workbook.NewEvaluator(0).Evaluate(context.Background(), wb)
			require.ErrorIs(t, err, core.ErrInvalidWorkbook)
		})
	}
}

func TestEvaluate_Cancelled(t *testing.T) {
	wb, err := workbook.Parse([]byte("[[steps]]\nop = \"identity\"\nsize = 2\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = workbook.NewEvaluator(0).Evaluate(ctx, wb)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_Render(t *testing.T) {
	report := evaluate(t, `
name = "render"

[[vectors]]
name = "a"
values = [3.0, 4.0]

[[steps]]
op = "normalize"
args = ["a"]

[[steps]]
op = "magnitude"
args = ["a"]
expect = [1.0]
`)
	out := report.Render()
	assert.Contains(t, out, "render")
	assert.Contains(t, out, report.ID.String())
	assert.Contains(t, out, "#1 normalize(a)")
	assert.Contains(t, out, "V(0.6, 0.8)")
	assert.Contains(t, out, "1 passed, 1 failed")

	summary := report.Summary()
	assert.True(t, strings.HasPrefix(summary, "render: 1/2 steps passed"))
}
