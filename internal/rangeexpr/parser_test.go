package rangeexpr

import (
	"testing"

	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("Success: two arguments", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("range(2020,2023)", "dummy")
		require.False(t, diags.HasErrors())
		assert.Equal(t, []int{2020, 2021, 2022}, got)
	})

	t.Run("Success: explicit step", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("range(2023,2028,2)", "dummy")
		require.Empty(t, diags)
		assert.Equal(t, []int{2023, 2025, 2027}, got)
	})

	t.Run("Success: negative step and whitespace", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("  range( 10, 0, -3 ) ", "dummy")
		require.Empty(t, diags)
		assert.Equal(t, []int{10, 7, 4, 1}, got)
	})

	t.Run("Success: empty progression", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("range(2025,2020)", "dummy")
		require.Empty(t, diags)
		assert.Empty(t, got)
	})

	t.Run("Failure: float step", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("range(2020,2023,1.1)", "run")
		assert.Empty(t, got)
		require.Len(t, diags, 1)
		assert.Equal(t, "'float' object cannot be interpreted as an integer in 'range' for 'run'.", diags[0].Summary)

		det, ok := issue.DetailOf(diags[0])
		require.True(t, ok)
		assert.Equal(t, issue.RangeExpression, det.Kind)
		assert.Equal(t, "run", det.Item)
	})

	t.Run("Failure: whole float literal is still a float", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse("range(2020.0,2023)", "dummy")
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Summary, "'float'")
	})

	t.Run("Failure: float hidden inside arithmetic", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"range(2020, 2.0*1011)", "range(2020, (1 + 0.5) * 2 + 2020)", "range(2020, 4044/2)"} {
			got, diags := Parse(text, "run")
			assert.Empty(t, got, text)
			require.Len(t, diags, 1, text)
			assert.Equal(t, "'float' object cannot be interpreted as an integer in 'range' for 'run'.", diags[0].Summary, text)
		}
	})

	t.Run("Success: integer arithmetic", func(t *testing.T) {
		t.Parallel()
		got, diags := Parse("range(2020, 2020 + 2 * 1)", "run")
		require.Empty(t, diags)
		assert.Equal(t, []int{2020, 2021}, got)
	})

	t.Run("Failure: string argument", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse(`range("2020",2023)`, "dummy")
		require.Len(t, diags, 1)
		assert.Equal(t, "'str' object cannot be interpreted as an integer in 'range' for 'dummy'.", diags[0].Summary)
	})

	t.Run("Failure: zero step", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse("range(1,5,0)", "dummy")
		require.Len(t, diags, 1)
		assert.Equal(t, "range() arg 3 must not be zero in 'range' for 'dummy'.", diags[0].Summary)
	})

	t.Run("Failure: wrong arity", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse("range(5)", "dummy")
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Summary, "range expected 2 or 3 arguments, got 1")
	})

	t.Run("Failure: unknown name", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse("range(start,2023)", "dummy")
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Summary, "name 'start' is not defined")
	})

	t.Run("Failure: other functions are rejected", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"list(range(1,3))", "xrange(1,3)", "range(1,3) + 1", "range(1,", "__import__('os')"} {
			got, diags := Parse(text, "dummy")
			assert.Empty(t, got, text)
			require.Len(t, diags, 1, text)
			assert.Contains(t, diags[0].Summary, "invalid range expression", text)
		}
	})

	t.Run("Failure: too many values", func(t *testing.T) {
		t.Parallel()
		_, diags := Parse("range(0,2000000)", "dummy")
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0].Summary, ErrTooManyValues.Error())
	})
}

func TestParseExpr(t *testing.T) {
	t.Parallel()

	expr, err := ParseExpr("range(2020, 2030, 5)")
	require.NoError(t, err)
	assert.Equal(t, Expr{Start: 2020, End: 2030, Step: 5}, expr)
	assert.Equal(t, "range(2020, 2030, 5)", expr.String())

	expr, err = ParseExpr("range(-3, 3)")
	require.NoError(t, err)
	assert.Equal(t, Expr{Start: -3, End: 3, Step: 1}, expr)
}

func TestExprLen(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		expr Expr
		want int64
	}{
		{Expr{Start: 0, End: 10, Step: 1}, 10},
		{Expr{Start: 0, End: 10, Step: 3}, 4},
		{Expr{Start: 10, End: 0, Step: -3}, 4},
		{Expr{Start: 10, End: 0, Step: 1}, 0},
		{Expr{Start: 0, End: 0, Step: 1}, 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.expr.Len().Int64(), tc.expr.String())
	}
}
