package horizon

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/raw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MissingRunIsFatal(t *testing.T) {
	t.Parallel()

	for _, in := range []raw.Value{raw.Map(), raw.Null, raw.Map(raw.KV("warm_up", raw.Ints(2019)))} {
		_, err := Validate(in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEssentialSetMissing))

		var missing *EssentialSetMissingError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, Run, missing.Period)
		assert.Equal(t, "A model cannot be created without a run.", err.Error())
	}
}

func TestValidate_SortsAndDeduplicates(t *testing.T) {
	t.Parallel()

	res, err := Validate(raw.Map(raw.KV("run", raw.Ints(2025, 2024, 2023, 2022, 2024, 2021))))
	require.NoError(t, err)
	assert.Empty(t, res.Errors())
	assert.Empty(t, res.Warnings())

	years, ok := res.Horizon.Years(Run)
	require.True(t, ok)
	assert.Equal(t, []int{2021, 2022, 2023, 2024, 2025}, years)
	assert.Equal(t, []int{2021, 2022, 2023, 2024, 2025}, res.Horizon.AllPeriods)
}

func TestValidate_Overlaps(t *testing.T) {
	t.Parallel()

	t.Run("Failure: run spans into warm_up", func(t *testing.T) {
		t.Parallel()
		res, err := Validate(raw.Map(
			raw.KV("run", raw.Ints(2020, 2022, 2023, 2025)),
			raw.KV("warm_up", raw.Ints(2024, 2028)),
		))
		require.NoError(t, err)
		require.Equal(t, []string{"'run' and 'warm_up' periods overlap in years {2024, 2025}."}, res.Errors())
	})

	t.Run("Failure: every pair is reported in order", func(t *testing.T) {
		t.Parallel()
		res, err := Validate(raw.Map(
			raw.KV("cool_down", raw.Ints(2029, 2031)),
			raw.KV("warm_up", raw.Ints(2018, 2030)),
			raw.KV("run", raw.Ints(2020, 2029)),
		))
		require.NoError(t, err)

		overlaps := issue.OfKind(res.Diags, issue.Overlap)
		require.Len(t, overlaps, 3)
		assert.Contains(t, overlaps[0].Summary, "'run' and 'warm_up'")
		assert.Contains(t, overlaps[1].Summary, "'run' and 'cool_down' periods overlap in years {2029}.")
		assert.Contains(t, overlaps[2].Summary, "'warm_up' and 'cool_down' periods overlap in years {2029, 2030}.")
	})

	t.Run("Success: adjacent periods do not overlap", func(t *testing.T) {
		t.Parallel()
		res, err := Validate(raw.Map(
			raw.KV("warm_up", raw.Ints(2018, 2019)),
			raw.KV("run", raw.Of([]any{"range(2020,2030)"})),
			raw.KV("cool_down", raw.Ints(2030, 2031)),
		))
		require.NoError(t, err)
		assert.False(t, res.HasErrors())
		assert.Len(t, res.Horizon.AllPeriods, 14)
	})

	t.Run("Failure: huge overlaps are abbreviated", func(t *testing.T) {
		t.Parallel()
		res, err := Validate(raw.Map(
			raw.KV("run", raw.Ints(0, 100000)),
			raw.KV("warm_up", raw.Ints(10, 5000)),
		))
		require.NoError(t, err)
		require.Equal(t, []string{"'run' and 'warm_up' periods overlap in years {10, ..., 5000}."}, res.Errors())
	})
}

func TestValidate_BadPeriodIsDroppedEntirely(t *testing.T) {
	t.Parallel()

	res, err := Validate(raw.Map(
		raw.KV("run", raw.Ints(2020, 2021)),
		raw.KV("warm_up", raw.Of([]any{2018, "dummy"})),
	))
	require.NoError(t, err)

	require.Len(t, res.Errors(), 1)
	_, ok := res.Horizon.Years(WarmUp)
	assert.False(t, ok, "a period with errors must not be partially included")
	assert.Equal(t, []int{2020, 2021}, res.Horizon.AllPeriods)
}

func TestValidate_UnknownKeysWarn(t *testing.T) {
	t.Parallel()

	res, err := Validate(raw.Map(
		raw.KV("run", raw.Ints(2020)),
		raw.KV("dummy", raw.Ints(1)),
		raw.KV("another", raw.Null),
	))
	require.NoError(t, err)
	assert.Empty(t, res.Errors())
	assert.Equal(t, []string{
		"Following keys in the model time_horizon are not valid and are ignored: \n{'another', 'dummy'}",
	}, res.Warnings())
}

func TestValidate_AllPeriodsIsConcatenation(t *testing.T) {
	t.Parallel()

	// Overlapping periods are reported as errors, but the combined view still
	// keeps every year of every period.
	res, err := Validate(raw.Map(
		raw.KV("run", raw.Ints(2020, 2021)),
		raw.KV("warm_up", raw.Ints(2021)),
	))
	require.NoError(t, err)
	require.True(t, res.HasErrors())

	want := []int{2020, 2021, 2021}
	if diff := cmp.Diff(want, res.Horizon.AllPeriods); diff != "" {
		t.Errorf("AllPeriods mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, YearSet{2020, 2021}, res.Horizon.ValidYears())
}

func TestNewYearSet(t *testing.T) {
	t.Parallel()

	in := []int{2023, 2021, 2023, 2022}
	got := NewYearSet(in)
	assert.Equal(t, YearSet{2021, 2022, 2023}, got)
	assert.Equal(t, []int{2023, 2021, 2023, 2022}, in, "input must not be modified")

	assert.Equal(t, got, NewYearSet(got), "re-validation is idempotent")
	assert.Equal(t, YearSet{}, NewYearSet(nil))

	assert.True(t, got.Contains(2022))
	assert.False(t, got.Contains(2024))
}
