package horizon

import "sort"

// Period is one phase of the simulated time horizon.
type Period string

const (
	Run      Period = "run"
	WarmUp   Period = "warm_up"
	CoolDown Period = "cool_down"

	// AllPeriods names the combined view of every validated period.
	AllPeriods Period = "all_periods"
)

// Periods lists the recognized periods in validation order.
var Periods = []Period{Run, WarmUp, CoolDown}

func periodKeys() []string {
	keys := make([]string, len(Periods))
	for i, p := range Periods {
		keys[i] = string(p)
	}
	return keys
}

// YearSet is an ascending, duplicate-free sequence of years.
type YearSet []int

// NewYearSet sorts and deduplicates years. The input is not modified.
func NewYearSet(years []int) YearSet {
	if len(years) == 0 {
		return YearSet{}
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	out := sorted[:1]
	for _, y := range sorted[1:] {
		if y != out[len(out)-1] {
			out = append(out, y)
		}
	}
	return YearSet(out)
}

// Span returns the first and last year.
func (s YearSet) Span() (first, last int, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	return s[0], s[len(s)-1], true
}

// Contains reports whether year is a member of the set.
func (s YearSet) Contains(year int) bool {
	i := sort.SearchInts(s, year)
	return i < len(s) && s[i] == year
}
