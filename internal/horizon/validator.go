package horizon

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Section is the configuration section validated by this package.
const Section = "time_horizon"

// Horizon is a validated time horizon.
type Horizon struct {
	// Periods holds the years of every period that validated cleanly.
	Periods map[Period]YearSet
	// AllPeriods is the sorted concatenation of all period years. It is not
	// deduplicated.
	AllPeriods []int
}

// Years returns the years of p. AllPeriods is accepted as well.
func (h Horizon) Years(p Period) ([]int, bool) {
	if p == AllPeriods {
		return h.AllPeriods, h.Periods != nil
	}
	years, ok := h.Periods[p]
	return years, ok
}

// ValidYears returns every year of the horizon as a YearSet.
func (h Horizon) ValidYears() YearSet {
	return NewYearSet(h.AllPeriods)
}

// Result is the outcome of Validate.
type Result struct {
	Diags   hcl.Diagnostics
	Horizon Horizon
}

func (r Result) Errors() []string { return issue.Errors(r.Diags) }
func (r Result) Warnings() []string { return issue.Warnings(r.Diags) }
func (r Result) HasErrors() bool { return r.Diags.HasErrors() }

// Validate checks a time_horizon mapping. It returns an
// *EssentialSetMissingError when the run period is absent; every other
// problem is reported through Result.Diags.
func Validate(v raw.Value) (Result, error) {
	if !v.Has(string(Run)) {
		return Result{}, &EssentialSetMissingError{Period: Run}
	}

	var diags hcl.Diagnostics
	h := Horizon{Periods: make(map[Period]YearSet, len(Periods))}

	for _, p := range Periods {
		def, ok := v.Get(string(p))
		if !ok {
			continue
		}
		item := ReadTimeItem(def, string(p))
		if item.Diags.HasErrors() {
			// A period with any bad entry is dropped entirely.
			diags = append(diags, item.Diags...)
			continue
		}
		h.Periods[p] = NewYearSet(item.Time)
	}

	if extra := issue.ExtraKeys(v.Keys(), periodKeys()...); len(extra) > 0 {
		diags = append(diags, issue.Warning(issue.UnknownKeys, Section,
			"Following keys in the model "+Section+" are not valid and are ignored: \n"+issue.FormatKeys(extra)))
	}

	diags = append(diags, checkOverlaps(h.Periods)...)

	all := []int{}
	for _, p := range Periods {
		all = append(all, h.Periods[p]...)
	}
	sort.Ints(all)
	h.AllPeriods = all

	return Result{Diags: diags, Horizon: h}, nil
}

var overlapPairs = [][2]Period{
	{Run, WarmUp},
	{Run, CoolDown},
	{WarmUp, CoolDown},
}

// checkOverlaps compares periods as closed intervals spanning their first to
// last year, so gaps inside a period still count as covered.
func checkOverlaps(periods map[Period]YearSet) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, pair := range overlapPairs {
		a, okA := periods[pair[0]]
		b, okB := periods[pair[1]]
		if !okA || !okB {
			continue
		}
		lo, hi, ok := spanIntersection(a, b)
		if !ok {
			continue
		}
		diags = append(diags, issue.Errorf(issue.Overlap, string(pair[1]),
			"'%s' and '%s' periods overlap in years %s.", pair[0], pair[1], formatSpan(lo, hi)))
	}
	return diags
}

func spanIntersection(a, b YearSet) (lo, hi int, ok bool) {
	aFirst, aLast, okA := a.Span()
	bFirst, bLast, okB := b.Span()
	if !okA || !okB {
		return 0, 0, false
	}
	lo, hi = max(aFirst, bFirst), min(aLast, bLast)
	return lo, hi, lo <= hi
}

// maxListedYears bounds how many years an overlap message spells out.
const maxListedYears = 200

func formatSpan(lo, hi int) string {
	if hi-lo >= maxListedYears {
		return fmt.Sprintf("{%d, ..., %d}", lo, hi)
	}
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	return issue.FormatInts(years)
}
