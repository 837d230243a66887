package horizon

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/rangeexpr"
	"github.com/specialistvlad/horizon/internal/raw"
)

// ItemResult is the outcome of reading one period definition.
type ItemResult struct {
	// Time holds the years of every well-formed entry, in input order and
	// possibly with duplicates.
	Time  []int
	Diags hcl.Diagnostics
}

// ReadTimeItem flattens one period definition into years. The definition
// must be a list whose entries are integers, lists of integers or range
// expressions. Malformed entries are reported and skipped; reading carries on
// with the next entry.
func ReadTimeItem(v raw.Value, item string) ItemResult {
	if v.Kind() != raw.KindList {
		return ItemResult{
			Diags: hcl.Diagnostics{
				issue.Errorf(issue.NotAList, item, "time should be defined as a list for '%s'.", item),
			},
		}
	}

	res := ItemResult{Time: []int{}}
	for _, entry := range v.Items() {
		switch raw.Classify(entry) {
		case raw.ClassInteger:
			n, _ := entry.AsInt()
			res.Time = append(res.Time, n)

		case raw.ClassIntegerList:
			years, _ := raw.IntsOf(entry)
			res.Time = append(res.Time, years...)

		case raw.ClassList:
			res.Diags = append(res.Diags, issue.Errorf(issue.MixedTypes, item,
				"time definition through lists can only contain integers for '%s'.", item))

		case raw.ClassRangeExpression:
			text, _ := entry.AsString()
			years, diags := rangeexpr.Parse(text, item)
			res.Time = append(res.Time, years...)
			res.Diags = append(res.Diags, diags...)

		default:
			res.Diags = append(res.Diags, issue.Errorf(issue.InvalidEntry, item,
				"time definition can be a range (e.g. range(start,end,step)),an integer or a list of integers for '%s'", item))
		}
	}
	return res
}
