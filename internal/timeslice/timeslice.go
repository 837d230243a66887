// Package timeslice validates the sub-annual granularity of a model: a name
// and a list of slice labels such as hour indices or named periods.
package timeslice

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/rangeexpr"
	"github.com/specialistvlad/horizon/internal/raw"
	"github.com/specialistvlad/horizon/internal/typecheck"
)

const (
	// Section is the configuration section validated by this package.
	Section = "time_slices"

	// DefaultName is used when no name is configured.
	DefaultName = "time_slice"
)

// DefaultSlices returns the slice list used when none is configured.
func DefaultSlices() []raw.Value {
	return []raw.Value{raw.Int(1)}
}

// TimeSlices is a normalized time slice definition. The Defaulted flags tell
// which fields were filled in because the input left them out.
type TimeSlices struct {
	Name   string
	Slices []raw.Value

	NameDefaulted   bool
	SlicesDefaulted bool
}

// Labels renders the slice labels as strings.
func (ts TimeSlices) Labels() []string {
	out := make([]string, len(ts.Slices))
	for i, s := range ts.Slices {
		out[i] = s.String()
	}
	return out
}

// Result is the outcome of Validate.
type Result struct {
	Diags      hcl.Diagnostics
	TimeSlices TimeSlices
}

func (r Result) Errors() []string { return issue.Errors(r.Diags) }
func (r Result) Warnings() []string { return issue.Warnings(r.Diags) }
func (r Result) HasErrors() bool { return r.Diags.HasErrors() }

// Validate normalizes a time_slices mapping with the optional keys name and
// slices. A null value means the section is absent and yields the defaults.
// The input is never modified; a new TimeSlices is returned.
func Validate(v raw.Value) Result {
	var diags hcl.Diagnostics
	ts := TimeSlices{Name: DefaultName, NameDefaulted: true}

	if !v.IsNull() && v.Kind() != raw.KindMap {
		diags = append(diags, issue.Error(issue.InvalidDefinition, Section,
			"'"+Section+"' should be defined as a mapping with 'name' and 'slices'."))
		ts.Slices, ts.SlicesDefaulted = DefaultSlices(), true
		return Result{Diags: diags, TimeSlices: ts}
	}

	if nameV, ok := v.Get("name"); ok && !nameV.IsNull() {
		if name, isStr := nameV.AsString(); isStr {
			ts.Name, ts.NameDefaulted = name, false
		} else {
			diags = append(diags, issue.Error(issue.InvalidDefinition, Section,
				"'"+Section+"' name should be a string."))
		}
	}

	if slicesV, ok := v.Get("slices"); ok && !slicesV.IsNull() {
		flat, flatDiags := ReadTimeSliceData(slicesV)
		diags = append(diags, flatDiags...)
		ts.Slices = flat
	} else {
		ts.Slices, ts.SlicesDefaulted = DefaultSlices(), true
	}

	if extra := issue.ExtraKeys(v.Keys(), "name", "slices"); len(extra) > 0 {
		diags = append(diags, issue.Warning(issue.UnknownKeys, Section,
			"Following keys in the "+Section+" are not valid and are ignored: \n"+issue.FormatKeys(extra)))
	}

	diags = append(diags, typecheck.Consistent(ts.Slices, Section)...)

	if hasDuplicates(ts.Slices) {
		diags = append(diags, issue.Error(issue.Duplicate, Section,
			"duplicate values are not allowed in '"+Section+"'."))
	}

	return Result{Diags: diags, TimeSlices: ts}
}

// ReadTimeSliceData flattens a slice definition into labels. Integers and
// plain strings are labels themselves, range expressions expand to integers,
// and lists are flattened recursively. A list that already holds labels of a
// single kind is returned as it is.
func ReadTimeSliceData(v raw.Value) ([]raw.Value, hcl.Diagnostics) {
	switch raw.Classify(v) {
	case raw.ClassInteger, raw.ClassLabel:
		return []raw.Value{v}, nil

	case raw.ClassRangeExpression:
		text, _ := v.AsString()
		ints, diags := rangeexpr.Parse(text, Section)
		out := make([]raw.Value, len(ints))
		for i, n := range ints {
			out[i] = raw.Int(n)
		}
		return out, diags

	case raw.ClassIntegerList, raw.ClassList:
		items := v.Items()
		if isFlatLabels(items) {
			return items, nil
		}
		out := []raw.Value{}
		var diags hcl.Diagnostics
		for _, item := range items {
			sub, subDiags := ReadTimeSliceData(item)
			out = append(out, sub...)
			diags = append(diags, subDiags...)
		}
		return out, diags

	default:
		return []raw.Value{}, hcl.Diagnostics{
			issue.Error(issue.InvalidEntry, Section,
				"'time_slices accept only int, str (or range function) or a list of mentioned items."),
		}
	}
}

func isFlatLabels(items []raw.Value) bool {
	if !raw.SameKind(items) {
		return false
	}
	for _, item := range items {
		switch raw.Classify(item) {
		case raw.ClassInteger, raw.ClassLabel:
		default:
			return false
		}
	}
	return true
}

func hasDuplicates(labels []raw.Value) bool {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		key := l.Kind().String() + ":" + l.String()
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}
