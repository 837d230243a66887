// Package cluster validates named groups of years used to aggregate a model
// horizon, and reports which years no cluster covers.
package cluster

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/horizon"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/rangeexpr"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Section is the configuration section validated by this package.
const Section = "clusters"

// Cluster is one validated year group.
type Cluster struct {
	Name  string
	Years horizon.YearSet
}

// Result is the outcome of Validate. Clusters keep document order.
type Result struct {
	Diags    hcl.Diagnostics
	Clusters []Cluster
}

func (r Result) Errors() []string { return issue.Errors(r.Diags) }
func (r Result) Warnings() []string { return issue.Warnings(r.Diags) }
func (r Result) HasErrors() bool { return r.Diags.HasErrors() }

// Names returns the cluster names in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Clusters))
	for i, c := range r.Clusters {
		names[i] = c.Name
	}
	return names
}

// Validate checks a mapping of cluster names to year definitions. A
// definition is either a list of integers or a range expression, and every
// year must appear in years. A cluster with any problem is left out of the
// result entirely. A null value means no clusters are configured.
func Validate(v raw.Value, years []int) Result {
	if v.IsNull() {
		return Result{Clusters: []Cluster{}}
	}
	if v.Kind() != raw.KindMap {
		return Result{
			Clusters: []Cluster{},
			Diags: hcl.Diagnostics{issue.Error(issue.InvalidDefinition, Section,
				"clusters should be defined as a mapping of cluster names to years.")},
		}
	}

	valid := horizon.NewYearSet(years)
	res := Result{Clusters: []Cluster{}}
	for _, f := range v.Fields() {
		clusterYears, diags := readDefinition(f.Key, f.Value)
		res.Diags = append(res.Diags, diags...)
		if diags.HasErrors() {
			continue
		}

		var invalid []int
		for _, y := range clusterYears {
			if !valid.Contains(y) {
				invalid = append(invalid, y)
			}
		}
		if len(invalid) > 0 {
			res.Diags = append(res.Diags, issue.Errorf(issue.OutOfDomain, itemName(f.Key),
				"cluster '%s' has years (%s) that are not valid years.", f.Key, issue.FormatInts(horizon.NewYearSet(invalid))))
			continue
		}

		res.Clusters = append(res.Clusters, Cluster{Name: f.Key, Years: horizon.NewYearSet(clusterYears)})
	}
	return res
}

func readDefinition(name string, v raw.Value) ([]int, hcl.Diagnostics) {
	switch raw.Classify(v) {
	case raw.ClassIntegerList:
		ints, _ := raw.IntsOf(v)
		return ints, nil
	case raw.ClassRangeExpression:
		text, _ := v.AsString()
		return rangeexpr.Parse(text, itemName(name))
	default:
		return nil, hcl.Diagnostics{issue.Errorf(issue.InvalidDefinition, itemName(name),
			"A cluster can be defined only as a list of integers or a range function(error in the definition of %s.", name)}
	}
}

func itemName(name string) string {
	return fmt.Sprintf("%s: %s", Section, name)
}

// Coverage lists the configured cluster names and the years none of them
// claims.
type Coverage struct {
	Clusters  []string
	Uncovered []int
}

// ComputeUncoveredYears returns the cluster names in order and the sorted
// years that belong to no cluster.
func ComputeUncoveredYears(clusters []Cluster, years []int) Coverage {
	claimed := make(map[int]struct{})
	names := make([]string, len(clusters))
	for i, c := range clusters {
		names[i] = c.Name
		for _, y := range c.Years {
			claimed[y] = struct{}{}
		}
	}

	uncovered := []int{}
	for _, y := range horizon.NewYearSet(years) {
		if _, ok := claimed[y]; !ok {
			uncovered = append(uncovered, y)
		}
	}
	return Coverage{Clusters: names, Uncovered: uncovered}
}
