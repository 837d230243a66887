// Package issue builds the diagnostics reported by the validators.
//
// Every problem is an *hcl.Diagnostic. Summary holds the final message text
// shown to model authors, and Extra holds a Detail so callers and tests can
// inspect what went wrong without parsing strings. Messages are only turned
// into plain string lists at the reporting boundary (Errors, Warnings).
package issue

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Kind classifies a diagnostic.
type Kind string

const (
	RangeExpression   Kind = "range_expression"
	MixedTypes        Kind = "mixed_types"
	NotAList          Kind = "not_a_list"
	InvalidEntry      Kind = "invalid_entry"
	Overlap           Kind = "overlap"
	UnknownKeys       Kind = "unknown_keys"
	Duplicate         Kind = "duplicate"
	OutOfDomain       Kind = "out_of_domain"
	InvalidDefinition Kind = "invalid_definition"
	InvalidSetting    Kind = "invalid_setting"
)

// Detail is attached to every diagnostic through hcl.Diagnostic.Extra.
type Detail struct {
	Kind Kind
	// Item names the configuration item the message is about, e.g. "run" or
	// "clusters: early".
	Item string
}

// Error returns an error diagnostic.
func Error(kind Kind, item, msg string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  msg,
		Extra:    Detail{Kind: kind, Item: item},
	}
}

// Errorf is Error with a format string.
func Errorf(kind Kind, item, format string, args ...any) *hcl.Diagnostic {
	return Error(kind, item, fmt.Sprintf(format, args...))
}

// Warning returns a warning diagnostic.
func Warning(kind Kind, item, msg string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  msg,
		Extra:    Detail{Kind: kind, Item: item},
	}
}

// DetailOf extracts the Detail of a diagnostic built by this package.
func DetailOf(d *hcl.Diagnostic) (Detail, bool) {
	if d == nil {
		return Detail{}, false
	}
	det, ok := d.Extra.(Detail)
	return det, ok
}

// Errors renders the error messages in order.
func Errors(diags hcl.Diagnostics) []string {
	return messages(diags, hcl.DiagError)
}

// Warnings renders the warning messages in order.
func Warnings(diags hcl.Diagnostics) []string {
	return messages(diags, hcl.DiagWarning)
}

func messages(diags hcl.Diagnostics, sev hcl.DiagnosticSeverity) []string {
	var out []string
	for _, d := range diags {
		if d.Severity == sev {
			out = append(out, d.Summary)
		}
	}
	return out
}

// OfKind filters diagnostics by kind, keeping order.
func OfKind(diags hcl.Diagnostics, kind Kind) hcl.Diagnostics {
	var out hcl.Diagnostics
	for _, d := range diags {
		if det, ok := DetailOf(d); ok && det.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// FormatInts renders integers as a sorted set literal, e.g. "{2024, 2025}".
func FormatInts(ints []int) string {
	sorted := append([]int(nil), ints...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FormatKeys renders keys as a sorted set literal, e.g. "{'a', 'b'}".
func FormatKeys(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	parts := make([]string, len(sorted))
	for i, k := range sorted {
		parts[i] = "'" + k + "'"
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ExtraKeys returns the keys that are not in allowed, in document order.
func ExtraKeys(keys []string, allowed ...string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		known[a] = struct{}{}
	}
	var out []string
	for _, k := range keys {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
