// Package typecheck verifies that a sequence of configuration values is
// homogeneously typed.
package typecheck

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Consistent returns one error diagnostic when values mix kinds, e.g. labels
// and integers. Empty and single-element sequences are always consistent.
func Consistent(values []raw.Value, item string) hcl.Diagnostics {
	if raw.SameKind(values) {
		return nil
	}
	return hcl.Diagnostics{
		issue.Errorf(issue.MixedTypes, item, "'%s' is not allowed to have different data type.", item),
	}
}
