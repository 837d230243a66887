package modeldata

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinels matched by the *SectionError of the section that halted a build.
var (
	ErrTimeHorizon = errors.New("time_horizon definition is invalid")
	ErrTimeSlices  = errors.New("time_slices definition is invalid")
	ErrClusters    = errors.New("clusters definition is invalid")
)

// ErrorLogFile is the name of the error log written under the log path.
const ErrorLogFile = "error_log.txt"

// SectionError halts a build when one or more sections have errors. The
// full list is written to the error log in LogDir.
type SectionError struct {
	Sections []string
	LogDir   string
	Errors   []string

	sentinels []error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("%d errors exist in the definition of %s. The errors are listed in the error_log file located at %s",
		len(e.Errors), strings.Join(e.Sections, " and "), e.LogDir)
}

// Is matches the sentinel of every failing section.
func (e *SectionError) Is(target error) bool {
	return slices.Contains(e.sentinels, target)
}
