package reportstore

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/horizon/internal/issue"
)

// Status is the outcome of a validation run.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Severity values stored with each message.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Message is one stored diagnostic.
type Message struct {
	Severity string
	Kind     string
	Item     string
	Text     string
}

// Run is one recorded validation of a configuration source.
type Run struct {
	ID        string
	Source    string
	StartedAt time.Time
	Status    Status
	// Error is the message of the error that stopped the build, if any.
	Error    string
	Warnings int
	Errors   int
	Messages []Message
}

// NewRun summarizes a build into a Run. buildErr is the error returned by
// the build, nil on success.
func NewRun(source string, startedAt time.Time, diags hcl.Diagnostics, buildErr error) Run {
	run := Run{Source: source, StartedAt: startedAt, Status: StatusPassed}
	if buildErr != nil {
		run.Status = StatusFailed
		run.Error = buildErr.Error()
	}

	for _, d := range diags {
		msg := Message{Text: d.Summary, Severity: SeverityWarning}
		if d.Severity == hcl.DiagError {
			msg.Severity = SeverityError
			run.Errors++
		} else {
			run.Warnings++
		}
		if detail, ok := issue.DetailOf(d); ok {
			msg.Kind, msg.Item = string(detail.Kind), detail.Item
		}
		run.Messages = append(run.Messages, msg)
	}
	return run
}
