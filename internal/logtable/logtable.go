// Package logtable renders validation messages as an indexed two-column
// table, on a writer or into a log file.
package logtable

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

// Render writes messages as a table with an index column and a message
// column. Continuation lines of a multi-line message are indented under the
// message column. Nothing is written for an empty list.
func Render(w io.Writer, messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tmessage")
	for i, msg := range messages {
		lines := strings.Split(msg, "\n")
		fmt.Fprintf(tw, "%d\t%s\n", i, lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(tw, "\t%s\n", line)
		}
	}
	return tw.Flush()
}

// Write renders messages into the file at path, creating parent
// directories and replacing any previous content.
func Write(path string, messages []string) error {
	var buf bytes.Buffer
	if err := Render(&buf, messages); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write log file %s: %w", path, err)
	}
	return nil
}
