package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tildaslashalef/redline/internal/comment"
)

// The CSV-style descriptors stream: the header is written once up
// front and one line is appended per row as it arrives.

// gitlabDescriptor renders GitLab's 2-column issue import CSV.
type gitlabDescriptor struct {
	labels comment.PriorityLabels
	cw     *csv.Writer
}

func newGitLabDescriptor(opts Options) *gitlabDescriptor {
	return &gitlabDescriptor{labels: opts.Labels}
}

func (d *gitlabDescriptor) Format() Format { return FormatGitLab }
func (d *gitlabDescriptor) Buffered() bool { return false }

func (d *gitlabDescriptor) Begin(w io.Writer) error {
	d.cw = csv.NewWriter(w)
	return writeRecord(d.cw, []string{"title", "description"})
}

func (d *gitlabDescriptor) Row(w io.Writer, row comment.Row) error {
	return writeRecord(d.cw, []string{
		Title(row),
		MarkdownDescription(row, d.labels),
	})
}

func (d *gitlabDescriptor) Finish(w io.Writer, groups []Group) error {
	d.cw.Flush()
	return d.cw.Error()
}

// githubDescriptor renders GitHub's 5-column issue import CSV. The
// labels, state and assignee columns carry fixed values.
type githubDescriptor struct {
	labels comment.PriorityLabels
	cw     *csv.Writer
}

func newGitHubDescriptor(opts Options) *githubDescriptor {
	return &githubDescriptor{labels: opts.Labels}
}

func (d *githubDescriptor) Format() Format { return FormatGitHub }
func (d *githubDescriptor) Buffered() bool { return false }

func (d *githubDescriptor) Begin(w io.Writer) error {
	d.cw = csv.NewWriter(w)
	return writeRecord(d.cw, []string{"title", "description", "labels", "state", "assignee"})
}

func (d *githubDescriptor) Row(w io.Writer, row comment.Row) error {
	return writeRecord(d.cw, []string{
		Title(row),
		MarkdownDescription(row, d.labels),
		"code-review",
		"open",
		"",
	})
}

func (d *githubDescriptor) Finish(w io.Writer, groups []Group) error {
	d.cw.Flush()
	return d.cw.Error()
}

// jiraPriorityNames is the authoritative mapping from the internal
// priority scale to JIRA priority names. It runs in the same direction
// as the internal scale; an unset or out-of-range priority maps to an
// empty name so the import falls back to the project default.
var jiraPriorityNames = []string{"", "Low", "Medium", "High"}

// JIRAPriority maps an internal priority value to its JIRA name.
func JIRAPriority(priority int) string {
	if priority >= 0 && priority < len(jiraPriorityNames) {
		return jiraPriorityNames[priority]
	}
	return ""
}

// jiraDescriptor renders the 11-column JIRA import CSV: three rendered
// columns followed by the raw row fields with free text re-escaped to
// its single-line stored form.
type jiraDescriptor struct {
	labels comment.PriorityLabels
	cw     *csv.Writer
}

func newJIRADescriptor(opts Options) *jiraDescriptor {
	return &jiraDescriptor{labels: opts.Labels}
}

func (d *jiraDescriptor) Format() Format { return FormatJIRA }
func (d *jiraDescriptor) Buffered() bool { return false }

func (d *jiraDescriptor) Begin(w io.Writer) error {
	d.cw = csv.NewWriter(w)
	return writeRecord(d.cw, []string{
		"Summary", "Description", "Priority",
		"sha", "filename", "url", "lines", "title", "category", "comment", "additional",
	})
}

func (d *jiraDescriptor) Row(w io.Writer, row comment.Row) error {
	return writeRecord(d.cw, []string{
		Title(row),
		JIRADescription(row, d.labels),
		JIRAPriority(row.Priority),
		row.SHA,
		row.Filename,
		row.URL,
		row.Lines,
		comment.Escape(row.Title),
		row.Category,
		comment.Escape(row.Comment),
		comment.Escape(row.Additional),
	})
}

func (d *jiraDescriptor) Finish(w io.Writer, groups []Group) error {
	d.cw.Flush()
	return d.cw.Error()
}

// writeRecord writes and flushes a single record so streamed output
// reaches the file as each row arrives.
func writeRecord(cw *csv.Writer, record []string) error {
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
