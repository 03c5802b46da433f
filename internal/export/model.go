// Package export implements the review comment export pipeline:
// grouping, per-format rendering and the orchestrating service.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/tildaslashalef/redline/internal/comment"
	"github.com/tildaslashalef/redline/internal/config"
)

// Format identifies a target export format.
type Format string

const (
	FormatHTML   Format = "html"
	FormatGitLab Format = "gitlab"
	FormatGitHub Format = "github"
	FormatJIRA   Format = "jira"
	FormatJSON   Format = "json"
)

// ParseFormat maps a format identifier to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatHTML:
		return FormatHTML, nil
	case FormatGitLab:
		return FormatGitLab, nil
	case FormatGitHub:
		return FormatGitHub, nil
	case FormatJIRA:
		return FormatJIRA, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format: %q", s)
	}
}

// Suffix returns the output file suffix for the format, appended to the
// configured base filename.
func (f Format) Suffix() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatGitLab:
		return ".gitlab.csv"
	case FormatGitHub:
		return ".github.csv"
	case FormatJIRA:
		return ".jira.csv"
	case FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// GroupKey selects the row attribute used to partition rows.
type GroupKey string

const (
	GroupByFilename GroupKey = "filename"
	GroupByCategory GroupKey = "category"
)

// Group is a named bucket of rows sharing a grouping-key value,
// created fresh per export run.
type Group struct {
	Key  string
	Rows []comment.Row
}

// Options carries the configuration one export invocation runs with.
// Values are threaded in explicitly at descriptor construction; no
// renderer consults global state.
type Options struct {
	WorkspaceRoot string
	Filename      string // base name of source CSV and output artifacts
	GroupBy       GroupKey
	Labels        comment.PriorityLabels
	IncludeCode   bool
	TemplatePath  string // custom HTML template; empty uses the built-in
}

// OptionsFromConfig builds Options from the export configuration.
func OptionsFromConfig(root string, cfg config.ExportConfig) Options {
	return Options{
		WorkspaceRoot: root,
		Filename:      cfg.Filename,
		GroupBy:       GroupKey(cfg.GroupBy),
		Labels:        comment.PriorityLabels(cfg.PriorityLabels),
		IncludeCode:   cfg.IncludeCode,
		TemplatePath:  cfg.TemplatePath,
	}
}

// Descriptor bundles the per-format export behaviour: buffering
// policy, per-row transform and finalization. A descriptor is
// constructed once per export invocation and discarded after.
//
// Streamed descriptors receive Begin, then one Row call per row, then
// Finish with nil groups. Buffered descriptors receive Begin and a
// single Finish call carrying the grouped row set.
type Descriptor interface {
	Format() Format
	// Buffered reports whether rows are accumulated and grouped in
	// memory before writing, instead of streamed incrementally.
	Buffered() bool
	Begin(w io.Writer) error
	Row(w io.Writer, row comment.Row) error
	Finish(w io.Writer, groups []Group) error
}

// NewDescriptor constructs the descriptor for a format with the
// invocation's options.
func NewDescriptor(format Format, opts Options) (Descriptor, error) {
	switch format {
	case FormatHTML:
		return newHTMLDescriptor(opts)
	case FormatGitLab:
		return newGitLabDescriptor(opts), nil
	case FormatGitHub:
		return newGitHubDescriptor(opts), nil
	case FormatJIRA:
		return newJIRADescriptor(opts), nil
	case FormatJSON:
		return newJSONDescriptor(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
}
