package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/tildaslashalef/redline/internal/comment"
	"github.com/tildaslashalef/redline/internal/span"
)

//go:embed templates/report.html.tmpl
var defaultReportTemplate string

// htmlDescriptor renders the single-document HTML report. Buffered:
// all rows are accumulated, grouped, then rendered in one pass.
//
// Templates receive a "decode" function and are expected to invoke it
// for any field carrying encoded code (the built-in template does this
// for every code block). A custom template file from the options
// replaces the built-in one and is held to the same contract.
type htmlDescriptor struct {
	tmpl        *template.Template
	groupBy     GroupKey
	labels      comment.PriorityLabels
	reportTitle string
}

func newHTMLDescriptor(opts Options) (*htmlDescriptor, error) {
	text := defaultReportTemplate
	if opts.TemplatePath != "" {
		custom, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("reading custom template: %w", err)
		}
		text = string(custom)
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"decode": span.DecodeBase64,
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	return &htmlDescriptor{
		tmpl:        tmpl,
		groupBy:     opts.GroupBy,
		labels:      opts.Labels,
		reportTitle: opts.Filename,
	}, nil
}

func (d *htmlDescriptor) Format() Format { return FormatHTML }
func (d *htmlDescriptor) Buffered() bool { return true }

func (d *htmlDescriptor) Begin(w io.Writer) error { return nil }

func (d *htmlDescriptor) Row(w io.Writer, row comment.Row) error { return nil }

func (d *htmlDescriptor) Finish(w io.Writer, groups []Group) error {
	report := htmlReport{
		Title:       d.reportTitle,
		GroupKey:    string(d.groupBy),
		GeneratedAt: time.Now(),
	}

	for _, g := range groups {
		hg := htmlGroup{Key: g.Key}
		for _, row := range g.Rows {
			hr := htmlRow{
				Title:         Title(row),
				Priority:      row.Priority,
				PriorityLabel: d.labels.Label(row.Priority),
				Category:      row.Category,
				Filename:      row.Filename,
				Lines:         row.Lines,
				SHA:           row.SHA,
				URL:           row.URL,
				Comment:       row.Comment,
				Additional:    row.Additional,
			}
			if row.Code != "" {
				hr.Code = span.EncodeBase64(row.Code)
			}
			hg.Rows = append(hg.Rows, hr)
			report.TotalRows++
		}
		report.Groups = append(report.Groups, hg)
	}

	if err := d.tmpl.Execute(w, report); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

type htmlReport struct {
	Title       string
	GroupKey    string
	GeneratedAt time.Time
	TotalRows   int
	Groups      []htmlGroup
}

type htmlGroup struct {
	Key  string
	Rows []htmlRow
}

// htmlRow is one rendered comment. Code is base64-encoded; the
// template decodes it at render time via the registered decode func.
type htmlRow struct {
	Title         string
	Priority      int
	PriorityLabel string
	Category      string
	Filename      string
	Lines         string
	SHA           string
	URL           string
	Comment       string
	Additional    string
	Code          string
}
