package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tildaslashalef/redline/internal/comment"
	"github.com/tildaslashalef/redline/internal/gitutil"
	"github.com/tildaslashalef/redline/internal/loggy"
	"github.com/tildaslashalef/redline/internal/span"
	"github.com/tildaslashalef/redline/internal/utils"
)

// Result is the completion event of one export invocation, reported to
// the caller on success.
type Result struct {
	RunID      string
	Label      string
	Format     Format
	OutputPath string
	Rows       int
	Groups     int
	Duration   time.Duration
}

// Service orchestrates the export pipeline: read, normalize,
// optionally resolve code, group or stream, render, write.
type Service struct {
	repo   Repository
	git    *gitutil.Service
	logger *loggy.Logger
}

// NewService creates a new export service. repo may be nil, in which
// case runs are not recorded in history.
func NewService(repo Repository, git *gitutil.Service, logger *loggy.Logger) *Service {
	return &Service{repo: repo, git: git, logger: logger}
}

// SourcePath returns the input CSV path for the options.
func SourcePath(opts Options) string {
	return filepath.Join(opts.WorkspaceRoot, opts.Filename+".csv")
}

// OutputPath returns the output artifact path for the options and format.
func OutputPath(opts Options, format Format) string {
	return filepath.Join(opts.WorkspaceRoot, opts.Filename+format.Suffix())
}

// Export runs one export invocation for the chosen format. Buffered
// formats write only after the whole pipeline succeeded; streamed
// formats write incrementally and their partial output is removed on
// failure. A failing export never retries.
func (s *Service) Export(ctx context.Context, format Format, opts Options) (*Result, error) {
	started := time.Now()

	desc, err := NewDescriptor(format, opts)
	if err != nil {
		return nil, err
	}

	sourcePath := SourcePath(opts)
	outputPath := OutputPath(opts, format)

	s.logger.Info("starting export",
		"format", format,
		"source", sourcePath,
		"output", outputPath,
		"group_by", opts.GroupBy,
		"include_code", opts.IncludeCode,
	)

	resolver, err := span.NewResolver(opts.WorkspaceRoot, s.logger)
	if err != nil {
		return nil, err
	}

	headSHA := s.headSHA(opts.WorkspaceRoot)
	reader := comment.NewReader(sourcePath, s.logger)

	var (
		rowCount   int
		groupCount int
	)

	// A malformed selector is an input error and aborts the run; a
	// range that no longer resolves (stale line numbers, deleted file)
	// only costs that row its code.
	prepare := func(row comment.Row) (comment.Row, error) {
		row = comment.Normalize(row)
		if row.SHA == "" {
			row.SHA = headSHA
		}
		if row.Lines != "" {
			if _, err := span.Parse(row.Lines); err != nil {
				return row, fmt.Errorf("row for %s: %w", row.Filename, err)
			}
		}
		if opts.IncludeCode && row.Lines != "" {
			code, err := resolver.Extract(row.Filename, row.Lines)
			if err != nil {
				s.logger.Warn("skipping code extraction",
					"file", row.Filename,
					"lines", row.Lines,
					"error", err,
				)
			} else {
				row.Code = code
			}
		}
		return row, nil
	}

	if desc.Buffered() {
		var rows []comment.Row
		if err := reader.Each(func(row comment.Row) error {
			prepared, err := prepare(row)
			if err != nil {
				return err
			}
			rows = append(rows, prepared)
			return nil
		}); err != nil {
			return nil, err
		}
		rowCount = len(rows)

		groups, err := GroupRows(rows, opts.GroupBy)
		if err != nil {
			return nil, err
		}
		groupCount = len(groups)

		var buf bytes.Buffer
		if err := desc.Begin(&buf); err != nil {
			return nil, err
		}
		if err := desc.Finish(&buf, groups); err != nil {
			return nil, err
		}
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing output file: %w", err)
		}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("creating output file: %w", err)
		}

		err = func() error {
			if err := desc.Begin(f); err != nil {
				return err
			}
			if err := reader.Each(func(row comment.Row) error {
				prepared, err := prepare(row)
				if err != nil {
					return err
				}
				rowCount++
				return desc.Row(f, prepared)
			}); err != nil {
				return err
			}
			return desc.Finish(f, nil)
		}()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// Remove the partially written stream rather than leaving
			// an invalid artifact behind
			_ = os.Remove(outputPath)
			return nil, err
		}
	}

	result := &Result{
		Format:     format,
		OutputPath: outputPath,
		Rows:       rowCount,
		Groups:     groupCount,
		Duration:   time.Since(started),
	}

	s.recordRun(ctx, result)

	s.logger.Info("export completed",
		"format", format,
		"output", outputPath,
		"rows", rowCount,
		"duration", result.Duration,
	)

	return result, nil
}

// Preview renders the Markdown descriptions of up to limit rows,
// separated by horizontal rules, for terminal display.
func (s *Service) Preview(ctx context.Context, opts Options, limit int) (string, error) {
	resolver, err := span.NewResolver(opts.WorkspaceRoot, s.logger)
	if err != nil {
		return "", err
	}

	reader := comment.NewReader(SourcePath(opts), s.logger)

	var sections []string
	err = reader.Each(func(row comment.Row) error {
		if limit > 0 && len(sections) >= limit {
			return nil
		}
		row = comment.Normalize(row)
		if row.Lines != "" {
			if _, err := span.Parse(row.Lines); err != nil {
				return fmt.Errorf("row for %s: %w", row.Filename, err)
			}
		}
		if opts.IncludeCode && row.Lines != "" {
			if code, err := resolver.Extract(row.Filename, row.Lines); err == nil {
				row.Code = code
			}
		}
		header := fmt.Sprintf("# %s\n\n", Title(row))
		sections = append(sections, header+MarkdownDescription(row, opts.Labels))
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(sections) == 0 {
		return "No review comments found.\n", nil
	}
	return strings.Join(sections, "\n---\n\n"), nil
}

// headSHA resolves the workspace HEAD commit, best effort.
func (s *Service) headSHA(root string) string {
	if s.git == nil {
		return ""
	}
	sha, err := s.git.HeadSHA(root)
	if err != nil {
		s.logger.Debug("no git HEAD available for workspace", "root", root, "error", err)
		return ""
	}
	return sha
}

// recordRun stores the completed run in history. Failures are logged,
// never surfaced: history is bookkeeping, not part of the export.
func (s *Service) recordRun(ctx context.Context, result *Result) {
	if s.repo == nil {
		return
	}

	run := &Run{
		Label:      utils.GenerateRunLabel(),
		Format:     string(result.Format),
		OutputPath: result.OutputPath,
		Rows:       result.Rows,
		Groups:     result.Groups,
		Duration:   result.Duration,
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		s.logger.Warn("failed to record export run", "error", err)
		return
	}

	result.RunID = run.ID
	result.Label = run.Label
}
