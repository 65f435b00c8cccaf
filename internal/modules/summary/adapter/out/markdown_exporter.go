package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"kitchen/internal/modules/summary/domain"
	summaryout "kitchen/internal/modules/summary/port/out"
	apperrors "kitchen/internal/platform/errors"
	"kitchen/internal/platform/markdown"
	"kitchen/internal/platform/slug"
)

const (
	ProgressStart = "<!-- kitchen:summary:start -->"
	ProgressEnd   = "<!-- kitchen:summary:end -->"
)

// MarkdownExporter writes each summary as its own note and mirrors the
// latest one into a managed block of the progress file.
type MarkdownExporter struct {
	summaryDir   string
	progressPath string
}

func NewMarkdownExporter(summaryDir, progressPath string) summaryout.Exporter {
	return &MarkdownExporter{summaryDir: summaryDir, progressPath: progressPath}
}

func (e *MarkdownExporter) Export(_ context.Context, report domain.Report, body string) (summaryout.ExportResult, error) {
	if err := os.MkdirAll(e.summaryDir, 0o755); err != nil {
		return summaryout.ExportResult{}, fmt.Errorf("%w: create summary dir: %v", apperrors.ErrPersistence, err)
	}
	at := report.GeneratedAt.UTC()
	name := fmt.Sprintf("%s-%s-summary.md", at.Format("20060102T150405Z"), slug.Make(report.Audience))
	path := filepath.Join(e.summaryDir, name)

	meta := map[string]any{
		"generated_at": at.Format("2006-01-02T15:04:05Z07:00"),
		"audience":     report.Audience,
		"stages":       report.StageIDs(),
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return summaryout.ExportResult{}, fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return summaryout.ExportResult{}, fmt.Errorf("%w: write summary: %v", apperrors.ErrPersistence, err)
	}

	if e.progressPath == "" {
		return summaryout.ExportResult{Path: path}, nil
	}
	if err := e.updateProgress(body); err != nil {
		return summaryout.ExportResult{}, err
	}
	return summaryout.ExportResult{Path: path, ProgressPath: e.progressPath}, nil
}

func (e *MarkdownExporter) updateProgress(body string) error {
	var (
		meta     = map[string]any{}
		existing string
	)
	content, err := os.ReadFile(e.progressPath)
	switch {
	case err == nil:
		meta, existing, err = markdown.SplitFrontmatter(string(content))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", apperrors.ErrPersistence, e.progressPath, err)
		}
	case os.IsNotExist(err):
		existing = "# Progress\n"
	default:
		return fmt.Errorf("%w: read progress file: %v", apperrors.ErrPersistence, err)
	}

	updated := markdown.ReplaceManagedBlock(existing, ProgressStart, ProgressEnd, body)
	out := updated
	if len(meta) > 0 {
		out, err = markdown.RenderFrontmatter(meta, updated)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(e.progressPath), 0o755); err != nil {
		return fmt.Errorf("%w: create progress dir: %v", apperrors.ErrPersistence, err)
	}
	if err := os.WriteFile(e.progressPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("%w: write progress file: %v", apperrors.ErrPersistence, err)
	}
	return nil
}
