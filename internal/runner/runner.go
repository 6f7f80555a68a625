// Package runner drives the one-shot batch pipeline: discover PDFs, resolve
// fields for each, write the extraction workbook, and optionally compare
// against an expected-values workbook.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/loanlens/loan-doc-extractor/internal/config"
	"github.com/loanlens/loan-doc-extractor/internal/fields"
	"github.com/loanlens/loan-doc-extractor/internal/pdf"
	"github.com/loanlens/loan-doc-extractor/internal/report"
)

// Extractor is the slice of the PDF service the runner needs.
type Extractor interface {
	FindPDFsInDirectory(directory string) ([]pdf.FileInfo, error)
	ExtractFile(path string) (*pdf.Document, error)
}

// Runner orchestrates one batch extraction run.
type Runner struct {
	cfg       *config.Config
	extractor Extractor
	resolver  *fields.Resolver
	logger    *slog.Logger
}

// New creates a batch runner.
func New(cfg *config.Config, extractor Extractor, registry *fields.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:       cfg,
		extractor: extractor,
		resolver: fields.NewResolver(registry,
			fields.WithMinRatio(cfg.MinRatio),
			fields.WithLogger(logger)),
		logger: logger,
	}
}

// Run processes every PDF under the configured directory. Per-file failures
// are logged and skipped; the run fails only when discovery or workbook
// output fails, or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	files, err := r.extractor.FindPDFsInDirectory(r.cfg.PDFDirectory)
	if err != nil {
		return fmt.Errorf("discover PDFs: %w", err)
	}
	if len(files) == 0 {
		r.logger.Warn("no PDF files found", "dir", r.cfg.PDFDirectory)
	}

	rows := make([]report.Row, 0, len(files))
	failed := 0
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run cancelled: %w", err)
		}

		doc, err := r.extractor.ExtractFile(file.Path)
		if err != nil {
			r.logger.Warn("extraction failed", "file", file.Path, "error", err)
			failed++
			continue
		}

		record := r.resolver.Resolve(fields.Document{Text: doc.Text, KVHints: doc.KVHints})
		rows = append(rows, report.Row{File: doc.Name, Values: record})

		r.logger.Info("extracted",
			"file", doc.Name,
			"pages", doc.Pages,
			"content_type", doc.ContentType,
			"resolved", countResolved(record),
		)
	}

	if err := report.WriteWorkbook(r.cfg.OutputPath, rows); err != nil {
		return err
	}
	r.logger.Info("workbook written",
		"path", r.cfg.OutputPath,
		"rows", len(rows),
		"failed", failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if r.cfg.ExpectedPath != "" {
		if err := r.compare(rows); err != nil {
			return err
		}
	}
	return nil
}

// compare loads the expected workbook, diffs it against the run, and writes
// the three-sheet comparison workbook next to the extraction output.
func (r *Runner) compare(rows []report.Row) error {
	expected, err := report.LoadExpected(r.cfg.ExpectedPath)
	if err != nil {
		return err
	}

	diffs, sum := report.Compare(rows, expected)
	path := comparisonPath(r.cfg.OutputPath)
	if err := report.WriteComparisonWorkbook(path, rows, expected, diffs); err != nil {
		return err
	}

	r.logger.Info("comparison written",
		"path", path,
		"compared", sum.Compared,
		"matches", sum.Matches,
		"mismatches", sum.Mismatches,
	)
	return nil
}

// comparisonPath derives the comparison workbook path from the output path,
// e.g. "out.xlsx" becomes "out_comparison.xlsx".
func comparisonPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(outputPath, ext)
	if ext == "" {
		ext = ".xlsx"
	}
	return base + "_comparison" + ext
}

func countResolved(record fields.Record) int {
	n := 0
	for _, v := range record {
		if v != "" {
			n++
		}
	}
	return n
}
