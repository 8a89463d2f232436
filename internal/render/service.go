// Package render orchestrates one document render: parse, resolve
// styles, render and anchor charts, assemble the DOCX artifact.
package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wordweave/wordweave/internal/anchor"
	"github.com/wordweave/wordweave/internal/assemble"
	"github.com/wordweave/wordweave/internal/chart"
	"github.com/wordweave/wordweave/internal/parser"
	"github.com/wordweave/wordweave/internal/recognize"
	"github.com/wordweave/wordweave/internal/style"
)

// Recognizer proposes chart specs for a document when the caller
// enabled charts without supplying any data.
type Recognizer interface {
	Recognize(ctx context.Context, markdown string) ([]chart.Spec, []string, error)
}

// Settings are the boundary-level typography knobs. They apply on top
// of the resolved sheet, after theme and override merging.
type Settings struct {
	FontFamily   string
	FontSize     float64
	LineSpacing  float64
	PageMarginCm float64
	PaperSize    string
	PageNumbers  *bool
}

// Request is one render request.
type Request struct {
	Markdown     string
	Theme        string
	Overrides    *style.Overrides
	Settings     Settings
	EnableCharts bool
	ChartPayload []byte
	OutputFile   string
}

// ResolvedSettings echoes the effective values back to the caller.
type ResolvedSettings struct {
	Theme       string  `json:"theme"`
	Template    string  `json:"template"`
	FontFamily  string  `json:"font_family"`
	FontSize    float64 `json:"font_size"`
	LineSpacing float64 `json:"line_spacing"`
	PaperSize   string  `json:"paper_size"`
	PageNumbers bool    `json:"page_numbers"`
}

// Result is the metadata record for a completed render.
type Result struct {
	RenderID       string           `json:"render_id"`
	OutputFile     string           `json:"output_file"`
	ByteSize       int              `json:"byte_size"`
	BlocksRendered int              `json:"blocks_rendered"`
	ChartsEnabled  bool             `json:"charts_enabled"`
	ChartsRendered int              `json:"charts_rendered"`
	SkippedCharts  int              `json:"skipped_charts"`
	Warnings       []string         `json:"warnings,omitempty"`
	Settings       ResolvedSettings `json:"settings"`
}

// Artifact is the binary document plus its metadata.
type Artifact struct {
	Data   []byte
	Result Result
}

// Service performs renders. Safe for concurrent use; all per-render
// state lives on the stack of Render.
type Service struct {
	catalog      *style.Catalog
	parser       *parser.Markdown
	recognizer   Recognizer
	log          *slog.Logger
	chartWorkers int
}

func NewService(catalog *style.Catalog, recognizer Recognizer, log *slog.Logger, chartWorkers int) *Service {
	if chartWorkers < 1 {
		chartWorkers = 1
	}
	return &Service{
		catalog:      catalog,
		parser:       parser.NewMarkdown(),
		recognizer:   recognizer,
		log:          log,
		chartWorkers: chartWorkers,
	}
}

// Render runs the full pipeline for one request.
func (s *Service) Render(ctx context.Context, req Request) (*Artifact, error) {
	renderID := uuid.NewString()
	log := s.log.With("render_id", renderID)

	md := normalizeMarkdown(req.Markdown)
	if md == "" {
		return nil, ErrEmptyMarkdown
	}

	blocks, err := s.parser.Parse(md)
	if err != nil {
		return nil, err
	}

	sheet, err := s.catalog.Resolve(req.Theme, req.Overrides)
	if err != nil {
		return nil, err
	}
	applySettings(sheet, req.Settings)

	var warnings []string
	var specs []chart.Spec
	skipped := 0
	if req.EnableCharts {
		specs, warnings, skipped, err = s.chartSpecs(ctx, md, req.ChartPayload, log)
		if err != nil {
			return nil, err
		}
	}

	images, chartErrs := s.renderCharts(ctx, specs, sheet, log)
	rendered := 0
	for i := range specs {
		if err := chartErrs[i]; err != nil {
			skipped++
			warnings = append(warnings, fmt.Sprintf("chart %d skipped: %v", i+1, err))
			continue
		}
		rendered++
	}

	anchors, anchorWarnings := anchor.Resolve(blocks, specs)
	warnings = append(warnings, anchorWarnings...)

	data, err := assemble.New(sheet).Build(blocks, images, anchors)
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}

	result := Result{
		RenderID:       renderID,
		OutputFile:     DeriveFilename(md, req.OutputFile),
		ByteSize:       len(data),
		BlocksRendered: len(blocks),
		ChartsEnabled:  req.EnableCharts,
		ChartsRendered: rendered,
		SkippedCharts:  skipped,
		Warnings:       warnings,
		Settings: ResolvedSettings{
			Theme:       sheet.Theme,
			Template:    sheet.Template,
			FontFamily:  sheet.Body.Font.Family,
			FontSize:    sheet.Body.Font.Size,
			LineSpacing: sheet.Body.Paragraph.LineSpacing,
			PaperSize:   sheet.Page.Size,
			PageNumbers: sheet.PageNumbers,
		},
	}

	log.Info("render complete",
		"output_file", result.OutputFile,
		"bytes", result.ByteSize,
		"blocks", result.BlocksRendered,
		"charts", result.ChartsRendered,
		"skipped_charts", result.SkippedCharts)

	return &Artifact{Data: data, Result: result}, nil
}

// chartSpecs decodes the caller's payload, or asks the recognizer when
// charts are enabled with no data. Recognizer failure degrades to a
// chartless document with a warning; it never fails the render. The
// skipped count covers per-chart skips only, never a failed recognition
// pass, since no chart existed to skip.
func (s *Service) chartSpecs(ctx context.Context, md string, payload []byte, log *slog.Logger) ([]chart.Spec, []string, int, error) {
	if len(payload) > 0 {
		specs, warnings, err := chart.ParsePayload(payload)
		return specs, warnings, len(warnings), err
	}
	if s.recognizer == nil {
		return nil, nil, 0, nil
	}

	var specs []chart.Spec
	var warnings []string
	var lastErr error
	for attempt := 0; attempt < recognize.MaxRetries; attempt++ {
		specs, warnings, lastErr = s.recognizer.Recognize(ctx, md)
		if lastErr == nil || !recognize.IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable recognition error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(recognize.Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Warn("chart recognition failed", "error", lastErr)
		return nil, []string{fmt.Sprintf("chart recognition failed: %v", lastErr)}, 0, nil
	}
	return specs, warnings, len(warnings), nil
}

// renderCharts rasterizes specs with bounded concurrency. The returned
// maps are indexed by spec position; a spec appears in exactly one.
func (s *Service) renderCharts(ctx context.Context, specs []chart.Spec, sheet *style.Sheet, log *slog.Logger) (map[int]*chart.Image, map[int]error) {
	images := make(map[int]*chart.Image, len(specs))
	errs := make(map[int]error)
	if len(specs) == 0 {
		return images, errs
	}

	renderer := chart.NewRenderer(sheet)
	type chartResult struct {
		idx int
		img *chart.Image
		err error
	}
	results := make(chan chartResult, len(specs))
	sem := make(chan struct{}, s.chartWorkers)

	for i, spec := range specs {
		sem <- struct{}{}
		go func(i int, spec chart.Spec) {
			defer func() { <-sem }()
			if ctx.Err() != nil {
				results <- chartResult{idx: i, err: ctx.Err()}
				return
			}
			img, err := renderer.Render(spec)
			results <- chartResult{idx: i, img: img, err: err}
		}(i, spec)
	}

	for range specs {
		r := <-results
		if r.err != nil {
			log.Warn("chart skipped", "chart", r.idx, "error", r.err)
			errs[r.idx] = r.err
			continue
		}
		images[r.idx] = r.img
	}
	return images, errs
}

// applySettings layers the boundary knobs onto the resolved sheet.
func applySettings(sheet *style.Sheet, set Settings) {
	if set.FontFamily != "" {
		sheet.Body.Font.Family = set.FontFamily
	}
	if set.FontSize > 0 {
		sheet.Body.Font.Size = set.FontSize
	}
	if set.LineSpacing > 0 {
		sheet.Body.Paragraph.LineSpacing = set.LineSpacing
	}
	if set.PageMarginCm > 0 {
		sheet.Page.MarginTopCm = set.PageMarginCm
		sheet.Page.MarginBottomCm = set.PageMarginCm
		sheet.Page.MarginLeftCm = set.PageMarginCm
		sheet.Page.MarginRightCm = set.PageMarginCm
	}
	if set.PaperSize != "" {
		sheet.Page.Size = strings.ToLower(set.PaperSize)
	}
	if set.PageNumbers != nil {
		sheet.PageNumbers = *set.PageNumbers
	}
}

// normalizeMarkdown fixes line endings and unescapes literal "\n"
// sequences for callers whose transport flattened real newlines.
func normalizeMarkdown(md string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	if !strings.Contains(md, "\n") && strings.Contains(md, `\n`) {
		md = strings.ReplaceAll(md, `\n`, "\n")
	}
	return strings.TrimSpace(md)
}
