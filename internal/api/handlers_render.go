package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/wordweave/wordweave/internal/render"
	"github.com/wordweave/wordweave/internal/style"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type renderRequest struct {
	MarkdownText string          `json:"markdown_text"`
	Template     string          `json:"template"`
	StyleConfig  json.RawMessage `json:"style_config"`
	FontFamily   string          `json:"font_family"`
	FontSize     float64         `json:"font_size"`
	LineSpacing  float64         `json:"line_spacing"`
	PageMargin   float64         `json:"page_margin"`
	PaperSize    string          `json:"paper_size"`
	PageNumbers  *bool           `json:"page_numbers"`
	EnableCharts bool            `json:"enable_charts"`
	ChartData    json.RawMessage `json:"chart_data"`
	OutputFile   string          `json:"output_file"`
}

// handleRender runs one render. The response body is the DOCX artifact
// with metadata in the X-Render-Result header, or the metadata alone
// when ?metadata=only is given.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxMarkdownBytes)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	overrides, err := style.DecodeOverrides(req.StyleConfig)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	theme := req.Template
	if theme == "" {
		theme = s.cfg.DefaultTheme
	}

	artifact, err := s.service.Render(r.Context(), render.Request{
		Markdown:  req.MarkdownText,
		Theme:     theme,
		Overrides: overrides,
		Settings: render.Settings{
			FontFamily:   req.FontFamily,
			FontSize:     req.FontSize,
			LineSpacing:  req.LineSpacing,
			PageMarginCm: req.PageMargin,
			PaperSize:    req.PaperSize,
			PageNumbers:  req.PageNumbers,
		},
		EnableCharts: req.EnableCharts,
		ChartPayload: req.ChartData,
		OutputFile:   req.OutputFile,
	})
	if err != nil {
		switch {
		case render.IsInputError(err), render.IsConfigError(err):
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			s.log.Error("render failed", "error", err)
			jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if r.URL.Query().Get("metadata") == "only" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(artifact.Result)
		return
	}

	meta, err := json.Marshal(artifact.Result)
	if err == nil {
		w.Header().Set("X-Render-Result", string(meta))
	}
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": artifact.Result.OutputFile}))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.Write(artifact.Data)
}

// handleThemes lists the available themes and templates.
func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"themes":    s.catalog.Themes(),
		"templates": s.catalog.Templates(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
