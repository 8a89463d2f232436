package assemble

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/wordweave/wordweave/internal/block"
	"github.com/wordweave/wordweave/internal/chart"
	"github.com/wordweave/wordweave/internal/style"
)

func testSheet(t *testing.T) *style.Sheet {
	t.Helper()
	c, err := style.LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	s, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return s
}

// documentText parses generated bytes back and returns all paragraph
// text joined by newlines.
func documentText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}
	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestBuild_BasicDocument(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindHeading, Level: 1, Runs: []block.Run{{Text: "Annual Report"}}},
		{Kind: block.KindParagraph, Runs: []block.Run{
			{Text: "Growth was "},
			{Text: "strong", Bold: true},
			{Text: " this year."},
		}},
		{Kind: block.KindTable, Header: []string{"Region", "Revenue"},
			Rows: [][]string{{"North", "1200"}, {"South", "900"}}},
	}

	a := New(testSheet(t))
	data, err := a.Build(blocks, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty artifact")
	}

	text := documentText(t, data)
	if !strings.Contains(text, "Annual Report") {
		t.Error("heading text missing from document")
	}
	if !strings.Contains(text, "strong") {
		t.Error("paragraph run missing from document")
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var tables int
	for _, item := range doc.Document.Body.Items {
		if _, ok := item.(*docx.Table); ok {
			tables++
		}
	}
	if tables != 1 {
		t.Errorf("expected 1 table, got %d", tables)
	}
}

func TestBuild_TaskListGlyphs(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindUnorderedList, Level: 1, Children: []block.Block{
			{Kind: block.KindTaskItem, Level: 1, Checked: true, Runs: []block.Run{{Text: "done"}}},
			{Kind: block.KindTaskItem, Level: 1, Runs: []block.Run{{Text: "pending"}}},
			{Kind: block.KindListItem, Level: 1, Runs: []block.Run{{Text: "plain"}}},
		}},
	}

	a := New(testSheet(t))
	data, err := a.Build(blocks, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	text := documentText(t, data)
	if !strings.Contains(text, "☑ done") {
		t.Error("checked glyph missing")
	}
	if !strings.Contains(text, "☐ pending") {
		t.Error("unchecked glyph missing")
	}
	if !strings.Contains(text, "• plain") {
		t.Error("bullet missing")
	}
}

func TestBuild_OrderedListNumbering(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindOrderedList, Level: 1, Children: []block.Block{
			{Kind: block.KindListItem, Level: 1, Runs: []block.Run{{Text: "first"}}},
			{Kind: block.KindListItem, Level: 1, Runs: []block.Run{{Text: "second"}}},
		}},
	}

	a := New(testSheet(t))
	data, err := a.Build(blocks, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	text := documentText(t, data)
	if !strings.Contains(text, "1. first") || !strings.Contains(text, "2. second") {
		t.Errorf("ordered markers missing, got %q", text)
	}
}

func TestBuild_CodeBlockVerbatim(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindCodeBlock, Language: "go",
			Literal: "func main() {\n\tprintln(\"hi\")\n}\n"},
	}

	a := New(testSheet(t))
	data, err := a.Build(blocks, nil, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	text := documentText(t, data)
	if !strings.Contains(text, "println") {
		t.Error("code content missing")
	}
	if !strings.Contains(text, "\t") {
		t.Error("leading tab not preserved")
	}
}

func TestBuild_ChartSplicedAtAnchor(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindHeading, Level: 1, Runs: []block.Run{{Text: "Report"}}},
		{Kind: block.KindParagraph, Runs: []block.Run{{Text: "Body."}}},
	}
	sheet := testSheet(t)
	r := chart.NewRenderer(sheet)
	img, err := r.Render(chart.Spec{
		Type: chart.KindPie,
		Data: []chart.Datum{{Label: "A", Value: 3}, {Label: "B", Value: 7}},
	})
	if err != nil {
		t.Fatalf("render chart: %v", err)
	}

	a := New(sheet)
	data, err := a.Build(blocks, map[int]*chart.Image{0: img}, map[int]int{0: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("artifact is not a zip: %v", err)
	}
	var hasMedia bool
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "word/media/") {
			hasMedia = true
		}
	}
	if !hasMedia {
		t.Error("expected embedded chart image under word/media/")
	}
}

func TestBuild_SkippedChartLeavesDocumentIntact(t *testing.T) {
	blocks := []block.Block{
		{Kind: block.KindParagraph, Runs: []block.Run{{Text: "Body."}}},
	}
	a := New(testSheet(t))
	// Chart 0 was skipped upstream: anchored but no image.
	data, err := a.Build(blocks, map[int]*chart.Image{}, map[int]int{0: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(documentText(t, data), "Body.") {
		t.Error("document body missing")
	}
}
