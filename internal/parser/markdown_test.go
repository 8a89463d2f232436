package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/wordweave/wordweave/internal/block"
)

func TestMarkdown_HeadingsParagraphTable(t *testing.T) {
	input := `# Quarterly Report

Revenue grew in every region.

| Region | Revenue |
| ------ | ------- |
| North  | 1200    |
| South  | 900     |
`
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}

	h := blocks[0]
	if h.Kind != block.KindHeading || h.Level != 1 {
		t.Errorf("expected level-1 heading, got %s level %d", h.Kind, h.Level)
	}
	if got := h.FlatText(); got != "Quarterly Report" {
		t.Errorf("expected heading text %q, got %q", "Quarterly Report", got)
	}

	if blocks[1].Kind != block.KindParagraph {
		t.Errorf("expected paragraph, got %s", blocks[1].Kind)
	}

	tbl := blocks[2]
	if tbl.Kind != block.KindTable {
		t.Fatalf("expected table, got %s", tbl.Kind)
	}
	if len(tbl.Header) != 2 || tbl.Header[0] != "Region" {
		t.Errorf("unexpected header: %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[1][1] != "900" {
		t.Errorf("unexpected rows: %v", tbl.Rows)
	}
}

func TestMarkdown_RaggedTableNormalized(t *testing.T) {
	input := `| A | B | C |
| - | - | - |
| 1 | 2 |
| 1 | 2 | 3 | 4 |
`
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl := blocks[0]
	if tbl.Kind != block.KindTable {
		t.Fatalf("expected table, got %s", tbl.Kind)
	}
	for i, row := range tbl.Rows {
		if len(row) != 3 {
			t.Errorf("row %d: expected 3 cells, got %d (%v)", i, len(row), row)
		}
	}
	if tbl.Rows[0][2] != "" {
		t.Errorf("expected short row padded with empty cell, got %q", tbl.Rows[0][2])
	}
}

func TestMarkdown_InlineFormatting(t *testing.T) {
	p := NewMarkdown()
	blocks, err := p.Parse("Plain **bold** and *italic* plus `code` and [a link](https://example.com).")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runs := blocks[0].Runs

	var sawBold, sawItalic, sawCode, sawLink bool
	for _, r := range runs {
		if r.Bold && r.Text == "bold" {
			sawBold = true
		}
		if r.Italic && r.Text == "italic" {
			sawItalic = true
		}
		if r.Code && r.Text == "code" {
			sawCode = true
		}
		if r.Link == "https://example.com" && r.Text == "a link" {
			sawLink = true
		}
	}
	if !sawBold || !sawItalic || !sawCode || !sawLink {
		t.Errorf("missing formatting: bold=%v italic=%v code=%v link=%v runs=%+v",
			sawBold, sawItalic, sawCode, sawLink, runs)
	}
}

func TestMarkdown_CodeBlockVerbatim(t *testing.T) {
	input := "```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```\n"
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cb := blocks[0]
	if cb.Kind != block.KindCodeBlock {
		t.Fatalf("expected code block, got %s", cb.Kind)
	}
	if cb.Language != "go" {
		t.Errorf("expected language go, got %q", cb.Language)
	}
	if !strings.Contains(cb.Literal, "\tprintln(\"hi\")") {
		t.Errorf("expected verbatim tab-indented body, got %q", cb.Literal)
	}
	// All source lines must survive reassembly, in order.
	want := "func main() {\n\tprintln(\"hi\")\n}\n"
	if cb.Literal != want {
		t.Errorf("expected literal %q, got %q", want, cb.Literal)
	}
}

func TestMarkdown_TaskList(t *testing.T) {
	input := `- [x] ship release
- [ ] write changelog
- plain item
`
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := blocks[0]
	if list.Kind != block.KindUnorderedList {
		t.Fatalf("expected unordered list, got %s", list.Kind)
	}
	if len(list.Children) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Children))
	}
	if list.Children[0].Kind != block.KindTaskItem || !list.Children[0].Checked {
		t.Errorf("expected checked task item, got %+v", list.Children[0])
	}
	if list.Children[1].Kind != block.KindTaskItem || list.Children[1].Checked {
		t.Errorf("expected unchecked task item, got %+v", list.Children[1])
	}
	if list.Children[2].Kind != block.KindListItem {
		t.Errorf("expected plain list item, got %s", list.Children[2].Kind)
	}
}

func TestMarkdown_NestedListDepth(t *testing.T) {
	input := `1. one
   1. two
      1. three
`
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := blocks[0]
	if list.Kind != block.KindOrderedList || list.Level != 1 {
		t.Fatalf("expected ordered list at depth 1, got %s depth %d", list.Kind, list.Level)
	}
	inner := list.Children[0].Children[0]
	if inner.Kind != block.KindOrderedList || inner.Level != 2 {
		t.Errorf("expected nested list at depth 2, got %s depth %d", inner.Kind, inner.Level)
	}
}

func TestMarkdown_BlockquoteFlattened(t *testing.T) {
	input := `> outer line
>
> > inner line
`
	p := NewMarkdown()
	blocks, err := p.Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := blocks[0]
	if q.Kind != block.KindBlockquote {
		t.Fatalf("expected blockquote, got %s", q.Kind)
	}
	if len(q.Children) != 2 {
		t.Fatalf("expected 2 quoted paragraphs, got %d", len(q.Children))
	}
	if q.Children[0].Level != 1 || q.Children[1].Level != 2 {
		t.Errorf("expected depths 1 and 2, got %d and %d",
			q.Children[0].Level, q.Children[1].Level)
	}
}

func TestMarkdown_LoneImageBecomesImageBlock(t *testing.T) {
	p := NewMarkdown()
	blocks, err := p.Parse("![chart of results](results.png)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := blocks[0]
	if img.Kind != block.KindImage {
		t.Fatalf("expected image block, got %s", img.Kind)
	}
	if img.ImageAlt != "chart of results" || img.ImageSrc != "results.png" {
		t.Errorf("unexpected image fields: %+v", img)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	p := NewMarkdown()
	if _, err := p.Parse(""); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if _, err := p.Parse("   \n\n\t\n"); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent for whitespace, got %v", err)
	}
}

func TestMarkdown_ThematicBreak(t *testing.T) {
	p := NewMarkdown()
	blocks, err := p.Parse("above\n\n---\n\nbelow\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 || blocks[1].Kind != block.KindThematicBreak {
		t.Fatalf("expected paragraph, break, paragraph; got %d blocks", len(blocks))
	}
}
