// Package parser converts Markdown source into the flat block model.
// It uses goldmark with the GFM extension so tables, task lists and
// strikethrough parse the way GitHub renders them.
package parser

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/wordweave/wordweave/internal/block"
)

// ErrNoContent is returned when the source contains no renderable blocks.
var ErrNoContent = errors.New("markdown source contains no renderable content")

// maxListDepth caps list nesting. Items deeper than this are flattened
// to the cap so pathological input cannot produce unbounded indentation.
const maxListDepth = 5

// Markdown parses Markdown source into an ordered slice of blocks.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Parse converts src into blocks in document order. Returns ErrNoContent
// when the document has no blocks after parsing.
func (p *Markdown) Parse(src string) ([]block.Block, error) {
	source := []byte(src)
	doc := p.md.Parser().Parse(text.NewReader(source))

	var blocks []block.Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := convertBlock(n, source); ok {
			blocks = append(blocks, b)
		}
	}
	if len(blocks) == 0 {
		return nil, ErrNoContent
	}
	return blocks, nil
}

func convertBlock(n ast.Node, src []byte) (block.Block, bool) {
	switch node := n.(type) {
	case *ast.Heading:
		level := node.Level
		if level > 6 {
			level = 6
		}
		return block.Block{
			Kind:  block.KindHeading,
			Level: level,
			Runs:  inlineRuns(node, src),
		}, true

	case *ast.Paragraph:
		// A paragraph that is nothing but one image becomes an image
		// block so the assembler can caption it on its own line.
		if img, ok := loneImage(node); ok {
			return block.Block{
				Kind:     block.KindImage,
				ImageAlt: string(img.Text(src)),
				ImageSrc: string(img.Destination),
			}, true
		}
		runs := inlineRuns(node, src)
		if len(runs) == 0 {
			return block.Block{}, false
		}
		return block.Block{Kind: block.KindParagraph, Runs: runs}, true

	case *ast.FencedCodeBlock:
		return block.Block{
			Kind:     block.KindCodeBlock,
			Language: string(node.Language(src)),
			Literal:  blockLines(node, src),
		}, true

	case *ast.CodeBlock:
		return block.Block{
			Kind:    block.KindCodeBlock,
			Literal: blockLines(node, src),
		}, true

	case *ast.Blockquote:
		return convertBlockquote(node, src), true

	case *ast.List:
		return convertList(node, src, 1), true

	case *ast.ThematicBreak:
		return block.Block{Kind: block.KindThematicBreak}, true

	case *ast.HTMLBlock:
		// Raw HTML is not interpreted. Keep the text so content is not
		// silently dropped.
		t := strings.TrimSpace(blockLines(node, src))
		if t == "" {
			return block.Block{}, false
		}
		return block.Block{
			Kind: block.KindParagraph,
			Runs: []block.Run{{Text: t}},
		}, true

	case *east.Table:
		return convertTable(node, src), true
	}
	return block.Block{}, false
}

// loneImage reports whether the paragraph consists of a single image.
func loneImage(p *ast.Paragraph) (*ast.Image, bool) {
	child := p.FirstChild()
	if child == nil || child.NextSibling() != nil {
		return nil, false
	}
	img, ok := child.(*ast.Image)
	return img, ok
}

// blockLines reassembles the verbatim source lines of a block node.
func blockLines(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(src))
	}
	return sb.String()
}

func convertBlockquote(q *ast.Blockquote, src []byte) block.Block {
	out := block.Block{Kind: block.KindBlockquote, Level: 1}
	collectQuote(q, src, 1, &out)
	return out
}

// collectQuote flattens a possibly nested blockquote into paragraph
// children, each tagged with its nesting depth.
func collectQuote(n ast.Node, src []byte, depth int, out *block.Block) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch child := c.(type) {
		case *ast.Blockquote:
			collectQuote(child, src, depth+1, out)
		case *ast.Paragraph:
			runs := inlineRuns(child, src)
			if len(runs) == 0 {
				continue
			}
			out.Children = append(out.Children, block.Block{
				Kind:  block.KindParagraph,
				Level: depth,
				Runs:  runs,
			})
		default:
			// Lists or code inside a quote degrade to plain text.
			t := strings.TrimSpace(string(child.Text(src)))
			if t == "" {
				continue
			}
			out.Children = append(out.Children, block.Block{
				Kind:  block.KindParagraph,
				Level: depth,
				Runs:  []block.Run{{Text: t}},
			})
		}
	}
}

func convertList(l *ast.List, src []byte, depth int) block.Block {
	kind := block.KindUnorderedList
	if l.IsOrdered() {
		kind = block.KindOrderedList
	}
	out := block.Block{Kind: kind, Level: depth}

	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		out.Children = append(out.Children, convertListItem(li, src, depth))
	}
	return out
}

func convertListItem(li *ast.ListItem, src []byte, depth int) block.Block {
	item := block.Block{Kind: block.KindListItem, Level: depth}

	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		switch child := c.(type) {
		case *ast.List:
			next := depth + 1
			if next > maxListDepth {
				next = maxListDepth
			}
			item.Children = append(item.Children, convertList(child, src, next))
		default:
			runs := inlineRuns(child, src)
			if checked, isTask := taskState(child); isTask {
				item.Kind = block.KindTaskItem
				item.Checked = checked
			}
			item.Runs = append(item.Runs, runs...)
		}
	}
	return item
}

// taskState inspects the first inline of a list item body for a GFM
// task checkbox.
func taskState(n ast.Node) (checked, isTask bool) {
	first := n.FirstChild()
	if box, ok := first.(*east.TaskCheckBox); ok {
		return box.IsChecked, true
	}
	return false, false
}

func convertTable(t *east.Table, src []byte) block.Block {
	out := block.Block{Kind: block.KindTable}

	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, cellText(cell, src))
		}
		switch row.(type) {
		case *east.TableHeader:
			out.Header = cells
		case *east.TableRow:
			out.Rows = append(out.Rows, cells)
		}
	}

	// Ragged rows are padded or truncated to the header width so the
	// assembler always sees a rectangle.
	width := len(out.Header)
	for i, row := range out.Rows {
		for len(row) < width {
			row = append(row, "")
		}
		if len(row) > width {
			row = row[:width]
		}
		out.Rows[i] = row
	}
	return out
}

func cellText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for _, r := range inlineRuns(n, src) {
		sb.WriteString(r.Text)
	}
	return strings.TrimSpace(sb.String())
}

// inlineRuns walks the inline children of a block node and produces
// formatted runs. Emphasis nesting accumulates, so **bold _italic_**
// yields a run with both flags set.
func inlineRuns(n ast.Node, src []byte) []block.Run {
	var runs []block.Run
	appendInlines(n, src, block.Run{}, &runs)
	return mergeRuns(runs)
}

func appendInlines(n ast.Node, src []byte, state block.Run, runs *[]block.Run) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			r := state
			r.Text = string(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				r.Text += " "
			}
			if r.Text != "" {
				*runs = append(*runs, r)
			}
		case *ast.String:
			r := state
			r.Text = string(node.Value)
			if r.Text != "" {
				*runs = append(*runs, r)
			}
		case *ast.Emphasis:
			next := state
			if node.Level >= 2 {
				next.Bold = true
			} else {
				next.Italic = true
			}
			appendInlines(node, src, next, runs)
		case *ast.CodeSpan:
			r := state
			r.Code = true
			r.Text = string(node.Text(src))
			if r.Text != "" {
				*runs = append(*runs, r)
			}
		case *ast.Link:
			next := state
			next.Link = string(node.Destination)
			appendInlines(node, src, next, runs)
		case *ast.AutoLink:
			r := state
			url := string(node.URL(src))
			r.Text = url
			r.Link = url
			*runs = append(*runs, r)
		case *ast.Image:
			// Inline image amid text degrades to its alt text.
			r := state
			r.Text = string(node.Text(src))
			if r.Text != "" {
				*runs = append(*runs, r)
			}
		case *east.TaskCheckBox:
			// Handled by the list item converter.
		default:
			appendInlines(node, src, state, runs)
		}
	}
}

// mergeRuns joins adjacent runs with identical formatting.
func mergeRuns(runs []block.Run) []block.Run {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if r.Bold == last.Bold && r.Italic == last.Italic &&
			r.Code == last.Code && r.Link == last.Link {
			last.Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}
