// Package assemble walks the block sequence and produces the final
// DOCX artifact under a resolved style sheet, splicing chart images in
// at their anchor indices.
package assemble

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/wordweave/wordweave/internal/block"
	"github.com/wordweave/wordweave/internal/chart"
	"github.com/wordweave/wordweave/internal/style"
)

// Assembler builds one document per call. It holds only the immutable
// style sheet, so a single value is safe to reuse across renders.
type Assembler struct {
	sheet *style.Sheet
}

func New(sheet *style.Sheet) *Assembler {
	return &Assembler{sheet: sheet}
}

// Build renders blocks and chart images into DOCX bytes. images maps a
// chart spec index to its rendered image; anchors maps the same index
// to the block position it precedes. Charts sharing an anchor keep
// spec order. Serialization failure is the only error path.
func (a *Assembler) Build(blocks []block.Block, images map[int]*chart.Image, anchors map[int]int) ([]byte, error) {
	doc := docx.New().WithDefaultTheme().WithA4Page()

	specOrder := make([]int, 0, len(anchors))
	for i := range anchors {
		specOrder = append(specOrder, i)
	}
	sort.Ints(specOrder)

	splice := func(at int) error {
		for _, si := range specOrder {
			if anchors[si] != at {
				continue
			}
			img := images[si]
			if img == nil {
				continue
			}
			if err := a.writeChart(doc, img); err != nil {
				return err
			}
		}
		return nil
	}

	for i := range blocks {
		if err := splice(i); err != nil {
			return nil, err
		}
		if err := a.writeBlock(doc, &blocks[i]); err != nil {
			return nil, err
		}
	}
	if err := splice(len(blocks)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return patchPackage(buf.Bytes(), a.sheet)
}

func (a *Assembler) writeBlock(doc *docx.Docx, b *block.Block) error {
	switch b.Kind {
	case block.KindHeading:
		el := a.sheet.HeadingFor(b.Level)
		para := doc.AddParagraph()
		alignParagraph(para, el.Paragraph.Alignment)
		a.writeRuns(para, b.Runs, el)

	case block.KindParagraph:
		para := doc.AddParagraph()
		alignParagraph(para, a.sheet.Body.Paragraph.Alignment)
		a.writeRuns(para, b.Runs, a.sheet.Body)

	case block.KindTable:
		return a.writeTable(doc, b)

	case block.KindCodeBlock:
		return a.writeCode(doc, b)

	case block.KindBlockquote:
		a.writeQuote(doc, b)

	case block.KindUnorderedList, block.KindOrderedList:
		a.writeList(doc, b)

	case block.KindImage:
		// The core never touches the filesystem, so a standalone image
		// renders as its caption.
		para := doc.AddParagraph()
		alignParagraph(para, a.sheet.Caption.Paragraph.Alignment)
		label := b.ImageAlt
		if label == "" {
			label = b.ImageSrc
		}
		run := para.AddText("[image: " + label + "]")
		applyFont(run, a.sheet.Caption.Font)

	case block.KindThematicBreak:
		para := doc.AddParagraph()
		para.Justification("center")
		run := para.AddText(strings.Repeat("─", 24))
		f := a.sheet.Body.Font
		f.Bold = false
		applyFont(run, f)
	}
	return nil
}

// writeRuns emits inline runs, layering per-run flags over the element
// font. Inline code switches to the code-inline element instead.
func (a *Assembler) writeRuns(para *docx.Paragraph, runs []block.Run, el style.Element) {
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		run := para.AddText(r.Text)
		f := el.Font
		if r.Code {
			f = a.sheet.CodeInline.Font
			if bg := hexColor(a.sheet.CodeInline.Background); bg != "" {
				run.Shade("clear", "auto", bg)
			}
		}
		if r.Bold {
			f.Bold = true
		}
		if r.Italic {
			f.Italic = true
		}
		if r.Link != "" {
			f.Underline = true
		}
		applyFont(run, f)
	}
}

func (a *Assembler) writeTable(doc *docx.Docx, b *block.Block) error {
	cols := len(b.Header)
	if cols == 0 {
		return nil
	}
	tbl := doc.AddTable(len(b.Rows)+1, cols, 0, nil)
	ts := a.sheet.Table

	headerFont := style.Font{
		Family: ts.CellFamily,
		Size:   ts.CellSize,
		Color:  ts.HeaderColor,
		Bold:   ts.HeaderBold,
	}
	for c, text := range b.Header {
		cell := tbl.TableRows[0].TableCells[c]
		para := cell.AddParagraph()
		alignParagraph(para, ts.Alignment)
		run := para.AddText(text)
		applyFont(run, headerFont)
		if bg := hexColor(ts.HeaderBackground); bg != "" {
			run.Shade("clear", "auto", bg)
		}
	}

	cellFont := style.Font{Family: ts.CellFamily, Size: ts.CellSize, Color: a.sheet.Body.Font.Color}
	for r, row := range b.Rows {
		banded := r%2 == 1 && ts.AlternateRowColor != ""
		for c, text := range row {
			cell := tbl.TableRows[r+1].TableCells[c]
			para := cell.AddParagraph()
			alignParagraph(para, ts.Alignment)
			run := para.AddText(text)
			applyFont(run, cellFont)
			if banded {
				run.Shade("clear", "auto", hexColor(ts.AlternateRowColor))
			}
		}
	}
	return nil
}

func (a *Assembler) writeQuote(doc *docx.Docx, b *block.Block) {
	for i := range b.Children {
		child := &b.Children[i]
		para := doc.AddParagraph()
		alignParagraph(para, a.sheet.Quote.Paragraph.Alignment)

		depth := child.Level
		if depth < 1 {
			depth = 1
		}
		marker := para.AddText(strings.Repeat("▎ ", depth))
		applyFont(marker, a.sheet.Quote.Font)
		a.writeRuns(para, child.Runs, a.sheet.Quote)
	}
}

// writeList flattens a list into one paragraph per item. Ordered lists
// number their own items, so numbering restarts per list block.
func (a *Assembler) writeList(doc *docx.Docx, list *block.Block) {
	ordered := list.Kind == block.KindOrderedList
	n := 0
	for i := range list.Children {
		item := &list.Children[i]
		para := doc.AddParagraph()

		indent := strings.Repeat("    ", list.Level-1)
		var marker string
		switch {
		case item.Kind == block.KindTaskItem && item.Checked:
			marker = "☑ "
		case item.Kind == block.KindTaskItem:
			marker = "☐ "
		case ordered:
			n++
			marker = strconv.Itoa(n) + ". "
		default:
			marker = bulletFor(list.Level) + " "
		}

		run := para.AddText(indent + marker)
		applyFont(run, a.sheet.Body.Font)
		a.writeRuns(para, item.Runs, a.sheet.Body)

		for j := range item.Children {
			nested := &item.Children[j]
			if nested.Kind == block.KindUnorderedList || nested.Kind == block.KindOrderedList {
				a.writeList(doc, nested)
			}
		}
	}
}

func bulletFor(depth int) string {
	switch depth {
	case 1:
		return "•"
	case 2:
		return "◦"
	default:
		return "▪"
	}
}

func (a *Assembler) writeChart(doc *docx.Docx, img *chart.Image) error {
	para := doc.AddParagraph()
	para.Justification("center")
	if _, err := para.AddInlineDrawing(img.PNG); err != nil {
		return fmt.Errorf("embed chart image: %w", err)
	}
	return nil
}

// applyFont sets run-level formatting from a resolved font.
func applyFont(run *docx.Run, f style.Font) {
	if f.Family != "" {
		run.Font(f.Family, f.Family, f.Family, "")
	}
	if f.Size > 0 {
		// Size is in half-points on the wire.
		run.Size(strconv.Itoa(int(f.Size * 2)))
	}
	if c := hexColor(f.Color); c != "" {
		run.Color(c)
	}
	if f.Bold {
		run.Bold()
	}
	if f.Italic {
		run.Italic()
	}
	if f.Underline {
		run.Underline("single")
	}
}

func alignParagraph(para *docx.Paragraph, alignment string) {
	switch alignment {
	case "center":
		para.Justification("center")
	case "right":
		para.Justification("end")
	case "justify":
		para.Justification("both")
	case "left":
		para.Justification("start")
	}
}

// hexColor strips the leading # from a resolved color value. Empty in,
// empty out.
func hexColor(c string) string {
	return strings.TrimPrefix(c, "#")
}
