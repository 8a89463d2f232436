package assemble

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fumiama/go-docx"

	"github.com/wordweave/wordweave/internal/block"
)

// writeCode emits a fenced code block as one paragraph per source line
// with syntax coloring from chroma. Whitespace is preserved verbatim.
func (a *Assembler) writeCode(doc *docx.Docx, b *block.Block) error {
	el := a.sheet.CodeBlock
	bg := hexColor(el.Background)

	lexer := lexers.Get(b.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	palette := styles.Get(a.sheet.CodeStyle)
	if palette == nil {
		palette = styles.Fallback
	}

	code := strings.TrimRight(b.Literal, "\n")
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return a.writeCodePlain(doc, code)
	}

	lines := chroma.SplitTokensIntoLines(it.Tokens())
	for _, line := range lines {
		para := doc.AddParagraph()
		empty := true
		for _, tok := range line {
			text := strings.TrimRight(tok.Value, "\n")
			if text == "" {
				continue
			}
			empty = false
			run := para.AddText(text)
			f := el.Font
			entry := palette.Get(tok.Type)
			if entry.Colour.IsSet() {
				f.Color = fmt.Sprintf("#%02X%02X%02X",
					entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
			}
			if entry.Bold == chroma.Yes {
				f.Bold = true
			}
			if entry.Italic == chroma.Yes {
				f.Italic = true
			}
			applyFont(run, f)
			if bg != "" {
				run.Shade("clear", "auto", bg)
			}
		}
		if empty {
			// Blank lines still need a shaded run to keep the block
			// visually contiguous.
			run := para.AddText(" ")
			applyFont(run, el.Font)
			if bg != "" {
				run.Shade("clear", "auto", bg)
			}
		}
	}
	return nil
}

func (a *Assembler) writeCodePlain(doc *docx.Docx, code string) error {
	el := a.sheet.CodeBlock
	bg := hexColor(el.Background)
	for _, line := range strings.Split(code, "\n") {
		if line == "" {
			line = " "
		}
		para := doc.AddParagraph()
		run := para.AddText(line)
		applyFont(run, el.Font)
		if bg != "" {
			run.Shade("clear", "auto", bg)
		}
	}
	return nil
}
