// Package block defines the flat document model produced by the
// Markdown parser and consumed by the anchor resolver and assembler.
package block

import "strings"

// Kind identifies the structural type of a block.
type Kind string

const (
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindTable         Kind = "table"
	KindCodeBlock     Kind = "code_block"
	KindBlockquote    Kind = "blockquote"
	KindUnorderedList Kind = "unordered_list"
	KindOrderedList   Kind = "ordered_list"
	KindListItem      Kind = "list_item"
	KindTaskItem      Kind = "task_list_item"
	KindImage         Kind = "image"
	KindThematicBreak Kind = "thematic_break"
)

// Run is a span of inline text with uniform formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Link   string // destination URL, empty for plain text
}

// Block is one top-level unit of the document. List blocks carry their
// items in Children; table blocks carry Header and Rows; code blocks
// carry Literal and Language.
type Block struct {
	Kind     Kind
	Level    int // heading level 1-6, blockquote depth, list nesting depth
	Runs     []Run
	Children []Block

	Language string // code block info string
	Literal  string // verbatim code block content

	Checked bool // task list item state

	ImageAlt string
	ImageSrc string

	Header []string
	Rows   [][]string
}

// FlatText returns the plain text of the block, including run text,
// code literals, table cells and nested children. Used for anchor
// matching and filename derivation.
func (b *Block) FlatText() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	if b.Literal != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.Literal)
	}
	if b.ImageAlt != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.ImageAlt)
	}
	for _, h := range b.Header {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(h)
	}
	for _, row := range b.Rows {
		for _, cell := range row {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cell)
		}
	}
	for i := range b.Children {
		t := b.Children[i].FlatText()
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	return sb.String()
}
