// Package anchor computes document insertion points for chart images
// from their position directives.
package anchor

import (
	"fmt"
	"strings"

	"github.com/wordweave/wordweave/internal/block"
	"github.com/wordweave/wordweave/internal/chart"
)

// Resolve maps each spec index to an insertion index into blocks.
// Directives are "before:<text>" or "after:<text>"; the target is the
// first block whose flattened text contains <text> as a case-sensitive
// substring. Specs with no matching block are appended at the end of
// the document so a chart is never dropped. Returned warnings flag
// anchors that matched more than one block.
func Resolve(blocks []block.Block, specs []chart.Spec) (map[int]int, []string) {
	idx := make(map[int]int, len(specs))
	var warnings []string

	for i, spec := range specs {
		text, after := parseDirective(spec.Position)
		if text == "" {
			idx[i] = len(blocks)
			continue
		}

		match, dup := findAnchor(blocks, text)
		if match < 0 {
			idx[i] = len(blocks)
			continue
		}
		if dup {
			warnings = append(warnings, fmt.Sprintf(
				"anchor %q matches multiple blocks; chart %d placed at the first", text, i+1))
		}
		if after {
			idx[i] = match + 1
		} else {
			idx[i] = match
		}
	}
	return idx, warnings
}

// parseDirective splits a position directive into anchor text and
// direction. A directive with no recognized prefix is treated as
// "after" the whole text.
func parseDirective(pos string) (text string, after bool) {
	pos = strings.TrimSpace(pos)
	switch {
	case strings.HasPrefix(pos, "after:"):
		return strings.TrimSpace(pos[len("after:"):]), true
	case strings.HasPrefix(pos, "before:"):
		return strings.TrimSpace(pos[len("before:"):]), false
	default:
		return pos, true
	}
}

// findAnchor returns the index of the first block containing text, and
// whether a later block also matched. A paragraph that captions an
// immediately following table promotes the match to the table itself so
// "after" placement lands below the table, not between caption and
// table.
func findAnchor(blocks []block.Block, text string) (int, bool) {
	match := -1
	for i := range blocks {
		if !strings.Contains(blocks[i].FlatText(), text) {
			continue
		}
		// A promoted table is the same logical anchor as its caption.
		if i == match {
			continue
		}
		if match >= 0 {
			return match, true
		}
		match = i
		if blocks[i].Kind == block.KindParagraph &&
			i+1 < len(blocks) && blocks[i+1].Kind == block.KindTable {
			match = i + 1
		}
	}
	return match, false
}
