package recognize

import "strings"

const recognitionPrompt = `Analyze the following Markdown document and identify data that would benefit from visualization as a chart. Return a JSON object with this exact shape:

{"charts": [{"type": "...", "title": "...", "position": "...", "data": {...}}]}

Field rules:
- "type": one of "pie", "bar", "line"
- "title": a short descriptive chart title
- "position": where to place the chart, as "after:<anchor text>" or "before:<anchor text>", where the anchor text is copied exactly from a heading or table caption in the document
- "data": an object mapping category or time labels to numeric values, in the order they should appear

Selection rules:
- pie for proportions or shares of a whole (all values must be positive)
- bar for comparisons across categories
- line for trends over time or ordered sequences
- Only propose a chart when the document contains explicit numeric data; never invent numbers
- At most 5 charts per document
- Return {"charts": []} if nothing is worth charting

Respond with ONLY the JSON object, no other text.`

// buildPrompt appends the document to the instruction block.
func buildPrompt(markdown string) string {
	var sb strings.Builder
	sb.WriteString(recognitionPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(markdown)
	return sb.String()
}
