package render

import "strings"

const (
	defaultFilename = "output.docx"
	maxFilenameLen  = 200
)

// DeriveFilename picks the output file name: the caller's choice if
// given, otherwise the first top-level heading near the top of the
// document, otherwise a fixed default. The result always ends in .docx.
func DeriveFilename(markdown, requested string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = firstHeading(markdown)
	}
	name = sanitizeFilename(name)
	if name == "" {
		return defaultFilename
	}
	if !strings.HasSuffix(strings.ToLower(name), ".docx") {
		name += ".docx"
	}
	return name
}

// firstHeading returns the text of the first level-1 heading within the
// first ten non-empty lines.
func firstHeading(markdown string) string {
	seen := 0
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 10 {
			break
		}
		if rest, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// sanitizeFilename replaces characters that are unsafe in file names,
// collapses runs of underscores, and trims trailing dots and spaces.
func sanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`\/:*?"<>|`, r):
			sb.WriteByte('_')
		default:
			sb.WriteRune(r)
		}
	}
	out := sb.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	out = strings.Trim(out, " .")
	if len(out) > maxFilenameLen {
		out = out[:maxFilenameLen]
		out = strings.Trim(out, " .")
	}
	return out
}
