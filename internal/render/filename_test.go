package render

import (
	"strings"
	"testing"
)

func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		requested string
		want      string
	}{
		{"from heading", "# Annual Report\n\nBody.", "", "Annual Report.docx"},
		{"requested wins", "# Annual Report", "custom", "custom.docx"},
		{"requested with extension", "# X", "report.docx", "report.docx"},
		{"no heading", "Just text.", "", "output.docx"},
		{"heading too far down", strings.Repeat("line\n", 11) + "# Late Title", "", "output.docx"},
		{"unsafe characters", `# Q1/Q2: "Results"?`, "", "Q1_Q2_ _Results_.docx"},
		{"empty everything", "", "", "output.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveFilename(tt.markdown, tt.requested)
			if got != tt.want {
				t.Errorf("DeriveFilename(%q, %q) = %q, want %q",
					tt.markdown, tt.requested, got, tt.want)
			}
		})
	}
}

func TestDeriveFilename_LongNameCapped(t *testing.T) {
	got := DeriveFilename("# "+strings.Repeat("a", 400), "")
	if len(got) > maxFilenameLen+len(".docx") {
		t.Errorf("filename not capped, length %d", len(got))
	}
	if !strings.HasSuffix(got, ".docx") {
		t.Errorf("missing extension: %q", got)
	}
}
