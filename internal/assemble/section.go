package assemble

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/wordweave/wordweave/internal/style"
)

// The generated package needs page geometry and an optional page-number
// footer that the writer library does not expose, so the finished zip
// is rewritten with a patched section definition.

const footerRelID = "rIdWwFooter1"

const footerXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:fldChar w:fldCharType="begin"/></w:r><w:r><w:instrText xml:space="preserve"> PAGE </w:instrText></w:r><w:r><w:fldChar w:fldCharType="end"/></w:r></w:p></w:ftr>`

var (
	sectPrRe     = regexp.MustCompile(`(?s)<w:sectPr[ >].*?</w:sectPr>|<w:sectPr/>`)
	pPrDefaultRe = regexp.MustCompile(`<w:pPrDefault\s*/>|(?s)<w:pPrDefault>.*?</w:pPrDefault>`)
)

// pageDimensions returns width and height in twips for a paper size,
// portrait orientation.
func pageDimensions(size string) (w, h int) {
	switch strings.ToLower(size) {
	case "letter":
		return 12240, 15840
	case "legal":
		return 12240, 20160
	default: // a4
		return 11906, 16838
	}
}

func cmToTwips(cm float64) int {
	return int(cm*566.93 + 0.5)
}

// patchPackage rewrites the zip produced by the writer: section
// properties in document.xml, default paragraph spacing in styles.xml,
// and the footer part plus its wiring when page numbers are on.
func patchPackage(src []byte, sheet *style.Sheet) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("reopen generated package: %w", err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		switch f.Name {
		case "word/document.xml":
			data = patchDocument(data, sheet)
		case "word/styles.xml":
			data = patchStyles(data, sheet)
		case "word/_rels/document.xml.rels":
			data = patchRels(data, sheet)
		case "[Content_Types].xml":
			data = patchContentTypes(data, sheet)
		}

		w, err := zw.Create(f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}

	if sheet.PageNumbers {
		w, err := zw.Create("word/footer1.xml")
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(footerXML)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize package: %w", err)
	}
	return out.Bytes(), nil
}

// sectPrXML builds the full section properties element for the sheet.
func sectPrXML(sheet *style.Sheet) string {
	w, h := pageDimensions(sheet.Page.Size)
	orient := ""
	if strings.EqualFold(sheet.Page.Orientation, "landscape") {
		w, h = h, w
		orient = ` w:orient="landscape"`
	}

	var sb strings.Builder
	sb.WriteString("<w:sectPr>")
	if sheet.PageNumbers {
		fmt.Fprintf(&sb, `<w:footerReference w:type="default" r:id=%q/>`, footerRelID)
	}
	fmt.Fprintf(&sb, `<w:pgSz w:w="%d" w:h="%d"%s/>`, w, h, orient)
	fmt.Fprintf(&sb,
		`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>`,
		cmToTwips(sheet.Page.MarginTopCm),
		cmToTwips(sheet.Page.MarginRightCm),
		cmToTwips(sheet.Page.MarginBottomCm),
		cmToTwips(sheet.Page.MarginLeftCm))
	sb.WriteString(`<w:cols w:space="425"/><w:docGrid w:type="lines" w:linePitch="312"/>`)
	sb.WriteString("</w:sectPr>")
	return sb.String()
}

func patchDocument(data []byte, sheet *style.Sheet) []byte {
	sect := []byte(sectPrXML(sheet))
	if sectPrRe.Match(data) {
		return sectPrRe.ReplaceAll(data, sect)
	}
	end := []byte("</w:body>")
	if i := bytes.LastIndex(data, end); i >= 0 {
		var buf bytes.Buffer
		buf.Write(data[:i])
		buf.Write(sect)
		buf.Write(data[i:])
		return buf.Bytes()
	}
	return data
}

// patchStyles injects the body line spacing into the document defaults.
// Values of 20pt and above are an exact line height, below that a
// multiple of single spacing.
func patchStyles(data []byte, sheet *style.Sheet) []byte {
	ls := sheet.Body.Paragraph.LineSpacing
	if ls <= 0 {
		return data
	}

	var spacing string
	if ls >= 20 {
		spacing = fmt.Sprintf(`<w:spacing w:line="%d" w:lineRule="exact"/>`, int(ls*20))
	} else {
		spacing = fmt.Sprintf(`<w:spacing w:line="%d" w:lineRule="auto"/>`, int(ls*240))
	}
	replacement := "<w:pPrDefault><w:pPr>" + spacing + "</w:pPr></w:pPrDefault>"

	if pPrDefaultRe.Match(data) {
		return pPrDefaultRe.ReplaceAll(data, []byte(replacement))
	}
	marker := []byte("</w:rPrDefault>")
	if i := bytes.Index(data, marker); i >= 0 {
		at := i + len(marker)
		var buf bytes.Buffer
		buf.Write(data[:at])
		buf.WriteString(replacement)
		buf.Write(data[at:])
		return buf.Bytes()
	}
	return data
}

func patchRels(data []byte, sheet *style.Sheet) []byte {
	if !sheet.PageNumbers {
		return data
	}
	rel := fmt.Sprintf(
		`<Relationship Id=%q Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>`,
		footerRelID)
	end := []byte("</Relationships>")
	if i := bytes.LastIndex(data, end); i >= 0 {
		var buf bytes.Buffer
		buf.Write(data[:i])
		buf.WriteString(rel)
		buf.Write(data[i:])
		return buf.Bytes()
	}
	return data
}

func patchContentTypes(data []byte, sheet *style.Sheet) []byte {
	if !sheet.PageNumbers {
		return data
	}
	override := `<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`
	end := []byte("</Types>")
	if i := bytes.LastIndex(data, end); i >= 0 {
		var buf bytes.Buffer
		buf.Write(data[:i])
		buf.WriteString(override)
		buf.Write(data[i:])
		return buf.Bytes()
	}
	return data
}
