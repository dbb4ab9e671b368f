package exports

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"assigncheck-backend/internal/canary"
)

const (
	pageMargin = 40.0
	lineHeight = 20.0
	bodySize   = 13.0
	h1Size     = 18.0
	h2Size     = 15.0
)

var (
	boldSpan   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	orderedNum = regexp.MustCompile(`^(\d+)[.)]\s+(.*)`)
)

// RenderPDF lays out the analysis Markdown as an A4 report. When marker is
// non-empty it is hidden in the document where it survives copy-paste and
// metadata inspection but stays invisible on screen and in print.
func RenderPDF(markdown, marker string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", bodySize)

	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, _ := doc.GetPageSize()
	usableW := pageW - 2*pageMargin

	writeWrapped := func(text string, indent float64) {
		for _, seg := range doc.SplitText(tr(text), usableW-indent) {
			doc.SetX(pageMargin + indent)
			doc.CellFormat(usableW-indent, lineHeight, seg, "", 1, "L", false, 0, "")
		}
	}

	inFence := false
	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		switch {
		case trimmed == "":
			doc.Ln(lineHeight / 2)
		case strings.HasPrefix(trimmed, "# "):
			doc.SetFont("Helvetica", "B", h1Size)
			doc.Ln(6)
			writeWrapped(plainText(strings.TrimPrefix(trimmed, "# ")), 0)
			doc.SetFont("Helvetica", "", bodySize)
		case strings.HasPrefix(trimmed, "## "):
			doc.SetFont("Helvetica", "B", h2Size)
			doc.Ln(2)
			writeWrapped(plainText(strings.TrimPrefix(trimmed, "## ")), 0)
			doc.SetFont("Helvetica", "", bodySize)
		case strings.HasPrefix(trimmed, "### "):
			doc.SetFont("Helvetica", "B", bodySize)
			writeWrapped(plainText(strings.TrimPrefix(trimmed, "### ")), 0)
			doc.SetFont("Helvetica", "", bodySize)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			writeWrapped("• "+plainText(trimmed[2:]), 14)
		case orderedNum.MatchString(trimmed):
			m := orderedNum.FindStringSubmatch(trimmed)
			writeWrapped(m[1]+". "+plainText(m[2]), 14)
		case strings.HasPrefix(trimmed, "> "):
			writeWrapped(plainText(strings.TrimPrefix(trimmed, "> ")), 24)
		default:
			writeWrapped(plainText(trimmed), 0)
		}
	}

	if marker != "" {
		stampCanary(doc, marker)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// plainText collapses inline Markdown emphasis for the PDF layout, which has
// no per-span styling.
func plainText(s string) string {
	s = boldSpan.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "`", "")
	return s
}

// stampCanary hides the marker in the document: once in the keywords field
// and once as 1pt white text near the bottom of the first page, so both
// metadata inspection and copy-paste recover it. The core fonts are cp1252,
// so the zero-width encoding is reserved for text exports.
func stampCanary(doc *fpdf.Fpdf, marker string) {
	doc.SetKeywords(canary.Strip(marker), false)

	page := doc.PageNo()
	doc.SetPage(1)
	doc.SetAutoPageBreak(false, 0)
	_, pageH := doc.GetPageSize()
	doc.SetFont("Helvetica", "", 1)
	doc.SetTextColor(255, 255, 255)
	doc.SetXY(pageMargin, pageH-pageMargin/2)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.CellFormat(0, 1, tr(marker), "", 0, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.SetPage(page)
}
