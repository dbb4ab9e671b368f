package main

// Render a sample analysis to HTML and PDF for eyeballing the export layout:
//   go run ./cmd/renderdemo -out ./out

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"assigncheck-backend/internal/exports"
)

const sampleMarkdown = `# Assignment Analysis

## AI Solvability

Score: 2. The prompt asks for a generic five-paragraph essay that a language model can produce directly.

## Personal Context

Score: 1. Nothing in the task references the student's own experience or local environment.

## Overall Risk

**High**

## Improvements

1. Require an interview with a named local source.
2. Ask for an annotated draft history.
3. Add a short in-class defense of the submission.
`

func main() {
	outDir := flag.String("out", "./out", "output directory for rendered files")
	marker := flag.String("marker", "renderdemo", "provenance marker embedded in the PDF")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fail("create output dir: %v", err)
	}

	html, err := exports.NewHTMLRenderer().Render(sampleMarkdown)
	if err != nil {
		fail("render html: %v", err)
	}
	htmlPath := filepath.Join(*outDir, "sample_analysis.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		fail("write html: %v", err)
	}

	pdfBytes, err := exports.RenderPDF(sampleMarkdown, *marker)
	if err != nil {
		fail("render pdf: %v", err)
	}
	pdfPath := filepath.Join(*outDir, "sample_analysis.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		fail("write pdf: %v", err)
	}

	fmt.Printf("OK: wrote %s and %s\n", htmlPath, pdfPath)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
