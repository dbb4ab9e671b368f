package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PlaceholderUnsupported is returned verbatim for any extension the adapter
// does not understand. Clients render it as the extracted text.
const PlaceholderUnsupported = "(Unsupported file type)"

// FromBytes produces a best-effort textual representation of an uploaded
// document. The extension comes from the client-supplied filename and is
// matched case-insensitively. Extraction never fails hard: unsupported types
// and decoder errors both degrade to placeholder strings so the request
// handler always has text to return.
func FromBytes(data []byte, fileName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "txt":
		return string(data)
	case "pdf":
		text, err := extractPDF(data)
		if err != nil {
			return failure(err)
		}
		return text
	case "docx":
		text, err := extractDOCX(data)
		if err != nil {
			return failure(err)
		}
		return text
	default:
		return PlaceholderUnsupported
	}
}

func failure(err error) string {
	return "(Error extracting text: " + err.Error() + ")"
}

// extractPDF pulls the text layer page by page, joining pages with a newline.
// Text ordering within a page is decoder-dependent; that is a known
// limitation. The decoder can panic on malformed input, so recover and
// degrade instead.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("pdf decode: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}

	var pages []string
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// extractDOCX reads word/document.xml out of the OOXML container and strips
// markup, keeping paragraph and line breaks.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
