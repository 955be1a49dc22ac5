package document

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Supported MIME types for CV documents
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// File is an uploaded document with its declared MIME type
type File struct {
	Data     []byte
	MIMEType string
}

// ExtractText converts a PDF or DOCX document into plain text, concatenating
// pages (PDF) or paragraphs (DOCX) in document order. No layout reconstruction
// is attempted; the output is unstructured text for downstream extraction.
func ExtractText(file File) (string, error) {
	switch normalizeMIME(file.MIMEType) {
	case MIMETypePDF:
		return extractPDFText(file.Data)
	case MIMETypeDOCX:
		return extractDOCXText(file.Data)
	default:
		return "", ErrUnsupportedFormat().WithDetail("mime_type", file.MIMEType)
	}
}

func normalizeMIME(mimeType string) string {
	// Strip parameters like "; charset=..."
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func extractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeCorruptDocument, err).
			WithDetail("format", "pdf")
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", ErrRegistry.NewWithCause(CodeCorruptDocument, err).
				WithDetail("format", "pdf").
				WithDetail("page", i)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return normalizeWhitespace(sb.String()), nil
}

var xmlTagPattern = regexp.MustCompile(`<[^>]+>`)

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
)

func extractDOCXText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeCorruptDocument, err).
			WithDetail("format", "docx")
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", ErrRegistry.NewWithCause(CodeCorruptDocument, err).
					WithDetail("format", "docx")
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", ErrRegistry.NewWithCause(CodeCorruptDocument, err).
					WithDetail("format", "docx")
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", ErrCorruptDocument().
			WithDetail("format", "docx").
			WithDetail("reason", "word/document.xml not found")
	}

	// Paragraph and tab boundaries become whitespace before tags are stripped
	text := string(docXML)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:br/>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTagPattern.ReplaceAllString(text, " ")
	text = xmlEntityReplacer.Replace(text)

	return normalizeWhitespace(text), nil
}

var (
	spaceRuns   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns = regexp.MustCompile(`\s*\n\s*`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
