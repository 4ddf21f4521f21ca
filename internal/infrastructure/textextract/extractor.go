package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyText       = errors.New("no text content found")
)

type Extractor interface {
	Extract(fileType string, data []byte) (string, error)
}

type extractor struct{}

func New() Extractor {
	return extractor{}
}

// DetectType resolves pdf, docx or txt from the file name, falling back to
// the declared content type.
func DetectType(fileName, contentType string) (string, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".pdf":
		return "pdf", nil
	case ".docx":
		return "docx", nil
	case ".txt":
		return "txt", nil
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case MIMEPDF:
		return "pdf", nil
	case MIMEDOCX:
		return "docx", nil
	case MIMETXT:
		return "txt", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileName)
}

func ContentType(fileType string) string {
	switch fileType {
	case "pdf":
		return MIMEPDF
	case "docx":
		return MIMEDOCX
	case "txt":
		return MIMETXT + "; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func (extractor) Extract(fileType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch fileType {
	case "txt":
		text, err = extractTXT(data)
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
	if err != nil {
		return "", err
	}

	text = Clean(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), ""), nil
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return stripXML(doc.Editable().GetContent()), nil
}

// stripXML drops the WordprocessingML markup, turning paragraph and table
// cell ends into line breaks and tabs.
func stripXML(content string) string {
	replacer := strings.NewReplacer("</w:p>", "\n", "</w:tc>", "\t", "<w:tab/>", "\t", "<w:br/>", "\n")
	content = replacer.Replace(content)

	var b strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return unescapeXML(b.String())
}

func unescapeXML(s string) string {
	return strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'").Replace(s)
}

// Clean trims every line and drops blank ones.
func Clean(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

var _ Extractor = extractor{}
