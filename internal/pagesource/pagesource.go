// Package pagesource resolves uploaded document bytes into the ordered pages
// the extraction engine consumes: structured table rows plus free text.
package pagesource

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Page is one page of source content.
type Page struct {
	Number int

	tables [][][]string
	text   string
}

// Tables returns the page's tables as ordered row/cell grids.
func (p *Page) Tables() [][][]string { return p.tables }

// Text returns the page's free text, one line per source line.
func (p *Page) Text() string { return p.text }

// Reader converts raw document bytes into pages.
type Reader interface {
	Read(r io.Reader, filename string) ([]*Page, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".txt":      true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".txt":
		return &TextReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
