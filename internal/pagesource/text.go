package pagesource

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// TextReader handles plain text files. Form feeds delimit pages, which is what
// pdftotext emits, so text dumps of paginated documents keep their page
// boundaries. Lines whose fields are separated by tabs or runs of spaces are
// treated as table rows.
type TextReader struct{}

var textFieldSep = regexp.MustCompile(`\t+| {2,}`)

func (tr *TextReader) Read(r io.Reader, filename string) ([]*Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	var pages []*Page
	for _, chunk := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		page := &Page{Number: len(pages) + 1}

		var textLines []string
		var table [][]string
		flush := func() {
			if len(table) > 0 {
				page.tables = append(page.tables, table)
				table = nil
			}
		}

		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				flush()
				continue
			}
			textLines = append(textLines, line)

			fields := splitTextFields(line)
			if len(fields) >= 2 {
				table = append(table, fields)
			} else {
				flush()
			}
		}
		flush()

		page.text = strings.Join(textLines, "\n")
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("empty text document")
	}
	return pages, nil
}

func splitTextFields(line string) []string {
	var fields []string
	for _, f := range textFieldSep.Split(strings.TrimSpace(line), -1) {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
