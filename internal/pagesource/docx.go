package pagesource

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXReader handles .docx documents: body tables become row grids, body
// paragraphs become the text channel. The whole document is one page.
type DOCXReader struct{}

func (p *DOCXReader) Read(r io.Reader, filename string) ([]*Page, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "xtractor-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var tables [][][]string
	var text strings.Builder

	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if t := paragraphText(it); t != "" {
				text.WriteString(t)
				text.WriteByte('\n')
			}
		case *docx.Table:
			if rows := docxTableRows(it); len(rows) > 0 {
				tables = append(tables, rows)
			}
		}
	}

	return []*Page{{Number: 1, tables: tables, text: text.String()}}, nil
}

func docxTableRows(table *docx.Table) [][]string {
	var rows [][]string
	for _, tr := range table.TableRows {
		var cells []string
		for _, tc := range tr.TableCells {
			var cell strings.Builder
			for _, para := range tc.Paragraphs {
				if t := paragraphText(para); t != "" {
					if cell.Len() > 0 {
						cell.WriteByte(' ')
					}
					cell.WriteString(t)
				}
			}
			cells = append(cells, cell.String())
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
