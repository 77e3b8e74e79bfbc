package pagesource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFReader extracts pages from text-layer PDFs. The library exposes each
// visual row as positioned words; table cells are rebuilt by clustering words
// on horizontal gaps, since the source documents draw tables without any
// structural markup we can read.
type PDFReader struct{}

// cellGapPt is the minimum horizontal whitespace, in points, treated as a
// column boundary when it exceeds the current font size.
const cellGapPt = 8.0

func (p *PDFReader) Read(r io.Reader, filename string) ([]*Page, error) {
	// ledongthuc/pdf requires a ReadSeeker with a known size.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []*Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		pg := reader.Page(i)
		if pg.V.IsNull() {
			continue
		}
		rows, err := pg.GetTextByRow()
		if err != nil {
			// A single damaged page is not fatal; the rest of the document
			// can still be extracted.
			continue
		}

		var cellRows [][]string
		var text strings.Builder
		for _, row := range rows {
			cells := clusterCells(row.Content)
			if len(cells) == 0 {
				continue
			}
			if len(cells) >= 2 {
				cellRows = append(cellRows, cells)
			}
			text.WriteString(strings.Join(cells, " "))
			text.WriteByte('\n')
		}

		page := &Page{Number: i, text: text.String()}
		if len(cellRows) > 0 {
			page.tables = [][][]string{cellRows}
		}
		pages = append(pages, page)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf %s has no extractable pages", filename)
	}
	return pages, nil
}

// clusterCells groups one visual row's words into cells. Words separated by
// more than a column gap start a new cell; words closer than that are joined
// with a single space.
func clusterCells(words []pdflib.Text) []string {
	var cells []string
	var cell strings.Builder
	var prevEnd float64

	flush := func() {
		if s := strings.TrimSpace(cell.String()); s != "" {
			cells = append(cells, s)
		}
		cell.Reset()
	}

	for i, w := range words {
		if i > 0 {
			gap := w.X - prevEnd
			threshold := cellGapPt
			if w.FontSize > threshold {
				threshold = w.FontSize
			}
			if gap > threshold {
				flush()
			} else if gap > 0.1 {
				cell.WriteByte(' ')
			}
		}
		cell.WriteString(w.S)
		end := w.X + w.W
		if end > prevEnd {
			prevEnd = end
		}
	}
	flush()
	return cells
}
