package pagesource

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownReader handles Markdown documents using goldmark with the table
// extension: pipe tables become row grids, everything else feeds the text
// channel. The whole document is one page.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) ([]*Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	var tables [][][]string
	var textBuf strings.Builder

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if table, ok := n.(*east.Table); ok {
			if rows := markdownTableRows(table, src); len(rows) > 0 {
				tables = append(tables, rows)
			}
			continue
		}
		if t := blockText(n, src); t != "" {
			textBuf.WriteString(t)
			textBuf.WriteByte('\n')
		}
	}

	return []*Page{{Number: 1, tables: tables, text: textBuf.String()}}, nil
}

func markdownTableRows(table *east.Table, src []byte) [][]string {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *east.TableHeader, *east.TableRow:
		default:
			continue
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, string(cell.Text(src)))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

// blockText gets the text content of a goldmark AST block node. Inline
// children and the block's raw lines cover the same source text, so only one
// of the two is read.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.HasChildren() {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			}
		}
	} else if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}
