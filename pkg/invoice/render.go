package invoice

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	cellMargin = 4.0
	ellipsis   = "..."
)

var headerFill = [3]int{211, 211, 211} // light grey

// Render executes the document's instructions on a single A4 page and
// writes the PDF to w.
func (d *Document) Render(w io.Writer) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(cellMargin)
	pdf.SetCreator("invoice-generator", false)
	pdf.SetTitle(d.Number, true)
	pdf.SetAuthor(d.Author, true)
	pdf.SetCreationDate(d.IssueDate)
	pdf.AddPage()

	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	for _, in := range d.Instructions {
		switch v := in.(type) {
		case Text:
			r.text(v)
		case Rule:
			r.rule(v)
		case Table:
			r.table(v)
		default:
			return fmt.Errorf("unsupported instruction %T", in)
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering %s: %w", d.Number, err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing %s: %w", d.Number, err)
	}
	return nil
}

// Bytes renders the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) setFont(f Font) {
	r.pdf.SetFont(f.Family, f.Style, f.Size)
}

func (r *renderer) text(t Text) {
	r.setFont(t.Font)
	r.pdf.SetXY(t.Box.X, t.Box.Y)
	r.pdf.CellFormat(t.Box.W, t.Box.H, r.fit(t.Value, t.Box.W), "", 0, string(t.Align)+"M", false, 0, "")
}

func (r *renderer) rule(l Rule) {
	r.pdf.SetLineWidth(l.Width)
	r.pdf.Line(l.X1, l.Y, l.X2, l.Y)
}

func (r *renderer) table(t Table) {
	r.pdf.SetLineWidth(0.5)
	r.pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	border := ""
	if t.Grid {
		border = "1"
	}
	if t.RuleAbove {
		r.rule(Rule{X1: t.X, X2: t.X + t.Width(), Y: t.Y, Width: 1})
		r.pdf.SetLineWidth(0.5)
	}

	y := t.Y
	if t.Header != nil {
		r.setFont(t.HeaderFont)
		x := t.X
		for i, col := range t.Columns {
			r.pdf.SetXY(x, y)
			r.pdf.CellFormat(col.Width, t.RowHeight, r.fit(cell(t.Header, i), col.Width), border, 0, "LM", t.HeaderFill, 0, "")
			x += col.Width
		}
		y += t.RowHeight
	}
	for _, row := range t.Rows {
		x := t.X
		for i, col := range t.Columns {
			f := t.BodyFont
			if col.Font != nil {
				f = *col.Font
			}
			r.setFont(f)
			r.pdf.SetXY(x, y)
			r.pdf.CellFormat(col.Width, t.RowHeight, r.fit(cell(row, i), col.Width), border, 0, string(col.Align)+"M", false, 0, "")
			x += col.Width
		}
		y += t.RowHeight
	}
}

// fit translates s to the core font encoding and, when it is wider than a
// cell of width w in the current font, keeps the longest rune prefix that
// still fits together with an ellipsis. The prefix length is found by
// bisection, so the cost stays O(n log n) in the length of s.
func (r *renderer) fit(s string, w float64) string {
	avail := w - 2*cellMargin
	out := r.tr(s)
	if r.pdf.GetStringWidth(out) <= avail {
		return out
	}
	runes := []rune(s)
	fits := func(n int) bool {
		return r.pdf.GetStringWidth(r.tr(string(runes[:n]))+ellipsis) <= avail
	}
	if !fits(0) {
		return ""
	}
	lo, hi := 0, len(runes)-1 // fits(lo) holds; the whole string does not
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return r.tr(string(runes[:lo])) + ellipsis
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
