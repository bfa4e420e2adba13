package invoice

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	stampLayout = "20060102_150405"
	dateLayout  = "Jan 02, 2006"
)

// Document is a composed invoice: derived values plus the draw
// instructions for its single page.
type Document struct {
	Number       string
	Filename     string
	IssueDate    time.Time
	DueDate      time.Time
	Currency     string
	Total        decimal.Decimal
	Author       string
	Instructions []Instruction
}

// Composer turns validated requests into Documents. It holds no mutable
// state and is safe for concurrent use.
type Composer struct {
	letterhead Letterhead
	now        func() time.Time
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock replaces time.Now as the source of issue timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// NewComposer returns a Composer printing the given letterhead.
func NewComposer(lh Letterhead, opts ...Option) *Composer {
	c := &Composer{letterhead: lh, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Filename returns the artifact name for an invoice issued at t.
func Filename(t time.Time) string {
	return "invoice_" + t.Format(stampLayout) + ".pdf"
}

// Compose lays out req on one page. It never fails for a validated request.
func (c *Composer) Compose(req Request) *Document {
	now := c.now()
	stamp := now.Format(stampLayout)
	doc := &Document{
		Number:    "INV-" + stamp,
		Filename:  Filename(now),
		IssueDate: now,
		DueDate:   DueDate(now),
		Currency:  req.Currency,
		Total:     req.Total(),
		Author:    c.letterhead.CompanyName,
	}

	contentWidth := PageWidth - 2*Margin
	ins := []Instruction{
		Text{In: RegionTitle, Box: Rect{X: Margin, Y: titleTop, W: contentWidth, H: 24}, Value: "INVOICE", Font: fontTitle, Align: AlignCenter},

		Text{In: RegionIssuer, Box: Rect{X: Margin, Y: issuerTop, W: contentWidth, H: 16}, Value: c.letterhead.CompanyName, Font: fontCompany, Align: AlignLeft},
		Text{In: RegionIssuer, Box: Rect{X: Margin, Y: issuerTop + 18, W: contentWidth, H: 12}, Value: c.letterhead.Address, Font: fontBody, Align: AlignLeft},
		Text{In: RegionIssuer, Box: Rect{X: Margin, Y: issuerTop + 33, W: contentWidth, H: 12}, Value: c.letterhead.Contact, Font: fontBody, Align: AlignLeft},
		Rule{In: RegionIssuer, X1: Margin, X2: PageWidth - Margin, Y: issuerRuleY, Width: 1},

		Table{
			In:        RegionMeta,
			X:         Margin,
			Y:         metaTop,
			RowHeight: metaRowHeight,
			Columns: []Column{
				{Width: 100, Align: AlignLeft, Font: &fontHeading},
				{Width: 200, Align: AlignLeft},
			},
			Rows: [][]string{
				{"Invoice #:", doc.Number},
				{"Issue Date:", doc.IssueDate.Format(dateLayout)},
				{"Due Date:", doc.DueDate.Format(dateLayout)},
			},
			BodyFont: fontBody12,
		},

		Text{In: RegionBillTo, Box: Rect{X: Margin, Y: billToTop, W: contentWidth, H: 14}, Value: "Bill To:", Font: fontHeading, Align: AlignLeft},
		Text{In: RegionBillTo, Box: Rect{X: Margin, Y: billToTop + 16, W: contentWidth, H: 12}, Value: req.ClientName, Font: fontBody, Align: AlignLeft},
		Text{In: RegionBillTo, Box: Rect{X: Margin, Y: billToTop + 31, W: contentWidth, H: 12}, Value: req.ClientEmail, Font: fontBody, Align: AlignLeft},
	}

	items := Table{
		In:        RegionItems,
		X:         Margin,
		Y:         itemsTop,
		RowHeight: itemRowHeight,
		Columns: []Column{
			{Width: 200, Align: AlignLeft},
			{Width: 60, Align: AlignRight},
			{Width: 100, Align: AlignRight},
			{Width: 100, Align: AlignRight},
		},
		Header:     []string{"Item", "Qty", "Price", "Total"},
		Rows:       make([][]string, 0, len(req.Items)),
		HeaderFont: fontHeading,
		BodyFont:   fontBody,
		Grid:       true,
		HeaderFill: true,
	}
	for _, it := range req.Items {
		items.Rows = append(items.Rows, []string{
			it.Description,
			strconv.Itoa(it.Quantity),
			FormatMoney(req.Currency, it.UnitCost),
			FormatMoney(req.Currency, it.Amount()),
		})
	}
	ins = append(ins, items)

	ins = append(ins, Table{
		In:        RegionTotal,
		X:         Margin,
		Y:         items.Bounds().Bottom() + totalGap,
		RowHeight: totalRowHeight,
		Columns: []Column{
			{Width: 360, Align: AlignLeft},
			{Width: 100, Align: AlignRight},
		},
		Rows:      [][]string{{"Grand Total:", FormatMoney(req.Currency, doc.Total)}},
		BodyFont:  fontHeading,
		RuleAbove: true,
	})

	ins = append(ins, Table{
		In:        RegionFooter,
		X:         (PageWidth - footerWidth) / 2,
		Y:         footerTop,
		RowHeight: footerRowHeight,
		Columns:   []Column{{Width: footerWidth, Align: AlignCenter}},
		Rows: [][]string{
			{c.letterhead.Terms},
			{c.letterhead.Banking},
			{c.letterhead.Thanks},
		},
		BodyFont: fontFooter,
	})

	doc.Instructions = ins
	return doc
}

// ComposeBytes composes and renders req, returning the artifact filename
// and the PDF bytes.
func (c *Composer) ComposeBytes(req Request) (string, []byte, error) {
	doc := c.Compose(req)
	b, err := doc.Bytes()
	if err != nil {
		return "", nil, err
	}
	return doc.Filename, b, nil
}
