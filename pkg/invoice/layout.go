package invoice

import "math"

// Page geometry in points (1/72 inch) for a portrait A4 sheet.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
	Margin     = 50.0
)

// Fixed vertical offsets, measured from the top edge of the page.
const (
	titleTop        = 32.0
	issuerTop       = 86.0
	issuerRuleY     = 140.0
	metaTop         = 160.0
	metaRowHeight   = 20.0
	billToTop       = 248.0
	itemsTop        = 310.0
	itemRowHeight   = 20.0
	totalGap        = 12.0
	totalRowHeight  = 22.0
	footerRowHeight = 18.0
	footerBottom    = 100.0
	footerGap       = 10.0
	footerWidth     = 450.0
)

const footerTop = PageHeight - footerBottom - 3*footerRowHeight

// MaxItems is the largest number of items whose table and grand total still
// end above the footer.
var MaxItems = maxItemRows()

func maxItemRows() int {
	room := footerTop - footerGap - itemsTop - totalGap - totalRowHeight
	return int(math.Floor(room/itemRowHeight)) - 1 // header row
}

// Region names the logical block an instruction belongs to.
type Region string

const (
	RegionTitle  Region = "title"
	RegionIssuer Region = "issuer"
	RegionMeta   Region = "meta"
	RegionBillTo Region = "bill_to"
	RegionItems  Region = "items"
	RegionTotal  Region = "total"
	RegionFooter Region = "footer"
)

// Regions lists the blocks in top-to-bottom page order.
var Regions = []Region{RegionTitle, RegionIssuer, RegionMeta, RegionBillTo, RegionItems, RegionTotal, RegionFooter}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.X+r.W, o.X+o.W)
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Font selects one of the PDF core fonts. Style is "", "B", "I" or "BI".
type Font struct {
	Family string
	Style  string
	Size   float64
}

var (
	fontTitle   = Font{Family: "Helvetica", Style: "B", Size: 24}
	fontCompany = Font{Family: "Helvetica", Style: "B", Size: 14}
	fontHeading = Font{Family: "Helvetica", Style: "B", Size: 12}
	fontBody12  = Font{Family: "Helvetica", Size: 12}
	fontBody    = Font{Family: "Helvetica", Size: 10}
	fontFooter  = Font{Family: "Helvetica", Style: "I", Size: 10}
)

// Align is a horizontal alignment: "L", "C" or "R".
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Instruction is one absolute-positioned draw directive.
type Instruction interface {
	Region() Region
	Bounds() Rect
}

// Text draws a single line of text inside Box.
type Text struct {
	In    Region
	Box   Rect
	Value string
	Font  Font
	Align Align
}

func (t Text) Region() Region { return t.In }
func (t Text) Bounds() Rect { return t.Box }

// Rule draws a horizontal line from X1 to X2 at Y.
type Rule struct {
	In     Region
	X1, X2 float64
	Y      float64
	Width  float64
}

func (l Rule) Region() Region { return l.In }
func (l Rule) Bounds() Rect { return Rect{X: l.X1, Y: l.Y, W: l.X2 - l.X1} }

// Column describes one table column. Font, when set, overrides the body font
// for that column.
type Column struct {
	Width float64
	Align Align
	Font  *Font
}

// Table draws a grid of fixed-height rows starting at (X, Y). Header, when
// non-nil, is drawn as the first row with HeaderFont.
type Table struct {
	In         Region
	X, Y       float64
	RowHeight  float64
	Columns    []Column
	Header     []string
	Rows       [][]string
	HeaderFont Font
	BodyFont   Font
	Grid       bool
	HeaderFill bool
	RuleAbove  bool
}

func (t Table) Region() Region { return t.In }

func (t Table) Bounds() Rect {
	n := len(t.Rows)
	if t.Header != nil {
		n++
	}
	return Rect{X: t.X, Y: t.Y, W: t.Width(), H: float64(n) * t.RowHeight}
}

// Width is the sum of the column widths.
func (t Table) Width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// RegionBounds returns the box enclosing all instructions of each region.
func RegionBounds(ins []Instruction) map[Region]Rect {
	out := make(map[Region]Rect)
	for _, in := range ins {
		b := in.Bounds()
		if cur, ok := out[in.Region()]; ok {
			out[in.Region()] = cur.Union(b)
			continue
		}
		out[in.Region()] = b
	}
	return out
}
