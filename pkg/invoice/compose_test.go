package invoice

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, 12, 20, 14, 3, 9, 0, time.UTC)

func newTestComposer() *Composer {
	return NewComposer(DefaultLetterhead(), WithClock(func() time.Time { return fixedNow }))
}

func acmeRequest() Request {
	return Request{
		ClientName:  "Acme",
		ClientEmail: "a@acme.com",
		Currency:    "$",
		Items: []Item{
			{Description: "Widget", Quantity: 3, UnitCost: decimal.RequireFromString("9.99")},
		},
	}
}

func findTable(t *testing.T, doc *Document, r Region) Table {
	t.Helper()
	for _, in := range doc.Instructions {
		if tbl, ok := in.(Table); ok && tbl.In == r {
			return tbl
		}
	}
	t.Fatalf("no table in region %s", r)
	return Table{}
}

func TestComposeIdentifiers(t *testing.T) {
	doc := newTestComposer().Compose(acmeRequest())
	if doc.Filename != "invoice_20251220_140309.pdf" {
		t.Fatalf("filename = %s", doc.Filename)
	}
	if !regexp.MustCompile(`^invoice_\d{8}_\d{6}\.pdf$`).MatchString(doc.Filename) {
		t.Fatalf("filename pattern mismatch: %s", doc.Filename)
	}
	if doc.Number != "INV-20251220_140309" {
		t.Fatalf("number = %s", doc.Number)
	}
	want := time.Date(2026, 1, 3, 14, 3, 9, 0, time.UTC)
	if !doc.DueDate.Equal(want) {
		t.Fatalf("due = %s", doc.DueDate)
	}
}

func TestComposeMetaTable(t *testing.T) {
	meta := findTable(t, newTestComposer().Compose(acmeRequest()), RegionMeta)
	want := [][]string{
		{"Invoice #:", "INV-20251220_140309"},
		{"Issue Date:", "Dec 20, 2025"},
		{"Due Date:", "Jan 03, 2026"},
	}
	if fmt.Sprint(meta.Rows) != fmt.Sprint(want) {
		t.Fatalf("meta rows = %v", meta.Rows)
	}
}

func TestComposeItemsAndTotal(t *testing.T) {
	doc := newTestComposer().Compose(acmeRequest())
	items := findTable(t, doc, RegionItems)
	if fmt.Sprint(items.Header) != "[Item Qty Price Total]" {
		t.Fatalf("header = %v", items.Header)
	}
	if len(items.Rows) != 1 || fmt.Sprint(items.Rows[0]) != "[Widget 3 $9.99 $29.97]" {
		t.Fatalf("rows = %v", items.Rows)
	}
	total := findTable(t, doc, RegionTotal)
	if total.Rows[0][1] != "$29.97" {
		t.Fatalf("total = %s", total.Rows[0][1])
	}
	if !doc.Total.Equal(decimal.RequireFromString("29.97")) {
		t.Fatalf("doc total = %s", doc.Total)
	}
}

func TestComposeEmptyItems(t *testing.T) {
	req := acmeRequest()
	req.Items = nil
	doc := newTestComposer().Compose(req)
	items := findTable(t, doc, RegionItems)
	if len(items.Rows) != 0 || items.Header == nil {
		t.Fatalf("expected header-only table, got %+v", items)
	}
	if got := findTable(t, doc, RegionTotal).Rows[0][1]; got != "$0.00" {
		t.Fatalf("total = %s", got)
	}
}

func TestComposeTotalMatchesDisplayedLines(t *testing.T) {
	req := acmeRequest()
	req.Currency = "€"
	req.Items = append(req.Items,
		Item{Description: "Bolt", Quantity: 12, UnitCost: decimal.RequireFromString("0.25")},
		Item{Description: "Service", Quantity: 1, UnitCost: decimal.RequireFromString("150")},
	)
	doc := newTestComposer().Compose(req)
	items := findTable(t, doc, RegionItems)
	sum := decimal.Zero
	for _, row := range items.Rows {
		sum = sum.Add(decimal.RequireFromString(row[3][len("€"):]))
	}
	if got := findTable(t, doc, RegionTotal).Rows[0][1]; got != FormatMoney("€", sum) || got != "€182.97" {
		t.Fatalf("total = %s, sum of lines = %s", got, sum)
	}
}

func TestComposeRegionsDoNotOverlap(t *testing.T) {
	for _, n := range []int{0, 1, MaxItems} {
		t.Run(fmt.Sprintf("items=%d", n), func(t *testing.T) {
			req := acmeRequest()
			req.Items = nil
			for i := 0; i < n; i++ {
				req.Items = append(req.Items, Item{Description: "x", Quantity: 1, UnitCost: decimal.NewFromInt(1)})
			}
			bounds := RegionBounds(newTestComposer().Compose(req).Instructions)
			if len(bounds) != len(Regions) {
				t.Fatalf("got %d regions, want %d", len(bounds), len(Regions))
			}
			for i := 1; i < len(Regions); i++ {
				prev, cur := bounds[Regions[i-1]], bounds[Regions[i]]
				if prev.Bottom() > cur.Y {
					t.Fatalf("%s (bottom %.2f) overlaps %s (top %.2f)", Regions[i-1], prev.Bottom(), Regions[i], cur.Y)
				}
			}
			for r, b := range bounds {
				if b.X < 0 || b.X+b.W > PageWidth || b.Y < 0 || b.Bottom() > PageHeight {
					t.Fatalf("%s outside page: %+v", r, b)
				}
			}
		})
	}
}

func TestMaxItems(t *testing.T) {
	if MaxItems != 15 {
		t.Fatalf("MaxItems = %d", MaxItems)
	}
}

func TestComposeBytes(t *testing.T) {
	name, b, err := newTestComposer().ComposeBytes(acmeRequest())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if name != "invoice_20251220_140309.pdf" {
		t.Fatalf("name = %s", name)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", b[:16])
	}
}
