// pkg/invoice/invoice.go

package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a request does not name a currency symbol.
const DefaultCurrency = "$"

// PaymentTermDays is the number of calendar days between issue and due date.
const PaymentTermDays = 14

// Request represents a validated billing request.
type Request struct {
	ClientName  string
	ClientEmail string
	Currency    string
	Items       []Item
}

// Item represents an item in the invoice.
type Item struct {
	Description string
	UnitCost    decimal.Decimal
	Quantity    int
}

// Amount is the unrounded line total.
func (it Item) Amount() decimal.Decimal {
	return it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Total sums the unrounded line totals. Rounding only happens in FormatMoney.
func (r Request) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Amount())
	}
	return total
}

// FormatMoney renders d with exactly two fractional digits, rounding half
// away from zero, prefixed by symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}

// DueDate adds the payment term in calendar days, keeping the location of issued.
func DueDate(issued time.Time) time.Time {
	return issued.AddDate(0, 0, PaymentTermDays)
}

// Letterhead is the static sender identity and footer printed on every invoice.
type Letterhead struct {
	CompanyName string
	Address     string
	Contact     string

	Terms   string
	Banking string
	Thanks  string
}

// DefaultLetterhead returns the stock identity used when none is configured.
func DefaultLetterhead() Letterhead {
	return Letterhead{
		CompanyName: "My Company Name",
		Address:     "1358 Business Street, Amsterdam, NL",
		Contact:     "Email: info@mycompany.com | Phone: +31-020-0000000",
		Terms:       "Payment due within 14 days",
		Banking:     "Bank: Example Bank | IBAN: NL00BANK0123456789 | SWIFT: EXAMPBANK",
		Thanks:      "Thank you for your business!",
	}
}
