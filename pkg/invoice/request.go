package invoice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload is the wire shape of a billing request. Pointer fields tell a
// missing value apart from a zero one.
type Payload struct {
	ClientName  *string        `json:"client_name"`
	ClientEmail *string        `json:"client_email"`
	Items       []ItemPayload  `json:"items"`
	Currency    OptionalString `json:"currency"`
}

// OptionalString tells an absent field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Null  bool
	Value string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// MaxAmount bounds unit prices and line totals.
var MaxAmount = decimal.New(1, 12)

// MaxPricePlaces is the number of fractional digits accepted in a price.
const MaxPricePlaces = 8

// ItemPayload is one entry of Payload.Items.
type ItemPayload struct {
	Item  *string          `json:"item"`
	Qty   *int             `json:"qty"`
	Price *decimal.Decimal `json:"price"`
}

// FieldError describes one rejected field. Loc is the path to the field,
// starting with "body".
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ValidationError is returned when a request is malformed. It is always
// raised before any composition happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		loc := make([]string, 0, len(f.Loc))
		for _, l := range f.Loc {
			loc = append(loc, fmt.Sprint(l))
		}
		parts = append(parts, strings.Join(loc, ".")+": "+f.Msg)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single location.
func NewValidationError(typ, msg string, loc ...any) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Loc: append([]any{"body"}, loc...), Msg: msg, Type: typ}}}
}

func (e *ValidationError) add(typ, msg string, loc ...any) {
	e.Fields = append(e.Fields, FieldError{Loc: append([]any{"body"}, loc...), Msg: msg, Type: typ})
}

// Request checks required fields and numeric ranges and returns the
// validated request.
func (p *Payload) Request() (Request, error) {
	verr := &ValidationError{}
	if p.ClientName == nil {
		verr.add("missing", "Field required", "client_name")
	}
	if p.ClientEmail == nil {
		verr.add("missing", "Field required", "client_email")
	}
	if p.Items == nil {
		verr.add("missing", "Field required", "items")
	}
	if len(p.Items) > MaxItems {
		verr.add("too_long", fmt.Sprintf("List should have at most %d items", MaxItems), "items")
	}

	items := make([]Item, 0, len(p.Items))
	for i, ip := range p.Items {
		if ip.Item == nil {
			verr.add("missing", "Field required", "items", i, "item")
		}
		if ip.Qty == nil {
			verr.add("missing", "Field required", "items", i, "qty")
		} else if *ip.Qty < 0 {
			verr.add("greater_than_equal", "Input should be greater than or equal to 0", "items", i, "qty")
		}
		var price decimal.Decimal
		if ip.Price == nil {
			verr.add("missing", "Field required", "items", i, "price")
		} else if typ, msg := checkPrice(*ip.Price); typ != "" {
			verr.add(typ, msg, "items", i, "price")
		} else {
			price = *ip.Price
			if price.IsZero() {
				price = decimal.Zero
			}
			if ip.Qty != nil && price.Mul(decimal.NewFromInt(int64(*ip.Qty))).GreaterThan(MaxAmount) {
				verr.add("less_than_equal", "Line total should be less than or equal to "+MaxAmount.String(), "items", i)
			}
		}
		if len(verr.Fields) > 0 {
			continue
		}
		items = append(items, Item{Description: *ip.Item, Quantity: *ip.Qty, UnitCost: price})
	}
	if p.Currency.Null {
		verr.add("string_type", "Input should be a valid string", "currency")
	}
	if len(verr.Fields) > 0 {
		return Request{}, verr
	}

	currency := DefaultCurrency
	if p.Currency.Set {
		currency = p.Currency.Value
	}
	return Request{
		ClientName:  *p.ClientName,
		ClientEmail: *p.ClientEmail,
		Currency:    currency,
		Items:       items,
	}, nil
}

// checkPrice returns a field error type and message for a price out of
// range. The exponent is checked before any comparison so that values like
// 1e1000000 or 1e-1000000 are rejected without expanding their coefficient.
func checkPrice(d decimal.Decimal) (string, string) {
	switch {
	case d.IsZero():
		return "", ""
	case d.IsNegative():
		return "greater_than_equal", "Input should be greater than or equal to 0"
	case d.Exponent() > 12:
		return "less_than_equal", "Input should be less than or equal to " + MaxAmount.String()
	case d.Exponent() < -MaxPricePlaces:
		return "decimal_max_places", fmt.Sprintf("Decimal input should have no more than %d decimal places", MaxPricePlaces)
	case d.GreaterThan(MaxAmount):
		return "less_than_equal", "Input should be less than or equal to " + MaxAmount.String()
	}
	return "", ""
}
