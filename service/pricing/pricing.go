// Package pricing computes contract quotes: line totals, a mandatory
// percentage surcharge and a total rounded to whole rials.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNegative = errors.New("quantities, prices and percent must not be negative")

// Item is one quoted line.
type Item struct {
	Code      string          `json:"code,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Line is an item with its computed amount.
type Line struct {
	Item
	Amount decimal.Decimal `json:"amount"`
}

type Summary struct {
	Lines              []Line          `json:"lines"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	MandatoryPercent   decimal.Decimal `json:"mandatory_percent"`
	MandatorySurcharge decimal.Decimal `json:"mandatory_surcharge"`
	Total              decimal.Decimal `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// Quote prices items and adds mandatoryPercent of the subtotal on top.
func Quote(items []Item, mandatoryPercent decimal.Decimal) (Summary, error) {
	if mandatoryPercent.IsNegative() {
		return Summary{}, fmt.Errorf("%w: percent %s", ErrNegative, mandatoryPercent)
	}
	s := Summary{Lines: make([]Line, 0, len(items)), MandatoryPercent: mandatoryPercent}
	for i, it := range items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return Summary{}, fmt.Errorf("%w: item %d", ErrNegative, i+1)
		}
		amount := it.Quantity.Mul(it.UnitPrice)
		s.Lines = append(s.Lines, Line{Item: it, Amount: amount})
		s.Subtotal = s.Subtotal.Add(amount)
	}
	s.MandatorySurcharge = s.Subtotal.Mul(mandatoryPercent).Div(hundred)
	s.Total = s.Subtotal.Add(s.MandatorySurcharge).Round(0)
	return s, nil
}

// ParseItem reads "qty:price" or "code:qty:price". Persian digits and
// thousands separators are accepted.
func ParseItem(s string) (Item, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	var it Item
	switch len(parts) {
	case 2:
	case 3:
		it.Code = strings.TrimSpace(parts[0])
		parts = parts[1:]
	default:
		return Item{}, fmt.Errorf("item %q: want qty:price or code:qty:price", s)
	}
	var err error
	if it.Quantity, err = ParseAmount(parts[0]); err != nil {
		return Item{}, fmt.Errorf("item %q quantity: %w", s, err)
	}
	if it.UnitPrice, err = ParseAmount(parts[1]); err != nil {
		return Item{}, fmt.Errorf("item %q price: %w", s, err)
	}
	return it, nil
}

var amountReplacer = strings.NewReplacer(
	",", "", "٬", "", "،", "", " ", "", "٫", ".",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// ParseAmount parses a decimal written with ASCII or Persian digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountReplacer.Replace(strings.TrimSpace(s)))
}
