package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuote(t *testing.T) {
	items := []Item{
		{Quantity: d("12.5"), UnitPrice: d("1000")},
		{Quantity: d("3"), UnitPrice: d("2500")},
	}
	s, err := Quote(items, d("9"))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !s.Subtotal.Equal(d("20000")) {
		t.Errorf("Subtotal = %s, want 20000", s.Subtotal)
	}
	if !s.MandatorySurcharge.Equal(d("1800")) {
		t.Errorf("MandatorySurcharge = %s, want 1800", s.MandatorySurcharge)
	}
	if !s.Total.Equal(d("21800")) {
		t.Errorf("Total = %s, want 21800", s.Total)
	}
	if len(s.Lines) != 2 || !s.Lines[0].Amount.Equal(d("12500")) {
		t.Errorf("Lines = %+v, want first amount 12500", s.Lines)
	}
}

func TestQuoteRoundsTotal(t *testing.T) {
	s, err := Quote([]Item{{Quantity: d("1"), UnitPrice: d("333")}}, d("10"))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	// 333 + 33.3
	if !s.Total.Equal(d("366")) {
		t.Errorf("Total = %s, want 366", s.Total)
	}
}

func TestQuoteEmpty(t *testing.T) {
	s, err := Quote(nil, d("9"))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if !s.Total.IsZero() {
		t.Errorf("Total = %s, want 0", s.Total)
	}
}

func TestQuoteRejectsNegative(t *testing.T) {
	cases := []struct {
		name  string
		items []Item
		pct   string
	}{
		{"quantity", []Item{{Quantity: d("-1"), UnitPrice: d("10")}}, "0"},
		{"price", []Item{{Quantity: d("1"), UnitPrice: d("-10")}}, "0"},
		{"percent", nil, "-5"},
	}
	for _, tc := range cases {
		if _, err := Quote(tc.items, d(tc.pct)); !errors.Is(err, ErrNegative) {
			t.Errorf("%s: err = %v, want ErrNegative", tc.name, err)
		}
	}
}

func TestParseItem(t *testing.T) {
	it, err := ParseItem("۱۲:۱,۵۰۰")
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	if !it.Quantity.Equal(d("12")) || !it.UnitPrice.Equal(d("1500")) {
		t.Errorf("item = %s x %s, want 12 x 1500", it.Quantity, it.UnitPrice)
	}

	it, err = ParseItem("P-7:2.5:400")
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	if it.Code != "P-7" || !it.Quantity.Equal(d("2.5")) {
		t.Errorf("item = %+v, want code P-7 qty 2.5", it)
	}

	if _, err := ParseItem("12"); err == nil {
		t.Error("ParseItem(\"12\") err = nil, want error")
	}
}
