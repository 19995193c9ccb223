package market

import (
	"errors"
	"testing"
)

func TestLookupCaseInsensitive(t *testing.T) {
	for _, name := range []string{"Tomato", "tomato", "TOMATO"} {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if p.PricePerKg != 25 || p.Currency != "INR" {
			t.Fatalf("unexpected price %+v", p)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("saffron"); !errors.Is(err, ErrUnknownCommodity) {
		t.Fatalf("expected ErrUnknownCommodity, got %v", err)
	}
}

func TestListCopies(t *testing.T) {
	a := List()
	a[0].PricePerKg = 999

	b := List()
	if b[0].PricePerKg == 999 {
		t.Fatal("List must return a copy of the table")
	}
}
