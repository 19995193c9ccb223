// Package market serves indicative commodity prices from a static table.
package market

import (
	"errors"
	"strings"
)

// ErrUnknownCommodity is returned when no price is listed for a commodity.
var ErrUnknownCommodity = errors.New("no price listed for commodity")

// Price is an indicative farm-gate price for one commodity.
type Price struct {
	Commodity  string  `json:"commodity"`
	PricePerKg float64 `json:"pricePerKg"`
	Currency   string  `json:"currency"`
}

var prices = []Price{
	{Commodity: "Tomato", PricePerKg: 25, Currency: "INR"},
	{Commodity: "Potato", PricePerKg: 20, Currency: "INR"},
	{Commodity: "Onion", PricePerKg: 30, Currency: "INR"},
	{Commodity: "Maize", PricePerKg: 22, Currency: "INR"},
}

// List returns all listed prices.
func List() []Price {
	out := make([]Price, len(prices))
	copy(out, prices)
	return out
}

// Lookup returns the price for a commodity, matched case-insensitively.
func Lookup(commodity string) (Price, error) {
	for _, p := range prices {
		if strings.EqualFold(p.Commodity, commodity) {
			return p, nil
		}
	}
	return Price{}, ErrUnknownCommodity
}
