package money

import (
	"fmt"
	"strings"
)

// Asset represents a settlement currency with its properties.
type Asset struct {
	Code     string // ISO 4217 code (USD, EUR, ...)
	Decimals uint8  // Number of decimal places (2 for USD)
	Stripe   string // Stripe currency code (lowercase: "usd", "eur")
}

// assetRegistry lists the currencies the storefront accepts. JPY is
// zero-decimal: its atomic unit is the yen itself, matching Stripe's amount
// semantics for that currency.
var assetRegistry = map[string]Asset{
	"USD": {Code: "USD", Decimals: 2, Stripe: "usd"},
	"EUR": {Code: "EUR", Decimals: 2, Stripe: "eur"},
	"CAD": {Code: "CAD", Decimals: 2, Stripe: "cad"},
	"GBP": {Code: "GBP", Decimals: 2, Stripe: "gbp"},
	"AUD": {Code: "AUD", Decimals: 2, Stripe: "aud"},
	"MXN": {Code: "MXN", Decimals: 2, Stripe: "mxn"},
	"JPY": {Code: "JPY", Decimals: 0, Stripe: "jpy"},
}

// GetAsset looks up an asset by its ISO code.
func GetAsset(code string) (Asset, error) {
	asset, ok := assetRegistry[strings.ToUpper(code)]
	if !ok {
		return Asset{}, fmt.Errorf("money: unknown asset %q", code)
	}
	return asset, nil
}

// ParseCurrency resolves a client-supplied currency string (any case) to an
// Asset. Three-letter ISO codes only.
func ParseCurrency(code string) (Asset, error) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return Asset{}, fmt.Errorf("money: invalid currency code %q", code)
	}
	return GetAsset(code)
}

// StripeCurrency returns the lowercase code Stripe expects for this asset.
func (a Asset) StripeCurrency() string {
	return a.Stripe
}
