// Package cart validates the raw checkout payload posted by the storefront
// and normalizes it into fully-typed line items. Nothing past this package
// ever sees an unvalidated field.
package cart

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/TheWizler/unusualpills-site/internal/errors"
	"github.com/TheWizler/unusualpills-site/internal/money"
)

// RawItem is one cart line exactly as the storefront posts it. Numeric fields
// stay json.Number until the normalizer has checked them.
type RawItem struct {
	Name       string            `json:"name"`
	PriceCents *json.Number      `json:"price_cents"`
	Quantity   *json.Number      `json:"quantity"`
	Currency   string            `json:"currency"`
	IsShirt    bool              `json:"is_shirt"`
	Image      string            `json:"image,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// payload is the request body schema: { "items": [ ... ] }.
type payload struct {
	Items []RawItem `json:"items"`
}

// maxQuantity is Stripe's line-item quantity ceiling. Anything above it could
// never check out, so it is rejected here instead of at session creation.
const maxQuantity = 999_999

// LineItem is a validated, priceable cart line. The currency is uniform
// across the cart (first item's currency is authoritative).
type LineItem struct {
	Name       string
	UnitPrice  money.Money
	Quantity   int64
	Eligible   bool // counts toward the shirt promotion
	ImageRef   string
	Attributes map[string]string
}

// ValidateRequest parses the checkout payload and resolves the cart currency.
// It rejects wrong methods, unparseable bodies, and empty carts before any
// per-item validation runs.
func ValidateRequest(method string, body []byte, defaultCurrency string) ([]RawItem, money.Asset, error) {
	if method != http.MethodPost {
		return nil, money.Asset{}, apierrors.New(apierrors.ErrCodeMethodNotAllowed, "method not allowed")
	}

	if len(body) == 0 {
		body = []byte("{}")
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, money.Asset{}, apierrors.New(apierrors.ErrCodeMalformedPayload, "invalid JSON body")
	}
	if len(p.Items) == 0 {
		return nil, money.Asset{}, apierrors.New(apierrors.ErrCodeEmptyCart, "no items provided")
	}

	code := p.Items[0].Currency
	if code == "" {
		code = defaultCurrency
	}
	currency, err := money.ParseCurrency(code)
	if err != nil {
		return nil, money.Asset{}, apierrors.New(apierrors.ErrCodeInvalidCurrency,
			fmt.Sprintf("unsupported currency %q", code))
	}

	return p.Items, currency, nil
}

// NormalizeItems maps each raw item to a LineItem, order preserved. It is a
// pure function: the input slice is never mutated.
func NormalizeItems(items []RawItem, currency money.Asset) ([]LineItem, error) {
	out := make([]LineItem, 0, len(items))
	for i, it := range items {
		name := it.Name
		if name == "" {
			name = fmt.Sprintf("Item %d", i+1)
		}

		cents, ok := parsePositiveInt(it.PriceCents)
		if !ok {
			return nil, apierrors.New(apierrors.ErrCodeInvalidPrice,
				fmt.Sprintf("invalid price_cents for %q (got: %s)", name, numberForMsg(it.PriceCents)))
		}

		qty := int64(1)
		if it.Quantity != nil {
			qty, ok = parsePositiveInt(it.Quantity)
			if !ok || qty > maxQuantity {
				return nil, apierrors.New(apierrors.ErrCodeInvalidQuantity,
					fmt.Sprintf("invalid quantity for %q (got: %s)", name, numberForMsg(it.Quantity)))
			}
		}

		out = append(out, LineItem{
			Name:       name,
			UnitPrice:  money.New(currency, cents),
			Quantity:   qty,
			Eligible:   it.IsShirt,
			ImageRef:   it.Image,
			Attributes: it.Attributes,
		})
	}
	return out, nil
}

// parsePositiveInt reports the value of n when it is a finite positive
// integer. Fractional, zero, negative, absent, and out-of-range values all
// fail.
func parsePositiveInt(n *json.Number) (int64, bool) {
	if n == nil {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// numberForMsg renders a raw numeric field for an error message.
func numberForMsg(n *json.Number) string {
	if n == nil {
		return "<missing>"
	}
	return n.String()
}
