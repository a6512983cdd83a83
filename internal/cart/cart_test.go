package cart

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	apierrors "github.com/TheWizler/unusualpills-site/internal/errors"
	"github.com/TheWizler/unusualpills-site/internal/money"
)

func num(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func mustUSD(t *testing.T) money.Asset {
	t.Helper()
	asset, err := money.GetAsset("USD")
	if err != nil {
		t.Fatalf("GetAsset(USD): %v", err)
	}
	return asset
}

func TestValidateRequestMethod(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions} {
		_, _, err := ValidateRequest(method, []byte(`{"items":[{"price_cents":100}]}`), "usd")
		if err == nil {
			t.Fatalf("%s: expected error", method)
		}
		if got := apierrors.CodeOf(err); got != apierrors.ErrCodeMethodNotAllowed {
			t.Errorf("%s: code = %s, want %s", method, got, apierrors.ErrCodeMethodNotAllowed)
		}
	}
}

func TestValidateRequestBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		code apierrors.ErrorCode
	}{
		{"invalid json", `{"items": [`, apierrors.ErrCodeMalformedPayload},
		{"non-numeric price type", `{"items":[{"price_cents":"abc"}]}`, apierrors.ErrCodeMalformedPayload},
		{"empty body", ``, apierrors.ErrCodeEmptyCart},
		{"empty object", `{}`, apierrors.ErrCodeEmptyCart},
		{"null items", `{"items":null}`, apierrors.ErrCodeEmptyCart},
		{"empty items", `{"items":[]}`, apierrors.ErrCodeEmptyCart},
		{"bad currency", `{"items":[{"price_cents":100,"currency":"doge"}]}`, apierrors.ErrCodeInvalidCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateRequest(http.MethodPost, []byte(tt.body), "usd")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apierrors.CodeOf(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestValidateRequestCurrencyResolution(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"default when absent", `{"items":[{"price_cents":100}]}`, "USD"},
		{"first item wins", `{"items":[{"price_cents":100,"currency":"eur"},{"price_cents":200,"currency":"cad"}]}`, "EUR"},
		{"case insensitive", `{"items":[{"price_cents":100,"currency":"CAD"}]}`, "CAD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, currency, err := ValidateRequest(http.MethodPost, []byte(tt.body), "usd")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if currency.Code != tt.want {
				t.Errorf("currency = %s, want %s", currency.Code, tt.want)
			}
		})
	}
}

func TestNormalizeItemsDefaults(t *testing.T) {
	raw, currency, err := ValidateRequest(http.MethodPost,
		[]byte(`{"items":[{"price_cents":1500},{"name":"Pill Tee","price_cents":2500,"quantity":3,"is_shirt":true}]}`), "usd")
	if err != nil {
		t.Fatalf("ValidateRequest: %v", err)
	}

	items, err := NormalizeItems(raw, currency)
	if err != nil {
		t.Fatalf("NormalizeItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Name != "Item 1" {
		t.Errorf("default name = %q, want %q", first.Name, "Item 1")
	}
	if first.Quantity != 1 {
		t.Errorf("default quantity = %d, want 1", first.Quantity)
	}
	if first.Eligible {
		t.Error("item without is_shirt must not be promotion eligible")
	}
	if first.UnitPrice.Atomic != 1500 {
		t.Errorf("unit price = %d, want 1500", first.UnitPrice.Atomic)
	}

	second := items[1]
	if second.Name != "Pill Tee" || second.Quantity != 3 || !second.Eligible {
		t.Errorf("unexpected second item: %+v", second)
	}
}

func TestNormalizeItemsInvalidPrice(t *testing.T) {
	tests := []struct {
		name  string
		price *json.Number
	}{
		{"missing", nil},
		{"zero", num("0")},
		{"negative", num("-5")},
		{"fractional", num("9.99")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeItems([]RawItem{{Name: "Pill Tee", PriceCents: tt.price}}, mustUSD(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apierrors.CodeOf(err); got != apierrors.ErrCodeInvalidPrice {
				t.Errorf("code = %s, want %s", got, apierrors.ErrCodeInvalidPrice)
			}
			if !strings.Contains(err.Error(), `"Pill Tee"`) {
				t.Errorf("error %q does not name the item", err)
			}
		})
	}
}

func TestNormalizeItemsInvalidQuantity(t *testing.T) {
	tests := []struct {
		name string
		qty  *json.Number
	}{
		{"zero", num("0")},
		{"negative", num("-1")},
		{"fractional", num("1.5")},
		{"above stripe maximum", num("1000000")},
		{"absurdly large", num("1099511627776")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeItems([]RawItem{{PriceCents: num("100"), Quantity: tt.qty}}, mustUSD(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := apierrors.CodeOf(err); got != apierrors.ErrCodeInvalidQuantity {
				t.Errorf("code = %s, want %s", got, apierrors.ErrCodeInvalidQuantity)
			}
			if !strings.Contains(err.Error(), `"Item 1"`) {
				t.Errorf("error %q does not name the item", err)
			}
		})
	}
}

func TestNormalizeItemsQuantityAtStripeMaximum(t *testing.T) {
	items, err := NormalizeItems([]RawItem{{PriceCents: num("100"), Quantity: num("999999")}}, mustUSD(t))
	if err != nil {
		t.Fatalf("NormalizeItems: %v", err)
	}
	if items[0].Quantity != 999999 {
		t.Errorf("quantity = %d, want 999999", items[0].Quantity)
	}
}

func TestNormalizeItemsPreservesOrderAndInput(t *testing.T) {
	raw := []RawItem{
		{Name: "B", PriceCents: num("200")},
		{Name: "A", PriceCents: num("100")},
		{Name: "C", PriceCents: num("300")},
	}
	before := append([]RawItem(nil), raw...)

	items, err := NormalizeItems(raw, mustUSD(t))
	if err != nil {
		t.Fatalf("NormalizeItems: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if !reflect.DeepEqual(names, []string{"B", "A", "C"}) {
		t.Errorf("order changed: %v", names)
	}
	if !reflect.DeepEqual(raw, before) {
		t.Error("NormalizeItems mutated its input")
	}
}

func TestNormalizeItemsCarriesImageAndAttributes(t *testing.T) {
	raw := []RawItem{{
		Name:       "Pill Tee",
		PriceCents: num("2500"),
		Image:      "/img/tee.png",
		Attributes: map[string]string{"size": "L", "color": "black"},
	}}
	items, err := NormalizeItems(raw, mustUSD(t))
	if err != nil {
		t.Fatalf("NormalizeItems: %v", err)
	}
	if items[0].ImageRef != "/img/tee.png" {
		t.Errorf("image ref = %q", items[0].ImageRef)
	}
	if items[0].Attributes["size"] != "L" {
		t.Errorf("attributes = %v", items[0].Attributes)
	}
}
