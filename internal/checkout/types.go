// Package checkout assembles provider-agnostic checkout requests from a
// validated cart and drives them through a payment session provider.
package checkout

import (
	"context"
	"strings"

	"github.com/TheWizler/unusualpills-site/internal/money"
	"github.com/TheWizler/unusualpills-site/internal/promo"
)

// RequestContext carries the pieces of the incoming HTTP request the pipeline
// needs: the method, the raw body, and the headers used for redirect
// resolution. Keeping it a plain struct keeps the core testable without
// net/http.
type RequestContext struct {
	Method string
	Body   []byte
	Header map[string]string // lowercase header names; at minimum "origin" and "host"
}

// HeaderValue returns a header by name, case-insensitively.
func (rc RequestContext) HeaderValue(name string) string {
	if v, ok := rc.Header[strings.ToLower(name)]; ok {
		return v
	}
	for k, v := range rc.Header {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// LineItem is a priced line-item descriptor in provider-agnostic form.
type LineItem struct {
	Name          string
	UnitAmount    money.Money
	Quantity      int64
	AdjustableMin int64 // customer may reduce quantity down to this at checkout
	ImageURLs     []string
	Metadata      map[string]string
}

// Request is the finished checkout request handed to the session provider.
// Discount and AllowPromotionCodes are mutually exclusive: the server either
// applies its own computed discount or lets the customer enter a promo code,
// never both.
type Request struct {
	LineItems           []LineItem
	Discount            *promo.Discount
	CouponID            string // provider-side coupon reference for Discount
	AllowPromotionCodes bool
	ShippingCountries   []string
	SuccessURL          string
	CancelURL           string
}

// Session is the provider's answer: a hosted payment flow the customer gets
// redirected to.
type Session struct {
	ID  string
	URL string
}

// SessionProvider is the payment collaborator. CreateCoupon materializes a
// computed discount as a redeemable coupon reference before the session is
// created; both calls may fail with a *ProviderError.
type SessionProvider interface {
	CreateCoupon(ctx context.Context, d promo.Discount) (string, error)
	CreateSession(ctx context.Context, req Request) (Session, error)
}

// ProviderError is a failure reported by the session provider, with optional
// machine-readable type and code.
type ProviderError struct {
	Message string
	Type    string
	Code    string
}

func (e *ProviderError) Error() string {
	return e.Message
}
