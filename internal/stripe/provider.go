// Package stripe implements the payment session provider on the Stripe API:
// one-time coupons for computed discounts and hosted Checkout sessions.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/coupon"

	"github.com/TheWizler/unusualpills-site/internal/checkout"
	"github.com/TheWizler/unusualpills-site/internal/circuitbreaker"
	"github.com/TheWizler/unusualpills-site/internal/config"
	"github.com/TheWizler/unusualpills-site/internal/promo"
)

// Provider wraps stripe-go operations used by the checkout service.
type Provider struct {
	cfg       config.StripeConfig
	couponTTL time.Duration
	breaker   *circuitbreaker.Breaker
}

// NewProvider sets up stripe-go with the provided credentials. The coupon TTL
// bounds how long an auto-created discount coupon stays redeemable.
func NewProvider(cfg config.StripeConfig, couponTTL time.Duration, breaker *circuitbreaker.Breaker) (*Provider, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("stripe: secret key required")
	}
	stripeapi.Key = cfg.SecretKey
	if couponTTL <= 0 {
		couponTTL = time.Hour
	}
	return &Provider{cfg: cfg, couponTTL: couponTTL, breaker: breaker}, nil
}

// CreateCoupon materializes a computed discount as a single-use Stripe coupon
// and returns its ID. The coupon applies once to the whole order and expires
// after the configured TTL so abandoned carts do not leave live discounts
// behind.
func (p *Provider) CreateCoupon(ctx context.Context, d promo.Discount) (string, error) {
	params := &stripeapi.CouponParams{
		AmountOff:      stripeapi.Int64(d.Amount.Atomic),
		Currency:       stripeapi.String(d.Amount.Asset.StripeCurrency()),
		Duration:       stripeapi.String(string(stripeapi.CouponDurationOnce)),
		MaxRedemptions: stripeapi.Int64(1),
		Name:           stripeapi.String(d.Name),
		RedeemBy:       stripeapi.Int64(time.Now().Add(p.couponTTL).Unix()),
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return coupon.New(params)
	})
	if err != nil {
		return "", translateErr("stripe coupon error", err)
	}
	return result.(*stripeapi.Coupon).ID, nil
}

// CreateSession builds a Stripe Checkout session from the provider-agnostic
// request and returns the hosted redirect.
func (p *Provider) CreateSession(ctx context.Context, req checkout.Request) (checkout.Session, error) {
	lineItems := make([]*stripeapi.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, it := range req.LineItems {
		productData := &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripeapi.String(it.Name),
		}
		if len(it.ImageURLs) > 0 {
			productData.Images = stripeapi.StringSlice(it.ImageURLs)
		}
		if len(it.Metadata) > 0 {
			productData.Metadata = it.Metadata
		}

		lineItems = append(lineItems, &stripeapi.CheckoutSessionLineItemParams{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripeapi.String(it.UnitAmount.Asset.StripeCurrency()),
				ProductData: productData,
				UnitAmount:  stripeapi.Int64(it.UnitAmount.Atomic),
			},
			Quantity: stripeapi.Int64(it.Quantity),
			AdjustableQuantity: &stripeapi.CheckoutSessionLineItemAdjustableQuantityParams{
				Enabled: stripeapi.Bool(true),
				Minimum: stripeapi.Int64(it.AdjustableMin),
			},
		})
	}

	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripeapi.String(req.SuccessURL),
		CancelURL:  stripeapi.String(req.CancelURL),
		ShippingAddressCollection: &stripeapi.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripeapi.StringSlice(req.ShippingCountries),
		},
	}

	// Either our computed coupon or customer-entered promotion codes, never both.
	if req.CouponID != "" {
		params.Discounts = []*stripeapi.CheckoutSessionDiscountParams{
			{Coupon: stripeapi.String(req.CouponID)},
		}
	} else if req.AllowPromotionCodes {
		params.AllowPromotionCodes = stripeapi.Bool(true)
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return session.New(params)
	})
	if err != nil {
		return checkout.Session{}, translateErr("stripe session error", err)
	}
	s := result.(*stripeapi.CheckoutSession)
	return checkout.Session{ID: s.ID, URL: s.URL}, nil
}

// translateErr normalises stripe-go failures into the provider error shape
// the checkout service expects, preserving Stripe's type and code when
// available.
func translateErr(fallback string, err error) error {
	var sErr *stripeapi.Error
	if errors.As(err, &sErr) {
		msg := sErr.Msg
		if msg == "" {
			msg = fallback
		}
		return &checkout.ProviderError{
			Message: msg,
			Type:    string(sErr.Type),
			Code:    string(sErr.Code),
		}
	}
	return &checkout.ProviderError{Message: err.Error()}
}
