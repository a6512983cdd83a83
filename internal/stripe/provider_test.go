package stripe

import (
	"errors"
	"fmt"
	"testing"
	"time"

	stripeapi "github.com/stripe/stripe-go/v72"

	"github.com/TheWizler/unusualpills-site/internal/checkout"
	"github.com/TheWizler/unusualpills-site/internal/config"
)

func TestNewProviderRequiresKey(t *testing.T) {
	if _, err := NewProvider(config.StripeConfig{SecretKey: "  "}, time.Hour, nil); err == nil {
		t.Fatal("expected error for empty secret key")
	}
	if _, err := NewProvider(config.StripeConfig{SecretKey: "sk_test_123", Mode: "test"}, time.Hour, nil); err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
}

func TestNewProviderDefaultsCouponTTL(t *testing.T) {
	p, err := NewProvider(config.StripeConfig{SecretKey: "sk_test_123", Mode: "test"}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.couponTTL != time.Hour {
		t.Errorf("couponTTL = %v, want 1h", p.couponTTL)
	}
}

func TestTranslateErr(t *testing.T) {
	t.Run("stripe error with message", func(t *testing.T) {
		in := &stripeapi.Error{
			Msg:  "No such coupon",
			Type: stripeapi.ErrorTypeInvalidRequest,
			Code: stripeapi.ErrorCodeResourceMissing,
		}
		out := translateErr("stripe coupon error", in)

		var perr *checkout.ProviderError
		if !errors.As(out, &perr) {
			t.Fatalf("got %T, want *checkout.ProviderError", out)
		}
		if perr.Message != "No such coupon" {
			t.Errorf("message = %q", perr.Message)
		}
		if perr.Type != string(stripeapi.ErrorTypeInvalidRequest) {
			t.Errorf("type = %q", perr.Type)
		}
		if perr.Code != string(stripeapi.ErrorCodeResourceMissing) {
			t.Errorf("code = %q", perr.Code)
		}
	})

	t.Run("stripe error without message uses fallback", func(t *testing.T) {
		out := translateErr("stripe session error", &stripeapi.Error{Type: stripeapi.ErrorTypeAPI})

		var perr *checkout.ProviderError
		if !errors.As(out, &perr) {
			t.Fatalf("got %T, want *checkout.ProviderError", out)
		}
		if perr.Message != "stripe session error" {
			t.Errorf("message = %q", perr.Message)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		out := translateErr("stripe session error", fmt.Errorf("connection refused"))

		var perr *checkout.ProviderError
		if !errors.As(out, &perr) {
			t.Fatalf("got %T, want *checkout.ProviderError", out)
		}
		if perr.Message != "connection refused" || perr.Type != "" || perr.Code != "" {
			t.Errorf("unexpected provider error: %+v", perr)
		}
	})
}
