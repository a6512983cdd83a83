package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/TheWizler/unusualpills-site/internal/money"
)

// finalize applies defaults and validates the configuration. A missing Stripe
// secret key is a configuration error: the server cannot build sessions
// without credentials and should fail at startup, not per request.
func (c *Config) finalize() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Environment == "" {
		c.Logging.Environment = "production"
	}
	if c.Stripe.Mode == "" {
		c.Stripe.Mode = "test"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Checkout.SuccessPath == "" {
		c.Checkout.SuccessPath = "/thanks.html?session_id={CHECKOUT_SESSION_ID}"
	}
	if c.Checkout.CancelPath == "" {
		c.Checkout.CancelPath = "/cart.html"
	}
	if c.Checkout.CouponTTL.Duration <= 0 {
		c.Checkout.CouponTTL = Duration{Duration: 1 * time.Hour}
	}

	if strings.TrimSpace(c.Stripe.SecretKey) == "" {
		return fmt.Errorf("config: stripe secret key is required (set STRIPE_SECRET_KEY)")
	}
	if c.Stripe.Mode != "test" && c.Stripe.Mode != "live" {
		return fmt.Errorf("config: stripe mode must be \"test\" or \"live\", got %q", c.Stripe.Mode)
	}

	if c.Checkout.SiteURL != "" {
		u, err := url.Parse(c.Checkout.SiteURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: site_url must be an absolute URL, got %q", c.Checkout.SiteURL)
		}
		c.Checkout.SiteURL = strings.TrimSuffix(c.Checkout.SiteURL, "/")
	}

	if _, err := money.ParseCurrency(c.Checkout.DefaultCurrency); err != nil {
		return fmt.Errorf("config: unsupported default currency %q", c.Checkout.DefaultCurrency)
	}

	if c.Checkout.Promo.GroupSize <= 0 {
		return fmt.Errorf("config: promo group_size must be positive, got %d", c.Checkout.Promo.GroupSize)
	}
	if c.Checkout.Promo.FreePerGroup <= 0 || c.Checkout.Promo.FreePerGroup > c.Checkout.Promo.GroupSize {
		return fmt.Errorf("config: promo free_per_group must be in 1..group_size, got %d", c.Checkout.Promo.FreePerGroup)
	}

	if len(c.Checkout.ShippingCountries) == 0 {
		return fmt.Errorf("config: at least one shipping country is required")
	}
	for _, code := range c.Checkout.ShippingCountries {
		if len(code) != 2 {
			return fmt.Errorf("config: shipping country codes must be two letters, got %q", code)
		}
	}

	return nil
}
