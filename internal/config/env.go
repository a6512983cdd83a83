package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over YAML configuration. All env vars
// use the UP_ prefix for namespace isolation; STRIPE_SECRET_KEY and SITE_URL
// are also honored bare because the Netlify deployment used those names.
func (c *Config) applyEnvOverrides() {
	// Server config
	setIfEnv(&c.Server.Address, "UP_SERVER_ADDRESS")

	// Logging config
	setIfEnv(&c.Logging.Level, "UP_LOG_LEVEL")
	setIfEnv(&c.Logging.Format, "UP_LOG_FORMAT")
	setIfEnv(&c.Logging.Environment, "UP_ENVIRONMENT")

	// Stripe config (legacy bare names first, prefixed names win)
	setIfEnv(&c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setIfEnv(&c.Stripe.SecretKey, "UP_STRIPE_SECRET_KEY")
	setIfEnv(&c.Stripe.Mode, "UP_STRIPE_MODE")

	// Checkout config
	setIfEnv(&c.Checkout.SiteURL, "SITE_URL")
	setIfEnv(&c.Checkout.SiteURL, "UP_SITE_URL")
	setIfEnv(&c.Checkout.DefaultHost, "UP_DEFAULT_HOST")
	setIfEnv(&c.Checkout.DefaultCurrency, "UP_DEFAULT_CURRENCY")
	setDurationIfEnv(&c.Checkout.CouponTTL, "UP_COUPON_TTL")
	setIntIfEnv(&c.Checkout.Promo.GroupSize, "UP_PROMO_GROUP_SIZE")
	setIntIfEnv(&c.Checkout.Promo.FreePerGroup, "UP_PROMO_FREE_PER_GROUP")
	setIfEnv(&c.Checkout.Promo.CouponName, "UP_PROMO_COUPON_NAME")
	if v := os.Getenv("UP_SHIPPING_COUNTRIES"); v != "" {
		var countries []string
		for _, code := range strings.Split(v, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				countries = append(countries, code)
			}
		}
		if len(countries) > 0 {
			c.Checkout.ShippingCountries = countries
		}
	}

	// CORS origins (comma separated)
	if v := os.Getenv("UP_CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSAllowedOrigins = origins
	}

	// Rate limiting
	setBoolIfEnv(&c.RateLimit.GlobalEnabled, "UP_RATE_LIMIT_GLOBAL_ENABLED")
	setIntIfEnv(&c.RateLimit.GlobalLimit, "UP_RATE_LIMIT_GLOBAL_LIMIT")
	setBoolIfEnv(&c.RateLimit.PerIPEnabled, "UP_RATE_LIMIT_PER_IP_ENABLED")
	setIntIfEnv(&c.RateLimit.PerIPLimit, "UP_RATE_LIMIT_PER_IP_LIMIT")

	// Circuit breaker
	setBoolIfEnv(&c.CircuitBreaker.Enabled, "UP_CIRCUIT_BREAKER_ENABLED")
}

// setIfEnv sets a string pointer to the environment variable value if it exists.
func setIfEnv(target *string, key string) {
	if val := os.Getenv(key); val != "" {
		*target = val
	}
}

// setBoolIfEnv sets a boolean pointer from an environment variable.
// Accepts "1", "true", "TRUE", "True" as true values; "0", "false" as false.
func setBoolIfEnv(target *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v == "1" || strings.EqualFold(v, "true")
	}
}

// setIntIfEnv sets an int pointer from an environment variable.
func setIntIfEnv(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

// setDurationIfEnv sets a Duration pointer from an environment variable.
// Uses time.ParseDuration to parse values like "5m", "120s", "1h30m".
func setDurationIfEnv(target *Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if dur, err := time.ParseDuration(v); err == nil {
			*target = Duration{Duration: dur}
		}
	}
}
