package checkout

import (
	"strings"

	"github.com/TheWizler/unusualpills-site/internal/cart"
	"github.com/TheWizler/unusualpills-site/internal/config"
	"github.com/TheWizler/unusualpills-site/internal/promo"
)

// Builder turns validated line items plus an optional discount into the final
// provider-agnostic Request.
type Builder struct {
	cfg config.CheckoutConfig
}

// NewBuilder creates a Builder for the given checkout configuration.
func NewBuilder(cfg config.CheckoutConfig) Builder {
	return Builder{cfg: cfg}
}

// Build assembles the checkout request. The discount, when present, disables
// customer-entered promotion codes; otherwise the customer may self-apply one.
func (b Builder) Build(items []cart.LineItem, discount *promo.Discount, rc RequestContext) Request {
	site := b.SiteURL(rc)

	lineItems := make([]LineItem, 0, len(items))
	for _, it := range items {
		li := LineItem{
			Name:          it.Name,
			UnitAmount:    it.UnitPrice,
			Quantity:      it.Quantity,
			AdjustableMin: 1,
			Metadata:      it.Attributes,
		}
		if it.ImageRef != "" {
			li.ImageURLs = []string{site + "/" + strings.TrimPrefix(it.ImageRef, "/")}
		}
		lineItems = append(lineItems, li)
	}

	req := Request{
		LineItems:         lineItems,
		ShippingCountries: append([]string(nil), b.cfg.ShippingCountries...),
		SuccessURL:        site + b.cfg.SuccessPath,
		CancelURL:         site + b.cfg.CancelPath,
	}
	if discount != nil {
		req.Discount = discount
	} else {
		req.AllowPromotionCodes = true
	}
	return req
}

// SiteURL resolves the redirect base origin. Fallback precedence: configured
// site URL, the request's Origin header, https://<Host>, then the default
// host.
func (b Builder) SiteURL(rc RequestContext) string {
	if b.cfg.SiteURL != "" {
		return strings.TrimSuffix(b.cfg.SiteURL, "/")
	}
	if origin := rc.HeaderValue("origin"); origin != "" {
		return strings.TrimSuffix(origin, "/")
	}
	if host := rc.HeaderValue("host"); host != "" {
		return "https://" + host
	}
	return "https://" + b.cfg.DefaultHost
}
