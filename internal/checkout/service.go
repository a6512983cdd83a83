package checkout

import (
	"context"
	"errors"

	"github.com/TheWizler/unusualpills-site/internal/cart"
	"github.com/TheWizler/unusualpills-site/internal/config"
	apierrors "github.com/TheWizler/unusualpills-site/internal/errors"
	"github.com/TheWizler/unusualpills-site/internal/logger"
	"github.com/TheWizler/unusualpills-site/internal/metrics"
	"github.com/TheWizler/unusualpills-site/internal/promo"
)

// Service runs the checkout pipeline per request: validate, normalize,
// compute the promotion, build the request, and hand it to the session
// provider. It holds no mutable state; every invocation is independent.
type Service struct {
	cfg      config.CheckoutConfig
	rule     promo.Rule
	builder  Builder
	provider SessionProvider
	metrics  *metrics.Metrics
}

// NewService wires the pipeline against a session provider. The metrics
// collector may be nil.
func NewService(cfg config.CheckoutConfig, provider SessionProvider, metricsCollector *metrics.Metrics) *Service {
	rule := promo.Rule{
		GroupSize:    cfg.Promo.GroupSize,
		FreePerGroup: cfg.Promo.FreePerGroup,
		CouponName:   cfg.Promo.CouponName,
	}
	if rule.GroupSize <= 0 {
		rule = promo.DefaultRule()
	}
	return &Service{
		cfg:      cfg,
		rule:     rule,
		builder:  NewBuilder(cfg),
		provider: provider,
		metrics:  metricsCollector,
	}
}

// CreateSession validates the cart and creates a provider checkout session.
// All validation failures abort before any provider call; the provider is
// never retried here.
func (s *Service) CreateSession(ctx context.Context, rc RequestContext) (Session, error) {
	log := logger.FromContext(ctx)

	raw, currency, err := cart.ValidateRequest(rc.Method, rc.Body, s.cfg.DefaultCurrency)
	if err != nil {
		return Session{}, err
	}
	items, err := cart.NormalizeItems(raw, currency)
	if err != nil {
		return Session{}, err
	}

	log.Debug().
		RawJSON("payload", debugPayload(rc.Body)).
		Int("items", len(items)).
		Str("currency", currency.Code).
		Msg("checkout.cart_validated")
	s.metrics.ObserveCartItems(len(items))

	discount := s.rule.Compute(items, currency)
	req := s.builder.Build(items, discount, rc)

	if discount != nil {
		couponID, err := s.provider.CreateCoupon(ctx, *discount)
		if err != nil {
			return Session{}, providerFailure("create discount coupon", err)
		}
		req.CouponID = couponID
		s.metrics.ObserveDiscount(discount.Amount.Atomic)
		log.Info().
			Str("coupon_id", couponID).
			Str("amount", discount.Amount.String()).
			Msg("checkout.discount_coupon_created")
	}

	sess, err := s.provider.CreateSession(ctx, req)
	if err != nil {
		return Session{}, providerFailure("create checkout session", err)
	}
	return sess, nil
}

// Rule exposes the active promotion rule, mainly for diagnostics.
func (s *Service) Rule() promo.Rule {
	return s.rule
}

// debugPayload renders the raw request body for debug logging. The body has
// already passed JSON validation by the time it is logged; an absent body is
// the empty-object default the validator used.
func debugPayload(body []byte) []byte {
	if len(body) == 0 {
		return []byte("{}")
	}
	return body
}

// providerFailure translates a provider error into a coded, user-facing error
// combining the local context with the provider's own detail message.
func providerFailure(op string, err error) error {
	var perr *ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		return apierrors.New(apierrors.ErrCodeStripeError, op+": "+perr.Message)
	}
	return apierrors.New(apierrors.ErrCodeStripeError, op+": "+err.Error())
}
