package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/TheWizler/unusualpills-site/internal/config"
)

func TestDisabledBreakerPassesThrough(t *testing.T) {
	b := New(config.CircuitBreakerConfig{Enabled: false}, zerolog.Nop())

	if got := b.State(); got != "disabled" {
		t.Errorf("State = %q, want disabled", got)
	}

	result, err := b.Execute(func() (interface{}, error) { return "ok", nil })
	if err != nil || result != "ok" {
		t.Errorf("Execute = %v, %v", result, err)
	}

	// Failures never trip a disabled breaker.
	for i := 0; i < 20; i++ {
		_, _ = b.Execute(func() (interface{}, error) { return nil, errors.New("boom") })
	}
	if _, err := b.Execute(func() (interface{}, error) { return "still ok", nil }); err != nil {
		t.Errorf("disabled breaker rejected a call: %v", err)
	}
}

func TestNilBreakerPassesThrough(t *testing.T) {
	var b *Breaker
	if got := b.State(); got != "disabled" {
		t.Errorf("State = %q, want disabled", got)
	}
	result, err := b.Execute(func() (interface{}, error) { return 42, nil })
	if err != nil || result != 42 {
		t.Errorf("Execute = %v, %v", result, err)
	}
}

func TestBreakerTripsOnConsecutiveFailures(t *testing.T) {
	b := New(config.CircuitBreakerConfig{
		Enabled:             true,
		MaxRequests:         1,
		Interval:            config.Duration{Duration: time.Minute},
		Timeout:             config.Duration{Duration: time.Minute},
		ConsecutiveFailures: 3,
	}, zerolog.Nop())

	boom := errors.New("stripe down")
	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (interface{}, error) { return nil, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want underlying failure", i, err)
		}
	}

	if got := b.State(); got != gobreaker.StateOpen.String() {
		t.Fatalf("State = %q, want open", got)
	}
	_, err := b.Execute(func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("open breaker err = %v, want ErrOpenState", err)
	}
}
