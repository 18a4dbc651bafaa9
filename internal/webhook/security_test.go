package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	const secret = "webhook-secret"
	payload := []byte(`{"ref":"refs/heads/main"}`)
	v := NewSecurityValidator(SecurityConfig{Secret: secret})

	t.Run("valid signature accepted", func(t *testing.T) {
		if err := v.ValidateSignature(payload, sign(secret, payload)); err != nil {
			t.Errorf("valid signature rejected: %v", err)
		}
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		sig := sign(secret, payload)
		tampered := append([]byte{}, payload...)
		tampered[len(tampered)-2] = 'x'
		if err := v.ValidateSignature(tampered, sig); err == nil {
			t.Error("signature over different body must fail")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		if err := v.ValidateSignature(payload, sign("other-secret", payload)); err == nil {
			t.Error("signature from a different secret must fail")
		}
	})

	t.Run("missing prefix rejected", func(t *testing.T) {
		sig := sign(secret, payload)
		if err := v.ValidateSignature(payload, sig[len("sha256="):]); err == nil {
			t.Error("signature without sha256= prefix must fail")
		}
	})

	t.Run("invalid hex rejected", func(t *testing.T) {
		if err := v.ValidateSignature(payload, "sha256=zzzz"); err == nil {
			t.Error("non-hex signature must fail")
		}
	})

	t.Run("empty signature rejected", func(t *testing.T) {
		if err := v.ValidateSignature(payload, ""); err == nil {
			t.Error("empty signature must fail when a secret is configured")
		}
	})
}

func TestValidateSignatureNoSecret(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{})
	if v.SecretConfigured() {
		t.Error("SecretConfigured() must be false with empty secret")
	}
	if err := v.ValidateSignature([]byte("anything"), ""); err != nil {
		t.Errorf("verification must be skipped with no secret, got %v", err)
	}
}

func TestRateLimiter(t *testing.T) {
	// 60 req/min = 1 req/s with burst 6
	rl := newRateLimiter(60)

	allowed := 0
	for i := 0; i < 20; i++ {
		if err := rl.Allow("github"); err == nil {
			allowed++
		}
	}
	if allowed >= 20 {
		t.Error("rate limiter never throttled 20 immediate requests")
	}
	if allowed == 0 {
		t.Error("rate limiter must allow an initial burst")
	}

	// Separate sources have separate buckets
	if err := rl.Allow("other-source"); err != nil {
		t.Errorf("fresh source must be allowed: %v", err)
	}
}

func TestRateLimiterSmallBudgetBurst(t *testing.T) {
	// Budgets under 10/min keep the burst floor of one immediate request.
	rl := newRateLimiter(5)

	if err := rl.Allow("github"); err != nil {
		t.Fatalf("first request within budget must pass: %v", err)
	}
	if err := rl.Allow("github"); err == nil {
		t.Error("immediate second request must exceed the burst for a 5/min budget")
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		if err := rl.Allow("github"); err != nil {
			t.Fatalf("disabled limiter must always allow, got %v", err)
		}
	}
}
