package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatal(err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}

	res, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatal(err)
	}
	if res.Allowed {
		t.Fatalf("4th hit must be rejected")
	}
	if res.RetryAfter <= 0 {
		t.Fatalf("RetryAfter must be positive, got %v", res.RetryAfter)
	}

	// otra key no comparte ventana
	res, err = l.Allow(ctx, "5.6.7.8")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Allowed {
		t.Fatalf("different key must have its own window")
	}
}
