package ratelimit

import (
	"strings"
	"testing"
	"time"
)

type headers map[string]string

func (h headers) RespHeaderField(field string) []byte {
	for k, v := range h {
		if strings.EqualFold(k, field) {
			return []byte(v)
		}
	}
	return nil
}

type blocker struct {
	waits []time.Duration
}

func (b *blocker) Block(wait time.Duration) { b.waits = append(b.waits, wait) }

type clock struct{ t time.Time }

func (c *clock) now() time.Time           { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(t *testing.T, cfg Config) (*Tracker, *clock) {
	t.Helper()
	tr, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr.now = c.now
	return tr, c
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.GlobalRate != 50 || cfg.GlobalBurst != 50 {
		t.Errorf("defaults = %v/%d, want 50/50", cfg.GlobalRate, cfg.GlobalBurst)
	}
	if err := (&Config{GlobalRate: -1}).Validate(); err == nil {
		t.Error("expected negative rate to fail validation")
	}
}

func TestRoute(t *testing.T) {
	r := NewRoute("GET", "/channels/%d/messages", 123)
	if r.Major != "123" {
		t.Errorf("major = %q", r.Major)
	}
	if r.String() != "GET /channels/%d/messages [123]" {
		t.Errorf("String() = %q", r.String())
	}
	if NewRoute("GET", "/gateway", nil).String() != "GET /gateway" {
		t.Error("route without major should omit brackets")
	}
}

func TestUnknownRouteHasNoDelay(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	var b blocker
	if d := tr.Pace(&b, NewRoute("GET", "/channels/%d", 1)); d != 0 {
		t.Errorf("Pace() = %v, want 0", d)
	}
	if len(b.waits) != 0 {
		t.Errorf("unexpected block %v", b.waits)
	}
}

func TestExhaustedBucketDelays(t *testing.T) {
	tr, clk := newTestTracker(t, Config{})
	r := NewRoute("POST", "/channels/%d/messages", 7)

	tr.Update(r, headers{
		HeaderBucket:     "abc",
		HeaderRemaining:  "0",
		HeaderResetAfter: "1.500",
	})

	b, ok := tr.Bucket(r)
	if !ok || b.Hash != "abc" || b.Remaining != 0 {
		t.Fatalf("bucket = %+v, %v", b, ok)
	}
	if d := tr.Delay(r); d != 1500*time.Millisecond {
		t.Errorf("Delay() = %v, want 1.5s", d)
	}

	var blk blocker
	tr.Pace(&blk, r)
	if len(blk.waits) != 1 || blk.waits[0] != 1500*time.Millisecond {
		t.Errorf("waits = %v, want [1.5s]", blk.waits)
	}

	clk.advance(2 * time.Second)
	if d := tr.Delay(r); d != 0 {
		t.Errorf("Delay() after reset = %v, want 0", d)
	}
}

func TestRemainingBudgetIsConsumedOptimistically(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	r := NewRoute("GET", "/channels/%d/messages", 7)
	tr.Update(r, headers{HeaderBucket: "h", HeaderRemaining: "1", HeaderResetAfter: "5"})

	var blk blocker
	if d := tr.Pace(&blk, r); d != 0 {
		t.Fatalf("first Pace() = %v, want 0", d)
	}
	if d := tr.Pace(&blk, r); d != 5*time.Second {
		t.Errorf("second Pace() = %v, want 5s", d)
	}
}

func TestMajorParameterSplitsBuckets(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	a := NewRoute("GET", "/channels/%d/messages", 1)
	b := NewRoute("GET", "/channels/%d/messages", 2)

	tr.Update(a, headers{HeaderBucket: "h", HeaderRemaining: "0", HeaderResetAfter: "3"})
	if tr.Delay(a) == 0 {
		t.Error("expected delay on exhausted channel 1")
	}
	if d := tr.Delay(b); d != 0 {
		t.Errorf("channel 2 should not be delayed, got %v", d)
	}
}

func TestGlobalLimit(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	hit := NewRoute("GET", "/ratelimited", nil)
	other := NewRoute("GET", "/channels/%d/messages", 9)

	tr.Update(hit, headers{HeaderGlobal: "true", HeaderRetryAfter: "0.250"})
	if d := tr.Delay(other); d != 250*time.Millisecond {
		t.Errorf("Delay() = %v, want 250ms on every route", d)
	}
}

func TestRetryAfterExhaustsBucket(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	r := NewRoute("GET", "/channels/%d/messages", 3)

	tr.Update(r, headers{HeaderBucket: "h", HeaderRemaining: "2", HeaderRetryAfter: "2"})
	if d := tr.Delay(r); d != 2*time.Second {
		t.Errorf("Delay() = %v, want 2s", d)
	}
}

func TestResponseWithoutHeadersIsIgnored(t *testing.T) {
	tr, _ := newTestTracker(t, Config{})
	r := NewRoute("GET", "/users/@me", nil)
	tr.Update(r, headers{})
	if _, ok := tr.Bucket(r); ok {
		t.Error("expected no bucket for a response without rate-limit headers")
	}
}

func TestGlobalLimiterSpacesRequests(t *testing.T) {
	var limited []Route
	tr, _ := newTestTracker(t, Config{
		GlobalRate:  1,
		GlobalBurst: 1,
		OnLimit:     func(r Route, _ time.Duration) { limited = append(limited, r) },
	})
	r := NewRoute("GET", "/gateway", nil)

	var blk blocker
	if d := tr.Pace(&blk, r); d != 0 {
		t.Fatalf("first Pace() = %v, want 0", d)
	}
	if d := tr.Pace(&blk, r); d != time.Second {
		t.Errorf("second Pace() = %v, want 1s", d)
	}
	if len(limited) != 1 {
		t.Errorf("OnLimit called %d times, want 1", len(limited))
	}
}
