package rest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/chatkit/ratelimit"
	"github.com/kbukum/chatkit/testutil"
	"github.com/kbukum/chatkit/testutil/chatapi"
	"github.com/kbukum/chatkit/useragent"
)

func setup(t *testing.T, cfg chatapi.Config) (*chatapi.Server, *Client) {
	t.Helper()
	api := chatapi.New(cfg)
	testutil.T(t).Setup(api)

	ua, err := useragent.New(useragent.Config{BaseURL: api.URL(), Token: "secret"})
	if err != nil {
		t.Fatalf("useragent.New: %v", err)
	}
	t.Cleanup(func() { _ = ua.Close() })

	tracker, err := ratelimit.New(ratelimit.Config{})
	if err != nil {
		t.Fatalf("ratelimit.New: %v", err)
	}
	return api, New(ua, tracker)
}

func TestDoDecodesJSON(t *testing.T) {
	api, c := setup(t, chatapi.Config{})
	api.AddChannel("100")

	var info useragent.Info
	defer info.Cleanup()

	var created chatapi.Message
	var apiErr APIError
	err := c.Do(context.Background(), &info, Expect(&created, &apiErr),
		[]byte(`{"content":"hello"}`), useragent.MethodPost, "/channels/%d/messages", 100)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if created.Content != "hello" || created.ChannelID != "100" || created.ID == "" {
		t.Errorf("unexpected message %+v", created)
	}
	if apiErr.Message != "" {
		t.Errorf("error handler should not fire, got %+v", apiErr)
	}

	var list []chatapi.Message
	if err := c.Do(context.Background(), &info, &useragent.Dispatch{OnSuccess: JSON(&list)},
		nil, useragent.MethodGet, "/channels/%d/messages", 100); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestDoErrorBody(t *testing.T) {
	_, c := setup(t, chatapi.Config{})

	var info useragent.Info
	var apiErr APIError
	var out map[string]any
	err := c.Do(context.Background(), &info, Expect(&out, &apiErr), nil, useragent.MethodDelete, "/channels/%d", 404)
	if !useragent.IsHTTP(err) || useragent.StatusOf(err) != useragent.StatusNotFound {
		t.Fatalf("expected HTTP 404 error, got %v", err)
	}
	if apiErr.Message != "Unknown Channel" || apiErr.Code != chatapi.CodeUnknownChannel {
		t.Errorf("unexpected api error %+v", apiErr)
	}
	if out != nil {
		t.Errorf("success handler should not fire, got %v", out)
	}
}

func TestDoPacesExhaustedBucket(t *testing.T) {
	api, c := setup(t, chatapi.Config{BucketLimit: 1, ResetAfter: 200 * time.Millisecond})
	api.AddChannel("5")

	var info useragent.Info
	if err := c.Do(context.Background(), &info, nil, nil, useragent.MethodGet, "/channels/%d/messages", 5); err != nil {
		t.Fatalf("first Do: %v", err)
	}
	route := ratelimit.NewRoute("GET", "/channels/%d/messages", 5)
	if b, ok := c.Tracker().Bucket(route); !ok || b.Remaining != 0 {
		t.Fatalf("expected exhausted bucket, got %+v (%v)", b, ok)
	}

	start := time.Now()
	if err := c.Do(context.Background(), &info, nil, nil, useragent.MethodGet, "/channels/%d/messages", 5); err != nil {
		t.Fatalf("second Do: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 150*time.Millisecond {
		t.Errorf("second Do took %v, expected it to wait for the bucket reset", elapsed)
	}
}

func TestDoGlobalLimit(t *testing.T) {
	_, c := setup(t, chatapi.Config{GlobalRetryAfter: 300 * time.Millisecond})

	var info useragent.Info
	err := c.Do(context.Background(), &info, nil, nil, useragent.MethodGet, "/ratelimited")
	if useragent.StatusOf(err) != useragent.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if d := c.Tracker().Delay(ratelimit.NewRoute("GET", "/channels/%d/messages", 1)); d <= 0 {
		t.Errorf("expected a global delay on every route, got %v", d)
	}
}

func TestDoWithoutTracker(t *testing.T) {
	api, c := setup(t, chatapi.Config{})
	api.AddChannel("1")
	c = New(c.UserAgent(), nil)

	var info useragent.Info
	if err := c.Do(context.Background(), &info, nil, nil, useragent.MethodGet, "/channels/%d/messages", 1); err != nil {
		t.Fatalf("Do: %v", err)
	}
}

func TestJSONErr(t *testing.T) {
	var out struct{ N int }
	var err error

	JSONErr(&out, &err)([]byte(`{"N":3}`))
	if err != nil || out.N != 3 {
		t.Fatalf("out=%+v err=%v", out, err)
	}
	JSONErr(&out, &err)([]byte(`{`))
	if err == nil {
		t.Error("expected decode error")
	}

	err = nil
	JSONErr(&out, &err)(nil)
	if err != nil {
		t.Errorf("empty body should not error, got %v", err)
	}
}

func TestAPIErrorMessage(t *testing.T) {
	e := &APIError{Code: 10003, Message: "Unknown Channel"}
	if e.Error() != "chat api: Unknown Channel (code 10003)" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestPool(t *testing.T) {
	api, c := setup(t, chatapi.Config{BucketLimit: 100})
	api.AddChannel("55")

	pool := NewPool(c, 3)
	if pool.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", pool.Size())
	}

	var mu sync.Mutex
	seen := map[*useragent.UserAgent]bool{}
	var failures []error

	const jobs = 12
	for i := range jobs {
		err := pool.Submit(func(w *Client) {
			var info useragent.Info
			defer info.Cleanup()
			body := []byte(fmt.Sprintf(`{"content":"msg %d"}`, i))
			err := w.Do(context.Background(), &info, nil, body, useragent.MethodPost, "/channels/%d/messages", 55)

			mu.Lock()
			defer mu.Unlock()
			seen[w.UserAgent()] = true
			if err != nil {
				failures = append(failures, err)
			}
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("job failures: %v", failures)
	}
	if got := len(api.Messages("55")); got != jobs {
		t.Errorf("stored %d messages, want %d", got, jobs)
	}
	if seen[c.UserAgent()] {
		t.Error("pool must not run jobs on the base user agent")
	}
	if err := pool.Submit(func(*Client) {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit after Close = %v, want ErrPoolClosed", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
