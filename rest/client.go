package rest

import (
	"context"

	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/ratelimit"
	"github.com/kbukum/chatkit/useragent"
)

// Client issues rate-limited requests through one user agent. Like the
// user agent it wraps, a Client must not be used concurrently.
type Client struct {
	ua     *useragent.UserAgent
	limits *ratelimit.Tracker
	retry  *RetryPolicy
	log    *logger.Logger
}

// New creates a Client. limits may be nil to disable pacing.
func New(ua *useragent.UserAgent, limits *ratelimit.Tracker) *Client {
	return &Client{ua: ua, limits: limits, log: logger.Get("rest")}
}

// UserAgent returns the wrapped user agent.
func (c *Client) UserAgent() *useragent.UserAgent { return c.ua }

// Tracker returns the rate-limit tracker, nil when pacing is off.
func (c *Client) Tracker() *ratelimit.Tracker { return c.limits }

// SetRetry makes Do repeat requests that fail in a way p.RetryIf accepts.
// The wait between attempts is armed on the user agent with Block, so a
// longer server-announced delay still wins.
func (c *Client) SetRetry(p RetryPolicy) {
	p = p.withDefaults()
	c.retry = &p
}

// Do runs a request like useragent.UserAgent.Run. The first argument, if
// any, is the route's major parameter. Responses, including non-2xx ones,
// update the tracker. With a retry policy, d fires once per attempt that
// got a response.
func (c *Client) Do(ctx context.Context, info *useragent.Info, d *useragent.Dispatch, body []byte, method useragent.Method, endpoint string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for attempt := 1; ; attempt++ {
		err := c.once(ctx, info, d, body, method, endpoint, args)
		if err == nil || c.retry == nil || attempt >= c.retry.MaxAttempts || !c.retry.RetryIf(err) || ctx.Err() != nil {
			return err
		}

		wait := c.retry.backoff(attempt)
		c.log.Debug("retrying request", logger.Fields(
			logger.FieldMethod, method.String(),
			logger.FieldURL, endpoint,
			logger.FieldWait, wait.Milliseconds(),
			logger.FieldError, err.Error(),
			"attempt", attempt,
		))
		if c.retry.OnRetry != nil {
			c.retry.OnRetry(attempt, err, wait)
		}
		c.ua.Block(wait)
	}
}

func (c *Client) once(ctx context.Context, info *useragent.Info, d *useragent.Dispatch, body []byte, method useragent.Method, endpoint string, args []any) error {
	if c.limits == nil {
		return c.ua.VRun(ctx, info, d, body, method, endpoint, args)
	}

	var major any
	if len(args) > 0 {
		major = args[0]
	}
	route := ratelimit.NewRoute(method.String(), endpoint, major)
	c.limits.Pace(c.ua, route)

	err := c.ua.VRun(ctx, info, d, body, method, endpoint, args)
	if err == nil || useragent.IsHTTP(err) {
		c.limits.Update(route, info)
	}
	if useragent.StatusOf(err) == useragent.StatusTooManyRequests {
		c.log.Warn("rate limited", logger.Fields(
			logger.FieldRoute, route.String(),
			logger.FieldRequestID, info.ID.String(),
		))
	}
	return err
}
