// Package rest sits between chat API domain code and the user agent.
//
// A Client pairs one useragent.UserAgent with a shared ratelimit.Tracker:
// Do paces the handle from the route's bucket, runs the request and feeds
// the response headers back to the tracker. JSON builds dispatch handlers
// that decode response bodies. SetRetry repeats requests that failed with
// a transport error, 429 or 5xx, waiting out the backoff on the handle.
//
// A Pool gives every worker goroutine its own cloned user agent, the only
// way to issue requests concurrently:
//
//	pool := rest.NewPool(rest.New(ua, tracker), 4)
//	defer pool.Close()
//	pool.Submit(func(c *rest.Client) {
//	    var info useragent.Info
//	    defer info.Cleanup()
//	    _ = c.Do(ctx, &info, nil, body, useragent.MethodPost, "/channels/%d/messages", id)
//	})
package rest
