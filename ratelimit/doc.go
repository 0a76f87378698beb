// Package ratelimit paces chat API requests from the X-RateLimit-* headers
// the server announces.
//
// A Tracker maps routes (method, endpoint template, major parameter) to the
// bucket hashes the server reports, remembers each bucket's remaining
// budget and reset time, and honours global 429s. A token-bucket limiter
// from golang.org/x/time/rate caps the overall request rate on top.
//
// Before a request, Pace arms the user agent's one-shot delay; after it,
// Update feeds the response headers back:
//
//	route := ratelimit.NewRoute("GET", "/channels/%d/messages", channelID)
//	tracker.Pace(ua, route)
//	err := ua.Run(ctx, &info, dispatch, nil, useragent.MethodGet, route.Template, channelID)
//	tracker.Update(route, &info)
//
// A Tracker is safe for concurrent use and is meant to be shared by every
// cloned user agent talking to the same API.
package ratelimit
