// Package chatapi is an in-process fake of the chat service REST API for
// tests. It serves a small subset of routes backed by in-memory channels,
// announces per-route rate-limit buckets the way the real API does, and
// records every request it receives.
//
//	api := chatapi.New(chatapi.Config{BucketLimit: 2})
//	testutil.T(t).Setup(api)
//	api.AddChannel("123456789")
//
//	ua, _ := useragent.New(useragent.Config{BaseURL: api.URL()})
//
// Routes:
//
//	GET    /channels/:id/messages   list messages (rate limited)
//	POST   /channels/:id/messages   create from JSON or multipart payload_json (rate limited)
//	DELETE /channels/:id            delete a channel
//	GET    /headers/:n              respond with n extra header fields
//	GET    /bytes/:n                respond with an n-byte body
//	GET    /echo-headers            echo request headers as JSON
//	GET    /duplicate-headers       204 with X-Duplicate sent twice
//	GET    /ratelimited             always answer with a global 429
//
// Unknown channels answer 404 {"message":"Unknown Channel","code":10003}.
// With Config.TLS set the server speaks HTTPS using certificates from
// testutil/tlstest.
package chatapi
