// Package useragent is the HTTP transport core of chatkit.
//
// A UserAgent builds requests against a base URL and a printf-style endpoint
// template, carries an ordered per-connection header set, executes the
// exchange through net/http and captures the response into an Info: a status
// code, a completion timestamp, a header arena with a fixed-size index of
// field/value spans, and the raw body. A Dispatch then routes the body to a
// success or error callback.
//
// # Basic Usage
//
//	ua, err := useragent.New(useragent.Config{
//	    BaseURL: "https://chat.example.com/api/v10",
//	    Token:   os.Getenv("BOT_TOKEN"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer ua.Close()
//
//	var info useragent.Info
//	defer info.Cleanup()
//	err = ua.Run(ctx, &info, &useragent.Dispatch{
//	    OnSuccess: func(body []byte) { ... },
//	    OnError:   func(body []byte) { ... },
//	}, nil, useragent.MethodGet, "/channels/%d/messages", channelID)
//
// # Concurrency
//
// A UserAgent is not safe for concurrent use. Give every worker its own
// handle with Clone; clones share nothing with the original.
//
// # Pacing
//
// Block arms a one-shot delay that the next Run sleeps through before it
// sends anything. Rate-limit trackers use it to hold back a single handle
// without touching its clones.
package useragent
