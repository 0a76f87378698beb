package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kbukum/chatkit/logger"
)

// Response headers read by Update.
const (
	HeaderBucket     = "X-RateLimit-Bucket"
	HeaderRemaining  = "X-RateLimit-Remaining"
	HeaderResetAfter = "X-RateLimit-Reset-After"
	HeaderGlobal     = "X-RateLimit-Global"
	HeaderRetryAfter = "Retry-After"
)

// Route identifies a rate-limited endpoint. Requests that differ only in
// minor parameters share a route; the major parameter (channel, guild,
// webhook) splits buckets.
type Route struct {
	Method   string
	Template string
	Major    string
}

// NewRoute creates a route. major is formatted with %v; pass nil when the
// endpoint has no major parameter.
func NewRoute(method, template string, major any) Route {
	r := Route{Method: method, Template: template}
	if major != nil {
		r.Major = fmt.Sprint(major)
	}
	return r
}

func (r Route) key() string {
	return r.Method + " " + r.Template
}

// String returns "METHOD template [major]".
func (r Route) String() string {
	if r.Major == "" {
		return r.key()
	}
	return r.key() + " [" + r.Major + "]"
}

// Bucket is the server's view of one rate-limit bucket.
type Bucket struct {
	Hash string
	// Remaining is the request budget left in the window, -1 when unknown.
	Remaining int
	ResetAt   time.Time
}

// Blocker is implemented by *useragent.UserAgent.
type Blocker interface {
	Block(wait time.Duration)
}

// Response is implemented by *useragent.Info.
type Response interface {
	RespHeaderField(field string) []byte
}

// Tracker tracks buckets and the global limit.
type Tracker struct {
	cfg     Config
	limiter *rate.Limiter
	log     *logger.Logger
	now     func() time.Time

	mu          sync.Mutex
	hashes      map[string]string
	buckets     map[string]*Bucket
	globalUntil time.Time
}

// New creates a Tracker.
func New(cfg Config) (*Tracker, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.GlobalRate), cfg.GlobalBurst),
		log:     logger.Get(cfg.Name),
		now:     time.Now,
		hashes:  make(map[string]string),
		buckets: make(map[string]*Bucket),
	}, nil
}

// bucketKey identifies the bucket of r: the server's hash once known,
// otherwise the route itself.
func (t *Tracker) bucketKey(r Route) string {
	id, ok := t.hashes[r.key()]
	if !ok {
		id = r.key()
	}
	return id + "|" + r.Major
}

// Bucket returns a copy of the bucket serving r.
func (t *Tracker) Bucket(r Route) (Bucket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.buckets[t.bucketKey(r)]
	if !ok {
		return Bucket{}, false
	}
	return *b, true
}

// Delay returns how long a request on r must wait for its bucket or the
// global limit. It does not consume any budget.
func (t *Tracker) Delay(r Route) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay(r, t.now())
}

func (t *Tracker) delay(r Route, now time.Time) time.Duration {
	var d time.Duration
	if t.globalUntil.After(now) {
		d = t.globalUntil.Sub(now)
	}
	if b, ok := t.buckets[t.bucketKey(r)]; ok && b.Remaining == 0 && b.ResetAt.After(now) {
		d = max(d, b.ResetAt.Sub(now))
	}
	return d
}

// Pace reserves budget for one request on r and arms ua with the wait, if
// any. It returns the wait.
func (t *Tracker) Pace(ua Blocker, r Route) time.Duration {
	t.mu.Lock()
	now := t.now()
	wait := t.delay(r, now)
	wait = max(wait, t.limiter.ReserveN(now, 1).DelayFrom(now))
	if b, ok := t.buckets[t.bucketKey(r)]; ok {
		switch {
		case !b.ResetAt.After(now):
			b.Remaining = -1
		case b.Remaining > 0:
			b.Remaining--
		}
	}
	t.mu.Unlock()

	if wait > 0 {
		t.log.Debug("pacing request", logger.Fields(logger.FieldRoute, r.String(), logger.FieldWait, wait.Milliseconds()))
		if t.cfg.OnLimit != nil {
			t.cfg.OnLimit(r, wait)
		}
		ua.Block(wait)
	}
	return wait
}

// Update records the rate-limit headers of a response on r.
func (t *Tracker) Update(r Route, resp Response) {
	hash := string(resp.RespHeaderField(HeaderBucket))
	remaining, hasRemaining := parseInt(resp.RespHeaderField(HeaderRemaining))
	resetAfter, hasReset := parseSeconds(resp.RespHeaderField(HeaderResetAfter))
	retryAfter, hasRetry := parseSeconds(resp.RespHeaderField(HeaderRetryAfter))
	global := strings.EqualFold(string(resp.RespHeaderField(HeaderGlobal)), "true")

	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()

	if global && hasRetry {
		t.globalUntil = now.Add(retryAfter)
		t.log.Warn("global rate limit hit", logger.Fields(logger.FieldRoute, r.String(), logger.FieldWait, retryAfter.Milliseconds()))
		return
	}

	if hash != "" {
		t.hashes[r.key()] = hash
	}
	if !hasRemaining && !hasReset && !hasRetry {
		return
	}

	key := t.bucketKey(r)
	b, ok := t.buckets[key]
	if !ok {
		b = &Bucket{Hash: hash, Remaining: -1}
		t.buckets[key] = b
	}
	if hash != "" {
		b.Hash = hash
	}
	if hasRemaining {
		b.Remaining = remaining
	}
	if hasReset {
		b.ResetAt = now.Add(resetAfter)
	}
	if hasRetry {
		b.Remaining = 0
		if until := now.Add(retryAfter); until.After(b.ResetAt) {
			b.ResetAt = until
		}
		t.log.Warn("route rate limit hit", logger.Fields(
			logger.FieldRoute, r.String(),
			logger.FieldBucket, b.Hash,
			logger.FieldWait, retryAfter.Milliseconds(),
		))
	}
}

func parseInt(v []byte) (int, bool) {
	if len(v) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseSeconds(v []byte) (time.Duration, bool) {
	if len(v) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}
