package chatapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/chatkit/component"
	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/testutil"
	"github.com/kbukum/chatkit/testutil/tlstest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Error codes the fake returns in JSON error bodies.
const (
	CodeUnknownChannel = 10003
	CodeInvalidJSON    = 50109
)

// Config tunes the fake.
type Config struct {
	// BucketLimit is the number of requests a route bucket allows per
	// window. Defaults to 5.
	BucketLimit int
	// ResetAfter is the bucket window. Defaults to 1s.
	ResetAfter time.Duration
	// GlobalRetryAfter is announced by /ratelimited. Defaults to 50ms.
	GlobalRetryAfter time.Duration
	// TLS, when set, serves HTTPS with the generated leaf certificate.
	TLS *tlstest.Certs
}

func (c *Config) applyDefaults() {
	if c.BucketLimit <= 0 {
		c.BucketLimit = 5
	}
	if c.ResetAfter <= 0 {
		c.ResetAfter = time.Second
	}
	if c.GlobalRetryAfter <= 0 {
		c.GlobalRetryAfter = 50 * time.Millisecond
	}
}

// Message is a stored chat message.
type Message struct {
	ID          string   `json:"id"`
	ChannelID   string   `json:"channel_id"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

// Request is a request as the fake received it.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type bucket struct {
	used        int
	windowStart time.Time
}

type state struct {
	channels map[string][]Message
	buckets  map[string]bucket
	requests []Request
	nextID   uint64
}

func newState() state {
	return state{
		channels: make(map[string][]Message),
		buckets:  make(map[string]bucket),
		nextID:   1_000_000_000_000_000,
	}
}

func (s state) clone() state {
	out := state{
		channels: make(map[string][]Message, len(s.channels)),
		buckets:  maps.Clone(s.buckets),
		requests: append([]Request(nil), s.requests...),
		nextID:   s.nextID,
	}
	for id, msgs := range s.channels {
		out.channels[id] = append([]Message(nil), msgs...)
	}
	return out
}

// Server is the fake chat API. It implements testutil.TestComponent.
type Server struct {
	cfg     Config
	engine  *gin.Engine
	ts      *httptest.Server
	log     *logger.Logger
	started bool

	mu    sync.Mutex
	state state
	now   func() time.Time
}

var _ component.Component = (*Server)(nil)
var _ testutil.TestComponent = (*Server)(nil)

// New creates a fake chat API. Call Start, or hand it to testutil.T(t).Setup.
func New(cfg Config) *Server {
	cfg.applyDefaults()
	s := &Server{
		cfg:   cfg,
		log:   logger.Get("chatapi"),
		state: newState(),
		now:   time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.record)
	r.GET("/channels/:id/messages", s.withChannel, s.limited("msg-list"), s.listMessages)
	r.POST("/channels/:id/messages", s.withChannel, s.limited("msg-create"), s.createMessage)
	r.DELETE("/channels/:id", s.withChannel, s.deleteChannel)
	r.GET("/headers/:n", s.manyHeaders)
	r.GET("/bytes/:n", s.sizedBody)
	r.GET("/echo-headers", s.echoHeaders)
	r.GET("/duplicate-headers", s.duplicateHeaders)
	r.GET("/ratelimited", s.globalLimited)
	return r
}

// URL returns the base URL, empty before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ts == nil {
		return ""
	}
	return s.ts.URL
}

// AddChannel creates an empty channel.
func (s *Server) AddChannel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.channels[id]; !ok {
		s.state.channels[id] = []Message{}
	}
}

// Messages returns the messages stored in a channel.
func (s *Server) Messages(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.state.channels[id]
	return append(make([]Message, 0, len(msgs)), msgs...)
}

// Requests returns every request received since the last Reset.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.state.requests...)
}

// LastRequest returns the most recent request, or false when none arrived.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.requests) == 0 {
		return Request{}, false
	}
	return s.state.requests[len(s.state.requests)-1], true
}

// --- component.Component ---

func (s *Server) Name() string { return "chatapi" }

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("chatapi: already started")
	}
	if s.cfg.TLS != nil {
		s.ts = httptest.NewUnstartedServer(s.engine)
		s.ts.TLS = s.cfg.TLS.ServerConfig()
		s.ts.StartTLS()
	} else {
		s.ts = httptest.NewServer(s.engine)
	}
	s.started = true
	s.log.Debug("fake chat api started", logger.Fields(logger.FieldURL, s.ts.URL))
	return nil
}

func (s *Server) Stop(_ context.Context) error {
	s.mu.Lock()
	ts := s.ts
	s.ts = nil
	s.started = false
	s.mu.Unlock()

	if ts != nil {
		ts.Close()
	}
	return nil
}

func (s *Server) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

func (s *Server) Describe() component.Description {
	return component.Description{Type: "fake-api", Details: s.URL()}
}

// --- testutil.TestComponent ---

// Reset drops channels, buckets and recorded requests.
func (s *Server) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = newState()
	return nil
}

// Snapshot captures channels, buckets and recorded requests.
func (s *Server) Snapshot(_ context.Context) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone(), nil
}

// Restore returns to a Snapshot.
func (s *Server) Restore(_ context.Context, snapshot any) error {
	st, ok := snapshot.(state)
	if !ok {
		return fmt.Errorf("chatapi: unexpected snapshot type %T", snapshot)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.clone()
	return nil
}

// --- middleware ---

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.state.requests = append(s.state.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.RequestURI(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	s.mu.Unlock()
	c.Next()
}

func (s *Server) withChannel(c *gin.Context) {
	s.mu.Lock()
	_, ok := s.state.channels[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Unknown Channel", "code": CodeUnknownChannel})
		return
	}
	c.Next()
}

// limited enforces a per-channel bucket for one route and announces it in
// X-RateLimit-* headers.
func (s *Server) limited(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := hash + ":" + c.Param("id")
		now := s.now()

		s.mu.Lock()
		b := s.state.buckets[key]
		if b.windowStart.IsZero() || now.Sub(b.windowStart) >= s.cfg.ResetAfter {
			b = bucket{windowStart: now}
		}
		exhausted := b.used >= s.cfg.BucketLimit
		if !exhausted {
			b.used++
		}
		s.state.buckets[key] = b
		s.mu.Unlock()

		resetAfter := max(s.cfg.ResetAfter-now.Sub(b.windowStart), 0)
		c.Header("X-RateLimit-Bucket", hash)
		c.Header("X-RateLimit-Limit", fmt.Sprint(s.cfg.BucketLimit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(s.cfg.BucketLimit-b.used))
		c.Header("X-RateLimit-Reset-After", seconds(resetAfter))

		if exhausted {
			c.Header("X-RateLimit-Scope", "user")
			c.Header("Retry-After", seconds(resetAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "You are being rate limited.",
				"retry_after": resetAfter.Seconds(),
				"global":      false,
			})
			return
		}
		c.Next()
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
