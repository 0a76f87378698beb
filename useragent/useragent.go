package useragent

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/observability"
	"github.com/kbukum/chatkit/version"
)

// UserAgent is a handle to the chat API: base URL, request header set,
// engine with its hooks, and a one-shot pacing delay.
//
// A UserAgent must not be used from more than one goroutine at a time.
type UserAgent struct {
	cfg     Config
	baseURL string
	headers HeaderRegistry
	engine  *adapter

	blockUntil time.Time
	seq        uint64

	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.RequestMetrics
}

// Option configures a UserAgent.
type Option func(*options)

type options struct {
	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.RequestMetrics
	rt      http.RoundTripper
}

// WithLogger sets the logger. Defaults to logger.Get(cfg.Name).
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer sets the tracer. Defaults to the global chatkit tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics records request instruments on m.
func WithMetrics(m *observability.RequestMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithRoundTripper replaces the engine's transport. TLS and proxy settings
// are ignored when set.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) { o.rt = rt }
}

// New creates a UserAgent. The header set starts with
// "Content-Type: application/json" and the User-Agent header, followed by
// cfg.Headers in field order.
func New(cfg Config, opts ...Option) (*UserAgent, error) {
	cfg = cfg.clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get(cfg.Name)
	}
	if o.tracer == nil {
		o.tracer = observability.Tracer(observability.TracerName)
	}

	engine, err := newAdapter(&cfg, o.rt)
	if err != nil {
		return nil, err
	}

	ua := &UserAgent{
		cfg:     cfg,
		baseURL: cfg.BaseURL,
		engine:  engine,
		log:     o.log,
		tracer:  o.tracer,
		metrics: o.metrics,
	}

	ua.headers.Add("Content-Type", "application/json")
	agent := cfg.UserAgent
	if agent == "" {
		agent = version.UserAgent()
	}
	ua.headers.Add("User-Agent", agent)
	for _, field := range slices.Sorted(maps.Keys(cfg.Headers)) {
		ua.headers.Add(field, cfg.Headers[field])
	}
	engine.setOption(cfg.auth().Hook())

	return ua, nil
}

// Clone returns an independent handle with copies of the base URL, header
// set and hooks, and a fresh connection pool. An armed pacing delay is not
// carried over.
func (ua *UserAgent) Clone() *UserAgent {
	return &UserAgent{
		cfg:     ua.cfg.clone(),
		baseURL: ua.baseURL,
		headers: ua.headers.Clone(),
		engine:  ua.engine.clone(),
		log:     ua.log,
		tracer:  ua.tracer,
		metrics: ua.metrics,
	}
}

// Close releases idle connections.
func (ua *UserAgent) Close() error {
	ua.engine.close()
	return nil
}

// Name returns the configured name.
func (ua *UserAgent) Name() string { return ua.cfg.Name }

// SetURL replaces the base URL.
func (ua *UserAgent) SetURL(base string) { ua.baseURL = base }

// URL returns the base URL.
func (ua *UserAgent) URL() string { return ua.baseURL }

// AddHeader adds or replaces a request header. It panics on an empty field.
func (ua *UserAgent) AddHeader(field, value string) { ua.headers.Add(field, value) }

// DelHeader removes a request header.
func (ua *UserAgent) DelHeader(field string) { ua.headers.Del(field) }

// Header returns the value of a request header.
func (ua *UserAgent) Header(field string) (string, bool) { return ua.headers.Get(field) }

// HeaderString serializes the request headers into buf, truncating at
// len(buf). See HeaderRegistry.Serialize.
func (ua *UserAgent) HeaderString(buf []byte) []byte { return ua.headers.Serialize(buf) }

// SetOpt chains an option hook run on every request.
func (ua *UserAgent) SetOpt(h OptionHook) { ua.engine.setOption(h) }

// SetMimeOpt sets the hook writing MIMEPOST bodies, replacing the previous
// one. A nil hook clears it.
func (ua *UserAgent) SetMimeOpt(h MimeHook) { ua.engine.setMime(h) }

// Block arms a delay the next Run waits out before sending. Arming again
// keeps whichever deadline is later; the delay is consumed by that Run.
func (ua *UserAgent) Block(wait time.Duration) {
	if wait <= 0 {
		return
	}
	if until := time.Now().Add(wait); until.After(ua.blockUntil) {
		ua.blockUntil = until
	}
}

// BlockMs is Block in milliseconds.
func (ua *UserAgent) BlockMs(ms uint64) {
	ua.Block(time.Duration(ms) * time.Millisecond)
}

// PacingDelay returns how long the next Run would wait.
func (ua *UserAgent) PacingDelay() time.Duration {
	if ua.blockUntil.IsZero() {
		return 0
	}
	return max(time.Until(ua.blockUntil), 0)
}

// Run renders endpoint with args, sends the request and fills info. See VRun.
func (ua *UserAgent) Run(ctx context.Context, info *Info, d *Dispatch, body []byte, method Method, endpoint string, args ...any) error {
	return ua.VRun(ctx, info, d, body, method, endpoint, args)
}

// fmtMarker matches the markers fmt writes for missing, extra or
// mistyped operands, e.g. "%!d(string=x)" or "%!(EXTRA int=1)".
var fmtMarker = regexp.MustCompile(`%!(?:[a-zA-Z]\(|\()`)

// renderEndpoint formats endpoint with args. Text operands are blanked on a
// second render before deciding, so a value that itself contains "%!" is
// not mistaken for a mismatch.
func renderEndpoint(endpoint string, args []any) (string, error) {
	path := fmt.Sprintf(endpoint, args...)
	if !fmtMarker.MatchString(path) {
		return path, nil
	}
	blank := make([]any, len(args))
	for i, a := range args {
		blank[i] = blankText(a)
	}
	if check := fmt.Sprintf(endpoint, blank...); fmtMarker.MatchString(check) {
		return "", newError(CodePrecondition, nil, "endpoint %q does not match its arguments: %s", endpoint, check)
	}
	return path, nil
}

// blankText returns the zero value of a's type when a is a string or byte
// slice, keeping its type so verb checks behave the same.
func blankText(a any) any {
	v := reflect.ValueOf(a)
	if !v.IsValid() {
		return a
	}
	if v.Kind() == reflect.String || (v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8) {
		return reflect.Zero(v.Type()).Interface()
	}
	return a
}

// VRun renders endpoint with fmt verbs and args, appends it to the base URL
// and performs the exchange. Literal percent signs in endpoint must be
// doubled.
//
// On a response, info holds the status, headers and body, d fires the
// matching branch, and VRun returns nil for 2xx or a CodeHTTP *Error
// otherwise. Any other failure returns an *Error and leaves info empty.
//
// ctx carries trace values only; cancelling it does not abort the exchange.
func (ua *UserAgent) VRun(ctx context.Context, info *Info, d *Dispatch, body []byte, method Method, endpoint string, args []any) error {
	if info == nil {
		return newError(CodePrecondition, nil, "nil info")
	}
	info.reset()

	if !method.Valid() {
		return newError(CodePrecondition, nil, "invalid method %d", int(method))
	}
	if endpoint == "" {
		return newError(CodePrecondition, nil, "empty endpoint")
	}
	path, err := renderEndpoint(endpoint, args)
	if err != nil {
		return err
	}
	if method == MethodMimePost && ua.engine.mime == nil {
		return newError(CodePrecondition, nil, "MIMEPOST without a mime hook")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)

	if wait := ua.PacingDelay(); wait > 0 {
		ua.log.Debug("pacing", logger.Fields(logger.FieldWait, wait.Milliseconds(), logger.FieldURL, path))
		if ua.metrics != nil {
			ua.metrics.RecordPacing(ctx, ua.cfg.Name, wait)
		}
		time.Sleep(wait)
	}
	ua.blockUntil = time.Time{}

	ua.seq++
	info.LogInfo = LogInfo{ID: uuid.New(), Seq: ua.seq}
	info.ReqURL = ua.baseURL + path

	ctx, span := ua.tracer.Start(ctx, ua.cfg.Name+" "+method.wire(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrHTTPMethod, method.wire()),
			attribute.String(observability.AttrURL, info.ReqURL),
			attribute.String(observability.AttrRequestID, info.ID.String()),
			attribute.Int64(observability.AttrRequestSeq, int64(info.Seq)),
		),
	)
	defer span.End()

	start := time.Now()
	err = ua.engine.execute(ctx, method, info.ReqURL, &ua.headers, body, info)
	elapsed := time.Since(start)

	if err != nil {
		code := CodeOf(err)
		ua.log.Warn("request failed", logger.Fields(
			logger.FieldRequestID, info.ID.String(),
			logger.FieldSeq, info.Seq,
			logger.FieldMethod, method.String(),
			logger.FieldURL, info.ReqURL,
			logger.FieldCode, code.String(),
			logger.FieldError, err.Error(),
		))
		span.SetAttributes(attribute.String(observability.AttrResultCode, code.String()))
		observability.SetSpanError(span, err)
		if ua.metrics != nil {
			ua.metrics.RecordError(ctx, ua.cfg.Name, method.String(), code.String())
		}
		info.reset()
		return err
	}

	ua.log.Debug("request completed", logger.Fields(
		logger.FieldRequestID, info.ID.String(),
		logger.FieldSeq, info.Seq,
		logger.FieldMethod, method.String(),
		logger.FieldURL, info.ReqURL,
		logger.FieldStatus, info.HTTPCode,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, info.HTTPCode))
	if ua.metrics != nil {
		ua.metrics.RecordRequest(ctx, ua.cfg.Name, method.String(), info.HTTPCode, elapsed)
	}

	d.dispatch(info)

	if !IsSuccess(info.HTTPCode) {
		span.SetStatus(codes.Error, CodePrint(info.HTTPCode))
		if ua.metrics != nil {
			ua.metrics.RecordError(ctx, ua.cfg.Name, method.String(), CodeHTTP.String())
		}
		return newHTTPError(info.HTTPCode)
	}
	return nil
}
