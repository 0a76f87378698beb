package useragent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"mime/multipart"
	"net/http"
	"slices"
	"time"
)

// adapter runs exchanges on net/http and feeds responses into an Info.
type adapter struct {
	client  *http.Client
	option  OptionHook
	mime    MimeHook
	maxBody int64
}

func newAdapter(cfg *Config, rt http.RoundTripper) (*adapter, error) {
	if rt == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			t.TLSClientConfig = tlsCfg
		}
		if err := applyProxy(t, cfg.Proxy); err != nil {
			return nil, err
		}
		rt = t
	}
	return &adapter{
		client:  &http.Client{Transport: rt, Timeout: cfg.Timeout},
		maxBody: cfg.MaxResponseBytes,
	}, nil
}

// clone returns an adapter with its own connection pool and the same hooks.
// Injected round trippers other than *http.Transport are shared.
func (a *adapter) clone() *adapter {
	rt := a.client.Transport
	if t, ok := rt.(*http.Transport); ok {
		rt = t.Clone()
	}
	c := *a.client
	c.Transport = rt
	return &adapter{client: &c, option: a.option, mime: a.mime, maxBody: a.maxBody}
}

func (a *adapter) close() {
	a.client.CloseIdleConnections()
}

func (a *adapter) setOption(h OptionHook) { a.option = chainOption(a.option, h) }
func (a *adapter) setMime(h MimeHook)     { a.mime = h }

func (a *adapter) execute(ctx context.Context, method Method, url string, headers *HeaderRegistry, body []byte, info *Info) error {
	var rd io.Reader
	if body != nil && method != MethodMimePost {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method.wire(), url, rd)
	if err != nil {
		return newError(CodePrecondition, err, "build request for %q", url)
	}
	headers.apply(req.Header)

	h := &Handle{Client: a.client, Request: req}
	if method == MethodMimePost {
		if err := a.encodeMultipart(h); err != nil {
			return err
		}
	}
	if a.option != nil {
		a.option(h)
	}

	resp, err := h.Client.Do(h.Request)
	if err != nil {
		return newError(CodeTransport, err, "%s %s", method.wire(), url)
	}
	defer func() { _ = resp.Body.Close() }()

	info.HTTPCode = resp.StatusCode
	if err := writeHeaderLines(&info.Header, resp); err != nil {
		return newError(CodeProtocol, err, "%s %s", method.wire(), url)
	}

	info.Body.limit = a.maxBody
	if _, err := io.Copy(&info.Body, resp.Body); err != nil {
		if errors.Is(err, ErrBodyTooLarge) {
			return newError(CodeResource, err, "%s %s", method.wire(), url)
		}
		return newError(CodeTransport, err, "read response body")
	}
	info.ReqTime = time.Now()
	return nil
}

func (a *adapter) encodeMultipart(h *Handle) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := a.mime(h, w); err != nil {
		return newError(CodePrecondition, err, "encode multipart body")
	}
	if err := w.Close(); err != nil {
		return newError(CodePrecondition, err, "encode multipart body")
	}

	data := buf.Bytes()
	h.Request.Body = io.NopCloser(bytes.NewReader(data))
	h.Request.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	h.Request.ContentLength = int64(len(data))
	h.Request.Header.Set("Content-Type", w.FormDataContentType())
	return nil
}

// writeHeaderLines replays the response head into rh as wire lines: the
// status line, one line per value with fields in sorted order, and the
// blank terminator.
func writeHeaderLines(rh *RespHeader, resp *http.Response) error {
	line := make([]byte, 0, 128)
	line = append(line, resp.Proto...)
	line = append(line, ' ')
	line = append(line, resp.Status...)
	line = append(line, "\r\n"...)
	if err := rh.WriteLine(line); err != nil {
		return err
	}

	for _, field := range slices.Sorted(maps.Keys(resp.Header)) {
		for _, value := range resp.Header[field] {
			line = append(line[:0], field...)
			line = append(line, ": "...)
			line = append(line, value...)
			line = append(line, "\r\n"...)
			if err := rh.WriteLine(line); err != nil {
				return err
			}
		}
	}
	return rh.WriteLine([]byte("\r\n"))
}
