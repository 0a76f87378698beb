package useragent

import (
	"mime/multipart"
	"net/http"
)

// Handle exposes the engine objects of a single exchange to hooks.
type Handle struct {
	Client  *http.Client
	Request *http.Request
}

// OptionHook adjusts the engine before a request is sent, e.g. to add
// authentication, swap the transport or tighten a timeout.
type OptionHook func(h *Handle)

// MimeHook writes the parts of a MIMEPOST body.
type MimeHook func(h *Handle, w *multipart.Writer) error

func chainOption(prev, next OptionHook) OptionHook {
	if prev == nil {
		return next
	}
	if next == nil {
		return prev
	}
	return func(h *Handle) {
		prev(h)
		next(h)
	}
}
