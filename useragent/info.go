package useragent

import (
	"time"

	"github.com/google/uuid"
)

// LogInfo tags a request in logs and traces.
type LogInfo struct {
	ID  uuid.UUID
	Seq uint64
}

// Info is the outcome of one Run. It is owned by the caller and must not be
// shared between concurrent Runs. Byte views returned from it are valid
// until the next Run that uses it or Cleanup.
type Info struct {
	LogInfo

	// HTTPCode is the response status, 0 when the Run failed before a
	// response was read.
	HTTPCode int
	// ReqURL is the fully rendered request URL.
	ReqURL string
	// ReqTime is when the response was fully read.
	ReqTime time.Time

	// Header is the replayed response header block. See RespHeader for how
	// it differs from the wire.
	Header RespHeader
	Body   RespBody
}

// RespHeaderField returns the value of the first response header matching
// field, or nil when the server did not send it.
func (i *Info) RespHeaderField(field string) []byte {
	return i.Header.Field(field)
}

// RespBody returns the response body.
func (i *Info) RespBody() []byte {
	return i.Body.Bytes()
}

// Cleanup releases the response buffers.
func (i *Info) Cleanup() {
	*i = Info{}
}

// reset clears the previous outcome, keeping buffer capacity.
func (i *Info) reset() {
	i.LogInfo = LogInfo{}
	i.HTTPCode = 0
	i.ReqURL = ""
	i.ReqTime = time.Time{}
	i.Header.Reset()
	i.Body.Reset()
}
