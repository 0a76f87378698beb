package useragent

// Handler receives the response body of a finished Run. The slice is only
// valid for the duration of the call.
type Handler func(body []byte)

// Dispatch routes a response to OnSuccess for 2xx codes and OnError for
// everything else. A nil branch is skipped.
type Dispatch struct {
	OnSuccess Handler
	OnError   Handler
}

// Bind returns a Handler that passes obj to fn along with the body.
func Bind[T any](obj *T, fn func(body []byte, obj *T)) Handler {
	return func(body []byte) { fn(body, obj) }
}

// BindContext returns a Handler that passes a caller context and obj to fn
// along with the body.
func BindContext[C, T any](cxt C, obj *T, fn func(cxt C, body []byte, obj *T)) Handler {
	return func(body []byte) { fn(cxt, body, obj) }
}

func (d *Dispatch) dispatch(info *Info) {
	if d == nil {
		return
	}
	h := d.OnError
	if IsSuccess(info.HTTPCode) {
		h = d.OnSuccess
	}
	if h != nil {
		h(info.Body.Bytes())
	}
}
