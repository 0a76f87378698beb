package useragent

import (
	"net/http"
	"strings"
)

type headerField struct {
	field string
	value string
}

// HeaderRegistry is the ordered request header set of a UserAgent.
// Field names are unique under ASCII case folding, as they are on the wire.
type HeaderRegistry struct {
	fields []headerField
}

func (r *HeaderRegistry) index(field string) int {
	for i, f := range r.fields {
		if strings.EqualFold(f.field, field) {
			return i
		}
	}
	return -1
}

// Add sets field to value. An existing field keeps its position and takes
// the new spelling and value. Add panics on an empty field name.
func (r *HeaderRegistry) Add(field, value string) {
	if field == "" {
		panic("useragent: empty header field name")
	}
	if i := r.index(field); i >= 0 {
		r.fields[i] = headerField{field: field, value: value}
		return
	}
	r.fields = append(r.fields, headerField{field: field, value: value})
}

// Del removes field. Removing an absent field is a no-op.
func (r *HeaderRegistry) Del(field string) {
	if i := r.index(field); i >= 0 {
		r.fields = append(r.fields[:i], r.fields[i+1:]...)
	}
}

// Get returns the value of field and whether it is set.
func (r *HeaderRegistry) Get(field string) (string, bool) {
	if i := r.index(field); i >= 0 {
		return r.fields[i].value, true
	}
	return "", false
}

// Len returns the number of fields.
func (r *HeaderRegistry) Len() int { return len(r.fields) }

// Each calls fn for every field in insertion order.
func (r *HeaderRegistry) Each(fn func(field, value string)) {
	for _, f := range r.fields {
		fn(f.field, f.value)
	}
}

// Serialize writes "Field: Value\n" lines into buf and returns the written
// prefix. buf's length is the limit: output stops silently at the last byte
// that fits, so the result is always a prefix of String.
func (r *HeaderRegistry) Serialize(buf []byte) []byte {
	n := 0
	put := func(s string) bool {
		c := copy(buf[n:], s)
		n += c
		return c == len(s)
	}
	for _, f := range r.fields {
		if !put(f.field) || !put(": ") || !put(f.value) || !put("\n") {
			break
		}
	}
	return buf[:n]
}

// String returns every field as "Field: Value\n" lines.
func (r *HeaderRegistry) String() string {
	var sb strings.Builder
	for _, f := range r.fields {
		sb.WriteString(f.field)
		sb.WriteString(": ")
		sb.WriteString(f.value)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Clone returns a deep copy.
func (r *HeaderRegistry) Clone() HeaderRegistry {
	return HeaderRegistry{fields: append([]headerField(nil), r.fields...)}
}

// apply sets every field on h, replacing earlier values.
func (r *HeaderRegistry) apply(h http.Header) {
	for _, f := range r.fields {
		h.Set(f.field, f.value)
	}
}
