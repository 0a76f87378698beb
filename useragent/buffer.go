package useragent

import (
	"bytes"
	"fmt"
)

// MaxHeaderPairs is the capacity of the response header index.
const MaxHeaderPairs = 100

// Span locates a run of bytes inside a buffer.
type Span struct {
	Offset int
	Length int
}

// of returns the bytes s covers in buf. The result's capacity ends at the
// span so appends through it cannot clobber the arena.
func (s Span) of(buf []byte) []byte {
	if s.Length == 0 {
		return nil
	}
	end := s.Offset + s.Length
	return buf[s.Offset:end:end]
}

type headerPair struct {
	field Span
	value Span
}

// RespHeader holds the raw response header block and an index of its
// field/value pairs. Records are offsets into the arena, so the arena may
// grow while lines are appended; views from Pair and Field are valid until
// the next WriteLine or Reset.
//
// When filled by a Run the block is replayed from net/http's parsed
// response: field names are canonicalized (x-ratelimit-remaining becomes
// X-Ratelimit-Remaining) and fields come in sorted order, with repeated
// fields kept in their received order. Raw and Pair reproduce that replayed
// block byte for byte, not the bytes on the wire.
type RespHeader struct {
	buf   []byte
	pairs [MaxHeaderPairs]headerPair
	size  int
}

// WriteLine appends one raw header line to the arena. Lines holding a ':'
// that do not start with whitespace are indexed: the field is everything
// before the first colon, the value everything after it without leading
// SP/HT and trailing CR/LF/SP/HT. Other lines (status line, folded
// continuations, the blank terminator) are kept but not indexed.
//
// Once the index is full the line is rejected with ErrHeaderOverflow and
// nothing is appended.
func (h *RespHeader) WriteLine(line []byte) error {
	colon := bytes.IndexByte(line, ':')
	indexed := colon > 0 && line[0] != ' ' && line[0] != '\t'
	if indexed && h.size >= MaxHeaderPairs {
		return fmt.Errorf("%w: more than %d fields", ErrHeaderOverflow, MaxHeaderPairs)
	}

	start := len(h.buf)
	h.buf = append(h.buf, line...)
	if !indexed {
		return nil
	}

	vstart := colon + 1
	for vstart < len(line) && (line[vstart] == ' ' || line[vstart] == '\t') {
		vstart++
	}
	vend := len(line)
	for vend > vstart && isTrailing(line[vend-1]) {
		vend--
	}

	h.pairs[h.size] = headerPair{
		field: Span{Offset: start, Length: colon},
		value: Span{Offset: start + vstart, Length: vend - vstart},
	}
	h.size++
	return nil
}

func isTrailing(c byte) bool {
	return c == '\r' || c == '\n' || c == ' ' || c == '\t'
}

// Len returns the number of indexed pairs.
func (h *RespHeader) Len() int { return h.size }

// Pair returns the i-th field and value in arrival order.
func (h *RespHeader) Pair(i int) (field, value []byte) {
	p := h.pairs[i]
	return p.field.of(h.buf), p.value.of(h.buf)
}

// Field returns the value of the first pair whose field matches name under
// ASCII case folding, or nil.
func (h *RespHeader) Field(name string) []byte {
	for i := 0; i < h.size; i++ {
		p := h.pairs[i]
		if bytes.EqualFold(p.field.of(h.buf), []byte(name)) {
			return p.value.of(h.buf)
		}
	}
	return nil
}

// Raw returns the header block as written.
func (h *RespHeader) Raw() []byte { return h.buf }

// Reset empties the header, keeping the arena's capacity.
func (h *RespHeader) Reset() {
	h.buf = h.buf[:0]
	h.size = 0
}

// RespBody accumulates a response body up to an optional limit.
type RespBody struct {
	buf   []byte
	limit int64
}

// Write implements io.Writer. Writes that would take the body past its
// limit fail with ErrBodyTooLarge and append nothing.
func (b *RespBody) Write(p []byte) (int, error) {
	if b.limit > 0 && int64(len(b.buf))+int64(len(p)) > b.limit {
		return 0, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, b.limit)
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// Bytes returns the body.
func (b *RespBody) Bytes() []byte { return b.buf }

// Len returns the body length.
func (b *RespBody) Len() int { return len(b.buf) }

// Reset empties the body, keeping its capacity.
func (b *RespBody) Reset() { b.buf = b.buf[:0] }
