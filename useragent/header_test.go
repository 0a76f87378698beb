package useragent

import (
	"net/http"
	"strings"
	"testing"
)

func TestHeaderRegistryAddGetDel(t *testing.T) {
	var r HeaderRegistry
	r.Add("Content-Type", "application/json")
	r.Add("X-Audit-Log-Reason", "cleanup")

	if v, ok := r.Get("content-type"); !ok || v != "application/json" {
		t.Fatalf("Get(content-type) = %q, %v", v, ok)
	}

	r.Add("content-type", "text/plain")
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after replacing", r.Len())
	}
	if got := r.String(); got != "content-type: text/plain\nX-Audit-Log-Reason: cleanup\n" {
		t.Errorf("replacement should keep position, got %q", got)
	}

	r.Del("X-AUDIT-LOG-REASON")
	if _, ok := r.Get("X-Audit-Log-Reason"); ok {
		t.Error("field still present after Del")
	}
	r.Del("X-Missing")
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestHeaderRegistryAddThenDelRestoresSet(t *testing.T) {
	var r HeaderRegistry
	r.Add("Content-Type", "application/json")
	r.Add("User-Agent", "chatkit")
	before := r.String()

	r.Add("X-Temporary", "1")
	r.Del("X-Temporary")

	if got := r.String(); got != before {
		t.Errorf("header set changed: %q, want %q", got, before)
	}
}

func TestHeaderRegistryAddPanicsOnEmptyField(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty field")
		}
	}()
	var r HeaderRegistry
	r.Add("", "value")
}

func TestHeaderRegistrySerializeTruncates(t *testing.T) {
	var r HeaderRegistry
	r.Add("Content-Type", "application/json")
	r.Add("User-Agent", "chatkit (https://github.com/kbukum/chatkit, dev)")
	r.Add("Authorization", "Bot abc")
	full := r.String()

	for n := 0; n <= len(full)+8; n++ {
		got := string(r.Serialize(make([]byte, n)))
		if !strings.HasPrefix(full, got) {
			t.Fatalf("Serialize(%d) = %q is not a prefix of %q", n, got, full)
		}
		if want := min(n, len(full)); len(got) != want {
			t.Fatalf("Serialize(%d) wrote %d bytes, want %d", n, len(got), want)
		}
	}
}

func TestHeaderRegistryCloneIsIndependent(t *testing.T) {
	var r HeaderRegistry
	r.Add("X-A", "1")

	c := r.Clone()
	c.Add("X-A", "2")
	c.Add("X-B", "3")
	r.Del("X-A")

	if v, _ := c.Get("X-A"); v != "2" {
		t.Errorf("clone X-A = %q, want 2", v)
	}
	if r.Len() != 0 {
		t.Errorf("original Len = %d, want 0", r.Len())
	}
}

func TestHeaderRegistryApply(t *testing.T) {
	var r HeaderRegistry
	r.Add("x-custom", "a")
	r.Add("Accept", "application/json")

	h := http.Header{}
	h.Set("Accept", "*/*")
	r.apply(h)

	if h.Get("X-Custom") != "a" {
		t.Errorf("X-Custom = %q", h.Get("X-Custom"))
	}
	if got := h.Values("Accept"); len(got) != 1 || got[0] != "application/json" {
		t.Errorf("Accept = %v, want replaced value", got)
	}

	var fields []string
	r.Each(func(field, _ string) { fields = append(fields, field) })
	if strings.Join(fields, ",") != "x-custom,Accept" {
		t.Errorf("Each order = %v", fields)
	}
}
