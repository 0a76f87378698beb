package useragent

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/kbukum/chatkit/testutil/chatapi"
)

// payloadParts returns the payload_json parts of the last request body.
func payloadParts(t *testing.T, srv *chatapi.Server) []string {
	t.Helper()
	req, ok := srv.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		t.Fatalf("Content-Type: %v", err)
	}
	r := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])
	var parts []string
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			return parts
		}
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		if p.FormName() == "payload_json" {
			data, _ := io.ReadAll(p)
			parts = append(parts, string(data))
		}
	}
}

func TestSetMimeOptReplacesHook(t *testing.T) {
	srv := startAPI(t)
	srv.AddChannel("42")
	ua := newUA(t, srv, nil)

	first := &MultipartBody{PayloadJSON: []byte(`{"content":"first"}`)}
	second := &MultipartBody{PayloadJSON: []byte(`{"content":"second"}`)}

	var info Info
	ua.SetMimeOpt(first.Hook())
	if err := ua.Run(context.Background(), &info, nil, nil, MethodMimePost, "/channels/%d/messages", 42); err != nil {
		t.Fatalf("first Run: %v (%s)", err, info.RespBody())
	}
	ua.SetMimeOpt(second.Hook())
	if err := ua.Run(context.Background(), &info, nil, nil, MethodMimePost, "/channels/%d/messages", 42); err != nil {
		t.Fatalf("second Run: %v (%s)", err, info.RespBody())
	}

	parts := payloadParts(t, srv)
	if len(parts) != 1 || parts[0] != `{"content":"second"}` {
		t.Fatalf("payload_json parts = %q", parts)
	}
	msgs := srv.Messages("42")
	if len(msgs) != 2 || msgs[1].Content != "second" {
		t.Fatalf("messages = %+v", msgs)
	}

	ua.SetMimeOpt(nil)
	err := ua.Run(context.Background(), &info, nil, nil, MethodMimePost, "/channels/%d/messages", 42)
	if !IsPrecondition(err) {
		t.Fatalf("MIMEPOST after clearing hook: expected precondition error, got %v", err)
	}
	if len(srv.Messages("42")) != 2 {
		t.Error("cleared hook must not reach the server")
	}
}
