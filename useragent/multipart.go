package useragent

import (
	"bytes"
	"io"
	"maps"
	"mime/multipart"
	"net/textproto"
	"slices"
)

// MultipartBody describes a multipart/form-data body. PayloadJSON, when set,
// is sent first as the "payload_json" part the chat API reads message fields
// from; Fields follow sorted by name, then Files in order.
type MultipartBody struct {
	PayloadJSON []byte
	Fields      map[string]string
	Files       []FileField
}

// FileField is a file part of a multipart body.
type FileField struct {
	// FieldName is the form field name, e.g. "files[0]".
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader streams large files.
	Reader io.Reader
}

// Hook returns a MimeHook that writes the body.
func (m *MultipartBody) Hook() MimeHook {
	return func(_ *Handle, w *multipart.Writer) error {
		return m.encode(w)
	}
}

func (m *MultipartBody) encode(w *multipart.Writer) error {
	if m.PayloadJSON != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="payload_json"`)
		header.Set("Content-Type", "application/json")
		part, err := w.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := part.Write(m.PayloadJSON); err != nil {
			return err
		}
	}

	for _, k := range slices.Sorted(maps.Keys(m.Fields)) {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return err
		}
	}

	for _, f := range m.Files {
		var part io.Writer
		var err error

		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return err
		}

		if f.Data != nil {
			if _, err := part.Write(f.Data); err != nil {
				return err
			}
		} else if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return err
			}
		}
	}
	return nil
}

// escapeQuotes backslash-escapes quotes and backslashes.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
