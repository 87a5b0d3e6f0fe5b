package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
)

// Body is a request body. It is encoded once and replayed as-is on retry.
type Body interface {
	encode() (contentType string, data []byte, err error)
	isMultipart() bool
}

// JSONBody is a pre-serialised JSON document.
type JSONBody []byte

// JSON serialises v into a JSONBody.
func JSON(v any) (JSONBody, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode JSON body: %w", err)
	}
	return data, nil
}

func (b JSONBody) encode() (string, []byte, error) {
	return "application/json", b, nil
}

func (JSONBody) isMultipart() bool { return false }

// Multipart is a multipart/form-data body for file-bearing submissions.
type Multipart struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error

	once sync.Once
	data []byte
}

func NewMultipart() *Multipart {
	m := &Multipart{}
	m.writer = multipart.NewWriter(&m.buf)
	return m
}

// AddJSON adds a part named name holding v as application/json.
func (m *Multipart) AddJSON(name string, v any) *Multipart {
	if m.err != nil {
		return m
	}
	data, err := json.Marshal(v)
	if err != nil {
		m.err = fmt.Errorf("encode multipart %s: %w", name, err)
		return m
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, name))
	h.Set("Content-Type", "application/json")
	m.write(name, h, data)
	return m
}

// AddFile adds a file part. An empty filename with no data marks an explicit
// "remove the current file" submission.
func (m *Multipart) AddFile(name, filename, contentType string, data []byte) *Multipart {
	if m.err != nil {
		return m
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, filename))
	h.Set("Content-Type", contentType)
	m.write(name, h, data)
	return m
}

func (m *Multipart) write(name string, h textproto.MIMEHeader, data []byte) {
	w, err := m.writer.CreatePart(h)
	if err != nil {
		m.err = fmt.Errorf("create multipart %s: %w", name, err)
		return
	}
	if _, err := w.Write(data); err != nil {
		m.err = fmt.Errorf("write multipart %s: %w", name, err)
	}
}

func (m *Multipart) encode() (string, []byte, error) {
	m.once.Do(func() {
		if m.err != nil {
			return
		}
		if err := m.writer.Close(); err != nil {
			m.err = fmt.Errorf("close multipart: %w", err)
			return
		}
		m.data = m.buf.Bytes()
	})
	if m.err != nil {
		return "", nil, m.err
	}
	return m.writer.FormDataContentType(), m.data, nil
}

func (*Multipart) isMultipart() bool { return true }
