package core

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"

	"github.com/gabriel-vasile/mimetype"
)

// Form is a payload sent as application/x-www-form-urlencoded.
type Form url.Values

// Multipart is a payload sent as multipart/form-data. File parts are read
// when the call is made, so a Multipart value is good for one call only.
type Multipart struct {
	parts []part
}

type part struct {
	name     string
	filename string
	value    string
	r        io.Reader
}

// NewMultipart returns an empty multipart payload.
func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field adds a plain form field.
func (m *Multipart) Field(name, value string) *Multipart {
	m.parts = append(m.parts, part{name: name, value: value})
	return m
}

// File adds a file part read from r. Its Content-Type is detected from the data.
func (m *Multipart) File(name, filename string, r io.Reader) *Multipart {
	m.parts = append(m.parts, part{name: name, filename: filename, r: r})
	return m
}

func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, p := range m.parts {
		if p.r == nil {
			if err := w.WriteField(p.name, p.value); err != nil {
				return nil, "", err
			}
			continue
		}

		data, err := io.ReadAll(p.r)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", p.name, err)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, p.filename))
		h.Set("Content-Type", mimetype.Detect(data).String())
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// encodePayload turns a call payload into a request body and its content type.
// A nil payload produces no body.
func encodePayload(codec Codec, payload any) ([]byte, string, error) {
	switch p := payload.(type) {
	case nil:
		return nil, "", nil
	case Form:
		return []byte(url.Values(p).Encode()), "application/x-www-form-urlencoded", nil
	case *Multipart:
		return p.encode()
	default:
		body, err := codec.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		return body, codec.ContentType(), nil
	}
}
