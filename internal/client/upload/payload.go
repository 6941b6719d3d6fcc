// Package upload builds multipart payloads for create/update requests and
// tracks their progress while they are sent.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyFile is returned for a file without content; an empty binary part
// would make the server clear the stored binary.
var ErrEmptyFile = errors.New("file is empty")

// Field is one text form field.
type Field struct {
	Name  string
	Value string
}

// File is a selected binary.
type File struct {
	Name        string // base file name sent to the server
	ContentType string
	Data        []byte

	// Preview is a local reference to the selection (its path on disk).
	Preview string
}

// LoadFile reads path and guesses its media type from the extension, then
// from the content.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return &File{Name: filepath.Base(path), ContentType: ct, Data: data, Preview: path}, nil
}

// Part describes one encoded part.
type Part struct {
	Name     string
	FileName string
	Binary   bool
}

// Payload is an encoded multipart/form-data body.
type Payload struct {
	contentType string
	body        []byte
	parts       []Part
}

// BuildPayload encodes fields as text parts in the given order and appends
// file under fileField when file is non-nil. No binary part is written when
// file is nil.
func BuildPayload(fields []Field, fileField string, file *File) (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	p := &Payload{}

	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.Name, err)
		}
		p.parts = append(p.parts, Part{Name: f.Name})
	}

	if file != nil {
		if fileField == "" {
			return nil, errors.New("resource has no file field")
		}
		if len(file.Data) == 0 {
			return nil, ErrEmptyFile
		}
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
		h.Set("Content-Type", ct)
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := pw.Write(file.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
		p.parts = append(p.parts, Part{Name: fileField, FileName: file.Name, Binary: true})
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	p.contentType = w.FormDataContentType()
	p.body = buf.Bytes()
	return p, nil
}

// ContentType is the multipart content type including the boundary.
func (p *Payload) ContentType() string { return p.contentType }

// Len is the encoded body size in bytes.
func (p *Payload) Len() int64 { return int64(len(p.body)) }

// Reader returns a fresh reader over the encoded body.
func (p *Payload) Reader() io.Reader { return bytes.NewReader(p.body) }

// Parts lists the encoded parts in order.
func (p *Payload) Parts() []Part {
	out := make([]Part, len(p.parts))
	copy(out, p.parts)
	return out
}

// Count returns the number of text and binary parts.
func (p *Payload) Count() (text, binary int) {
	for _, part := range p.parts {
		if part.Binary {
			binary++
		} else {
			text++
		}
	}
	return text, binary
}
