// Package models defines the data the admin engine works with: server-backed
// records, the descriptors of the resources that hold them and the state of
// a live uniqueness check.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

// ErrMissingID is returned when a decoded object carries no usable identifier.
var ErrMissingID = errors.New("record has no identifier")

// Record is one item of a resource. ID is assigned by the server and never
// changes; Fields holds every other attribute as decoded from JSON.
type Record struct {
	ID     string
	Fields map[string]any
}

// DecodeRecord builds a Record from a decoded JSON object, taking the
// identifier from idField. Numeric identifiers are kept in their decimal form.
func DecodeRecord(raw map[string]any, idField string) (Record, error) {
	id, err := formatID(raw[idField])
	if err != nil {
		return Record{}, err
	}
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k == idField {
			continue
		}
		fields[k] = v
	}
	return Record{ID: id, Fields: fields}, nil
}

func formatID(v any) (string, error) {
	switch id := v.(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			return "", ErrMissingID
		}
		return id, nil
	case json.Number:
		return id.String(), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	}
	return "", ErrMissingID
}

// Clone returns a copy whose field map can be modified independently.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Fields: maps.Clone(r.Fields)}
}

// With returns a copy of r with the given fields overlaid.
func (r Record) With(fields map[string]any) Record {
	out := r.Clone()
	if out.Fields == nil {
		out.Fields = make(map[string]any, len(fields))
	}
	maps.Copy(out.Fields, fields)
	return out
}

// Text renders a field as a string; absent and null fields render as "".
func (r Record) Text(name string) string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// Bool reports a boolean status flag such as is_approved.
func (r Record) Bool(name string) bool {
	b, _ := r.Fields[name].(bool)
	return b
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// CreatedAt parses the read-only created_at field.
func (r Record) CreatedAt() (time.Time, bool) {
	s := r.Text("created_at")
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MediaURL returns the URL of a binary field. The server-resolved
// "<field>_url" always takes precedence over the raw field value.
func (r Record) MediaURL(field string) string {
	if u := r.Text(field + "_url"); u != "" {
		return u
	}
	return r.Text(field)
}
