// Package models holds the development backend's stored shapes.
package models

import (
	"fmt"
	"maps"
)

// Document is one stored record, schemaless like the collections it stands
// in for.
type Document map[string]any

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// String returns the field as text; missing and nil fields are "".
func (d Document) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Media is a stored binary served under /media/.
type Media struct {
	Path        string
	ContentType string
	Data        []byte
}
