// Package marshal defines the serialization strategy used for user payloads
// and presence member data.
//
// A Marshaller is a value handed to each component at construction. There is
// no package-level instance that call sites share and no setter to swap it
// later, so a client's serialization behavior is fixed for its lifetime.
package marshal

import (
	"bytes"
	"encoding/json"
)

// Marshaller serializes an arbitrary value to JSON text.
type Marshaller interface {
	Marshal(v any) ([]byte, error)
}

// MarshalFunc adapts an ordinary function to the Marshaller interface.
type MarshalFunc func(v any) ([]byte, error)

// Marshal calls f(v).
func (f MarshalFunc) Marshal(v any) ([]byte, error) { return f(v) }

// JSON is the default Marshaller. It leaves <, > and & unescaped and emits no
// trailing newline, so the output is safe to embed in signed strings verbatim.
type JSON struct {
	// Indent, when non-empty, pretty-prints nested values.
	Indent string
}

// Marshal implements Marshaller.
func (j JSON) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Default returns the JSON marshaller used when none is configured.
func Default() Marshaller { return JSON{} }

// OrDefault returns m, or Default() when m is nil.
func OrDefault(m Marshaller) Marshaller {
	if m == nil {
		return Default()
	}
	return m
}
