package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Payload is the deserialized body of an inbound webhook: a generic nested
// mapping from field names to strings, numbers, booleans, mappings and
// sequences. It is built once per request and read-only thereafter.
type Payload map[string]interface{}

// Parse decodes raw JSON into a Payload. Numbers are kept as json.Number so
// integer values round-trip into message bodies without a float conversion.
func Parse(raw []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "cannot decode payload")
	}
	if p == nil {
		return nil, errors.New("payload is not a JSON object")
	}
	return p, nil
}

// Get looks up a dotted path ("siteDetails.domain"). A missing intermediate
// key, or an intermediate value that is not a mapping, fails closed.
func (p Payload) Get(path string) (interface{}, bool) {
	keys := strings.Split(path, ".")
	var cur interface{} = map[string]interface{}(p)
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether path resolves to any non-nil value.
func (p Payload) Has(path string) bool {
	v, ok := p.Get(path)
	return ok && v != nil
}

// String returns the string value at path.
func (p Payload) String(path string) (string, bool) {
	v, ok := p.Get(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the boolean value at path.
func (p Payload) Bool(path string) (bool, bool) {
	v, ok := p.Get(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Number returns the numeric value at path. Payloads decoded by Parse carry
// json.Number, but float64 is accepted for payloads built directly in code.
func (p Payload) Number(path string) (json.Number, bool) {
	v, ok := p.Get(path)
	if !ok {
		return "", false
	}
	switch n := v.(type) {
	case json.Number:
		return n, true
	case float64:
		raw, err := json.Marshal(n)
		if err != nil {
			return "", false
		}
		return json.Number(raw), true
	default:
		return "", false
	}
}

// Map returns the nested mapping at path.
func (p Payload) Map(path string) (Payload, bool) {
	v, ok := p.Get(path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return Payload(m), true
}
