package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Param is one entry of a Params bag.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered key/value bag. A nil Params means "no parameters" and
// produces no request body; it is never replaced by an empty map.
type Params []Param

// With appends key=value.
func (p Params) With(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// withOptional appends key=*value when value is set and skips it otherwise.
func withOptional[T any](p Params, key string, value *T) Params {
	if value == nil {
		return p
	}
	return append(p, Param{Key: key, Value: *value})
}

// orNil collapses an empty bag to nil.
func (p Params) orNil() Params {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Keys lists the keys in insertion order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, param := range p {
		keys = append(keys, param.Key)
	}
	return keys
}

// MarshalJSON writes a JSON object keeping insertion order.
func (p Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(param.Value)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", param.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// formValue renders a parameter as a multipart string field.
func formValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
