package diag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalDeterministic marshals a value to JSON with object keys
// sorted, so two runs over identical data byte-for-byte match. It
// backs the json.encode builtin (internal/builtins/json.go) and the
// JSON round-trip testable property (spec §8); diagnostic and log
// output use plain encoding/json instead.
func MarshalDeterministic(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return data, nil // not decodable as generic JSON; return as-is
	}
	return marshalSorted(generic)
}

func marshalSorted(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var out bytes.Buffer
		out.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				out.WriteByte(',')
			}
			keyJSON, err := encodeScalar(k)
			if err != nil {
				return nil, err
			}
			out.Write(keyJSON)
			out.WriteByte(':')
			valJSON, err := marshalSorted(val[k])
			if err != nil {
				return nil, err
			}
			out.Write(valJSON)
		}
		out.WriteByte('}')
		return out.Bytes(), nil

	case []any:
		var out bytes.Buffer
		out.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				out.WriteByte(',')
			}
			itemJSON, err := marshalSorted(item)
			if err != nil {
				return nil, err
			}
			out.Write(itemJSON)
		}
		out.WriteByte(']')
		return out.Bytes(), nil

	default:
		return encodeScalar(v)
	}
}

func encodeScalar(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
