package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// mergeJSON deep merges incoming into existing and returns the canonical
// encoding. existing may be nil when the file does not exist yet.
func mergeJSON(name string, existing, incoming []byte) ([]byte, error) {
	in, err := decodeJSON(name, incoming)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return encodeJSON(in)
	}

	cur, err := decodeJSON(name, existing)
	if err != nil {
		return nil, err
	}
	merged, err := mergeValues(name, "", cur, in)
	if err != nil {
		return nil, err
	}
	return encodeJSON(merged)
}

func decodeJSON(name string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidJSON, name, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: %s: trailing data", ErrInvalidJSON, name)
	}
	return v, nil
}

// encodeJSON writes v with two-space indent, sorted keys and a trailing
// newline. HTML escaping is disabled so "<" and "&" survive in scripts.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// mergeValues merges b into a. Objects merge key by key, arrays are
// concatenated without duplicates and scalars must agree.
func mergeValues(name, pointer string, a, b any) (any, error) {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return nil, conflict(name, pointer, a, b)
		}
		out := make(map[string]any, len(av)+len(bv))
		for k, v := range av {
			out[k] = v
		}
		for k, v := range bv {
			cur, exists := out[k]
			if !exists {
				out[k] = v
				continue
			}
			merged, err := mergeValues(name, pointer+"/"+escapePointer(k), cur, v)
			if err != nil {
				return nil, err
			}
			out[k] = merged
		}
		return out, nil

	case []any:
		bv, ok := b.([]any)
		if !ok {
			return nil, conflict(name, pointer, a, b)
		}
		return unionArrays(av, bv), nil

	default:
		if _, isObj := b.(map[string]any); isObj {
			return nil, conflict(name, pointer, a, b)
		}
		if _, isArr := b.([]any); isArr {
			return nil, conflict(name, pointer, a, b)
		}
		if canonical(a) != canonical(b) {
			return nil, conflict(name, pointer, a, b)
		}
		return a, nil
	}
}

func unionArrays(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, v := range append(append([]any{}, a...), b...) {
		key := canonical(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// canonical returns a stable encoding of v used for equality.
func canonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

func conflict(name, pointer string, a, b any) *MergeConflictError {
	if pointer == "" {
		pointer = "/"
	}
	return &MergeConflictError{Path: name, Pointer: pointer, Existing: a, Incoming: b}
}

// escapePointer escapes a key for use in an RFC 6901 JSON pointer.
func escapePointer(k string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(k)
}
