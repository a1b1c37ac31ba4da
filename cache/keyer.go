package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator splits the endpoint from the encoded params in a key.
const KeySeparator = "@"

// Key derives the cache key for endpoint and params.
//
// Format: <endpoint> when params is absent (nil, nil pointer, nil map or
// nil slice), otherwise <endpoint>@<canonical JSON(params)>.
// Params that cannot be serialized yield an error wrapping ErrEncoding.
func Key(endpoint Endpoint, params any) (string, error) {
	if isAbsent(params) {
		return string(endpoint), nil
	}

	canonical, err := canonicalize(params)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncoding, endpoint, err)
	}

	return string(endpoint) + KeySeparator + string(canonical), nil
}

// Matches reports whether key starts with prefix.
// A bare endpoint prefix matches every parameterization of that endpoint;
// a full key matches only itself (and keys it is a literal prefix of).
func Matches(key, prefix string) bool {
	return strings.HasPrefix(key, prefix)
}

// MatchesAny reports whether key matches any of prefixes. The empty prefix
// matches every key.
func MatchesAny(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if Matches(key, p) {
			return true
		}
	}
	return false
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// canonicalize produces a deterministic JSON representation of the input.
// Maps are sorted by key; HTML characters are left unescaped so keys read
// the same as the JSON a browser client would produce.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
