package lint

// Option values arrive with whatever types the config decoder produced:
// int from YAML, int64 from TOML, float64 from JSON, and []any or
// map[string]any for collections. The As* helpers normalise them.

// AsInt converts a decoded numeric option to int. Fractional floats are rejected.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// AsStringSlice converts a decoded list option to []string. Any non-string
// element makes the conversion fail.
func AsStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// AsIntMap converts a decoded table option to map[string]int.
func AsIntMap(v any) (map[string]int, bool) {
	switch table := v.(type) {
	case map[string]int:
		return table, true
	case map[string]any:
		out := make(map[string]int, len(table))
		for key, item := range table {
			n, ok := AsInt(item)
			if !ok {
				return nil, false
			}
			out[key] = n
		}
		return out, true
	default:
		return nil, false
	}
}
