// Package ordered provides ordered, deterministic traversal of maps.
package ordered

import "sort"

// Keys returns the keys of m in sorted order.
func Keys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Range calls fn on each key/value pair in m, in sorted key order.
func Range[V any](m map[string]V, fn func(key string, val V)) {
	for _, k := range Keys(m) {
		fn(k, m[k])
	}
}
