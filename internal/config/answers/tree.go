package answers

import (
	"sort"

	"github.com/stretchr/objx"
)

// Tree is a nested mapping of collected answers.
type Tree map[string]any

// New returns an empty tree.
func New() Tree {
	return Tree{}
}

// Get returns the value stored at path, or nil when any segment is missing.
func (t Tree) Get(path string) any {
	if t == nil {
		return nil
	}
	return objx.Map(t).Get(path).Data()
}

// Has reports whether path holds a defined (non-nil) value.
func (t Tree) Has(path string) bool {
	return objx.Map(t).Has(path)
}

// Set stores value at path, creating intermediate maps as needed. Existing
// non-map values on the way are replaced.
func (t Tree) Set(path string, value any) {
	objx.Map(t).Set(path, normalize(value))
}

// String returns the string stored at path, or "" when absent or not a string.
func (t Tree) String(path string) string {
	s, _ := t.Get(path).(string)
	return s
}

// Bool reports whether path holds the boolean true.
func (t Tree) Bool(path string) bool {
	b, _ := t.Get(path).(bool)
	return b
}

// Map returns the sub-tree stored at path, or nil when path is not a map.
func (t Tree) Map(path string) Tree {
	m, ok := asMap(t.Get(path))
	if !ok {
		return nil
	}
	return Tree(m)
}

// Delete removes the top-level key. Nested paths are not supported.
func (t Tree) Delete(key string) {
	delete(t, key)
}

// FromFlat expands a map keyed by dot-paths into a nested tree. Keys are
// applied in sorted order so shorter prefixes are written first.
func FromFlat(flat map[string]any) Tree {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := New()
	for _, k := range keys {
		t.Set(k, flat[k])
	}
	return t
}

// Clone returns a deep copy of the tree's nested maps and []any slices.
func Clone(t Tree) Tree {
	if t == nil {
		return New()
	}
	return Tree(cloneMap(t))
}

// Merge returns a new tree holding base overlaid with incoming. Map-valued
// keys are merged recursively; any other incoming value, slices included,
// replaces whatever base held. Neither argument is modified.
func Merge(base, incoming Tree) Tree {
	out := Clone(base)
	mergeInto(out, incoming)
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := asMap(v)
		if !srcIsMap {
			dst[k] = cloneValue(v)
			continue
		}

		dstMap, dstIsMap := dst[k].(map[string]any)
		if !dstIsMap {
			dst[k] = cloneMap(srcMap)
			continue
		}
		mergeInto(dstMap, srcMap)
	}
}

// asMap unwraps the map flavours a tree can carry.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return map[string]any(m), true
	case objx.Map:
		return map[string]any(m), true
	default:
		return nil, false
	}
}

// normalize converts named map types to plain maps so path traversal keeps
// working below them.
func normalize(v any) any {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return cloneMap(m)
	}
	if s, ok := v.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
