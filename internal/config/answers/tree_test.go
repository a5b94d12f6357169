package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetAndGet(t *testing.T) {
	tree := New()
	tree.Set("server.host", "0.0.0.0")
	tree.Set("server.port", 8080)
	tree.Set("env", "development")

	assert.Equal(t, "0.0.0.0", tree.Get("server.host"))
	assert.Equal(t, 8080, tree.Get("server.port"))
	assert.Equal(t, "development", tree.Get("env"))
	assert.Nil(t, tree.Get("server.protocol"))
	assert.Nil(t, tree.Get("missing.deeply.nested"))

	server, ok := tree["server"].(map[string]any)
	require.True(t, ok, "intermediate value should be a plain map")
	assert.Len(t, server, 2)
}

func TestTree_SetReplacesLeafOnTheWay(t *testing.T) {
	tree := Tree{"caching": "off"}
	tree.Set("caching.redis.enabled", true)

	assert.Equal(t, true, tree.Get("caching.redis.enabled"))
}

func TestTree_NumericSegmentsAreKeys(t *testing.T) {
	tree := New()
	tree.Set("apis.0.host", "https://api.somedomain.tech")

	apis, ok := tree["apis"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, apis, "0")
	assert.Equal(t, "https://api.somedomain.tech", tree.Get("apis.0.host"))
}

func TestTree_CaseSensitive(t *testing.T) {
	tree := New()
	tree.Set("publicUrl.host", "my-api.com")

	assert.True(t, tree.Has("publicUrl.host"))
	assert.False(t, tree.Has("publicurl.host"))
}

func TestTree_Has(t *testing.T) {
	tests := []struct {
		name string
		tree Tree
		path string
		want bool
	}{
		{name: "nil tree", tree: nil, path: "a", want: false},
		{name: "missing", tree: Tree{}, path: "a", want: false},
		{name: "nil value", tree: Tree{"a": nil}, path: "a", want: false},
		{name: "false is defined", tree: Tree{"a": false}, path: "a", want: true},
		{name: "empty string is defined", tree: Tree{"a": ""}, path: "a", want: true},
		{name: "zero is defined", tree: Tree{"a": map[string]any{"b": 0}}, path: "a.b", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tree.Has(tt.path))
		})
	}
}

func TestTree_TypedHelpers(t *testing.T) {
	tree := New()
	tree.Set("server.protocol", "https")
	tree.Set("caching.redis.enabled", true)
	tree.Set("server.port", 8080)

	assert.Equal(t, "https", tree.String("server.protocol"))
	assert.Equal(t, "", tree.String("server.port"))
	assert.True(t, tree.Bool("caching.redis.enabled"))
	assert.False(t, tree.Bool("server.protocol"))
	assert.Equal(t, Tree{"protocol": "https", "port": 8080}, tree.Map("server"))
	assert.Nil(t, tree.Map("server.port"))
}

func TestTree_SetNormalizesNamedMaps(t *testing.T) {
	tree := New()
	tree.Set("_meta", Tree{"datastore": Tree{"host": "127.0.0.1"}})

	assert.Equal(t, "127.0.0.1", tree.Get("_meta.datastore.host"))
}

func TestMerge(t *testing.T) {
	t.Run("right-biased at leaves", func(t *testing.T) {
		base := Tree{"a": 1, "b": map[string]any{"c": 2}}
		incoming := Tree{"b": map[string]any{"c": 3}}

		assert.Equal(t, Tree{"a": 1, "b": map[string]any{"c": 3}}, Merge(base, incoming))
	})

	t.Run("arrays replace", func(t *testing.T) {
		base := Tree{"a": []any{1, 2}}
		incoming := Tree{"a": []any{3}}

		assert.Equal(t, Tree{"a": []any{3}}, Merge(base, incoming))
	})

	t.Run("siblings preserved", func(t *testing.T) {
		base := Tree{"server": map[string]any{"host": "0.0.0.0"}}
		incoming := Tree{"server": map[string]any{"port": 8080}}

		assert.Equal(t, Tree{"server": map[string]any{"host": "0.0.0.0", "port": 8080}}, Merge(base, incoming))
	})

	t.Run("map replaces leaf", func(t *testing.T) {
		base := Tree{"cluster": true}
		incoming := Tree{"cluster": map[string]any{"workers": 2}}

		assert.Equal(t, Tree{"cluster": map[string]any{"workers": 2}}, Merge(base, incoming))
	})

	t.Run("leaf replaces map", func(t *testing.T) {
		base := Tree{"media": map[string]any{"storage": "disk"}}
		incoming := Tree{"media": "none"}

		assert.Equal(t, Tree{"media": "none"}, Merge(base, incoming))
	})

	t.Run("inputs untouched", func(t *testing.T) {
		base := Tree{"b": map[string]any{"c": 2}}
		incoming := Tree{"b": map[string]any{"d": 4}}

		merged := Merge(base, incoming)
		merged.Set("b.e", 5)

		assert.Equal(t, Tree{"b": map[string]any{"c": 2}}, base)
		assert.Equal(t, Tree{"b": map[string]any{"d": 4}}, incoming)
	})

	t.Run("nil base", func(t *testing.T) {
		assert.Equal(t, Tree{"a": 1}, Merge(nil, Tree{"a": 1}))
	})
}

func TestFromFlat(t *testing.T) {
	tree := FromFlat(map[string]any{
		"server.port":    8080,
		"server.host":    "localhost",
		"datastore":      "@dadi/api-mongodb",
		"images.s3.key":  "abc",
		"images.enabled": true,
	})

	assert.Equal(t, 8080, tree.Get("server.port"))
	assert.Equal(t, "localhost", tree.Get("server.host"))
	assert.Equal(t, "@dadi/api-mongodb", tree.Get("datastore"))
	assert.Equal(t, "abc", tree.Get("images.s3.key"))
	assert.Equal(t, true, tree.Get("images.enabled"))
}

func TestClone(t *testing.T) {
	original := Tree{"a": map[string]any{"b": []any{map[string]any{"c": 1}}}}

	clone := Clone(original)
	clone.Set("a.x", 2)
	clone["a"].(map[string]any)["b"].([]any)[0].(map[string]any)["c"] = 9

	assert.Equal(t, Tree{"a": map[string]any{"b": []any{map[string]any{"c": 1}}}}, original)
	assert.Equal(t, New(), Clone(nil))
}
