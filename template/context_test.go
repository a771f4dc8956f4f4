package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeContext(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		ctx, err := DecodeContext([]byte(`{"name": "sir", "n": 42, "f": 1.50, "big": 12345678901234567890, "ok": false, "empty": ""}`))
		require.NoError(t, err)
		assert.Equal(t, Context{
			"name":  "sir",
			"n":     "42",
			"f":     "1.50",
			"big":   "12345678901234567890",
			"ok":    "false",
			"empty": "",
		}, ctx)
	})

	t.Run("empty object", func(t *testing.T) {
		ctx, err := DecodeContext([]byte(`{}`))
		require.NoError(t, err)
		assert.Empty(t, ctx)
	})

	t.Run("trailing whitespace allowed", func(t *testing.T) {
		ctx, err := DecodeContext([]byte("{\"a\": \"b\"}\n\t "))
		require.NoError(t, err)
		assert.Equal(t, Context{"a": "b"}, ctx)
	})

	t.Run("unicode and escapes", func(t *testing.T) {
		ctx, err := DecodeContext([]byte(`{"greet": "h\u00e9llo\nworld"}`))
		require.NoError(t, err)
		assert.Equal(t, "héllo\nworld", ctx["greet"])
	})

	rejected := map[string]string{
		"empty input":   ``,
		"truncated":     `{"a": `,
		"null document": `null`,
		"array":         `["a"]`,
		"string":        `"a"`,
		"null value":    `{"a": null}`,
		"nested object": `{"a": {"b": "c"}}`,
		"nested array":  `{"a": [1, 2]}`,
		"trailing data": `{"a": "b"} {"c": "d"}`,
	}
	for name, input := range rejected {
		t.Run(name, func(t *testing.T) {
			ctx, err := DecodeContext([]byte(input))
			require.Error(t, err)
			assert.Nil(t, ctx)
			assert.ErrorIs(t, err, ErrContextDecode)
			assert.Equal(t, KindContextDecode, Kind(err))
		})
	}
}

func TestDecodeContextYAML(t *testing.T) {
	t.Run("scalars keep literal text", func(t *testing.T) {
		ctx, err := DecodeContextYAML([]byte("name: sir\nage: 030\nok: yes\nquoted: \"1.50\"\n"))
		require.NoError(t, err)
		assert.Equal(t, Context{"name": "sir", "age": "030", "ok": "yes", "quoted": "1.50"}, ctx)
	})

	t.Run("explicit document markers", func(t *testing.T) {
		ctx, err := DecodeContextYAML([]byte("---\nname: sir\n...\n"))
		require.NoError(t, err)
		assert.Equal(t, Context{"name": "sir"}, ctx)
	})

	t.Run("empty mapping", func(t *testing.T) {
		ctx, err := DecodeContextYAML([]byte("{}"))
		require.NoError(t, err)
		assert.Empty(t, ctx)
	})

	rejected := map[string]string{
		"empty document":  "",
		"sequence root":   "- a\n- b\n",
		"scalar root":     "hello",
		"null value":      "a: ~\n",
		"nested mapping":  "a:\n  b: c\n",
		"nested sequence": "a: [1, 2]\n",
		"malformed":       "a: [\n",
		"non-scalar key":  "? [a, b]\n: c\n",
		"implicit null":   "a:\n",
		"second document": "name: sir\n---\n[1, 2]\n",
		"second mapping":  "name: sir\n---\nage: 30\n",
	}
	for name, input := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeContextYAML([]byte(input))
			assert.ErrorIs(t, err, ErrContextDecode)
		})
	}
}

func TestDecodeContextTOML(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		ctx, err := DecodeContextTOML([]byte("name = \"sir\"\nage = 30\nratio = 0.5\nok = true\nwhen = 2024-01-02T03:04:05Z\n"))
		require.NoError(t, err)
		assert.Equal(t, Context{
			"name":  "sir",
			"age":   "30",
			"ratio": "0.5",
			"ok":    "true",
			"when":  "2024-01-02T03:04:05Z",
		}, ctx)
	})

	rejected := map[string]string{
		"table":    "[user]\nname = \"a\"\n",
		"array":    "a = [1, 2]\n",
		"inline":   "a = { b = 1 }\n",
		"bad toml": "a = \n",
	}
	for name, input := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeContextTOML([]byte(input))
			assert.ErrorIs(t, err, ErrContextDecode)
		})
	}
}

func TestDecodeContextFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	want := Context{"name": "sir"}
	for _, path := range []string{
		write("ctx.json", `{"name": "sir"}`),
		write("ctx.yaml", "name: sir\n"),
		write("ctx.YML", "name: sir\n"),
		write("ctx.toml", "name = \"sir\"\n"),
	} {
		ctx, err := DecodeContextFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, ctx, path)
	}

	_, err := DecodeContextFile(write("ctx.ini", "name=sir"))
	assert.ErrorIs(t, err, ErrContextDecode)

	_, err = DecodeContextFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, KindInternal, Kind(err))
}
