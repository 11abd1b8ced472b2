package sourcelang_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

func TestDetect_Extension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want sourcelang.Language
	}{
		{"index.js", sourcelang.JavaScript},
		{"lib/module.MJS", sourcelang.JavaScript},
		{"config.cjs", sourcelang.JavaScript},
		{"App.jsx", sourcelang.JavaScript},
		{"src/api.ts", sourcelang.TypeScript},
		{"worker.mts", sourcelang.TypeScript},
		{"Button.tsx", sourcelang.TSX},
		{"cmd/main.go", sourcelang.Go},
		{"README.md", sourcelang.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sourcelang.Detect(tt.name, nil))
		})
	}
}

func TestDetect_Shebang(t *testing.T) {
	t.Parallel()

	script := []byte("#!/usr/bin/env node\nconst maxRetries = 3;\n")

	assert.Equal(t, sourcelang.JavaScript, sourcelang.Detect("bin/release", script))
	assert.Equal(t, sourcelang.Unknown, sourcelang.Detect("bin/tool", []byte("\x7fELF\x00\x00\x01")))
	assert.Equal(t, sourcelang.Unknown, sourcelang.Detect("bin/empty", nil))
}

func TestParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sourcelang.JavaScript, sourcelang.Parse("JS"))
	assert.Equal(t, sourcelang.TypeScript, sourcelang.Parse("ts"))
	assert.Equal(t, sourcelang.TSX, sourcelang.Parse("tsx"))
	assert.Equal(t, sourcelang.Go, sourcelang.Parse(" golang "))
	assert.Equal(t, sourcelang.Unknown, sourcelang.Parse("python"))
}

func TestLanguage_Supported(t *testing.T) {
	t.Parallel()

	for _, lang := range sourcelang.Languages() {
		assert.True(t, lang.Supported(), lang.String())
	}

	assert.False(t, sourcelang.Unknown.Supported())
	assert.Equal(t, "unknown", sourcelang.Unknown.String())
}

func TestIsVendor(t *testing.T) {
	t.Parallel()

	assert.True(t, sourcelang.IsVendor("node_modules/lodash/index.js"))
	assert.True(t, sourcelang.IsVendor("vendor/github.com/pkg/errors/errors.go"))
	assert.False(t, sourcelang.IsVendor("src/constants.js"))
}

func TestParseTree(t *testing.T) {
	t.Parallel()

	tree, err := sourcelang.ParseTree(context.Background(), sourcelang.JavaScript, []byte("const someValue = 1;\n"))
	require.NoError(t, err)

	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Type())
	assert.Equal(t, "lexical_declaration", root.NamedChild(0).Type())
}

func TestParseTree_Go(t *testing.T) {
	t.Parallel()

	tree, err := sourcelang.ParseTree(context.Background(), sourcelang.Go, []byte("package main\n\nconst maxItems = 10\n"))
	require.NoError(t, err)

	defer tree.Close()

	assert.Equal(t, "source_file", tree.RootNode().Type())
}

func TestParseTree_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := sourcelang.ParseTree(context.Background(), sourcelang.Unknown, []byte("x"))
	require.ErrorIs(t, err, sourcelang.ErrUnsupportedLanguage)

	_, err = sourcelang.Grammar(sourcelang.Language("cobol"))
	require.ErrorIs(t, err, sourcelang.ErrUnsupportedLanguage)
}
