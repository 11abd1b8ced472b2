package constnaming_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

func mustChecker(t *testing.T, opts constnaming.Options) *constnaming.Checker {
	t.Helper()

	checker, err := constnaming.NewChecker(opts)
	require.NoError(t, err)

	return checker
}

func TestCheck_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		code string
		opts constnaming.Options
	}{
		{"camelCase", "a.ts", `const someValue = '';`, constnaming.Options{Casing: casing.Camel}},
		{"PascalCase", "a.ts", `const SomeValue = '';`, constnaming.Options{Casing: casing.Pascal}},
		{"snake_case", "a.ts", `const some_value = '';`, constnaming.Options{Casing: casing.Snake}},
		{"SCREAMING_SNAKE_CASE", "a.ts", `const SOME_VALUE = '';`, constnaming.Options{Casing: casing.ScreamingSnake}},
		{
			"non-top-level is not picked up", "a.ts",
			"function someFunction() {\n  const someValue = '';\n}",
			constnaming.Options{Casing: casing.ScreamingSnake},
		},
		{"let is ignored", "a.js", `let someValue = 1;`, constnaming.Options{Casing: casing.ScreamingSnake}},
		{"destructuring is ignored", "a.js", `const { someValue } = obj;`, constnaming.Options{Casing: casing.ScreamingSnake}},
		{
			"exports are ignored by default", "a.ts", `export const someValue = 1;`,
			constnaming.Options{Casing: casing.ScreamingSnake},
		},
		{
			"skips string", "a.ts", "const someValue = '';\nconst someValueTemplate = ``;",
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationString}},
		},
		{
			"skips number", "a.ts", `const someValue = 2;`,
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationNumber}},
		},
		{
			"skips boolean", "a.ts", `const someValue = true;`,
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationBoolean}},
		},
		{
			"skips array", "a.ts", `const someValue = [''];`,
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationArray}},
		},
		{
			"skips object", "a.ts", `const someValue = {};`,
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationObject}},
		},
		{
			"skips function", "a.ts", `const someValue = () => {};`,
			constnaming.Options{Casing: casing.Snake, SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationFunction}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := mustChecker(t, tt.opts).Check(context.Background(), tt.file, []byte(tt.code))
			require.NoError(t, err)
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestCheck_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    string
		style   casing.Style
		message string
		output  string
	}{
		{`const SOME_VALUE = '';`, casing.Camel, "Constant SOME_VALUE should be styled as someValue", `const someValue = '';`},
		{`const SOME_VALUE = '';`, casing.Pascal, "Constant SOME_VALUE should be styled as SomeValue", `const SomeValue = '';`},
		{`const SOME_VALUE = '';`, casing.Snake, "Constant SOME_VALUE should be styled as some_value", `const some_value = '';`},
		{`const some_value = '';`, casing.Camel, "Constant some_value should be styled as someValue", `const someValue = '';`},
		{`const some_value = '';`, casing.Pascal, "Constant some_value should be styled as SomeValue", `const SomeValue = '';`},
		{`const some_value = '';`, casing.ScreamingSnake, "Constant some_value should be styled as SOME_VALUE", `const SOME_VALUE = '';`},
		{`const someValue = '';`, casing.Pascal, "Constant someValue should be styled as SomeValue", `const SomeValue = '';`},
		{`const someValue = '';`, casing.Snake, "Constant someValue should be styled as some_value", `const some_value = '';`},
		{`const someValue = '';`, casing.ScreamingSnake, "Constant someValue should be styled as SOME_VALUE", `const SOME_VALUE = '';`},
		{`const SomeValue = '';`, casing.Camel, "Constant SomeValue should be styled as someValue", `const someValue = '';`},
		{`const SomeValue = '';`, casing.Snake, "Constant SomeValue should be styled as some_value", `const some_value = '';`},
		{`const SomeValue = '';`, casing.ScreamingSnake, "Constant SomeValue should be styled as SOME_VALUE", `const SOME_VALUE = '';`},
		{`const someValue123Test = '';`, casing.Snake, "Constant someValue123Test should be styled as some_value_123_test", `const some_value_123_test = '';`},
		{`const SomeValue123Test = '';`, casing.Snake, "Constant SomeValue123Test should be styled as some_value_123_test", `const some_value_123_test = '';`},
		{`const some_value_123_test = '';`, casing.ScreamingSnake, "Constant some_value_123_test should be styled as SOME_VALUE_123_TEST", `const SOME_VALUE_123_TEST = '';`},
		{`const SOME_VALUE_123_test = '';`, casing.Snake, "Constant SOME_VALUE_123_test should be styled as some_value_123_test", `const some_value_123_test = '';`},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			src := []byte(tt.code)

			res, err := mustChecker(t, constnaming.Options{Casing: tt.style}).Check(context.Background(), "file.ts", src)
			require.NoError(t, err)
			require.Len(t, res.Diagnostics, 1)

			diag := res.Diagnostics[0]
			assert.Equal(t, tt.message, diag.Message)
			assert.Equal(t, constnaming.RuleName, diag.Rule)
			assert.Equal(t, constnaming.DeclarationString, diag.DeclarationType)

			fixed, applied := constnaming.ApplyFixes(src, res.Diagnostics)
			assert.Equal(t, 1, applied)
			assert.Equal(t, tt.output, string(fixed))
		})
	}
}

func TestCheck_Pattern(t *testing.T) {
	t.Parallel()

	src := []byte(`const SOME_VALUE_123_test = '';`)

	skipped := mustChecker(t, constnaming.Options{Casing: casing.Snake, Pattern: "fileTwo.ts"})
	res, err := skipped.Check(context.Background(), "fileOne.ts", src)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.Diagnostics)

	included := mustChecker(t, constnaming.Options{Casing: casing.Snake, Pattern: "fileOne.ts"})
	res, err = included.Check(context.Background(), "fileOne.ts", src)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "some_value_123_test", res.Diagnostics[0].Expected)
}

func TestCheck_PatternGlobs(t *testing.T) {
	t.Parallel()

	checker := mustChecker(t, constnaming.Options{Casing: casing.Snake, Pattern: "*.ts"})
	assert.True(t, checker.Includes("src/deep/config.ts"))
	assert.False(t, checker.Includes("src/deep/config.js"))

	scoped := mustChecker(t, constnaming.Options{Casing: casing.Snake, Pattern: "src/**"})
	assert.True(t, scoped.Includes("src/deep/config.ts"))
	assert.False(t, scoped.Includes("test/config.ts"))
}

func TestCheck_Positions(t *testing.T) {
	t.Parallel()

	src := []byte("// header\nconst maxRetries = 3, retryDelay = 10;\n")

	res, err := mustChecker(t, constnaming.DefaultOptions()).Check(context.Background(), "retry.js", src)
	require.NoError(t, err)
	assert.Equal(t, sourcelang.JavaScript, res.Language)
	assert.Equal(t, 2, res.Constants)
	require.Len(t, res.Diagnostics, 2)

	first := res.Diagnostics[0]
	assert.Equal(t, "maxRetries", first.Name)
	assert.Equal(t, "MAX_RETRIES", first.Expected)
	assert.Equal(t, constnaming.Position{Line: 2, Column: 7}, first.Start)
	assert.Equal(t, constnaming.Position{Line: 2, Column: 17}, first.End)
	assert.Equal(t, "maxRetries", string(src[first.StartByte:first.EndByte]))
	assert.Equal(t, constnaming.DeclarationNumber, first.DeclarationType)

	fixed, applied := constnaming.ApplyFixes(src, res.Diagnostics)
	assert.Equal(t, 2, applied)
	assert.Equal(t, "// header\nconst MAX_RETRIES = 3, RETRY_DELAY = 10;\n", string(fixed))
}

func TestCheck_IncludeExported(t *testing.T) {
	t.Parallel()

	src := []byte("export const apiUrl = 'x';\nconst localValue = 1;\n")

	opts := constnaming.DefaultOptions()
	opts.IncludeExported = true

	res, err := mustChecker(t, opts).Check(context.Background(), "api.ts", src)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)
	assert.Equal(t, "API_URL", res.Diagnostics[0].Expected)
	assert.Equal(t, "LOCAL_VALUE", res.Diagnostics[1].Expected)
}

func TestCheck_TypeScriptAnnotations(t *testing.T) {
	t.Parallel()

	src := []byte("const timeoutMs: number = 500;\nconst handler = (x: string): void => {};\n")

	opts := constnaming.Options{
		Casing:               casing.ScreamingSnake,
		SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationFunction},
	}

	res, err := mustChecker(t, opts).Check(context.Background(), "timeouts.ts", src)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Constants)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TIMEOUT_MS", res.Diagnostics[0].Expected)
}

func TestCheck_TSX(t *testing.T) {
	t.Parallel()

	src := []byte("const defaultTitle = 'Home';\nexport const App = () => <h1>{defaultTitle}</h1>;\n")

	res, err := mustChecker(t, constnaming.DefaultOptions()).Check(context.Background(), "App.tsx", src)
	require.NoError(t, err)
	assert.Equal(t, sourcelang.TSX, res.Language)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "DEFAULT_TITLE", res.Diagnostics[0].Expected)
}

func TestCheck_Go(t *testing.T) {
	t.Parallel()

	src := []byte(`package retry

const max_attempts = 3

const (
	base_delay_ms = 100
	jitterRatio   = 0.2
	_             = "blank"
	ExportedLimit = 10
)

func f() {
	const local_value = 1
}
`)

	res, err := mustChecker(t, constnaming.Options{Casing: casing.Camel}).Check(context.Background(), "retry.go", src)
	require.NoError(t, err)
	assert.Equal(t, sourcelang.Go, res.Language)
	assert.Equal(t, 3, res.Constants)
	require.Len(t, res.Diagnostics, 2)

	assert.Equal(t, "maxAttempts", res.Diagnostics[0].Expected)
	assert.Equal(t, constnaming.DeclarationNumber, res.Diagnostics[0].DeclarationType)
	assert.NotNil(t, res.Diagnostics[0].Fix)
	assert.Equal(t, "baseDelayMs", res.Diagnostics[1].Expected)
}

func TestCheck_GoVisibilityChangeHasNoFix(t *testing.T) {
	t.Parallel()

	src := []byte("package retry\n\nconst maxAttempts = 3\n")

	res, err := mustChecker(t, constnaming.DefaultOptions()).Check(context.Background(), "retry.go", src)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "MAX_ATTEMPTS", res.Diagnostics[0].Expected)
	assert.Nil(t, res.Diagnostics[0].Fix)

	fixed, applied := constnaming.ApplyFixes(src, res.Diagnostics)
	assert.Zero(t, applied)
	assert.Equal(t, src, fixed)
}

func TestCheck_GoExported(t *testing.T) {
	t.Parallel()

	src := []byte("package retry\n\nconst MaxAttempts, Min_Attempts = 3, 1\n")

	opts := constnaming.Options{Casing: casing.Pascal, IncludeExported: true}

	res, err := mustChecker(t, opts).Check(context.Background(), "retry.go", src)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Constants)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "MinAttempts", res.Diagnostics[0].Expected)
	require.NotNil(t, res.Diagnostics[0].Fix)
}

func TestCheck_SyntaxErrorsTolerated(t *testing.T) {
	t.Parallel()

	src := []byte("const someValue = 1;\nconst = ;\n")

	res, err := mustChecker(t, constnaming.DefaultOptions()).Check(context.Background(), "broken.js", src)
	require.NoError(t, err)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, "SOME_VALUE", res.Diagnostics[0].Expected)
}

func TestCheck_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	_, err := mustChecker(t, constnaming.DefaultOptions()).Check(context.Background(), "notes.txt", []byte("const a = 1"))
	require.ErrorIs(t, err, constnaming.ErrUnsupportedLanguage)
}

func TestCheckLanguage(t *testing.T) {
	t.Parallel()

	res, err := mustChecker(t, constnaming.DefaultOptions()).
		CheckLanguage(context.Background(), sourcelang.TypeScript, "", []byte("const a_b = 1;"))
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "A_B", res.Diagnostics[0].Expected)
}
