package casing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
)

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ident  string
		target casing.Style
		want   string
	}{
		{"SOME_VALUE", casing.Camel, "someValue"},
		{"SOME_VALUE", casing.Pascal, "SomeValue"},
		{"SOME_VALUE", casing.Snake, "some_value"},
		{"someValue", casing.ScreamingSnake, "SOME_VALUE"},
		{"someValue123Test", casing.Snake, "some_value_123_test"},
		{"SomeValue123Test", casing.Snake, "some_value_123_test"},
		{"some_value_123_test", casing.ScreamingSnake, "SOME_VALUE_123_TEST"},
		{"SOME_VALUE_123_test", casing.Snake, "some_value_123_test"},
		{"getHTTPResponse", casing.ScreamingSnake, "GET_HTTP_RESPONSE"},
		{"HTMLParser", casing.Camel, "htmlParser"},
		{"value", casing.ScreamingSnake, "VALUE"},
		{"Value", casing.Pascal, "Value"},
		{"foo-bar", casing.Pascal, "FooBar"},
		{"", casing.Camel, ""},
	}

	for _, tt := range tests {
		t.Run(tt.ident+"_"+tt.target.String(), func(t *testing.T) {
			t.Parallel()

			got, err := casing.Convert(tt.ident, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_MixedTarget(t *testing.T) {
	t.Parallel()

	_, err := casing.Convert("someValue", casing.Mixed)
	require.ErrorIs(t, err, casing.ErrUnsupportedStyle)
}

func TestConvert_RoundTrip(t *testing.T) {
	t.Parallel()

	samples := map[casing.Style][]string{
		casing.Camel:          {"someValue", "getHttpResponse", "aB", "maxRetryCount"},
		casing.Pascal:         {"SomeValue", "HTMLParser", "AbC"},
		casing.Snake:          {"some_value", "a_b_c", "max_retry_count"},
		casing.ScreamingSnake: {"SOME_VALUE", "MAX_RETRY_COUNT"},
	}

	for style, idents := range samples {
		for _, ident := range idents {
			require.Equal(t, style, casing.Detect(ident), ident)

			got, err := casing.Convert(ident, style)
			require.NoError(t, err)
			assert.Equal(t, style, casing.Detect(got), "%s -> %s", ident, got)
		}
	}
}

var idempotenceInputs = []string{
	"", "x", "value", "Value", "VALUE", "URL", "$el", "a1b2",
	"someValue", "SomeValue", "some_value", "SOME_VALUE",
	"someValue123Test", "SomeValue123Test", "some_value_123_test", "SOME_VALUE_123_test",
	"HTMLParser", "getHTTPResponse", "foo-bar", "Foo_Bar",
}

func TestConvert_Idempotent(t *testing.T) {
	t.Parallel()

	for _, target := range casing.Styles() {
		for _, ident := range idempotenceInputs {
			once, err := casing.Convert(ident, target)
			require.NoError(t, err)

			twice, err := casing.Convert(once, target)
			require.NoError(t, err)

			assert.Equal(t, once, twice, "%q to %s", ident, target)
		}
	}
}

func TestConvert_PreservesWordCount(t *testing.T) {
	t.Parallel()

	for _, target := range casing.Styles() {
		for _, ident := range idempotenceInputs {
			got, err := casing.Convert(ident, target)
			require.NoError(t, err)

			assert.Len(t, casing.Split(got), len(casing.Split(ident)), "%q to %s", ident, target)
		}
	}
}

func TestConvert_ConcurrentUse(t *testing.T) {
	t.Parallel()

	done := make(chan string, 8)

	for range 8 {
		go func() {
			got, _ := casing.Convert("someValue123Test", casing.ScreamingSnake)
			done <- got
		}()
	}

	for range 8 {
		assert.Equal(t, "SOME_VALUE_123_TEST", <-done)
	}
}
