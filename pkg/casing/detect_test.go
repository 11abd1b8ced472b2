package casing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ident string
		want  casing.Style
	}{
		{"someValue", casing.Camel},
		{"someValue123Test", casing.Camel},
		{"getHTTPResponse", casing.Camel},
		{"fooBAR", casing.Camel},
		{"SomeValue", casing.Pascal},
		{"SomeValue123Test", casing.Pascal},
		{"HTMLParser", casing.Pascal},
		{"some_value", casing.Snake},
		{"some_value_123_test", casing.Snake},
		{"a_", casing.Snake},
		{"SOME_VALUE", casing.ScreamingSnake},
		{"MAX_RETRY_COUNT_2", casing.ScreamingSnake},

		// Fallbacks.
		{"", casing.Mixed},
		{"value", casing.Mixed},
		{"Value", casing.Mixed},
		{"VALUE", casing.Mixed},
		{"URL", casing.Mixed},
		{"A", casing.Mixed},
		{"A1", casing.Mixed},
		{"SOME_VALUE_123_test", casing.Mixed},
		{"Foo_Bar", casing.Mixed},
		{"_private", casing.Mixed},
		{"1abc", casing.Mixed},
		{"foo-bar", casing.Mixed},
		{"$el", casing.Mixed},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, casing.Detect(tt.ident))
		})
	}
}
