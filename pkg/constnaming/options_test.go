package constnaming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, constnaming.DefaultOptions().Validate())

	err := constnaming.Options{
		Casing:               casing.Mixed,
		Pattern:              "src/[",
		SkipDeclarationTypes: []constnaming.DeclarationType{"regexp"},
	}.Validate()

	require.ErrorIs(t, err, constnaming.ErrInvalidCasing)
	require.ErrorIs(t, err, constnaming.ErrInvalidPattern)
	require.ErrorIs(t, err, constnaming.ErrUnknownDeclarationType)
}

func TestNewChecker_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := constnaming.NewChecker(constnaming.Options{})
	require.ErrorIs(t, err, constnaming.ErrInvalidCasing)
}

func TestParseDeclarationType(t *testing.T) {
	t.Parallel()

	for _, dt := range constnaming.DeclarationTypes() {
		got, err := constnaming.ParseDeclarationType(string(dt))
		require.NoError(t, err)
		assert.Equal(t, dt, got)
	}

	got, err := constnaming.ParseDeclarationType(" Function ")
	require.NoError(t, err)
	assert.Equal(t, constnaming.DeclarationFunction, got)

	_, err = constnaming.ParseDeclarationType("class")
	require.ErrorIs(t, err, constnaming.ErrUnknownDeclarationType)
}

func TestOptions_Skips(t *testing.T) {
	t.Parallel()

	opts := constnaming.Options{
		Casing:               casing.Snake,
		SkipDeclarationTypes: []constnaming.DeclarationType{constnaming.DeclarationObject},
	}

	assert.True(t, opts.Skips(constnaming.DeclarationObject))
	assert.False(t, opts.Skips(constnaming.DeclarationArray))
	assert.False(t, opts.Skips(constnaming.DeclarationOther))
}

func TestOptions_Fingerprint(t *testing.T) {
	t.Parallel()

	a := constnaming.Options{
		Casing: casing.Snake,
		SkipDeclarationTypes: []constnaming.DeclarationType{
			constnaming.DeclarationString, constnaming.DeclarationArray,
		},
	}
	b := constnaming.Options{
		Casing: casing.Snake,
		SkipDeclarationTypes: []constnaming.DeclarationType{
			constnaming.DeclarationArray, constnaming.DeclarationString,
		},
	}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	b.IncludeExported = true
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b = a
	b.Casing = casing.Camel
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
