// Package constnaming implements the top-level constant naming check: every
// constant declared at the top level of a source file must be spelled in the
// configured case style.
package constnaming

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/levenshtein"
)

// RuleName identifies the check in diagnostics and reports.
const RuleName = "top-level-constant-naming"

// DeclarationType classifies the value a constant is initialized with.
type DeclarationType string

// Declaration types that can be skipped.
const (
	DeclarationOther    DeclarationType = ""
	DeclarationString   DeclarationType = "string"
	DeclarationNumber   DeclarationType = "number"
	DeclarationBoolean  DeclarationType = "boolean"
	DeclarationArray    DeclarationType = "array"
	DeclarationObject   DeclarationType = "object"
	DeclarationFunction DeclarationType = "function"
)

// Sentinel errors for option validation.
var (
	ErrInvalidCasing          = errors.New("casing must be one of camelCase, pascalCase, snakeCase, screamingSnakeCase")
	ErrInvalidPattern         = errors.New("invalid file pattern")
	ErrUnknownDeclarationType = errors.New("unknown declaration type")
)

// DeclarationTypes returns every skippable declaration type.
func DeclarationTypes() []DeclarationType {
	return []DeclarationType{
		DeclarationString, DeclarationNumber, DeclarationBoolean,
		DeclarationArray, DeclarationObject, DeclarationFunction,
	}
}

// ParseDeclarationType parses a declaration type name.
func ParseDeclarationType(name string) (DeclarationType, error) {
	dt := DeclarationType(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(DeclarationTypes(), dt) {
		names := make([]string, 0, len(DeclarationTypes()))
		for _, known := range DeclarationTypes() {
			names = append(names, string(known))
		}

		return DeclarationOther, fmt.Errorf("%w: %q%s", ErrUnknownDeclarationType, name, levenshtein.Hint(name, names))
	}

	return dt, nil
}

// Options configures the check.
type Options struct {
	// Casing is the style every checked constant must use.
	Casing casing.Style

	// Pattern restricts the check to files whose path matches. Empty matches all files.
	Pattern string

	// SkipDeclarationTypes lists initializer kinds whose constants are not checked.
	SkipDeclarationTypes []DeclarationType

	// IncludeExported also checks exported declarations.
	IncludeExported bool
}

// DefaultOptions returns options requiring SCREAMING_SNAKE_CASE everywhere.
func DefaultOptions() Options {
	return Options{Casing: casing.ScreamingSnake}
}

// Validate checks the options and returns every problem found.
func (o Options) Validate() error {
	var errs []error

	if !o.Casing.Strict() {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidCasing, o.Casing))
	}

	if o.Pattern != "" {
		if _, err := glob.Compile(o.Pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w %q: %w", ErrInvalidPattern, o.Pattern, err))
		}
	}

	for _, dt := range o.SkipDeclarationTypes {
		if !slices.Contains(DeclarationTypes(), dt) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDeclarationType, dt))
		}
	}

	return errors.Join(errs...)
}

// Skips reports whether constants initialized with a value of type dt are ignored.
func (o Options) Skips(dt DeclarationType) bool {
	return dt != DeclarationOther && slices.Contains(o.SkipDeclarationTypes, dt)
}

// Fingerprint returns a stable digest of the options for cache keys.
func (o Options) Fingerprint() string {
	skips := make([]string, len(o.SkipDeclarationTypes))
	for i, dt := range o.SkipDeclarationTypes {
		skips[i] = string(dt)
	}

	slices.Sort(skips)

	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%t",
		o.Casing, o.Pattern, strings.Join(skips, ","), o.IncludeExported))

	return hex.EncodeToString(sum[:])
}

// fileMatcher decides whether a file is subject to the check.
type fileMatcher struct {
	pattern  glob.Glob
	baseOnly bool
}

func newFileMatcher(pattern string) (*fileMatcher, error) {
	if pattern == "" {
		return nil, nil //nolint:nilnil // nil matcher matches everything
	}

	compiled, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
	}

	return &fileMatcher{pattern: compiled, baseOnly: !strings.Contains(pattern, "/")}, nil
}

// Match reports whether name is included. Patterns without a slash also match
// against the base name, so "*.ts" selects TypeScript files at any depth.
func (m *fileMatcher) Match(name string) bool {
	if m == nil {
		return true
	}

	slashed := filepath.ToSlash(name)
	if m.pattern.Match(slashed) {
		return true
	}

	return m.baseOnly && m.pattern.Match(path.Base(slashed))
}
