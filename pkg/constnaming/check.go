package constnaming

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/casefang/pkg/casing"
	"github.com/Sumatoshi-tech/casefang/pkg/sourcelang"
)

// ErrUnsupportedLanguage is returned for files in a language the check cannot parse.
var ErrUnsupportedLanguage = sourcelang.ErrUnsupportedLanguage

// Result is the outcome of checking one file.
type Result struct {
	File        string              `json:"file"              yaml:"file"`
	Language    sourcelang.Language `json:"language"          yaml:"language"`
	Constants   int                 `json:"constants"         yaml:"constants"`
	Skipped     bool                `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Diagnostics []Diagnostic        `json:"diagnostics"       yaml:"diagnostics"`
}

// declaration is a top-level constant name found in a syntax tree.
type declaration struct {
	name     sitter.Node
	declType DeclarationType
}

// extractFunc collects top-level constant declarations from a parsed file.
type extractFunc func(root sitter.Node, src []byte, includeExported bool) []declaration

var extractors = map[sourcelang.Language]extractFunc{
	sourcelang.JavaScript: extractECMAScript,
	sourcelang.TypeScript: extractECMAScript,
	sourcelang.TSX:        extractECMAScript,
	sourcelang.Go:         extractGo,
}

// Checker runs the check with fixed options. It is safe for concurrent use.
type Checker struct {
	opts    Options
	matcher *fileMatcher
}

// NewChecker validates opts and returns a Checker.
func NewChecker(opts Options) (*Checker, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("constnaming options: %w", err)
	}

	matcher, err := newFileMatcher(opts.Pattern)
	if err != nil {
		return nil, err
	}

	return &Checker{opts: opts, matcher: matcher}, nil
}

// Options returns the options the checker was built with.
func (c *Checker) Options() Options {
	return c.opts
}

// Includes reports whether file is selected by the configured pattern.
func (c *Checker) Includes(file string) bool {
	return c.matcher.Match(file)
}

// Check detects the language of file and checks src.
func (c *Checker) Check(ctx context.Context, file string, src []byte) (Result, error) {
	if !c.Includes(file) {
		return Result{File: file, Skipped: true}, nil
	}

	return c.check(ctx, sourcelang.Detect(file, src), file, src)
}

// CheckLanguage checks src as lang. The file name is used for pattern matching
// and reported in diagnostics.
func (c *Checker) CheckLanguage(ctx context.Context, lang sourcelang.Language, file string, src []byte) (Result, error) {
	if file != "" && !c.Includes(file) {
		return Result{File: file, Language: lang, Skipped: true}, nil
	}

	return c.check(ctx, lang, file, src)
}

func (c *Checker) check(ctx context.Context, lang sourcelang.Language, file string, src []byte) (Result, error) {
	extract, ok := extractors[lang]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedLanguage, file, lang)
	}

	tree, err := sourcelang.ParseTree(ctx, lang, src)
	if err != nil {
		return Result{}, fmt.Errorf("check %s: %w", file, err)
	}
	defer tree.Close()

	res := Result{File: file, Language: lang, Diagnostics: []Diagnostic{}}

	for _, decl := range extract(tree.RootNode(), src, c.opts.IncludeExported) {
		if c.opts.Skips(decl.declType) {
			continue
		}

		res.Constants++

		diag, violated, err := c.inspect(lang, file, src, decl)
		if err != nil {
			return Result{}, err
		}

		if violated {
			res.Diagnostics = append(res.Diagnostics, diag)
		}
	}

	return res, nil
}

func (c *Checker) inspect(lang sourcelang.Language, file string, src []byte, decl declaration) (Diagnostic, bool, error) {
	startByte, endByte := int(decl.name.StartByte()), int(decl.name.EndByte())
	name := string(src[startByte:endByte])

	expected, err := casing.Convert(name, c.opts.Casing)
	if err != nil {
		return Diagnostic{}, false, fmt.Errorf("convert %s: %w", name, err)
	}

	if expected == name || expected == "" {
		return Diagnostic{}, false, nil
	}

	start, end := decl.name.StartPoint(), decl.name.EndPoint()

	diag := Diagnostic{
		File:            file,
		Rule:            RuleName,
		Name:            name,
		Expected:        expected,
		Message:         message(name, expected),
		DeclarationType: decl.declType,
		Start:           Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:             Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
		StartByte:       startByte,
		EndByte:         endByte,
	}

	// Renaming a Go identifier across the upper/lower boundary changes its visibility.
	if lang != sourcelang.Go || goExported(name) == goExported(expected) {
		diag.Fix = &Fix{Start: startByte, End: endByte, Replacement: expected}
	}

	return diag, true, nil
}

func goExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)

	return unicode.IsUpper(r)
}
