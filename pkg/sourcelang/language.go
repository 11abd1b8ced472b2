// Package sourcelang maps source files to the languages casefang can check and
// provides tree-sitter parsers for them.
package sourcelang

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Language identifies a supported source language.
type Language string

// Supported languages.
const (
	Unknown    Language = ""
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Go         Language = "go"
)

var extensionLanguages = map[string]Language{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
	".go":  Go,
}

// enryLanguages maps linguist names returned by enry to supported languages.
var enryLanguages = map[string]Language{
	"JavaScript": JavaScript,
	"TypeScript": TypeScript,
	"TSX":        TSX,
	"Go":         Go,
}

// Detect returns the language of the file at name. The extension decides when it
// is known; otherwise enry inspects the file name and content, which recognizes
// shebang scripts such as "#!/usr/bin/env node". Binary content and everything
// else is Unknown.
func Detect(name string, content []byte) Language {
	if lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}

	if len(content) == 0 || enry.IsBinary(content) {
		return Unknown
	}

	return enryLanguages[enry.GetLanguage(path.Base(filepath.ToSlash(name)), content)]
}

// Parse returns the language for a user-supplied name such as "ts" or "Go".
func Parse(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "javascript", "js", "jsx":
		return JavaScript
	case "typescript", "ts":
		return TypeScript
	case "tsx":
		return TSX
	case "go", "golang":
		return Go
	default:
		return Unknown
	}
}

// Supported reports whether lang can be checked.
func (lang Language) Supported() bool {
	_, ok := grammarFuncs[lang]

	return ok
}

// String returns the language name, or "unknown".
func (lang Language) String() string {
	if lang == Unknown {
		return "unknown"
	}

	return string(lang)
}

// IsVendor reports whether the slash-separated path points into third-party or
// generated trees (node_modules, vendor, minified bundles) that are not worth checking.
func IsVendor(name string) bool {
	return enry.IsVendor(filepath.ToSlash(name))
}

// Languages returns every supported language.
func Languages() []Language {
	return []Language{JavaScript, TypeScript, TSX, Go}
}
