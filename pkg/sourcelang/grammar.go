package sourcelang

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	golang "github.com/alexaandru/go-sitter-forest/go"
	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// ErrUnsupportedLanguage is returned when no grammar exists for a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var errNoRootNode = errors.New("parse produced no root node")

var grammarFuncs = map[Language]func() unsafe.Pointer{
	JavaScript: javascript.GetLanguage,
	TypeScript: typescript.GetLanguage,
	TSX:        tsx.GetLanguage,
	Go:         golang.GetLanguage,
}

var (
	grammarCache sync.Map
	parserPools  sync.Map
)

// Grammar returns the tree-sitter grammar for lang.
func Grammar(lang Language) (*sitter.Language, error) {
	if cached, ok := grammarCache.Load(lang); ok {
		grammar, castOK := cached.(*sitter.Language)
		if castOK {
			return grammar, nil
		}
	}

	fn, ok := grammarFuncs[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}

	grammar := sitter.NewLanguage(fn())
	grammarCache.Store(lang, grammar)

	return grammar, nil
}

// ParseTree parses content as lang. The caller must Close the returned tree.
// Syntax errors do not fail the parse; they appear as ERROR nodes in the tree.
func ParseTree(ctx context.Context, lang Language, content []byte) (*sitter.Tree, error) {
	pool, err := parserPool(lang)
	if err != nil {
		return nil, err
	}

	parser, ok := pool.Get().(*sitter.Parser)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	defer pool.Put(parser)

	tree, err := parser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lang, err)
	}

	if tree.RootNode().IsNull() {
		tree.Close()

		return nil, fmt.Errorf("parse %s: %w", lang, errNoRootNode)
	}

	return tree, nil
}

func parserPool(lang Language) (*sync.Pool, error) {
	if cached, ok := parserPools.Load(lang); ok {
		pool, castOK := cached.(*sync.Pool)
		if castOK {
			return pool, nil
		}
	}

	grammar, err := Grammar(lang)
	if err != nil {
		return nil, err
	}

	pool := &sync.Pool{
		New: func() any {
			parser := sitter.NewParser()
			parser.SetLanguage(grammar)

			return parser
		},
	}

	actual, _ := parserPools.LoadOrStore(lang, pool)

	resolved, ok := actual.(*sync.Pool)
	if !ok {
		return pool, nil
	}

	return resolved, nil
}
