package constnaming

import sitter "github.com/alexaandru/go-tree-sitter-bare"

var goValueTypes = map[string]DeclarationType{
	"interpreted_string_literal": DeclarationString,
	"raw_string_literal":         DeclarationString,
	"rune_literal":               DeclarationString,
	"int_literal":                DeclarationNumber,
	"float_literal":              DeclarationNumber,
	"imaginary_literal":          DeclarationNumber,
	"true":                       DeclarationBoolean,
	"false":                      DeclarationBoolean,
}

// extractGo finds names bound by top-level const declarations, grouped or not.
// Exported names are included only when includeExported is set.
func extractGo(root sitter.Node, src []byte, includeExported bool) []declaration {
	var decls []declaration

	for idx := range root.NamedChildCount() {
		constDecl := root.NamedChild(idx)
		if constDecl.Type() != "const_declaration" {
			continue
		}

		for specIdx := range constDecl.NamedChildCount() {
			spec := constDecl.NamedChild(specIdx)
			if spec.Type() != "const_spec" {
				continue
			}

			decls = appendConstSpec(decls, spec, src, includeExported)
		}
	}

	return decls
}

func appendConstSpec(decls []declaration, spec sitter.Node, src []byte, includeExported bool) []declaration {
	var values []sitter.Node

	if list := spec.ChildByFieldName("value"); !list.IsNull() {
		for idx := range list.NamedChildCount() {
			values = append(values, list.NamedChild(idx))
		}
	}

	position := 0

	for idx := range spec.NamedChildCount() {
		name := spec.NamedChild(idx)
		if name.Type() != "identifier" {
			continue
		}

		valueType := DeclarationOther
		if position < len(values) {
			valueType = goValueTypes[values[position].Type()]
		}

		position++

		text := string(src[name.StartByte():name.EndByte()])
		if text == "_" {
			continue
		}

		if goExported(text) && !includeExported {
			continue
		}

		decls = append(decls, declaration{name: name, declType: valueType})
	}

	return decls
}
