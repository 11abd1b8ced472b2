package constnaming

import sitter "github.com/alexaandru/go-tree-sitter-bare"

// ecmaValueTypes maps initializer node types of the JavaScript and TypeScript
// grammars to declaration types.
var ecmaValueTypes = map[string]DeclarationType{
	"arrow_function":      DeclarationFunction,
	"function":            DeclarationFunction,
	"function_expression": DeclarationFunction,
	"generator_function":  DeclarationFunction,
	"object":              DeclarationObject,
	"array":               DeclarationArray,
	"string":              DeclarationString,
	"template_string":     DeclarationString,
	"number":              DeclarationNumber,
	"true":                DeclarationBoolean,
	"false":               DeclarationBoolean,
}

// extractECMAScript finds `const` declarations that are direct children of the
// program, and of top-level export statements when includeExported is set.
func extractECMAScript(root sitter.Node, _ []byte, includeExported bool) []declaration {
	var decls []declaration

	for idx := range root.NamedChildCount() {
		child := root.NamedChild(idx)

		switch child.Type() {
		case "lexical_declaration":
			decls = appendLexical(decls, child)
		case "export_statement":
			if !includeExported {
				continue
			}

			if inner := child.ChildByFieldName("declaration"); !inner.IsNull() && inner.Type() == "lexical_declaration" {
				decls = appendLexical(decls, inner)
			}
		}
	}

	return decls
}

func appendLexical(decls []declaration, lexical sitter.Node) []declaration {
	if lexical.ChildCount() == 0 || lexical.Child(0).Type() != "const" {
		return decls
	}

	for idx := range lexical.NamedChildCount() {
		declarator := lexical.NamedChild(idx)
		if declarator.Type() != "variable_declarator" {
			continue
		}

		name := declarator.ChildByFieldName("name")
		if name.IsNull() || name.Type() != "identifier" {
			continue
		}

		decls = append(decls, declaration{
			name:     name,
			declType: ecmaValueType(declarator.ChildByFieldName("value")),
		})
	}

	return decls
}

func ecmaValueType(value sitter.Node) DeclarationType {
	if value.IsNull() {
		return DeclarationOther
	}

	return ecmaValueTypes[value.Type()]
}
