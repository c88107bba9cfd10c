package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// CppAdapter extracts structural facts from C++ source.
//
// Description:
//
//	Functions, includes, and exports reuse the C adapter's extraction
//	logic unchanged (a C++ function name may carry a "::" qualifier, but
//	the declarator text already contains it). Classes additionally gain
//	their method lists, and enums and namespaces are collected as
//	ClassFacts; namespaces are never added to Exports.
//
// Grounded on original_source/rust-cli/src/languages/cpp.rs.
type CppAdapter struct{}

// Parse implements LanguageAdapter.
func (a *CppAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := cpp.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}
	extractCFunctions(root, source, result)
	extractCIncludes(root, source, result)
	extractCExports(root, source, result)
	extractCClasses(root, source, result)

	attachCppMethods(root, source, result)
	extractCppEnums(root, source, result)
	extractCppNamespaces(root, source, result)

	return result, nil
}

func attachCppMethods(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		if n.Type() != "class_specifier" {
			return
		}
		if n.ChildByFieldName("body") == nil {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		className := NodeText(nameNode, source)
		for i := range result.Classes {
			if result.Classes[i].Name == className && result.Classes[i].Kind == ClassKindClass {
				result.Classes[i].Methods = extractCppMethods(n, source)
			}
		}
	})
}

func extractCppMethods(classNode *sitter.Node, source []byte) []string {
	var methods []string
	WalkNodes(classNode, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		funcDecl := FindDescendantOfType(n, "function_declarator")
		if funcDecl == nil {
			return
		}
		if nameNode := funcDecl.ChildByFieldName("declarator"); nameNode != nil {
			methods = append(methods, NodeText(nameNode, source))
		}
	})
	return methods
}

func extractCppEnums(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		if n.Type() != "enum_specifier" {
			return
		}
		if n.ChildByFieldName("body") == nil {
			return
		}
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			result.Classes = append(result.Classes, ClassFact{
				Name:      NodeText(nameNode, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
				Kind:      ClassKindEnum,
			})
		}
	})
}

func extractCppNamespaces(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		if n.Type() != "namespace_definition" {
			return
		}
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			result.Classes = append(result.Classes, ClassFact{
				Name:      NodeText(nameNode, source),
				StartLine: startLine(n),
				EndLine:   endLine(n),
				Kind:      ClassKindNamespace,
			})
		}
	})
}
