package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// PythonAdapter extracts structural facts from Python source.
//
// Description:
//
//	Functions and classes are scanned only at module top level
//	(decorators are unwrapped transparently); Python has no visibility
//	keyword so every top-level function is exported. Exports prefer an
//	explicit `__all__` list when present; otherwise every top-level
//	function and class name is an export.
//
// Grounded on original_source/rust-cli/src/languages/python.rs.
type PythonAdapter struct{}

// Parse implements LanguageAdapter.
func (a *PythonAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := python.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}

	extractPythonFunctions(root, source, result)
	extractPythonImports(root, source, result)
	extractPythonExports(root, source, result)
	extractPythonClasses(root, source, result)

	return result, nil
}

func unwrapDecorated(n *sitter.Node, expected string) *sitter.Node {
	if n.Type() == expected {
		return n
	}
	if n.Type() == "decorated_definition" {
		if child := FindChildOfType(n, expected); child != nil {
			return child
		}
	}
	return nil
}

func extractPythonFunctions(root *sitter.Node, source []byte, result *ParseResult) {
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		fn := unwrapDecorated(child, "function_definition")
		if fn == nil {
			continue
		}
		nameNode := fn.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		var params []string
		if paramsNode := fn.ChildByFieldName("parameters"); paramsNode != nil {
			params = extractPythonParams(paramsNode, source)
		}
		result.Functions = append(result.Functions, FunctionFact{
			Name:       NodeText(nameNode, source),
			StartLine:  startLine(child),
			EndLine:    endLine(child),
			Params:     params,
			IsExported: true,
		})
	}
}

func extractPythonParams(paramsNode *sitter.Node, source []byte) []string {
	var params []string
	count := int(paramsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier":
			params = append(params, NodeText(child, source))
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if nameNode := child.NamedChild(0); nameNode != nil {
				params = append(params, NodeText(nameNode, source))
			}
		}
	}
	return params
}

func extractPythonImports(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "import_statement":
			extractPythonPlainImport(n, source, result)
		case "import_from_statement":
			extractPythonFromImport(n, source, result)
		}
	})
}

func extractPythonPlainImport(n *sitter.Node, source []byte, result *ParseResult) {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			name := NodeText(child, source)
			result.Imports = append(result.Imports, ImportFact{Source: name, Names: []string{name}})
		case "aliased_import":
			if nameNode := child.NamedChild(0); nameNode != nil {
				name := NodeText(nameNode, source)
				result.Imports = append(result.Imports, ImportFact{Source: name, Names: []string{name}})
			}
		}
	}
}

func extractPythonFromImport(n *sitter.Node, source []byte, result *ParseResult) {
	var module string
	if moduleNode := n.ChildByFieldName("module_name"); moduleNode != nil {
		module = NodeText(moduleNode, source)
	}

	var names []string
	pastImport := false
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "import" {
			pastImport = true
			continue
		}
		if !pastImport {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			names = append(names, NodeText(child, source))
		case "aliased_import":
			if nameNode := child.NamedChild(0); nameNode != nil {
				names = append(names, NodeText(nameNode, source))
			}
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	result.Imports = append(result.Imports, ImportFact{Source: module, Names: names})
}

func extractPythonExports(root *sitter.Node, source []byte, result *ParseResult) {
	if names, ok := extractDunderAll(root, source); ok {
		for _, name := range names {
			result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportVariable})
		}
		return
	}

	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if fn := unwrapDecorated(child, "function_definition"); fn != nil {
			if nameNode := fn.ChildByFieldName("name"); nameNode != nil {
				result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportFunction})
			}
			continue
		}
		if cls := unwrapDecorated(child, "class_definition"); cls != nil {
			if nameNode := cls.ChildByFieldName("name"); nameNode != nil {
				result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportClass})
			}
		}
	}
}

func extractPythonClasses(root *sitter.Node, source []byte, result *ParseResult) {
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		cls := unwrapDecorated(child, "class_definition")
		if cls == nil {
			continue
		}
		nameNode := cls.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		result.Classes = append(result.Classes, ClassFact{
			Name:      NodeText(nameNode, source),
			StartLine: startLine(child),
			EndLine:   endLine(child),
			Methods:   extractPythonClassMethods(cls, source),
			Kind:      ClassKindClass,
		})
	}
}

func extractPythonClassMethods(classNode *sitter.Node, source []byte) []string {
	body := classNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var methods []string
	count := int(body.ChildCount())
	for i := 0; i < count; i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		fn := unwrapDecorated(child, "function_definition")
		if fn == nil {
			continue
		}
		if nameNode := fn.ChildByFieldName("name"); nameNode != nil {
			methods = append(methods, NodeText(nameNode, source))
		}
	}
	return methods
}

func extractDunderAll(root *sitter.Node, source []byte) ([]string, bool) {
	count := int(root.ChildCount())
	for i := 0; i < count; i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		assignment := child
		if child.Type() == "expression_statement" {
			assignment = child.NamedChild(0)
		}
		if assignment == nil || assignment.Type() != "assignment" {
			continue
		}
		left := assignment.ChildByFieldName("left")
		if left == nil || NodeText(left, source) != "__all__" {
			continue
		}
		right := assignment.ChildByFieldName("right")
		if right == nil {
			continue
		}
		if names, ok := extractListStrings(right, source); ok {
			return names, true
		}
	}
	return nil, false
}

func extractListStrings(listNode *sitter.Node, source []byte) ([]string, bool) {
	if listNode.Type() != "list" {
		return nil, false
	}
	var strs []string
	count := int(listNode.ChildCount())
	for i := 0; i < count; i++ {
		child := listNode.Child(i)
		if child != nil && child.Type() == "string" {
			strs = append(strs, StripQuotes(NodeText(child, source)))
		}
	}
	return strs, true
}
