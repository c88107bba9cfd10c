package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// RustAdapter extracts structural facts from Rust source.
//
// Description:
//
//	A node exports iff it carries a `pub` visibility modifier AND is not
//	nested inside an `impl` block. Function names declared inside
//	`impl TypeName { ... }` are rendered "TypeName::method" regardless of
//	visibility, matching the convention for qualified method names.
//
// Grounded on original_source/rust-cli/src/languages/rust_lang.rs.
type RustAdapter struct{}

// Parse implements LanguageAdapter.
func (a *RustAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := rust.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}

	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_item":
			a.extractFunction(n, source, result)
		case "struct_item", "enum_item", "trait_item":
			a.extractClassLike(n, source, result)
		case "type_item", "mod_item":
			a.extractExportOnly(n, source, result)
		case "use_declaration":
			a.extractImport(n, source, result)
		}
	})

	return result, nil
}

func hasPubVisibility(n *sitter.Node, source []byte) bool {
	vis := FindChildOfType(n, "visibility_modifier")
	if vis == nil {
		return false
	}
	return strings.Contains(NodeText(vis, source), "pub")
}

func isInsideImpl(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			return true
		}
	}
	return false
}

func enclosingImplType(n *sitter.Node, source []byte) (string, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "impl_item" {
			if typeNode := p.ChildByFieldName("type"); typeNode != nil {
				return NodeText(typeNode, source), true
			}
			return "", false
		}
	}
	return "", false
}

func (a *RustAdapter) extractFunction(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	exported := hasPubVisibility(n, source) && !isInsideImpl(n)

	if implType, ok := enclosingImplType(n, source); ok {
		name = implType + "::" + name
	}

	var params []string
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		params = rustParamNames(paramsNode, source)
	}

	result.Functions = append(result.Functions, FunctionFact{
		Name:       name,
		StartLine:  startLine(n),
		EndLine:    endLine(n),
		Params:     params,
		IsExported: exported,
	})

	if exported {
		result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportFunction})
	}
}

func rustParamNames(paramsNode *sitter.Node, source []byte) []string {
	var names []string
	count := int(paramsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "parameter":
			if pattern := child.ChildByFieldName("pattern"); pattern != nil {
				names = append(names, NodeText(pattern, source))
			}
		case "self_parameter", "variadic_parameter":
			names = append(names, NodeText(child, source))
		}
	}
	return names
}

func (a *RustAdapter) extractClassLike(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	exported := hasPubVisibility(n, source) && !isInsideImpl(n)

	var exportKind ExportKind
	var classKind ClassKind
	switch n.Type() {
	case "struct_item":
		exportKind, classKind = ExportStruct, ClassKindStruct
	case "enum_item":
		exportKind, classKind = ExportEnum, ClassKindEnum
	case "trait_item":
		exportKind, classKind = ExportTrait, ClassKindTrait
	}

	if exported {
		result.Exports = append(result.Exports, ExportFact{Name: name, Kind: exportKind})
	}
	result.Classes = append(result.Classes, ClassFact{
		Name:      name,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Kind:      classKind,
	})
}

func (a *RustAdapter) extractExportOnly(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	if !hasPubVisibility(n, source) || isInsideImpl(n) {
		return
	}
	kind := ExportType
	if n.Type() == "mod_item" {
		kind = ExportModule
	}
	result.Exports = append(result.Exports, ExportFact{Name: name, Kind: kind})
}

func (a *RustAdapter) extractImport(n *sitter.Node, source []byte, result *ParseResult) {
	argument := n.ChildByFieldName("argument")
	if argument == nil {
		return
	}
	parseUseTree(argument, source, result)
}

// parseUseTree walks one `use` tree node, appending one or more
// ImportFacts. Grounded on parse_use_tree/extract_use_list_symbols in
// original_source/rust-cli/src/languages/rust_lang.rs.
func parseUseTree(node *sitter.Node, source []byte, result *ParseResult) {
	switch node.Type() {
	case "scoped_use_list":
		pathNode := node.ChildByFieldName("path")
		listNode := node.ChildByFieldName("list")
		if pathNode == nil || listNode == nil {
			return
		}
		path := NodeText(pathNode, source)
		names := extractUseListSymbols(listNode, source)
		result.Imports = append(result.Imports, ImportFact{Source: path, Names: names})
	case "scoped_identifier":
		pathNode := node.ChildByFieldName("path")
		nameNode := node.ChildByFieldName("name")
		if pathNode == nil || nameNode == nil {
			return
		}
		path := NodeText(pathNode, source)
		name := NodeText(nameNode, source)
		result.Imports = append(result.Imports, ImportFact{Source: path, Names: []string{name}})
	case "use_list":
		names := extractUseListSymbols(node, source)
		result.Imports = append(result.Imports, ImportFact{Names: names})
	case "use_wildcard":
		if pathNode := FindChildOfType(node, "scoped_identifier"); pathNode != nil {
			path := NodeText(pathNode, source)
			result.Imports = append(result.Imports, ImportFact{Source: path, Names: []string{"*"}})
		}
	case "identifier", "self":
		name := NodeText(node, source)
		result.Imports = append(result.Imports, ImportFact{Source: name, Names: []string{name}})
	}
}

func extractUseListSymbols(listNode *sitter.Node, source []byte) []string {
	var names []string
	count := int(listNode.ChildCount())
	for i := 0; i < count; i++ {
		child := listNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "identifier", "self":
			names = append(names, NodeText(child, source))
		case "scoped_identifier":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				names = append(names, NodeText(nameNode, source))
			}
		}
	}
	return names
}
