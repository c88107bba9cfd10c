package ast

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoAdapter extracts structural facts from Go source using tree-sitter's
// Go grammar.
//
// Description:
//
//	A name is exported iff its first character is uppercase (Go's own
//	visibility convention — there is no `pub`/`export` keyword). Functions
//	include both `func` and method declarations. Type declarations
//	produce export entries whose kind is struct/interface/type as the
//	right-hand side dictates.
//
// Grounded on original_source/rust-cli/src/languages/go_lang.rs.
type GoAdapter struct{}

// Parse implements LanguageAdapter.
func (a *GoAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := golang.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}

	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration", "method_declaration":
			a.extractFunction(n, source, result)
		case "import_spec":
			a.extractImport(n, source, result)
		case "type_spec":
			a.extractType(n, source, result)
		}
	})

	return result, nil
}

func (a *GoAdapter) extractFunction(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)

	var params []string
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		params = goParamNames(paramsNode, source)
	}

	result.Functions = append(result.Functions, FunctionFact{
		Name:       name,
		StartLine:  startLine(n),
		EndLine:    endLine(n),
		Params:     params,
		IsExported: isGoExported(name),
	})

	if isGoExported(name) {
		result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportFunction})
	}
}

func goParamNames(paramsNode *sitter.Node, source []byte) []string {
	var names []string
	count := int(paramsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "parameter_declaration", "variadic_parameter_declaration":
			if id := FindChildOfType(child, "identifier"); id != nil {
				names = append(names, NodeText(id, source))
			}
		}
	}
	return names
}

func (a *GoAdapter) extractImport(n *sitter.Node, source []byte, result *ParseResult) {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return
	}
	path := StripQuotes(NodeText(pathNode, source))

	var name string
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		name = NodeText(nameNode, source)
	} else {
		name = lastSlashSegment(path)
	}

	result.Imports = append(result.Imports, ImportFact{
		Source: path,
		Names:  []string{name},
	})
}

func lastSlashSegment(path string) string {
	idx := -1
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			idx = i
		}
	}
	return path[idx+1:]
}

func (a *GoAdapter) extractType(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	exported := isGoExported(name)

	rhs := n.ChildByFieldName("type")
	kind := ExportType
	classKind := ClassKind("")
	switch {
	case rhs != nil && rhs.Type() == "struct_type":
		kind = ExportStruct
		classKind = ClassKindStruct
	case rhs != nil && rhs.Type() == "interface_type":
		kind = ExportInterface
		classKind = ClassKindInterface
	}

	if exported {
		result.Exports = append(result.Exports, ExportFact{Name: name, Kind: kind})
	}

	if classKind != "" {
		start, end := startLine(n), endLine(n)
		if decl := n.Parent(); decl != nil && decl.Type() == "type_declaration" {
			start, end = startLine(decl), endLine(decl)
		}
		result.Classes = append(result.Classes, ClassFact{
			Name:      name,
			StartLine: start,
			EndLine:   end,
			Kind:      classKind,
		})
	}
}

func isGoExported(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}
