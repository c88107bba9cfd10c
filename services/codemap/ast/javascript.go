package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// JavaScriptAdapter extracts structural facts from JavaScript source.
// It mirrors TypeScriptAdapter's structure-recognition rules minus
// TypeScript-only forms (interfaces, type aliases): params keep their
// full text since there are no type annotations to strip.
//
// Grounded on original_source/rust-cli/src/languages/javascript.rs.
type JavaScriptAdapter struct{}

// Parse implements LanguageAdapter.
func (a *JavaScriptAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := javascript.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}

	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_declaration":
			extractJSFunctionDeclaration(n, source, result)
		case "lexical_declaration":
			extractJSArrowBinding(n, source, result)
		case "import_statement":
			extractTSImport(n, source, result)
		case "export_statement":
			extractJSExport(n, source, result)
		case "class_declaration":
			extractJSClass(n, source, result)
		}
	})

	return result, nil
}

func extractJSFunctionDeclaration(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	var params []string
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		params = extractJSParamNames(paramsNode, source)
	}
	exported := n.Parent() != nil && n.Parent().Type() == "export_statement"
	result.Functions = append(result.Functions, FunctionFact{
		Name:       name,
		StartLine:  startLine(n),
		EndLine:    endLine(n),
		Params:     params,
		IsExported: exported,
	})
}

func extractJSArrowBinding(n *sitter.Node, source []byte, result *ParseResult) {
	parent := n.Parent()
	isTopLevel := parent != nil && (parent.Type() == "program" || parent.Type() == "export_statement")
	if !isTopLevel {
		return
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || child.Type() != "variable_declarator" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil || value.Type() != "arrow_function" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := NodeText(nameNode, source)
		var params []string
		if paramsNode := value.ChildByFieldName("parameters"); paramsNode != nil {
			params = extractJSParamNames(paramsNode, source)
		}
		exported := parent.Type() == "export_statement"
		result.Functions = append(result.Functions, FunctionFact{
			Name:       name,
			StartLine:  startLine(n),
			EndLine:    endLine(n),
			Params:     params,
			IsExported: exported,
		})
	}
}

func extractJSParamNames(paramsNode *sitter.Node, source []byte) []string {
	text := NodeText(paramsNode, source)
	inner := strings.TrimPrefix(text, "(")
	inner = strings.TrimSuffix(inner, ")")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

func extractJSExport(n *sitter.Node, source []byte, result *ParseResult) {
	if fn := FindChildOfType(n, "function_declaration"); fn != nil {
		if nameNode := fn.ChildByFieldName("name"); nameNode != nil {
			result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportFunction})
		}
	}
	if cls := FindChildOfType(n, "class_declaration"); cls != nil {
		if nameNode := cls.ChildByFieldName("name"); nameNode != nil {
			result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportClass})
		}
	}
	if lex := FindChildOfType(n, "lexical_declaration"); lex != nil {
		count := int(lex.ChildCount())
		for i := 0; i < count; i++ {
			decl := lex.Child(i)
			if decl == nil || decl.Type() != "variable_declarator" {
				continue
			}
			nameNode := decl.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			kind := ExportVariable
			if value := decl.ChildByFieldName("value"); value != nil && value.Type() == "arrow_function" {
				kind = ExportFunction
			}
			result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: kind})
		}
	}
	if clause := FindChildOfType(n, "export_clause"); clause != nil {
		count := int(clause.ChildCount())
		for i := 0; i < count; i++ {
			spec := clause.Child(i)
			if spec == nil || spec.Type() != "export_specifier" {
				continue
			}
			nameNode := spec.ChildByFieldName("name")
			if nameNode == nil {
				nameNode = spec.NamedChild(0)
			}
			if nameNode != nil {
				result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportVariable})
			}
		}
	}
}

func extractJSClass(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	result.Classes = append(result.Classes, ClassFact{
		Name:      NodeText(nameNode, source),
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Methods:   extractTSClassMethods(n, source),
		Kind:      ClassKindClass,
	})
}
