package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScriptAdapter extracts structural facts from TypeScript and TSX
// source.
//
// Description:
//
//	A declaration is exported iff its immediate parent is an
//	export_statement: `export function foo`, `export class Bar`,
//	`export const baz = () => {}`. `export { a, b }` re-export clauses
//	and bare top-level `const`/arrow-function bindings are also
//	recognized, matching the four surface forms TypeScript offers.
//
// Grounded on original_source/rust-cli/src/languages/typescript.rs.
type TypeScriptAdapter struct {
	TSX bool
}

// Parse implements LanguageAdapter.
func (a *TypeScriptAdapter) Parse(source []byte) (*ParseResult, error) {
	var tsLang *sitter.Language
	if a.TSX {
		tsLang = tsx.GetLanguage()
	} else {
		tsLang = typescript.GetLanguage()
	}
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
			extractTSFunctionDeclaration(n, source, result)
		case "lexical_declaration":
			extractTSArrowBinding(n, source, result)
		case "import_statement":
			extractTSImport(n, source, result)
		case "export_statement":
			extractTSExport(n, source, result)
		case "class_declaration":
			extractTSClass(n, source, result)
		case "interface_declaration":
			extractTSInterface(n, source, result)
		}
	})

	return result, nil
}

func extractTSFunctionDeclaration(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	var params []string
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		params = extractTSParamNames(paramsNode, source)
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

// extractTSArrowBinding handles `const foo = (args) => {...}` at module
// top level, including when wrapped in `export const ...`.
func extractTSArrowBinding(n *sitter.Node, source []byte, result *ParseResult) {
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
			params = extractTSParamNames(paramsNode, source)
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

// extractTSParamNames splits a parameter list's raw text on commas and
// drops type annotations, matching the original's plain-text approach
// rather than walking individual parameter nodes.
func extractTSParamNames(paramsNode *sitter.Node, source []byte) []string {
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
		if idx := strings.Index(part, ":"); idx >= 0 {
			part = part[:idx]
		}
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

func extractTSImport(n *sitter.Node, source []byte, result *ParseResult) {
	sourceNode := n.ChildByFieldName("source")
	if sourceNode == nil {
		sourceNode = FindChildOfType(n, "string")
	}
	if sourceNode == nil {
		return
	}
	src := StripQuotes(NodeText(sourceNode, source))

	var names []string
	if clause := FindChildOfType(n, "import_clause"); clause != nil {
		if named := FindChildOfType(clause, "named_imports"); named != nil {
			specCount := int(named.ChildCount())
			for i := 0; i < specCount; i++ {
				spec := named.Child(i)
				if spec == nil || spec.Type() != "import_specifier" {
					continue
				}
				nameNode := spec.ChildByFieldName("name")
				if nameNode == nil {
					nameNode = spec.NamedChild(0)
				}
				if nameNode != nil {
					names = append(names, NodeText(nameNode, source))
				}
			}
		}
		clauseCount := int(clause.ChildCount())
		for i := 0; i < clauseCount; i++ {
			child := clause.Child(i)
			if child != nil && child.Type() == "identifier" {
				names = append(names, NodeText(child, source))
			}
		}
	}

	result.Imports = append(result.Imports, ImportFact{Source: src, Names: names})
}

func extractTSExport(n *sitter.Node, source []byte, result *ParseResult) {
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
	if iface := FindChildOfType(n, "interface_declaration"); iface != nil {
		if nameNode := iface.ChildByFieldName("name"); nameNode != nil {
			result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportInterface})
		}
	}
	if ta := FindChildOfType(n, "type_alias_declaration"); ta != nil {
		if nameNode := ta.ChildByFieldName("name"); nameNode != nil {
			result.Exports = append(result.Exports, ExportFact{Name: NodeText(nameNode, source), Kind: ExportType})
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

func extractTSClass(n *sitter.Node, source []byte, result *ParseResult) {
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

func extractTSInterface(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	result.Classes = append(result.Classes, ClassFact{
		Name:      NodeText(nameNode, source),
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Kind:      ClassKindInterface,
	})
}

func extractTSClassMethods(classNode *sitter.Node, source []byte) []string {
	var methods []string
	WalkNodes(classNode, func(n *sitter.Node) {
		if n.Type() != "method_definition" {
			return
		}
		if nameNode := n.ChildByFieldName("name"); nameNode != nil {
			methods = append(methods, NodeText(nameNode, source))
		}
	})
	return methods
}
