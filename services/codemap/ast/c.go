package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// CAdapter extracts structural facts from C source.
//
// Description:
//
//	A function exports iff it is not declared `static`. Struct/class
//	forward declarations (no body) are skipped. Exports are deduplicated
//	by name, since the same struct or typedef name can otherwise surface
//	more than once across a header's declarations.
//
// Grounded on original_source/rust-cli/src/languages/c_lang.rs.
type CAdapter struct{}

// Parse implements LanguageAdapter.
func (a *CAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := c.GetLanguage()
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
	return result, nil
}

// extractCFunctions, extractCIncludes, extractCExports, and
// extractCClasses are shared between CAdapter and CppAdapter, matching
// the original's extract_c_* functions reused by both languages.

func extractCFunctions(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		if n.Type() != "function_definition" {
			return
		}
		funcDecl := FindDescendantOfType(n, "function_declarator")
		if funcDecl == nil {
			return
		}
		nameNode := funcDecl.ChildByFieldName("declarator")
		if nameNode == nil {
			return
		}
		name := NodeText(nameNode, source)
		isStatic := hasStorageClassStatic(n, source)

		var params []string
		if paramsNode := funcDecl.ChildByFieldName("parameters"); paramsNode != nil {
			params = extractCParams(paramsNode, source)
		}

		result.Functions = append(result.Functions, FunctionFact{
			Name:       name,
			StartLine:  startLine(n),
			EndLine:    endLine(n),
			Params:     params,
			IsExported: !isStatic,
		})
	})
}

func extractCIncludes(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		if n.Type() != "preproc_include" {
			return
		}
		pathNode := FindChildOfType(n, "system_lib_string")
		if pathNode == nil {
			pathNode = FindChildOfType(n, "string_literal")
		}
		if pathNode == nil {
			return
		}
		isSystem := pathNode.Type() == "system_lib_string"
		raw := strings.Trim(NodeText(pathNode, source), "<>\"")
		result.Imports = append(result.Imports, ImportFact{
			Source:    raw,
			IsDefault: isSystem,
		})
	})
}

func extractCExports(root *sitter.Node, source []byte, result *ParseResult) {
	seen := make(map[string]bool)
	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "function_definition":
			if hasStorageClassStatic(n, source) {
				return
			}
			funcDecl := FindDescendantOfType(n, "function_declarator")
			if funcDecl == nil {
				return
			}
			nameNode := funcDecl.ChildByFieldName("declarator")
			if nameNode == nil {
				return
			}
			name := bareIdentifier(NodeText(nameNode, source))
			if !seen[name] {
				seen[name] = true
				result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportFunction})
			}
		case "struct_specifier", "class_specifier":
			if n.ChildByFieldName("body") == nil {
				return
			}
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name := NodeText(nameNode, source)
				if !seen[name] {
					seen[name] = true
					result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportStruct})
				}
			}
		case "enum_specifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				name := NodeText(nameNode, source)
				if !seen[name] {
					seen[name] = true
					result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportEnum})
				}
			}
		case "type_definition":
			if nameNode := FindDescendantOfType(n, "type_identifier"); nameNode != nil {
				name := NodeText(nameNode, source)
				if !seen[name] {
					seen[name] = true
					result.Exports = append(result.Exports, ExportFact{Name: name, Kind: ExportTypedef})
				}
			}
		}
	})
}

func extractCClasses(root *sitter.Node, source []byte, result *ParseResult) {
	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "struct_specifier", "class_specifier":
			if n.ChildByFieldName("body") == nil {
				return
			}
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				kind := ClassKindStruct
				if n.Type() == "class_specifier" {
					kind = ClassKindClass
				}
				result.Classes = append(result.Classes, ClassFact{
					Name:      NodeText(nameNode, source),
					StartLine: startLine(n),
					EndLine:   endLine(n),
					Kind:      kind,
				})
			}
		}
	})
}

func hasStorageClassStatic(funcDef *sitter.Node, source []byte) bool {
	count := int(funcDef.ChildCount())
	for i := 0; i < count; i++ {
		child := funcDef.Child(i)
		if child != nil && child.Type() == "storage_class_specifier" && NodeText(child, source) == "static" {
			return true
		}
	}
	return false
}

func bareIdentifier(text string) string {
	if idx := strings.LastIndex(text, "::"); idx >= 0 {
		return text[idx+2:]
	}
	return text
}

func extractCParams(paramsNode *sitter.Node, source []byte) []string {
	var params []string
	count := int(paramsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := paramsNode.Child(i)
		if child == nil || child.Type() != "parameter_declaration" {
			continue
		}
		if decl := child.ChildByFieldName("declarator"); decl != nil {
			params = append(params, strings.TrimLeft(NodeText(decl, source), "*"))
		}
	}
	return params
}
