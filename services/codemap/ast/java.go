package ast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// JavaAdapter extracts structural facts from Java source.
//
// Description:
//
//	A node exports iff its modifier list contains `public`. Methods are
//	named "ClassName.method"; the enclosing class is found by walking up
//	through class_body/interface_body/enum_body to the declaration and
//	reading its name field. Import source is the dotted prefix; the
//	final segment is the imported name.
//
// Grounded on original_source/rust-cli/src/languages/java.rs.
type JavaAdapter struct{}

// Parse implements LanguageAdapter.
func (a *JavaAdapter) Parse(source []byte) (*ParseResult, error) {
	tsLang := java.GetLanguage()
	tree, err := parseWith(tsLang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ParseResult{Lines: countLines(source)}

	WalkNodes(root, func(n *sitter.Node) {
		switch n.Type() {
		case "method_declaration", "constructor_declaration":
			a.extractFunction(n, source, result)
		case "class_declaration", "interface_declaration", "enum_declaration":
			a.extractClassLike(n, source, result)
		case "import_declaration":
			a.extractImport(n, source, result)
		}
	})

	return result, nil
}

func hasPublicModifier(n *sitter.Node, source []byte) bool {
	mods := FindChildOfType(n, "modifiers")
	if mods == nil {
		return false
	}
	count := int(mods.ChildCount())
	for i := 0; i < count; i++ {
		child := mods.Child(i)
		if child != nil && (child.Type() == "public" || NodeText(child, source) == "public") {
			return true
		}
	}
	return false
}

func findEnclosingJavaClassName(n *sitter.Node, source []byte) (string, bool) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "class_body", "interface_body", "enum_body":
			decl := p.Parent()
			if decl == nil {
				return "", false
			}
			if nameNode := decl.ChildByFieldName("name"); nameNode != nil {
				return NodeText(nameNode, source), true
			}
			return "", false
		}
	}
	return "", false
}

func (a *JavaAdapter) extractFunction(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)
	if className, ok := findEnclosingJavaClassName(n, source); ok {
		name = className + "." + name
	}

	var params []string
	if paramsNode := n.ChildByFieldName("parameters"); paramsNode != nil {
		params = javaParamNames(paramsNode, source)
	}

	exported := hasPublicModifier(n, source)
	result.Functions = append(result.Functions, FunctionFact{
		Name:       name,
		StartLine:  startLine(n),
		EndLine:    endLine(n),
		Params:     params,
		IsExported: exported,
	})
}

func javaParamNames(paramsNode *sitter.Node, source []byte) []string {
	var names []string
	count := int(paramsNode.ChildCount())
	for i := 0; i < count; i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "formal_parameter", "spread_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				names = append(names, NodeText(nameNode, source))
			}
		}
	}
	return names
}

func (a *JavaAdapter) extractClassLike(n *sitter.Node, source []byte, result *ParseResult) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := NodeText(nameNode, source)

	var exportKind ExportKind
	var classKind ClassKind
	switch n.Type() {
	case "class_declaration":
		exportKind, classKind = ExportClass, ClassKindClass
	case "interface_declaration":
		exportKind, classKind = ExportInterface, ClassKindInterface
	case "enum_declaration":
		exportKind, classKind = ExportEnum, ClassKindEnum
	}

	if hasPublicModifier(n, source) {
		result.Exports = append(result.Exports, ExportFact{Name: name, Kind: exportKind})
	}

	var methods []string
	if body := n.ChildByFieldName("body"); body != nil {
		WalkNodes(body, func(desc *sitter.Node) {
			if desc.Type() == "method_declaration" {
				if mNameNode := desc.ChildByFieldName("name"); mNameNode != nil {
					methods = append(methods, NodeText(mNameNode, source))
				}
			}
		})
	}

	result.Classes = append(result.Classes, ClassFact{
		Name:      name,
		StartLine: startLine(n),
		EndLine:   endLine(n),
		Methods:   methods,
		Kind:      classKind,
	})
}

func (a *JavaAdapter) extractImport(n *sitter.Node, source []byte, result *ParseResult) {
	text := strings.TrimSpace(NodeText(n, source))
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimPrefix(text, "import")
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "static")
	text = strings.TrimSpace(text)

	idx := strings.LastIndex(text, ".")
	if idx < 0 {
		result.Imports = append(result.Imports, ImportFact{Source: text})
		return
	}
	source2 := text[:idx]
	symbol := text[idx+1:]
	result.Imports = append(result.Imports, ImportFact{Source: source2, Names: []string{symbol}})
}
