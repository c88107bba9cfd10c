// Package ast parses source files with tree-sitter and normalizes the
// result into the shared fact vocabulary codemap's graph builder
// consumes: functions, imports, exports, and classes, uniformly across
// eight languages.
package ast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/killvxk/codemap/services/codemap/lang"
)

// FunctionFact describes one function, method, or arrow-function binding.
//
// Lines are 1-based and inclusive. For Rust methods inside `impl
// TypeName`, Name is rendered "TypeName::method"; for Java methods,
// "ClassName.method"; C++ out-of-line definitions keep their "::"
// qualifier.
type FunctionFact struct {
	Name       string   `json:"name"`
	StartLine  int      `json:"startLine"`
	EndLine    int      `json:"endLine"`
	Params     []string `json:"params"`
	IsExported bool     `json:"isExported"`
}

// ImportFact describes one import/include statement.
//
// Source is the raw import target: a path, a module name, or an include
// target stripped of "<>"/quotes. IsDefault is true only for C/C++ system
// includes ("<...>"); it is not otherwise semantic.
type ImportFact struct {
	Source    string   `json:"source"`
	Names     []string `json:"names"`
	IsDefault bool     `json:"isDefault"`
}

// ExportKind enumerates the kinds an ExportFact may carry.
type ExportKind string

const (
	ExportFunction  ExportKind = "function"
	ExportClass     ExportKind = "class"
	ExportInterface ExportKind = "interface"
	ExportStruct    ExportKind = "struct"
	ExportEnum      ExportKind = "enum"
	ExportTrait     ExportKind = "trait"
	ExportType      ExportKind = "type"
	ExportTypedef   ExportKind = "typedef"
	ExportVariable  ExportKind = "variable"
	ExportModule    ExportKind = "module"
)

// ExportFact names one symbol a file exposes to other files.
type ExportFact struct {
	Name string     `json:"name"`
	Kind ExportKind `json:"kind"`
}

// ClassKind enumerates the kinds a ClassFact may carry.
type ClassKind string

const (
	ClassKindClass     ClassKind = "class"
	ClassKindInterface ClassKind = "interface"
	ClassKindStruct    ClassKind = "struct"
	ClassKindEnum      ClassKind = "enum"
	ClassKindTrait     ClassKind = "trait"
	ClassKindNamespace ClassKind = "namespace"
)

// ClassFact describes one class, interface, struct, enum, trait, or
// namespace declaration.
type ClassFact struct {
	Name      string    `json:"name"`
	StartLine int       `json:"startLine"`
	EndLine   int       `json:"endLine"`
	Methods   []string  `json:"methods"`
	Kind      ClassKind `json:"kind"`
}

// ParseResult is the normalized output of parsing a single source file.
type ParseResult struct {
	Functions []FunctionFact
	Imports   []ImportFact
	Exports   []ExportFact
	Classes   []ClassFact
	Lines     int
}

// LanguageAdapter parses one file's source bytes into a ParseResult.
// Implementations are stateless and safe for concurrent use: each call
// to Parse builds its own tree-sitter parser instance.
type LanguageAdapter interface {
	Parse(source []byte) (*ParseResult, error)
}

// GetAdapter returns the LanguageAdapter for the given language and
// source path, or false if codemap has no adapter for it. path is only
// consulted to pick the TSX grammar for ".tsx" files; every other
// language ignores it.
func GetAdapter(language lang.Language, path string) (LanguageAdapter, bool) {
	switch language {
	case lang.TypeScript:
		return &TypeScriptAdapter{TSX: strings.HasSuffix(strings.ToLower(path), ".tsx")}, true
	case lang.JavaScript:
		return &JavaScriptAdapter{}, true
	case lang.Python:
		return &PythonAdapter{}, true
	case lang.Go:
		return &GoAdapter{}, true
	case lang.Rust:
		return &RustAdapter{}, true
	case lang.Java:
		return &JavaAdapter{}, true
	case lang.C:
		return &CAdapter{}, true
	case lang.Cpp:
		return &CppAdapter{}, true
	default:
		return nil, false
	}
}

// countLines returns the 1-based line count of source: the number of
// newline bytes plus one, matching every language adapter's line-count
// convention.
func countLines(source []byte) int {
	n := 1
	for _, b := range source {
		if b == '\n' {
			n++
		}
	}
	return n
}

// parseWith runs tree-sitter with the given grammar over source and
// returns the resulting tree. Callers must call tree.Close().
func parseWith(tsLang *sitter.Language, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tsLang)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("tree-sitter returned an empty tree")
	}
	return tree, nil
}

// WalkNodes visits every node in the tree rooted at n, in document
// order, calling visit on each. This is the single full-tree-walk
// chokepoint every adapter's "walk the full tree" extraction goes
// through; a candidate spot to convert to an explicit work-stack
// should deeply nested trees ever become a concern.
func WalkNodes(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		WalkNodes(n.Child(i), visit)
	}
}

// FindChildOfType returns the first direct child of n whose Type matches
// nodeType, or nil if none does.
func FindChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// FindDescendantOfType searches the subtree rooted at n breadth-first
// for the first node whose Type matches nodeType.
func FindDescendantOfType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}
	queue := []*sitter.Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Type() == nodeType {
			return cur
		}
		count := int(cur.ChildCount())
		for i := 0; i < count; i++ {
			if child := cur.Child(i); child != nil {
				queue = append(queue, child)
			}
		}
	}
	return nil
}

// NodeText returns the UTF-8 source text spanned by n.
func NodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// StripQuotes trims one layer of matching '\'', '"', or '`' delimiters
// from s, along with C-style '<'/'>' angle brackets.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		switch {
		case first == '"' && last == '"',
			first == '\'' && last == '\'',
			first == '`' && last == '`',
			first == '<' && last == '>':
			return s[1 : len(s)-1]
		}
	}
	return s
}

// startLine returns n's 1-based start line.
func startLine(n *sitter.Node) int { return int(n.StartPoint().Row) + 1 }

// endLine returns n's 1-based end line.
func endLine(n *sitter.Node) int { return int(n.EndPoint().Row) + 1 }
