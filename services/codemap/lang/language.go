// Package lang defines codemap's fixed set of source languages and the
// classification rules used to assign a language tag to a file.
package lang

import (
	"path/filepath"
	"strings"
)

// Language is one of the eight source languages codemap understands.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	C          Language = "c"
	Cpp        Language = "cpp"
)

// All enumerates the eight supported languages in a stable order.
var All = []Language{TypeScript, JavaScript, Python, Go, Rust, Java, C, Cpp}

// EntryPointNames is the set of file stems (case-insensitive, extension
// stripped) codemap treats as a project entry point.
var EntryPointNames = map[string]bool{
	"main":      true,
	"index":     true,
	"server":    true,
	"app":       true,
	"entry":     true,
	"bootstrap": true,
}

// DetectLanguage maps a file path's extension to a Language. The second
// return value is false when the extension is not one codemap indexes.
func DetectLanguage(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ts", ".tsx":
		return TypeScript, true
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript, true
	case ".py":
		return Python, true
	case ".go":
		return Go, true
	case ".rs":
		return Rust, true
	case ".java":
		return Java, true
	case ".c", ".h":
		return C, true
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
		return Cpp, true
	default:
		return "", false
	}
}

// HasCppSourceFiles reports whether any path in files has a C++-specific
// extension (deliberately excluding the ambiguous ".h").
func HasCppSourceFiles(files []string) bool {
	for _, f := range files {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
			return true
		}
	}
	return false
}

// EffectiveLanguage reclassifies a C file as C++ when the project as a
// whole has C++ source files and the file's extension is exactly ".h".
// This resolves header-language ambiguity project-wide rather than
// per-file.
func EffectiveLanguage(path string, base Language, projectHasCpp bool) Language {
	if base != C || !projectHasCpp {
		return base
	}
	if strings.ToLower(filepath.Ext(path)) == ".h" {
		return Cpp
	}
	return base
}

// IsEntryPoint reports whether path's basename (extension stripped,
// case-folded) names a conventional program entry point.
func IsEntryPoint(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return EntryPointNames[strings.ToLower(stem)]
}
