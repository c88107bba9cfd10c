package ast

import "testing"

func TestCppAdapterClassesEnumsNamespaces(t *testing.T) {
	src := []byte(`
#include <string>

class Engine {
public:
    void start() {}
    void stop() {}
};

struct Point {
    int x, y;
};

enum Color {
    Red,
    Green,
    Blue
};

namespace MyLib {
    void helper() {}
}

int main() {
    return 0;
}
`)

	adapter := &CppAdapter{}
	result, err := adapter.Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	var engine *ClassFact
	for i := range result.Classes {
		if result.Classes[i].Name == "Engine" && result.Classes[i].Kind == ClassKindClass {
			engine = &result.Classes[i]
		}
	}
	if engine == nil {
		t.Fatalf("expected Engine class, got %+v", result.Classes)
	}
	if len(engine.Methods) != 2 {
		t.Errorf("expected 2 methods on Engine, got %v", engine.Methods)
	}

	var sawPoint, sawColor, sawNamespace bool
	for _, c := range result.Classes {
		if c.Name == "Point" && c.Kind == ClassKindStruct {
			sawPoint = true
		}
		if c.Name == "Color" && c.Kind == ClassKindEnum {
			sawColor = true
		}
		if c.Name == "MyLib" && c.Kind == ClassKindNamespace {
			sawNamespace = true
		}
	}
	if !sawPoint {
		t.Errorf("expected Point struct, got %+v", result.Classes)
	}
	if !sawColor {
		t.Errorf("expected Color enum, got %+v", result.Classes)
	}
	if !sawNamespace {
		t.Errorf("expected MyLib namespace, got %+v", result.Classes)
	}

	for _, e := range result.Exports {
		if e.Name == "MyLib" {
			t.Errorf("namespace must not appear in exports")
		}
	}

	var sawMain bool
	for _, f := range result.Functions {
		if f.Name == "main" {
			sawMain = true
		}
	}
	if !sawMain {
		t.Errorf("expected main function, got %+v", result.Functions)
	}
}
