package ast

import "testing"

func TestRustAdapterPubInsideImplNotExported(t *testing.T) {
	src := []byte(`
pub struct Widget {
    name: String,
}

impl Widget {
    pub fn greet(&self, who: &str) -> String {
        who.to_string()
    }
}

fn private_helper() {}

use std::collections::{HashMap, HashSet};
`)

	adapter := &RustAdapter{}
	result, err := adapter.Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	var greetFn *FunctionFact
	for i := range result.Functions {
		if result.Functions[i].Name == "Widget::greet" {
			greetFn = &result.Functions[i]
		}
	}
	if greetFn == nil {
		t.Fatalf("expected Widget::greet function, got %+v", result.Functions)
	}

	for _, e := range result.Exports {
		if e.Name == "Widget::greet" {
			t.Errorf("pub fn inside impl must not be an export")
		}
	}

	var sawWidgetExport bool
	for _, e := range result.Exports {
		if e.Name == "Widget" && e.Kind == ExportStruct {
			sawWidgetExport = true
		}
	}
	if !sawWidgetExport {
		t.Errorf("expected pub struct Widget to be exported, got %+v", result.Exports)
	}

	var sawUse bool
	for _, imp := range result.Imports {
		if imp.Source == "std::collections" {
			sawUse = true
			if len(imp.Names) != 2 {
				t.Errorf("expected 2 names for scoped use list, got %v", imp.Names)
			}
		}
	}
	if !sawUse {
		t.Errorf("expected std::collections import, got %+v", result.Imports)
	}
}
