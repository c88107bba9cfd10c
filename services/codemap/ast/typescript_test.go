package ast

import "testing"

func TestTypeScriptAdapterFunctionsImportsExports(t *testing.T) {
	src := []byte(`
import { foo, bar } from './utils';
import React from 'react';

export function greet(name: string): string {
    return ` + "`Hello, ${name}`" + `;
}
function helper() {}

export const double = (x: number) => x * 2;

export class MyClass {
    run() {}
}
export interface MyInterface {}
export type MyType = string;
export const MY_CONST = 42;
`)

	adapter := &TypeScriptAdapter{}
	result, err := adapter.Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	fnNames := map[string]bool{}
	for _, f := range result.Functions {
		fnNames[f.Name] = f.IsExported
	}
	if exported, ok := fnNames["greet"]; !ok || !exported {
		t.Errorf("greet should be an exported function")
	}
	if exported, ok := fnNames["helper"]; !ok || exported {
		t.Errorf("helper should not be exported")
	}
	if exported, ok := fnNames["double"]; !ok || !exported {
		t.Errorf("double arrow binding should be exported")
	}

	var sawUtils, sawReact bool
	for _, imp := range result.Imports {
		if imp.Source == "./utils" {
			sawUtils = true
			if len(imp.Names) != 2 {
				t.Errorf("expected 2 named imports from ./utils, got %v", imp.Names)
			}
		}
		if imp.Source == "react" {
			sawReact = true
		}
	}
	if !sawUtils || !sawReact {
		t.Errorf("expected both ./utils and react imports, got %+v", result.Imports)
	}

	exportKinds := map[string]ExportKind{}
	for _, e := range result.Exports {
		exportKinds[e.Name] = e.Kind
	}
	for _, want := range []string{"greet", "double", "MyClass", "MyInterface", "MyType", "MY_CONST"} {
		if _, ok := exportKinds[want]; !ok {
			t.Errorf("expected export %q, got %+v", want, result.Exports)
		}
	}
	if kind := exportKinds["double"]; kind != ExportFunction {
		t.Errorf("double export Kind = %v, want ExportFunction", kind)
	}
	if kind := exportKinds["MY_CONST"]; kind != ExportVariable {
		t.Errorf("MY_CONST export Kind = %v, want ExportVariable", kind)
	}

	var myClass *ClassFact
	for i := range result.Classes {
		if result.Classes[i].Name == "MyClass" {
			myClass = &result.Classes[i]
		}
	}
	if myClass == nil {
		t.Fatalf("expected MyClass class fact, got %+v", result.Classes)
	}
	if len(myClass.Methods) != 1 || myClass.Methods[0] != "run" {
		t.Errorf("expected MyClass.run method, got %v", myClass.Methods)
	}
}
