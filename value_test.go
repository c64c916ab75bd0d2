package cfndot

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func mustParse(t *testing.T, input string) Value {
	t.Helper()

	var v Value
	if err := yaml.Unmarshal([]byte(input), &v); err != nil {
		t.Fatalf("unmarshalling %q: %v", input, err)
	}
	return v
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{name: "null", input: "~", want: KindNull},
		{name: "empty document", input: "", want: KindNull},
		{name: "bool", input: "true", want: KindBool},
		{name: "int", input: "42", want: KindNumber},
		{name: "float", input: "4.2", want: KindNumber},
		{name: "string", input: "hello", want: KindString},
		{name: "quoted number is a string", input: `"42"`, want: KindString},
		{name: "sequence", input: "[1, 2]", want: KindSequence},
		{name: "mapping", input: "a: 1", want: KindMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustParse(t, tt.input).Kind; got != tt.want {
				t.Errorf("expected kind %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValueMappingKeepsDocumentOrder(t *testing.T) {
	v := mustParse(t, "b: 1\na: 2\nc: 3\n")

	if v.Kind != KindMapping {
		t.Fatalf("expected mapping, got %v", v.Kind)
	}

	want := []string{"b", "a", "c"}
	if len(v.Map) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(v.Map))
	}
	for i, key := range want {
		if v.Map[i].Key != key {
			t.Errorf("entry %d: expected key %q, got %q", i, key, v.Map[i].Key)
		}
	}
}

func TestValueParsesJSON(t *testing.T) {
	v := mustParse(t, `{"Resources": {"A": {"Type": "T"}}}`)

	resources, ok := v.Get("Resources")
	if !ok {
		t.Fatal("expected Resources key")
	}
	res, ok := resources.Get("A")
	if !ok {
		t.Fatal("expected resource A")
	}
	typ, ok := res.Get("Type")
	if !ok || typ.Str != "T" {
		t.Errorf(`expected Type "T", got %v`, typ)
	}
}

func TestValueGet(t *testing.T) {
	v := mustParse(t, "a: 1\nb: two\n")

	if got, ok := v.Get("b"); !ok || got.Str != "two" {
		t.Errorf("expected two, got %v (ok=%v)", got, ok)
	}
	if _, ok := v.Get("missing"); ok {
		t.Error("expected miss for absent key")
	}
	if _, ok := (Value{Kind: KindString, Str: "x"}).Get("a"); ok {
		t.Error("expected miss on non-mapping value")
	}
}

func TestValueAlias(t *testing.T) {
	v := mustParse(t, "anchor: &a hello\nref: *a\n")

	got, ok := v.Get("ref")
	if !ok || got.Kind != KindString || got.Str != "hello" {
		t.Errorf("expected aliased string hello, got %v", got)
	}
}

func TestValueRepeatedAlias(t *testing.T) {
	v := mustParse(t, "anchor: &a {x: 1}\nfirst: *a\nsecond: *a\n")

	for _, key := range []string{"first", "second"} {
		got, ok := v.Get(key)
		if !ok || got.Kind != KindMapping {
			t.Errorf("expected mapping under %q, got %v", key, got)
		}
	}
}

func TestValueCyclicAliasIsRejected(t *testing.T) {
	var v Value
	err := yaml.Unmarshal([]byte("a: &x\n  b: *x\n"), &v)
	if err == nil {
		t.Fatal("expected error for alias containing itself")
	}
}
