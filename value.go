package cfndot

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

// The variants of Value.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// Entry is one key/value pair of a mapping Value. Mappings keep their
// document order, so traversal of the same template always visits entries in
// the same sequence.
type Entry struct {
	Key   string
	Value Value
}

// Value is one node of a loosely typed document tree. Template property
// values can be arbitrarily shaped, so they are decoded into this tagged
// union instead of concrete structs.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Seq  []Value
	Map  []Entry
}

// IsNull reports whether v holds no value at all, which is also the state of
// a Value decoded from an empty document.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Get returns the value stored under key when v is a mapping.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMapping {
		return Value{}, false
	}
	for _, e := range v.Map {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	return v.decode(node, map[*yaml.Node]bool{})
}

// expanding tracks anchor nodes whose alias expansion is in progress, so a
// cyclic alias is reported instead of recursing forever.
func (v *Value) decode(node *yaml.Node, expanding map[*yaml.Node]bool) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			*v = Value{}
			return nil
		}
		return v.decode(node.Content[0], expanding)
	case yaml.AliasNode:
		if expanding[node.Alias] {
			return fmt.Errorf("anchor %q contains itself", node.Value)
		}
		expanding[node.Alias] = true
		err := v.decode(node.Alias, expanding)
		delete(expanding, node.Alias)
		return err
	case yaml.ScalarNode:
		return v.decodeScalar(node)
	case yaml.SequenceNode:
		seq := make([]Value, len(node.Content))
		for i, elem := range node.Content {
			if err := seq[i].decode(elem, expanding); err != nil {
				return err
			}
		}
		*v = Value{Kind: KindSequence, Seq: seq}
		return nil
	case yaml.MappingNode:
		entries := make([]Entry, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entry := Entry{Key: node.Content[i].Value}
			if err := entry.Value.decode(node.Content[i+1], expanding); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		*v = Value{Kind: KindMapping, Map: entries}
		return nil
	default:
		*v = Value{}
		return nil
	}
}

func (v *Value) decodeScalar(node *yaml.Node) error {
	switch node.Tag {
	case "!!null":
		*v = Value{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = Value{Kind: KindBool, Bool: b}
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Value{Kind: KindNumber, Num: f}
	default:
		// anything else, including timestamps and custom tags, is kept as
		// its raw text
		*v = Value{Kind: KindString, Str: node.Value}
	}
	return nil
}
