package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Bindings is a list of key strings for one action. Files may give a single
// string or a list.
type Bindings []string

// UnmarshalTOML accepts either a string or an array of strings.
func (b *Bindings) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		*b = Bindings{val}
	case []interface{}:
		out := make(Bindings, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("key binding must be a string, got %T", item)
			}
			out = append(out, s)
		}
		*b = out
	default:
		return fmt.Errorf("key binding must be a string or list, got %T", v)
	}
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (b *Bindings) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*b = Bindings{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*b = list
		return nil
	default:
		return fmt.Errorf("line %d: key binding must be a string or list", node.Line)
	}
}
