package yaml_adapter

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// valueFromNode converts a decoded YAML node into a cty value.
func valueFromNode(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return cty.NilVal, fmt.Errorf("line %d: empty document", n.Line)
		}
		return valueFromNode(n.Content[0])

	case yaml.AliasNode:
		return valueFromNode(n.Alias)

	case yaml.ScalarNode:
		return scalarFromNode(n)

	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := valueFromNode(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), nil

	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return cty.NilVal, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if _, dup := attrs[k.Value]; dup {
				return cty.NilVal, fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
			}
			val, err := valueFromNode(v)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k.Value] = val
		}
		return cty.ObjectVal(attrs), nil
	}

	return cty.NilVal, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalarFromNode(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!str":
		return cty.StringVal(n.Value), nil

	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return cty.BoolVal(b), nil

	case "!!int":
		if v, err := cty.ParseNumberVal(n.Value); err == nil {
			return v, nil
		}
		// Hex, octal and underscore forms.
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return cty.NumberIntVal(i), nil

	case "!!float":
		if v, err := cty.ParseNumberVal(n.Value); err == nil {
			return v, nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return cty.NilVal, fmt.Errorf("line %d: %s is not a finite number", n.Line, n.Value)
		}
		return cty.NumberFloatVal(f), nil

	case "!!null":
		return cty.NilVal, fmt.Errorf("line %d: value must not be null", n.Line)
	}

	return cty.NilVal, fmt.Errorf("line %d: unsupported tag %s", n.Line, n.ShortTag())
}
