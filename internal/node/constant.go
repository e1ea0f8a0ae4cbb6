package node

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Constant is a zero-input node that always evaluates to a fixed value.
type Constant struct {
	base
}

// NewConstant creates a constant node. Its return type is the type of value.
func NewConstant(value cty.Value, name string) *Constant {
	c := &Constant{}
	c.init(name, nil, value.Type(), nil)
	c.value = value
	return c
}

// Evaluate returns the stored value.
func (c *Constant) Evaluate(ctx context.Context) cty.Value {
	return c.Value()
}

// Clone returns a new constant with the same value and name.
func (c *Constant) Clone(ctx context.Context) Node {
	return NewConstant(c.Value(), c.Name())
}
