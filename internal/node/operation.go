package node

import (
	"context"
	"errors"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodegraph/internal/capability"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

var errNoReceiver = errors.New("node has no inputs to use as receiver")

// Operation is a node bound to a capability. Its first input supplies the
// receiver and the remaining inputs supply the arguments, in order.
type Operation struct {
	base
	capability *capability.Capability
	target     cty.Type
}

// NewOperation creates an operation node bound to c on target and registers
// it as an output of every input. The declared input types are target
// followed by the capability's parameter types. Mismatched wiring is
// reported in the returned diagnostics and does not prevent construction.
func NewOperation(ctx context.Context, c *capability.Capability, target cty.Type, name string, inputs ...Node) (*Operation, hcl.Diagnostics) {
	inputTypes := make([]cty.Type, 0, len(c.Params)+1)
	inputTypes = append(inputTypes, target)
	inputTypes = append(inputTypes, c.Params...)

	o := &Operation{
		capability: c,
		target:     target,
	}
	o.init(name, inputTypes, c.Return, inputs)

	return o, o.register(ctx, o)
}

// Capability returns the bound capability.
func (o *Operation) Capability() *capability.Capability {
	return o.capability
}

// Target returns the type the capability is bound to.
func (o *Operation) Target() cty.Type {
	return o.target
}

// Evaluate evaluates every input left to right, then invokes the capability.
// A failed invocation is logged and yields cty.NilVal.
func (o *Operation) Evaluate(ctx context.Context) cty.Value {
	logger := ctxlog.FromContext(ctx)

	inputs := o.InputNodes()
	values := make([]cty.Value, len(inputs))
	for i, in := range inputs {
		values[i] = in.Evaluate(ctx)
	}

	result, err := o.invoke(values)
	if err != nil {
		invErr := &InvocationError{
			Node:       o.Name(),
			Capability: o.capability.String(),
			Err:        err,
		}
		logger.Error("Node evaluation failed.", "node", invErr.Node, "error", invErr)
		o.setValue(cty.NilVal)
		return cty.NilVal
	}

	logger.Debug("Node evaluated.", "node", o.Name(), "inputs", len(values))
	o.setValue(result)
	return result
}

func (o *Operation) invoke(values []cty.Value) (cty.Value, error) {
	if len(values) == 0 {
		return cty.NilVal, errNoReceiver
	}
	return o.capability.Invoke(values[0], values[1:]...)
}

// Clone returns a new operation with the same capability, target, name and
// shared inputs. The clone registers itself as an output of those inputs.
func (o *Operation) Clone(ctx context.Context) Node {
	clone, _ := NewOperation(ctx, o.capability, o.target, o.Name(), o.InputNodes()...)
	return clone
}
