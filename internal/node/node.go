package node

import (
	"context"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Node is a single vertex in the dataflow graph.
//
// Accessors returning slices always return copies; mutating them does not
// change the node's edges.
type Node interface {
	// Evaluate computes, stores and returns the node's current value. It
	// always recomputes. The context only carries the logger.
	Evaluate(ctx context.Context) cty.Value

	Name() string
	SetName(name string)

	// Value returns the result of the last evaluation, or cty.NilVal if the
	// node has never been evaluated or the last evaluation failed.
	Value() cty.Value

	InputTypes() []cty.Type
	ReturnType() cty.Type
	InputNodes() []Node
	OutputNodes() []Node

	// AddInputNode appends n to the input edges. A type mismatch is logged
	// and returned as a warning; the edge is appended regardless.
	AddInputNode(ctx context.Context, n Node) hcl.Diagnostics
	// AddOutputNode appends n to the output back-references, with the same
	// advisory type check applied from the producer side.
	AddOutputNode(ctx context.Context, n Node) hcl.Diagnostics

	// RemoveInputNode removes the first input named name and returns it.
	RemoveInputNode(name string) (Node, bool)
	// RemoveOutputNode removes the first output named name and returns it.
	RemoveOutputNode(name string) (Node, bool)

	// Clone returns a node with the same configuration and the same (shared)
	// input references, and no outputs.
	Clone(ctx context.Context) Node
}

// base holds the state shared by every node variant.
type base struct {
	mu         sync.RWMutex
	name       string
	value      cty.Value
	inputTypes []cty.Type
	returnType cty.Type
	inputs     []Node
	outputs    []Node
}

func (b *base) init(name string, inputTypes []cty.Type, returnType cty.Type, inputs []Node) {
	b.name = name
	b.value = cty.NilVal
	b.inputTypes = append([]cty.Type(nil), inputTypes...)
	b.returnType = returnType
	b.inputs = append([]Node(nil), inputs...)
}

// register records self as an output of each of its initial inputs.
func (b *base) register(ctx context.Context, self Node) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, in := range b.InputNodes() {
		diags = append(diags, in.AddOutputNode(ctx, self)...)
	}
	return diags
}

func (b *base) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

func (b *base) SetName(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
}

func (b *base) Value() cty.Value {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

func (b *base) setValue(v cty.Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
}

func (b *base) InputTypes() []cty.Type {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]cty.Type(nil), b.inputTypes...)
}

func (b *base) ReturnType() cty.Type {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.returnType
}

func (b *base) InputNodes() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Node(nil), b.inputs...)
}

func (b *base) OutputNodes() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Node(nil), b.outputs...)
}

func (b *base) AddInputNode(ctx context.Context, n Node) hcl.Diagnostics {
	diags := checkConnection(ctx, n.Name(), n.ReturnType(), b.Name(), b.InputTypes())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inputs = append(b.inputs, n)
	return diags
}

func (b *base) AddOutputNode(ctx context.Context, n Node) hcl.Diagnostics {
	diags := checkConnection(ctx, b.Name(), b.ReturnType(), n.Name(), n.InputTypes())

	b.mu.Lock()
	defer b.mu.Unlock()
	b.outputs = append(b.outputs, n)
	return diags
}

func (b *base) RemoveInputNode(name string) (Node, bool) {
	return b.removeFirst(&b.inputs, name)
}

func (b *base) RemoveOutputNode(name string) (Node, bool) {
	return b.removeFirst(&b.outputs, name)
}

// removeFirst drops the first node in *list named name. Names are read
// without holding b.mu because a node may be wired to itself.
func (b *base) removeFirst(list *[]Node, name string) (Node, bool) {
	b.mu.RLock()
	snapshot := append([]Node(nil), *list...)
	b.mu.RUnlock()

	var target Node
	for _, n := range snapshot {
		if n.Name() == name {
			target = n
			break
		}
	}
	if target == nil {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, n := range *list {
		if n == target {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return target, true
		}
	}
	return nil, false
}

// checkConnection is the advisory edge check: srcType must be one of
// destTypes. A mismatch is logged and reported as a warning diagnostic.
func checkConnection(ctx context.Context, src string, srcType cty.Type, dest string, destTypes []cty.Type) hcl.Diagnostics {
	for _, t := range destTypes {
		if t.Equals(srcType) {
			return nil
		}
	}

	connErr := &ConnectionError{
		Source:     src,
		SourceType: srcType,
		Dest:       dest,
		DestTypes:  destTypes,
	}
	ctxlog.FromContext(ctx).Warn("Invalid connection.", "source", src, "destination", dest, "error", connErr)

	return hcl.Diagnostics{{
		Severity: hcl.DiagWarning,
		Summary:  "Invalid connection",
		Detail:   connErr.Error(),
		Extra:    connErr,
	}}
}
