package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a graph file.
type Model struct {
	// Nodes are kept in declaration order.
	Nodes []*NodeDefinition
}

// NodeKind distinguishes the node variants a definition can describe.
type NodeKind int

const (
	// ConstantKind describes a node that always evaluates to Value.
	ConstantKind NodeKind = iota
	// OperationKind describes a node that calls a capability on its inputs.
	OperationKind
)

func (k NodeKind) String() string {
	switch k {
	case ConstantKind:
		return "constant"
	case OperationKind:
		return "operation"
	default:
		return "unknown"
	}
}

// NodeDefinition is the format-agnostic representation of a single node.
type NodeDefinition struct {
	Kind NodeKind
	Name string

	// Value is set for constants.
	Value cty.Value

	// Target, Call and Inputs are set for operations. Inputs are node names;
	// the first one supplies the receiver.
	Target cty.Type
	Call   string
	Inputs []string

	// DeclRange points at the block that declared the node, for diagnostics.
	DeclRange hcl.Range
}
