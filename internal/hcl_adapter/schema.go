package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Constants  []*ConstantBlock  `hcl:"constant,block"`
	Operations []*OperationBlock `hcl:"operation,block"`
}

// ConstantBlock maps a `constant "name" { ... }` block. Value is kept as the
// raw attribute; gohcl leaves it nil when the block omits it.
type ConstantBlock struct {
	Name      string         `hcl:"name,label"`
	Value     *hcl.Attribute `hcl:"value,attr"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

// OperationBlock maps an `operation "name" { ... }` block. Target is a type
// expression, so it is decoded raw and parsed separately.
type OperationBlock struct {
	Name      string         `hcl:"name,label"`
	Target    *hcl.Attribute `hcl:"target,attr"`
	Call      string         `hcl:"call,attr"`
	Inputs    []string       `hcl:"inputs,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}
