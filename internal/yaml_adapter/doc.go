// Package yaml_adapter loads graph files written in YAML into a config.Model.
//
// A file holds a single `nodes` sequence. Each entry declares either a
// constant or an operation:
//
//	nodes:
//	  - constant: cs
//	    value: b end lepo
//	  - operation: m2
//	    target: string
//	    call: substring
//	    inputs: [cs, ci, ce]
//
// `target` uses the same type expression syntax as HCL graph files. Values
// map onto cty the obvious way: strings, numbers and booleans become
// primitives, sequences become tuples and mappings become objects. Null is
// not a value.
//
// Unlike the HCL loader, name uniqueness is left to the builder.
package yaml_adapter
