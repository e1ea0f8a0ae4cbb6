// Package capability binds named operations to the value types they act on.
//
// A Capability is the invocable half of an operation node: it knows the
// target (receiver) type, the ordered argument types, the result type, and
// how to invoke itself. Capabilities are built from go-cty functions, where
// the first positional parameter is the receiver and the remaining ones are
// the arguments.
//
// The Registry maps (target type, operation name) pairs to capabilities so
// callers, such as the HCL loader, can resolve "call substring on a string"
// without reflection.
package capability
