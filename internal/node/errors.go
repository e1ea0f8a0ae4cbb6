package node

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// ConnectionError describes an edge whose source return type is not one of
// the destination's declared input types. It is advisory: the edge exists.
type ConnectionError struct {
	Source     string
	SourceType cty.Type
	Dest       string
	DestTypes  []cty.Type
}

func (e *ConnectionError) Error() string {
	names := make([]string, len(e.DestTypes))
	for i, t := range e.DestTypes {
		names[i] = typeName(t)
	}
	return fmt.Sprintf("invalid connection: %s (%s) => %s [%s]", e.Source, typeName(e.SourceType), e.Dest, strings.Join(names, ", "))
}

// InvocationError records why an operation node could not produce a value.
type InvocationError struct {
	Node       string
	Capability string
	Err        error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("node %q: invoking %s: %v", e.Node, e.Capability, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// typeName is FriendlyName that tolerates cty.NilType.
func typeName(t cty.Type) string {
	if t == cty.NilType {
		return "<none>"
	}
	return t.FriendlyName()
}
