package capability

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Capability is an operation resolved against a target type.
type Capability struct {
	// Name is the operation name, e.g. "substring".
	Name string
	// Target is the receiver type the operation is bound to.
	Target cty.Type
	// Params are the argument types, in call order, excluding the receiver.
	Params []cty.Type
	// Return is the declared result type.
	Return cty.Type

	fn function.Function
}

// FromFunction adapts a cty function into a Capability. The function's first
// positional parameter becomes the target type and the rest become the
// argument types. Variadic parameters are not exposed.
func FromFunction(name string, fn function.Function) (*Capability, error) {
	params := fn.Params()
	if len(params) == 0 {
		return nil, fmt.Errorf("capability %q: function declares no receiver parameter", name)
	}

	types := make([]cty.Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}

	ret, err := fn.ReturnType(types)
	if err != nil {
		return nil, fmt.Errorf("capability %q: resolving return type: %w", name, err)
	}

	return &Capability{
		Name:   name,
		Target: types[0],
		Params: types[1:],
		Return: ret,
		fn:     fn,
	}, nil
}

// Invoke calls the capability with receiver as the target instance and args
// as the remaining arguments. A cty.NilVal anywhere in the inputs is rejected
// before the call, and a panic inside the function is returned as an error.
func (c *Capability) Invoke(receiver cty.Value, args ...cty.Value) (result cty.Value, err error) {
	all := make([]cty.Value, 0, len(args)+1)
	all = append(all, receiver)
	all = append(all, args...)

	for i, v := range all {
		if v == cty.NilVal {
			return cty.NilVal, fmt.Errorf("argument %d has no value", i)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = cty.NilVal
			err = fmt.Errorf("panicked: %v", r)
		}
	}()

	result, err = c.fn.Call(all)
	if err != nil {
		return cty.NilVal, err
	}
	return result, nil
}

// String renders the capability signature, e.g. "string.substring(number, number) string".
func (c *Capability) String() string {
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = friendlyName(p)
	}
	return fmt.Sprintf("%s.%s(%s) %s", friendlyName(c.Target), c.Name, strings.Join(params, ", "), friendlyName(c.Return))
}

func friendlyName(t cty.Type) string {
	if t == cty.NilType {
		return "<none>"
	}
	return t.FriendlyName()
}
