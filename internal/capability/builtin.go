package capability

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// SubstringFunc returns the characters of str from start up to, but not
// including, end. Offsets count Unicode characters. Unlike stdlib.SubstrFunc
// it never clamps: an out-of-range or inverted range is an error.
var SubstringFunc = function.New(&function.Spec{
	Description: "Returns the characters of str in the half-open range [start, end).",
	Params: []function.Parameter{
		{Name: "str", Type: cty.String},
		{Name: "start", Type: cty.Number},
		{Name: "end", Type: cty.Number},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		var start, end, length int
		if err := gocty.FromCtyValue(args[1], &start); err != nil {
			return cty.NilVal, function.NewArgError(1, err)
		}
		if err := gocty.FromCtyValue(args[2], &end); err != nil {
			return cty.NilVal, function.NewArgError(2, err)
		}

		n, err := stdlib.Strlen(args[0])
		if err != nil {
			return cty.NilVal, err
		}
		if err := gocty.FromCtyValue(n, &length); err != nil {
			return cty.NilVal, err
		}

		if start < 0 || end > length || start > end {
			return cty.NilVal, fmt.Errorf("begin %d, end %d, length %d", start, end, length)
		}
		if start == end {
			return cty.StringVal(""), nil
		}
		return stdlib.Substr(args[0], cty.NumberIntVal(int64(start)), cty.NumberIntVal(int64(end-start)))
	},
})

// ConcatFunc appends suffix to str.
var ConcatFunc = function.New(&function.Spec{
	Description: "Returns str followed by suffix.",
	Params: []function.Parameter{
		{Name: "str", Type: cty.String},
		{Name: "suffix", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
		return cty.StringVal(args[0].AsString() + args[1].AsString()), nil
	},
})

// builtins is the capability library compiled into every binary.
var builtins = []struct {
	name string
	fn   function.Function
}{
	// string receivers
	{"substring", SubstringFunc},
	{"concat", ConcatFunc},
	{"upper", stdlib.UpperFunc},
	{"lower", stdlib.LowerFunc},
	{"length", stdlib.StrlenFunc},
	{"reverse", stdlib.ReverseFunc},
	{"trimspace", stdlib.TrimSpaceFunc},
	{"replace", stdlib.ReplaceFunc},

	// number receivers
	{"add", stdlib.AddFunc},
	{"subtract", stdlib.SubtractFunc},
	{"multiply", stdlib.MultiplyFunc},
	{"divide", stdlib.DivideFunc},
	{"modulo", stdlib.ModuloFunc},
	{"negate", stdlib.NegateFunc},
	{"abs", stdlib.AbsoluteFunc},
	{"ceil", stdlib.CeilFunc},
	{"floor", stdlib.FloorFunc},
}

// RegisterBuiltins registers the built-in capability library with r.
func RegisterBuiltins(r *Registry) {
	for _, b := range builtins {
		if err := r.RegisterFunction(b.name, b.fn); err != nil {
			// The library is static, so a failure here is a programming error.
			panic(err)
		}
	}
}
