package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const noValue = "(no value)"

func writeResults(w io.Writer, format string, results []graph.Result) error {
	if format == OutputJSON {
		return writeJSON(w, results)
	}
	return writeText(w, results)
}

// writeText prints `name = value` lines with values in HCL literal syntax.
func writeText(w io.Writer, results []graph.Result) error {
	for _, r := range results {
		text := noValue
		if r.Value != cty.NilVal {
			text = string(hclwrite.TokensForValue(r.Value).Bytes())
		}
		if _, err := fmt.Fprintf(w, "%s = %s\n", r.Name, text); err != nil {
			return err
		}
	}
	return nil
}

type jsonResult struct {
	Name  string          `json:"name"`
	Type  json.RawMessage `json:"type"`
	Value json.RawMessage `json:"value"`
}

// writeJSON prints one JSON object per line. A node without a value has
// null for both type and value.
func writeJSON(w io.Writer, results []graph.Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		out := jsonResult{Name: r.Name, Type: json.RawMessage("null"), Value: json.RawMessage("null")}
		if r.Value != cty.NilVal {
			ty, err := ctyjson.MarshalType(r.Value.Type())
			if err != nil {
				return fmt.Errorf("node %q: %w", r.Name, err)
			}
			val, err := ctyjson.Marshal(r.Value, r.Value.Type())
			if err != nil {
				return fmt.Errorf("node %q: %w", r.Name, err)
			}
			out.Type, out.Value = ty, val
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
