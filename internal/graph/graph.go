package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// Graph is an ordered, name-indexed set of nodes.
type Graph struct {
	mu       sync.RWMutex
	nodes    map[string]node.Node
	order    []string
	warnings hcl.Diagnostics
}

// Result pairs a node name with the value its evaluation produced.
// Value is cty.NilVal when the evaluation failed.
type Result struct {
	Name  string
	Value cty.Value
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]node.Node)}
}

// Add indexes n under its current name. Renaming n afterwards does not
// re-index it.
func (g *Graph) Add(n node.Node) error {
	if n == nil {
		return fmt.Errorf("cannot add a nil node")
	}
	name := n.Name()

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("node %q already exists", name)
	}
	g.nodes[name] = n
	g.order = append(g.order, name)
	return nil
}

// Node returns the node indexed under name.
func (g *Graph) Node(name string) (node.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns every node in the order it was added.
func (g *Graph) Nodes() []node.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]node.Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// Sinks returns the nodes that currently have no outputs, in the order they
// were added.
func (g *Graph) Sinks() []node.Node {
	var out []node.Node
	for _, n := range g.Nodes() {
		if len(n.OutputNodes()) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of indexed nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// AddWarnings records soft diagnostics produced while wiring the graph.
func (g *Graph) AddWarnings(diags hcl.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.warnings = append(g.warnings, diags...)
}

// Warnings returns the diagnostics recorded with AddWarnings.
func (g *Graph) Warnings() hcl.Diagnostics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make(hcl.Diagnostics, len(g.warnings))
	copy(out, g.warnings)
	return out
}

// Evaluate evaluates the named nodes in the given order, or every sink when
// no names are given. Each call re-evaluates from scratch. An unknown name is
// an error and nothing is evaluated.
func (g *Graph) Evaluate(ctx context.Context, names ...string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)

	var targets []node.Node
	if len(names) == 0 {
		targets = g.Sinks()
	} else {
		for _, name := range names {
			n, ok := g.Node(name)
			if !ok {
				return nil, fmt.Errorf("node %q not found", name)
			}
			targets = append(targets, n)
		}
	}

	logger.Debug("Evaluating nodes.", "count", len(targets))
	results := make([]Result, 0, len(targets))
	for _, n := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, Result{Name: n.Name(), Value: n.Evaluate(ctx)})
	}
	return results, nil
}
