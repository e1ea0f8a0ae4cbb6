// Package node implements the dataflow graph: computation nodes wired
// together by typed edges and evaluated on demand.
//
// There is no graph container. Topology emerges from each node holding
// references to its input nodes and back-references to its output nodes.
// Evaluation pulls values upstream through the input references only; the
// output back-references are bookkeeping.
//
// # Types and values
//
// Types are cty.Type descriptors and values are cty.Value. The no-result
// sentinel is cty.NilVal: it is what Value reports before the first
// evaluation and what an operation yields after a failed invocation.
//
// # Soft validation
//
// Wiring an edge whose source return type is not among the destination's
// input types is allowed. The mismatch is logged as a warning and returned
// as an hcl.DiagWarning diagnostic, and the edge is added anyway.
//
// # Failure handling
//
// An operation whose capability cannot be invoked logs an InvocationError
// and yields cty.NilVal. Failures never unwind past a single node's
// Evaluate; downstream nodes receive the sentinel as an input.
//
// # Hazards
//
// Cycles are not detected. Evaluating a node that can reach itself through
// its inputs recurses without bound. Shared upstream nodes in a diamond are
// re-evaluated once per consumer; there is no memoization.
package node
