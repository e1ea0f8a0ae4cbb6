/*
Package builder turns a format-agnostic config.Model into live nodes.

The build is a multi-phase process:

 1. Topology: every definition becomes a vertex in a dag.Graph and every
    input reference becomes an edge. References may point forward. Unknown
    references, self-references and unknown capabilities are collected as
    error diagnostics, each pointing at the block that declared the node.

 2. Validation: the dag is checked for cycles. The evaluator itself never
    looks for cycles, so this is the only place a cyclic file is rejected.

 3. Construction: nodes are constructed inputs-first in topological order,
    so an operation always receives already-built input nodes. Connection
    type mismatches are soft: they come back as warning diagnostics attached
    to the resulting graph.Graph and do not stop the build.
*/
package builder
