// Package graph provides a name-indexed view over the nodes built from a
// graph file.
//
// # Why Graph Package Exists
//
// Nodes carry their own topology: each one holds its inputs and a
// back-reference to its outputs, and evaluation walks those references
// directly. Nothing in the node package needs a container. Callers that
// start from a file, however, think in names ("evaluate m2"), so the builder
// hands back a Graph that maps the declared names onto the built nodes and
// remembers the declaration order.
//
// A Graph is a lookup convenience, not an evaluation engine. It does not
// cache results and does not schedule anything; Evaluate simply asks each
// requested node to evaluate itself, in the order given.
//
// # Sinks
//
// A sink is a node with no outputs. Sinks are what a caller usually wants
// when no names are given, since every other node feeds one of them.
// The answer is computed from the nodes' live edge lists, so it reflects
// edges added or removed after the build.
//
// # Thread-Safety
//
// The index itself is guarded by a RWMutex. The nodes it returns follow
// their own locking rules.
package graph
