// Package dag holds the name-level topology of a graph file while it is being
// built: which node feeds which. It knows nothing about values or
// capabilities. The builder uses it to reject cycles before any node is
// constructed and to construct nodes inputs-first.
package dag
