// Package graph defines the boundary to the knowledge-graph store and its
// Neo4j implementation. The import pipeline only ever talks to the Store
// interface; everything it needs from the database is expressible as an
// exact-match lookup, a pattern query, a batched create or a property patch.
package graph

import "context"

// Node is a handle to a graph entity plus a snapshot of its properties as
// they were at query time.
type Node struct {
	ID     string
	Labels []string
	Props  map[string]any
}

// StringProp returns the named property if it is a string.
func (n Node) StringProp(key string) string {
	if s, ok := n.Props[key].(string); ok {
		return s
	}
	return ""
}

// IntProp returns the named property as an int64. Neo4j integers come back
// as int64; anything else yields zero.
func (n Node) IntProp(key string) int64 {
	switch v := n.Props[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// NodeSpec describes a node to be created: its full label set and initial
// properties, applied together in the same write.
type NodeSpec struct {
	Labels []string
	Props  map[string]any
}

// EdgeEnd anchors one end of an edge either on a node being created in the
// same CreateSpec (by index into Nodes) or on a pre-existing node.
type EdgeEnd struct {
	Index int
	Node  *Node
}

func NewNode(index int) EdgeEnd { return EdgeEnd{Index: index} }

func Existing(n Node) EdgeEnd { return EdgeEnd{Index: -1, Node: &n} }

// EdgeSpec is a directed, typed edge between two anchors. Edges whose both
// ends already exist are created only if absent; edges touching a node from
// the same spec are always created with it.
type EdgeSpec struct {
	From EdgeEnd
	Type string
	To   EdgeEnd
}

// CreateSpec is one logical write: all nodes and edges land together.
type CreateSpec struct {
	Nodes []NodeSpec
	Edges []EdgeSpec
}

// Store is the complete surface the import pipeline requires of the graph
// database. All lookups are read-only; Create returns handles in the order
// the nodes were requested.
type Store interface {
	Find(ctx context.Context, label, property string, value any) ([]Node, error)
	Query(ctx context.Context, cypher string, params map[string]any) ([][]Node, error)
	Create(ctx context.Context, spec CreateSpec) ([]Node, error)
	UpdateProperties(ctx context.Context, n Node, props map[string]any) error
	AddLabels(ctx context.Context, n Node, labels ...string) error
}
