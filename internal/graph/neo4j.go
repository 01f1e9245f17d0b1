package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/biograph/internal/platform/logger"
	"github.com/yungbote/biograph/internal/platform/neo4jdb"
)

// Neo4jStore implements Store against a live Neo4j database. Every statement
// it issues is parameterized; values never end up interpolated into Cypher
// text. Labels and relationship types cannot be bound as parameters, so they
// are backtick-quoted instead (some labels, like 5'UTR, need it).
type Neo4jStore struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewNeo4jStore(client *neo4jdb.Client, log *logger.Logger) *Neo4jStore {
	return &Neo4jStore{client: client, log: log.With("component", "graph_store")}
}

func quoteIdent(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func (s *Neo4jStore) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.client.Database,
	})
}

func (s *Neo4jStore) Find(ctx context.Context, label, property string, value any) ([]Node, error) {
	cypher := fmt.Sprintf("MATCH (n:%s {%s: $value}) RETURN n", quoteIdent(label), quoteIdent(property))
	rows, err := s.Query(ctx, cypher, map[string]any{"value": value})
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, row[0])
	}
	return nodes, nil
}

func (s *Neo4jStore) Query(ctx context.Context, cypher string, params map[string]any) ([][]Node, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	res, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cur, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		var rows [][]Node
		for cur.Next(ctx) {
			rec := cur.Record()
			row := make([]Node, 0, len(rec.Values))
			for _, v := range rec.Values {
				n, ok := v.(neo4j.Node)
				if !ok {
					return nil, fmt.Errorf("graph: query returned non-node value %T", v)
				}
				row = append(row, fromDriverNode(n))
			}
			rows = append(rows, row)
		}
		return rows, cur.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("graph: query: %w", err)
	}
	return res.([][]Node), nil
}

func (s *Neo4jStore) Create(ctx context.Context, spec CreateSpec) ([]Node, error) {
	cypher, params, err := buildCreate(spec)
	if err != nil {
		return nil, err
	}

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	res, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cur, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		created := make([]Node, 0, len(spec.Nodes))
		if len(spec.Nodes) > 0 {
			if cur.Next(ctx) {
				for _, v := range cur.Record().Values {
					n, ok := v.(neo4j.Node)
					if !ok {
						return nil, fmt.Errorf("graph: create returned non-node value %T", v)
					}
					created = append(created, fromDriverNode(n))
				}
			}
			if err := cur.Err(); err != nil {
				return nil, err
			}
		}
		if _, err := cur.Consume(ctx); err != nil {
			return nil, err
		}
		return created, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: create: %w", err)
	}
	return res.([]Node), nil
}

func (s *Neo4jStore) UpdateProperties(ctx context.Context, n Node, props map[string]any) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cur, err := tx.Run(ctx,
			"MATCH (n) WHERE elementId(n) = $id SET n += $props",
			map[string]any{"id": n.ID, "props": props})
		if err != nil {
			return nil, err
		}
		return cur.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("graph: update properties: %w", err)
	}
	return nil
}

func (s *Neo4jStore) AddLabels(ctx context.Context, n Node, labels ...string) error {
	if len(labels) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(labels))
	for _, l := range labels {
		quoted = append(quoted, quoteIdent(l))
	}
	cypher := fmt.Sprintf("MATCH (n) WHERE elementId(n) = $id SET n:%s", strings.Join(quoted, ":"))

	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cur, err := tx.Run(ctx, cypher, map[string]any{"id": n.ID})
		if err != nil {
			return nil, err
		}
		return cur.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("graph: add labels: %w", err)
	}
	return nil
}

// buildCreate compiles a CreateSpec into one Cypher statement. Existing
// anchors are matched by element id first; fresh nodes are created with
// their labels and properties in the same clause; edges between two existing
// anchors use MERGE so re-wiring an already-connected pair is a no-op.
func buildCreate(spec CreateSpec) (string, map[string]any, error) {
	var b strings.Builder
	params := make(map[string]any)

	existing := make(map[string]string) // element id -> cypher variable
	nextExisting := 0
	anchorVar := func(e EdgeEnd) (string, error) {
		if e.Node != nil {
			v, ok := existing[e.Node.ID]
			if !ok {
				v = fmt.Sprintf("e%d", nextExisting)
				nextExisting++
				existing[e.Node.ID] = v
				fmt.Fprintf(&b, "MATCH (%s) WHERE elementId(%s) = $%s_id\n", v, v, v)
				params[v+"_id"] = e.Node.ID
			}
			return v, nil
		}
		if e.Index < 0 || e.Index >= len(spec.Nodes) {
			return "", fmt.Errorf("graph: edge references node index %d of %d", e.Index, len(spec.Nodes))
		}
		return fmt.Sprintf("n%d", e.Index), nil
	}

	// Resolve all existing anchors up front so every MATCH precedes the
	// first CREATE.
	for _, e := range spec.Edges {
		for _, end := range []EdgeEnd{e.From, e.To} {
			if end.Node != nil {
				if _, err := anchorVar(end); err != nil {
					return "", nil, err
				}
			}
		}
	}

	for i, n := range spec.Nodes {
		v := fmt.Sprintf("n%d", i)
		labels := ""
		for _, l := range n.Labels {
			labels += ":" + quoteIdent(l)
		}
		fmt.Fprintf(&b, "CREATE (%s%s)\nSET %s = $%s_props\n", v, labels, v, v)
		props := n.Props
		if props == nil {
			props = map[string]any{}
		}
		params[v+"_props"] = props
	}

	for _, e := range spec.Edges {
		from, err := anchorVar(e.From)
		if err != nil {
			return "", nil, err
		}
		to, err := anchorVar(e.To)
		if err != nil {
			return "", nil, err
		}
		clause := "CREATE"
		if e.From.Node != nil && e.To.Node != nil {
			clause = "MERGE"
		}
		fmt.Fprintf(&b, "%s (%s)-[:%s]->(%s)\n", clause, from, quoteIdent(e.Type), to)
	}

	if len(spec.Nodes) > 0 {
		vars := make([]string, 0, len(spec.Nodes))
		for i := range spec.Nodes {
			vars = append(vars, fmt.Sprintf("n%d", i))
		}
		fmt.Fprintf(&b, "RETURN %s", strings.Join(vars, ", "))
	}

	return b.String(), params, nil
}

func fromDriverNode(n neo4j.Node) Node {
	return Node{
		ID:     n.ElementId,
		Labels: n.Labels,
		Props:  n.Props,
	}
}
