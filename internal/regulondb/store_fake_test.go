package regulondb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/biograph/internal/graph"
)

// fakeStore is an in-memory graph.Store for pass tests. Lookups are stubbed
// per (query, params) pair; writes are recorded for assertions. Anything not
// stubbed resolves to "no match", which is what an empty graph would return.
type fakeStore struct {
	queries map[string][][]graph.Node
	finds   map[string][]graph.Node

	creates []graph.CreateSpec
	updates []propUpdate
	labeled []labelAdd

	nextID int
}

type propUpdate struct {
	ID    string
	Props map[string]any
}

type labelAdd struct {
	ID     string
	Labels []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		queries: make(map[string][][]graph.Node),
		finds:   make(map[string][]graph.Node),
	}
}

func paramKey(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(parts, "&")
}

func (f *fakeStore) stubQuery(cypher string, params map[string]any, rows ...[]graph.Node) {
	f.queries[cypher+"|"+paramKey(params)] = rows
}

func (f *fakeStore) stubFind(label, property string, value any, nodes ...graph.Node) {
	f.finds[fmt.Sprintf("%s|%s|%v", label, property, value)] = nodes
}

func (f *fakeStore) Find(_ context.Context, label, property string, value any) ([]graph.Node, error) {
	return f.finds[fmt.Sprintf("%s|%s|%v", label, property, value)], nil
}

func (f *fakeStore) Query(_ context.Context, cypher string, params map[string]any) ([][]graph.Node, error) {
	return f.queries[cypher+"|"+paramKey(params)], nil
}

func (f *fakeStore) Create(_ context.Context, spec graph.CreateSpec) ([]graph.Node, error) {
	f.creates = append(f.creates, spec)
	created := make([]graph.Node, 0, len(spec.Nodes))
	for _, n := range spec.Nodes {
		f.nextID++
		created = append(created, graph.Node{
			ID:     fmt.Sprintf("new-%d", f.nextID),
			Labels: n.Labels,
			Props:  n.Props,
		})
	}
	return created, nil
}

func (f *fakeStore) UpdateProperties(_ context.Context, n graph.Node, props map[string]any) error {
	f.updates = append(f.updates, propUpdate{ID: n.ID, Props: props})
	return nil
}

func (f *fakeStore) AddLabels(_ context.Context, n graph.Node, labels ...string) error {
	f.labeled = append(f.labeled, labelAdd{ID: n.ID, Labels: labels})
	return nil
}

// lastCreate returns the most recent create spec, failing loudly on misuse
// via the zero value.
func (f *fakeStore) lastCreate() graph.CreateSpec {
	if len(f.creates) == 0 {
		return graph.CreateSpec{}
	}
	return f.creates[len(f.creates)-1]
}
