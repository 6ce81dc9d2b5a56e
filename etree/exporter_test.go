package etree_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/relgraph"
	relgraphetree "github.com/fwojciec/relgraph/etree"
	"github.com/fwojciec/relgraph/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_ExportGraph(t *testing.T) {
	t.Parallel()

	nodes := &mock.NodeService{
		FindNodesFn: func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
			return []*relgraph.Node{
				{ID: "alice", Name: "Alice Chen", Company: "Google", Degree: 1},
				{ID: "bob", Name: "Bob Jones", Degree: 2},
			}, nil
		},
	}
	edges := &mock.EdgeService{
		FindEdgesFn: func(ctx context.Context, filter relgraph.EdgeFilter) ([]*relgraph.Edge, error) {
			return []*relgraph.Edge{
				{From: "me", To: "alice", Weight: 1, Kind: relgraph.EdgeKindConnection},
			}, nil
		},
	}

	var buf bytes.Buffer
	exporter := relgraphetree.NewExporter(nodes, edges)
	require.NoError(t, exporter.ExportGraph(context.Background(), &buf))

	// The output must round-trip as XML.
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	graph := doc.FindElement("//graphml/graph")
	require.NotNil(t, graph)
	assert.Equal(t, "directed", graph.SelectAttrValue("edgedefault", ""))

	nodeEls := graph.SelectElements("node")
	require.Len(t, nodeEls, 2)
	assert.Equal(t, "alice", nodeEls[0].SelectAttrValue("id", ""))

	var name string
	for _, data := range nodeEls[0].SelectElements("data") {
		if data.SelectAttrValue("key", "") == "name" {
			name = data.Text()
		}
	}
	assert.Equal(t, "Alice Chen", name)

	// Empty fields are omitted from the document.
	for _, data := range nodeEls[1].SelectElements("data") {
		assert.NotEqual(t, "company", data.SelectAttrValue("key", ""))
	}

	edgeEls := graph.SelectElements("edge")
	require.Len(t, edgeEls, 1)
	assert.Equal(t, "me", edgeEls[0].SelectAttrValue("source", ""))
	assert.Equal(t, "alice", edgeEls[0].SelectAttrValue("target", ""))
}

func TestExporter_ExportGraph_StoreError(t *testing.T) {
	t.Parallel()

	nodes := &mock.NodeService{
		FindNodesFn: func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
			return nil, relgraph.Errorf(relgraph.EINTERNAL, "database locked")
		},
	}

	exporter := relgraphetree.NewExporter(nodes, &mock.EdgeService{})
	err := exporter.ExportGraph(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, relgraph.EINTERNAL, relgraph.ErrorCode(err))
}
