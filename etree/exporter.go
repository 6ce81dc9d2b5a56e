// Package etree exports the stored relationship graph as GraphML so it
// can be opened in external graph tooling.
package etree

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/relgraph"
)

var _ relgraph.GraphExporter = (*Exporter)(nil)

// Exporter writes the full node and edge sets as a GraphML document.
type Exporter struct {
	Nodes relgraph.NodeService
	Edges relgraph.EdgeService
}

// NewExporter creates an Exporter over the given services.
func NewExporter(nodes relgraph.NodeService, edges relgraph.EdgeService) *Exporter {
	return &Exporter{Nodes: nodes, Edges: edges}
}

// nodeKeys declares the GraphML attribute keys emitted per node.
var nodeKeys = []struct {
	id, name, typ string
}{
	{"name", "name", "string"},
	{"headline", "headline", "string"},
	{"company", "company", "string"},
	{"role", "role", "string"},
	{"location", "location", "string"},
	{"degree", "degree", "int"},
}

// ExportGraph writes every stored node and edge to w as GraphML.
func (e *Exporter) ExportGraph(ctx context.Context, w io.Writer) error {
	nodes, err := e.Nodes.FindNodes(ctx, relgraph.NodeFilter{})
	if err != nil {
		return err
	}
	edges, err := e.Edges.FindEdges(ctx, relgraph.EdgeFilter{})
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	graphml := doc.CreateElement("graphml")
	graphml.CreateAttr("xmlns", "http://graphml.graphdrawing.org/xmlns")

	for _, key := range nodeKeys {
		el := graphml.CreateElement("key")
		el.CreateAttr("id", key.id)
		el.CreateAttr("for", "node")
		el.CreateAttr("attr.name", key.name)
		el.CreateAttr("attr.type", key.typ)
	}
	for _, key := range []struct{ id, name, typ string }{
		{"weight", "weight", "double"},
		{"kind", "kind", "string"},
	} {
		el := graphml.CreateElement("key")
		el.CreateAttr("id", key.id)
		el.CreateAttr("for", "edge")
		el.CreateAttr("attr.name", key.name)
		el.CreateAttr("attr.type", key.typ)
	}

	graph := graphml.CreateElement("graph")
	graph.CreateAttr("id", "relgraph")
	graph.CreateAttr("edgedefault", "directed")

	for _, node := range nodes {
		el := graph.CreateElement("node")
		el.CreateAttr("id", node.ID)
		addData(el, "name", node.Name)
		addData(el, "headline", node.Headline)
		addData(el, "company", node.Company)
		addData(el, "role", node.Role)
		addData(el, "location", node.Location)
		addData(el, "degree", fmt.Sprintf("%d", node.Degree))
	}

	for _, edge := range edges {
		el := graph.CreateElement("edge")
		el.CreateAttr("source", edge.From)
		el.CreateAttr("target", edge.To)
		addData(el, "weight", fmt.Sprintf("%g", edge.Weight))
		addData(el, "kind", edge.Kind)
		if !edge.CreatedAt.IsZero() {
			el.CreateAttr("created", edge.CreatedAt.UTC().Format(time.RFC3339))
		}
	}

	doc.Indent(2)
	_, err = doc.WriteTo(w)
	return err
}

// addData appends a <data> child, omitting empty values to keep the
// document compact.
func addData(el *etree.Element, key, value string) {
	if value == "" {
		return
	}
	data := el.CreateElement("data")
	data.CreateAttr("key", key)
	data.SetText(value)
}
