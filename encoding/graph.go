// Package encoding renders dependency graphs in Graphviz DOT format.
package encoding

import (
	"strings"

	"go.interactor.dev/cfndot"
)

// BuildDOTGraph returns graph represented in Graphviz DOT format: a digraph
// with left-to-right layout and box-shaped nodes. Annotated nodes render with
// an HTML-like label, the first annotation line larger than the rest; nodes
// without an annotation use their name as the label. Nodes and edges are
// emitted in sorted order, so output is stable for a fixed input.
func BuildDOTGraph(graph *cfndot.Graph) []byte {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")

	nodes := graph.Nodes()
	for _, node := range nodes {
		sb.WriteString("  ")
		sb.WriteString(quote(node))
		sb.WriteString(" [label=")
		if annotation, ok := graph.Annotation(node); ok {
			sb.WriteString(htmlLabel(annotation))
		} else {
			sb.WriteString(quote(node))
		}
		sb.WriteString("];\n")
	}

	for _, node := range nodes {
		for _, dep := range graph.Edges(node) {
			sb.WriteString("  ")
			sb.WriteString(quote(node))
			sb.WriteString(" -> ")
			sb.WriteString(quote(dep.Target))
			sb.WriteString(" [label=")
			sb.WriteString(quote(dep.Label))
			sb.WriteString("];\n")
		}
	}

	sb.WriteString("}\n")
	return []byte(sb.String())
}

// htmlLabel renders a multi-line annotation as an HTML-like DOT label with
// the first line in a larger font than the rest.
func htmlLabel(annotation string) string {
	lines := strings.Split(annotation, "\n")

	var sb strings.Builder
	sb.WriteString(`<<FONT POINT-SIZE="14">`)
	sb.WriteString(escapeHTML(lines[0]))
	sb.WriteString("</FONT>")
	for _, line := range lines[1:] {
		sb.WriteString(`<BR/><FONT POINT-SIZE="10">`)
		sb.WriteString(escapeHTML(line))
		sb.WriteString("</FONT>")
	}
	sb.WriteString(" >")
	return sb.String()
}

var (
	quoter  = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

func escapeHTML(s string) string {
	return escaper.Replace(s)
}
