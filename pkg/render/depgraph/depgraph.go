// Package depgraph renders a descriptor's dependency declarations as a
// graph: one root node for the distribution, one node per requirement,
// and a cluster per extra-requires group.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// Options configures dependency graph rendering.
type Options struct {
	// Detailed includes the version constraints in node labels.
	// When false, only the package name is shown.
	Detailed bool
}

// ToDOT converts the descriptor's requires and extra-requires lists to
// Graphviz DOT format. The resulting DOT string can be rendered with
// [RenderSVG] or [RenderPNG]. Unparseable specifiers are rendered with
// their raw text rather than dropped.
func ToDOT(d *descriptor.Descriptor, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := fmt.Sprintf("%s %s", d.Name, d.VersionString())
	fmt.Fprintf(&buf, "  %q [style=\"rounded,filled,bold\", fillcolor=lightblue];\n", root)

	for _, req := range d.Requires {
		id, label := nodeLabel(req, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
		fmt.Fprintf(&buf, "  %q -> %q;\n", root, id)
	}

	groups := make([]string, 0, len(d.ExtraRequires))
	for g := range d.ExtraRequires {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	for i, group := range groups {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", "extra: "+group)
		buf.WriteString("    style=dashed;\n")
		for _, req := range d.ExtraRequires[group] {
			id, label := nodeLabel(req, opts.Detailed)
			// Prefix with the group so the same package can appear in
			// several extras without node collisions.
			id = group + "/" + id
			fmt.Fprintf(&buf, "    %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n", id, label)
		}
		buf.WriteString("  }\n")
		for _, req := range d.ExtraRequires[group] {
			id, _ := nodeLabel(req, opts.Detailed)
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", root, group+"/"+id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(req string, detailed bool) (id, label string) {
	spec, err := specifier.Parse(req)
	if err != nil {
		return req, req
	}
	if !detailed || len(spec.Constraints) == 0 {
		return spec.Name, spec.Name
	}
	constraints := make([]string, len(spec.Constraints))
	for i, c := range spec.Constraints {
		constraints[i] = c.String()
	}
	return spec.Name, spec.Name + "\n" + strings.Join(constraints, ",")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
