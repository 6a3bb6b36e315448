package linkgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layercake/pkg/geom"
	"github.com/matzehuels/layercake/pkg/render"
	"github.com/matzehuels/layercake/pkg/scene"
)

// Options configures link graph rendering.
type Options struct {
	// Detailed includes layer kind and z-index in node labels.
	// When false, only the layer ID is shown.
	Detailed bool
}

// ToDOT converts a layer tree to Graphviz DOT format for link graph
// visualization. The resulting DOT string can be rendered using
// [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Group nodes are rendered with dashed outlines and grey fill to
// distinguish them from drawable layers. Geometry link edges carry the
// linked component as a label; membership edges are dashed.
func ToDOT(roots []scene.Layer, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=18];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var nodes, edges []string
	walk(roots, opts, &nodes, &edges)

	for _, n := range nodes {
		buf.WriteString(n)
	}
	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func walk(layers []scene.Layer, opts Options, nodes, edges *[]string) {
	for _, l := range layers {
		label := fmtLabel(l, opts.Detailed)
		attrs := fmtAttrs(l, label)
		*nodes = append(*nodes, fmt.Sprintf("  %q [%s];\n", l.ID(), strings.Join(attrs, ", ")))

		for _, e := range linkEdges(l) {
			*edges = append(*edges, fmt.Sprintf("  %q -> %q [label=%q];\n", l.ID(), e.to, e.label))
		}

		if c, ok := l.(scene.Container); ok {
			for _, child := range c.Children() {
				*edges = append(*edges, fmt.Sprintf("  %q -> %q [style=dashed, arrowhead=open];\n", l.ID(), child.ID()))
			}
			walk(c.Children(), opts, nodes, edges)
		}
	}
}

func fmtLabel(l scene.Layer, detailed bool) string {
	if !detailed {
		return l.ID()
	}

	parts := []string{fmt.Sprintf("kind: %s", l.Kind())}
	if z := l.ZIndex(); z != 0 {
		parts = append(parts, fmt.Sprintf("z: %d", z))
	}
	if !l.Visible() {
		parts = append(parts, "hidden")
	}

	return l.ID() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(l scene.Layer, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if l.Kind() == scene.KindGroup {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// edge is one geometry link: the source layer it reads from and the
// linked component used as the edge label.
type edge struct {
	to    string
	label string
}

// linkEdges collects the geometry links a layer declares, in evaluation
// order: box components first, then vertices for point-based variants.
func linkEdges(l scene.Layer) []edge {
	var edges []edge
	add := func(v geom.Value) {
		if ln, ok := v.Link(); ok {
			edges = append(edges, edge{to: ln.Source, label: string(ln.Type)})
		}
	}

	g := l.Geometry()
	add(g.X)
	add(g.Y)
	add(g.W)
	add(g.H)

	if p, ok := l.(scene.PointsLayer); ok {
		for _, v := range p.Vertices() {
			add(v.X)
			add(v.Y)
		}
	}
	return edges
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.SVGToPNG].
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.SVGToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.SVGToPNG(svg, scale)
}
