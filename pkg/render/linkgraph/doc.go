// Package linkgraph renders a scene's link dependencies as a directed
// graph diagram.
//
// # Overview
//
// Layers can defer parts of their geometry to other layers through links
// (width, height, x, y). Groups additionally depend on their members.
// This package produces a Graphviz view of those relationships: nodes are
// layers, solid labeled arrows are geometry links, and dashed arrows are
// group membership.
//
// # Usage
//
// Convert the layer tree to DOT format, then render to SVG:
//
//	dot := linkgraph.ToDOT(c.Layers().Roots(), linkgraph.Options{})
//	svg, err := linkgraph.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := linkgraph.RenderPDF(dot)
//	png, err := linkgraph.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Edges point from the dependent layer to the layer it reads from, so a
// cycle in the diagram is exactly a cycle the resolver would reject.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package linkgraph
