// Package pkg provides the core libraries for layercake scene composition.
//
// # Overview
//
// Layercake builds 2D scenes from declarative documents and renders them
// to raster and vector formats. The pkg directory is organized into four
// main areas:
//
//  1. Scene model - [scene], [geom], [fonts]: layers, values, anchors, text
//  2. Composition - [canvas], [resolve], [anim]: the live canvas, link
//     resolution, and time-based animation
//  3. Rendering - [render] and its sinks: PNG, JPEG, SVG, GIF, link graphs
//  4. Plumbing - [sceneio], [pipeline], [cache], [store], [httputil],
//     [errors], [observability]
//
// # Architecture
//
// The typical data flow through layercake:
//
//	JSON/YAML document
//	         ↓
//	    [sceneio] package (parse + validate)
//	         ↓
//	    [canvas] package (layer tree + animation policy)
//	         ↓
//	    [resolve] package (links → pixel geometry)
//	         ↓
//	    [render] package (raster and vector sinks)
//	         ↓
//	    PNG/JPEG/SVG/GIF output
//
// # Quick Start
//
// Render a scene document through the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "scene.json",
//	    Formats: []string{"png"},
//	})
//
// Or build a canvas programmatically:
//
//	c, _ := canvas.New(800, 600)
//	c.Layers().Add(scene.NewMorph().
//	    SetSize(geom.Px(200), geom.Px(100)).
//	    SetFill(scene.Solid(color)))
//	out, _ := render.New(c).Render(ctx, render.Target{Format: render.FormatPNG})
package pkg
