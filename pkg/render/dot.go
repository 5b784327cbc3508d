package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/floorplan"
)

// Options configures boundary rendering.
type Options struct {
	// Scale converts database units to graphviz inches. Zero means the
	// default of 0.01 (100 DBU per inch).
	Scale float64

	// ShowSlots draws unoccupied slots as small points. Occupied slots
	// are always drawn through their pins.
	ShowSlots bool
}

const defaultScale = 0.01

// ToDOT converts a design and its placement report into a Graphviz DOT
// graph with pinned positions, suitable for neato layout. The die core is
// drawn as an outline, placed pins as labeled boxes at their slot
// positions, and mirrored pairs are connected with dashed edges.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(d *design.Design, rep *design.Report, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = defaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph boundary {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=10];\n")
	buf.WriteString("\n")

	bounds := d.Core.Bounds
	if bounds.Width() > 0 && bounds.Height() > 0 {
		cx := float64(bounds.LL.X+bounds.UR.X) / 2 * scale
		cy := float64(bounds.LL.Y+bounds.UR.Y) / 2 * scale
		fmt.Fprintf(&buf,
			"  core [shape=box, label=%q, pos=\"%.3f,%.3f!\", width=%.3f, height=%.3f, style=dashed, color=grey];\n",
			d.Name, cx, cy,
			float64(bounds.Width())*scale, float64(bounds.Height())*scale)
	}

	occupied := make(map[floorplan.Point]bool, len(rep.Placements))
	for _, p := range rep.Placements {
		occupied[p.Pos] = true
	}

	if opts.ShowSlots {
		for i, s := range d.Slots {
			if occupied[s.Pos] {
				continue
			}
			color := "grey"
			if s.Blocked {
				color = "red"
			}
			fmt.Fprintf(&buf, "  slot%d [shape=point, width=0.04, color=%s, pos=\"%.3f,%.3f!\"];\n",
				i, color, float64(s.Pos.X)*scale, float64(s.Pos.Y)*scale)
		}
	}

	buf.WriteString("\n")
	for _, p := range rep.Placements {
		fmt.Fprintf(&buf,
			"  %q [shape=box, style=filled, fillcolor=lightblue, pos=\"%.3f,%.3f!\", label=\"%s\\nm%d\"];\n",
			p.Name, float64(p.Pos.X)*scale, float64(p.Pos.Y)*scale, p.Name, p.Layer)
	}

	if len(d.Mirrors) > 0 {
		buf.WriteString("\n")
		placed := make(map[string]bool, len(rep.Placements))
		for _, p := range rep.Placements {
			placed[p.Name] = true
		}
		for pin, partner := range d.Mirrors {
			if placed[pin] && placed[partner] {
				fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=grey];\n", pin, partner)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
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
	out := buf.Bytes()
	if format == graphviz.SVG {
		out = normalizeViewBox(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin, which embeds cleanly in web contexts.
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
