package pipeline

import (
	"bytes"
	"fmt"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/render"
)

// Render generates output artifacts in the requested formats. The DOT
// graph is generated once and shared by the svg and png formats.
func Render(d *design.Design, rep *design.Report, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)

	var dot string
	needDOT := func() string {
		if dot == "" {
			dot = render.ToDOT(d, rep, opts.RenderOptions())
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err = design.WriteReport(rep, &buf); err == nil {
				data = buf.Bytes()
			}
		case FormatDOT:
			data = []byte(needDOT())
		case FormatSVG:
			data, err = render.RenderSVG(needDOT())
		case FormatPNG:
			data, err = render.RenderPNG(needDOT())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
