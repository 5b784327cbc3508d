package design

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/askeland/pinplace/pkg/cache"
	"github.com/askeland/pinplace/pkg/errors"
	"github.com/askeland/pinplace/pkg/floorplan"
	"github.com/askeland/pinplace/pkg/netlist"
)

// Design is a fully validated, solver-ready design: the slot grid, the pin
// table, the section partition, mirror constraints, and the reference
// wirelength oracle built from the declared nets.
type Design struct {
	Name     string
	Core     floorplan.Core
	Slots    floorplan.Slots
	Pins     []floorplan.Pin
	Sections []floorplan.Section
	Mirrors  floorplan.MirrorMap
	Net      *netlist.Netlist

	// Hash is the SHA-256 of the raw input bytes, used as the cache key
	// for everything derived from this design.
	Hash string
}

// document is the on-disk schema, shared by the TOML and JSON readers.
type document struct {
	Name     string       `toml:"name" json:"name"`
	Core     rectDoc      `toml:"core" json:"core"`
	Slots    []slotDoc    `toml:"slot" json:"slots"`
	Pins     []pinDoc     `toml:"pin" json:"pins"`
	Groups   []groupDoc   `toml:"group" json:"groups"`
	Sections []sectionDoc `toml:"section" json:"sections"`
}

type rectDoc struct {
	LL []int `toml:"ll" json:"ll"`
	UR []int `toml:"ur" json:"ur"`
}

type slotDoc struct {
	Pos     []int `toml:"pos" json:"pos"`
	Layer   int   `toml:"layer" json:"layer"`
	Blocked bool  `toml:"blocked" json:"blocked,omitempty"`
}

type pinDoc struct {
	Name    string    `toml:"name" json:"name"`
	Mirror  string    `toml:"mirror" json:"mirror,omitempty"`
	Sinks   [][]int   `toml:"sinks" json:"sinks,omitempty"`
	Regions []rectDoc `toml:"region" json:"regions,omitempty"`
}

type groupDoc struct {
	Pins  []string `toml:"pins" json:"pins"`
	Order bool     `toml:"order" json:"order,omitempty"`
}

type sectionDoc struct {
	Edge   string   `toml:"edge" json:"edge"`
	Begin  int      `toml:"begin" json:"begin"`
	End    int      `toml:"end" json:"end"`
	Pins   []string `toml:"pins" json:"pins,omitempty"`
	Groups []int    `toml:"groups" json:"groups,omitempty"`
}

// Load reads a design file, picking the format from the extension:
// .toml for TOML, .json for JSON.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "design file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read design file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ReadTOML(bytes.NewReader(data))
	case ".json":
		return ReadJSON(bytes.NewReader(data))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported design format %q (want .toml or .json)", filepath.Ext(path))
	}
}

// ReadTOML decodes a TOML design document from r.
func ReadTOML(r io.Reader) (*Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML design")
	}
	return build(&doc, data)
}

// ReadJSON decodes a JSON design document from r.
func ReadJSON(r io.Reader) (*Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON design")
	}
	return build(&doc, data)
}

// build validates the document and assembles the solver-ready design.
//
// build returns an error if:
//   - a point or rect has the wrong arity
//   - a pin name is empty, duplicated, or references an unknown mirror
//   - a group or section references an unknown pin or group
//   - a section range falls outside the slot grid or uses an unknown edge
func build(doc *document, raw []byte) (*Design, error) {
	d := &Design{
		Name: doc.Name,
		Hash: cache.Hash(raw),
	}

	// The core is only needed as the mirror transform; designs without
	// mirrored pins may omit it.
	if len(doc.Core.LL) > 0 || len(doc.Core.UR) > 0 {
		core, err := rect(doc.Core, "core")
		if err != nil {
			return nil, err
		}
		d.Core = floorplan.Core{Bounds: core}
	} else if hasMirrors(doc.Pins) {
		return nil, errors.New(errors.ErrCodeInvalidDesign,
			"design declares mirrored pins but no core bounds")
	}

	d.Slots = make(floorplan.Slots, len(doc.Slots))
	for i, s := range doc.Slots {
		pos, err := point(s.Pos, "slot position")
		if err != nil {
			return nil, err
		}
		d.Slots[i] = floorplan.Slot{Pos: pos, Layer: s.Layer, Blocked: s.Blocked}
	}

	pinIndex := make(map[string]int, len(doc.Pins))
	d.Pins = make([]floorplan.Pin, len(doc.Pins))
	d.Net = netlist.New(len(doc.Pins))
	for i, p := range doc.Pins {
		if err := errors.ValidatePinName(p.Name); err != nil {
			return nil, err
		}
		if _, dup := pinIndex[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidDesign, "duplicate pin name %q", p.Name)
		}
		pinIndex[p.Name] = i
		d.Pins[i] = floorplan.Pin{Name: p.Name}

		sinks := make([]floorplan.Point, len(p.Sinks))
		for j, s := range p.Sinks {
			sink, err := point(s, "sink of pin "+p.Name)
			if err != nil {
				return nil, err
			}
			sinks[j] = sink
		}
		d.Net.SetSinks(i, sinks)

		for _, r := range p.Regions {
			region, err := rect(r, "region of pin "+p.Name)
			if err != nil {
				return nil, err
			}
			d.Net.AddRegion(i, region)
		}
	}

	d.Mirrors = make(floorplan.MirrorMap)
	for _, p := range doc.Pins {
		if p.Mirror == "" {
			continue
		}
		if _, ok := pinIndex[p.Mirror]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidDesign,
				"pin %q mirrors unknown pin %q", p.Name, p.Mirror)
		}
		d.Mirrors[p.Name] = p.Mirror
	}

	groups := make([]floorplan.Group, len(doc.Groups))
	for gi, g := range doc.Groups {
		if len(g.Pins) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidDesign, "group %d has no pins", gi)
		}
		members := make([]int, len(g.Pins))
		for j, name := range g.Pins {
			idx, ok := pinIndex[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidDesign,
					"group %d references unknown pin %q", gi, name)
			}
			if d.Pins[idx].InGroup {
				return nil, errors.New(errors.ErrCodeInvalidDesign,
					"pin %q belongs to more than one group", name)
			}
			d.Pins[idx].InGroup = true
			members[j] = idx
		}
		groups[gi] = floorplan.Group{Pins: members, Order: g.Order}
	}

	d.Sections = make([]floorplan.Section, len(doc.Sections))
	for si, s := range doc.Sections {
		edge, ok := floorplan.ParseEdge(s.Edge)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidEdge,
				"section %d: unknown edge %q", si, s.Edge)
		}
		if s.Begin < 0 || s.End >= len(d.Slots) || s.Begin > s.End {
			return nil, errors.New(errors.ErrCodeInvalidSection,
				"section %d: slot range [%d, %d] outside grid of %d slots",
				si, s.Begin, s.End, len(d.Slots))
		}

		sec := floorplan.NewSection(d.Slots, s.Begin, s.End, edge)
		for _, name := range s.Pins {
			idx, ok := pinIndex[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidSection,
					"section %d references unknown pin %q", si, name)
			}
			sec.Pins = append(sec.Pins, idx)
		}
		for _, gi := range s.Groups {
			if gi < 0 || gi >= len(groups) {
				return nil, errors.New(errors.ErrCodeInvalidSection,
					"section %d references unknown group %d", si, gi)
			}
			sec.Groups = append(sec.Groups, groups[gi])
		}
		d.Sections[si] = sec
	}

	return d, nil
}

func hasMirrors(pins []pinDoc) bool {
	for _, p := range pins {
		if p.Mirror != "" {
			return true
		}
	}
	return false
}

func point(coords []int, what string) (floorplan.Point, error) {
	if len(coords) != 2 {
		return floorplan.Point{}, errors.New(errors.ErrCodeInvalidDesign,
			"%s must be [x, y], got %d coordinates", what, len(coords))
	}
	return floorplan.Point{X: coords[0], Y: coords[1]}, nil
}

func rect(r rectDoc, what string) (floorplan.Rect, error) {
	ll, err := point(r.LL, what+" lower-left")
	if err != nil {
		return floorplan.Rect{}, err
	}
	ur, err := point(r.UR, what+" upper-right")
	if err != nil {
		return floorplan.Rect{}, err
	}
	if ur.X < ll.X || ur.Y < ll.Y {
		return floorplan.Rect{}, errors.New(errors.ErrCodeInvalidDesign,
			"%s is inverted: %s to %s", what, ll, ur)
	}
	return floorplan.Rect{LL: ll, UR: ur}, nil
}
