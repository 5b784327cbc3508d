package design

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/askeland/pinplace/pkg/ioplace"
)

// Report is the machine-readable output of one placement run. The same
// document is written by the CLI, persisted by the run store, and served
// by the HTTP API.
type Report struct {
	Design      string               `json:"design"`
	Placements  []ioplace.Placement  `json:"placements"`
	Diagnostics []ioplace.Diagnostic `json:"diagnostics,omitempty"`
	Stats       ioplace.Stats        `json:"stats"`
}

// NewReport wraps a placement result with its design name.
func NewReport(designName string, result *ioplace.Result) *Report {
	return &Report{
		Design:      designName,
		Placements:  result.Placements,
		Diagnostics: result.Diagnostics,
		Stats:       result.Stats,
	}
}

// WriteReport encodes the report as indented JSON and writes it to w.
// The output can be re-read with [ReadReport].
func WriteReport(rep *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportReport writes the report to a JSON file at path.
// This is a convenience wrapper around [WriteReport] for file-based output.
func ExportReport(rep *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(rep, f)
}

// ReadReport decodes a placement report from r.
func ReadReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &rep, nil
}
