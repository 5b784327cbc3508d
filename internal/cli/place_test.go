package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/ioplace"
)

const testDesignTOML = `
name = "cli-test"

[[slot]]
pos = [0, 0]
layer = 3

[[slot]]
pos = [10, 0]
layer = 3

[[slot]]
pos = [20, 0]
layer = 3

[[pin]]
name = "clk"
sinks = [[20, 40]]

[[pin]]
name = "rst"
sinks = [[0, 40]]

[[section]]
edge = "bottom"
begin = 0
end = 2
pins = ["clk", "rst"]
`

func writeTestDesign(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "design.toml")
	if err := os.WriteFile(path, []byte(testDesignTOML), 0o644); err != nil {
		t.Fatalf("write design: %v", err)
	}
	return path
}

func TestPlaceCommand(t *testing.T) {
	designPath := writeTestDesign(t)
	outBase := filepath.Join(t.TempDir(), "out")

	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"place", designPath, "-o", outBase, "-f", "json,dot", "--no-cache"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("place command error: %v", err)
	}

	f, err := os.Open(outBase + ".json")
	if err != nil {
		t.Fatalf("json artifact missing: %v", err)
	}
	defer f.Close()
	rep, err := design.ReadReport(f)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if rep.Stats.Placed != 2 {
		t.Errorf("placed = %d, want 2", rep.Stats.Placed)
	}

	dot, err := os.ReadFile(outBase + ".dot")
	if err != nil {
		t.Fatalf("dot artifact missing: %v", err)
	}
	if !strings.Contains(string(dot), "clk") {
		t.Error("dot output should contain the placed pin")
	}
}

func TestPlaceCommandMissingDesign(t *testing.T) {
	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"place", "/does/not/exist.toml", "--no-cache"})

	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("place should fail on a missing design file")
	}
}

func TestRenderCommand(t *testing.T) {
	designPath := writeTestDesign(t)
	outBase := filepath.Join(t.TempDir(), "out")

	c := New(io.Discard, log.WarnLevel)

	// Produce a report first.
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"place", designPath, "-o", outBase, "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("place command error: %v", err)
	}

	root = c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"render", designPath, outBase + ".json", "-f", "dot", "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render command error: %v", err)
	}

	if _, err := os.Stat(outBase + ".dot"); err != nil {
		t.Errorf("dot artifact missing: %v", err)
	}
}

func TestPlacementTable(t *testing.T) {
	placements := []ioplace.Placement{
		{Name: "clk", Slot: 2, Layer: 3},
		{Name: "rst", Slot: 0, Layer: 3},
	}
	out := placementTable(placements)
	if !strings.Contains(out, "clk") || !strings.Contains(out, "rst") {
		t.Error("table should list every placed pin")
	}
}

func TestDiagnosticTable(t *testing.T) {
	diags := []ioplace.Diagnostic{
		{Severity: ioplace.SeverityWarning, Pin: "d0", Message: "no feasible slot"},
	}
	out := diagnosticTable(diags)
	if !strings.Contains(out, "d0") || !strings.Contains(out, "no feasible slot") {
		t.Error("table should show the diagnostic")
	}
}

func TestPlacementListModelNavigation(t *testing.T) {
	rep := &design.Report{
		Design: "cli-test",
		Placements: []ioplace.Placement{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
	}
	m := NewPlacementListModel(rep)

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}
	next, _ := m.Update(down)
	m = next.(PlacementListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	jump := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}
	next, _ = m.Update(jump)
	m = next.(PlacementListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	if view := m.View(); !strings.Contains(view, "cli-test") {
		t.Error("view should show the design name")
	}
}
