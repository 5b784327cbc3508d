package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/askeland/pinplace/pkg/cache"
	"github.com/askeland/pinplace/pkg/design"
)

const testDesignTOML = `
name = "pipeline-test"

[core]
ll = [0, 0]
ur = [100, 80]

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
	if err := os.WriteFile(path, []byte(testDesignTOML), 0644); err != nil {
		t.Fatalf("write design: %v", err)
	}
	return path
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{
			name:    "missing design",
			opts:    Options{},
			wantErr: "design_path or design_data",
		},
		{
			name:    "data without format",
			opts:    Options{DesignData: []byte("{}")},
			wantErr: "design_format",
		},
		{
			name:    "bad format",
			opts:    Options{DesignPath: "x.toml", Formats: []string{"gif"}},
			wantErr: "invalid format",
		},
		{
			name: "valid",
			opts: Options{DesignPath: "x.toml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{DesignPath: "x.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Workers != DefaultWorkers || len(opts.Formats) != 1 {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		DesignPath: writeTestDesign(t),
		Formats:    []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Design.Name != "pipeline-test" {
		t.Errorf("design name = %q", result.Design.Name)
	}
	if result.Stats.SlotCount != 3 || result.Stats.PinCount != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Report.Stats.Placed != 2 {
		t.Errorf("placed = %d, want 2", result.Report.Stats.Placed)
	}

	// The JSON artifact round-trips as a report.
	rep, err := design.ReadReport(bytes.NewReader(result.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(rep.Placements) != 2 {
		t.Errorf("json placements = %+v", rep.Placements)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, `"clk"`) || !strings.Contains(dot, `"rst"`) {
		t.Errorf("dot artifact missing pins:\n%s", dot)
	}
}

func TestExecuteFromData(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		DesignData:   []byte(testDesignTOML),
		DesignFormat: "toml",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Report.Stats.Placed != 2 {
		t.Errorf("placed = %d, want 2", result.Report.Stats.Placed)
	}
	// JSON is the default format.
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("default json artifact missing")
	}
}

func TestPlacementCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		DesignPath: writeTestDesign(t),
		Formats:    []string{FormatJSON},
	}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.PlaceHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.PlaceHit {
		t.Error("second run should hit the placement cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if len(second.Report.Placements) != len(first.Report.Placements) {
		t.Error("cached report differs from computed report")
	}

	// Refresh bypasses the placement cache.
	refreshOpts := opts
	refreshOpts.Refresh = true
	third, err := runner.Execute(context.Background(), refreshOpts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.PlaceHit {
		t.Error("refresh run should bypass the placement cache")
	}
}

func TestRenderStandalone(t *testing.T) {
	d, err := design.ReadTOML(strings.NewReader(testDesignTOML))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	rep, err := runner.Place(context.Background(), d, Options{DesignPath: "unused"})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	artifacts, err := Render(d, rep, Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "graph boundary {") {
		t.Errorf("unexpected dot output: %.40s", artifacts[FormatDOT])
	}
}
