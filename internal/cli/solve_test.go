package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/askeland/pinplace/pkg/assign"
)

func writeMatrixFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matrix.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write matrix: %v", err)
	}
	return path
}

func TestReadMatrix(t *testing.T) {
	path := writeMatrixFile(t, `[[4,1,3],[2,0,5],[3,-1,2]]`)

	m, err := readMatrix(path)
	if err != nil {
		t.Fatalf("readMatrix() error: %v", err)
	}

	if m.Rows() != 3 || m.Cols() != 3 {
		t.Fatalf("matrix is %dx%d, want 3x3", m.Rows(), m.Cols())
	}
	if m[0][1] != 1 {
		t.Errorf("m[0][1] = %d, want 1", m[0][1])
	}
	if m[2][1] != assign.Infeasible {
		t.Error("negative cell should map to the infeasible sentinel")
	}
}

func TestReadMatrixErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty matrix", `[]`},
		{"ragged rows", `[[1,2],[3]]`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMatrixFile(t, tt.content)
			if _, err := readMatrix(path); err == nil {
				t.Error("readMatrix() should fail")
			}
		})
	}
}

func TestRunSolve(t *testing.T) {
	path := writeMatrixFile(t, `[[4,1,3],[2,0,5],[3,2,2]]`)

	if err := runSolve(path, false); err != nil {
		t.Fatalf("runSolve() error: %v", err)
	}
}

func TestRunSolveCheck(t *testing.T) {
	// Small enough for exhaustive search; the two must agree.
	path := writeMatrixFile(t, `[[4,1,3],[2,0,5],[3,2,2]]`)

	if err := runSolve(path, true); err != nil {
		t.Fatalf("runSolve(check) error: %v", err)
	}
}

func TestRunSolveCheckTooLarge(t *testing.T) {
	row := `[0,0,0,0,0,0,0,0,0,0,0]`
	content := "[" + row
	for i := 0; i < 10; i++ {
		content += "," + row
	}
	content += "]"
	path := writeMatrixFile(t, content)

	if err := runSolve(path, true); err == nil {
		t.Error("runSolve(check) should refuse matrices beyond the brute-force limit")
	}
}
