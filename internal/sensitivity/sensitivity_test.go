package sensitivity_test

import (
	"encoding/json"
	"math"
	"path/filepath"
	"testing"

	"filmimport/internal/sensitivity"
	"filmimport/internal/testsupport"
)

func TestComputeReturnsIdentityWhenAnyFileMissing(t *testing.T) {
	ref := testsupport.Reference(t, testsupport.Grid(t, 400, 700, 10), 1)

	for _, missing := range sensitivity.Channels {
		t.Run(missing, func(t *testing.T) {
			dir := t.TempDir()
			for _, ch := range sensitivity.Channels {
				if ch == missing {
					continue
				}
				testsupport.WriteCSV(t, filepath.Join(dir, sensitivity.FileName(ch)), []float64{400, 0}, []float64{700, 0})
			}
			got := sensitivity.NewComputer(ref, nil, 0, nil).Compute(dir)
			if got != sensitivity.Identity() {
				t.Fatalf("expected identity, got %v", got)
			}
		})
	}
}

func TestComputeContractsAgainstReference(t *testing.T) {
	grid := testsupport.Grid(t, 400, 700, 10)
	ref := testsupport.Reference(t, grid, 2)
	dir := t.TempDir()

	// Red is flat at log 0 (linear 1); green covers only 400-450; blue has no
	// overlap with the grid at all.
	testsupport.WriteCSV(t, filepath.Join(dir, "log_sensitivity_r.csv"), []float64{400, 0}, []float64{700, 0})
	testsupport.WriteCSV(t, filepath.Join(dir, "log_sensitivity_g.csv"), []float64{400, 0}, []float64{450, 0})
	testsupport.WriteCSV(t, filepath.Join(dir, "log_sensitivity_b.csv"), []float64{800, 0}, []float64{900, 0})

	got := sensitivity.NewComputer(ref, nil, 0, nil).Compute(dir)

	// Band sizes for 31 samples split in thirds: 11, 10, 10. Illuminant power is 2.
	want := sensitivity.Matrix3{
		{22, 12, 0},
		{20, 0, 0},
		{20, 0, 0},
	}
	for c := range 3 {
		for k := range 3 {
			if math.Abs(got[c][k]-want[c][k]) > 1e-9 {
				t.Fatalf("M[%d][%d] = %v, want %v (full %v)", c, k, got[c][k], want[c][k], got)
			}
		}
	}
}

func TestComputeZeroesNonFiniteSensitivity(t *testing.T) {
	grid := testsupport.Grid(t, 400, 700, 100)
	ref := testsupport.Reference(t, grid, 1)
	dir := t.TempDir()

	for _, ch := range sensitivity.Channels {
		// 10^400 overflows to +Inf and must be replaced by zero.
		testsupport.WriteCSV(t, filepath.Join(dir, sensitivity.FileName(ch)), []float64{400, 400}, []float64{700, 400})
	}
	got := sensitivity.NewComputer(ref, nil, 0, nil).Compute(dir)
	if got != (sensitivity.Matrix3{}) {
		t.Fatalf("expected zero matrix, got %v", got)
	}
}

func TestComputeEmptyFilesYieldNearZeroMatrix(t *testing.T) {
	grid := testsupport.Grid(t, 400, 700, 10)
	ref := testsupport.Reference(t, grid, 1)
	dir := t.TempDir()
	for _, ch := range sensitivity.Channels {
		testsupport.WriteText(t, filepath.Join(dir, sensitivity.FileName(ch)), "wavelength,log_sensitivity\n")
	}

	got := sensitivity.NewComputer(ref, nil, 0, nil).Compute(dir)
	for c := range 3 {
		for k := range 3 {
			if math.Abs(got[c][k]) > 1e-90 {
				t.Fatalf("expected sentinel-driven zero matrix, got %v", got)
			}
		}
	}
}

func TestContractWithExplicitSensitivity(t *testing.T) {
	grid := []float64{400, 500, 600}
	ref := testsupport.Reference(t, grid, 3)
	sens := [][3]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}

	got := sensitivity.Contract(ref, sens)
	want := sensitivity.Matrix3{{3, 6, 9}, {12, 15, 18}, {21, 24, 27}}
	if got != want {
		t.Fatalf("Contract = %v, want %v", got, want)
	}
}

func TestMatrixEncodesAsNestedArrays(t *testing.T) {
	data, err := json.Marshal(sensitivity.Identity())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[[1,0,0],[0,1,0],[0,0,1]]" {
		t.Fatalf("unexpected encoding %s", data)
	}
}
