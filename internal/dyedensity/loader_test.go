package dyedensity_test

import (
	"path/filepath"
	"testing"

	"filmimport/internal/curve"
	"filmimport/internal/dyedensity"
	"filmimport/internal/testsupport"
)

func newLoader(t *testing.T, donor string) (*dyedensity.Loader, []float64) {
	t.Helper()
	grid := testsupport.Grid(t, 400, 700, 50)
	ref := testsupport.Reference(t, grid, 1)
	return dyedensity.NewLoader(ref, nil, donor, nil), grid
}

func TestLoadWithoutAnyFilesIsAllZero(t *testing.T) {
	loader, grid := newLoader(t, "donor")
	stock := filepath.Join(t.TempDir(), "plain_stock")

	table, sources := loader.Load(stock)
	if len(table) != len(grid) {
		t.Fatalf("rows = %d, want %d", len(table), len(grid))
	}
	for i, row := range table {
		want := dyedensity.Row{grid[i], 0, 0, 0, 0}
		if row != want {
			t.Fatalf("row %d = %v, want %v", i, row, want)
		}
	}
	want := dyedensity.Sources{Cyan: dyedensity.SourceZero, Magenta: dyedensity.SourceZero, Yellow: dyedensity.SourceZero, Base: dyedensity.SourceZero}
	if sources != want {
		t.Fatalf("sources = %+v", sources)
	}
}

func TestLoadPrefersLocalFiles(t *testing.T) {
	loader, grid := newLoader(t, "donor")
	root := t.TempDir()
	stock := filepath.Join(root, "stock")
	donor := filepath.Join(root, "donor")

	testsupport.WriteCSV(t, filepath.Join(stock, "dye_density_c.csv"), []float64{400, 1}, []float64{700, 1})
	testsupport.WriteCSV(t, filepath.Join(donor, "dye_density_c.csv"), []float64{400, 9}, []float64{700, 9})

	table, sources := loader.Load(stock)
	if sources.Cyan != dyedensity.SourceLocal {
		t.Fatalf("cyan source = %s", sources.Cyan)
	}
	for i := range grid {
		if table[i][1] != 1 {
			t.Fatalf("cyan[%d] = %v, want 1", i, table[i][1])
		}
	}
}

func TestLoadFallsBackToDonorCurves(t *testing.T) {
	loader, grid := newLoader(t, "kodak_vision3_500t")
	root := t.TempDir()
	stock := filepath.Join(root, "kodak_portra_400")
	donor := filepath.Join(root, "kodak_vision3_500t")

	donorMagenta := curve.Curve{{X: 450, Y: 0.2}, {X: 550, Y: 1.0}, {X: 650, Y: 0.4}}
	testsupport.WriteCSV(t, filepath.Join(donor, "dye_density_m.csv"),
		[]float64{450, 0.2}, []float64{550, 1.0}, []float64{650, 0.4})
	testsupport.WriteCSV(t, filepath.Join(donor, "dye_density_min.csv"), []float64{400, 0.05}, []float64{700, 0.15})
	testsupport.WriteCSV(t, filepath.Join(stock, "density_curve_r.csv"), []float64{0, 0.1})

	table, sources := loader.Load(stock)
	if sources.Magenta != dyedensity.SourceDonor || sources.Base != dyedensity.SourceDonor {
		t.Fatalf("sources = %+v", sources)
	}
	if sources.Cyan != dyedensity.SourceZero {
		t.Fatalf("cyan source = %s, want zero", sources.Cyan)
	}

	wantMagenta := curve.Resample(grid, donorMagenta, curve.Clamp())
	for i := range grid {
		if table[i][2] != wantMagenta[i] {
			t.Fatalf("magenta[%d] = %v, want %v", i, table[i][2], wantMagenta[i])
		}
	}
	if table[0][2] == 0 {
		t.Fatal("donor fallback produced zeros")
	}
	if got := table[len(table)-1][4]; got != 0.15 {
		t.Fatalf("base at 700 = %v, want 0.15", got)
	}
}

func TestLoadMidFileColumns(t *testing.T) {
	tests := []struct {
		name string
		body string
		want [3]float64
	}{
		{
			name: "one column per dye",
			body: "400,0.1,0.2,0.3\n700,0.1,0.2,0.3\n",
			want: [3]float64{0.1, 0.2, 0.3},
		},
		{
			name: "single shared column",
			body: "400,0.7\n700,0.7\n",
			want: [3]float64{0.7, 0.7, 0.7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, "")
			stock := t.TempDir()
			testsupport.WriteText(t, filepath.Join(stock, dyedensity.MidFileName), tt.body)

			table, sources := loader.Load(stock)
			if sources.Cyan != dyedensity.SourceMid || sources.Yellow != dyedensity.SourceMid {
				t.Fatalf("sources = %+v", sources)
			}
			for i, row := range table {
				got := [3]float64{row[1], row[2], row[3]}
				if got != tt.want {
					t.Fatalf("row %d dyes = %v, want %v", i, got, tt.want)
				}
				if row[4] != 0 {
					t.Fatalf("row %d base = %v, want 0", i, row[4])
				}
			}
		})
	}
}

func TestLoadTreatsUnparseableFileAsAbsent(t *testing.T) {
	loader, _ := newLoader(t, "")
	stock := t.TempDir()
	testsupport.WriteText(t, filepath.Join(stock, "dye_density_y.csv"), "wavelength,density\n")
	testsupport.WriteText(t, filepath.Join(stock, dyedensity.MidFileName), "400,0.3\n700,0.3\n")

	table, sources := loader.Load(stock)
	if sources.Yellow != dyedensity.SourceMid {
		t.Fatalf("yellow source = %s, want mid", sources.Yellow)
	}
	if table[0][3] != 0.3 {
		t.Fatalf("yellow = %v, want 0.3", table[0][3])
	}
}

func TestChannelFileNames(t *testing.T) {
	want := []string{"dye_density_c.csv", "dye_density_m.csv", "dye_density_y.csv"}
	for i, ch := range dyedensity.DyeChannels {
		if got := ch.FileName(); got != want[i] {
			t.Fatalf("FileName() = %q, want %q", got, want[i])
		}
	}
	if got := dyedensity.Base.FileName(); got != "dye_density_min.csv" {
		t.Fatalf("base FileName() = %q", got)
	}
}
