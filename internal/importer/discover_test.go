package importer

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"filmimport/internal/testsupport"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteText(t, filepath.Join(root, "negative", "kodak_portra_400", "density_curve_r.csv"), "0,1\n")
	testsupport.WriteText(t, filepath.Join(root, "negative", "kodak_portra_400", "density_curve_g.csv"), "0,1\n")
	testsupport.WriteText(t, filepath.Join(root, "negative", "kodak_portra_400", "nested", "density_curve_r.csv"), "0,1\n")
	testsupport.WriteText(t, filepath.Join(root, "print", "kodak_2383", "legacy_density_curve_r.csv"), "0,1\n")
	testsupport.WriteText(t, filepath.Join(root, "print", "kodak_2383", "density_curve_r.csv"), "0,1\n")
	testsupport.WriteText(t, filepath.Join(root, "other", "notes.txt"), "hello\n")
	if err := os.MkdirAll(filepath.Join(root, "decoy", "density_curve_r.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(root, "density_curve_r.csv", nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "negative", "kodak_portra_400"),
		filepath.Join(root, "negative", "kodak_portra_400", "nested"),
		filepath.Join(root, "print", "kodak_2383"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "absent"), "density_curve_r.csv", nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestDiscoverFollowsSymlinkedMarker(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteText(t, filepath.Join(root, "data.csv"), "0,1\n")
	linked := filepath.Join(root, "film", "kodak_gold_200")
	if err := os.MkdirAll(linked, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join("..", "..", "data.csv"), filepath.Join(linked, "density_curve_r.csv")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	dangling := filepath.Join(root, "film", "broken")
	if err := os.MkdirAll(dangling, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "absent.csv"), filepath.Join(dangling, "density_curve_r.csv")); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(root, "density_curve_r.csv", nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if want := []string{linked}; !slices.Equal(got, want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
}
