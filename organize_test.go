package svgstock

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir_IsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), OutputRoot, "Shutterstock")

	if err := ensureDir(dir); err != nil {
		t.Fatalf("could not create the output directory: %v", err)
	}
	if err := ensureDir(dir); err != nil {
		t.Errorf("Creating an existing directory expected to be a no-op. Got %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("Output directory expected to exist. Got %v", err)
	}
}

func TestOutputDir_Layout(t *testing.T) {
	p, _ := LookupPlatform("pngtree")
	got := outputDir("/in", p)
	want := filepath.Join("/in", OutputRoot, "PNGTree")
	if got != want {
		t.Errorf("Output directory expected to be %v. Got %v", want, got)
	}
}

func writeBundleInput(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "logo.png"),
		filepath.Join(dir, "logo.eps"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("payload of "+filepath.Base(f)), 0644); err != nil {
			t.Fatalf("could not write the test file: %v", err)
		}
	}
	return dir, files
}

func TestBundle_CreatesArchiveAndRemovesLooseFiles(t *testing.T) {
	dir, files := writeBundleInput(t)

	archive, err := bundle(dir, "logo", files, false)
	if err != nil {
		t.Fatalf("could not create the bundle: %v", err)
	}
	if archive != filepath.Join(dir, "logo.zip") {
		t.Errorf("Archive path expected to be %v. Got %v", filepath.Join(dir, "logo.zip"), archive)
	}

	zr, err := zip.OpenReader(archive)
	if err != nil {
		t.Fatalf("could not open the archive: %v", err)
	}
	defer zr.Close()

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["logo.png"] || !names["logo.eps"] {
		t.Errorf("Archive expected to contain logo.png and logo.eps. Got %v", names)
	}

	for _, f := range files {
		if _, err := os.Stat(f); !os.IsNotExist(err) {
			t.Errorf("Loose file %v expected to be removed. Got %v", f, err)
		}
	}
}

func TestBundle_KeepLoosePolicy(t *testing.T) {
	dir, files := writeBundleInput(t)

	if _, err := bundle(dir, "logo", files, true); err != nil {
		t.Fatalf("could not create the bundle: %v", err)
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("Loose file %v expected to be kept. Got %v", f, err)
		}
	}
}

func TestBundle_MissingInputFile(t *testing.T) {
	dir := t.TempDir()

	_, err := bundle(dir, "logo", []string{filepath.Join(dir, "absent.png")}, false)
	if err == nil {
		t.Fatal("Expected an error for a missing input file")
	}
	if _, ok := err.(*BundleError); !ok {
		t.Errorf("Expected a BundleError. Got %T", err)
	}
}
