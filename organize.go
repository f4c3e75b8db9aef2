package svgstock

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OutputRoot is the directory created under the input folder which
// holds one subdirectory per selected platform.
const OutputRoot = "svg_converted_output"

// outputDir returns the platform subdirectory under the output root.
func outputDir(inputDir string, p Platform) string {
	return filepath.Join(inputDir, OutputRoot, p.Name)
}

// ensureDir creates the directory if it is absent. Calling it on an
// existing directory is a no-op.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create the output directory: %w", err)
	}
	return nil
}

// bundle combines the generated files of one source image into
// <dir>/<base>.zip. Unless keepLoose is set the archived originals are
// removed afterwards. Already written files are never rolled back when
// the archive cannot be created.
func bundle(dir, base string, files []string, keepLoose bool) (string, error) {
	archive := filepath.Join(dir, base+".zip")

	if err := writeZip(archive, files); err != nil {
		return "", &BundleError{Archive: archive, Err: err}
	}

	if !keepLoose {
		for _, f := range files {
			os.Remove(f)
		}
	}
	return archive, nil
}

// writeZip creates a deflate compressed archive holding the given
// files under their base names.
func writeZip(archive string, files []string) error {
	out, err := os.Create(archive)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, f := range files {
		in, err := os.Open(f)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.Base(f))
		if err != nil {
			in.Close()
			return err
		}
		if _, err := io.Copy(w, in); err != nil {
			in.Close()
			return err
		}
		in.Close()
	}
	return zw.Close()
}
