package svgstock

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// BaseSize is the square export dimension in pixels at scale factor 1,
// used when a 1:1 aspect ratio is forced or when the intrinsic size of
// the source SVG cannot be determined.
const BaseSize = 1000

// InkscapeEnv is the environment variable which overrides the
// executable lookup.
const InkscapeEnv = "SVGSTOCK_INKSCAPE"

// Converter turns one planned job into its deliverable file.
type Converter interface {
	Convert(ctx context.Context, job Job) error
}

// Inkscape invokes the Inkscape command line for the actual vector and
// raster exports. One job maps to at most one subprocess invocation.
type Inkscape struct {
	// Path is the resolved location of the executable.
	Path string
}

var _ Converter = (*Inkscape)(nil)

// FindInkscape resolves the Inkscape executable. An explicit path wins,
// then the SVGSTOCK_INKSCAPE environment variable, then the known
// install locations of the current operating system and finally the
// system search path.
func FindInkscape(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrToolNotFound, explicit)
		}
		return explicit, nil
	}

	if v := os.Getenv(InkscapeEnv); v != "" {
		return v, nil
	}

	for _, p := range knownInstallPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	if p, err := exec.LookPath("inkscape"); err == nil {
		return p, nil
	}

	return "", ErrToolNotFound
}

// knownInstallPaths returns the default install locations checked
// before falling back to the search path.
func knownInstallPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\Inkscape\bin\inkscape.exe`,
			`C:\Program Files\Inkscape\inkscape.exe`,
		}
	case "darwin":
		return []string{
			"/Applications/Inkscape.app/Contents/MacOS/inkscape",
		}
	default:
		return []string{
			"/usr/bin/inkscape",
			"/usr/local/bin/inkscape",
		}
	}
}

// Version probes the executable and returns the reported version line.
func (ink *Inkscape) Version() (string, error) {
	out, err := exec.Command(ink.Path, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("probing inkscape version: %w", err)
	}
	return parseInkscapeVersion(string(out))
}

// parseInkscapeVersion extracts the "Inkscape x.y" line from the
// --version output.
func parseInkscapeVersion(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Inkscape") {
			return strings.TrimSpace(line), nil
		}
	}
	return "", fmt.Errorf("cannot recognize inkscape version output: %q", out)
}

// Convert produces the deliverable of a single job. Re-running a job
// overwrites its destination file. A failed subprocess, a missing tool
// or a missing output file all surface as a ConversionError.
func (ink *Inkscape) Convert(ctx context.Context, job Job) error {
	switch job.Format {
	case FormatSVG:
		return copyFile(job.Source, job.Dest)
	case FormatSVGCropped:
		// Fit the canvas to the drawing. When the crop fails the
		// original is copied as-is, matching the plain SVG output.
		args := []string{"--export-area-drawing", "--export-type=svg", "-o", job.Dest, job.Source}
		if err := ink.run(ctx, job, args); err != nil {
			if ctx.Err() != nil {
				return err
			}
			return copyFile(job.Source, job.Dest)
		}
		return nil
	case FormatJPG:
		// Inkscape has no JPEG export: rasterize to a temporary
		// PNG first, then flatten it onto a white background.
		tmp, err := os.CreateTemp("", "svgstock-*.png")
		if err != nil {
			return &ConversionError{Path: job.Source, Format: job.Format, Err: err}
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		args := append(ink.exportArgs(job, "png"), "-o", tmp.Name(), job.Source)
		if err := ink.run(ctx, job, args); err != nil {
			return err
		}
		if err := flattenToJPEG(tmp.Name(), job.Dest); err != nil {
			return &ConversionError{Path: job.Source, Format: job.Format, Err: err}
		}
		return nil
	case FormatPNG:
		args := append(ink.exportArgs(job, "png"), "-o", job.Dest, job.Source)
		return ink.run(ctx, job, args)
	case FormatEPS:
		args := append(ink.exportArgs(job, "eps"), "-o", job.Dest, job.Source)
		return ink.run(ctx, job, args)
	}
	return &ConversionError{Path: job.Source, Format: job.Format, Err: fmt.Errorf("unsupported format")}
}

// exportArgs builds the format and sizing arguments of an export.
// Destination and source are appended by the caller.
func (ink *Inkscape) exportArgs(job Job, exportType string) []string {
	args := []string{"--export-type=" + exportType}
	if exportType == "png" {
		// Preserve transparency; JPG flattening fills it later.
		args = append(args, "--export-background-opacity=0")
	}

	if job.Square {
		dim := BaseSize * job.Scale
		return append(args,
			fmt.Sprintf("--export-width=%d", dim),
			fmt.Sprintf("--export-height=%d", dim),
		)
	}

	// Scale the intrinsic width and let Inkscape keep the aspect ratio.
	width, _, err := svgDimensions(job.Source)
	if err != nil || width <= 0 {
		width = BaseSize
	}
	return append(args, fmt.Sprintf("--export-width=%d", int(math.Round(width*float64(job.Scale)))))
}

// run executes the subprocess synchronously, capturing stderr for the
// error report, and verifies the destination file got produced.
func (ink *Inkscape) run(ctx context.Context, job Job, args []string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, ink.Path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ConversionError{
			Path:   job.Source,
			Format: job.Format,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	// Arg parsing quirks can make Inkscape exit zero without writing
	// anything; treat the missing output as a failure.
	dest := args[len(args)-2]
	if _, err := os.Stat(dest); err != nil {
		return &ConversionError{
			Path:   job.Source,
			Format: job.Format,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    fmt.Errorf("no output file produced"),
		}
	}
	return nil
}

// copyFile duplicates src at dest, overwriting any previous content.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open the source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", filepath.Base(src), err)
	}
	return nil
}
