package svgstock

import (
	"errors"
	"fmt"
)

// Input validation errors, surfaced before any job is executed.
var (
	ErrFolderNotFound  = errors.New("input folder does not exist")
	ErrNoSVGFiles      = errors.New("no SVG files found in the input folder")
	ErrScaleOutOfRange = errors.New("scale factor must be between 1 and 10")
	ErrNoPlatforms     = errors.New("no target platform selected")
	ErrUnknownPlatform = errors.New("unknown platform")
)

// ErrToolNotFound is returned when the Inkscape executable cannot be
// located in any of the known install locations or on the search path.
var ErrToolNotFound = errors.New("inkscape executable not found")

// ConversionError reports a failed conversion of a single file.
// It never aborts the batch; the remaining jobs still run.
type ConversionError struct {
	Path   string
	Format Format
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("converting %s to %s: %v: %s", e.Path, e.Format, e.Err, e.Stderr)
	}
	return fmt.Sprintf("converting %s to %s: %v", e.Path, e.Format, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// BundleError reports a failed zip packaging step. The individual
// files written before the failure are left in place.
type BundleError struct {
	Archive string
	Err     error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("creating bundle %s: %v", e.Archive, e.Err)
}

func (e *BundleError) Unwrap() error {
	return e.Err
}
