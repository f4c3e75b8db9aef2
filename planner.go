package svgstock

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options holds everything the front end collects for one batch run.
type Options struct {
	// Dir is the input folder holding the SVG files.
	Dir string
	// Platforms lists the selected platform identifiers.
	Platforms []string
	// Scale is the resolution multiplier, between 1 and 10.
	Scale int
	// Square forces a 1:1 aspect ratio of 1000*Scale pixels.
	Square bool
	// KeepLoose keeps the individual files next to a zipped bundle.
	KeepLoose bool
	// InkscapePath optionally pins the converter executable.
	InkscapePath string
}

// Plan validates the options and expands them into the ordered job
// list of the batch: one job per (SVG file, required format) pair.
// Jobs of one source file are contiguous and its platforms follow the
// capability table order, so a bundling step can run as soon as the
// last format of a file and platform pair completed.
func Plan(opts Options) ([]Job, error) {
	if opts.Scale < 1 || opts.Scale > 10 {
		return nil, fmt.Errorf("%w, got %d", ErrScaleOutOfRange, opts.Scale)
	}

	platforms, err := selectPlatforms(opts.Platforms)
	if err != nil {
		return nil, err
	}

	files, err := listSVGFiles(opts.Dir)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		for _, p := range platforms {
			dir := outputDir(opts.Dir, p)
			for _, f := range p.Formats {
				jobs = append(jobs, Job{
					Source:   file,
					Base:     base,
					Platform: p,
					Format:   f,
					Scale:    opts.Scale,
					Square:   opts.Square,
					Dest:     filepath.Join(dir, base+f.Ext()),
				})
			}
		}
	}
	return jobs, nil
}

// selectPlatforms maps the selected identifiers onto the capability
// table, preserving the table order regardless of selection order.
func selectPlatforms(ids []string) ([]Platform, error) {
	if len(ids) == 0 {
		return nil, ErrNoPlatforms
	}

	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := LookupPlatform(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, id)
		}
		selected[strings.ToLower(strings.TrimSpace(id))] = true
	}

	var platforms []Platform
	for _, p := range Platforms {
		if selected[p.ID] {
			platforms = append(platforms, p)
		}
	}
	return platforms, nil
}

// listSVGFiles returns the SVG files of the folder in name order.
// The scan is flat on purpose: nested folders usually hold previous
// conversion output.
func listSVGFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".svg") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSVGFiles, dir)
	}

	sort.Strings(files)
	return files, nil
}
