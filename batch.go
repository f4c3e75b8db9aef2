package svgstock

import (
	"context"
	"path/filepath"
)

// Runner drives one batch run: it drains the planned job list one job
// at a time, in planner order, and records every outcome on the
// reporter. Per-job failures never stop the batch; only invalid input
// or a missing converter tool abort before the first job.
type Runner struct {
	// Converter executes the individual jobs.
	Converter Converter
	// Reporter receives the per-job outcomes and log lines.
	Reporter *Reporter
	// Options of the batch being run.
	Options Options
	// OnResult, when set, is invoked after every recorded job.
	// The CLI uses it to update the spinner message.
	OnResult func(Result)
}

// NewRunner validates that the converter tool is resolvable and
// returns a runner wired to a fresh reporter. Input validation itself
// happens when Run plans the batch.
func NewRunner(opts Options) (*Runner, error) {
	path, err := FindInkscape(opts.InkscapePath)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Converter: &Inkscape{Path: path},
		Reporter:  NewReporter(),
		Options:   opts,
	}, nil
}

// Run plans and executes the batch sequentially. Cancellation is
// cooperative: the context is checked between jobs and the in-flight
// subprocess receives the same context. The returned results cover
// every executed job; jobs skipped by a cancellation yield no result.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	jobs, err := Plan(r.Options)
	if err != nil {
		return nil, err
	}

	r.Reporter.Start(len(jobs))
	r.Reporter.Logf("Found %d SVG file(s), %d conversion job(s) planned", countSources(jobs), len(jobs))

	// Outputs of a bundling platform, collected per source file until
	// its last format is done.
	var pending []string

	results := make([]Result, 0, len(jobs))
	cancelled := false

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		res := Result{Job: job}
		if err := ensureDir(filepath.Dir(job.Dest)); err != nil {
			res.Err = err
		} else {
			res.Err = r.Converter.Convert(ctx, job)
		}

		results = append(results, res)
		r.Reporter.Record(res)
		if r.OnResult != nil {
			r.OnResult(res)
		}

		if job.Platform.Bundle {
			if res.Ok() {
				pending = append(pending, job.Dest)
			}
			if lastOfGroup(jobs, i) {
				r.packGroup(job, pending)
				pending = pending[:0]
			}
		}
	}

	r.Reporter.Finish(cancelled)
	if cancelled {
		return results, ctx.Err()
	}
	return results, nil
}

// packGroup zips the collected outputs of one (file, platform) pair.
// An incomplete group is left loose: a partial bundle would look like
// a valid deliverable to the uploader.
func (r *Runner) packGroup(job Job, files []string) {
	if len(files) != len(job.Platform.Formats) {
		r.Reporter.Logf("Skipped bundle for %s/%s: not all formats were produced", job.Platform.Name, job.Base)
		return
	}

	archive, err := bundle(filepath.Dir(job.Dest), job.Base, files, r.Options.KeepLoose)
	if err != nil {
		r.Reporter.Logf("ERROR: %v", err)
		return
	}
	r.Reporter.Logf("Created ZIP: %s", archive)
}

// lastOfGroup reports whether job i is the final format of its
// (source file, platform) pair. Planner order keeps groups contiguous.
func lastOfGroup(jobs []Job, i int) bool {
	if i == len(jobs)-1 {
		return true
	}
	next := jobs[i+1]
	return next.Source != jobs[i].Source || next.Platform.ID != jobs[i].Platform.ID
}

// countSources counts the distinct source files of an ordered job list.
func countSources(jobs []Job) int {
	n := 0
	prev := ""
	for _, j := range jobs {
		if j.Source != prev {
			n++
			prev = j.Source
		}
	}
	return n
}
