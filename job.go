package svgstock

// Job is one unit of work: one source SVG converted to one export
// format required by one platform. Jobs are immutable once planned
// and each one yields exactly one Result.
type Job struct {
	// Source is the absolute or folder relative path of the SVG file.
	Source string
	// Base is the source file name without its extension.
	Base string
	// Platform the deliverable is produced for.
	Platform Platform
	// Format of the deliverable.
	Format Format
	// Scale is the resolution multiplier, between 1 and 10.
	Scale int
	// Square forces a 1:1 aspect ratio of 1000*Scale pixels.
	Square bool
	// Dest is the destination file path.
	Dest string
}

// Result holds the outcome of a single conversion job.
type Result struct {
	Job Job
	Err error
}

// Ok reports whether the job completed successfully.
func (r Result) Ok() bool {
	return r.Err == nil
}
