package svgstock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// fakeConverter stands in for the Inkscape subprocess: it writes a
// stub deliverable, or fails for the configured destination names.
type fakeConverter struct {
	fail  map[string]bool
	calls int
}

func (f *fakeConverter) Convert(ctx context.Context, job Job) error {
	f.calls++
	if f.fail[filepath.Base(job.Dest)] {
		return &ConversionError{Path: job.Source, Format: job.Format, Err: errors.New("tool exited 1")}
	}
	return os.WriteFile(job.Dest, []byte("stub "+job.Format.String()), 0644)
}

func newTestRunner(opts Options, conv Converter) *Runner {
	return &Runner{Converter: conv, Reporter: NewReporter(), Options: opts}
}

func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, _ := filepath.Rel(root, path)
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("could not walk the output tree: %v", err)
	}
	sort.Strings(paths)
	return paths
}

func TestRunner_SingleJob(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg")
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"shutterstock"}, Scale: 1}, &fakeConverter{})

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Number of results expected to be %v. Got %v", 1, len(results))
	}

	dest := filepath.Join(dir, OutputRoot, "Shutterstock", "logo.eps")
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("Deliverable %v expected to exist. Got %v", dest, err)
	}
	if got := r.Reporter.Snapshot().Status; got != StatusCompleted {
		t.Errorf("Status expected to be %v. Got %v", StatusCompleted, got)
	}
}

func TestRunner_BundlesPNGTree(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg")
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"vectorstock", "pngtree"}, Scale: 1}, &fakeConverter{})

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Number of results expected to be %v. Got %v", 4, len(results))
	}

	// PNGTree must end up with a single zip; the loose PNG and EPS
	// are removed after archiving.
	got := listTree(t, filepath.Join(dir, OutputRoot, "PNGTree"))
	if len(got) != 1 || got[0] != "logo.zip" {
		t.Errorf("PNGTree output expected to be [logo.zip]. Got %v", got)
	}

	// Vectorstock keeps its plain files.
	got = listTree(t, filepath.Join(dir, OutputRoot, "Vectorstock"))
	want := []string{"logo.eps", "logo.jpg"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Vectorstock output expected to be %v. Got %v", want, got)
	}
}

func TestRunner_KeepLoosePolicy(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg")
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"pngtree"}, Scale: 1, KeepLoose: true}, &fakeConverter{})

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}

	got := listTree(t, filepath.Join(dir, OutputRoot, "PNGTree"))
	want := []string{"logo.eps", "logo.png", "logo.zip"}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("PNGTree output expected to be %v. Got %v", want, got)
	}
}

func TestRunner_ContinuesAfterFailure(t *testing.T) {
	dir := writeSVGFiles(t, "a.svg", "b.svg", "c.svg", "d.svg", "e.svg")
	conv := &fakeConverter{fail: map[string]bool{"c.eps": true}}
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"shutterstock"}, Scale: 1}, conv)

	results, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Number of results expected to be %v. Got %v", 5, len(results))
	}

	snap := r.Reporter.Snapshot()
	if snap.Succeeded != 4 {
		t.Errorf("Succeeded count expected to be %v. Got %v", 4, snap.Succeeded)
	}
	if snap.Failed != 1 {
		t.Errorf("Failed count expected to be %v. Got %v", 1, snap.Failed)
	}
	if snap.Status != StatusCompletedWithErrors {
		t.Errorf("Status expected to be %v. Got %v", StatusCompletedWithErrors, snap.Status)
	}
}

func TestRunner_SkipsBundleWhenAFormatFails(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg")
	conv := &fakeConverter{fail: map[string]bool{"logo.png": true}}
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"pngtree"}, Scale: 1}, conv)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}

	got := listTree(t, filepath.Join(dir, OutputRoot, "PNGTree"))
	if len(got) != 1 || got[0] != "logo.eps" {
		t.Errorf("Incomplete group expected to stay loose as [logo.eps]. Got %v", got)
	}

	skipped := false
	for _, line := range r.Reporter.Snapshot().Lines {
		if strings.HasPrefix(line, "Skipped bundle") {
			skipped = true
		}
	}
	if !skipped {
		t.Error("Expected a log line about the skipped bundle")
	}
}

func TestRunner_InvalidInputExecutesNoJob(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg")
	conv := &fakeConverter{}
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"shutterstock"}, Scale: 11}, conv)

	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrScaleOutOfRange) {
		t.Fatalf("Expected ErrScaleOutOfRange. Got %v", err)
	}
	if conv.calls != 0 {
		t.Errorf("Number of executed jobs expected to be %v. Got %v", 0, conv.calls)
	}
}

// cancellingConverter cancels the batch context from inside the first
// conversion, as a user pressing stop mid-job would.
type cancellingConverter struct {
	cancel context.CancelFunc
	inner  fakeConverter
}

func (c *cancellingConverter) Convert(ctx context.Context, job Job) error {
	err := c.inner.Convert(ctx, job)
	c.cancel()
	return err
}

func TestRunner_CancellationStopsBetweenJobs(t *testing.T) {
	dir := writeSVGFiles(t, "a.svg", "b.svg", "c.svg")
	ctx, cancel := context.WithCancel(context.Background())
	conv := &cancellingConverter{cancel: cancel}
	r := newTestRunner(Options{Dir: dir, Platforms: []string{"shutterstock"}, Scale: 1}, conv)

	results, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected the context cancellation to surface. Got %v", err)
	}

	// The in-flight job finishes, nothing else starts.
	if len(results) != 1 {
		t.Errorf("Number of results expected to be %v. Got %v", 1, len(results))
	}
	if got := r.Reporter.Snapshot().Status; got != StatusCancelled {
		t.Errorf("Status expected to be %v. Got %v", StatusCancelled, got)
	}
}

func TestRunner_RerunProducesSameLayout(t *testing.T) {
	dir := writeSVGFiles(t, "logo.svg", "icon.svg")
	opts := Options{Dir: dir, Platforms: []string{"vectorstock", "pngtree", "adobestock"}, Scale: 1}

	r := newTestRunner(opts, &fakeConverter{})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("could not run the batch: %v", err)
	}
	first := listTree(t, filepath.Join(dir, OutputRoot))

	r = newTestRunner(opts, &fakeConverter{})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("could not rerun the batch: %v", err)
	}
	second := listTree(t, filepath.Join(dir, OutputRoot))

	if len(first) != len(second) {
		t.Fatalf("Rerun layout expected to match. Got %v and %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Rerun entry %v expected to be %v. Got %v", i, first[i], second[i])
		}
	}
}

func TestNewRunner_ToolNotFound(t *testing.T) {
	_, err := NewRunner(Options{InkscapePath: filepath.Join(t.TempDir(), "nope")})
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("Expected ErrToolNotFound before any job is planned. Got %v", err)
	}
}
