package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gioui.org/app"
	"golang.org/x/term"

	"github.com/zulmujib/svgstock"
	"github.com/zulmujib/svgstock/utils"
)

const HelpBanner = `
┌─┐┬  ┬┌─┐┌─┐┌┬┐┌─┐┌─┐┬┌─
└─┐└┐┌┘│ ┬└─┐ │ │ ││  ├┴┐
└─┘ └┘ └─┘└─┘ ┴ └─┘└─┘┴ ┴

SVG batch converter for microstock platforms.
    Version: %s

Supported platforms: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source    = flag.String("in", "", "Input folder containing the SVG files")
	platforms = flag.String("platforms", "all", "Comma separated platform identifiers, or 'all'")
	scale     = flag.Int("scale", 1, "Resolution scale factor (1-10)")
	square    = flag.Bool("square", false, "Force a 1:1 aspect ratio")
	keepLoose = flag.Bool("keep", false, "Keep the individual files next to zipped bundles")
	inkscape  = flag.String("inkscape", "", "Path to the Inkscape executable")
	gui       = flag.Bool("gui", false, "Launch the graphical interface")

	// spinner used to instantiate and call the progress indicator.
	spinner *utils.Spinner
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version, strings.Join(svgstock.PlatformIDs(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := svgstock.Options{
		Dir:          *source,
		Platforms:    parsePlatforms(*platforms),
		Scale:        *scale,
		Square:       *square,
		KeepLoose:    *keepLoose,
		InkscapePath: *inkscape,
	}

	if *gui {
		runGui(opts)
		return
	}

	if opts.Dir == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide an input folder with the -in flag!", utils.ErrorMessage) + utils.DefaultColor)
	}

	runner, err := svgstock.NewRunner(opts)
	if err != nil {
		log.Fatalf("%s%s",
			utils.DecorateText("Unable to start the batch: ", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	interactive := term.IsTerminal(int(os.Stderr.Fd()))

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SVGSTOCK", utils.StatusMessage),
		utils.DecorateText("is converting the files...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	// Capture CTRL-C: cancel the batch cooperatively and restore the
	// cursor visibility before exiting.
	ctx, cancel := context.WithCancel(context.Background())
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		cancel()
	}()

	if interactive {
		runner.OnResult = func(res svgstock.Result) {
			snap := runner.Reporter.Snapshot()
			spinner.SetMessage(fmt.Sprintf("%s %s",
				utils.DecorateText(fmt.Sprintf("⚡ SVGSTOCK [%d/%d]", snap.Done, snap.Total), utils.StatusMessage),
				utils.DecorateText(filepath.Base(res.Job.Source), utils.DefaultMessage)))
		}
		spinner.Start()
	}

	now := time.Now()
	results, runErr := runner.Run(ctx)

	if interactive {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ SVGSTOCK", utils.StatusMessage),
			utils.DecorateText("finished the batch ✔", utils.DefaultMessage))
		spinner.Stop()
	}

	printResults(results)

	snap := runner.Reporter.Snapshot()
	fmt.Fprintf(os.Stderr, "\n%s: %s converted, %s failed\n",
		utils.DecorateText("Batch "+snap.Status.String(), utils.StatusMessage)+utils.DefaultColor,
		utils.DecorateText(fmt.Sprintf("%d", snap.Succeeded), utils.SuccessMessage)+utils.DefaultColor,
		utils.DecorateText(fmt.Sprintf("%d", snap.Failed), utils.ErrorMessage)+utils.DefaultColor,
	)
	fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage)+utils.DefaultColor)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Fatalf("%s%s",
			utils.DecorateText("\nError running the batch: ", utils.ErrorMessage),
			utils.DecorateText(runErr.Error(), utils.DefaultMessage),
		)
	}
	if snap.Failed > 0 {
		os.Exit(1)
	}
}

// printResults displays the per-job status lines after the batch run.
func printResults(results []svgstock.Result) {
	for _, res := range results {
		if res.Ok() {
			fmt.Fprintf(os.Stderr, "%s %s %s\n",
				utils.DecorateText("✔", utils.SuccessMessage),
				utils.DecorateText(fmt.Sprintf("%-12s", res.Job.Platform.Name), utils.StatusMessage),
				utils.DecorateText(res.Job.Dest, utils.DefaultMessage),
			)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s %s\n",
				utils.DecorateText("✘", utils.ErrorMessage),
				utils.DecorateText(fmt.Sprintf("%-12s", res.Job.Platform.Name), utils.StatusMessage),
				utils.DecorateText(res.Err.Error(), utils.DefaultMessage),
			)
		}
	}
}

// parsePlatforms splits the -platforms flag value; "all" expands to
// every platform the capability table knows.
func parsePlatforms(arg string) []string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	if strings.EqualFold(arg, "all") {
		return svgstock.PlatformIDs()
	}

	var ids []string
	for _, id := range strings.Split(arg, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// runGui hands the main OS thread over to Gio and drives the window
// from a separate goroutine, as the event loop requires.
func runGui(opts svgstock.Options) {
	go func() {
		g := svgstock.NewGui(opts)
		if err := g.Run(); err != nil {
			log.Fatalf("%s%s",
				utils.DecorateText("GUI error: ", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		os.Exit(0)
	}()
	app.Main()
}
