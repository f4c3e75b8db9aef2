/*
Package svgstock batch-converts SVG files into the deliverables the common
microstock marketplaces expect (EPS, JPG, PNG, cropped SVG and zipped
bundles). The heavy lifting is delegated to an external Inkscape binary;
this package plans the jobs, drives the subprocess invocations and keeps
the filesystem bookkeeping and progress reporting in one place.

The package provides a command line interface and a graphical front end.
To check the supported commands type:

	$ svgstock --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/zulmujib/svgstock"
	)

	func main() {
		runner, err := svgstock.NewRunner(svgstock.Options{
			Dir:       "./icons",
			Platforms: []string{"shutterstock", "pngtree"},
			Scale:     2,
		})
		if err != nil {
			fmt.Printf("Error starting the batch: %s", err)
			return
		}

		results, err := runner.Run(context.Background())
		if err != nil {
			fmt.Printf("Error running the batch: %s", err)
		}
		fmt.Printf("%d job(s) executed", len(results))
	}
*/
package svgstock
