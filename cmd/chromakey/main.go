// Command chromakey isolates the dominant color of a foreground image and
// replaces matching pixels with a tiled background, with the tolerance
// adjustable through a window trackbar. The composited result is written
// to the output path on every tolerance change and once more on exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chromakey"
	"chromakey/imageutil"
	"chromakey/matconv"

	"gocv.io/x/gocv"
)

const (
	windowName   = "Chroma Key Result"
	trackbarName = "Tolerance"
	pollMillis   = 30
)

func main() {
	fgPath := flag.String("fg", "foreground.jpg", "Path to the foreground image")
	bgPath := flag.String("bg", "background.jpg", "Path to the background image")
	outPath := flag.String("out", "overlay.jpg", "Path for the composited output image")
	buckets := flag.Int("buckets", chromakey.DefaultBuckets, "Histogram buckets per channel")
	method := flag.String("method", "histogram", "Key color method: histogram, dominant, or kmeans")
	maxSide := flag.Int("maxside", 1400, "Display cap: scale the shown image down if a side exceeds this (0 disables)")
	fontPath := flag.String("font", "", "TTF font path; when set, a legend image is written next to the output")
	legendPath := flag.String("legend", "legend.png", "Path for the legend image (only with -font)")
	flag.Parse()

	keyMethod, err := chromakey.ParseKeyColorMethod(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.PrintDefaults()
		os.Exit(2)
	}

	fg, err := imageutil.LoadImage(*fgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load foreground: %v\n", err)
		os.Exit(1)
	}
	bg, err := imageutil.LoadImage(*bgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load background: %v\n", err)
		os.Exit(1)
	}

	hist := chromakey.BuildHistogramParallel(fg, *buckets)
	key := chromakey.EstimateKeyColor(fg, hist, keyMethod)

	report := chromakey.BuildReport(fg, hist)
	fmt.Println(report)
	if keyMethod != chromakey.MethodHistogram {
		fmt.Printf("Key color (%s method):    [%d, %d, %d]\n", keyMethod, key.R, key.G, key.B)
	}

	if *fontPath != "" {
		if legend, lerr := chromakey.RenderLegend(report, *fontPath); lerr != nil {
			log.Printf("warning: legend not rendered: %v", lerr)
		} else if serr := imageutil.SaveImage(legend.RGBA, *legendPath); serr != nil {
			log.Printf("warning: failed to write %s: %v", *legendPath, serr)
		}
	}

	window := gocv.NewWindow(windowName)
	defer window.Close()
	window.MoveWindow(60, 60)

	ctrl := chromakey.NewController(fg, bg, key,
		hist.BucketSize()/2, hist.ToleranceMax(), *outPath,
		func(img *imageutil.RGBAImage) {
			matconv.ShowScaled(window, img, *maxSide)
		})

	tracker := window.CreateTrackbar(trackbarName, hist.ToleranceMax())
	tracker.SetPos(ctrl.Tolerance())

	// Initial synthetic event: produce and persist the first frame.
	ctrl.SetTolerance(ctrl.Tolerance())

	// gocv trackbars have no change callbacks, so the wait loop doubles
	// as the event source: every poll tick compares the trackbar position
	// with the current tolerance and fires a change event when it moved.
	for {
		key := window.WaitKey(pollMillis)
		if key == 27 || key == 'q' || key == 'Q' || key == ' ' {
			break
		}
		if pos := tracker.GetPos(); pos != ctrl.Tolerance() {
			ctrl.SetTolerance(pos)
		}
	}

	ctrl.Shutdown()
}
