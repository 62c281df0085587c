// Command imagelab runs a fixed image-processing pipeline (flips,
// grayscale, blur, edge detection, stylized colormap) with each stage in
// its own window, plus two interactive labs whose trackbars re-run the
// blur and edge-detection stages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chromakey/imageutil"
	"chromakey/matconv"

	"gocv.io/x/gocv"
)

// Window layout grid.
const (
	cellW      = 460
	cellH      = 340
	startX     = 40
	startY     = 40
	maxSide    = 420
	pollMillis = 30
)

// sliderToSigma maps an integer trackbar position to a blur sigma.
func sliderToSigma(v int) float64 { return float64(v) / 10.0 }

// sliderToOddKernel maps a trackbar position to an odd kernel size.
func sliderToOddKernel(v int) int { return 2*v + 1 }

func showAndPlace(name string, img *imageutil.RGBAImage, col, row int) *gocv.Window {
	w := gocv.NewWindow(name)
	matconv.ShowScaled(w, img, maxSide)
	w.MoveWindow(startX+col*cellW, startY+row*cellH)
	return w
}

func showAndPlaceGray(name string, img *imageutil.GrayImage, col, row int) *gocv.Window {
	w := gocv.NewWindow(name)
	matconv.ShowScaledGray(w, img, maxSide)
	w.MoveWindow(startX+col*cellW, startY+row*cellH)
	return w
}

func main() {
	inputPath := flag.String("input", "flower.jpg", "Path to the input image")
	flag.Parse()

	input, err := imageutil.LoadImage(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load %q: %v\n", *inputPath, err)
		os.Exit(1)
	}

	var windows []*gocv.Window
	defer func() {
		for _, w := range windows {
			w.Close()
		}
	}()

	// Fixed pipeline, each step in its own window.
	windows = append(windows, showAndPlace("01 Original", input, 0, 0))

	flippedVert := imageutil.FlipVertical(input)
	windows = append(windows, showAndPlace("02 Flip Vertical", flippedVert, 1, 0))

	flippedHoriz := imageutil.FlipHorizontal(flippedVert)
	windows = append(windows, showAndPlace("03 Flip Horizontal", flippedHoriz, 2, 0))

	rotated := imageutil.Rotate180(input)
	windows = append(windows, showAndPlace("04 Rotate 180", rotated, 0, 1))

	gray := imageutil.ToGrayscale(flippedHoriz)
	windows = append(windows, showAndPlaceGray("05 Grayscale", gray, 1, 1))

	blurred := imageutil.GaussianBlurGray(gray, 2.0)
	windows = append(windows, showAndPlaceGray("06 Blurred", blurred, 2, 1))

	edges := imageutil.Canny(blurred, 20, 60)
	windows = append(windows, showAndPlaceGray("07 Edges", edges, 0, 2))

	if err := imageutil.SaveGrayImage(edges, "output.jpg"); err != nil {
		log.Printf("warning: failed to write output.jpg: %v", err)
	} else {
		fmt.Println("Saved edges to output.jpg")
	}

	// Stylized effect: edge-preserving smoothing plus a vivid colormap.
	bilateral := imageutil.BilateralFilter(input, 9, 75, 75)
	stylized := imageutil.ApplyColormap(imageutil.ToGrayscale(bilateral))
	windows = append(windows, showAndPlace("08 Stylized Effect", stylized, 3, 2))

	if err := imageutil.SaveImage(stylized.RGBA, "output_effect.jpg"); err != nil {
		log.Printf("warning: failed to write output_effect.jpg: %v", err)
	} else {
		fmt.Println("Saved stylized effect to output_effect.jpg")
	}

	// Interactive smoothing window: sigma trackbar drives blur + Canny.
	smoothWin := gocv.NewWindow("Interactive Smoothing")
	windows = append(windows, smoothWin)
	smoothWin.MoveWindow(startX+1*cellW, startY+2*cellH)
	smoothTrack := smoothWin.CreateTrackbar("Sigma x10 (0-100)", 100)
	smoothTrack.SetPos(20)

	renderSmoothing := func(pos int) {
		sigma := sliderToSigma(pos)
		b := imageutil.GaussianBlurGray(gray, sigma)
		matconv.ShowScaledGray(smoothWin, imageutil.Canny(b, 20, 60), maxSide)
	}
	renderSmoothing(smoothTrack.GetPos())

	// Edge lab: kernel size, sigma and both Canny thresholds.
	labWin := gocv.NewWindow("Edge Detection Lab")
	windows = append(windows, labWin)
	labWin.MoveWindow(startX+2*cellW, startY+2*cellH)
	labK := labWin.CreateTrackbar("Blur kernel", 15)
	labSig := labWin.CreateTrackbar("Sigma x10", 100)
	labT1 := labWin.CreateTrackbar("Canny threshold 1", 255)
	labT2 := labWin.CreateTrackbar("Canny threshold 2", 255)
	labK.SetPos(3)
	labSig.SetPos(20)
	labT1.SetPos(20)
	labT2.SetPos(60)

	renderLab := func(k, sig, t1, t2 int) {
		kernel := imageutil.GaussianKernelSigma(sliderToSigma(sig), sliderToOddKernel(k))
		b := imageutil.ConvolveGray(gray, kernel)
		matconv.ShowScaledGray(labWin, imageutil.Canny(b, float64(t1), float64(t2)), maxSide)
	}

	lastSmooth := smoothTrack.GetPos()
	lastK, lastSig, lastT1, lastT2 := labK.GetPos(), labSig.GetPos(), labT1.GetPos(), labT2.GetPos()
	renderLab(lastK, lastSig, lastT1, lastT2)

	// Trackbars have no callbacks in gocv; poll positions each tick and
	// re-render the lab whose controls moved.
	for {
		key := smoothWin.WaitKey(pollMillis)
		if key == 27 || key == 'q' || key == 'Q' {
			break
		}

		if pos := smoothTrack.GetPos(); pos != lastSmooth {
			lastSmooth = pos
			renderSmoothing(pos)
		}

		k, sig, t1, t2 := labK.GetPos(), labSig.GetPos(), labT1.GetPos(), labT2.GetPos()
		if k != lastK || sig != lastSig || t1 != lastT1 || t2 != lastT2 {
			lastK, lastSig, lastT1, lastT2 = k, sig, t1, t2
			renderLab(k, sig, t1, t2)
		}
	}
}
