package chromakey

import (
	"runtime"
	"sync"

	"chromakey/imageutil"
)

// parallelThreshold is the pixel count below which Composite runs on a
// single goroutine; tiny images are not worth the fan-out.
const parallelThreshold = 1 << 16

// matchesKey classifies a pixel against the key color: every channel's
// absolute difference must be within tolerance. This is a Chebyshev (L∞)
// threshold, giving each channel independent slack rather than a combined
// Euclidean radius.
func matchesKey(c, key imageutil.RGB, tolerance int) bool {
	return absInt(int(c.R)-int(key.R)) <= tolerance &&
		absInt(int(c.G)-int(key.G)) <= tolerance &&
		absInt(int(c.B)-int(key.B)) <= tolerance
}

// compositeRows fills output rows [yFrom, yTo) of dst. Each call owns a
// disjoint row range, so concurrent calls never write the same pixel.
func compositeRows(dst, fg, bg *imageutil.RGBAImage, key imageutil.RGB, tolerance, yFrom, yTo int) {
	width := fg.Width()
	hasBackground := bg.Width() > 0 && bg.Height() > 0

	for y := yFrom; y < yTo; y++ {
		for x := 0; x < width; x++ {
			px := fg.GetRGB(x, y)
			if hasBackground && matchesKey(px, key, tolerance) {
				dst.SetRGB(x, y, bg.GetRGBTiled(x, y))
			} else {
				dst.SetRGB(x, y, px)
			}
		}
	}
}

// Composite builds a new image with the foreground's extent in which every
// pixel within tolerance of the key color is replaced by the background
// pixel at the same position, tiled by wrap-around indexing when the
// background is smaller than the foreground. Pixels outside the tolerance
// pass through unchanged, as does everything when the background has zero
// extent.
//
// The result is a pure function of the inputs: repeated calls with the
// same arguments produce byte-identical images, and raising the tolerance
// only ever moves pixels from "kept" to "replaced".
func Composite(fg, bg *imageutil.RGBAImage, key imageutil.RGB, tolerance int) *imageutil.RGBAImage {
	width, height := fg.Width(), fg.Height()
	dst := imageutil.NewRGBAImage(width, height)

	workers := runtime.GOMAXPROCS(0)
	if width*height < parallelThreshold || workers <= 1 || height < workers {
		compositeRows(dst, fg, bg, key, tolerance, 0, height)
		return dst
	}

	rowsPer := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		yFrom := i * rowsPer
		yTo := yFrom + rowsPer
		if yTo > height {
			yTo = height
		}
		if yFrom >= yTo {
			break
		}

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			compositeRows(dst, fg, bg, key, tolerance, from, to)
		}(yFrom, yTo)
	}
	wg.Wait()

	return dst
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
