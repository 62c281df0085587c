// Package chromakey isolates the dominant color of a foreground image by
// 3-D histogram analysis and substitutes background content for pixels
// within an adjustable tolerance of that color.
package chromakey

import (
	"runtime"
	"sync"

	"chromakey/imageutil"
)

// DefaultBuckets is the quantization used by the interactive keyer:
// four buckets per channel, 64 cells total.
const DefaultBuckets = 4

// Bin is a triple of per-channel bucket indices into a Histogram.
type Bin struct {
	R, G, B int
}

// Center returns the color at the geometric center of the bin:
// index*bucketSize + bucketSize/2 per channel. By construction it lies
// within bucketSize/2 of every pixel value that hashed into the bin.
func (b Bin) Center(bucketSize int) imageutil.RGB {
	return imageutil.RGB{
		R: uint8(b.R*bucketSize + bucketSize/2),
		G: uint8(b.G*bucketSize + bucketSize/2),
		B: uint8(b.B*bucketSize + bucketSize/2),
	}
}

// Histogram is a 3-D occupancy count over quantized RGB space with
// buckets³ cells. The sum of all cells equals the pixel count of the
// image it was built from.
type Histogram struct {
	Buckets int
	Counts  []int // flat, indexed r*Buckets² + g*Buckets + b
}

// NewHistogram creates an empty histogram. Bucket counts are clamped to
// [1, 256]; beyond 256 the cells would be narrower than one channel value.
func NewHistogram(buckets int) *Histogram {
	if buckets < 1 {
		buckets = 1
	}
	if buckets > 256 {
		buckets = 256
	}
	return &Histogram{
		Buckets: buckets,
		Counts:  make([]int, buckets*buckets*buckets),
	}
}

// BucketSize returns the width of one quantization cell, 256/buckets.
func (h *Histogram) BucketSize() int {
	return 256 / h.Buckets
}

// ToleranceMax returns the upper bound of the tolerance control,
// max(bucketSize, 255).
func (h *Histogram) ToleranceMax() int {
	if bs := h.BucketSize(); bs > 255 {
		return bs
	}
	return 255
}

// bucketIndex maps a channel value to its bucket, clamped to
// [0, buckets-1]. The clamp only matters when 256 is not a multiple of
// the bucket count.
func (h *Histogram) bucketIndex(v uint8) int {
	idx := int(v) / h.BucketSize()
	if idx > h.Buckets-1 {
		idx = h.Buckets - 1
	}
	return idx
}

// IndexOf returns the bin a color falls into.
func (h *Histogram) IndexOf(c imageutil.RGB) Bin {
	return Bin{
		R: h.bucketIndex(c.R),
		G: h.bucketIndex(c.G),
		B: h.bucketIndex(c.B),
	}
}

// At returns the count of the given bin.
func (h *Histogram) At(b Bin) int {
	return h.Counts[(b.R*h.Buckets+b.G)*h.Buckets+b.B]
}

// Total returns the sum of all cells.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// add scans the given row range of img into the histogram.
func (h *Histogram) add(img *imageutil.RGBAImage, yFrom, yTo int) {
	width := img.Width()
	for y := yFrom; y < yTo; y++ {
		for x := 0; x < width; x++ {
			c := img.GetRGB(x, y)
			h.Counts[(h.bucketIndex(c.R)*h.Buckets+h.bucketIndex(c.G))*h.Buckets+h.bucketIndex(c.B)]++
		}
	}
}

// merge accumulates another histogram's counts. Panics on mismatched
// bucket counts.
func (h *Histogram) merge(other *Histogram) {
	if other.Buckets != h.Buckets {
		panic("chromakey: merging histograms with different bucket counts")
	}
	for i, c := range other.Counts {
		h.Counts[i] += c
	}
}

// BuildHistogram scans every pixel of an image once and returns its 3-D
// color histogram. A zero-pixel image yields an all-zero histogram.
func BuildHistogram(img *imageutil.RGBAImage, buckets int) *Histogram {
	h := NewHistogram(buckets)
	h.add(img, 0, img.Height())
	return h
}

// BuildHistogramParallel builds the same histogram as BuildHistogram by
// partitioning the image into row ranges, scanning them concurrently into
// partial histograms, and merging the partials. Counts are bit-identical
// to the sequential build.
func BuildHistogramParallel(img *imageutil.RGBAImage, buckets int) *Histogram {
	height := img.Height()
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		return BuildHistogram(img, buckets)
	}

	partials := make([]*Histogram, workers)
	rowsPer := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		yFrom := i * rowsPer
		yTo := yFrom + rowsPer
		if yTo > height {
			yTo = height
		}
		partials[i] = NewHistogram(buckets)

		wg.Add(1)
		go func(p *Histogram, from, to int) {
			defer wg.Done()
			p.add(img, from, to)
		}(partials[i], yFrom, yTo)
	}
	wg.Wait()

	h := NewHistogram(buckets)
	for _, p := range partials {
		h.merge(p)
	}
	return h
}

// DominantBin returns the bin with the maximal count, and that count.
// The search enumerates the first channel in the outer loop, then the
// second, then the third, and replaces the running maximum only on a
// strictly greater count, so among tied bins the lexicographically
// smallest index triple wins. Downstream output is deterministic because
// of this exact enumeration order; do not reorder the loops.
func (h *Histogram) DominantBin() (Bin, int) {
	maxBin := Bin{}
	maxCount := -1

	for r := 0; r < h.Buckets; r++ {
		for g := 0; g < h.Buckets; g++ {
			for b := 0; b < h.Buckets; b++ {
				if c := h.Counts[(r*h.Buckets+g)*h.Buckets+b]; c > maxCount {
					maxCount = c
					maxBin = Bin{R: r, G: g, B: b}
				}
			}
		}
	}

	return maxBin, maxCount
}
