package chromakey

import (
	"fmt"
	"log"
	"math"

	"chromakey/imageutil"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KeyColorMethod selects how the key color is estimated from the
// foreground image.
type KeyColorMethod int

const (
	// MethodHistogram picks the center of the dominant 3-D histogram bin.
	// This is the reference method: its tie-break order makes the result
	// bit-reproducible.
	MethodHistogram KeyColorMethod = iota

	// MethodDominant uses the dominantcolor package's swatch extraction.
	MethodDominant

	// MethodKMeans clusters a subsample of the pixels and takes the
	// center of the most populous cluster.
	MethodKMeans
)

func (m KeyColorMethod) String() string {
	switch m {
	case MethodDominant:
		return "dominant"
	case MethodKMeans:
		return "kmeans"
	default:
		return "histogram"
	}
}

// ParseKeyColorMethod maps a flag value onto a method.
func ParseKeyColorMethod(s string) (KeyColorMethod, error) {
	switch s {
	case "histogram":
		return MethodHistogram, nil
	case "dominant":
		return MethodDominant, nil
	case "kmeans":
		return MethodKMeans, nil
	}
	return MethodHistogram, fmt.Errorf("unknown key color method %q", s)
}

// EstimateKeyColor returns the key color for the given method. The
// histogram argument is the foreground's histogram; it is the fallback
// when an alternative method cannot produce a color, and the source of
// truth for MethodHistogram.
func EstimateKeyColor(img *imageutil.RGBAImage, hist *Histogram, method KeyColorMethod) imageutil.RGB {
	switch method {
	case MethodDominant:
		return imageutil.RGBFromColor(dominantcolor.Find(img.RGBA))
	case MethodKMeans:
		if c, ok := kmeansKeyColor(img); ok {
			return c
		}
		log.Println("key color warning: kmeans produced no clusters, falling back to histogram")
	}
	bin, _ := hist.DominantBin()
	return bin.Center(hist.BucketSize())
}

// kmeansKeyColorSamples bounds the observation count fed to the
// clusterer; larger images are subsampled on a uniform grid.
const kmeansKeyColorSamples = 12000

func kmeansKeyColor(img *imageutil.RGBAImage) (imageutil.RGB, bool) {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return imageutil.RGB{}, false
	}

	step := 1
	if width*height > kmeansKeyColorSamples {
		step = int(math.Sqrt(float64(width*height)/float64(kmeansKeyColorSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, kmeansKeyColorSamples)
	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			c := img.GetRGB(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) == 0 {
		return imageutil.RGB{}, false
	}

	k := 4
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return imageutil.RGB{}, false
	}

	// The most populous cluster holds the key color.
	best := cc[0]
	for _, c := range cc[1:] {
		if len(c.Observations) > len(best.Observations) {
			best = c
		}
	}
	if len(best.Center) < 3 {
		return imageutil.RGB{}, false
	}

	return imageutil.RGB{
		R: clampChannel(best.Center[0] * 255),
		G: clampChannel(best.Center[1] * 255),
		B: clampChannel(best.Center[2] * 255),
	}, true
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
