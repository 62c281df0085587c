package chromakey

import (
	"fmt"
	"math"
	"strings"

	"chromakey/imageutil"

	"github.com/cenkalti/dominantcolor"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes the dominant-color analysis of the foreground image,
// printed once at startup.
type Report struct {
	Bin      Bin           // dominant bin index triple
	Color    imageutil.RGB // representative color (bin center)
	Count    int           // pixels occupying the dominant bin
	Total    int           // total pixels scanned
	Entropy  float64       // Shannon entropy of the bin occupancy, in bits
	AltColor imageutil.RGB // dominantcolor package's estimate
	DeltaE   float64       // Lab distance between Color and AltColor
}

// BuildReport analyzes a histogram and its source image. The dominantcolor
// estimate is computed as an independent cross-check on the histogram pick;
// a large DeltaE usually means the foreground has no single dominant tone.
func BuildReport(img *imageutil.RGBAImage, hist *Histogram) Report {
	bin, count := hist.DominantBin()
	rep := bin.Center(hist.BucketSize())

	r := Report{
		Bin:   bin,
		Color: rep,
		Count: count,
		Total: hist.Total(),
	}

	if r.Total > 0 {
		p := make([]float64, len(hist.Counts))
		for i, c := range hist.Counts {
			p[i] = float64(c) / float64(r.Total)
		}
		// stat.Entropy returns nats; report bits.
		r.Entropy = stat.Entropy(p) / math.Ln2

		r.AltColor = imageutil.RGBFromColor(dominantcolor.Find(img.RGBA))
		a, _ := colorful.MakeColor(rep.ToColor())
		b, _ := colorful.MakeColor(r.AltColor.ToColor())
		r.DeltaE = a.DistanceLab(b)
	}

	return r
}

// Share returns the dominant bin's fraction of all pixels.
func (r Report) Share() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Count) / float64(r.Total)
}

// Lines returns the report as human-readable text lines.
func (r Report) Lines() []string {
	return []string{
		fmt.Sprintf("Most common bin (R,G,B):  [%d, %d, %d]", r.Bin.R, r.Bin.G, r.Bin.B),
		fmt.Sprintf("Representative color:     [%d, %d, %d]", r.Color.R, r.Color.G, r.Color.B),
		fmt.Sprintf("Pixel count:              %d (%.1f%% of %d)", r.Count, r.Share()*100, r.Total),
		fmt.Sprintf("Histogram entropy:        %.2f bits", r.Entropy),
		fmt.Sprintf("Dominantcolor cross-check: [%d, %d, %d] (Lab dE %.3f)",
			r.AltColor.R, r.AltColor.G, r.AltColor.B, r.DeltaE),
	}
}

func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}
