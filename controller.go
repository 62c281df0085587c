package chromakey

import (
	"log"

	"chromakey/imageutil"

	"github.com/corona10/goimagehash"
)

// DisplayFunc receives each newly composited result. The image is owned by
// the controller; implementations must not retain it past the call.
type DisplayFunc func(*imageutil.RGBAImage)

// Controller owns the tolerance state of the interactive loop. On each
// tolerance-change event it clamps the new value, recomputes the full
// output image, hands it to the display callback and persists it to the
// output path, overwriting the previous file. All calls must come from a
// single goroutine; the poll loop that raises events is the only writer.
type Controller struct {
	fg, bg     *imageutil.RGBAImage
	key        imageutil.RGB
	tolerance  int
	tolMax     int
	outputPath string
	display    DisplayFunc

	result   *imageutil.RGBAImage
	lastHash *goimagehash.ImageHash
}

// NewController creates a controller with the given initial tolerance.
// The first result is not computed until the caller fires the initial
// event via SetTolerance.
func NewController(fg, bg *imageutil.RGBAImage, key imageutil.RGB, initial, tolMax int, outputPath string, display DisplayFunc) *Controller {
	c := &Controller{
		fg:         fg,
		bg:         bg,
		key:        key,
		tolMax:     tolMax,
		outputPath: outputPath,
		display:    display,
	}
	c.tolerance = c.clamp(initial)
	return c
}

func (c *Controller) clamp(tol int) int {
	if tol < 0 {
		return 0
	}
	if tol > c.tolMax {
		return c.tolMax
	}
	return tol
}

// Tolerance returns the current tolerance value.
func (c *Controller) Tolerance() int {
	return c.tolerance
}

// Result returns the last composited output, or nil before the first
// event.
func (c *Controller) Result() *imageutil.RGBAImage {
	return c.result
}

// SetTolerance handles one tolerance-change event: clamp, recompute the
// whole output, display, persist. The recompute always runs; the persist
// is skipped only when the new output is byte-identical to the previous
// one, since rewriting the same bytes is not observable.
func (c *Controller) SetTolerance(pos int) {
	c.tolerance = c.clamp(pos)

	next := Composite(c.fg, c.bg, c.key, c.tolerance)
	changed := c.resultChanged(next)
	prev := c.result
	c.result = next

	if c.display != nil {
		c.display(next)
	}
	if prev == nil || changed {
		c.persist()
	}
}

// resultChanged reports whether next differs from the previous result. A
// difference hash answers fast for visible changes; a hash tie falls back
// to the exact byte compare, so a stale hash can never suppress a real
// update.
func (c *Controller) resultChanged(next *imageutil.RGBAImage) bool {
	prev := c.result

	hash, err := goimagehash.DifferenceHash(next.RGBA)
	if err == nil && hash != nil && c.lastHash != nil {
		if d, derr := hash.Distance(c.lastHash); derr == nil && d > 0 {
			c.lastHash = hash
			return true
		}
	}
	if err == nil {
		c.lastHash = hash
	}

	return prev == nil || !prev.Equal(next)
}

// persist writes the current result to the output path. Failures are
// reported as warnings; a full disk must not take down the interactive
// loop.
func (c *Controller) persist() {
	if c.result == nil {
		return
	}
	if err := imageutil.SaveImage(c.result.RGBA, c.outputPath); err != nil {
		log.Printf("warning: failed to write %s: %v", c.outputPath, err)
	}
}

// Shutdown performs the final persistence of the last computed output.
func (c *Controller) Shutdown() {
	c.persist()
}
