/*
Package transform rescales and rotates sheet frames in place, preserving
grid addressing. Every operation replaces a frame's pixel buffer and
leaves its coordinates and indices untouched.
*/
package transform

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"sheetkit/grid"
)

// Resize scales every frame to an exact size by size square.
func Resize(frames []*grid.Frame, size int) {
	for _, f := range frames {
		dst := image.NewNRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), f.Image, f.Image.Bounds(), draw.Src, nil)
		f.Image = dst
	}
}

// Fit scales every frame to fit within a size by size square, keeping
// its aspect ratio and centering the result on a transparent canvas.
func Fit(frames []*grid.Frame, size int) {
	for _, f := range frames {
		f.Image = fitOne(f.Image, size)
	}
}

func fitOne(m *image.NRGBA, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	b := m.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return dst
	}
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	r := image.Rect(0, 0, w, h).Add(image.Pt((size-w)/2, (size-h)/2))
	draw.CatmullRom.Scale(dst, r, m, b, draw.Over, nil)
	return dst
}

// Rotate turns every frame by angle degrees counter-clockwise about its
// own center. Pixels swept outside the frame rectangle are clipped so
// frame and sheet dimensions are preserved.
func Rotate(frames []*grid.Frame, angle float64) {
	for _, f := range frames {
		f.Image = rotateOne(f.Image, angle)
	}
}

func rotateOne(m *image.NRGBA, angle float64) *image.NRGBA {
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if b.Dx() == 0 || b.Dy() == 0 {
		return dst
	}

	sin, cos := math.Sincos(angle * math.Pi / 180)
	cx := float64(b.Dx()) / 2
	cy := float64(b.Dy()) / 2

	// Source-to-destination affine rotating about the frame center.
	// Positive angles turn counter-clockwise in image coordinates
	// (y axis pointing down).
	s2d := f64.Aff3{
		cos, sin, cx - cos*cx - sin*cy,
		-sin, cos, cy + sin*cx - cos*cy,
	}
	draw.BiLinear.Transform(dst, s2d, m, b, draw.Src, nil)
	return dst
}
