package grid

import (
	"image"
	"image/color"
)

// FromImage converts any image to a grid using the standard gray color model.
// The result never aliases the image's pixel buffer.
func FromImage(img image.Image) *Grid {
	b := img.Bounds()
	g := New(b.Dx(), b.Dy())

	// Fast path for gray images
	if gray, ok := img.(*image.Gray); ok {
		for y := range g.Height {
			start := (y+b.Min.Y-gray.Rect.Min.Y)*gray.Stride + (b.Min.X - gray.Rect.Min.X)
			copy(g.Row(y), gray.Pix[start:start+g.Width])
		}
		return g
	}

	// Generic slow path for any image type
	for y := range g.Height {
		row := g.Row(y)
		for x := range g.Width {
			row[x] = color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y
		}
	}
	return g
}

// Gray returns a copy of g as an *image.Gray anchored at the origin.
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], g.Row(y))
	}
	return img
}
