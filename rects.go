// timbergem.dev/go/pagegeom - coordinate transformations for annotated construction documents
// Copyright (C) 2026  The pagegeom authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pagegeom

import (
	"fmt"
	"image"
	"math"

	"timbergem.dev/go/pagegeom/internal/float"
)

// DocumentRect is a rectangle in document space: the document's native
// vector unit (points), origin at the top-left of the page, independent of
// any rendering resolution.  Document space is the canonical record for
// annotations; every other rectangle type is a derived view.
type DocumentRect struct {
	Left, Top, Width, Height float64
}

// Right returns the x coordinate of the rectangle's right edge.
func (r DocumentRect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r DocumentRect) Bottom() float64 { return r.Top + r.Height }

// IsZero is true if the rectangle is the zero value.
func (r DocumentRect) IsZero() bool {
	return r.Left == 0 && r.Top == 0 && r.Width == 0 && r.Height == 0
}

// NearlyEqual reports whether the fields of two rectangles differ by less
// than eps.
func (r DocumentRect) NearlyEqual(other DocumentRect, eps float64) bool {
	return math.Abs(r.Left-other.Left) < eps &&
		math.Abs(r.Top-other.Top) < eps &&
		math.Abs(r.Width-other.Width) < eps &&
		math.Abs(r.Height-other.Height) < eps
}

// Contains reports whether other lies entirely within r.
func (r DocumentRect) Contains(other DocumentRect) bool {
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

func (r DocumentRect) String() string {
	return "[" + float.Format(r.Left, 3) + " " + float.Format(r.Top, 3) +
		" " + float.Format(r.Width, 3) + " " + float.Format(r.Height, 3) + " pt]"
}

// RasterRect is a rectangle in raster space: pixel coordinates of a
// full-page image rendered from document space.  Density records the
// sampling rate (pixels per document unit) the raster was produced with, so
// the inverse conversion needs no ambient state.
type RasterRect struct {
	Left, Top, Width, Height int

	// Density is the number of pixels per document unit.
	Density float64
}

// ImageRect returns the rectangle as an image.Rectangle, for use with the
// standard image packages.
func (r RasterRect) ImageRect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func (r RasterRect) String() string {
	return fmt.Sprintf("[%d %d %d %d px @%s]",
		r.Left, r.Top, r.Width, r.Height, float.Format(r.Density, 4))
}

// ViewportRect is a rectangle in viewport space: pixel coordinates on an
// on-screen drawing surface which displays a raster image scaled uniformly
// to fit.  The rectangle carries the total size of its containing viewport,
// so that the inverse scale can always be recomputed from the value alone.
type ViewportRect struct {
	Left, Top, Width, Height float64

	// ViewportWidth and ViewportHeight are the total dimensions of the
	// drawing surface the rectangle was drawn on.
	ViewportWidth, ViewportHeight float64
}

// NearlyEqual reports whether the position and size of two viewport
// rectangles differ by less than eps.  The containing viewport dimensions
// must match exactly.
func (r ViewportRect) NearlyEqual(other ViewportRect, eps float64) bool {
	return math.Abs(r.Left-other.Left) < eps &&
		math.Abs(r.Top-other.Top) < eps &&
		math.Abs(r.Width-other.Width) < eps &&
		math.Abs(r.Height-other.Height) < eps &&
		r.ViewportWidth == other.ViewportWidth &&
		r.ViewportHeight == other.ViewportHeight
}

func (r ViewportRect) String() string {
	return "[" + float.Format(r.Left, 3) + " " + float.Format(r.Top, 3) +
		" " + float.Format(r.Width, 3) + " " + float.Format(r.Height, 3) +
		" in " + float.Format(r.ViewportWidth, 3) + "x" + float.Format(r.ViewportHeight, 3) + "]"
}

// ClipRect is a rectangle in clip-local space: pixel coordinates inside a
// cropped clipping image, origin at the clipping's own top-left corner.
// Density is the sampling rate the clipping was rasterized with; it may be
// higher than the parent page's raster density.
type ClipRect struct {
	Left, Top, Width, Height int

	// Density is the number of pixels per document unit.
	Density float64
}

// ImageRect returns the rectangle as an image.Rectangle, for use with the
// standard image packages.
func (r ClipRect) ImageRect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func (r ClipRect) String() string {
	return fmt.Sprintf("[%d %d %d %d clip px @%s]",
		r.Left, r.Top, r.Width, r.Height, float.Format(r.Density, 4))
}

// Size is a width/height pair, as returned by the fit-to-viewport policy.
type Size struct {
	Width, Height float64
}

func (s Size) String() string {
	return float.Format(s.Width, 3) + "x" + float.Format(s.Height, 3)
}
