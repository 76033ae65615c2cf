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
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Transformer converts rectangles between document space, raster space and
// viewport space for a single page.  A Transformer is bound to one
// [PageMetadata] value at construction and is safe for concurrent use.
//
// All conversions are exact scalings; rounding to whole pixels happens only
// when a result enters raster space, never in between.  Document space and
// raster space share a top-left origin, so no conversion flips the y axis.
type Transformer struct {
	meta PageMetadata
}

// NewTransformer returns a Transformer for the page described by meta.
// Malformed metadata is rejected with an [InvalidPageMetadataError].
func NewTransformer(meta PageMetadata) (*Transformer, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return &Transformer{meta: meta}, nil
}

// Metadata returns the page metadata the transformer is bound to.
func (t *Transformer) Metadata() PageMetadata {
	return t.meta
}

// DocumentToRaster converts a document-space rectangle to raster pixels at
// the given sampling density (pixels per document unit).  All four fields
// are rounded to the nearest whole pixel.
func (t *Transformer) DocumentToRaster(r DocumentRect, density float64) (RasterRect, error) {
	const op = "DocumentToRaster"
	if r.Width <= 0 || r.Height <= 0 {
		return RasterRect{}, degenerate(op, r.Width, r.Height)
	}
	if r.Left < 0 || r.Top < 0 {
		return RasterRect{}, &DegenerateGeometryError{Op: op, Reason: "negative document-space origin"}
	}
	if density <= 0 {
		return RasterRect{}, &DegenerateGeometryError{Op: op, Reason: "density must be positive"}
	}

	x, y, w, h := applyToRect(matrix.Scale(density, density), r.Left, r.Top, r.Width, r.Height)
	return RasterRect{
		Left:    int(math.Round(x)),
		Top:     int(math.Round(y)),
		Width:   int(math.Round(w)),
		Height:  int(math.Round(h)),
		Density: density,
	}, nil
}

// DisplayRaster converts a document-space rectangle to pixels of the page's
// display raster rendering.
func (t *Transformer) DisplayRaster(r DocumentRect) (RasterRect, error) {
	return t.DocumentToRaster(r, t.meta.RasterDensity)
}

// ArchivalRaster converts a document-space rectangle to pixels of the
// page's archival raster rendering.
func (t *Transformer) ArchivalRaster(r DocumentRect) (RasterRect, error) {
	if !t.meta.HasArchival() {
		return RasterRect{}, &InvalidPageMetadataError{
			Page:   t.meta.PageNumber,
			Reason: "page has no archival raster rendering",
		}
	}
	return t.DocumentToRaster(r, t.meta.ArchivalRasterDensity)
}

// RasterToDocument converts a raster-space rectangle back to document
// space, using the density recorded in the rectangle itself.  The result is
// continuous; no rounding is applied.  A round trip through
// [Transformer.DocumentToRaster] reproduces the original rectangle to
// within one raster pixel's worth of document units per field.
func (t *Transformer) RasterToDocument(r RasterRect) (DocumentRect, error) {
	const op = "RasterToDocument"
	if r.Width <= 0 || r.Height <= 0 {
		return DocumentRect{}, degenerate(op, float64(r.Width), float64(r.Height))
	}
	if r.Density <= 0 {
		return DocumentRect{}, &DegenerateGeometryError{Op: op, Reason: "density must be positive"}
	}

	inv := 1 / r.Density
	x, y, w, h := applyToRect(matrix.Scale(inv, inv),
		float64(r.Left), float64(r.Top), float64(r.Width), float64(r.Height))
	return DocumentRect{Left: x, Top: y, Width: w, Height: h}, nil
}

// RasterToViewport converts a raster-space rectangle to the viewport of the
// given size.  The raster image is assumed to be displayed with the uniform
// fit scale min(vw/rasterWidth, vh/rasterHeight); a single scale for both
// axes is what keeps square features square on screen.
func (t *Transformer) RasterToViewport(r RasterRect, viewportWidth, viewportHeight float64) (ViewportRect, error) {
	const op = "RasterToViewport"
	if r.Width <= 0 || r.Height <= 0 {
		return ViewportRect{}, degenerate(op, float64(r.Width), float64(r.Height))
	}
	scale, err := viewportScale(op, t.meta.RasterWidth, t.meta.RasterHeight,
		viewportWidth, viewportHeight)
	if err != nil {
		return ViewportRect{}, err
	}

	x, y, w, h := applyToRect(matrix.Scale(scale, scale),
		float64(r.Left), float64(r.Top), float64(r.Width), float64(r.Height))
	return ViewportRect{
		Left: x, Top: y, Width: w, Height: h,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}, nil
}

// ViewportToRaster converts a viewport-space rectangle back to raster
// pixels of the page's display raster.  The fit scale is recomputed from
// the viewport dimensions carried in the rectangle, so the conversion
// depends on no ambient display state.
//
// A rectangle drawn partly outside the viewport is clamped to the viewport
// box first; in that case the valid clamped result is returned together
// with an [OutOfBoundsWarning].
func (t *Transformer) ViewportToRaster(r ViewportRect) (RasterRect, error) {
	const op = "ViewportToRaster"
	if r.Width <= 0 || r.Height <= 0 {
		return RasterRect{}, degenerate(op, r.Width, r.Height)
	}
	scale, err := viewportScale(op, t.meta.RasterWidth, t.meta.RasterHeight,
		r.ViewportWidth, r.ViewportHeight)
	if err != nil {
		return RasterRect{}, err
	}

	r, warn := clampViewportRect(op, r)
	if r.Width <= 0 || r.Height <= 0 {
		return RasterRect{}, degenerate(op, r.Width, r.Height)
	}

	inv := 1 / scale
	x, y, w, h := applyToRect(matrix.Scale(inv, inv), r.Left, r.Top, r.Width, r.Height)
	out := RasterRect{
		Left:    int(math.Round(x)),
		Top:     int(math.Round(y)),
		Width:   int(math.Round(w)),
		Height:  int(math.Round(h)),
		Density: t.meta.RasterDensity,
	}
	if warn != nil {
		return out, warn
	}
	return out, nil
}

// DocumentToViewport converts a document-space rectangle directly to the
// viewport of the given size.  It is the composition of
// [Transformer.DisplayRaster] and [Transformer.RasterToViewport].
func (t *Transformer) DocumentToViewport(r DocumentRect, viewportWidth, viewportHeight float64) (ViewportRect, error) {
	raster, err := t.DisplayRaster(r)
	if err != nil {
		return ViewportRect{}, err
	}
	return t.RasterToViewport(raster, viewportWidth, viewportHeight)
}

// ViewportToDocument converts a viewport-space rectangle directly to
// document space.  It is the composition of [Transformer.ViewportToRaster]
// and [Transformer.RasterToDocument]; an [OutOfBoundsWarning] from the
// first step is passed through together with the valid result.
func (t *Transformer) ViewportToDocument(r ViewportRect) (DocumentRect, error) {
	raster, err := t.ViewportToRaster(r)
	if err != nil && !IsOutOfBounds(err) {
		return DocumentRect{}, err
	}
	warn := err

	doc, err := t.RasterToDocument(raster)
	if err != nil {
		return DocumentRect{}, err
	}
	return doc, warn
}

// FitDimensions returns the largest width/height pair with the aspect ratio
// of the page's display raster that fits inside the given bounding box.
// The display layer must size its drawing surface with this policy, so that
// the scale used for drawing matches the scale used for conversion.
func (t *Transformer) FitDimensions(maxWidth, maxHeight float64) (Size, error) {
	return fitSize("FitDimensions", t.meta.RasterWidth, t.meta.RasterHeight, maxWidth, maxHeight)
}

// applyToRect transforms a rectangle by m.  The matrix must be a
// combination of scaling and translation only; width and height pick up the
// scale factors but not the translation.
func applyToRect(m matrix.Matrix, left, top, width, height float64) (x, y, w, h float64) {
	x = m[0]*left + m[2]*top + m[4]
	y = m[1]*left + m[3]*top + m[5]
	w = m[0] * width
	h = m[3] * height
	return x, y, w, h
}

// viewportScale returns the uniform fit scale for displaying a raster of
// the given pixel size inside a viewport.  The same value is used on both
// axes.
func viewportScale(op string, rasterWidth, rasterHeight int, viewportWidth, viewportHeight float64) (float64, error) {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return 0, &DegenerateGeometryError{Op: op, Reason: "viewport dimensions must be positive"}
	}
	return math.Min(viewportWidth/float64(rasterWidth),
		viewportHeight/float64(rasterHeight)), nil
}

// clampViewportRect constrains r to its own viewport box.  The second
// return value is a non-nil *OutOfBoundsWarning if any clamping occurred.
// A rectangle entirely outside the viewport comes back with non-positive
// width or height; the caller turns that into a degenerate-geometry error.
func clampViewportRect(op string, r ViewportRect) (ViewportRect, error) {
	left := math.Max(r.Left, 0)
	top := math.Max(r.Top, 0)
	right := math.Min(r.Left+r.Width, r.ViewportWidth)
	bottom := math.Min(r.Top+r.Height, r.ViewportHeight)

	if left == r.Left && top == r.Top && right == r.Left+r.Width && bottom == r.Top+r.Height {
		return r, nil
	}

	warn := &OutOfBoundsWarning{
		Op:     op,
		Left:   left - r.Left,
		Top:    top - r.Top,
		Right:  r.Left + r.Width - right,
		Bottom: r.Top + r.Height - bottom,
	}
	r.Left, r.Top = left, top
	r.Width, r.Height = right-left, bottom-top
	return r, warn
}

// fitSize implements the aspect-ratio-preserving fit policy shared by page
// and clipping viewports.
func fitSize(op string, rasterWidth, rasterHeight int, maxWidth, maxHeight float64) (Size, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return Size{}, &DegenerateGeometryError{Op: op, Reason: "bounding box dimensions must be positive"}
	}

	aspect := float64(rasterWidth) / float64(rasterHeight)
	if aspect > maxWidth/maxHeight {
		// relatively wider than the box: fit to width
		return Size{Width: maxWidth, Height: maxWidth / aspect}, nil
	}
	return Size{Width: maxHeight * aspect, Height: maxHeight}, nil
}
