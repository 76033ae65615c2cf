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

// ClippingTransformer maps rectangles drawn inside a clipping's own
// rendering back to the document space of the parent page, and the reverse.
//
// Clip-local space has its origin at the clipping's top-left corner, so
// every conversion into document space must translate by the clipping's
// document-space origin.  Omitting that translation would anchor symbol
// annotations to the clipping instead of the page; keeping it in one place
// is the reason this type exists.
type ClippingTransformer struct {
	clip ClippingContext

	// pixel dimensions of the clipping image, derived from the clipping's
	// document-space size and density
	rasterWidth, rasterHeight int
}

// NewClippingTransformer returns a transformer for annotations drawn inside
// the clipping described by clip.  The clipping must lie entirely within
// the document bounds of the page described by page.
func NewClippingTransformer(page PageMetadata, clip ClippingContext) (*ClippingTransformer, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	fail := func(reason string) error {
		return &InvalidPageMetadataError{Page: page.PageNumber, Reason: reason}
	}
	if clip.Density <= 0 {
		return nil, fail("clipping density must be positive")
	}
	r := clip.DocumentRect
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fail("clipping rectangle must have positive area")
	}
	if r.Left < 0 || r.Top < 0 || !page.DocumentBounds().Contains(r) {
		return nil, fail("clipping rectangle extends outside the page")
	}

	width, height := clip.RasterSize()
	if width < 1 || height < 1 {
		return nil, fail("clipping raster collapses to zero pixels")
	}

	return &ClippingTransformer{
		clip:         clip,
		rasterWidth:  width,
		rasterHeight: height,
	}, nil
}

// Context returns the clipping context the transformer is bound to.
func (ct *ClippingTransformer) Context() ClippingContext {
	return ct.clip
}

// RasterSize returns the pixel dimensions of the clipping image.
func (ct *ClippingTransformer) RasterSize() (width, height int) {
	return ct.rasterWidth, ct.rasterHeight
}

// Clamp constrains a clip-local rectangle to the clipping's raster bounds.
// The second return value reports whether any clamping occurred.  Clamping
// is idempotent: clamping a clamped rectangle changes nothing.
func (ct *ClippingTransformer) Clamp(c ClipRect) (ClipRect, bool) {
	left := max(c.Left, 0)
	top := max(c.Top, 0)
	right := min(c.Left+c.Width, ct.rasterWidth)
	bottom := min(c.Top+c.Height, ct.rasterHeight)

	if left == c.Left && top == c.Top && right == c.Left+c.Width && bottom == c.Top+c.Height {
		return c, false
	}
	c.Left, c.Top = left, top
	c.Width, c.Height = right-left, bottom-top
	return c, true
}

// ViewportToClipLocal converts a rectangle drawn on the clipping's viewport
// to clip-local pixels.  The fit scale is computed against the clipping's
// own pixel dimensions, analogous to [Transformer.ViewportToRaster].
// A rectangle that overshoots the viewport or the clipping edge is clamped,
// preserving the partial annotation, and reported with an
// [OutOfBoundsWarning].
func (ct *ClippingTransformer) ViewportToClipLocal(r ViewportRect) (ClipRect, error) {
	const op = "ViewportToClipLocal"
	if r.Width <= 0 || r.Height <= 0 {
		return ClipRect{}, degenerate(op, r.Width, r.Height)
	}
	scale, err := viewportScale(op, ct.rasterWidth, ct.rasterHeight,
		r.ViewportWidth, r.ViewportHeight)
	if err != nil {
		return ClipRect{}, err
	}

	r, warn := clampViewportRect(op, r)
	if r.Width <= 0 || r.Height <= 0 {
		return ClipRect{}, degenerate(op, r.Width, r.Height)
	}

	inv := 1 / scale
	x, y, w, h := applyToRect(matrix.Scale(inv, inv), r.Left, r.Top, r.Width, r.Height)
	out := ClipRect{
		Left:    int(math.Round(x)),
		Top:     int(math.Round(y)),
		Width:   int(math.Round(w)),
		Height:  int(math.Round(h)),
		Density: ct.clip.Density,
	}

	out, clamped := ct.Clamp(out)
	if out.Width <= 0 || out.Height <= 0 {
		return ClipRect{}, degenerate(op, float64(out.Width), float64(out.Height))
	}
	if clamped && warn == nil {
		warn = &OutOfBoundsWarning{Op: op}
	}
	if warn != nil {
		return out, warn
	}
	return out, nil
}

// ClipLocalToViewport converts a clip-local rectangle to the clipping's
// viewport of the given size.
func (ct *ClippingTransformer) ClipLocalToViewport(c ClipRect, viewportWidth, viewportHeight float64) (ViewportRect, error) {
	const op = "ClipLocalToViewport"
	if err := ct.checkClipRect(op, c); err != nil {
		return ViewportRect{}, err
	}
	scale, err := viewportScale(op, ct.rasterWidth, ct.rasterHeight,
		viewportWidth, viewportHeight)
	if err != nil {
		return ViewportRect{}, err
	}

	x, y, w, h := applyToRect(matrix.Scale(scale, scale),
		float64(c.Left), float64(c.Top), float64(c.Width), float64(c.Height))
	return ViewportRect{
		Left: x, Top: y, Width: w, Height: h,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}, nil
}

// ClipLocalToDocument converts a clip-local rectangle to document space,
// anchored to the parent document's origin: clip pixels are scaled to
// document units and then translated by the clipping's document-space
// origin.  A rectangle extending past the clipping edge is clamped before
// translation and reported with an [OutOfBoundsWarning].
func (ct *ClippingTransformer) ClipLocalToDocument(c ClipRect) (DocumentRect, error) {
	const op = "ClipLocalToDocument"
	if err := ct.checkClipRect(op, c); err != nil {
		return DocumentRect{}, err
	}

	c, clamped := ct.Clamp(c)
	if c.Width <= 0 || c.Height <= 0 {
		return DocumentRect{}, degenerate(op, float64(c.Width), float64(c.Height))
	}

	inv := 1 / ct.clip.Density
	origin := ct.clip.DocumentRect
	m := matrix.Scale(inv, inv).Mul(matrix.Translate(origin.Left, origin.Top))
	x, y, w, h := applyToRect(m,
		float64(c.Left), float64(c.Top), float64(c.Width), float64(c.Height))
	out := DocumentRect{Left: x, Top: y, Width: w, Height: h}

	if clamped {
		return out, &OutOfBoundsWarning{Op: op}
	}
	return out, nil
}

// DocumentToClipLocal converts a document-space rectangle to clip-local
// pixels: the clipping's document-space origin is subtracted first, then
// the result is scaled by the clipping density and rounded at the pixel
// boundary.  A rectangle only partly inside the clipping is clamped and
// reported with an [OutOfBoundsWarning].
func (ct *ClippingTransformer) DocumentToClipLocal(r DocumentRect) (ClipRect, error) {
	const op = "DocumentToClipLocal"
	if r.Width <= 0 || r.Height <= 0 {
		return ClipRect{}, degenerate(op, r.Width, r.Height)
	}

	d := ct.clip.Density
	origin := ct.clip.DocumentRect
	m := matrix.Translate(-origin.Left, -origin.Top).Mul(matrix.Scale(d, d))
	x, y, w, h := applyToRect(m, r.Left, r.Top, r.Width, r.Height)
	out := ClipRect{
		Left:    int(math.Round(x)),
		Top:     int(math.Round(y)),
		Width:   int(math.Round(w)),
		Height:  int(math.Round(h)),
		Density: d,
	}

	out, clamped := ct.Clamp(out)
	if out.Width <= 0 || out.Height <= 0 {
		return ClipRect{}, degenerate(op, float64(out.Width), float64(out.Height))
	}
	if clamped {
		return out, &OutOfBoundsWarning{Op: op}
	}
	return out, nil
}

// ViewportToDocument converts a rectangle drawn on the clipping's viewport
// directly to document space.  It is the composition of
// [ClippingTransformer.ViewportToClipLocal] and
// [ClippingTransformer.ClipLocalToDocument]; the clip-local intermediate is
// never skipped.  An [OutOfBoundsWarning] from either step is passed
// through together with the valid result.
func (ct *ClippingTransformer) ViewportToDocument(r ViewportRect) (DocumentRect, error) {
	c, err := ct.ViewportToClipLocal(r)
	if err != nil && !IsOutOfBounds(err) {
		return DocumentRect{}, err
	}
	warn := err

	doc, err := ct.ClipLocalToDocument(c)
	if err != nil && !IsOutOfBounds(err) {
		return DocumentRect{}, err
	}
	if err != nil {
		warn = err
	}
	return doc, warn
}

// DocumentToViewport converts a document-space rectangle to the clipping's
// viewport of the given size, routing through clip-local space.
func (ct *ClippingTransformer) DocumentToViewport(r DocumentRect, viewportWidth, viewportHeight float64) (ViewportRect, error) {
	c, err := ct.DocumentToClipLocal(r)
	if err != nil && !IsOutOfBounds(err) {
		return ViewportRect{}, err
	}
	warn := err

	v, err := ct.ClipLocalToViewport(c, viewportWidth, viewportHeight)
	if err != nil {
		return ViewportRect{}, err
	}
	return v, warn
}

// FitDimensions returns the largest width/height pair with the clipping
// image's aspect ratio that fits inside the given bounding box.  The
// display layer must size the clipping's drawing surface with this policy.
func (ct *ClippingTransformer) FitDimensions(maxWidth, maxHeight float64) (Size, error) {
	return fitSize("FitDimensions", ct.rasterWidth, ct.rasterHeight, maxWidth, maxHeight)
}

func (ct *ClippingTransformer) checkClipRect(op string, c ClipRect) error {
	if c.Width <= 0 || c.Height <= 0 {
		return degenerate(op, float64(c.Width), float64(c.Height))
	}
	if c.Density != 0 && c.Density != ct.clip.Density {
		return &DegenerateGeometryError{
			Op:     op,
			Reason: "rectangle density does not match the clipping density",
		}
	}
	return nil
}
