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

	"timbergem.dev/go/pagegeom/internal/float"
)

// rasterDimTolerance is the maximum difference, in pixels, allowed between a
// declared raster dimension and the dimension implied by the document size
// and the sampling density.
const rasterDimTolerance = 1.0

// Rotation describes how a page is rotated when displayed.  The possible
// values are [Rotate0], [Rotate90], [Rotate180] and [Rotate270].
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// NormalizeRotation reduces an arbitrary rotation in degrees to one of the
// four valid page rotations.  Values which are not a multiple of 90 degrees
// are rejected.
func NormalizeRotation(degrees int) (Rotation, bool) {
	degrees = degrees % 360
	if degrees < 0 {
		degrees += 360
	}
	switch degrees {
	case 0, 90, 180, 270:
		return Rotation(degrees), true
	default:
		return 0, false
	}
}

// PageMetadata is the per-page geometry contract produced by the rendering
// collaborator.  It records the page's document-space dimensions together
// with the pixel dimensions and sampling densities of the raster renderings
// made from it: a display raster, and optionally a higher-density archival
// raster used for clipping extraction.
//
// A PageMetadata value must not be modified once it is in use.  Re-rendering
// a page at a new density produces a new value, so that coordinates computed
// against the old one stay reproducible.
type PageMetadata struct {
	// PageNumber is the 1-based page number within the document.
	PageNumber int

	// DocumentWidth and DocumentHeight are the page dimensions in document
	// units (points).
	DocumentWidth  float64
	DocumentHeight float64

	// Rotation is the page's display rotation.  It is carried through for
	// consumers; the conversions in this package operate on the unrotated
	// page geometry.
	Rotation Rotation

	// RasterWidth, RasterHeight and RasterDensity describe the display
	// raster rendering of the page.
	RasterWidth   int
	RasterHeight  int
	RasterDensity float64

	// ArchivalRasterWidth, ArchivalRasterHeight and ArchivalRasterDensity
	// describe the optional archival rendering.  Either all three are set,
	// or all three are zero.
	ArchivalRasterWidth   int
	ArchivalRasterHeight  int
	ArchivalRasterDensity float64
}

// HasArchival reports whether the page carries an archival raster rendering.
func (m *PageMetadata) HasArchival() bool {
	return m.ArchivalRasterDensity > 0
}

// DocumentBounds returns the page's bounding rectangle in document space.
func (m *PageMetadata) DocumentBounds() DocumentRect {
	return DocumentRect{Left: 0, Top: 0, Width: m.DocumentWidth, Height: m.DocumentHeight}
}

// Validate checks the internal consistency of the metadata.  In particular,
// each declared raster dimension must agree with the dimension implied by
// the document size and the declared density, to within one pixel.
func (m *PageMetadata) Validate() error {
	fail := func(reason string) error {
		return &InvalidPageMetadataError{Page: m.PageNumber, Reason: reason}
	}

	if m.PageNumber < 1 {
		return fail("page number must be at least 1")
	}
	if m.DocumentWidth <= 0 || m.DocumentHeight <= 0 {
		return fail("document dimensions must be positive")
	}
	if _, ok := NormalizeRotation(int(m.Rotation)); !ok {
		return fail("rotation must be a multiple of 90 degrees")
	}

	if err := checkRasterPair("display raster", m.DocumentWidth, m.DocumentHeight,
		m.RasterWidth, m.RasterHeight, m.RasterDensity); err != nil {
		return fail(err.Error())
	}

	archivalSet := m.ArchivalRasterWidth != 0 || m.ArchivalRasterHeight != 0 ||
		m.ArchivalRasterDensity != 0
	if archivalSet {
		if err := checkRasterPair("archival raster", m.DocumentWidth, m.DocumentHeight,
			m.ArchivalRasterWidth, m.ArchivalRasterHeight, m.ArchivalRasterDensity); err != nil {
			return fail(err.Error())
		}
	}

	return nil
}

type metadataProblem string

func (p metadataProblem) Error() string { return string(p) }

func checkRasterPair(name string, docW, docH float64, w, h int, density float64) error {
	if density <= 0 {
		return metadataProblem(name + " density must be positive")
	}
	if w <= 0 || h <= 0 {
		return metadataProblem(name + " dimensions must be positive")
	}
	wantW := math.Round(docW * density)
	wantH := math.Round(docH * density)
	if math.Abs(float64(w)-wantW) > rasterDimTolerance ||
		math.Abs(float64(h)-wantH) > rasterDimTolerance {
		return metadataProblem(name + " dimensions do not match document size at density " +
			float.Format(density, 4))
	}
	return nil
}

// ClippingContext anchors a clipping image to the document space of its
// parent page.  DocumentRect is the clipping's bounding box in document
// space, and Density is the sampling rate the clipping image was rasterized
// with (often higher than the page's display raster density).
//
// A ClippingContext is created once when the clipping is extracted and is
// immutable thereafter.  Symbol annotations drawn inside the clipping keep
// their own copy of the context, so a later re-extraction cannot silently
// invalidate saved coordinates.
type ClippingContext struct {
	DocumentRect DocumentRect
	Density      float64
}

// RasterSize returns the pixel dimensions of the clipping image implied by
// the clipping's document-space size and its density.
func (c ClippingContext) RasterSize() (width, height int) {
	width = int(math.Round(c.DocumentRect.Width * c.Density))
	height = int(math.Round(c.DocumentRect.Height * c.Density))
	return width, height
}
