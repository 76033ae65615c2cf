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

// Package pagegeom converts annotation rectangles between the four coordinate
// spaces of a scanned construction document:
//
//   - document space: the document's native vector unit (points, 1/72 inch),
//     origin top-left, independent of any rendering resolution.  This is the
//     single source of truth; all other spaces are derived views of it.
//   - raster space: pixel coordinates of a full-page image sampled from
//     document space at a known density (pixels per document unit).
//   - viewport space: pixel coordinates of an on-screen drawing surface that
//     shows a raster image scaled uniformly to fit a bounding box.
//   - clip-local space: pixel coordinates inside a cropped sub-image (a
//     "clipping") that was extracted from the page using a document-space
//     rectangle.
//
// Each space has its own rectangle type, so that passing a rectangle to a
// conversion for the wrong space is a compile-time error.  A [Transformer]
// converts between document, raster and viewport space for one page; a
// [ClippingTransformer] additionally maps rectangles drawn inside a
// clipping's own rendering back into the parent document space.
//
// All conversions are pure functions of their inputs.  [PageMetadata] and
// [ClippingContext] values are never modified after construction, so
// transformers may be shared freely between goroutines.
package pagegeom
