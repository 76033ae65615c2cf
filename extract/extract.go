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

// Package extract crops clipping and symbol images out of page rasters.
//
// The crop regions are always specified in document space and converted
// through pagegeom, so that an extracted image covers exactly the region a
// saved annotation refers to, regardless of which raster rendering the
// crop is taken from.
package extract

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"timbergem.dev/go/pagegeom"
)

// Clipping crops the image for a clipping out of a full-page raster.
//
// page is the raster rendering described by meta at the given density
// (usually the archival raster).  The crop region is the clipping's
// document-space rectangle; the result has the pixel dimensions implied by
// the clipping's own density, resampling with Catmull-Rom interpolation
// when the two densities differ.
func Clipping(page image.Image, meta pagegeom.PageMetadata, density float64, clip pagegeom.ClippingContext) (*image.RGBA, error) {
	tr, err := pagegeom.NewTransformer(meta)
	if err != nil {
		return nil, err
	}
	// constructing the clipping transformer validates that the clipping
	// lies inside the page
	ct, err := pagegeom.NewClippingTransformer(meta, clip)
	if err != nil {
		return nil, err
	}

	src, err := tr.DocumentToRaster(clip.DocumentRect, density)
	if err != nil {
		return nil, err
	}
	srcRect := src.ImageRect().Add(page.Bounds().Min)
	if !srcRect.In(page.Bounds()) {
		srcRect = srcRect.Intersect(page.Bounds())
	}
	if srcRect.Empty() {
		return nil, fmt.Errorf("clipping %v lies outside the %v page raster",
			clip.DocumentRect, page.Bounds().Size())
	}

	width, height := ct.RasterSize()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if srcRect.Dx() == width && srcRect.Dy() == height {
		xdraw.Copy(dst, image.Point{}, page, srcRect, xdraw.Src, nil)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), page, srcRect, xdraw.Src, nil)
	}
	return dst, nil
}

// Symbol crops a symbol tile out of a clipping image.
//
// clipImg is the clipping image described by clip (its dimensions must
// match the clipping's raster size), and symbol is the symbol's rectangle
// in document space, as stored in the canonical record.  A symbol
// rectangle reaching past the clipping edge is clamped, like every other
// clip-local conversion.
func Symbol(clipImg image.Image, meta pagegeom.PageMetadata, clip pagegeom.ClippingContext, symbol pagegeom.DocumentRect) (*image.RGBA, error) {
	ct, err := pagegeom.NewClippingTransformer(meta, clip)
	if err != nil {
		return nil, err
	}

	wantW, wantH := ct.RasterSize()
	bounds := clipImg.Bounds()
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		return nil, fmt.Errorf("clipping image is %dx%d, metadata implies %dx%d",
			bounds.Dx(), bounds.Dy(), wantW, wantH)
	}

	local, err := ct.DocumentToClipLocal(symbol)
	if err != nil && !pagegeom.IsOutOfBounds(err) {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, local.Width, local.Height))
	xdraw.Copy(dst, image.Point{}, clipImg, local.ImageRect().Add(bounds.Min), xdraw.Src, nil)
	return dst, nil
}
