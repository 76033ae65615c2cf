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

// Package migrate decodes page metadata and clipping contexts from their
// JSON wire shapes.
//
// Two shapes exist: the canonical camelCase shape, and the legacy
// snake_case shape written by the original annotation backend, which
// records resolutions in DPI rather than pixels per document unit.  The
// transform core accepts neither fallbacks nor partial metadata, so both
// decoders here reject missing required fields outright; the only
// "migration" performed is the documented key and unit mapping of the
// legacy shape.
package migrate

import (
	"encoding/json"

	"timbergem.dev/go/pagegeom"
)

// referenceDPI is the resolution at which one pixel equals one document
// unit, used to convert legacy DPI fields to densities.
const referenceDPI = 72.0

type pageMetadataJSON struct {
	PageNumber      *int     `json:"pageNumber"`
	DocumentWidth   *float64 `json:"documentWidth"`
	DocumentHeight  *float64 `json:"documentHeight"`
	RotationDegrees *int     `json:"rotationDegrees"`
	RasterWidth     *int     `json:"rasterWidth"`
	RasterHeight    *int     `json:"rasterHeight"`
	RasterDensity   *float64 `json:"rasterDensity"`

	ArchivalRasterWidth   *int     `json:"archivalRasterWidth,omitempty"`
	ArchivalRasterHeight  *int     `json:"archivalRasterHeight,omitempty"`
	ArchivalRasterDensity *float64 `json:"archivalRasterDensity,omitempty"`
}

type legacyPageMetadataJSON struct {
	PageNumber      *int     `json:"page_number"`
	PDFWidthPoints  *float64 `json:"pdf_width_points"`
	PDFHeightPoints *float64 `json:"pdf_height_points"`
	RotationDegrees *int     `json:"pdf_rotation_degrees"`

	ImageWidthPixels  *int     `json:"image_width_pixels"`
	ImageHeightPixels *int     `json:"image_height_pixels"`
	ImageDPI          *float64 `json:"image_dpi"`

	HighResImageWidthPixels  *int     `json:"high_res_image_width_pixels"`
	HighResImageHeightPixels *int     `json:"high_res_image_height_pixels"`
	HighResDPI               *float64 `json:"high_res_dpi"`
}

func missing(field string) error {
	return &pagegeom.InvalidPageMetadataError{Reason: "missing required field " + field}
}

// DecodePageMetadata decodes the canonical JSON metadata shape.  All fields
// except the archival raster triple are required; the archival fields must
// be given either all together or not at all.
func DecodePageMetadata(data []byte) (pagegeom.PageMetadata, error) {
	var raw pageMetadataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return pagegeom.PageMetadata{}, err
	}

	switch {
	case raw.PageNumber == nil:
		return pagegeom.PageMetadata{}, missing("pageNumber")
	case raw.DocumentWidth == nil:
		return pagegeom.PageMetadata{}, missing("documentWidth")
	case raw.DocumentHeight == nil:
		return pagegeom.PageMetadata{}, missing("documentHeight")
	case raw.RotationDegrees == nil:
		return pagegeom.PageMetadata{}, missing("rotationDegrees")
	case raw.RasterWidth == nil:
		return pagegeom.PageMetadata{}, missing("rasterWidth")
	case raw.RasterHeight == nil:
		return pagegeom.PageMetadata{}, missing("rasterHeight")
	case raw.RasterDensity == nil:
		return pagegeom.PageMetadata{}, missing("rasterDensity")
	}

	rot, ok := pagegeom.NormalizeRotation(*raw.RotationDegrees)
	if !ok {
		return pagegeom.PageMetadata{}, &pagegeom.InvalidPageMetadataError{
			Page:   *raw.PageNumber,
			Reason: "rotation must be a multiple of 90 degrees",
		}
	}

	meta := pagegeom.PageMetadata{
		PageNumber:     *raw.PageNumber,
		DocumentWidth:  *raw.DocumentWidth,
		DocumentHeight: *raw.DocumentHeight,
		Rotation:       rot,
		RasterWidth:    *raw.RasterWidth,
		RasterHeight:   *raw.RasterHeight,
		RasterDensity:  *raw.RasterDensity,
	}

	archivalGiven := 0
	if raw.ArchivalRasterWidth != nil {
		meta.ArchivalRasterWidth = *raw.ArchivalRasterWidth
		archivalGiven++
	}
	if raw.ArchivalRasterHeight != nil {
		meta.ArchivalRasterHeight = *raw.ArchivalRasterHeight
		archivalGiven++
	}
	if raw.ArchivalRasterDensity != nil {
		meta.ArchivalRasterDensity = *raw.ArchivalRasterDensity
		archivalGiven++
	}
	if archivalGiven != 0 && archivalGiven != 3 {
		return pagegeom.PageMetadata{}, &pagegeom.InvalidPageMetadataError{
			Page:   meta.PageNumber,
			Reason: "archival raster fields must be given together",
		}
	}

	if err := meta.Validate(); err != nil {
		return pagegeom.PageMetadata{}, err
	}
	return meta, nil
}

// EncodePageMetadata renders metadata in the canonical JSON shape.
func EncodePageMetadata(meta pagegeom.PageMetadata) ([]byte, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	rot := int(meta.Rotation)
	raw := pageMetadataJSON{
		PageNumber:      &meta.PageNumber,
		DocumentWidth:   &meta.DocumentWidth,
		DocumentHeight:  &meta.DocumentHeight,
		RotationDegrees: &rot,
		RasterWidth:     &meta.RasterWidth,
		RasterHeight:    &meta.RasterHeight,
		RasterDensity:   &meta.RasterDensity,
	}
	if meta.HasArchival() {
		raw.ArchivalRasterWidth = &meta.ArchivalRasterWidth
		raw.ArchivalRasterHeight = &meta.ArchivalRasterHeight
		raw.ArchivalRasterDensity = &meta.ArchivalRasterDensity
	}
	return json.Marshal(raw)
}

// DecodeLegacyPageMetadata decodes the snake_case shape written by the
// original annotation backend.  Resolutions are given in DPI and converted
// to densities; all ten fields are required, since the legacy backend
// always wrote both renderings.
func DecodeLegacyPageMetadata(data []byte) (pagegeom.PageMetadata, error) {
	var raw legacyPageMetadataJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return pagegeom.PageMetadata{}, err
	}

	switch {
	case raw.PageNumber == nil:
		return pagegeom.PageMetadata{}, missing("page_number")
	case raw.PDFWidthPoints == nil:
		return pagegeom.PageMetadata{}, missing("pdf_width_points")
	case raw.PDFHeightPoints == nil:
		return pagegeom.PageMetadata{}, missing("pdf_height_points")
	case raw.RotationDegrees == nil:
		return pagegeom.PageMetadata{}, missing("pdf_rotation_degrees")
	case raw.ImageWidthPixels == nil:
		return pagegeom.PageMetadata{}, missing("image_width_pixels")
	case raw.ImageHeightPixels == nil:
		return pagegeom.PageMetadata{}, missing("image_height_pixels")
	case raw.ImageDPI == nil:
		return pagegeom.PageMetadata{}, missing("image_dpi")
	case raw.HighResImageWidthPixels == nil:
		return pagegeom.PageMetadata{}, missing("high_res_image_width_pixels")
	case raw.HighResImageHeightPixels == nil:
		return pagegeom.PageMetadata{}, missing("high_res_image_height_pixels")
	case raw.HighResDPI == nil:
		return pagegeom.PageMetadata{}, missing("high_res_dpi")
	}

	rot, ok := pagegeom.NormalizeRotation(*raw.RotationDegrees)
	if !ok {
		return pagegeom.PageMetadata{}, &pagegeom.InvalidPageMetadataError{
			Page:   *raw.PageNumber,
			Reason: "rotation must be a multiple of 90 degrees",
		}
	}

	meta := pagegeom.PageMetadata{
		PageNumber:     *raw.PageNumber,
		DocumentWidth:  *raw.PDFWidthPoints,
		DocumentHeight: *raw.PDFHeightPoints,
		Rotation:       rot,

		RasterWidth:   *raw.ImageWidthPixels,
		RasterHeight:  *raw.ImageHeightPixels,
		RasterDensity: *raw.ImageDPI / referenceDPI,

		ArchivalRasterWidth:   *raw.HighResImageWidthPixels,
		ArchivalRasterHeight:  *raw.HighResImageHeightPixels,
		ArchivalRasterDensity: *raw.HighResDPI / referenceDPI,
	}
	if err := meta.Validate(); err != nil {
		return pagegeom.PageMetadata{}, err
	}
	return meta, nil
}

type documentRectJSON struct {
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

type clippingContextJSON struct {
	DocumentRect *documentRectJSON `json:"documentRect"`
	Density      *float64          `json:"density"`
}

// DecodeClippingContext decodes the canonical clipping context shape.
// Containment within a page is not checked here; that happens when the
// context is bound to a page in pagegeom.NewClippingTransformer.
func DecodeClippingContext(data []byte) (pagegeom.ClippingContext, error) {
	var raw clippingContextJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return pagegeom.ClippingContext{}, err
	}
	if raw.DocumentRect == nil {
		return pagegeom.ClippingContext{}, missing("documentRect")
	}
	r := raw.DocumentRect
	switch {
	case r.Left == nil:
		return pagegeom.ClippingContext{}, missing("documentRect.left")
	case r.Top == nil:
		return pagegeom.ClippingContext{}, missing("documentRect.top")
	case r.Width == nil:
		return pagegeom.ClippingContext{}, missing("documentRect.width")
	case r.Height == nil:
		return pagegeom.ClippingContext{}, missing("documentRect.height")
	case raw.Density == nil:
		return pagegeom.ClippingContext{}, missing("density")
	}

	clip := pagegeom.ClippingContext{
		DocumentRect: pagegeom.DocumentRect{
			Left: *r.Left, Top: *r.Top, Width: *r.Width, Height: *r.Height,
		},
		Density: *raw.Density,
	}
	if clip.Density <= 0 {
		return pagegeom.ClippingContext{}, &pagegeom.InvalidPageMetadataError{
			Reason: "clipping density must be positive",
		}
	}
	if clip.DocumentRect.Width <= 0 || clip.DocumentRect.Height <= 0 {
		return pagegeom.ClippingContext{}, &pagegeom.InvalidPageMetadataError{
			Reason: "clipping rectangle must have positive area",
		}
	}
	return clip, nil
}
