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

// Package pageinfo derives pagegeom.PageMetadata from PDF files.
//
// The coordinate engine itself never touches files; this package is the
// producing side of the metadata contract.  It reads page dimensions and
// rotations with pdfcpu and computes the raster geometry a renderer working
// at the same DPI settings will produce, so that rasters and metadata can
// never drift apart.
package pageinfo

import (
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"timbergem.dev/go/pagegeom"
)

// ReferenceDPI is the resolution at which one raster pixel equals one
// document unit (PDF point).
const ReferenceDPI = 72.0

// Default rendering resolutions, matching the annotation pipeline: a
// moderate DPI for on-screen display and a higher one for archival
// clipping extraction.
const (
	DefaultDisplayDPI  = 200.0
	DefaultArchivalDPI = 300.0
)

// Density converts a rendering resolution in DPI to a sampling density in
// pixels per document unit.
func Density(dpi float64) float64 {
	return dpi / ReferenceDPI
}

// Options selects the rendering resolutions the metadata is computed for.
// The zero value uses [DefaultDisplayDPI] and [DefaultArchivalDPI].
type Options struct {
	DisplayDPI  float64
	ArchivalDPI float64
}

func (o *Options) displayDPI() float64 {
	if o == nil || o.DisplayDPI == 0 {
		return DefaultDisplayDPI
	}
	return o.DisplayDPI
}

func (o *Options) archivalDPI() float64 {
	if o == nil || o.ArchivalDPI == 0 {
		return DefaultArchivalDPI
	}
	return o.ArchivalDPI
}

// FromPageSize computes the metadata for a single page of the given
// document-space size (in points) and rotation, without reading any file.
// This is the one place where raster pixel dimensions are derived from
// document dimensions; renderers must use the same rounding.
func FromPageSize(pageNumber int, widthPoints, heightPoints float64, rotationDegrees int, opt *Options) (pagegeom.PageMetadata, error) {
	rot, ok := pagegeom.NormalizeRotation(rotationDegrees)
	if !ok {
		return pagegeom.PageMetadata{}, &pagegeom.InvalidPageMetadataError{
			Page:   pageNumber,
			Reason: "rotation must be a multiple of 90 degrees",
		}
	}

	display := Density(opt.displayDPI())
	archival := Density(opt.archivalDPI())

	meta := pagegeom.PageMetadata{
		PageNumber:     pageNumber,
		DocumentWidth:  widthPoints,
		DocumentHeight: heightPoints,
		Rotation:       rot,

		RasterWidth:   int(math.Round(widthPoints * display)),
		RasterHeight:  int(math.Round(heightPoints * display)),
		RasterDensity: display,

		ArchivalRasterWidth:   int(math.Round(widthPoints * archival)),
		ArchivalRasterHeight:  int(math.Round(heightPoints * archival)),
		ArchivalRasterDensity: archival,
	}
	if err := meta.Validate(); err != nil {
		return pagegeom.PageMetadata{}, err
	}
	return meta, nil
}

// ReadFile reads a PDF file and returns the metadata for every page, in
// page order.
func ReadFile(path string, opt *Options) ([]pagegeom.PageMetadata, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, err
	}
	return fromContext(ctx, opt)
}

func fromContext(ctx *model.Context, opt *Options) ([]pagegeom.PageMetadata, error) {
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, err
	}

	metas := make([]pagegeom.PageMetadata, 0, len(dims))
	for i, dim := range dims {
		pageNr := i + 1

		rotation := 0
		_, _, attrs, err := ctx.PageDict(pageNr, false)
		if err == nil && attrs != nil {
			rotation = attrs.Rotate
		}

		meta, err := FromPageSize(pageNr, dim.Width, dim.Height, rotation, opt)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
