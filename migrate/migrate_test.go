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

package migrate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"timbergem.dev/go/pagegeom"
)

func letterMeta() pagegeom.PageMetadata {
	return pagegeom.PageMetadata{
		PageNumber:     1,
		DocumentWidth:  612,
		DocumentHeight: 792,

		RasterWidth:   1700,
		RasterHeight:  2200,
		RasterDensity: 200.0 / 72,

		ArchivalRasterWidth:   2550,
		ArchivalRasterHeight:  3300,
		ArchivalRasterDensity: 300.0 / 72,
	}
}

const canonicalJSON = `{
	"pageNumber": 1,
	"documentWidth": 612,
	"documentHeight": 792,
	"rotationDegrees": 0,
	"rasterWidth": 1700,
	"rasterHeight": 2200,
	"rasterDensity": 2.7777777777777777,
	"archivalRasterWidth": 2550,
	"archivalRasterHeight": 3300,
	"archivalRasterDensity": 4.166666666666667
}`

const legacyJSON = `{
	"page_number": 1,
	"pdf_width_points": 612,
	"pdf_height_points": 792,
	"pdf_rotation_degrees": 0,
	"image_width_pixels": 1700,
	"image_height_pixels": 2200,
	"image_dpi": 200,
	"high_res_image_width_pixels": 2550,
	"high_res_image_height_pixels": 3300,
	"high_res_dpi": 300
}`

func TestDecodePageMetadata(t *testing.T) {
	got, err := DecodePageMetadata([]byte(canonicalJSON))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(letterMeta(), got); d != "" {
		t.Errorf("unexpected metadata (-want +got):\n%s", d)
	}
}

func TestDecodeLegacyPageMetadata(t *testing.T) {
	got, err := DecodeLegacyPageMetadata([]byte(legacyJSON))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(letterMeta(), got); d != "" {
		t.Errorf("unexpected metadata (-want +got):\n%s", d)
	}
}

func TestBothShapesAgree(t *testing.T) {
	canonical, err := DecodePageMetadata([]byte(canonicalJSON))
	if err != nil {
		t.Fatal(err)
	}
	legacy, err := DecodeLegacyPageMetadata([]byte(legacyJSON))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(canonical, legacy); d != "" {
		t.Errorf("shapes disagree (-canonical +legacy):\n%s", d)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	meta := letterMeta()
	data, err := EncodePageMetadata(meta)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodePageMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(meta, back); d != "" {
		t.Errorf("round trip changed metadata (-want +got):\n%s", d)
	}
}

func TestEncodeOmitsArchival(t *testing.T) {
	meta := letterMeta()
	meta.ArchivalRasterWidth = 0
	meta.ArchivalRasterHeight = 0
	meta.ArchivalRasterDensity = 0

	data, err := EncodePageMetadata(meta)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodePageMetadata(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.HasArchival() {
		t.Errorf("archival fields survived encoding: %+v", back)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty object", `{}`},
		{"missing density", `{
			"pageNumber": 1, "documentWidth": 612, "documentHeight": 792,
			"rotationDegrees": 0, "rasterWidth": 1700, "rasterHeight": 2200
		}`},
		{"partial archival", `{
			"pageNumber": 1, "documentWidth": 612, "documentHeight": 792,
			"rotationDegrees": 0, "rasterWidth": 1700, "rasterHeight": 2200,
			"rasterDensity": 2.7777777777777777, "archivalRasterDensity": 4
		}`},
		{"skewed rotation", `{
			"pageNumber": 1, "documentWidth": 612, "documentHeight": 792,
			"rotationDegrees": 45, "rasterWidth": 1700, "rasterHeight": 2200,
			"rasterDensity": 2.7777777777777777
		}`},
		{"inconsistent raster", `{
			"pageNumber": 1, "documentWidth": 612, "documentHeight": 792,
			"rotationDegrees": 0, "rasterWidth": 900, "rasterHeight": 2200,
			"rasterDensity": 2.7777777777777777
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePageMetadata([]byte(tt.data))
			var invalid *pagegeom.InvalidPageMetadataError
			if !errors.As(err, &invalid) {
				t.Errorf("got %v, want *InvalidPageMetadataError", err)
			}
		})
	}
}

func TestDecodeLegacyRejectsPartial(t *testing.T) {
	_, err := DecodeLegacyPageMetadata([]byte(`{
		"page_number": 1, "pdf_width_points": 612, "pdf_height_points": 792,
		"pdf_rotation_degrees": 0, "image_width_pixels": 1700,
		"image_height_pixels": 2200, "image_dpi": 200
	}`))
	var invalid *pagegeom.InvalidPageMetadataError
	if !errors.As(err, &invalid) {
		t.Errorf("got %v, want *InvalidPageMetadataError", err)
	}
}

func TestDecodeClippingContext(t *testing.T) {
	got, err := DecodeClippingContext([]byte(`{
		"documentRect": {"left": 100, "top": 200, "width": 300, "height": 150},
		"density": 4.166666666666667
	}`))
	if err != nil {
		t.Fatal(err)
	}
	want := pagegeom.ClippingContext{
		DocumentRect: pagegeom.DocumentRect{Left: 100, Top: 200, Width: 300, Height: 150},
		Density:      300.0 / 72,
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected clipping context (-want +got):\n%s", d)
	}
}

func TestDecodeClippingContextRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no rect", `{"density": 4}`},
		{"partial rect", `{"documentRect": {"left": 1, "top": 2}, "density": 4}`},
		{"zero density", `{
			"documentRect": {"left": 0, "top": 0, "width": 10, "height": 10},
			"density": 0
		}`},
		{"empty rect", `{
			"documentRect": {"left": 0, "top": 0, "width": 0, "height": 10},
			"density": 4
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClippingContext([]byte(tt.data))
			var invalid *pagegeom.InvalidPageMetadataError
			if !errors.As(err, &invalid) {
				t.Errorf("got %v, want *InvalidPageMetadataError", err)
			}
		})
	}
}
