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

package pageinfo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"timbergem.dev/go/pagegeom"
)

func TestDensity(t *testing.T) {
	tests := []struct {
		dpi  float64
		want float64
	}{
		{72, 1},
		{144, 2},
		{300, 300.0 / 72},
	}
	for _, tt := range tests {
		if got := Density(tt.dpi); got != tt.want {
			t.Errorf("Density(%g) = %g, want %g", tt.dpi, got, tt.want)
		}
	}
}

func TestFromPageSize(t *testing.T) {
	got, err := FromPageSize(1, 612, 792, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := pagegeom.PageMetadata{
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
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected metadata (-want +got):\n%s", d)
	}
}

func TestFromPageSizeCustomDPI(t *testing.T) {
	opt := &Options{DisplayDPI: 72, ArchivalDPI: 144}
	got, err := FromPageSize(3, 100, 50, 90, opt)
	if err != nil {
		t.Fatal(err)
	}
	if got.RasterWidth != 100 || got.RasterHeight != 50 {
		t.Errorf("display raster = %dx%d, want 100x50", got.RasterWidth, got.RasterHeight)
	}
	if got.ArchivalRasterWidth != 200 || got.ArchivalRasterHeight != 100 {
		t.Errorf("archival raster = %dx%d, want 200x100",
			got.ArchivalRasterWidth, got.ArchivalRasterHeight)
	}
	if got.Rotation != pagegeom.Rotate90 {
		t.Errorf("rotation = %v, want 90", got.Rotation)
	}
}

func TestFromPageSizeRejects(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		rotation      int
	}{
		{"zero width", 0, 792, 0},
		{"negative height", 612, -792, 0},
		{"skewed rotation", 612, 792, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromPageSize(1, tt.width, tt.height, tt.rotation, nil)
			var invalid *pagegeom.InvalidPageMetadataError
			if !errors.As(err, &invalid) {
				t.Errorf("got %v, want *InvalidPageMetadataError", err)
			}
		})
	}
}

func TestMetadataFeedsTransformer(t *testing.T) {
	meta, err := FromPageSize(1, 612, 792, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := pagegeom.NewTransformer(meta)
	if err != nil {
		t.Fatal(err)
	}

	doc := pagegeom.DocumentRect{Left: 100, Top: 200, Width: 300, Height: 150}
	raster, err := tr.ArchivalRaster(doc)
	if err != nil {
		t.Fatal(err)
	}
	back, err := tr.RasterToDocument(raster)
	if err != nil {
		t.Fatal(err)
	}
	if !back.NearlyEqual(doc, 72.0/300) {
		t.Errorf("round trip of %v gave %v", doc, back)
	}
}
