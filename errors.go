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
	"errors"
	"strconv"

	"timbergem.dev/go/pagegeom/internal/float"
)

// InvalidPageMetadataError indicates that a PageMetadata or ClippingContext
// value violates the page geometry contract.  It is returned at transformer
// construction time; a page with invalid metadata must be re-rendered by the
// producing collaborator, retrying the conversion cannot help.
type InvalidPageMetadataError struct {
	Page   int
	Reason string
}

func (err *InvalidPageMetadataError) Error() string {
	head := "invalid page metadata"
	if err.Page > 0 {
		head += " for page " + strconv.Itoa(err.Page)
	}
	return head + ": " + err.Reason
}

// DegenerateGeometryError indicates that an input rectangle has non-positive
// width or height, or otherwise cannot represent an area in its coordinate
// space.  Callers are expected to reject the interaction that produced the
// rectangle (typically a zero-size drag) rather than coerce it to a minimum
// size.
type DegenerateGeometryError struct {
	Op     string
	Reason string
}

func (err *DegenerateGeometryError) Error() string {
	return err.Op + ": degenerate geometry: " + err.Reason
}

// OutOfBoundsWarning reports that an input rectangle extended past the bounds
// of its containing space and was clamped.  It is a signal, not a failure:
// the conversion that returns it also returns a valid, clamped result.  The
// fields give the clamped-off amount on each edge, in the units of the space
// the clamping happened in (zero where no clamping occurred).
//
// Use [IsOutOfBounds] to distinguish this warning from fatal errors.
type OutOfBoundsWarning struct {
	Op                       string
	Left, Top, Right, Bottom float64
}

func (err *OutOfBoundsWarning) Error() string {
	return err.Op + ": rectangle clamped to bounds" +
		" (left " + float.Format(err.Left, 3) +
		", top " + float.Format(err.Top, 3) +
		", right " + float.Format(err.Right, 3) +
		", bottom " + float.Format(err.Bottom, 3) + ")"
}

// IsOutOfBounds reports whether err is (or wraps) an [OutOfBoundsWarning].
// Conversions that return this warning still return a usable rectangle.
func IsOutOfBounds(err error) bool {
	var warn *OutOfBoundsWarning
	return errors.As(err, &warn)
}

func degenerate(op string, width, height float64) error {
	return &DegenerateGeometryError{
		Op: op,
		Reason: "width " + float.Format(width, 3) +
			" x height " + float.Format(height, 3) + " is not a positive area",
	}
}
