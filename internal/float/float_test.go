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

package float

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		x         float64
		precision int
		want      string
	}{
		{0, 3, "0"},
		{1, 3, "1"},
		{-1.5, 3, "-1.5"},
		{107.2, 3, "107.2"},
		{2.77778, 4, "2.7778"},
		{100, 2, "100"},
		{0.5, 3, "0.5"},
		{1.0001, 3, "1"},
	}
	for _, tt := range tests {
		if got := Format(tt.x, tt.precision); got != tt.want {
			t.Errorf("Format(%g, %d) = %q, want %q", tt.x, tt.precision, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		x      float64
		digits int
		want   float64
	}{
		{2.77778, 2, 2.78},
		{-2.005, 2, -2.0},
		{463.636363, 0, 464},
		{0.24, 3, 0.24},
	}
	for _, tt := range tests {
		if got := Round(tt.x, tt.digits); got != tt.want {
			t.Errorf("Round(%g, %d) = %g, want %g", tt.x, tt.digits, got, tt.want)
		}
	}
}
