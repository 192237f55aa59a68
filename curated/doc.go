// This file is part of Wondercard.
//
// Wondercard is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Wondercard is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Wondercard.  If not, see <https://www.gnu.org/licenses/>.

// Package curated provides a small error type built around a message
// pattern rather than a value, so that calling code can test "is this
// error (approximately) the one I produced over there" without exporting
// sentinel values for every failure site.
//
// An error produced by Errorf remembers the pattern it was constructed
// from alongside its formatted message. Is and Has walk an error chain
// (following Unwrap, including through fmt.Errorf's %w): Is compares
// against that pattern rather than the formatted string, while Has looks
// for a substring of the formatted message. The message itself is exactly
// what fmt.Errorf produces; repeated parts of a wrapped chain are not
// collapsed.
package curated
