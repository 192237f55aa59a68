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

// Package logger implements a small ring-buffered log, kept as a single
// process-wide instance rather than threaded through every constructor as
// a dependency. Consecutive identical entries collapse into one, with a
// repeat count, rather than flooding the buffer - useful here because a
// card logs the same "write sector: bad sector" line for every write that
// fails that way.
package logger
