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

// Package statsview is an optional package, fully built only when the
// statsview build tag is present. It provides an HTTP server running
// locally, offering live runtime statistics for a wondercard server -
// goroutine counts, memory use and the like - via
// "github.com/go-echarts/statsview".
//
// After Launch, graphical statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// Without the build tag, Available reports false and Launch is a no-op,
// so callers never need their own build constraints just to ask.
package statsview
