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

// Package modalflag handles command lines built out of nested modes, each
// with its own flags - the shape the wondercard command needs for
// "wondercard serve -config x.yaml -dashboard" or
// "wondercard dd read -config x.yaml -slot a -sector 12 -file out.bin".
//
// A Modes value starts a mode with NewMode, declares that mode's flags
// with the Add* methods, then calls Parse. If AddSubModes was called
// first, Parse additionally consumes one more argument naming the next
// mode to descend into, defaulting to the first sub-mode if the argument
// is missing or unrecognised. Help text (-h/-help) is handled and printed
// automatically.
package modalflag
