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

// Package slot is the host side of the memory card protocol: it drives a
// card.Card through the exact byte sequence a real reader would, and turns
// that into sector, block and whole-card read and write operations.
//
// A Slot holds at most one Card at a time. Inserting a card powers it on;
// removing one powers it off. Every read and write method requires a card
// to be inserted, and fails with a curated error if one isn't.
package slot
