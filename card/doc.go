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

// Package card implements the byte-level protocol engine of a virtual
// memory card: a 128KiB backing store driven one byte at a time through a
// command state machine that recognises read-sector, write-sector and
// identify transactions.
//
// A Card knows nothing about how bytes arrive; Transfer is a pure function
// of the card's current state and the byte presented to it. Everything
// about framing, timing and retransmission belongs to the caller (see the
// sibling slot package for the host-side driver of these transactions).
package card
