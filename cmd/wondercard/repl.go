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

package main

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/saxbophone/wondercard/card"
	"github.com/saxbophone/wondercard/slot"
	"github.com/saxbophone/wondercard/term"
)

// runREPL puts the terminal into cbreak mode and lets an operator drive s
// one command byte at a time, typing two hex digits per transfer and
// watching the ack/response pair the card sends back. 's' saves the card
// and 'q' or EOF (ctrl-D) saves and quits.
func runREPL(s *slot.Slot, path string) error {
	console := &term.Console{}
	if err := console.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	defer console.CleanUp()
	console.CBreakMode()

	console.Print("wondercard repl: slot %q (%dx%d terminal)\n", s.Name(), console.Geometry.Cols, console.Geometry.Rows)
	console.Print("type 2 hex digits to transfer a byte, '.' for a high-impedance byte\n")
	console.Print("'s' saves, 'q' or ctrl-D saves and quits\n")

	in := bufio.NewReader(os.Stdin)
	var high byte
	haveHigh := false

	for {
		b, err := in.ReadByte()
		if err != nil {
			if err != io.EOF {
				console.Print("\n* %v\n", err)
			}
			break
		}

		switch {
		case b == 'q' || b == 'Q' || b == 0x04: // 0x04 is ctrl-D, not EOF, in cbreak mode
			console.Print("\n")
			return saveSlot(s, path)
		case b == 's' || b == 'S':
			haveHigh = false
			if err := saveSlot(s, path); err != nil {
				console.Print("\n* %v\n", err)
			} else {
				console.Print("\nsaved %s\n", path)
			}
		case b == '.':
			haveHigh = false
			replTransfer(console, s, card.Absent)
		case isHexDigit(b):
			if !haveHigh {
				high = b
				haveHigh = true
				continue
			}
			haveHigh = false
			v, err := strconv.ParseUint(string([]byte{high, b}), 16, 8)
			if err != nil {
				console.Print("\n* %v\n", err)
				continue
			}
			replTransfer(console, s, card.Byte(byte(v)))
		case b == '\r' || b == '\n':
			console.Print("\n")
		default:
			haveHigh = false
			console.Print("\n* unrecognised key %q\n", b)
		}
	}
	return saveSlot(s, path)
}

func replTransfer(console *term.Console, s *slot.Slot, command card.TriState) {
	ack, data, err := s.Transfer(command)
	if err != nil {
		console.Print("\n* %v\n", err)
		return
	}
	if v, present := data.Value(); present {
		console.Print(" -> ack=%-5v data=%#02x\n", ack, v)
	} else {
		console.Print(" -> ack=%-5v data=--\n", ack)
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
