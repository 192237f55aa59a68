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

package logger

import "io"

// maxCentral is the number of entries kept before the oldest are dropped.
const maxCentral = 256

// only ever one central log for the whole process.
var central = newLog(maxCentral)

// Log adds an entry to the central log, tagged with tag.
func Log(tag, detail string) {
	central.add(tag, detail)
}

// Logf adds a formatted entry to the central log, tagged with tag.
func Logf(tag, pattern string, args ...interface{}) {
	central.addf(tag, pattern, args...)
}

// Clear removes every entry from the central log.
func Clear() {
	central.clear()
}

// Write writes every entry currently in the central log to output.
func Write(output io.Writer) {
	central.write(output)
}

// Tail writes the last number entries in the central log to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho causes every entry added from now on to also be written to
// output as it is added. Passing nil disables echoing.
func SetEcho(output io.Writer) {
	central.setEcho(output)
}
