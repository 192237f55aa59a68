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

package term

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"unsafe"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/saxbophone/wondercard/curated"
)

// Geometry is the dimensions of a terminal, in characters and pixels.
type Geometry struct {
	Rows uint16
	Cols uint16
	X    uint16
	Y    uint16
}

// Console is a POSIX terminal put under the repl command's control. The
// zero value is not usable - call Initialise first.
type Console struct {
	input  *os.File
	output *os.File

	Geometry Geometry

	canonAttr  unix.Termios
	rawAttr    unix.Termios
	cbreakAttr unix.Termios

	stopResize chan bool
	stoppedAck chan bool

	mu sync.Mutex
}

// Initialise records input and output, captures the terminal's current
// (canonical) attributes, and starts a background handler that keeps
// Geometry up to date as the window is resized.
func (c *Console) Initialise(input, output *os.File) error {
	if input == nil {
		return curated.Errorf("term: Console requires an input file")
	}
	if output == nil {
		return curated.Errorf("term: Console requires an output file")
	}

	c.input = input
	c.output = output

	if err := termios.Tcgetattr(c.input.Fd(), &c.canonAttr); err != nil {
		return curated.Errorf("term: reading terminal attributes: %w", err)
	}
	c.cbreakAttr = c.canonAttr
	termios.Cfmakecbreak(&c.cbreakAttr)
	c.rawAttr = c.canonAttr
	termios.Cfmakeraw(&c.rawAttr)

	if err := c.UpdateGeometry(); err != nil {
		return err
	}

	c.stopResize = make(chan bool)
	c.stoppedAck = make(chan bool)

	go func() {
		resized := make(chan os.Signal, 1)
		signal.Notify(resized, syscall.SIGWINCH)
		defer func() {
			c.stoppedAck <- true
		}()

		for {
			select {
			case <-resized:
				_ = c.UpdateGeometry()
			case <-c.stopResize:
				return
			}
		}
	}()

	return nil
}

// CleanUp restores canonical mode and stops the resize handler started by
// Initialise. It is safe, and expected, to call this in a defer
// immediately after a successful Initialise.
func (c *Console) CleanUp() {
	c.CanonicalMode()
	c.stopResize <- true
	<-c.stoppedAck
}

// Print writes a formatted string to the console's output.
func (c *Console) Print(format string, a ...interface{}) {
	fmt.Fprintf(c.output, format, a...)
}

// UpdateGeometry refreshes Geometry from the output terminal's current
// window size.
func (c *Console) UpdateGeometry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, c.output.Fd(), uintptr(syscall.TIOCGWINSZ), uintptr(unsafe.Pointer(&c.Geometry)))
	if errno != 0 {
		return curated.Errorf("term: reading terminal geometry: %d", errno)
	}
	return nil
}

// CanonicalMode restores the terminal's normal, line-buffered mode.
func (c *Console) CanonicalMode() {
	termios.Tcsetattr(c.input.Fd(), termios.TCIFLUSH, &c.canonAttr)
}

// RawMode puts the terminal into raw mode: no line buffering, no echo, no
// signal generation from control characters.
func (c *Console) RawMode() {
	termios.Tcsetattr(c.input.Fd(), termios.TCIFLUSH, &c.rawAttr)
}

// CBreakMode puts the terminal into cbreak mode: unbuffered input but with
// signal generation and output processing still active.
func (c *Console) CBreakMode() {
	termios.Tcsetattr(c.input.Fd(), termios.TCIFLUSH, &c.cbreakAttr)
}

// Flush discards any buffered but unread input and unwritten output.
func (c *Console) Flush() error {
	if err := termios.Tcflush(c.input.Fd(), termios.TCIFLUSH); err != nil {
		return curated.Errorf("term: flushing input: %w", err)
	}
	if err := termios.Tcflush(c.output.Fd(), termios.TCOFLUSH); err != nil {
		return curated.Errorf("term: flushing output: %w", err)
	}
	return nil
}
