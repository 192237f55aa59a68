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

// Package term wraps "github.com/pkg/term/termios" with the handful of
// features the interactive slot console needs: terminal geometry (shown in
// the console's banner) and restoration of canonical mode in CleanUp.
// CleanUp runs only when called, typically deferred; a process killed by a
// signal leaves the terminal in whatever mode it was last put in.
package term
