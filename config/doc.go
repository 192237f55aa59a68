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

// Package config describes the YAML file that tells a running wondercard
// server which slots to open and which card image backs each one.
//
// Load only parses; it performs no I/O beyond reading the file itself and
// does not touch any card image. Validate checks the result declaratively
// and never mutates it. Callers are expected to call both, in that order,
// before acting on a Config.
package config
