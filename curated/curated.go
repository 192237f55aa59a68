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

package curated

import (
	"errors"
	"fmt"
	"strings"
)

// curated is an error identified by the message pattern it was built from,
// rather than by a distinct sentinel or type per failure site.
type curated struct {
	pattern string
	err     error
}

// Errorf builds an error from a fmt.Errorf-style pattern and values, so a
// %w verb wraps an underlying error exactly as fmt.Errorf would. Is matches
// on pattern rather than on the formatted message; Has searches the
// formatted message. The message is exactly what fmt.Errorf produces:
// repeated parts of a wrapped chain are not collapsed.
func Errorf(pattern string, values ...interface{}) error {
	return curated{pattern: pattern, err: fmt.Errorf(pattern, values...)}
}

func (c curated) Error() string {
	return c.err.Error()
}

func (c curated) Unwrap() error {
	return errors.Unwrap(c.err)
}

// Is reports whether err, or any error in its chain, is a curated error
// built from exactly pattern. Comparison is on the pattern, not the
// formatted message or the values it was given.
func Is(err error, pattern string) bool {
	for err != nil {
		var c curated
		if errors.As(err, &c) && c.pattern == pattern {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// Has reports whether err, or any error in its chain, is a curated error
// whose formatted message contains substr. Useful for tests that want to
// assert on the gist of an error without pinning its exact pattern.
func Has(err error, substr string) bool {
	for err != nil {
		var c curated
		if errors.As(err, &c) {
			if strings.Contains(c.Error(), substr) {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}
