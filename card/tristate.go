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

package card

// TriState is a byte that may additionally be "absent" - the high
// impedance ("don't care"/"no data") state of a shared bus line. Both the
// command and the response side of a Transfer are TriState values.
type TriState struct {
	value   byte
	present bool
}

// Byte wraps a concrete byte value as a present TriState.
func Byte(v byte) TriState {
	return TriState{value: v, present: true}
}

// Absent is the high impedance TriState. It is the zero value of TriState,
// so the zero value of the type is already correct.
var Absent = TriState{}

// Present reports whether the TriState carries a concrete byte value.
func (t TriState) Present() bool {
	return t.present
}

// Value returns the concrete byte and true, or zero and false if the
// TriState is absent. Callers that need a concrete byte regardless of
// presence should use Resolve instead.
func (t TriState) Value() (byte, bool) {
	return t.value, t.present
}

// Resolve returns the concrete byte value, substituting fallback if the
// TriState is absent. Most of the protocol substitutes 0xFF for an absent
// byte (a fully pulled-up bus); callers should pass that unless the
// protocol step in question is documented otherwise.
func (t TriState) Resolve(fallback byte) byte {
	if t.present {
		return t.value
	}
	return fallback
}

// Equal reports whether t carries the concrete value v.
func (t TriState) Equal(v byte) bool {
	return t.present && t.value == v
}
