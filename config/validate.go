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

package config

import "github.com/saxbophone/wondercard/curated"

// Validate checks cfg for correctness. It performs declarative validation
// only and never mutates cfg.
func Validate(cfg *Config) error {
	if len(cfg.Slots) == 0 {
		return curated.Errorf("config: no slots defined")
	}

	seenNames := make(map[string]bool, len(cfg.Slots))
	seenImages := make(map[string]string, len(cfg.Slots))

	for _, s := range cfg.Slots {
		if s.Name == "" {
			return curated.Errorf("config: a slot is missing a name")
		}
		if s.Image == "" {
			return curated.Errorf("config: slot %q: image path is required", s.Name)
		}
		if seenNames[s.Name] {
			return curated.Errorf("config: duplicate slot name %q", s.Name)
		}
		seenNames[s.Name] = true

		if owner, exists := seenImages[s.Image]; exists {
			return curated.Errorf("config: image %q is used by both slot %q and slot %q", s.Image, owner, s.Name)
		}
		seenImages[s.Image] = s.Name

		if s.ReadOnly && s.CreateIfMissing {
			return curated.Errorf("config: slot %q: read_only and create_if_missing cannot both be set", s.Name)
		}
	}
	return nil
}
