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

import (
	"os"

	"github.com/saxbophone/wondercard/curated"
	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of a wondercard YAML configuration file.
type Config struct {
	Slots []SlotConfig `yaml:"slots"`
}

// SlotConfig describes a single card slot and the image file backing it.
type SlotConfig struct {
	Name            string `yaml:"name"`
	Image           string `yaml:"image"`
	CreateIfMissing bool   `yaml:"create_if_missing"`
	ReadOnly        bool   `yaml:"read_only"`
}

// Load reads and parses the YAML configuration file at path. It does not
// validate the result; call Validate separately.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf("config: load %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, curated.Errorf("config: load %q: %w", path, err)
	}
	return &cfg, nil
}
