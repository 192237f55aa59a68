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

package cardimage

import (
	"os"

	"github.com/saxbophone/wondercard/card"
	"github.com/saxbophone/wondercard/curated"
	"github.com/saxbophone/wondercard/logger"
)

// Load reads the card image at path and returns its contents, suitable for
// passing to card.NewFromData. It fails if the file is not exactly
// card.Size bytes.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf("cardimage: load %q: %w", path, err)
	}
	if len(data) != card.Size {
		return nil, curated.Errorf("cardimage: load %q: expected %d bytes, got %d", path, card.Size, len(data))
	}
	logger.Logf("cardimage", "loaded %q", path)
	return data, nil
}

// Create writes a fresh, zeroed card image to path and returns its
// contents. It fails if a file already exists at path.
func Create(path string) ([]byte, error) {
	data := make([]byte, card.Size)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, curated.Errorf("cardimage: create %q: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return nil, curated.Errorf("cardimage: create %q: %w", path, err)
	}
	logger.Logf("cardimage", "created %q", path)
	return data, nil
}

// Save writes data, which must be exactly card.Size bytes, to path,
// overwriting any existing file.
func Save(path string, data []byte) error {
	if len(data) != card.Size {
		return curated.Errorf("cardimage: save %q: expected %d bytes, got %d", path, card.Size, len(data))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return curated.Errorf("cardimage: save %q: %w", path, err)
	}
	logger.Logf("cardimage", "saved %q", path)
	return nil
}

// LoadOrCreate loads the card image at path, creating a fresh zeroed one
// if it doesn't already exist.
func LoadOrCreate(path string) ([]byte, error) {
	data, err := Load(path)
	if err == nil {
		return data, nil
	}
	if _, statErr := os.Stat(path); statErr == nil {
		// the file exists but failed to load for some other reason (wrong
		// size, permissions) - that error is the one worth surfacing.
		return nil, err
	}
	return Create(path)
}
