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

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saxbophone/wondercard/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wondercard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesSlots(t *testing.T) {
	path := writeConfig(t, `
slots:
  - name: slot-a
    image: ./saves/slot-a.mcd
    create_if_missing: true
  - name: slot-b
    image: ./saves/slot-b.mcd
    read_only: true
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(cfg.Slots))
	}
	if cfg.Slots[0].Name != "slot-a" || !cfg.Slots[0].CreateIfMissing {
		t.Errorf("slot-a parsed incorrectly: %+v", cfg.Slots[0])
	}
	if cfg.Slots[1].Name != "slot-b" || !cfg.Slots[1].ReadOnly {
		t.Errorf("slot-b parsed incorrectly: %+v", cfg.Slots[1])
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error loading a nonexistent file")
	}
}

func TestValidateRejectsEmptySlots(t *testing.T) {
	cfg := &config.Config{}
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for a config with no slots")
	}
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	cfg := &config.Config{Slots: []config.SlotConfig{
		{Name: "slot-a", Image: "a.mcd"},
		{Name: "slot-a", Image: "b.mcd"},
	}}
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for duplicate slot names")
	}
}

func TestValidateRejectsDuplicateImages(t *testing.T) {
	cfg := &config.Config{Slots: []config.SlotConfig{
		{Name: "slot-a", Image: "shared.mcd"},
		{Name: "slot-b", Image: "shared.mcd"},
	}}
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for two slots sharing one image")
	}
}

func TestValidateRejectsConflictingFlags(t *testing.T) {
	cfg := &config.Config{Slots: []config.SlotConfig{
		{Name: "slot-a", Image: "a.mcd", ReadOnly: true, CreateIfMissing: true},
	}}
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for read_only and create_if_missing both set")
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := &config.Config{Slots: []config.SlotConfig{
		{Name: "slot-a", Image: "a.mcd", CreateIfMissing: true},
		{Name: "slot-b", Image: "b.mcd", ReadOnly: true},
	}}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
