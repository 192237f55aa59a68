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

package slot_test

import (
	"bytes"
	"testing"

	"github.com/saxbophone/wondercard/card"
	"github.com/saxbophone/wondercard/slot"
)

func TestInsertRemoveCard(t *testing.T) {
	s := slot.New("a", false)
	c := card.New()

	if s.Occupied() {
		t.Fatal("fresh slot should not be occupied")
	}
	if err := s.InsertCard(c); err != nil {
		t.Fatalf("InsertCard: %v", err)
	}
	if !s.Occupied() {
		t.Fatal("slot should be occupied after InsertCard")
	}
	if err := s.InsertCard(card.New()); err == nil {
		t.Error("InsertCard into an occupied slot should fail")
	}
	if err := s.RemoveCard(); err != nil {
		t.Fatalf("RemoveCard: %v", err)
	}
	if s.Occupied() {
		t.Fatal("slot should not be occupied after RemoveCard")
	}
	if err := s.RemoveCard(); err == nil {
		t.Error("RemoveCard on an empty slot should fail")
	}
}

func TestInsertCardAlreadyPoweredElsewhereFails(t *testing.T) {
	c := card.New()
	c.PowerOn()

	s := slot.New("a", false)
	if err := s.InsertCard(c); err == nil {
		t.Error("InsertCard should refuse a card that is already powered on")
	}
}

func TestOperationsRequireACard(t *testing.T) {
	s := slot.New("a", false)
	if _, err := s.ReadSector(0); err == nil {
		t.Error("ReadSector on an empty slot should fail")
	}
	if err := s.WriteSector(0, make([]byte, card.SectorSize)); err == nil {
		t.Error("WriteSector on an empty slot should fail")
	}
}

func TestWriteSectorThenReadSectorRoundTrips(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, card.SectorSize)
	for i := range want {
		want[i] = byte(i * 3)
	}

	if err := s.WriteSector(42, want); err != nil {
		t.Fatalf("WriteSector: %v", err)
	}
	got, err := s.ReadSector(42)
	if err != nil {
		t.Fatalf("ReadSector: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("round trip mismatch")
	}
}

func TestReadOnlySlotRejectsWrites(t *testing.T) {
	s := slot.New("a", true)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteSector(0, make([]byte, card.SectorSize)); err == nil {
		t.Error("WriteSector on a read-only slot should fail")
	}
	if err := s.WriteBlock(0, make([]byte, card.BlockSize)); err == nil {
		t.Error("WriteBlock on a read-only slot should fail")
	}
}

func TestOutOfRangeSectorAndBlockRejected(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.ReadSector(card.SectorCount); err == nil {
		t.Error("expected error for out-of-range sector")
	}
	if _, err := s.ReadBlock(card.BlockCount); err == nil {
		t.Error("expected error for out-of-range block")
	}
}

func TestWriteBlockThenReadBlockRoundTrips(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, card.BlockSize)
	for i := range want {
		want[i] = byte(i)
	}

	if err := s.WriteBlock(1, want); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
	got, err := s.ReadBlock(1)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("block round trip mismatch")
	}
}

func TestWriteCardThenReadCardRoundTrips(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}

	want := make([]byte, card.Size)
	for i := range want {
		want[i] = byte(i * 17)
	}

	if err := s.WriteCard(want); err != nil {
		t.Fatalf("WriteCard: %v", err)
	}
	got, err := s.ReadCard()
	if err != nil {
		t.Fatalf("ReadCard: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("card round trip mismatch")
	}
}

func TestWriteCardRejectsWrongLength(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteCard(make([]byte, card.Size-1)); err == nil {
		t.Error("expected error for undersized card data")
	}
}

func TestTransferPassesThroughToCard(t *testing.T) {
	s := slot.New("a", false)
	if err := s.InsertCard(card.New()); err != nil {
		t.Fatal(err)
	}
	ack, data, err := s.Transfer(card.Byte(0x81))
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if !ack {
		t.Error("expected ack for frame start byte")
	}
	if data.Present() {
		t.Errorf("expected no data for frame start byte, got %#v", data)
	}
}
