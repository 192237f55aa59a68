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

package slot

import (
	"github.com/saxbophone/wondercard/card"
	"github.com/saxbophone/wondercard/curated"
	"github.com/saxbophone/wondercard/logger"
)

const sectorsPerBlock = card.BlockSize / card.SectorSize

// Slot is a connector that holds at most one Card and knows how to drive
// the full wire sequence for a read or write transaction.
type Slot struct {
	name     string
	card     *card.Card
	readOnly bool
}

// New returns an empty, named Slot. name is used only to identify the slot
// in logs and error messages. If readOnly is true, every write operation on
// this slot fails before it touches any inserted card.
func New(name string, readOnly bool) *Slot {
	return &Slot{name: name, readOnly: readOnly}
}

// Name returns the slot's name.
func (s *Slot) Name() string {
	return s.name
}

// ReadOnly reports whether this slot rejects writes.
func (s *Slot) ReadOnly() bool {
	return s.readOnly
}

// Occupied reports whether a card is currently inserted.
func (s *Slot) Occupied() bool {
	return s.card != nil
}

// InsertCard inserts c into the slot and powers it on. It fails if the slot
// is already occupied, or if c is already powered on - which, thanks to
// Card.PowerOn's invariant, also catches a card being inserted into two
// slots at once.
func (s *Slot) InsertCard(c *card.Card) error {
	if s.card != nil {
		return curated.Errorf("slot %q: already occupied", s.name)
	}
	if !c.PowerOn() {
		return curated.Errorf("slot %q: card is already powered on elsewhere", s.name)
	}
	s.card = c
	logger.Logf("slot", "%s: card inserted", s.name)
	return nil
}

// RemoveCard powers off and removes the currently inserted card. It fails
// if the slot is empty.
func (s *Slot) RemoveCard() error {
	if s.card == nil {
		return curated.Errorf("slot %q: no card inserted", s.name)
	}
	s.card.PowerOff()
	s.card = nil
	logger.Logf("slot", "%s: card removed", s.name)
	return nil
}

// Transfer passes a single byte-level exchange straight through to the
// inserted card. It fails if the slot is empty.
func (s *Slot) Transfer(command card.TriState) (ack bool, data card.TriState, err error) {
	if s.card == nil {
		return false, card.Absent, curated.Errorf("slot %q: no card inserted", s.name)
	}
	ack, data = s.card.Transfer(command)
	return ack, data, nil
}

// ReadSector reads the i'th sector via a complete read-sector transaction,
// the way a real reader would, rather than peeking at the card's backing
// store directly.
func (s *Slot) ReadSector(i int) ([]byte, error) {
	if s.card == nil {
		return nil, curated.Errorf("slot %q: no card inserted", s.name)
	}
	if i < 0 || i >= card.SectorCount {
		return nil, curated.Errorf("slot %q: sector index %d out of range [0,%d)", s.name, i, card.SectorCount)
	}
	return s.readSectorTransaction(uint16(i))
}

// WriteSector writes data, which must be exactly card.SectorSize bytes, to
// the i'th sector via a complete write-sector transaction.
func (s *Slot) WriteSector(i int, data []byte) error {
	if s.card == nil {
		return curated.Errorf("slot %q: no card inserted", s.name)
	}
	if i < 0 || i >= card.SectorCount {
		return curated.Errorf("slot %q: sector index %d out of range [0,%d)", s.name, i, card.SectorCount)
	}
	if s.readOnly {
		return curated.Errorf("slot %q: write rejected, slot is read-only", s.name)
	}
	return s.writeSectorTransaction(uint16(i), data)
}

// ReadBlock reads the i'th block as sectorsPerBlock consecutive read-sector
// transactions, concatenated in address order.
func (s *Slot) ReadBlock(i int) ([]byte, error) {
	if i < 0 || i >= card.BlockCount {
		return nil, curated.Errorf("slot %q: block index %d out of range [0,%d)", s.name, i, card.BlockCount)
	}
	out := make([]byte, 0, card.BlockSize)
	var firstErr error
	for sector := i * sectorsPerBlock; sector < (i+1)*sectorsPerBlock; sector++ {
		data, err := s.ReadSector(sector)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			data = make([]byte, card.SectorSize)
		}
		out = append(out, data...)
	}
	return out, firstErr
}

// WriteBlock writes data, which must be exactly card.BlockSize bytes, to
// the i'th block as sectorsPerBlock consecutive write-sector transactions.
// Every sector in the block is attempted even if an earlier one fails;
// WriteBlock returns the first error encountered, if any.
func (s *Slot) WriteBlock(i int, data []byte) error {
	if i < 0 || i >= card.BlockCount {
		return curated.Errorf("slot %q: block index %d out of range [0,%d)", s.name, i, card.BlockCount)
	}
	if len(data) != card.BlockSize {
		return curated.Errorf("slot %q: block data must be %d bytes, got %d", s.name, card.BlockSize, len(data))
	}
	var firstErr error
	for n := 0; n < sectorsPerBlock; n++ {
		sector := i*sectorsPerBlock + n
		chunk := data[n*card.SectorSize : (n+1)*card.SectorSize]
		if err := s.WriteSector(sector, chunk); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadCard reads every sector on the card, in address order, as a
// sequence of complete read-sector transactions.
func (s *Slot) ReadCard() ([]byte, error) {
	out := make([]byte, 0, card.Size)
	var firstErr error
	for block := 0; block < card.BlockCount; block++ {
		data, err := s.ReadBlock(block)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, data...)
	}
	return out, firstErr
}

// WriteCard writes data, which must be exactly card.Size bytes, as a
// sequence of complete write-sector transactions covering the whole card.
// Every block is attempted even if an earlier one fails; WriteCard returns
// the first error encountered, if any.
func (s *Slot) WriteCard(data []byte) error {
	if len(data) != card.Size {
		return curated.Errorf("slot %q: card data must be %d bytes, got %d", s.name, card.Size, len(data))
	}
	var firstErr error
	for block := 0; block < card.BlockCount; block++ {
		chunk := data[block*card.BlockSize : (block+1)*card.BlockSize]
		if err := s.WriteBlock(block, chunk); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Slot) readSectorTransaction(address uint16) ([]byte, error) {
	c := s.card

	addrMSB := byte(address >> 8)
	addrLSB := byte(address & 0xFF)

	if ack, _ := c.Transfer(card.Byte(0x81)); !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack frame start", s.name, address)
	}
	if ack, _ := c.Transfer(card.Byte(0x52)); !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack read command", s.name, address)
	}
	if ack, resp := c.Transfer(card.Byte(0x00)); !ack || !resp.Equal(0x5A) { // memcard ID 1
		return nil, curated.Errorf("slot %q: read sector %#04x: bad memcard ID tag", s.name, address)
	}
	if ack, resp := c.Transfer(card.Byte(0x00)); !ack || !resp.Equal(0x5D) { // memcard ID 2
		return nil, curated.Errorf("slot %q: read sector %#04x: bad memcard ID tag", s.name, address)
	}
	if ack, _ := c.Transfer(card.Byte(addrMSB)); !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack address MSB", s.name, address)
	}
	if ack, _ := c.Transfer(card.Byte(addrLSB)); !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack address LSB", s.name, address)
	}
	if ack, resp := c.Transfer(card.Byte(0x00)); !ack || !resp.Equal(0x5C) { // command ack 1
		return nil, curated.Errorf("slot %q: read sector %#04x: bad command-ack tag", s.name, address)
	}
	if ack, resp := c.Transfer(card.Byte(0x00)); !ack || !resp.Equal(0x5D) { // command ack 2
		return nil, curated.Errorf("slot %q: read sector %#04x: bad command-ack tag", s.name, address)
	}

	ack, confirmMSB := c.Transfer(card.Byte(0x00)) // confirmed address MSB
	if !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack confirmed address MSB", s.name, address)
	}
	ack, confirmLSB := c.Transfer(card.Byte(0x00)) // confirmed address LSB
	if !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: bad sector", s.name, address)
	}
	if !confirmMSB.Equal(addrMSB) || !confirmLSB.Equal(addrLSB) {
		return nil, curated.Errorf("slot %q: read sector %#04x: confirmed address mismatch", s.name, address)
	}

	data := make([]byte, card.SectorSize)
	checksum := addrMSB ^ addrLSB
	for i := range data {
		ack, b := c.Transfer(card.Byte(0x00))
		if !ack {
			return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack data byte %d", s.name, address, i)
		}
		v, present := b.Value()
		if !present {
			return nil, curated.Errorf("slot %q: read sector %#04x: card sent no data for byte %d", s.name, address, i)
		}
		data[i] = v
		checksum ^= v
	}

	ack, cardChecksum := c.Transfer(card.Byte(0x00))
	if !ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card did not ack checksum byte", s.name, address)
	}

	ack, status := c.Transfer(card.Byte(0x00))
	if ack {
		return nil, curated.Errorf("slot %q: read sector %#04x: card acked the end-status byte", s.name, address)
	}
	if !status.Equal(0x47) {
		return nil, curated.Errorf("slot %q: read sector %#04x: unexpected status %#02x", s.name, address, status.Resolve(0xFF))
	}
	if !cardChecksum.Equal(checksum) {
		return nil, curated.Errorf("slot %q: read sector %#04x: checksum mismatch", s.name, address)
	}
	return data, nil
}

func (s *Slot) writeSectorTransaction(address uint16, data []byte) error {
	if len(data) != card.SectorSize {
		return curated.Errorf("slot %q: write sector %#04x: data must be %d bytes, got %d", s.name, address, card.SectorSize, len(data))
	}
	c := s.card

	addrMSB := byte(address >> 8)
	addrLSB := byte(address & 0xFF)

	c.Transfer(card.Byte(0x81))
	c.Transfer(card.Byte(0x57))
	c.Transfer(card.Byte(0x00)) // memcard ID 1
	c.Transfer(card.Byte(0x00)) // memcard ID 2
	c.Transfer(card.Byte(addrMSB))
	c.Transfer(card.Byte(addrLSB))

	checksum := addrMSB ^ addrLSB
	for _, b := range data {
		c.Transfer(card.Byte(b))
		checksum ^= b
	}
	c.Transfer(card.Byte(checksum))
	c.Transfer(card.Byte(0x00)) // command ack 1
	c.Transfer(card.Byte(0x00)) // command ack 2
	_, status := c.Transfer(card.Byte(0x00))

	switch {
	case status.Equal(0x47):
		return nil
	case status.Equal(0x4E):
		return curated.Errorf("slot %q: write sector %#04x: bad checksum", s.name, address)
	case status.Equal(0xFF):
		return curated.Errorf("slot %q: write sector %#04x: bad sector", s.name, address)
	default:
		return curated.Errorf("slot %q: write sector %#04x: unexpected status %#02x", s.name, address, status.Resolve(0xFF))
	}
}
