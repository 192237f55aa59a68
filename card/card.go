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

import (
	"github.com/saxbophone/wondercard/curated"
	"github.com/saxbophone/wondercard/logger"
)

// Card is a virtual memory card: a 128KiB backing store plus the protocol
// state machine that exposes it one byte at a time. The zero value is not
// usable - construct with New or NewFromData.
type Card struct {
	poweredOn bool
	flag      byte

	state         topState
	readState     readStep
	writeState    writeStep
	identifyState identifyStep

	// scratch variables, valid only for the duration of a compound command
	address     uint16
	checksum    byte
	checksumBad bool
	byteCounter int

	data []byte
}

// New returns a Card with a zeroed backing store.
func New() *Card {
	c, _ := NewFromData(make([]byte, Size))
	return c
}

// NewFromData returns a Card backed by data, which must be exactly Size
// bytes long. The Card does not copy data; it borrows it for as long as the
// Card exists, per the "never resized, uniquely owned" invariant of the
// backing store.
func NewFromData(data []byte) (*Card, error) {
	if len(data) != Size {
		return nil, curated.Errorf("card: backing store must be %d bytes, got %d", Size, len(data))
	}
	return &Card{data: data}, nil
}

// PoweredOn reports whether the card is currently powered.
func (c *Card) PoweredOn() bool {
	return c.poweredOn
}

// Flag returns the card's current status flag register.
func (c *Card) Flag() byte {
	return c.flag
}

// PowerOn transitions the card to powered, resetting the flag register and
// protocol state. Returns false if the card was already powered - this is
// the rule a Slot relies on to prevent a card being inserted into two slots
// at once.
func (c *Card) PowerOn() bool {
	if c.poweredOn {
		return false
	}
	c.poweredOn = true
	c.flag = FlagInit
	c.state = stateIdle
	logger.Log("card", "powered on")
	return true
}

// PowerOff transitions the card to unpowered. Returns false if the card was
// already unpowered.
func (c *Card) PowerOff() bool {
	if !c.poweredOn {
		return false
	}
	c.poweredOn = false
	logger.Log("card", "powered off")
	return true
}

// Sector returns a non-owning view of the i'th sector of the backing store.
// It is a borrow into the same bytes the protocol engine reads and writes;
// callers must not retain it across a concurrent Transfer.
func (c *Card) Sector(i int) ([]byte, error) {
	if i < 0 || i >= SectorCount {
		return nil, curated.Errorf("card: sector index %d out of range [0,%d)", i, SectorCount)
	}
	return c.data[i*SectorSize : (i+1)*SectorSize], nil
}

// Block returns a non-owning view of the i'th block of the backing store.
func (c *Card) Block(i int) ([]byte, error) {
	if i < 0 || i >= BlockCount {
		return nil, curated.Errorf("card: block index %d out of range [0,%d)", i, BlockCount)
	}
	return c.data[i*BlockSize : (i+1)*BlockSize], nil
}

// Transfer executes one byte-level exchange with the card: command is the
// byte (or high impedance) presented by the host, ack reports whether the
// card expects another byte in this transaction, and data is the card's
// response for this same transfer.
func (c *Card) Transfer(command TriState) (ack bool, data TriState) {
	if !c.poweredOn {
		return false, Absent
	}

	switch c.state {
	case stateIdle:
		return c.idle(command)
	case stateAwaitingCommand:
		return c.awaitingCommand(command)
	case stateRead:
		return c.readSector(command)
	case stateWrite:
		return c.writeSector(command)
	case stateIdentify:
		return c.identify(command)
	default:
		return false, Absent
	}
}

func (c *Card) idle(command TriState) (bool, TriState) {
	if command.Equal(cmdFrameStart) {
		c.state = stateAwaitingCommand
		return true, Absent
	}
	return false, Absent
}

func (c *Card) awaitingCommand(command TriState) (bool, TriState) {
	data := Byte(c.flag)

	// a high-impedance command byte here resolves to 0x00, not 0xFF: an
	// absent command can never match a known command code, so it always
	// falls to the default (reject) case regardless of which fallback is
	// used, but 0x00 is what the protocol this engine models actually uses.
	switch command.Resolve(0x00) {
	case cmdReadSector:
		c.state = stateRead
		c.readState = readMemcardID1
		return true, data
	case cmdWriteSector:
		c.state = stateWrite
		c.writeState = writeMemcardID1
		return true, data
	case cmdIdentify:
		c.state = stateIdentify
		c.identifyState = identifyMemcardID1
		return true, data
	default:
		c.state = stateIdle
		return false, data
	}
}

func (c *Card) readSector(command TriState) (bool, TriState) {
	switch c.readState {
	case readMemcardID1:
		c.readState = readMemcardID2
		return true, Byte(memcardIDHi)
	case readMemcardID2:
		c.readState = readAddressMSB
		return true, Byte(memcardIDLo)
	case readAddressMSB:
		c.checksum = command.Resolve(0xFF)
		c.address = uint16(c.checksum) << 8
		c.readState = readAddressLSB
		return true, Byte(0x00)
	case readAddressLSB:
		lsb := command.Resolve(0xFF)
		c.address |= uint16(lsb)
		c.checksum ^= lsb
		if c.address > lastSector {
			c.address = poisonAddress
		}
		c.readState = readCommandAck1
		return true, Byte(0x00)
	case readCommandAck1:
		c.readState = readCommandAck2
		return true, Byte(commandAckHi)
	case readCommandAck2:
		c.readState = readConfirmAddressMSB
		return true, Byte(commandAckLo)
	case readConfirmAddressMSB:
		c.readState = readConfirmAddressLSB
		return true, Byte(byte(c.address >> 8))
	case readConfirmAddressLSB:
		lsb := byte(c.address & 0xFF)
		if c.address == poisonAddress {
			c.state = stateIdle
			logger.Log("card", "read sector: bad sector")
			return false, Byte(lsb)
		}
		c.readState = readDataSector
		c.byteCounter = 0
		return true, Byte(lsb)
	case readDataSector:
		sector, _ := c.Sector(int(c.address))
		b := sector[c.byteCounter]
		c.checksum ^= b
		c.byteCounter++
		if c.byteCounter == SectorSize {
			c.readState = readChecksum
		}
		return true, Byte(b)
	case readChecksum:
		c.readState = readEndByte
		return true, Byte(c.checksum)
	case readEndByte:
		c.state = stateIdle
		logger.Logf("card", "read sector %#04x: ok", c.address)
		return false, Byte(statusGood)
	default:
		c.state = stateIdle
		return false, Absent
	}
}

func (c *Card) writeSector(command TriState) (bool, TriState) {
	switch c.writeState {
	case writeMemcardID1:
		c.writeState = writeMemcardID2
		return true, Byte(memcardIDHi)
	case writeMemcardID2:
		c.writeState = writeAddressMSB
		return true, Byte(memcardIDLo)
	case writeAddressMSB:
		c.checksum = command.Resolve(0xFF)
		c.address = uint16(c.checksum) << 8
		c.writeState = writeAddressLSB
		return true, Byte(0x00)
	case writeAddressLSB:
		lsb := command.Resolve(0xFF)
		c.address |= uint16(lsb)
		c.checksum ^= lsb
		if c.address > lastSector {
			c.address = poisonAddress
		}
		c.byteCounter = 0
		c.writeState = writeDataSector
		return true, Byte(0x00)
	case writeDataSector:
		b := command.Resolve(0xFF)
		if c.address != poisonAddress {
			sector, _ := c.Sector(int(c.address))
			sector[c.byteCounter] = b
		}
		c.checksum ^= b
		c.byteCounter++
		if c.byteCounter == SectorSize {
			c.writeState = writeChecksum
		}
		return true, Byte(0x00)
	case writeChecksum:
		// an absent checksum byte resolves to 0xFF, like every other absent
		// input (a fully pulled-up bus).
		sent := command.Resolve(0xFF)
		c.checksumBad = sent != c.checksum
		c.writeState = writeCommandAck1
		return true, Byte(0x00)
	case writeCommandAck1:
		c.writeState = writeCommandAck2
		return true, Byte(commandAckHi)
	case writeCommandAck2:
		c.writeState = writeEndByte
		return true, Byte(commandAckLo)
	case writeEndByte:
		c.state = stateIdle
		switch {
		case c.address == poisonAddress:
			logger.Log("card", "write sector: bad sector")
			return false, Byte(statusBadSector)
		case c.checksumBad:
			logger.Logf("card", "write sector %#04x: bad checksum", c.address)
			return false, Byte(statusBadSum)
		default:
			logger.Logf("card", "write sector %#04x: ok", c.address)
			return false, Byte(statusGood)
		}
	default:
		c.state = stateIdle
		return false, Absent
	}
}

func (c *Card) identify(TriState) (bool, TriState) {
	switch c.identifyState {
	case identifyMemcardID1:
		c.identifyState = identifyMemcardID2
		return true, Byte(memcardIDHi)
	case identifyMemcardID2:
		c.identifyState = identifyCommandAck1
		return true, Byte(memcardIDLo)
	case identifyCommandAck1:
		c.identifyState = identifyCommandAck2
		return true, Byte(commandAckHi)
	case identifyCommandAck2:
		c.identifyState = identifyInfo1
		return true, Byte(commandAckLo)
	case identifyInfo1:
		c.identifyState = identifyInfo2
		return true, Byte(identifyPayload[0])
	case identifyInfo2:
		c.identifyState = identifyInfo3
		return true, Byte(identifyPayload[1])
	case identifyInfo3:
		c.identifyState = identifyInfo4
		return true, Byte(identifyPayload[2])
	case identifyInfo4:
		c.state = stateIdle
		return false, Byte(identifyPayload[3])
	default:
		c.state = stateIdle
		return false, Absent
	}
}
