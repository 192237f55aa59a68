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

package card_test

import (
	"testing"

	"github.com/saxbophone/wondercard/card"
)

func transferAndCheck(t *testing.T, c *card.Card, command card.TriState, wantAck bool, wantData card.TriState) {
	t.Helper()
	ack, data := c.Transfer(command)
	if ack != wantAck {
		t.Errorf("ack = %v, want %v", ack, wantAck)
	}
	if data != wantData {
		t.Errorf("data = %#v, want %#v", data, wantData)
	}
}

func TestPowerLifecycle(t *testing.T) {
	c := card.New()

	if !c.PowerOn() {
		t.Fatal("first power on should succeed")
	}
	if c.PowerOn() {
		t.Error("second consecutive power on should fail")
	}
	if !c.PowerOff() {
		t.Fatal("power off while powered should succeed")
	}
	if c.PowerOff() {
		t.Error("second consecutive power off should fail")
	}
	if !c.PowerOn() {
		t.Fatal("power on after power off should succeed")
	}
}

func TestUnpoweredTransferIsUnresponsive(t *testing.T) {
	c := card.New()
	for _, cmd := range []card.TriState{card.Absent, card.Byte(0x81), card.Byte(0x00)} {
		ack, data := c.Transfer(cmd)
		if ack {
			t.Errorf("unpowered card acked command %#v", cmd)
		}
		if data.Present() {
			t.Errorf("unpowered card responded with data to command %#v", cmd)
		}
	}
}

func TestFlagAfterFreshPowerOn(t *testing.T) {
	c := card.New()
	c.PowerOn()
	if c.Flag() != 0x08 {
		t.Errorf("flag = %#02x, want 0x08", c.Flag())
	}
}

func TestIdentify(t *testing.T) {
	c := card.New()
	c.PowerOn()

	commands := []card.TriState{
		card.Byte(0x81), card.Byte(0x53), card.Byte(0x00), card.Byte(0x00),
		card.Byte(0x00), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00),
		card.Byte(0x00), card.Byte(0x00),
	}
	wantData := []card.TriState{
		card.Absent, card.Byte(0x08), card.Byte(0x5A), card.Byte(0x5D),
		card.Byte(0x5C), card.Byte(0x5D), card.Byte(0x04), card.Byte(0x00),
		card.Byte(0x00), card.Byte(0x80),
	}
	wantAck := []bool{true, true, true, true, true, true, true, true, true, false}

	for i, cmd := range commands {
		transferAndCheck(t, c, cmd, wantAck[i], wantData[i])
	}
}

func TestReadValidEmptySector(t *testing.T) {
	c := card.New()
	c.PowerOn()

	header := []card.TriState{
		card.Byte(0x81), card.Byte(0x52), card.Byte(0x00), card.Byte(0x00),
		card.Byte(0x01), card.Byte(0x15), card.Byte(0x00), card.Byte(0x00),
	}
	wantHeaderData := []card.TriState{
		card.Absent, card.Byte(0x08), card.Byte(0x5A), card.Byte(0x5D),
		card.Byte(0x00), card.Byte(0x00), card.Byte(0x5C), card.Byte(0x5D),
	}
	for i, cmd := range header {
		transferAndCheck(t, c, cmd, true, wantHeaderData[i])
	}

	transferAndCheck(t, c, card.Byte(0x00), true, card.Byte(0x01))
	transferAndCheck(t, c, card.Byte(0x00), true, card.Byte(0x15))

	for i := 0; i < 128; i++ {
		transferAndCheck(t, c, card.Byte(0x00), true, card.Byte(0x00))
	}

	transferAndCheck(t, c, card.Byte(0x00), true, card.Byte(0x01^0x15))
	transferAndCheck(t, c, card.Byte(0x00), false, card.Byte(0x47))
}

func TestReadInvalidSector(t *testing.T) {
	c := card.New()
	c.PowerOn()

	commands := []card.TriState{
		card.Byte(0x81), card.Byte(0x52), card.Byte(0x00), card.Byte(0x00),
		card.Byte(0x05), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00),
		card.Byte(0x00),
	}
	wantData := []card.TriState{
		card.Absent, card.Byte(0x08), card.Byte(0x5A), card.Byte(0x5D),
		card.Byte(0x00), card.Byte(0x00), card.Byte(0x5C), card.Byte(0x5D),
		card.Byte(0xFF),
	}
	wantAck := []bool{true, true, true, true, true, true, true, true, true}

	for i, cmd := range commands {
		transferAndCheck(t, c, cmd, wantAck[i], wantData[i])
	}
	// byte 9: the terminating confirmed-LSB response, which does not ACK
	transferAndCheck(t, c, card.Byte(0x00), false, card.Byte(0xFF))
}

func TestGoodWriteThenRead(t *testing.T) {
	c := card.New()
	c.PowerOn()

	var want [128]byte
	for i := range want {
		want[i] = byte(i*7 + 3)
	}

	header := []card.TriState{card.Byte(0x81), card.Byte(0x57), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00)}
	for _, cmd := range header {
		ack, _ := c.Transfer(cmd)
		if !ack {
			t.Fatalf("expected ack for header byte %#v", cmd)
		}
	}

	checksum := byte(0)
	for _, b := range want {
		ack, _ := c.Transfer(card.Byte(b))
		if !ack {
			t.Fatalf("expected ack for data byte")
		}
		checksum ^= b
	}

	ack, _ := c.Transfer(card.Byte(checksum))
	if !ack {
		t.Fatal("expected ack for checksum byte")
	}

	trailer := []card.TriState{card.Byte(0x00), card.Byte(0x00)}
	for _, cmd := range trailer {
		ack, data := c.Transfer(cmd)
		if !ack {
			t.Fatal("expected ack in command-ack trailer")
		}
		_ = data
	}

	ack, data := c.Transfer(card.Byte(0x00))
	if ack {
		t.Error("final write response should not ack")
	}
	if !data.Equal(0x47) {
		t.Errorf("end status = %#v, want 0x47", data)
	}

	sector, err := c.Sector(0)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if sector[i] != want[i] {
			t.Fatalf("sector[%d] = %#02x, want %#02x", i, sector[i], want[i])
		}
	}
}

func TestBadChecksumWrite(t *testing.T) {
	c := card.New()
	c.PowerOn()

	for _, cmd := range []card.TriState{card.Byte(0x81), card.Byte(0x57), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00), card.Byte(0x00)} {
		c.Transfer(cmd)
	}

	checksum := byte(0)
	for i := 0; i < 128; i++ {
		c.Transfer(card.Byte(0x00))
		checksum ^= 0x00
	}

	c.Transfer(card.Byte(^checksum)) // deliberately wrong
	c.Transfer(card.Byte(0x00))
	c.Transfer(card.Byte(0x00))
	ack, data := c.Transfer(card.Byte(0x00))

	if ack {
		t.Error("final write response should not ack")
	}
	if !data.Equal(0x4E) {
		t.Errorf("end status = %#v, want 0x4E (bad checksum)", data)
	}
}

func TestBadSectorWriteTakesPrecedenceOverBadChecksum(t *testing.T) {
	c := card.New()
	c.PowerOn()

	for _, cmd := range []card.TriState{card.Byte(0x81), card.Byte(0x57), card.Byte(0x00), card.Byte(0x00), card.Byte(0x05), card.Byte(0x00)} {
		c.Transfer(cmd)
	}
	for i := 0; i < 128; i++ {
		c.Transfer(card.Byte(0x00))
	}
	c.Transfer(card.Byte(0x00)) // deliberately wrong checksum too
	c.Transfer(card.Byte(0x00))
	c.Transfer(card.Byte(0x00))
	ack, data := c.Transfer(card.Byte(0x00))

	if ack {
		t.Error("final write response should not ack")
	}
	if !data.Equal(0xFF) {
		t.Errorf("end status = %#v, want 0xFF (bad sector)", data)
	}
}

func TestSectorAndBlockBoundsChecked(t *testing.T) {
	c := card.New()
	if _, err := c.Sector(card.SectorCount); err == nil {
		t.Error("expected error for out-of-range sector index")
	}
	if _, err := c.Block(card.BlockCount); err == nil {
		t.Error("expected error for out-of-range block index")
	}
}

func TestNewFromDataRejectsWrongLength(t *testing.T) {
	if _, err := card.NewFromData(make([]byte, card.Size-1)); err == nil {
		t.Error("expected error for undersized backing store")
	}
}
