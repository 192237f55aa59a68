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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/saxbophone/wondercard/card"
	"github.com/saxbophone/wondercard/cardimage"
	"github.com/saxbophone/wondercard/config"
	"github.com/saxbophone/wondercard/logger"
	"github.com/saxbophone/wondercard/modalflag"
	"github.com/saxbophone/wondercard/slot"
	"github.com/saxbophone/wondercard/statsview"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("MKIMAGE", "SERVE", "DD", "REPL")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "MKIMAGE":
		err = mkimage(md)
	case "SERVE":
		err = serve(md)
	case "DD":
		err = dd(md)
	case "REPL":
		err = repl(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

func mkimage(md *modalflag.Modes) error {
	md.NewMode()
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("mkimage requires exactly one path argument")
	}

	_, err = cardimage.Create(md.GetArg(0))
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", md.GetArg(0))
	return nil
}

// openSlots opens a Slot, backed by its configured card image, for every
// entry in cfg. The returned slots map is keyed by slot name; the
// returned images map records each slot's image path for later saving.
func openSlots(cfg *config.Config) (map[string]*slot.Slot, map[string]string, error) {
	slots := make(map[string]*slot.Slot, len(cfg.Slots))
	images := make(map[string]string, len(cfg.Slots))

	for _, sc := range cfg.Slots {
		var data []byte
		var err error
		if sc.CreateIfMissing {
			data, err = cardimage.LoadOrCreate(sc.Image)
		} else {
			data, err = cardimage.Load(sc.Image)
		}
		if err != nil {
			return nil, nil, err
		}

		c, err := card.NewFromData(data)
		if err != nil {
			return nil, nil, err
		}

		s := slot.New(sc.Name, sc.ReadOnly)
		if err := s.InsertCard(c); err != nil {
			return nil, nil, err
		}

		slots[sc.Name] = s
		images[sc.Name] = sc.Image
	}
	return slots, images, nil
}

// saveSlot persists the card backing s back to path, unless s is read-only.
func saveSlot(s *slot.Slot, path string) error {
	if s.ReadOnly() {
		return nil
	}
	data, err := s.ReadCard()
	if err != nil {
		return err
	}
	return cardimage.Save(path, data)
}

func serve(md *modalflag.Modes) error {
	md.NewMode()
	configPath := md.AddString("config", "", "path to the server's YAML configuration")
	dashboard := md.AddBool("dashboard", false, "launch the live stats dashboard")
	log := md.AddBool("log", false, "echo the log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *configPath == "" {
		return fmt.Errorf("serve requires -config")
	}
	if *log {
		logger.SetEcho(os.Stdout)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	slots, images, err := openSlots(cfg)
	if err != nil {
		return err
	}

	if *dashboard {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("! dashboard requested but this build was compiled without the statsview tag")
		}
	}

	for name := range slots {
		fmt.Printf("slot %q serving %s\n", name, images[name])
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt

	fmt.Println("\nshutting down, saving slots...")
	for name, s := range slots {
		if err := saveSlot(s, images[name]); err != nil {
			fmt.Printf("* error saving slot %q: %v\n", name, err)
		}
	}
	return nil
}

func dd(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("READ", "WRITE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	md.NewMode()
	configPath := md.AddString("config", "", "path to the server's YAML configuration")
	slotName := md.AddString("slot", "", "name of the slot to operate on")
	sector := md.AddInt("sector", -1, "sector index to read or write")
	block := md.AddInt("block", -1, "block index to read or write")
	wholeCard := md.AddBool("card", false, "operate on the whole card")
	file := md.AddString("file", "", "file to read from (write) or write to (read)")

	p, err = md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *configPath == "" || *slotName == "" || *file == "" {
		return fmt.Errorf("dd requires -config, -slot and -file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	slots, images, err := openSlots(cfg)
	if err != nil {
		return err
	}
	s, ok := slots[*slotName]
	if !ok {
		return fmt.Errorf("no such slot %q", *slotName)
	}

	switch md.Mode() {
	case "READ":
		data, err := ddRead(s, *sector, *block, *wholeCard)
		if err != nil {
			return err
		}
		return os.WriteFile(*file, data, 0o644)
	case "WRITE":
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		if err := ddWrite(s, *sector, *block, *wholeCard, data); err != nil {
			return err
		}
		return saveSlot(s, images[*slotName])
	}
	return nil
}

func ddRead(s *slot.Slot, sector, block int, wholeCard bool) ([]byte, error) {
	switch {
	case wholeCard:
		return s.ReadCard()
	case block >= 0:
		return s.ReadBlock(block)
	case sector >= 0:
		return s.ReadSector(sector)
	default:
		return nil, fmt.Errorf("dd requires one of -sector, -block or -card")
	}
}

func ddWrite(s *slot.Slot, sector, block int, wholeCard bool, data []byte) error {
	switch {
	case wholeCard:
		return s.WriteCard(data)
	case block >= 0:
		return s.WriteBlock(block, data)
	case sector >= 0:
		return s.WriteSector(sector, data)
	default:
		return fmt.Errorf("dd requires one of -sector, -block or -card")
	}
}

func repl(md *modalflag.Modes) error {
	md.NewMode()
	configPath := md.AddString("config", "", "path to the server's YAML configuration")
	slotName := md.AddString("slot", "", "name of the slot to operate on")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if *configPath == "" || *slotName == "" {
		return fmt.Errorf("repl requires -config and -slot")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	slots, images, err := openSlots(cfg)
	if err != nil {
		return err
	}
	s, ok := slots[*slotName]
	if !ok {
		return fmt.Errorf("no such slot %q", *slotName)
	}

	return runREPL(s, images[*slotName])
}
