package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/n64dev/modelkit/cartridge"
)

// runDumpModels implements `modelkit dump-models [-out dir] <rom>`: it
// scans the cartridge image for compressed model containers and writes
// the inflated bytes of each one found, named by its cartridge offset.
func runDumpModels(args []string) error {
	fs := flag.NewFlagSet("dump-models", flag.ExitOnError)
	out := outFlag(fs, "models")
	verbose := fs.Bool("v", false, "also print readable string runs near each model")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("dump-models: expected <rom>, got %d args", fs.NArg())
	}
	rom := fs.Arg(0)

	data, err := os.ReadFile(rom)
	if err != nil {
		return fmt.Errorf("dump-models: reading %s: %w", rom, err)
	}

	found := cartridge.FindModels(data)
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("dump-models: creating %s: %w", *out, err)
	}

	for _, f := range found {
		name := filepath.Join(*out, fmt.Sprintf("model_%#08x.bin", f.Offset))
		if err := os.WriteFile(name, f.Data, 0o644); err != nil {
			return fmt.Errorf("dump-models: writing %s: %w", name, err)
		}
		log.Printf("wrote %s (%d bytes)", name, len(f.Data))

		if *verbose {
			for _, s := range cartridge.FindStrings(f.Data) {
				log.Printf("  string near %#08x: %q", f.Offset, s)
			}
		}
	}

	log.Printf("found %d model(s) in %s", len(found), rom)
	return nil
}
