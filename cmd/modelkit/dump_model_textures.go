package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/n64dev/modelkit/export"
	"github.com/n64dev/modelkit/model"
	"github.com/n64dev/modelkit/texture"
)

// runDumpModelTextures implements `modelkit dump-model-textures [-out dir]
// <model>`: it parses one already-inflated model container and writes
// one RGBA PNG per texture, row 0 = top.
func runDumpModelTextures(args []string) error {
	fs := flag.NewFlagSet("dump-model-textures", flag.ExitOnError)
	out := outFlag(fs, "textures")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("dump-model-textures: expected <model>, got %d args", fs.NArg())
	}

	m, err := parseModelFile(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("dump-model-textures: creating %s: %w", *out, err)
	}

	base := stripExt(filepath.Base(fs.Arg(0)))
	for i, t := range m.Textures {
		colors, err := texture.Decode(t.Type, t.Width, t.Height, t.Data)
		if err != nil {
			return fmt.Errorf("dump-model-textures: decoding texture %d: %w", i, err)
		}
		if len(colors) == 0 {
			log.Printf("skipping texture %d: unmodeled type %s", i, t.Type)
			continue
		}

		png, err := export.EncodePNG(colors, t.Width, t.Height)
		if err != nil {
			return fmt.Errorf("dump-model-textures: encoding texture %d: %w", i, err)
		}

		name := filepath.Join(*out, fmt.Sprintf("%s_tex%d.png", base, i))
		if err := os.WriteFile(name, png, 0o644); err != nil {
			return fmt.Errorf("dump-model-textures: writing %s: %w", name, err)
		}
		log.Printf("wrote %s", name)
	}

	return nil
}

func parseModelFile(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := model.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func stripExt(name string) string {
	if ext := filepath.Ext(name); ext != "" {
		return name[:len(name)-len(ext)]
	}
	return name
}
