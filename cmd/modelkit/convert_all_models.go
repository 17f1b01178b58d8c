package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// runConvertAllModels implements `modelkit convert-all-models [-out dir]
// <dir>`: every regular file in dir is treated as an already-inflated
// model container (e.g. the output of dump-models) and exported to glTF,
// reusing the same bounded worker pool as dump-model-gltf.
func runConvertAllModels(args []string) error {
	fs := flag.NewFlagSet("convert-all-models", flag.ExitOnError)
	out := outFlag(fs, "gltf")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("convert-all-models: expected <dir>, got %d args", fs.NArg())
	}
	dir := fs.Arg(0)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("convert-all-models: reading %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return fmt.Errorf("convert-all-models: no files found in %s", dir)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("convert-all-models: creating %s: %w", *out, err)
	}

	return exportModelsConcurrently(paths, *out)
}
