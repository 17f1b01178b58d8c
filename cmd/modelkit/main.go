// Command modelkit is the CLI front-end for the model-extraction core: it
// drives the cartridge scanner, container parser, display-list
// interpreter, and export adapters, and owns all filesystem I/O. Library
// packages never log; this is the only place that calls log.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "dump-models":
		err = runDumpModels(os.Args[2:])
	case "dump-model-textures":
		err = runDumpModelTextures(os.Args[2:])
	case "dump-model-gltf":
		err = runDumpModelGLTF(os.Args[2:])
	case "convert-all-models":
		err = runConvertAllModels(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "modelkit:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  modelkit dump-models [-out dir] <rom>
  modelkit dump-model-textures [-out dir] <model>
  modelkit dump-model-gltf [-out dir] <model...>
  modelkit convert-all-models [-out dir] <dir>`)
}

func outFlag(fs *flag.FlagSet, def string) *string {
	return fs.String("out", def, "output directory")
}
