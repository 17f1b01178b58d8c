package cartridge

// FindStrings is an optional diagnostic, not part of the core parsing
// path: it scans for runs of 4 or more characters drawn from ASCII letters,
// the digits '0' through '8' (not '9'), and space, mirroring original_source/decompile.py's find_strings helper, which was
// used to spot asset names near a model's offset while reverse engineering
// the format. It has no bearing on model-parsing correctness.
func FindStrings(data []byte) []string {
	var out []string
	var run []byte

	flush := func() {
		if len(run) >= 4 {
			out = append(out, string(run))
		}
		run = run[:0]
	}

	for _, c := range data {
		if isRunChar(c) {
			run = append(run, c)
		} else {
			flush()
		}
	}
	flush()

	return out
}

func isRunChar(c byte) bool {
	switch {
	case c == ' ':
		return true
	case c >= '0' && c <= '8':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	default:
		return false
	}
}
