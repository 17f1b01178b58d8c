// Package cartridge scans a big-endian cartridge image for magic-marked
// compressed model containers and inflates them, per spec.md §4.4. The
// scanner is deliberately promiscuous: the 2-byte magic tag produces false
// positives throughout a multi-megabyte image, and every per-blob failure
// (oversized declared length, bad deflate stream, bad model magic after
// inflation) is swallowed so the scan continues — only a genuine model
// is yielded.
package cartridge

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"

	"github.com/n64dev/modelkit/model"
)

// magicHi, magicLo are the two bytes that open a compressed blob.
const (
	magicHi = 0x11
	magicLo = 0x72
)

// maxBlobSize is the declared-size ceiling above which a candidate blob is
// skipped without attempting inflation (spec.md §3).
const maxBlobSize = 5 * 1024 * 1024

// Found is one discovered model: its byte offset in the cartridge and its
// inflated container bytes.
type Found struct {
	Offset int
	Data   []byte
}

// FindModels scans cartridge for compressed model containers and returns
// every one that inflates successfully and parses with the model magic at
// offset 0. The scan is forward-only; overlapping candidate blobs are
// independently attempted, per spec.md §4.4.
func FindModels(cartridge []byte) []Found {
	var found []Found

	for i := 0; i+17 <= len(cartridge); i++ {
		if cartridge[i] != magicHi || cartridge[i+1] != magicLo {
			continue
		}

		size := binary.BigEndian.Uint32(cartridge[i+2 : i+6])
		if size > maxBlobSize {
			continue
		}

		end := i + int(size)
		if end > len(cartridge) || end < i+6 {
			continue
		}

		inflated, err := inflate(cartridge[i+6 : end])
		if err != nil {
			continue
		}

		if !looksLikeModel(inflated) {
			continue
		}

		found = append(found, Found{Offset: i, Data: inflated})
	}

	return found
}

// inflate decodes a raw DEFLATE stream (no zlib header), per spec.md §3.
func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}

// looksLikeModel reports whether data begins with the model container
// magic, without fully parsing it — FindModels only needs to distinguish
// a genuine hit from deflate noise that happened to inflate cleanly.
func looksLikeModel(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return binary.BigEndian.Uint32(data[0:4]) == 0x0000000B
}

// ParseFound fully parses a Found model's container, surfacing the
// structural errors model.Parse defines (InvalidMagic, TruncatedInput).
func ParseFound(f Found) (*model.Model, error) {
	return model.Parse(f.Data)
}
