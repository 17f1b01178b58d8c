package cartridge

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"math/rand"
	"testing"
)

func deflateRaw(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// buildBlob assembles a 0x11 0x72-tagged compressed blob around container.
func buildBlob(t *testing.T, container []byte) []byte {
	t.Helper()
	payload := deflateRaw(t, container)
	blob := make([]byte, 6+len(payload))
	blob[0], blob[1] = magicHi, magicLo
	binary.BigEndian.PutUint32(blob[2:6], uint32(len(blob)))
	copy(blob[6:], payload)
	return blob
}

// minimalContainer builds the smallest buffer that passes looksLikeModel.
func minimalContainer() []byte {
	b := make([]byte, 60)
	binary.BigEndian.PutUint32(b[0:4], 0x0000000B)
	return b
}

func TestFindModelsRejectsJunk(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 1<<20)
	rng.Read(data)

	// Plant one genuine blob at a known offset.
	const plantOffset = 0x3000
	blob := buildBlob(t, minimalContainer())
	copy(data[plantOffset:], blob)

	// Sprinkle extra 0x11 0x72 false-positive markers elsewhere.
	for _, off := range []int{0x1000, 0x2000, 0x50000, 0x90000} {
		data[off], data[off+1] = magicHi, magicLo
		binary.BigEndian.PutUint32(data[off+2:off+6], 40) // plausible size, garbage payload
	}

	found := FindModels(data)
	if len(found) != 1 {
		t.Fatalf("have %d models, want 1 (got offsets: %v)", len(found), offsetsOf(found))
	}
	if found[0].Offset != plantOffset {
		t.Fatalf("have offset %#x, want %#x", found[0].Offset, plantOffset)
	}
}

func offsetsOf(found []Found) []int {
	out := make([]int, len(found))
	for i, f := range found {
		out[i] = f.Offset
	}
	return out
}

func TestFindModelsSkipsOversizedBlob(t *testing.T) {
	data := make([]byte, 64)
	data[0], data[1] = magicHi, magicLo
	binary.BigEndian.PutUint32(data[2:6], maxBlobSize+1)

	if found := FindModels(data); len(found) != 0 {
		t.Fatalf("have %d models, want 0", len(found))
	}
}

func TestFindStrings(t *testing.T) {
	data := []byte("\x00\x00HELLO\x00\x00world test\x01\x02abc")
	got := FindStrings(data)
	want := []string{"HELLO", "world test"}
	if len(got) != len(want) {
		t.Fatalf("have %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("have %v, want %v", got, want)
		}
	}
}
