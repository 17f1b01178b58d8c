package model

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/n64dev/modelkit/texture"
)

// ErrTruncatedTexture is returned when a texture subheader's computed pixel
// data slice overruns the container, per spec.md §7.
var ErrTruncatedTexture = fmt.Errorf("model: truncated texture data")

// TextureSubHeader describes one texture within the texture table.
type TextureSubHeader struct {
	SegmentOffset uint32
	Type          texture.Type
	Width         int
	Height        int
}

// Texture pairs a subheader with its raw pixel bytes (not yet
// converted to RGBA — texture.Decode does that, component B).
type Texture struct {
	TextureSubHeader
	Data []byte // raw bytes; empty for an unmodeled type
}

const subHeaderSize = 16

func parseTextureSetup(data []byte, textureSetupOffset int) ([]Texture, error) {
	if textureSetupOffset+8 > len(data) {
		return nil, ErrTruncated
	}
	setup := data[textureSetupOffset:]

	count := int(binary.BigEndian.Uint16(setup[4:6]))
	if 8+count*subHeaderSize > len(setup) {
		return nil, ErrTruncated
	}

	subs := make([]TextureSubHeader, count)
	for i := 0; i < count; i++ {
		b := setup[8+i*subHeaderSize : 8+(i+1)*subHeaderSize]
		subs[i] = TextureSubHeader{
			SegmentOffset: binary.BigEndian.Uint32(b[0:4]),
			Type:          texture.Type(binary.BigEndian.Uint16(b[4:6])),
			Width:         int(b[8]),
			Height:        int(b[9]),
		}
	}

	// Invariant: the subheader sequence is sorted nondecreasing by
	// segment offset (spec.md §8 invariant 2).
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].SegmentOffset < subs[j].SegmentOffset
	})

	textures := make([]Texture, count)
	pixelBase := textureSetupOffset + 8 + count*subHeaderSize
	for i, sub := range subs {
		t := Texture{TextureSubHeader: sub}

		n, ok := texture.DataLength(sub.Type, sub.Width, sub.Height)
		if !ok {
			// UnknownTextureType: produce an entry with empty data
			// rather than aborting (spec.md §7).
			textures[i] = t
			continue
		}

		start := pixelBase + int(sub.SegmentOffset)
		end := start + n
		if start < 0 || end > len(data) || start > end {
			return nil, ErrTruncatedTexture
		}
		t.Data = data[start:end]
		textures[i] = t
	}

	return textures, nil
}

// Offsets returns the sorted segment offsets of ts, suitable for
// texture.FindNearest.
func Offsets(ts []Texture) []uint32 {
	out := make([]uint32, len(ts))
	for i, t := range ts {
		out[i] = t.SegmentOffset
	}
	return out
}
