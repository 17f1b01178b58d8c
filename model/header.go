// Package model parses a decompressed model container: the fixed-offset
// header, texture table, display-list program, and vertex store described
// in spec.md §3-§4.3. Parsing is pure — no I/O, no global state — and
// strict on structural invariants (magic, length) while tolerant of
// semantic gaps (unknown opcodes, unknown texture types), per spec.md §4.3.
package model

import (
	"encoding/binary"
	"fmt"
)

// magic is the required first u32 of a valid container.
const magic = 0x0000000B

// headerSize is the minimum container length: the fixed header ends at
// offset 0x34, immediately after vert_count (see the Open Question
// resolution in DESIGN.md — the authoritative byte layout follows
// original_source/jtn64/model.py's struct format, under which tri_count
// and vert_count land two bytes earlier than spec.md's prose table
// states, and which alone is consistent with the "reject length < 52"
// rule).
const headerSize = 0x34

// ErrInvalidMagic is returned when a container's first four bytes are not
// the model magic 0x0000000B.
var ErrInvalidMagic = fmt.Errorf("model: invalid magic byte")

// ErrTruncated is returned when a fixed-offset read exceeds the buffer.
var ErrTruncated = fmt.Errorf("model: truncated input")

// Header holds the fixed-offset fields of a model container, per spec.md §3.
// Offsets that spec.md marks unused are still carried here verbatim: they
// are cross-references a complete reader may someday want (animation,
// collision, geometry layout), even though this module's core never
// dereferences them.
type Header struct {
	GeometryLayoutOffset  uint32
	TextureSetupOffset    uint16
	GeometryType          uint16
	DisplayListOffset     uint32
	VertexStoreOffset     uint32
	AnimationSetupOffset  uint32
	CollisionSetupOffset  uint32
	TriCount              uint16
	VertCount             uint16
}

// parseHeader decodes the fixed-offset header fields from data, which must
// be the full container starting at offset 0.
func parseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, ErrTruncated
	}

	if binary.BigEndian.Uint32(data[0x00:]) != magic {
		return Header{}, ErrInvalidMagic
	}

	h := Header{
		GeometryLayoutOffset: binary.BigEndian.Uint32(data[0x04:]),
		TextureSetupOffset:   binary.BigEndian.Uint16(data[0x08:]),
		GeometryType:         binary.BigEndian.Uint16(data[0x0A:]),
		DisplayListOffset:    binary.BigEndian.Uint32(data[0x0C:]),
		VertexStoreOffset:    binary.BigEndian.Uint32(data[0x10:]),
		AnimationSetupOffset: binary.BigEndian.Uint32(data[0x18:]),
		CollisionSetupOffset: binary.BigEndian.Uint32(data[0x1C:]),
		TriCount:             binary.BigEndian.Uint16(data[0x30:]),
		VertCount:            binary.BigEndian.Uint16(data[0x32:]),
	}

	return h, nil
}
