package model

import "encoding/binary"

// uvScale converts a raw signed Q-format UV component to a float, per
// spec.md §3: the hardware-documented shift (6 bits) produces values that
// look wrong for this title; the empirically-correct scale is 1/4096
// (2^12). Preserved as specified, not "corrected" to the documented shift.
const uvScale = 1.0 / 4096.0

// Vertex is a single vertex-store record, per spec.md §3.
type Vertex struct {
	X, Y, Z    int16
	Flag       uint16
	U, V       float32
	R, G, B, A uint8
}

const vertexSize = 16

func parseVertex(b []byte) Vertex {
	return Vertex{
		X:    int16(binary.BigEndian.Uint16(b[0:2])),
		Y:    int16(binary.BigEndian.Uint16(b[2:4])),
		Z:    int16(binary.BigEndian.Uint16(b[4:6])),
		Flag: binary.BigEndian.Uint16(b[6:8]),
		U:    float32(int16(binary.BigEndian.Uint16(b[8:10]))) * uvScale,
		V:    float32(int16(binary.BigEndian.Uint16(b[10:12]))) * uvScale,
		R:    b[12],
		G:    b[13],
		B:    b[14],
		A:    b[15],
	}
}

// vertexStoreCountOffset is the byte offset, within the vertex store
// setup section, of the doubled vertex-count field (decimal 22 / 0x16 per
// spec.md §3).
const vertexStoreCountOffset = 0x16

// vertexStoreDataOffset is where the vertex array begins.
const vertexStoreDataOffset = 0x18

func parseVertexStore(data []byte, vertexStoreOffset int) ([]Vertex, error) {
	if vertexStoreOffset+vertexStoreCountOffset+2 > len(data) {
		return nil, ErrTruncated
	}
	store := data[vertexStoreOffset:]

	// The field is the vertex count doubled in one historical parse
	// path and halved in another; spec.md §9 resolves this in favor of
	// the unhalved count, which the interpreter's index arithmetic
	// (load_address/16) also assumes.
	count := int(binary.BigEndian.Uint16(store[vertexStoreCountOffset : vertexStoreCountOffset+2]))

	need := vertexStoreDataOffset + count*vertexSize
	if need > len(store) {
		return nil, ErrTruncated
	}

	verts := make([]Vertex, count)
	for i := 0; i < count; i++ {
		b := store[vertexStoreDataOffset+i*vertexSize : vertexStoreDataOffset+(i+1)*vertexSize]
		verts[i] = parseVertex(b)
	}
	return verts, nil
}
