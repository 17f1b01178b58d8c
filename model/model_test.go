package model

import (
	"encoding/binary"
	"testing"
)

// buildHeader packs a 52-byte header following the byte layout grounded in
// original_source/jtn64/model.py (see header.go's headerSize comment).
func buildHeader(geometryLayout, textureSetup uint32, geoType uint16, displayList, vertexStore uint32, triCount, vertCount uint16) []byte {
	b := make([]byte, headerSize)
	binary.BigEndian.PutUint32(b[0x00:], magic)
	binary.BigEndian.PutUint32(b[0x04:], geometryLayout)
	binary.BigEndian.PutUint16(b[0x08:], uint16(textureSetup))
	binary.BigEndian.PutUint16(b[0x0A:], geoType)
	binary.BigEndian.PutUint32(b[0x0C:], displayList)
	binary.BigEndian.PutUint32(b[0x10:], vertexStore)
	binary.BigEndian.PutUint16(b[0x30:], triCount)
	binary.BigEndian.PutUint16(b[0x32:], vertCount)
	return b
}

func TestParseHeaderSynthetic(t *testing.T) {
	b := buildHeader(100, 101, 0, 102, 103, 900, 45)

	h, err := parseHeader(b)
	if err != nil {
		t.Fatal(err)
	}

	if h.GeometryLayoutOffset != 100 {
		t.Errorf("GeometryLayoutOffset: have %d, want 100", h.GeometryLayoutOffset)
	}
	if h.TextureSetupOffset != 101 {
		t.Errorf("TextureSetupOffset: have %d, want 101", h.TextureSetupOffset)
	}
	if h.DisplayListOffset != 102 {
		t.Errorf("DisplayListOffset: have %d, want 102", h.DisplayListOffset)
	}
	if h.VertexStoreOffset != 103 {
		t.Errorf("VertexStoreOffset: have %d, want 103", h.VertexStoreOffset)
	}
	if h.TriCount != 900 {
		t.Errorf("TriCount: have %d, want 900", h.TriCount)
	}
	if h.VertCount != 45 {
		t.Errorf("VertCount: have %d, want 45", h.VertCount)
	}
}

func TestParseHeaderInvalidMagic(t *testing.T) {
	b := buildHeader(0, 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint32(b[0:4], 0xDEADBEEF)

	if _, err := parseHeader(b); err != ErrInvalidMagic {
		t.Fatalf("have %v, want ErrInvalidMagic", err)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	b := buildHeader(0, 0, 0, 0, 0, 0, 0)
	if _, err := parseHeader(b[:headerSize-1]); err != ErrTruncated {
		t.Fatalf("have %v, want ErrTruncated", err)
	}
}

func TestParseTextureSetupSortsByOffset(t *testing.T) {
	// Three subheaders, deliberately out of order in the file, with
	// types that need no pixel data (unmodeled) so we can focus on
	// ordering.
	const texSetupOff = 0
	subs := []struct {
		offset uint32
		typ    uint16
	}{
		{0x80, 99}, {0x00, 99}, {0xD0, 99},
	}
	buf := make([]byte, 8+len(subs)*subHeaderSize)
	binary.BigEndian.PutUint16(buf[4:6], uint16(len(subs)))
	for i, s := range subs {
		b := buf[8+i*subHeaderSize:]
		binary.BigEndian.PutUint32(b[0:4], s.offset)
		binary.BigEndian.PutUint16(b[4:6], s.typ)
	}

	textures, err := parseTextureSetup(buf, texSetupOff)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0x00, 0x80, 0xD0}
	for i, w := range want {
		if textures[i].SegmentOffset != w {
			t.Errorf("textures[%d].SegmentOffset: have %#x, want %#x", i, textures[i].SegmentOffset, w)
		}
	}
}

func TestParseVertexStoreUnhalvedCount(t *testing.T) {
	const n = 3
	buf := make([]byte, vertexStoreDataOffset+n*vertexSize)
	binary.BigEndian.PutUint16(buf[vertexStoreCountOffset:], n)
	for i := 0; i < n; i++ {
		b := buf[vertexStoreDataOffset+i*vertexSize:]
		binary.BigEndian.PutUint16(b[0:2], uint16(int16(i*10)))
	}

	verts, err := parseVertexStore(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(verts) != n {
		t.Fatalf("have %d vertices, want %d (unhalved)", len(verts), n)
	}
}

func TestParseDisplayListUnknownOpcodeIgnored(t *testing.T) {
	buf := make([]byte, 8+2*commandSize)
	binary.BigEndian.PutUint32(buf[0:4], 2)
	// Command 0: unrecognized opcode.
	buf[8] = 0xEE
	// Command 1: G_TRI1 v1=0,v2=2,v3=4 (raw bytes 0,2,4 -> /2 -> 0,1,2)
	w := buf[8+commandSize:]
	w[0] = byte(OpTri1)
	w[5], w[6], w[7] = 0, 2, 4

	cmds, err := parseDisplayList(buf, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 1 {
		t.Fatalf("have %d commands, want 1 (unknown opcode must be dropped)", len(cmds))
	}
	if cmds[0].Op != OpTri1 || cmds[0].V1 != 0 || cmds[0].V2 != 1 || cmds[0].V3 != 2 {
		t.Fatalf("have %+v", cmds[0])
	}
}
