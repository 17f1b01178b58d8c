package model

import "encoding/binary"

// Opcode identifies a recognized display-list command, per spec.md §4.5.
// Words whose opcode is outside this set produce no Command at all —
// parseDisplayList drops them, matching spec.md §4.3's "unknown opcodes are
// ignored, not an error." The parser never produces OpOther.
type Opcode byte

// Recognized opcodes (spec.md GLOSSARY / §4.5).
const (
	OpVtx     Opcode = 0x04
	OpTri2    Opcode = 0xB1
	OpTexture Opcode = 0xBB
	OpTri1    Opcode = 0xBF
	OpSetTImg Opcode = 0xFD
	OpOther   Opcode = 0x00 // sentinel; never a real recognized opcode value
)

// Command is a tagged display-list word. Exactly one of the payload
// fields is meaningful, selected by Op.
type Command struct {
	Op Opcode

	// OpVtx
	WriteStart    uint8
	VertsToWrite  int
	VertDataLen   int
	LoadAddress   uint32

	// OpTri1 / OpTri2 (OpTri2 uses all six; OpTri1 uses only the first three)
	V1, V2, V3, V4, V5, V6 int

	// OpTexture
	ScaleS, ScaleT float32

	// OpSetTImg
	TextureFormat  uint8
	TextureBitSize uint8
	SegmentAddress uint32
}

const commandSize = 8

// parseDisplayList decodes the command_count-prefixed word stream at
// displayListOffset. Words whose opcode byte isn't one of the recognized
// set are skipped entirely — they produce no Command — per spec.md §4.3.
func parseDisplayList(data []byte, displayListOffset int) ([]Command, error) {
	if displayListOffset+4 > len(data) {
		return nil, ErrTruncated
	}
	dl := data[displayListOffset:]

	count := int(binary.BigEndian.Uint32(dl[0:4]))
	need := 8 + count*commandSize
	if need > len(dl) {
		return nil, ErrTruncated
	}

	cmds := make([]Command, 0, count)
	for i := 0; i < count; i++ {
		w := dl[8+i*commandSize : 8+(i+1)*commandSize]
		if c, ok := parseCommand(w); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds, nil
}

func parseCommand(w []byte) (Command, bool) {
	switch Opcode(w[0]) {
	case OpVtx:
		vertLen := binary.BigEndian.Uint16(w[2:4])
		return Command{
			Op:           OpVtx,
			WriteStart:   w[1],
			VertsToWrite: int(vertLen >> 10),
			VertDataLen:  int(vertLen & 0x3FF),
			LoadAddress:  binary.BigEndian.Uint32(w[4:8]),
		}, true

	case OpTri1:
		return Command{
			Op: OpTri1,
			V1: int(w[5]) / 2,
			V2: int(w[6]) / 2,
			V3: int(w[7]) / 2,
		}, true

	case OpTri2:
		return Command{
			Op: OpTri2,
			V1: int(w[1]) / 2,
			V2: int(w[2]) / 2,
			V3: int(w[3]) / 2,
			// byte 4 is skipped, per spec.md §4.5.
			V4: int(w[5]) / 2,
			V5: int(w[6]) / 2,
			V6: int(w[7]) / 2,
		}, true

	case OpTexture:
		s := binary.BigEndian.Uint16(w[4:6])
		t := binary.BigEndian.Uint16(w[6:8])
		return Command{
			Op:     OpTexture,
			ScaleS: float32(s) / 65536,
			ScaleT: float32(t) / 65536,
		}, true

	case OpSetTImg:
		fmtSize := w[1]
		return Command{
			Op:             OpSetTImg,
			TextureFormat:  fmtSize >> 5,
			TextureBitSize: (fmtSize >> 3) & 0x3,
			SegmentAddress: binary.BigEndian.Uint32(w[4:8]),
		}, true

	default:
		return Command{}, false
	}
}
