// Package displaylist simulates the subset of graphics-microcode commands
// needed to reconstruct per-material indexed meshes from a parsed model,
// per spec.md §4.5. The interpreter is fully tolerant: it always produces
// a (possibly empty) mesh list, never an error.
package displaylist

import (
	"github.com/n64dev/modelkit/internal/bitvec"
	"github.com/n64dev/modelkit/model"
	"github.com/n64dev/modelkit/texture"
)

// vertexBufferSize is the on-chip vertex cache's slot count (spec.md
// GLOSSARY: "Vertex index buffer").
const vertexBufferSize = 64

// textureSegmentBase is subtracted from a G_SETTIMG segment address to
// obtain an offset into the model's own texture region (segment 0x02),
// per spec.md §4.5.
const textureSegmentBase = 0x02000000

// UV is a texture coordinate pair.
type UV struct {
	S, T float32
}

// Mesh is one interpreter output: the vertex indices of a material's
// triangles, and the material's texture index (absent if none matched).
type Mesh struct {
	TextureIndex *int
	Indices      [][3]uint16
}

// Result is the full output of Interpret: the meshes, plus the UV
// override table that must be consulted instead of a vertex's raw UV
// wherever present.
//
// Per spec.md §9's recommended re-architecture, the model's vertices are
// never mutated: each vertex's UV is scaled at most once, using the scale
// in force at its first triangle reference, and the scaled value is
// recorded here rather than written back into model.Vertex.
type Result struct {
	Meshes      []Mesh
	UVOverrides map[uint16]UV
}

// VertexUV returns the UV to use for vertex index i: the override if one
// was recorded, otherwise the vertex's raw (unscaled) UV.
func (r Result) VertexUV(m *model.Model, i uint16) UV {
	if uv, ok := r.UVOverrides[i]; ok {
		return uv
	}
	if int(i) < len(m.Vertices) {
		v := m.Vertices[i]
		return UV{S: v.U, T: v.V}
	}
	return UV{}
}

type interpState struct {
	model *model.Model

	vertexIndexBuffer [vertexBufferSize]uint16
	scaleS, scaleT    float32
	touched           bitvec.V[uint64]

	current Mesh
	meshes  []Mesh

	uvOverrides map[uint16]UV
}

// Interpret walks m's display list and reconstructs per-material indexed
// meshes, applying per-batch UV scaling exactly once per vertex. It never
// fails: out-of-range vertex slots read whatever the cache holds
// (initialized to zero), and a G_SETTIMG that matches no texture yields a
// mesh with a nil TextureIndex (spec.md §4.5 / §7 InterpreterWarn).
func Interpret(m *model.Model) Result {
	offsets := make([]uint32, len(m.Textures))
	for i, t := range m.Textures {
		offsets[i] = t.SegmentOffset
	}

	s := &interpState{
		model:       m,
		scaleS:      1.0,
		scaleT:      1.0,
		uvOverrides: make(map[uint16]UV),
	}
	// One bit per vertex the model actually has; touch tracking for a
	// vertex slot outside this range is pointless (its UV is never read
	// back by VertexUV), so scaleVertexUV skips those entirely.
	s.touched.Grow((len(m.Vertices) + 63) / 64)

	for _, cmd := range m.DisplayList {
		switch cmd.Op {
		case model.OpVtx:
			s.execVtx(cmd)
		case model.OpTri1:
			s.emitTriangle(cmd.V1, cmd.V2, cmd.V3)
		case model.OpTri2:
			s.emitTriangle(cmd.V1, cmd.V2, cmd.V3)
			s.emitTriangle(cmd.V4, cmd.V5, cmd.V6)
		case model.OpTexture:
			s.scaleS, s.scaleT = cmd.ScaleS, cmd.ScaleT
		case model.OpSetTImg:
			s.execSetTImg(cmd, offsets)
		}
	}

	s.flushMesh()

	return Result{Meshes: s.meshes, UVOverrides: s.uvOverrides}
}

func (s *interpState) execVtx(cmd model.Command) {
	indexOffset := (cmd.LoadAddress & 0x00FFFFFF) / 16

	for i := 0; i < cmd.VertsToWrite; i++ {
		slot := int(cmd.WriteStart) + i
		if slot >= vertexBufferSize {
			// Writes beyond the cache are silently dropped (spec.md §4.5).
			continue
		}
		s.vertexIndexBuffer[slot] = uint16(indexOffset) + uint16(i)
	}
}

func (s *interpState) emitTriangle(slot1, slot2, slot3 int) {
	i1 := s.slotVertex(slot1)
	i2 := s.slotVertex(slot2)
	i3 := s.slotVertex(slot3)

	s.scaleVertexUV(i1)
	s.scaleVertexUV(i2)
	s.scaleVertexUV(i3)

	s.current.Indices = append(s.current.Indices, [3]uint16{i1, i2, i3})
}

func (s *interpState) slotVertex(slot int) uint16 {
	if slot < 0 || slot >= vertexBufferSize {
		return 0
	}
	return s.vertexIndexBuffer[slot]
}

// scaleVertexUV applies the current batch scale to vertex gi's UV exactly
// once across the whole simulation, per spec.md §4.5: the scale in force
// at the vertex's *first* triangle reference wins, not the scale at each
// subsequent use.
func (s *interpState) scaleVertexUV(gi uint16) {
	if int(gi) >= len(s.model.Vertices) {
		// No vertex to scale, and nothing will ever read back an
		// override for an index outside the model's own range.
		return
	}
	if s.touched.IsSet(int(gi)) {
		return
	}
	s.touched.Set(int(gi))

	vert := s.model.Vertices[gi]
	s.uvOverrides[gi] = UV{S: vert.U * s.scaleS, T: vert.V * s.scaleT}
}

func (s *interpState) execSetTImg(cmd model.Command, offsets []uint32) {
	textureOffset := cmd.SegmentAddress - textureSegmentBase

	var nextIndex *int
	if idx, ok := texture.FindNearest(offsets, textureOffset); ok {
		i := idx
		nextIndex = &i
	}

	if samePointerValue(nextIndex, s.current.TextureIndex) {
		return
	}

	s.flushMesh()
	s.current = Mesh{TextureIndex: nextIndex}
}

func samePointerValue(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *interpState) flushMesh() {
	if len(s.current.Indices) > 0 {
		s.meshes = append(s.meshes, s.current)
	}
	s.current = Mesh{}
}
