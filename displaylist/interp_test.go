package displaylist

import (
	"testing"

	"github.com/n64dev/modelkit/model"
)

func TestInterpretScenario5(t *testing.T) {
	// Two textures at segment offsets 0x00 and 0x80.
	m := &model.Model{
		Textures: []model.Texture{
			{TextureSubHeader: model.TextureSubHeader{SegmentOffset: 0x00}},
			{TextureSubHeader: model.TextureSubHeader{SegmentOffset: 0x80}},
		},
		Vertices: []model.Vertex{
			{U: 1, V: 1},
			{U: 1, V: 1},
			{U: 1, V: 1},
		},
		DisplayList: []model.Command{
			{Op: model.OpVtx, WriteStart: 0, VertsToWrite: 3, LoadAddress: 0x02000000},
			{Op: model.OpTexture, ScaleS: 0.5, ScaleT: 1.0},
			{Op: model.OpSetTImg, SegmentAddress: 0x02000080},
			{Op: model.OpTri1, V1: 0, V2: 1, V3: 2},
		},
	}

	result := Interpret(m)

	if len(result.Meshes) != 1 {
		t.Fatalf("have %d meshes, want 1", len(result.Meshes))
	}
	mesh := result.Meshes[0]
	if mesh.TextureIndex == nil || *mesh.TextureIndex != 1 {
		t.Fatalf("have TextureIndex %v, want 1", mesh.TextureIndex)
	}
	if len(mesh.Indices) != 1 || mesh.Indices[0] != [3]uint16{0, 1, 2} {
		t.Fatalf("have indices %v, want [[0 1 2]]", mesh.Indices)
	}

	for i := uint16(0); i < 3; i++ {
		uv := result.VertexUV(m, i)
		if uv.S != 0.5 || uv.T != 1.0 {
			t.Errorf("vertex %d uv: have %+v, want {0.5 1}", i, uv)
		}
	}
}

func TestInterpretUVScaledOnce(t *testing.T) {
	m := &model.Model{
		Vertices: []model.Vertex{{U: 2, V: 2}},
		DisplayList: []model.Command{
			{Op: model.OpVtx, WriteStart: 0, VertsToWrite: 1, LoadAddress: 0},
			{Op: model.OpTexture, ScaleS: 2, ScaleT: 2},
			{Op: model.OpTri1, V1: 0, V2: 0, V3: 0},
			// Scale changes after the vertex was already touched; this
			// must NOT retroactively rescale it.
			{Op: model.OpTexture, ScaleS: 100, ScaleT: 100},
			{Op: model.OpTri1, V1: 0, V2: 0, V3: 0},
		},
	}

	result := Interpret(m)
	uv := result.VertexUV(m, 0)
	if uv.S != 4 || uv.T != 4 {
		t.Fatalf("have %+v, want {4 4} (scale must apply only at first touch)", uv)
	}
}

func TestInterpretEmitsOnlyNonEmptyMeshes(t *testing.T) {
	m := &model.Model{
		DisplayList: []model.Command{
			{Op: model.OpSetTImg, SegmentAddress: 0x02000000},
			{Op: model.OpSetTImg, SegmentAddress: 0x02000080},
		},
	}
	result := Interpret(m)
	if len(result.Meshes) != 0 {
		t.Fatalf("have %d meshes, want 0 (no triangles emitted)", len(result.Meshes))
	}
}

func TestInterpretOutOfRangeVtxWriteDropped(t *testing.T) {
	m := &model.Model{
		Vertices: make([]model.Vertex, 4),
		DisplayList: []model.Command{
			{Op: model.OpVtx, WriteStart: 62, VertsToWrite: 5, LoadAddress: 0},
			{Op: model.OpTri1, V1: 62, V2: 63, V3: 0},
		},
	}
	// Must not panic; slots >= 64 are dropped, slot 0 stays zero-valued.
	result := Interpret(m)
	if len(result.Meshes) != 1 {
		t.Fatalf("have %d meshes, want 1", len(result.Meshes))
	}
}
