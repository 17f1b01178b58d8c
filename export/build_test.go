package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/n64dev/modelkit/displaylist"
	"github.com/n64dev/modelkit/model"
	"github.com/n64dev/modelkit/texture"
)

func TestBuildSingleMesh(t *testing.T) {
	m := &model.Model{
		Vertices: []model.Vertex{
			{X: 0, Y: 0, Z: 0, U: 0, V: 0, R: 255, G: 0, B: 0, A: 255},
			{X: 128, Y: 0, Z: 0, U: 1, V: 0, R: 0, G: 255, B: 0, A: 255},
			{X: 0, Y: 128, Z: 0, U: 0, V: 1, R: 0, G: 0, B: 255, A: 255},
		},
	}
	result := displaylist.Result{
		Meshes: []displaylist.Mesh{{
			Indices: [][3]uint16{{0, 1, 2}},
		}},
		UVOverrides: map[uint16]displaylist.UV{},
	}

	g, bin, err := Build(m, result, "test")
	if err != nil {
		t.Fatal(err)
	}

	if len(g.Meshes) != 1 || len(g.Meshes[0].Primitives) != 1 {
		t.Fatalf("have %d meshes, want 1 with 1 primitive", len(g.Meshes))
	}
	prim := g.Meshes[0].Primitives[0]
	if _, ok := prim.Attributes["POSITION"]; !ok {
		t.Fatal("missing POSITION attribute")
	}
	if len(g.Nodes) != 1 || len(g.Scenes) != 1 || len(g.Scenes[0].Nodes) != 1 {
		t.Fatalf("have %d nodes, want 1 scene node", len(g.Nodes))
	}

	wantIndexBytes := 3 * 2 // one triangle, 3 u16 indices
	wantVertexBytes := 3 * vertexStride
	wantTotal := wantIndexBytes
	if pad := wantTotal % 4; pad != 0 {
		wantTotal += 4 - pad
	}
	wantTotal += wantVertexBytes
	if pad := wantTotal % 4; pad != 0 {
		wantTotal += 4 - pad
	}
	if len(bin) != wantTotal {
		t.Fatalf("have bin length %d, want %d", len(bin), wantTotal)
	}
}

func TestBuildTracksPositionBounds(t *testing.T) {
	m := &model.Model{
		Vertices: []model.Vertex{
			{X: -128, Y: 0, Z: 0},
			{X: 128, Y: 64, Z: -64},
		},
	}
	result := displaylist.Result{
		Meshes:      []displaylist.Mesh{{Indices: [][3]uint16{{0, 0, 1}}}},
		UVOverrides: map[uint16]displaylist.UV{},
	}
	g, _, err := Build(m, result, "bounds")
	if err != nil {
		t.Fatal(err)
	}
	posAcc := g.Accessors[len(g.Accessors)-3]
	if posAcc.Min[0] != -1 || posAcc.Max[0] != 1 {
		t.Fatalf("have min=%v max=%v, want min.x=-1 max.x=1", posAcc.Min, posAcc.Max)
	}
}

func TestBuildEmbedsTextureAsDataURI(t *testing.T) {
	m := &model.Model{
		Vertices: []model.Vertex{{}, {}, {}},
		Textures: []model.Texture{
			{
				TextureSubHeader: model.TextureSubHeader{Type: texture.IA8, Width: 1, Height: 1},
				Data:             []byte{0xFF},
			},
		},
	}
	idx := 0
	result := displaylist.Result{
		Meshes: []displaylist.Mesh{{
			TextureIndex: &idx,
			Indices:      [][3]uint16{{0, 1, 2}},
		}},
		UVOverrides: map[uint16]displaylist.UV{},
	}
	g, _, err := Build(m, result, "tex")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Images) != 1 {
		t.Fatalf("have %d images, want 1", len(g.Images))
	}
	if len(g.Images[0].URI) == 0 {
		t.Fatal("Images[0].URI is empty, want data URI")
	}
	if len(g.Materials) != 1 || g.Materials[0].AlphaMode != "MASK" {
		t.Fatalf("have material %+v, want AlphaMode MASK", g.Materials)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	colors := []texture.Color{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
	}
	data, err := EncodePNG(colors, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("have bounds %v, want 2x1", img.Bounds())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	want := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("have pixel (%d,%d,%d), want (%d,%d,%d)", r>>8, g>>8, b>>8, want.R, want.G, want.B)
	}
}
