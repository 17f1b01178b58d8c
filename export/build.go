package export

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/n64dev/modelkit/displaylist"
	"github.com/n64dev/modelkit/gltf"
	"github.com/n64dev/modelkit/linear"
	"github.com/n64dev/modelkit/model"
	"github.com/n64dev/modelkit/texture"
)

// positionScale converts a raw vertex coordinate to glTF model space, per
// spec.md §4.6.
const positionScale = 1.0 / 128.0

// vertexStride matches spec.md §4.6: f32 position[3], u8 color[3] + 1 pad,
// f32 uv[2].
const vertexStride = 24

// Build assembles a self-contained glTF document and its companion binary
// buffer from a parsed model and its interpreted meshes. Per spec.md §4.6:
// one indexed primitive per mesh sharing a single vertex buffer, one
// material per texture (alpha mode masked), and a shared sampler (linear
// mag, nearest-mipmap-linear min, repeat both axes).
func Build(m *model.Model, result displaylist.Result, name string) (*gltf.GLTF, []byte, error) {
	var bin []byte

	var bufferViews []gltf.BufferView
	var accessors []gltf.Accessor

	// Per-mesh index buffers come first in the binary blob, each in its
	// own accessor at the same index as its mesh.
	for _, mesh := range result.Meshes {
		off := len(bin)
		lo, hi := uint16(0xFFFF), uint16(0)
		for _, tri := range mesh.Indices {
			for _, idx := range tri {
				writeU16(&bin, idx)
				if idx < lo {
					lo = idx
				}
				if idx > hi {
					hi = idx
				}
			}
		}
		length := len(bin) - off
		padTo4(&bin)

		viewIdx := int64(len(bufferViews))
		bufferViews = append(bufferViews, gltf.BufferView{
			ByteOffset: int64(off),
			ByteLength: int64(length),
			Target:     gltf.ELEMENT_ARRAY_BUFFER,
		})
		accessors = append(accessors, gltf.Accessor{
			BufferView:    i64(viewIdx),
			ComponentType: gltf.UNSIGNED_SHORT,
			Count:         int64(len(mesh.Indices) * 3),
			Type:          gltf.SCALAR,
			Min:           []float32{float32(lo)},
			Max:           []float32{float32(hi)},
		})
	}

	// The shared vertex buffer follows, keyed by global vertex index so
	// every mesh's index accessor can reference it directly.
	vertexOffset := len(bin)
	var posMin, posMax, colorMin, colorMax linear.V3
	uvMin := [2]float32{0, 0}
	uvMax := [2]float32{0, 0}
	for i, v := range m.Vertices {
		uv := result.VertexUV(m, uint16(i))
		pos := linear.V3{float32(v.X) * positionScale, float32(v.Y) * positionScale, float32(v.Z) * positionScale}
		color := linear.V3{float32(v.R) / 255, float32(v.G) / 255, float32(v.B) / 255}

		writeF32(&bin, pos[0])
		writeF32(&bin, pos[1])
		writeF32(&bin, pos[2])
		bin = append(bin, v.R, v.G, v.B, 0)
		writeF32(&bin, uv.S)
		writeF32(&bin, uv.T)

		if i == 0 {
			posMin, posMax = pos, pos
			colorMin, colorMax = color, color
			uvMin, uvMax = [2]float32{uv.S, uv.T}, [2]float32{uv.S, uv.T}
			continue
		}
		posMin.Min(&posMin, &pos)
		posMax.Max(&posMax, &pos)
		colorMin.Min(&colorMin, &color)
		colorMax.Max(&colorMax, &color)
		uvMin[0], uvMin[1] = minf(uvMin[0], uv.S), minf(uvMin[1], uv.T)
		uvMax[0], uvMax[1] = maxf(uvMax[0], uv.S), maxf(uvMax[1], uv.T)
	}
	vertexLen := len(bin) - vertexOffset
	padTo4(&bin)

	vbIdx := int64(len(bufferViews))
	bufferViews = append(bufferViews, gltf.BufferView{
		ByteOffset: int64(vertexOffset),
		ByteLength: int64(vertexLen),
		ByteStride: vertexStride,
		Target:     gltf.ARRAY_BUFFER,
	})

	posAccIdx := int64(len(accessors))
	accessors = append(accessors, gltf.Accessor{
		BufferView:    i64(vbIdx),
		ComponentType: gltf.FLOAT,
		Count:         int64(len(m.Vertices)),
		Type:          gltf.VEC3,
		Min:           posMin[:],
		Max:           posMax[:],
	})
	colorAccIdx := int64(len(accessors))
	accessors = append(accessors, gltf.Accessor{
		BufferView:    i64(vbIdx),
		ByteOffset:    12,
		ComponentType: gltf.UNSIGNED_BYTE,
		Normalized:    true,
		Count:         int64(len(m.Vertices)),
		Type:          gltf.VEC3,
		Min:           colorMin[:],
		Max:           colorMax[:],
	})
	uvAccIdx := int64(len(accessors))
	accessors = append(accessors, gltf.Accessor{
		BufferView:    i64(vbIdx),
		ByteOffset:    16,
		ComponentType: gltf.FLOAT,
		Count:         int64(len(m.Vertices)),
		Type:          gltf.VEC2,
		Min:           uvMin[:],
		Max:           uvMax[:],
	})

	samplers := []gltf.Sampler{{
		MagFilter: gltf.FLINEAR,
		MinFilter: gltf.NEAREST_MIPMAP_LINEAR,
		WrapS:     gltf.REPEAT,
		WrapT:     gltf.REPEAT,
	}}

	var images []gltf.Image
	var textures []gltf.Texture
	var materials []gltf.Material
	for _, t := range m.Textures {
		colors, err := texture.Decode(t.Type, t.Width, t.Height, t.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("export: decoding texture: %w", err)
		}

		var uri string
		if len(colors) > 0 {
			png, err := EncodePNG(colors, t.Width, t.Height)
			if err != nil {
				return nil, nil, fmt.Errorf("export: encoding texture PNG: %w", err)
			}
			uri = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		}

		imgIdx := int64(len(images))
		images = append(images, gltf.Image{URI: uri, MimeType: gltf.PNG})
		textures = append(textures, gltf.Texture{Sampler: i64(0), Source: i64(imgIdx)})

		texIdx := int64(len(textures) - 1)
		materials = append(materials, gltf.Material{
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorTexture: &gltf.TextureInfo{Index: texIdx},
				MetallicFactor:   f32p(0),
			},
			AlphaMode: gltf.MASK,
		})
	}

	var meshes []gltf.Mesh
	var nodes []gltf.Node
	var sceneNodes []int64
	for i, mesh := range result.Meshes {
		prim := gltf.Primitive{
			Attributes: map[string]int64{
				"POSITION":   posAccIdx,
				"COLOR_0":    colorAccIdx,
				"TEXCOORD_0": uvAccIdx,
			},
			Indices: i64(int64(i)),
			Mode:    i64(gltf.TRIANGLES),
		}
		if mesh.TextureIndex != nil {
			prim.Material = i64(int64(*mesh.TextureIndex))
		}

		meshIdx := int64(len(meshes))
		meshes = append(meshes, gltf.Mesh{
			Primitives: []gltf.Primitive{prim},
			Name:       fmt.Sprintf("%s_mesh%d", name, i),
		})
		nodes = append(nodes, gltf.Node{Mesh: i64(meshIdx), Name: fmt.Sprintf("%s_node%d", name, i)})
		sceneNodes = append(sceneNodes, int64(len(nodes)-1))
	}

	var g gltf.GLTF
	g.Asset.Version = "2.0"
	g.Asset.Generator = "modelkit"
	g.Buffers = []gltf.Buffer{{ByteLength: int64(len(bin))}}
	g.BufferViews = bufferViews
	g.Accessors = accessors
	g.Meshes = meshes
	g.Nodes = nodes
	g.Materials = materials
	g.Textures = textures
	g.Images = images
	g.Samplers = samplers
	g.Scene = i64(0)
	g.Scenes = []gltf.Scene{{Nodes: sceneNodes, Name: name}}

	return &g, bin, nil
}

func writeU16(b *[]byte, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	*b = append(*b, tmp[:]...)
}

func writeF32(b *[]byte, v float32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
	*b = append(*b, tmp[:]...)
}

// padTo4 appends zero bytes until len(*b) is a multiple of 4, per spec.md
// §4.6's buffer-alignment rule.
func padTo4(b *[]byte) {
	for len(*b)%4 != 0 {
		*b = append(*b, 0)
	}
}

func i64(v int64) *int64      { return &v }
func f32p(v float32) *float32 { return &v }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
