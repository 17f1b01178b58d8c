package model

// Model is an immutable parsed container: a header, decoded texture
// table, raw display-list commands, and vertex store. Per spec.md §3
// ownership/lifecycle and §9's recommended re-architecture, Model is never
// mutated after Parse returns — UV scaling (spec.md §4.5) is applied by
// the displaylist package via a side table, not in place here.
type Model struct {
	Header       Header
	Textures     []Texture
	DisplayList  []Command
	Vertices     []Vertex
}

// Parse decodes a full model container. It is strict on structural
// invariants (magic, buffer length) and tolerant of semantic gaps
// (unknown opcodes, unknown texture types), per spec.md §4.3.
func Parse(data []byte) (*Model, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	textures, err := parseTextureSetup(data, int(header.TextureSetupOffset))
	if err != nil {
		return nil, err
	}

	displayList, err := parseDisplayList(data, int(header.DisplayListOffset))
	if err != nil {
		return nil, err
	}

	vertices, err := parseVertexStore(data, int(header.VertexStoreOffset))
	if err != nil {
		return nil, err
	}

	return &Model{
		Header:      header,
		Textures:    textures,
		DisplayList: displayList,
		Vertices:    vertices,
	}, nil
}
