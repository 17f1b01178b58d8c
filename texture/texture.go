// Package texture decodes the cartridge's palettized and direct pixel
// formats into RGBA, following the bit schedules recorded in spec.md §4.2 —
// including two deliberately-preserved quirks inherited from the original
// extractor: the RGB5A3 opaque branch's bitwise-AND green recombination,
// and the RGB555A1 3+2 (not canonical 5-bit) green split. Both are pinned
// by tests, not "fixed".
package texture

import (
	"fmt"

	"github.com/n64dev/modelkit/bitio"
)

// Type identifies a texture's pixel encoding.
type Type uint16

// Texture types recognized by the container format.
const (
	CI4    Type = 1
	CI8    Type = 2
	RGBA16 Type = 4
	RGBA32 Type = 8
	IA8    Type = 16
)

func (t Type) String() string {
	switch t {
	case CI4:
		return "CI4"
	case CI8:
		return "CI8"
	case RGBA16:
		return "RGBA16"
	case RGBA32:
		return "RGBA32"
	case IA8:
		return "IA8"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// DataLength returns the number of texture-data bytes for a w x h texture
// of type t, per spec.md §3. ok is false for an unmodeled type.
func DataLength(t Type, width, height int) (n int, ok bool) {
	switch t {
	case CI4:
		return 32 + (width*height)/2, true
	case CI8:
		return 512 + width*height, true
	case RGBA16:
		return width * height * 2, true
	case RGBA32:
		return width * height * 4, true
	case IA8:
		return width * height, true
	default:
		return 0, false
	}
}

// iterColorsRGB565 decodes size colors from a 5|3|3|5 bit layout (available
// as PaletteRGB565 through DecodePalette; CI4 and CI8 palettes are decoded
// as RGB555A1 instead). Despite the name this is not the canonical RGB565
// layout: alpha is always opaque and the two 3-bit green sub-reads are
// OR'd, not the channel split RGB555A1 uses below.
func iterColorsRGB565(data []byte, size int, yield func(Color) bool) error {
	r := bitio.NewReader(data)
	for i := 0; i < size; i++ {
		red, err := r.ReadSub(5)
		if err != nil {
			return err
		}
		gHi, err := r.ReadSub(3)
		if err != nil {
			return err
		}
		gLo, err := r.ReadSub(3)
		if err != nil {
			return err
		}
		blue, err := r.ReadSub(5)
		if err != nil {
			return err
		}
		green := ((gHi << 3) | gLo) * 4
		c := Color{R: red * 8, G: green, B: blue * 8, A: 255}
		if !yield(c) {
			return nil
		}
	}
	return nil
}

// iterColorsRGB555A decodes size colors from a 5|3|2|5|1 layout. The green
// channel is deliberately reconstituted from a 3-bit and a 2-bit field
// (not a canonical 5-bit field) — this matches the source's observed
// behavior and is preserved per spec.md §4.2 / §9.
func iterColorsRGB555A(data []byte, size int, yield func(Color) bool) error {
	r := bitio.NewReader(data)
	for i := 0; i < size; i++ {
		red, err := r.ReadSub(5)
		if err != nil {
			return err
		}
		gHi, err := r.ReadSub(3)
		if err != nil {
			return err
		}
		gLo, err := r.ReadSub(2)
		if err != nil {
			return err
		}
		blue, err := r.ReadSub(5)
		if err != nil {
			return err
		}
		a, err := r.ReadSub(1)
		if err != nil {
			return err
		}
		green := ((gHi << 2) | gLo) * 8
		c := Color{R: red * 8, G: green, B: blue * 8, A: a * 0xFF}
		if !yield(c) {
			return nil
		}
	}
	return nil
}

// iterColorsRGB5A3 decodes size colors where the leading bit selects the
// sub-format: 0 selects 3-bit-alpha/4-4-4 RGB; 1 selects opaque 5-2-3-5
// RGB with a bitwise-AND green recombination that is very likely a bug in
// the original extractor (OR would be the obvious fix) — preserved exactly
// per spec.md §4.2 / §9, pinned by TestIterColorsRGB5A3Opaque.
func iterColorsRGB5A3(data []byte, size int, yield func(Color) bool) error {
	r := bitio.NewReader(data)
	for i := 0; i < size; i++ {
		sel, err := r.ReadSub(1)
		if err != nil {
			return err
		}
		var c Color
		if sel == 0 {
			a, err := r.ReadSub(3)
			if err != nil {
				return err
			}
			red, err := r.ReadSub(4)
			if err != nil {
				return err
			}
			green, err := r.ReadSub(4)
			if err != nil {
				return err
			}
			blue, err := r.ReadSub(4)
			if err != nil {
				return err
			}
			c = Color{R: red * 0x11, G: green * 0x11, B: blue * 0x11, A: a * 0x20}
		} else {
			red, err := r.ReadSub(5)
			if err != nil {
				return err
			}
			g1, err := r.ReadSub(2)
			if err != nil {
				return err
			}
			g2, err := r.ReadSub(3)
			if err != nil {
				return err
			}
			blue, err := r.ReadSub(5)
			if err != nil {
				return err
			}
			green := ((g1 << 3) & g2) * 8
			c = Color{R: red * 8, G: green, B: blue * 8, A: 255}
		}
		if !yield(c) {
			return nil
		}
	}
	return nil
}

// iterColorsIA8 replicates an 8-bit intensity/alpha value across all four
// channels, size times.
func iterColorsIA8(data []byte, size int, yield func(Color) bool) error {
	r := bitio.NewReader(data)
	for i := 0; i < size; i++ {
		v, err := r.ReadSub(8)
		if err != nil {
			return err
		}
		if !yield(Color{R: v, G: v, B: v, A: v}) {
			return nil
		}
	}
	return nil
}

// PaletteFormat names which bit schedule a 16-entry palette uses.
type PaletteFormat int

// Palette formats available for CI4/CI8 palettes.
const (
	PaletteRGB555A1 PaletteFormat = iota
	PaletteRGB565
	PaletteRGB5A3
)

// DecodePalette reads n consecutive palette entries from data in the given
// format.
func DecodePalette(format PaletteFormat, data []byte, n int) ([]Color, error) {
	out := make([]Color, 0, n)
	yield := func(c Color) bool {
		out = append(out, c)
		return true
	}
	var err error
	switch format {
	case PaletteRGB565:
		err = iterColorsRGB565(data, n, yield)
	case PaletteRGB5A3:
		err = iterColorsRGB5A3(data, n, yield)
	default:
		err = iterColorsRGB555A(data, n, yield)
	}
	return out, err
}

// Decode converts raw texture bytes of the given type and dimensions into
// RGBA colors, row-major, row 0 first. Unmodeled types (UnknownTextureType,
// spec.md §7) yield an empty slice rather than an error.
func Decode(t Type, width, height int, data []byte) ([]Color, error) {
	count := width * height

	switch t {
	case CI4:
		if len(data) < 32 {
			return nil, fmt.Errorf("texture: CI4 palette truncated")
		}
		palette, err := DecodePalette(PaletteRGB555A1, data[:32], 16)
		if err != nil {
			return nil, err
		}
		r := bitio.NewReader(data[32:])
		out := make([]Color, 0, count)
		for i := 0; i < count; i++ {
			idx, err := r.ReadSub(4)
			if err != nil {
				return nil, err
			}
			out = append(out, palette[idx])
		}
		return out, nil

	case CI8:
		if len(data) < 512 {
			return nil, fmt.Errorf("texture: CI8 palette truncated")
		}
		palette, err := DecodePalette(PaletteRGB555A1, data[:512], 256)
		if err != nil {
			return nil, err
		}
		r := bitio.NewReader(data[512:])
		out := make([]Color, 0, count)
		for i := 0; i < count; i++ {
			idx, err := r.ReadSub(8)
			if err != nil {
				return nil, err
			}
			out = append(out, palette[idx])
		}
		return out, nil

	case RGBA16:
		out := make([]Color, 0, count)
		err := iterColorsRGB555A(data, count, func(c Color) bool {
			out = append(out, c)
			return true
		})
		return out, err

	case IA8:
		out := make([]Color, 0, count)
		err := iterColorsIA8(data, count, func(c Color) bool {
			out = append(out, c)
			return true
		})
		return out, err

	case RGBA32:
		out := make([]Color, 0, count)
		for i := 0; i < count && (i+1)*4 <= len(data); i++ {
			b := data[i*4 : i*4+4]
			out = append(out, Color{R: b[0], G: b[1], B: b[2], A: b[3]})
		}
		return out, nil

	default:
		return nil, nil
	}
}
