// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package linear implements the small amount of float32 vector math the
// export adapter needs for accessor bounds tracking. The teacher's
// original package also carried 3x3/4x4 matrices and quaternions for a
// live renderer's transform stack; those are dropped here since nothing
// in this module performs transforms (spec.md Non-goals: full graphics
// pipeline emulation).
package linear

import "github.com/chewxy/math32"

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Min sets v to the component-wise minimum of l and r.
func (v *V3) Min(l, r *V3) {
	for i := range v {
		v[i] = math32.Min(l[i], r[i])
	}
}

// Max sets v to the component-wise maximum of l and r.
func (v *V3) Max(l, r *V3) {
	for i := range v {
		v[i] = math32.Max(l[i], r[i])
	}
}
