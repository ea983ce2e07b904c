// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package linear

import "math"

// Translate sets m to a translation by t.
func (m *M4) Translate(t *V3) {
	m.I()
	m[3] = V4{t[0], t[1], t[2], 1}
}

// Scale sets m to a non-uniform scale by s.
func (m *M4) Scale(s *V3) {
	*m = M4{{s[0]}, {0, s[1]}, {0, 0, s[2]}, {0, 0, 0, 1}}
}

// LookAt sets m to a view matrix located at eye, looking at center, with
// the given up direction.
func (m *M4) LookAt(eye, center, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}

// Ortho sets m to an orthographic projection with a [0, 1] depth range.
func (m *M4) Ortho(left, right, bottom, top, znear, zfar float32) {
	*m = M4{
		{2 / (right - left)},
		{0, 2 / (top - bottom)},
		{0, 0, 1 / (znear - zfar)},
		{
			(left + right) / (left - right),
			(bottom + top) / (bottom - top),
			znear / (znear - zfar),
			1,
		},
	}
}

// Perspective sets m to a perspective projection with a [0, 1] depth
// range. yfov is given in radians.
func (m *M4) Perspective(yfov, aspect, znear, zfar float32) {
	t := float32(math.Tan(float64(yfov) / 2))
	*m = M4{
		{1 / (aspect * t)},
		{0, 1 / t},
		{0, 0, zfar / (znear - zfar), -1},
		{0, 0, znear * zfar / (znear - zfar)},
	}
}

// Frustum sets m to a perspective projection defined by the given
// clipping planes, with a [0, 1] depth range.
func (m *M4) Frustum(left, right, bottom, top, znear, zfar float32) {
	*m = M4{
		{2 * znear / (right - left)},
		{0, 2 * znear / (top - bottom)},
		{
			(left + right) / (right - left),
			(bottom + top) / (top - bottom),
			zfar / (znear - zfar),
			-1,
		},
		{0, 0, znear * zfar / (znear - zfar)},
	}
}

// Rotate sets m to a rotation of angle radians about the given axis.
// The axis need not be normalized.
func (m *M4) Rotate(angle float32, axis *V3) {
	var a V3
	a.Norm(axis)
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	k := 1 - c
	x, y, z := a[0], a[1], a[2]
	*m = M4{
		{c + x*x*k, x*y*k + z*s, x*z*k - y*s, 0},
		{x*y*k - z*s, c + y*y*k, y*z*k + x*s, 0},
		{x*z*k + y*s, y*z*k - x*s, c + z*z*k, 0},
		{0, 0, 0, 1},
	}
}

// Rotate sets m to a rotation of angle radians about the given axis.
// The axis need not be normalized.
func (m *M3) Rotate(angle float32, axis *V3) {
	var r M4
	r.Rotate(angle, axis)
	m.FromM4(&r)
}

// RotateQ sets m to the rotation described by q.
// The quaternion is expected to be of unit length.
func (m *M3) RotateQ(q *Q) {
	x, y, z := q.V[0], q.V[1], q.V[2]
	r := q.R
	*m = M3{
		{1 - 2*(y*y+z*z), 2 * (x*y + z*r), 2 * (x*z - y*r)},
		{2 * (x*y - z*r), 1 - 2*(x*x+z*z), 2 * (y*z + x*r)},
		{2 * (x*z + y*r), 2 * (y*z - x*r), 1 - 2*(x*x+y*y)},
	}
}

// RotateQ sets m to the rotation described by q.
// The quaternion is expected to be of unit length.
func (m *M4) RotateQ(q *Q) {
	var r M3
	r.RotateQ(q)
	*m = M4{
		{r[0][0], r[0][1], r[0][2], 0},
		{r[1][0], r[1][1], r[1][2], 0},
		{r[2][0], r[2][1], r[2][2], 0},
		{0, 0, 0, 1},
	}
}

// FromM4 sets m to the upper-left 3x3 of n.
func (m *M3) FromM4(n *M4) {
	*m = M3{
		{n[0][0], n[0][1], n[0][2]},
		{n[1][0], n[1][1], n[1][2]},
		{n[2][0], n[2][1], n[2][2]},
	}
}
