package core

// Mat4 is a 4x4 affine transform stored row-major. The scene graph only
// ever builds these from a Pose (rotation + translation, no scale), so
// Inverse exploits that restriction rather than doing a general
// Gauss-Jordan elimination, mirroring the affine-inverse shortcut in
// the reference linear-algebra package this is grounded on.
type Mat4 struct {
	m [4][4]float64
}

// Identity4 is the identity transform.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m.m[i][i] = 1
	}
	return m
}

// NewAffine builds a Mat4 from a rotation and a translation, i.e. the
// transform that maps a local-space point to world space for a
// component at the given pose.
func NewAffine(rotation Quaternion, translation Vec3) Mat4 {
	x, y, z, w := rotation.X, rotation.Y, rotation.Z, rotation.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	var m Mat4
	m.m[0][0] = 1 - (yy + zz)
	m.m[0][1] = xy - wz
	m.m[0][2] = xz + wy
	m.m[0][3] = translation.X

	m.m[1][0] = xy + wz
	m.m[1][1] = 1 - (xx + zz)
	m.m[1][2] = yz - wx
	m.m[1][3] = translation.Y

	m.m[2][0] = xz - wy
	m.m[2][1] = yz + wx
	m.m[2][2] = 1 - (xx + yy)
	m.m[2][3] = translation.Z

	m.m[3][3] = 1
	return m
}

// TransformPoint applies the full affine transform (rotation + translation).
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		X: m.m[0][0]*v.X + m.m[0][1]*v.Y + m.m[0][2]*v.Z + m.m[0][3],
		Y: m.m[1][0]*v.X + m.m[1][1]*v.Y + m.m[1][2]*v.Z + m.m[1][3],
		Z: m.m[2][0]*v.X + m.m[2][1]*v.Y + m.m[2][2]*v.Z + m.m[2][3],
	}
}

// TransformDirection applies only the rotation part, leaving direction
// vectors (and normals, since the scene graph never applies non-uniform
// scale) unaffected by translation.
func (m Mat4) TransformDirection(v Vec3) Vec3 {
	return Vec3{
		X: m.m[0][0]*v.X + m.m[0][1]*v.Y + m.m[0][2]*v.Z,
		Y: m.m[1][0]*v.X + m.m[1][1]*v.Y + m.m[1][2]*v.Z,
		Z: m.m[2][0]*v.X + m.m[2][1]*v.Y + m.m[2][2]*v.Z,
	}
}

// Inverse returns the inverse of an affine rotation+translation matrix:
// the transpose of the rotation block combined with the negated,
// rotated translation. Only valid for matrices built by NewAffine.
func (m Mat4) Inverse() Mat4 {
	var inv Mat4
	// Transpose the 3x3 rotation block.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			inv.m[i][j] = m.m[j][i]
		}
	}
	t := Vec3{m.m[0][3], m.m[1][3], m.m[2][3]}
	negRotatedT := inv.TransformDirection(t).Negate()
	inv.m[0][3] = negRotatedT.X
	inv.m[1][3] = negRotatedT.Y
	inv.m[2][3] = negRotatedT.Z
	inv.m[3][3] = 1
	return inv
}
