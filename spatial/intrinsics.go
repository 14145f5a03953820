package spatial

// Intrinsics holds the pinhole camera parameters of a capture device: focal lengths and principal point in
// pixels. The zero value is the "no intrinsics available" sentinel.
type Intrinsics struct {
	Fx float64 `json:"fx"` // focal length in x, in pixels
	Fy float64 `json:"fy"` // focal length in y, in pixels
	Ox float64 `json:"ox"` // principal point x, in pixels
	Oy float64 `json:"oy"` // principal point y, in pixels
}

// IsZero returns true if the intrinsics are the zero-value sentinel.
func (i Intrinsics) IsZero() bool {
	return i == Intrinsics{}
}

// Matrix returns the camera matrix K embedded in a 4x4 matrix:
//
//	fx  0 ox  0
//	 0 fy oy  0
//	 0  0  1  0
//	 0  0  0  1
func (i Intrinsics) Matrix() Matrix4 {
	m := Identity()
	m[0] = i.Fx
	m[2] = i.Ox
	m[5] = i.Fy
	m[6] = i.Oy
	return m
}
