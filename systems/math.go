package systems

import "math"

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// up is the fallback normal for flat or degenerate terrain.
var up = Vec3{0, 1, 0}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return sqrtf(v.Dot(v))
}

// Normalize returns v scaled to unit length, or up if v has zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return up
	}
	return v.Scale(1 / l)
}

// Reflect mirrors v about the plane with unit normal n: v - 2(v·n)n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// vec3At reads the stride-3 triple for particle i.
func vec3At(buf []float32, i int) Vec3 {
	b := i * 3
	return Vec3{buf[b], buf[b+1], buf[b+2]}
}

// setVec3At writes the stride-3 triple for particle i.
func setVec3At(buf []float32, i int, v Vec3) {
	b := i * 3
	buf[b] = v.X
	buf[b+1] = v.Y
	buf[b+2] = v.Z
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
