package core

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Epsilon is the tolerance used for parallel-ray rejection and for offsetting
// secondary ray origins away from the surface they leave.
const Epsilon = 0.001

// ErrDegenerateVector is returned when a zero-length vector has no direction
var ErrDegenerateVector = errors.New("degenerate vector: zero length")

// Vec3 represents a 3D point or direction
type Vec3 r3.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) vector() r3.Vector {
	return r3.Vector(v)
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(v.vector().Add(other.vector()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(v.vector().Sub(other.vector()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(v.vector().Mul(scalar))
}

// Divide returns the vector divided by a scalar. Division by zero yields the zero vector.
func (v Vec3) Divide(scalar float64) Vec3 {
	if scalar == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / scalar)
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return v.vector().Norm()
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.vector().Norm2()
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.vector().Dot(other.vector())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(v.vector().Cross(other.vector()))
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when v has zero length
func (v Vec3) Normalize() Vec3 {
	return Vec3(v.vector().Normalize())
}

// TryNormalize is Normalize for callers that must reject a zero-length input
func (v Vec3) TryNormalize() (Vec3, error) {
	if v.LengthSquared() == 0 {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Normalize(), nil
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// RotateX rotates the vector about the x axis by angle radians
func (v Vec3) RotateX(angle float64) Vec3 {
	return v.transform(mgl64.Rotate3DX(angle))
}

// RotateY rotates the vector about the y axis by angle radians
func (v Vec3) RotateY(angle float64) Vec3 {
	return v.transform(mgl64.Rotate3DY(angle))
}

// RotateZ rotates the vector about the z axis by angle radians
func (v Vec3) RotateZ(angle float64) Vec3 {
	return v.transform(mgl64.Rotate3DZ(angle))
}

// Rotate applies rotations about the x, y and z axes, in that order, using the
// components of angles as radians
func (v Vec3) Rotate(angles Vec3) Vec3 {
	return v.RotateX(angles.X).RotateY(angles.Y).RotateZ(angles.Z)
}

func (v Vec3) transform(m mgl64.Mat3) Vec3 {
	r := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}

// Reflect returns the outgoing mirror direction for a vector v arriving at a
// surface with the given normal. The result has unit length and makes the same
// angle with the normal as v does.
func (v Vec3) Reflect(normal Vec3) Vec3 {
	return normal.Multiply(2 * v.Dot(normal)).Subtract(v).Normalize().Negate()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
