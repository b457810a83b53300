package core

// Ray represents a ray with an origin and direction.
// Camera, shadow and reflection rays carry unit directions.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Offset returns a ray whose origin is pushed Epsilon along normal, used for
// shadow and reflection rays so they do not re-hit the surface they start on
func Offset(point, normal, direction Vec3) Ray {
	return NewRay(point.Add(normal.Multiply(Epsilon)), direction)
}
