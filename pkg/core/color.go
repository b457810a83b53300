package core

// Color is an unclamped RGB triple. Channels are only clamped when an image is serialized.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// AddScalar adds s to every channel
func (c Color) AddScalar(s float64) Color {
	return Color{c.R + s, c.G + s, c.B + s}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// MultiplyColor returns the channel-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Divide returns the color divided by a scalar. Division by zero yields black.
func (c Color) Divide(s float64) Color {
	if s == 0 {
		return Color{}
	}
	return c.Multiply(1 / s)
}

// Clamp returns a color with channels clamped to [minVal, maxVal]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// IsFinite reports whether no channel is NaN or infinite
func (c Color) IsFinite() bool {
	return isFinite(c.R) && isFinite(c.G) && isFinite(c.B)
}
