package scene

import "github.com/mokiat/gog/opt"

// Color is a linear RGBA color with components in the range [0, 1].
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func Red() Color {
	return RGBA(1, 0, 0, 1)
}

func White() Color {
	return RGBA(1, 1, 1, 1)
}

// Material is the shading of a node. Texture takes precedence over
// Diffuse when specified.
type Material struct {
	Diffuse  Color
	Texture  opt.T[string]
	Specular opt.T[Color]
}
