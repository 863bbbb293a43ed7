// Package material decides how placeholder surfaces are shaded.
package material

import (
	"github.com/mokiat/gog/opt"

	"github.com/nobonobo/ar-darts/ar/scene"
)

// Tag is the visual state of a placeholder. Tags only move forward:
// Detected, then Selected, then Final.
type Tag int

const (
	TagDetected Tag = iota
	TagSelected
	TagFinal
)

func (t Tag) String() string {
	switch t {
	case TagDetected:
		return "detected"
	case TagSelected:
		return "selected"
	case TagFinal:
		return "final"
	default:
		return "unknown"
	}
}

// CanTransition reports whether a placeholder tagged from may be
// recolored to to. Tags advance one step at a time.
func CanTransition(from, to Tag) bool {
	return from >= TagDetected && to == from+1 && to <= TagFinal
}

const DefaultDartboardTexture = "dartboard.png"

// Policy maps tags to materials.
type Policy struct {
	dartboardTexture string
}

func NewPolicy(dartboardTexture string) Policy {
	if dartboardTexture == "" {
		dartboardTexture = DefaultDartboardTexture
	}
	return Policy{
		dartboardTexture: dartboardTexture,
	}
}

func (p Policy) Material(tag Tag) scene.Material {
	switch tag {
	case TagDetected:
		return scene.Material{
			Diffuse: scene.RGBA(1, 0, 0, 0.5),
		}
	case TagSelected:
		return scene.Material{
			Diffuse: scene.RGBA(0, 0, 1, 0.5),
		}
	case TagFinal:
		return scene.Material{
			Diffuse: scene.White(),
			Texture: opt.V(p.dartboardTexture),
		}
	default:
		panic("material: unknown tag")
	}
}
