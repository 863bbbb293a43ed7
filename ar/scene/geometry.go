package scene

// Geometry is the shape attached to a node.
type Geometry interface {
	isGeometry()
}

// Plane is a rectangle in the node's local XY plane, facing +Z.
type Plane struct {
	Width  float32
	Height float32
}

func (Plane) isGeometry() {}

// Cone is a cone along the node's local Y axis.
type Cone struct {
	TopRadius    float32
	BottomRadius float32
	Height       float32
}

func (Cone) isGeometry() {}
