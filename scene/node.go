package scene

import "github.com/go-gl/mathgl/mgl64"

// Node is an entity's transform. Position and Scale use world units.
// Rotation holds euler angles in degrees as authored; animated rotation
// writes land in engine radians (see the animation package).
type Node struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    mgl64.Vec3
	Visible  bool
}

func newNode() *Node {
	return &Node{
		Scale:   mgl64.Vec3{1, 1, 1},
		Visible: true,
	}
}
