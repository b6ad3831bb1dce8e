package parameter

import "math"

// Instance Layout
const (
	// DefaultInstanceCount is the fixed working set of instances on the sphere
	DefaultInstanceCount = 2500

	// DefaultSphereRadius is the radius of the Fibonacci sphere
	DefaultSphereRadius = 3.0

	// InstanceRadius is the radius of a single instance sphere (render size)
	InstanceRadius = 0.06
)

// GoldenAngle is the spiral increment between consecutive instances: π(1+√5)
var GoldenAngle = math.Pi * (1 + math.Sqrt(5))

// Palette
// Lightness runs from LightnessFrom at index 0 toward LightnessTo at the last index
const (
	DefaultLightnessFrom = 0.69
	DefaultLightnessTo   = 0.169

	// DefaultSaturation is fixed for every instance
	DefaultSaturation = 0.9

	// DefaultBoost multiplies the dominant channel; 1 disables the boost
	DefaultBoost = 1.0
)

// Instanced Mesh Orientation (Euler XYZ, radians)
const (
	DefaultMeshRotationX = -0.7
	DefaultMeshRotationY = -2.5
	DefaultMeshRotationZ = 2.0
)
