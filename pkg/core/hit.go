package core

// HitRecord is a ray-surface intersection result. Local-frame point,
// normal, and direction are kept alongside the world-frame ones so a
// component's interact() never has to round-trip through the pose
// transforms a second time.
type HitRecord struct {
	T float64

	WorldPoint  Vec3
	WorldNormal Vec3

	LocalPoint     Vec3
	LocalNormal    Vec3
	LocalDirection Vec3

	SurfaceIndex int  // which face was hit; -1 marks an absorbing rim hit
	FrontFace    bool // true when the ray approached from the normal's outward side
}

// InteractionResult is what interact() returns: zero or more child rays
// plus an optional passthrough flag. An empty Rays slice means
// absorption. Passthrough marks an uninterrupted refractive pass so
// Solver 3 can elide the visualization segment for it.
type InteractionResult struct {
	Rays        []Ray
	Passthrough bool
}
