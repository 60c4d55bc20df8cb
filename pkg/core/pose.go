package core

// Pose is a component's position and orientation in its parent's
// space. The scene graph is flat (every component is positioned
// directly in world space, per the data model), so "parent" here is
// always the world frame.
//
// WorldToLocal/LocalToWorld are expensive to rebuild (quaternion to
// matrix conversion plus an inverse), so Pose caches them and only
// recomputes when Version changes. Callers mutate a component's pose
// through the scene graph's setters, never by writing Pose fields
// directly, so the cache and the version counter stay in sync.
type Pose struct {
	Position Vec3
	Rotation Quaternion

	version        uint64
	cachedVersion  uint64
	localToWorld   Mat4
	worldToLocal   Mat4
}

// NewPose returns a pose at the given position and orientation with an
// already-valid cache.
func NewPose(position Vec3, rotation Quaternion) Pose {
	p := Pose{Position: position, Rotation: rotation.Normalize()}
	p.rebuild()
	return p
}

func (p *Pose) rebuild() {
	p.localToWorld = NewAffine(p.Rotation, p.Position)
	p.worldToLocal = p.localToWorld.Inverse()
	p.cachedVersion = p.version
}

// ensure recomputes the cached matrices if the pose has been mutated
// since they were last built.
func (p *Pose) ensure() {
	if p.cachedVersion != p.version {
		p.rebuild()
	}
}

// SetPosition updates the position and bumps the version so the next
// transform query rebuilds the cache.
func (p *Pose) SetPosition(position Vec3) {
	p.Position = position
	p.version++
}

// SetRotation updates the orientation (normalizing it) and bumps the version.
func (p *Pose) SetRotation(rotation Quaternion) {
	p.Rotation = rotation.Normalize()
	p.version++
}

// LocalToWorld returns the cached local-to-world affine transform.
func (p *Pose) LocalToWorld() Mat4 {
	p.ensure()
	return p.localToWorld
}

// WorldToLocal returns the cached world-to-local affine transform.
func (p *Pose) WorldToLocal() Mat4 {
	p.ensure()
	return p.worldToLocal
}

// ToLocal transforms a world-space ray into this pose's local frame,
// the first step of the chkIntersection wrapper every component's
// intersect() is called through.
func (p *Pose) ToLocal(ray Ray) Ray {
	w2l := p.WorldToLocal()
	local := ray
	local.Origin = w2l.TransformPoint(ray.Origin)
	local.Direction = w2l.TransformDirection(ray.Direction).Normalize()
	return local
}

// HitToWorld fills in a HitRecord's world-space point and normal from
// its already-computed local-space fields.
func (p *Pose) HitToWorld(hit *HitRecord) {
	l2w := p.LocalToWorld()
	hit.WorldPoint = l2w.TransformPoint(hit.LocalPoint)
	hit.WorldNormal = l2w.TransformDirection(hit.LocalNormal).Normalize()
}
