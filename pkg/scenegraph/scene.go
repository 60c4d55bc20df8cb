package scenegraph

import (
	"github.com/optobench/opticore/pkg/core"
)

// Scene is an ordered sequence of components. Order is irrelevant to
// the physics (nearest hit wins) but is the tie-break spec.md §4.5/§8
// requires for equal-t hits, so Components is a plain slice scanned in
// order rather than any structure that could reorder entries (see
// DESIGN.md's note on why this module drops the teacher's BVH).
type Scene struct {
	Components []Component
}

func NewScene() *Scene { return &Scene{} }

// Add appends a component, preserving scan order for tie-breaks.
func (s *Scene) Add(c Component) { s.Components = append(s.Components, c) }

// NearestHit scans every component for the closest valid intersection
// beyond core.Epsilon, in scene order, matching spec.md §4.5 step 2's
// tie-break rule: on equal t, the earlier component in Components wins
// because a strictly-less comparison never replaces the current best.
func (s *Scene) NearestHit(ray core.Ray, tMax float64) (Component, core.HitRecord, bool) {
	var best Component
	var bestHit core.HitRecord
	found := false
	closest := tMax

	for _, c := range s.Components {
		hit, ok := ChkIntersection(c, ray)
		if !ok || hit.T <= core.Epsilon || hit.T >= closest {
			continue
		}
		best = c
		bestHit = hit
		closest = hit.T
		found = true
	}
	return best, bestHit, found
}

// ByID returns the component with the given stable id, or nil.
func (s *Scene) ByID(id string) Component {
	for _, c := range s.Components {
		if c.ID() == id {
			return c
		}
	}
	return nil
}
