// Package components implements the concrete optical element library
// (spec.md §4.4): every element embeds scenegraph.Base and implements
// scenegraph.Component's Intersect/Interact/ABCD/ApertureRadiusMM
// contract in local coordinates, where the optical axis is +Z and the
// transverse plane is (X, Y) per spec.md §4.3's axis convention.
//
// The flat-plane and spherical-cap intersection helpers below are the
// direct generalization of the teacher's pkg/geometry Disc/Sphere Hit
// methods (see DESIGN.md) to the local-frame-only, axis-fixed-at-Z
// convention every component here shares.
package components

import (
	"math"

	"github.com/optobench/opticore/pkg/core"
)

// intersectDiscLocal finds the hit of localRay against a disc of the
// given radius lying in the local z=localZ plane, normal pointing
// toward +Z. Matches the teacher's Disc.Hit plane-then-radius-clip
// structure, specialized to the z=const plane every local-frame
// element uses instead of an arbitrary stored normal/center.
func intersectDiscLocal(ray core.Ray, localZ, radiusMM float64) (core.HitRecord, bool) {
	if math.Abs(ray.Direction.Z) < core.GrazingCosine {
		return core.HitRecord{}, false
	}
	t := (localZ - ray.Origin.Z) / ray.Direction.Z
	if t <= core.Epsilon {
		return core.HitRecord{}, false
	}
	point := ray.At(t)
	r2 := point.X*point.X + point.Y*point.Y
	if r2 > radiusMM*radiusMM {
		return core.HitRecord{}, false
	}
	outward := core.NewVec3(0, 0, 1)
	normal, frontFace := core.SetFaceNormal(ray.Direction, outward)
	return core.HitRecord{
		T:              t,
		LocalPoint:     point,
		LocalNormal:    normal,
		LocalDirection: ray.Direction,
		FrontFace:      frontFace,
	}, true
}

// intersectAnnulusLocal is intersectDiscLocal with an inner radius
// hole, for ring-shaped faces. No component calls it at present; the
// curved mirror's absorbing rim uses cylinderRimHit.
func intersectAnnulusLocal(ray core.Ray, localZ, innerRadiusMM, outerRadiusMM float64) (core.HitRecord, bool) {
	hit, ok := intersectDiscLocal(ray, localZ, outerRadiusMM)
	if !ok {
		return core.HitRecord{}, false
	}
	r2 := hit.LocalPoint.X*hit.LocalPoint.X + hit.LocalPoint.Y*hit.LocalPoint.Y
	if r2 < innerRadiusMM*innerRadiusMM {
		return core.HitRecord{}, false
	}
	return hit, true
}

// intersectRectLocal finds the hit of localRay against a rectangle of
// half-width/half-height in the local z=localZ plane.
func intersectRectLocal(ray core.Ray, localZ, halfWidthMM, halfHeightMM float64) (core.HitRecord, bool) {
	if math.Abs(ray.Direction.Z) < core.GrazingCosine {
		return core.HitRecord{}, false
	}
	t := (localZ - ray.Origin.Z) / ray.Direction.Z
	if t <= core.Epsilon {
		return core.HitRecord{}, false
	}
	point := ray.At(t)
	if math.Abs(point.X) > halfWidthMM || math.Abs(point.Y) > halfHeightMM {
		return core.HitRecord{}, false
	}
	outward := core.NewVec3(0, 0, 1)
	normal, _ := core.SetFaceNormal(ray.Direction, outward)
	return core.HitRecord{
		T:              t,
		LocalPoint:     point,
		LocalNormal:    normal,
		LocalDirection: ray.Direction,
	}, true
}

// sphericalCapHit intersects localRay with a sphere of the given
// radius of curvature centered on the local Z axis at centerZ, keeping
// only the root within the cap's axial extent and aperture — the same
// quadratic-then-range-check shape as the teacher's Sphere.Hit, built
// on core.QuadraticRoots instead of an inlined discriminant.
func sphericalCapHit(ray core.Ray, centerZ, radiusOfCurvatureMM, apertureRadiusMM float64, capZMin, capZMax float64) (core.HitRecord, bool) {
	center := core.NewVec3(0, 0, centerZ)
	oc := ray.Origin.Subtract(center)
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radiusOfCurvatureMM*radiusOfCurvatureMM

	t0, t1, ok := core.QuadraticRoots(a, b, c)
	if !ok {
		return core.HitRecord{}, false
	}

	tryRoot := func(t float64) (core.HitRecord, bool) {
		if t <= core.Epsilon {
			return core.HitRecord{}, false
		}
		point := ray.At(t)
		if point.Z < capZMin || point.Z > capZMax {
			return core.HitRecord{}, false
		}
		r2 := point.X*point.X + point.Y*point.Y
		if r2 > apertureRadiusMM*apertureRadiusMM {
			return core.HitRecord{}, false
		}
		outward := point.Subtract(center).Multiply(1 / radiusOfCurvatureMM)
		normal, frontFace := core.SetFaceNormal(ray.Direction, outward)
		return core.HitRecord{
			T:              t,
			LocalPoint:     point,
			LocalNormal:    normal,
			LocalDirection: ray.Direction,
			FrontFace:      frontFace,
		}, true
	}

	if hit, ok := tryRoot(t0); ok {
		return hit, true
	}
	return tryRoot(t1)
}

// cylinderRimHit intersects localRay with an infinite cylinder of the
// given radius about the local Z axis, clipped to [zMin, zMax] — the
// rim test every lens/objective body runs in addition to its curved
// faces.
func cylinderRimHit(ray core.Ray, radiusMM, zMin, zMax float64) (core.HitRecord, bool) {
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Y*ray.Direction.Y
	b := 2 * (ray.Origin.X*ray.Direction.X + ray.Origin.Y*ray.Direction.Y)
	c := ray.Origin.X*ray.Origin.X + ray.Origin.Y*ray.Origin.Y - radiusMM*radiusMM

	t0, t1, ok := core.QuadraticRoots(a, b, c)
	if !ok {
		return core.HitRecord{}, false
	}
	tryRoot := func(t float64) (core.HitRecord, bool) {
		if t <= core.Epsilon {
			return core.HitRecord{}, false
		}
		point := ray.At(t)
		if point.Z < zMin || point.Z > zMax {
			return core.HitRecord{}, false
		}
		outward := core.NewVec3(point.X/radiusMM, point.Y/radiusMM, 0)
		normal, frontFace := core.SetFaceNormal(ray.Direction, outward)
		return core.HitRecord{T: t, LocalPoint: point, LocalNormal: normal, LocalDirection: ray.Direction, FrontFace: frontFace}, true
	}
	if hit, ok := tryRoot(t0); ok {
		return hit, true
	}
	return tryRoot(t1)
}

// cylindricalCapHit intersects localRay with a cylindrical cap curving
// only in the Y-Z plane (axis parallel to local X) — a cylindrical
// lens's curved face. halfWidthMM bounds X, apertureHeightMM bounds the
// Y extent of the face.
func cylindricalCapHit(ray core.Ray, centerZ, radiusOfCurvatureMM, halfWidthMM, apertureHeightMM float64, capZMin, capZMax float64) (core.HitRecord, bool) {
	a := ray.Direction.Y*ray.Direction.Y + ray.Direction.Z*ray.Direction.Z
	ocY := ray.Origin.Y
	ocZ := ray.Origin.Z - centerZ
	b := 2 * (ocY*ray.Direction.Y + ocZ*ray.Direction.Z)
	c := ocY*ocY + ocZ*ocZ - radiusOfCurvatureMM*radiusOfCurvatureMM

	t0, t1, ok := core.QuadraticRoots(a, b, c)
	if !ok {
		return core.HitRecord{}, false
	}

	tryRoot := func(t float64) (core.HitRecord, bool) {
		if t <= core.Epsilon {
			return core.HitRecord{}, false
		}
		point := ray.At(t)
		if point.Z < capZMin || point.Z > capZMax {
			return core.HitRecord{}, false
		}
		if math.Abs(point.X) > halfWidthMM || math.Abs(point.Y) > apertureHeightMM {
			return core.HitRecord{}, false
		}
		outward := core.NewVec3(0, point.Y/radiusOfCurvatureMM, (point.Z-centerZ)/radiusOfCurvatureMM)
		normal, frontFace := core.SetFaceNormal(ray.Direction, outward)
		return core.HitRecord{
			T:              t,
			LocalPoint:     point,
			LocalNormal:    normal,
			LocalDirection: ray.Direction,
			FrontFace:      frontFace,
		}, true
	}

	if hit, ok := tryRoot(t0); ok {
		return hit, true
	}
	return tryRoot(t1)
}

// nearestOf picks whichever of the candidate hits has the smallest t,
// the within-a-single-component analog of Scene.NearestHit's tie-break
// scan, used by compound bodies (lens caps + rim, prism faces).
func nearestOf(hits ...struct {
	Hit core.HitRecord
	OK  bool
}) (core.HitRecord, bool) {
	var best core.HitRecord
	found := false
	for _, h := range hits {
		if !h.OK {
			continue
		}
		if !found || h.Hit.T < best.T {
			best = h.Hit
			found = true
		}
	}
	return best, found
}
