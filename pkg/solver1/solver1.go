// Package solver1 implements the recursive branching geometric ray
// tracer: given a scene and a set of source rays, it walks each ray
// through its interactions, following every child an element's
// Interact spawns (reflection, refraction, and a split's transmitted
// and reflected branches all become separate Segments here — no
// stochastic collapse the way Solver 3 does), and returns the
// resulting path tree. Grounded on the teacher's
// pkg/integrator/path_tracing.go rayColorRecursive shape (depth-limited
// recursion, emitted-vs-scattered split) generalized from "accumulate a
// radiance" to "branch into every child ray a component spawns".
package solver1

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/optobench/opticore/pkg/core"
	"github.com/optobench/opticore/pkg/scenegraph"
)

// Segment is one traced ray and, if it struck something and kept
// going, the child segments that continued from there.
type Segment struct {
	Ray       core.Ray
	Hit       *core.HitRecord      // nil when the ray escaped without striking anything
	Component scenegraph.Component // the element Hit belongs to, nil when Hit is nil
	Children  []Segment
}

// Config bounds the recursion the way spec.md §4.5 requires: MaxDepth
// caps branch recursion, MinThroughput prunes a child whose intensity
// has decayed below visual significance, EscapeDistanceMM is how far an
// un-terminated ray is drawn before being cut off.
type Config struct {
	MaxDepth         int
	MinThroughput    float64
	EscapeDistanceMM float64
}

// DefaultConfig mirrors spec.md's named constants.
func DefaultConfig() Config {
	return Config{
		MaxDepth:         core.MaxDepth,
		MinThroughput:    core.MinThroughput,
		EscapeDistanceMM: core.EscapeDistanceMM,
	}
}

// Trace walks a single source ray through scene, branching recursively.
func Trace(scene *scenegraph.Scene, ray core.Ray, cfg Config) Segment {
	return trace(scene, ray, cfg, cfg.MaxDepth)
}

func trace(scene *scenegraph.Scene, ray core.Ray, cfg Config, depthRemaining int) Segment {
	if depthRemaining <= 0 || ray.Intensity < cfg.MinThroughput || !ray.IsValid() {
		return Segment{Ray: terminalRay(ray, cfg)}
	}

	component, hit, ok := scene.NearestHit(ray, cfg.EscapeDistanceMM)
	if !ok {
		return Segment{Ray: terminalRay(ray, cfg)}
	}

	result := component.Interact(ray, hit)
	recordedRay := ray
	recordedRay.InteractionDistanceMM = hit.T
	seg := Segment{Ray: recordedRay, Hit: &hit, Component: component}
	if result.Passthrough && len(result.Rays) == 1 {
		// A passthrough child continues the same visual segment rather
		// than starting a visually distinct branch; still recurse so
		// downstream interactions are captured, just without inflating
		// the branch count for a beam that didn't actually split.
		seg.Children = []Segment{trace(scene, result.Rays[0], cfg, depthRemaining-1)}
		return seg
	}

	for _, child := range result.Rays {
		if child.Intensity < cfg.MinThroughput {
			continue
		}
		seg.Children = append(seg.Children, trace(scene, child, cfg, depthRemaining-1))
	}
	return seg
}

// terminalRay marks where an un-terminated ray is drawn to when nothing
// absorbs it first.
func terminalRay(ray core.Ray, cfg Config) core.Ray {
	if ray.TerminationPoint != nil || !ray.IsValid() {
		return ray
	}
	term := ray.At(cfg.EscapeDistanceMM)
	r := ray
	r.TerminationPoint = &term
	return r
}

// TraceAll traces every source ray concurrently, one goroutine per ray
// with no limit set on the errgroup, preserving
// input order in the returned slice (each goroutine writes its own
// index, never appending) so a given scene + source list always
// produces the same report order run to run.
func TraceAll(ctx context.Context, scene *scenegraph.Scene, rays []core.Ray, cfg Config) ([]Segment, error) {
	segments := make([]Segment, len(rays))
	g, ctx := errgroup.WithContext(ctx)
	for i, ray := range rays {
		i, ray := i, ray
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			segments[i] = Trace(scene, ray, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

// CountNodes returns the total number of segments in the tree rooted
// at seg, including seg itself — used by callers reporting how large a
// traced path is.
func (s Segment) CountNodes() int {
	total := 1
	for _, c := range s.Children {
		total += c.CountNodes()
	}
	return total
}

// Leaves collects every terminal (childless) segment under s.
func (s Segment) Leaves() []Segment {
	if len(s.Children) == 0 {
		return []Segment{s}
	}
	var leaves []Segment
	for _, c := range s.Children {
		leaves = append(leaves, c.Leaves()...)
	}
	return leaves
}
