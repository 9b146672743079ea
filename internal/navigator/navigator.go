// Package navigator serves routes over a loaded floor plan. It owns the
// per-floor walkable grids and swaps them atomically on reload.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/udisondev/wayfinder/internal/geo"
	"github.com/udisondev/wayfinder/internal/model"
	"github.com/udisondev/wayfinder/internal/route"
)

var (
	ErrPOINotFound = errors.New("poi not found")
	ErrBadRequest  = errors.New("bad route request")
	ErrTimeout     = errors.New("route computation timed out")
)

// DefaultTimeout bounds a single Route call when none is configured.
const DefaultTimeout = 5 * time.Second

// snapshot is an immutable plan + grids pair.
type snapshot struct {
	plan        *model.MapData
	grids       geo.GridSet
	fingerprint string
}

// Navigator is safe for concurrent use. Route calls read a snapshot;
// Reload builds a new one off to the side and publishes it in one store.
type Navigator struct {
	state   atomic.Pointer[snapshot]
	timeout time.Duration
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithTimeout sets the per-route deadline. Non-positive disables it.
func WithTimeout(d time.Duration) Option {
	return func(n *Navigator) { n.timeout = d }
}

// New builds grids for m and returns a ready navigator.
func New(ctx context.Context, m *model.MapData, opts ...Option) (*Navigator, error) {
	n := &Navigator{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(n)
	}
	if _, err := n.Reload(ctx, m); err != nil {
		return nil, err
	}
	return n, nil
}

// Reload replaces the floor plan. Grids are rebuilt only when the plan's
// fingerprint differs from the current one; the return value reports
// whether a rebuild happened.
func (n *Navigator) Reload(ctx context.Context, m *model.MapData) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("reloading floor plan: %w", err)
	}

	fp, err := m.Fingerprint()
	if err != nil {
		return false, fmt.Errorf("reloading floor plan: %w", err)
	}
	if cur := n.state.Load(); cur != nil && cur.fingerprint == fp {
		slog.Debug("floor plan unchanged, keeping grids", "fingerprint", fp[:12])
		return false, nil
	}

	start := time.Now()
	grids, err := geo.BuildGrids(ctx, m)
	if err != nil {
		return false, fmt.Errorf("building grids: %w", err)
	}

	cells := 0
	for _, g := range grids {
		cells += g.Len()
	}
	n.state.Store(&snapshot{plan: m, grids: grids, fingerprint: fp})

	slog.Info("walkable grids built",
		"floors", len(grids),
		"cells", cells,
		"fingerprint", fp[:12],
		"duration", time.Since(start))
	return true, nil
}

// Map returns the current floor plan. Callers must not modify it.
func (n *Navigator) Map() *model.MapData {
	return n.state.Load().plan
}

// Fingerprint returns the current plan's fingerprint.
func (n *Navigator) Fingerprint() string {
	return n.state.Load().fingerprint
}

// Request selects both endpoints either by POI id or by explicit point.
type Request struct {
	StartPOI   string
	Start      *model.Point
	EndPOI     string
	End        *model.Point
	Accessible bool // elevators only
}

// Result is a computed route.
type Result struct {
	Path         []model.Point
	Instructions []model.Instruction
	Distance     float64

	plan *model.MapData
}

// FeatureCollection exports the route as GeoJSON.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	return route.FeatureCollection(r.Path, r.plan)
}

// PositionAt returns where a walker is after distance feet along the route,
// clamped to its ends. Floor hops take no distance.
func (r *Result) PositionAt(distance float64) (model.Point, bool) {
	return route.PointAt(r.Path, distance)
}

// Route resolves the request's endpoints and computes a route. The search
// runs in its own goroutine and is abandoned when ctx or the navigator
// timeout expires, in which case ErrTimeout is returned.
func (n *Navigator) Route(ctx context.Context, req Request) (*Result, error) {
	snap := n.state.Load()

	start, err := resolve(snap.plan, req.StartPOI, req.Start, "start")
	if err != nil {
		return nil, err
	}
	end, err := resolve(snap.plan, req.EndPOI, req.End, "end")
	if err != nil {
		return nil, err
	}

	filter := route.AnyPortal
	if req.Accessible {
		filter = route.ElevatorsOnly
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, ctxError(err)
	}

	type outcome struct {
		path []model.Point
		err  error
	}
	done := make(chan outcome, 1)
	began := time.Now()
	go func() {
		path, err := route.Find(start, end, snap.plan, snap.grids, filter)
		done <- outcome{path: path, err: err}
	}()

	select {
	case <-ctx.Done():
		slog.Warn("route abandoned", "start", start, "end", end, "error", ctx.Err())
		return nil, ctxError(ctx.Err())
	case out := <-done:
		if out.err != nil {
			slog.Debug("route failed", "start", start, "end", end, "error", out.err)
			return nil, out.err
		}
		res := &Result{
			Path:         out.path,
			Instructions: route.Instructions(out.path, snap.plan),
			Distance:     route.Length(out.path),
			plan:         snap.plan,
		}
		slog.Debug("route found",
			"start", start,
			"end", end,
			"waypoints", len(res.Path),
			"distance", res.Distance,
			"duration", time.Since(began))
		return res, nil
	}
}

func resolve(m *model.MapData, poiID string, p *model.Point, which string) (model.Point, error) {
	switch {
	case poiID != "" && p != nil:
		return model.Point{}, fmt.Errorf("%w: %s given both as poi and point", ErrBadRequest, which)
	case poiID != "":
		poi := m.POI(poiID)
		if poi == nil {
			return model.Point{}, fmt.Errorf("%w: %q", ErrPOINotFound, poiID)
		}
		return poi.Position.OnFloor(poi.FloorID), nil
	case p != nil:
		return *p, nil
	default:
		return model.Point{}, fmt.Errorf("%w: missing %s", ErrBadRequest, which)
	}
}

func ctxError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
