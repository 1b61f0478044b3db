// Package positioner orchestrates a positioning run: enumerate displays,
// build the annotated registry, select a profile, compute the placement
// plan, and drive the window mover. The pipeline is synchronous and works
// over an immutable snapshot; per-application failures never abort the rest
// of the batch.
package positioner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kimcharli/mac-app-positioner/internal/config"
	"github.com/kimcharli/mac-app-positioner/internal/layout"
	"github.com/kimcharli/mac-app-positioner/internal/monitor"
	"github.com/kimcharli/mac-app-positioner/internal/platform"
	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

// Options tune a single positioning run.
type Options struct {
	// Profile skips auto-detection and uses the named profile.
	Profile string

	// Tolerance overrides the configured per-axis pixel tolerance when
	// positive.
	Tolerance int

	// DryRun computes the plan without moving any window.
	DryRun bool
}

// AppResult is the outcome of positioning one application.
type AppResult struct {
	AppID           string
	Quadrant        layout.Quadrant
	Target          platform.Rect
	Actual          platform.Rect
	WithinTolerance bool
	Err             error
}

// RunReport summarizes a positioning run.
type RunReport struct {
	Profile string
	Primary *monitor.Monitor
	Results []AppResult
	DryRun  bool
	Elapsed time.Duration
}

// Succeeded counts applications that were positioned without error.
func (r *RunReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts applications whose positioning errored.
func (r *RunReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Runner wires the pipeline to its collaborators.
type Runner struct {
	Backend platform.Backend
	Config  *config.Config

	// Hints is optional; when set, positioning origins are persisted after
	// each successful registry build and reported as diagnostics when live
	// enumeration fails.
	Hints platform.HintStore
}

// Snapshot enumerates displays and builds the annotated registry. The
// registry may be returned alongside ErrConfiguration so inspection
// commands can still render a broken setup.
func (r *Runner) Snapshot(ctx context.Context) (*monitor.Registry, error) {
	raws, err := r.Backend.Displays(ctx)
	if err != nil {
		for id, h := range r.CachedOrigins() {
			slog.Warn("last known positioning origin",
				"monitor", id, "x", h.PositioningX, "y", h.PositioningY)
		}
		return nil, fmt.Errorf("display enumeration: %w", err)
	}

	reg, err := monitor.BuildRegistry(raws)
	if err == nil && r.Hints != nil {
		// Clean detection; refresh the fallback cache. A broken arrangement
		// must not overwrite the last good origins.
		if herr := r.Hints.Replace(reg.Hints()); herr != nil {
			slog.Warn("could not persist positioning hints", "error", herr)
		}
	}
	return reg, err
}

// CachedOrigins returns the positioning origins persisted by the last
// successful snapshot. Diagnostic only; live enumeration is never bypassed
// with cached data.
func (r *Runner) CachedOrigins() map[string]platform.Hint {
	if r.Hints == nil {
		return nil
	}
	hints, err := r.Hints.All()
	if err != nil {
		slog.Debug("positioning hint cache unreadable", "error", err)
		return nil
	}
	return hints
}

// Detect returns the name of the first profile satisfied by the connected
// monitors.
func (r *Runner) Detect(ctx context.Context) (string, error) {
	reg, err := r.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	p, err := profile.Match(reg.Resolutions(), r.Config.Profiles)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// Run executes a full positioning run. Structural errors (bad display
// configuration, unsatisfiable profile) abort before any window is moved;
// per-application errors are collected into the report.
func (r *Runner) Run(ctx context.Context, opts Options) (*RunReport, error) {
	start := time.Now()

	reg, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	prof, err := r.selectProfile(reg, opts.Profile)
	if err != nil {
		return nil, err
	}
	slog.Info("using profile", "profile", prof.Name)

	apps, err := r.Backend.RunningApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("application discovery: %w", err)
	}
	byBundle := make(map[string]platform.App, len(apps))
	for _, app := range apps {
		byBundle[app.BundleID] = app
	}

	tolerance := r.Config.Tolerance
	if opts.Tolerance > 0 {
		tolerance = opts.Tolerance
	}
	if tolerance <= 0 {
		tolerance = layout.DefaultTolerance
	}

	report := &RunReport{Profile: prof.Name, DryRun: opts.DryRun}

	// Zones execute in monitor-spec declaration order so reports are
	// reproducible.
	for _, spec := range prof.Monitors {
		zone, ok := prof.Layout[spec.Role]
		if !ok {
			continue
		}

		mon, err := r.locate(reg, &spec)
		if err != nil {
			if spec.Role == profile.RolePrimary {
				return nil, err
			}
			slog.Warn("skipping layout zone, monitor not found",
				"role", spec.Role, "resolution", spec.Resolution)
			continue
		}
		if spec.Role == profile.RolePrimary {
			report.Primary = mon
			if !mon.IsMain {
				slog.Warn("primary monitor is not the OS main display; the window server may clamp coordinates",
					"monitor", mon.ID, "resolution", mon.ResolutionKey())
			}
		}

		plan := r.planZone(ctx, mon, zone, byBundle)
		for _, placement := range plan {
			report.Results = append(report.Results,
				r.execute(ctx, placement, byBundle, tolerance, opts.DryRun))
		}
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

func (r *Runner) selectProfile(reg *monitor.Registry, explicit string) (*profile.Profile, error) {
	detected := reg.Resolutions()
	if explicit != "" {
		return profile.Require(explicit, detected, r.Config.Profiles)
	}
	return profile.Match(detected, r.Config.Profiles)
}

// locate resolves a monitor spec against the registry. The builtin
// placeholder matches the built-in screen whatever its panel resolution.
func (r *Runner) locate(reg *monitor.Registry, spec *profile.MonitorSpec) (*monitor.Monitor, error) {
	if spec.Resolution == profile.BuiltinResolution {
		if m := reg.Builtin(); m != nil {
			return m, nil
		}
		return nil, fmt.Errorf("%w: built-in screen not detected", profile.ErrNotSatisfiable)
	}

	w, h, err := profile.ParseResolution(spec.Resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", profile.ErrMalformed, err)
	}
	matches := reg.ByResolution(w, h)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no connected monitor with resolution %s",
			profile.ErrNotSatisfiable, spec.Resolution)
	}
	return matches[0], nil
}

func (r *Runner) planZone(ctx context.Context, mon *monitor.Monitor, zone profile.Zone, byBundle map[string]platform.App) []layout.Placement {
	rect := mon.PositioningRect()
	if zone.Quadrants != nil {
		sizes := func(appID string) (platform.Size, bool) {
			app, ok := byBundle[appID]
			if !ok {
				return platform.Size{}, false
			}
			size, err := r.Backend.NaturalSize(ctx, app.PID)
			if err != nil {
				slog.Debug("natural size unavailable, using quadrant size", "app", appID, "error", err)
				return platform.Size{}, false
			}
			return size, true
		}
		return layout.QuadrantPlan(rect, *zone.Quadrants, sizes)
	}
	return layout.FullZonePlan(rect, zone.Apps)
}

func (r *Runner) execute(ctx context.Context, placement layout.Placement, byBundle map[string]platform.App, tolerance int, dryRun bool) AppResult {
	result := AppResult{
		AppID:    placement.AppID,
		Quadrant: placement.Quadrant,
		Target:   placement.Target,
	}

	app, ok := byBundle[placement.AppID]
	if !ok {
		result.Err = fmt.Errorf("application %s not running", placement.AppID)
		return result
	}

	if dryRun {
		result.Actual = placement.Target
		result.WithinTolerance = true
		return result
	}

	actual, err := r.Backend.Move(ctx, app.PID, placement.Target)
	if err != nil {
		result.Err = fmt.Errorf("moving %s: %w", placement.AppID, err)
		return result
	}

	if !layout.WithinTolerance(placement.Target, actual, tolerance) &&
		r.Config.Strategy(placement.AppID) == config.StrategyVerify {
		// Applications with self-managed windows sometimes override the
		// first request; one re-issue is enough in practice.
		slog.Debug("re-issuing move", "app", placement.AppID,
			"target", placement.Target.String(), "actual", actual.String())
		if retried, rerr := r.Backend.Move(ctx, app.PID, placement.Target); rerr == nil {
			actual = retried
		}
	}

	result.Actual = actual
	result.WithinTolerance = layout.WithinTolerance(placement.Target, actual, tolerance)
	if !result.WithinTolerance {
		// Off-target beyond tolerance is a soft warning, not a failure.
		slog.Warn("window landed outside tolerance",
			"app", placement.AppID,
			"target", placement.Target.String(),
			"actual", actual.String(),
			"tolerance", tolerance)
	}
	return result
}

// IsStructural reports whether an error belongs to the fatal taxonomy that
// aborts a run before any window moves.
func IsStructural(err error) bool {
	return errors.Is(err, monitor.ErrConfiguration) ||
		errors.Is(err, monitor.ErrInvalidMonitorData) ||
		errors.Is(err, profile.ErrMalformed)
}
