package positioner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimcharli/mac-app-positioner/internal/config"
	"github.com/kimcharli/mac-app-positioner/internal/layout"
	"github.com/kimcharli/mac-app-positioner/internal/monitor"
	"github.com/kimcharli/mac-app-positioner/internal/platform"
	"github.com/kimcharli/mac-app-positioner/internal/profile"
)

type moveCall struct {
	pid    int
	target platform.Rect
}

// fakeBackend scripts the three collaborators for pipeline tests.
type fakeBackend struct {
	monitors   []platform.RawMonitor
	displayErr error
	apps       []platform.App
	sizes      map[int]platform.Size
	moveErr    map[int]error
	// moveShift offsets the reported actual rectangle per pid, emulating
	// a window server adjustment.
	moveShift map[int]platform.Size
	moves     []moveCall
}

func (f *fakeBackend) Displays(context.Context) ([]platform.RawMonitor, error) {
	return f.monitors, f.displayErr
}

func (f *fakeBackend) RunningApps(context.Context) ([]platform.App, error) {
	return f.apps, nil
}

func (f *fakeBackend) NaturalSize(_ context.Context, pid int) (platform.Size, error) {
	if s, ok := f.sizes[pid]; ok {
		return s, nil
	}
	return platform.Size{}, platform.ErrSizeUnavailable
}

func (f *fakeBackend) Move(_ context.Context, pid int, target platform.Rect) (platform.Rect, error) {
	f.moves = append(f.moves, moveCall{pid: pid, target: target})
	if err, ok := f.moveErr[pid]; ok {
		return platform.Rect{}, err
	}
	actual := target
	if shift, ok := f.moveShift[pid]; ok {
		actual.X += shift.Width
		actual.Y += shift.Height
	}
	return actual, nil
}

func (f *fakeBackend) Trusted() bool { return true }

type memHints struct {
	stored   map[string]platform.Hint
	replaced map[string]platform.Hint
}

func (m *memHints) All() (map[string]platform.Hint, error) { return m.stored, nil }
func (m *memHints) Replace(h map[string]platform.Hint) error {
	m.replaced = h
	return nil
}

func deskBackend() *fakeBackend {
	return &fakeBackend{
		monitors: []platform.RawMonitor{
			{Name: "Built-in Display", Width: 2056, Height: 1329, IsMain: true, IsBuiltin: true},
			{Name: "Display-4k", Width: 3840, Height: 2160, ArrangementY: 1329},
		},
		apps: []platform.App{
			{Name: "Chrome", BundleID: "com.google.Chrome", PID: 101},
			{Name: "Outlook", BundleID: "com.microsoft.Outlook", PID: 102},
			{Name: "Obsidian", BundleID: "md.obsidian", PID: 103},
		},
		sizes: map[int]platform.Size{
			101: {Width: 1024, Height: 768},
			102: {Width: 1200, Height: 800},
		},
	}
}

func deskConfig() *config.Config {
	return &config.Config{
		Tolerance: layout.DefaultTolerance,
		Profiles: []profile.Profile{
			{
				Name: "home",
				Monitors: []profile.MonitorSpec{
					{Resolution: "3840x2160", Role: profile.RolePrimary},
					{Resolution: profile.BuiltinResolution, Role: profile.RoleBuiltin},
				},
				Layout: map[string]profile.Zone{
					profile.RolePrimary: {Quadrants: &profile.Quadrants{
						TopLeft:     "com.google.Chrome",
						BottomRight: "com.microsoft.Outlook",
					}},
					profile.RoleBuiltin: {Apps: []string{"md.obsidian"}},
				},
			},
		},
	}
}

func TestRunPositionsEverything(t *testing.T) {
	backend := deskBackend()
	runner := &Runner{Backend: backend, Config: deskConfig()}

	report, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "home", report.Profile)
	require.NotNil(t, report.Primary)
	assert.Equal(t, "Display-4k", report.Primary.ID)
	assert.Equal(t, monitor.Point{X: 0, Y: -2160}, report.Primary.PositioningOrigin)

	require.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Succeeded())
	assert.Equal(t, 0, report.Failed())

	// Quadrant placements on the 4K monitor, corner-aligned.
	chrome := report.Results[0]
	assert.Equal(t, "com.google.Chrome", chrome.AppID)
	assert.Equal(t, layout.TopLeft, chrome.Quadrant)
	assert.Equal(t, platform.Rect{X: 0, Y: -2160, Width: 1024, Height: 768}, chrome.Target)
	assert.True(t, chrome.WithinTolerance)

	outlook := report.Results[1]
	assert.Equal(t, "com.microsoft.Outlook", outlook.AppID)
	assert.Equal(t, layout.BottomRight, outlook.Quadrant)
	assert.Equal(t, platform.Rect{X: 2640, Y: -1080, Width: 1200, Height: 800}, outlook.Target)

	// Built-in zone gets the full monitor rectangle.
	obsidian := report.Results[2]
	assert.Equal(t, "md.obsidian", obsidian.AppID)
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 2056, Height: 1329}, obsidian.Target)

	assert.Len(t, backend.moves, 3)
}

func TestRunBestEffortOnMoveFailure(t *testing.T) {
	backend := deskBackend()
	backend.moveErr = map[int]error{101: platform.ErrMoveFailed}
	runner := &Runner{Backend: backend, Config: deskConfig()}

	report, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 2, report.Succeeded())
	require.ErrorIs(t, report.Results[0].Err, platform.ErrMoveFailed)

	// The failed app did not block the others.
	assert.Len(t, backend.moves, 3)
}

func TestRunSkipsMissingApplication(t *testing.T) {
	backend := deskBackend()
	backend.apps = backend.apps[1:] // Chrome not running
	runner := &Runner{Backend: backend, Config: deskConfig()}

	report, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	assert.Error(t, report.Results[0].Err)
	assert.Equal(t, 2, report.Succeeded())
	assert.Len(t, backend.moves, 2)
}

func TestRunDryRunMovesNothing(t *testing.T) {
	backend := deskBackend()
	runner := &Runner{Backend: backend, Config: deskConfig()}

	report, err := runner.Run(context.Background(), Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 3, report.Succeeded())
	assert.Empty(t, backend.moves)
}

func TestRunStructuralErrorAbortsBeforeMoves(t *testing.T) {
	backend := deskBackend()
	backend.monitors[1].IsMain = true // two mains
	runner := &Runner{Backend: backend, Config: deskConfig()}

	_, err := runner.Run(context.Background(), Options{})
	require.ErrorIs(t, err, monitor.ErrConfiguration)
	assert.True(t, IsStructural(err))
	assert.Empty(t, backend.moves)
}

func TestRunExplicitProfile(t *testing.T) {
	backend := deskBackend()
	cfg := deskConfig()
	cfg.Profiles = append([]profile.Profile{{
		Name:     "office",
		Monitors: []profile.MonitorSpec{{Resolution: "3440x1440", Role: profile.RolePrimary}},
		Layout: map[string]profile.Zone{
			profile.RolePrimary: {Quadrants: &profile.Quadrants{TopLeft: "com.google.Chrome"}},
		},
	}}, cfg.Profiles...)
	runner := &Runner{Backend: backend, Config: cfg}

	// office declares first but its primary is absent; requesting home
	// explicitly skips matching.
	report, err := runner.Run(context.Background(), Options{Profile: "home"})
	require.NoError(t, err)
	assert.Equal(t, "home", report.Profile)

	_, err = runner.Run(context.Background(), Options{Profile: "office"})
	require.ErrorIs(t, err, profile.ErrNotSatisfiable)

	_, err = runner.Run(context.Background(), Options{Profile: "beach"})
	require.ErrorIs(t, err, profile.ErrNotSatisfiable)
}

func TestRunToleranceJudgesResults(t *testing.T) {
	backend := deskBackend()
	// Title bar eats 22 pixels of the Chrome move.
	backend.moveShift = map[int]platform.Size{101: {Width: 0, Height: 22}}
	runner := &Runner{Backend: backend, Config: deskConfig()}

	report, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.True(t, report.Results[0].WithinTolerance)
	assert.NoError(t, report.Results[0].Err)

	// Tightening the tolerance flags the same shift as off-target, still
	// without turning it into an error.
	backend.moves = nil
	report, err = runner.Run(context.Background(), Options{Tolerance: 10})
	require.NoError(t, err)
	assert.False(t, report.Results[0].WithinTolerance)
	assert.NoError(t, report.Results[0].Err)
}

func TestRunVerifyStrategyReissuesOnce(t *testing.T) {
	backend := deskBackend()
	backend.moveShift = map[int]platform.Size{101: {Width: 0, Height: 80}}
	cfg := deskConfig()
	cfg.Applications = map[string]config.AppSettings{
		"com.google.Chrome": {Strategy: config.StrategyVerify},
	}
	runner := &Runner{Backend: backend, Config: cfg}

	report, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	var chromeMoves int
	for _, call := range backend.moves {
		if call.pid == 101 {
			chromeMoves++
		}
	}
	assert.Equal(t, 2, chromeMoves)
	// Still off-target after the retry: reported as soft, not an error.
	assert.False(t, report.Results[0].WithinTolerance)
	assert.NoError(t, report.Results[0].Err)
}

func TestRunMatchedProfileWithMissingSecondaryZone(t *testing.T) {
	backend := deskBackend()
	cfg := deskConfig()
	// Profile also wants a side monitor that is not connected; its zone is
	// skipped, the rest still positions.
	cfg.Profiles[0].Monitors = append(cfg.Profiles[0].Monitors,
		profile.MonitorSpec{Resolution: "2560x1440", Role: "right"})
	cfg.Profiles[0].Layout["right"] = profile.Zone{Apps: []string{"com.apple.Music"}}

	runner := &Runner{Backend: backend, Config: cfg}

	// Matching would reject the profile (2560x1440 absent), so request it
	// explicitly: only the primary resolution must be present.
	report, err := runner.Run(context.Background(), Options{Profile: "home"})
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	for _, res := range report.Results {
		assert.NotEqual(t, "com.apple.Music", res.AppID)
	}
}

func TestRunRefreshesHints(t *testing.T) {
	backend := deskBackend()
	hints := &memHints{}
	runner := &Runner{Backend: backend, Config: deskConfig(), Hints: hints}

	_, err := runner.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.NotNil(t, hints.replaced)
	assert.Equal(t, platform.Hint{PositioningX: 0, PositioningY: -2160}, hints.replaced["Display-4k"])
}

func TestDetect(t *testing.T) {
	runner := &Runner{Backend: deskBackend(), Config: deskConfig()}

	name, err := runner.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "home", name)
}

func TestDetectNoMatch(t *testing.T) {
	backend := deskBackend()
	backend.monitors = backend.monitors[:1]
	runner := &Runner{Backend: backend, Config: deskConfig()}

	_, err := runner.Detect(context.Background())
	require.ErrorIs(t, err, profile.ErrNoMatch)
}

func TestSnapshotPropagatesEnumerationError(t *testing.T) {
	backend := deskBackend()
	backend.displayErr = errors.New("boom")
	runner := &Runner{Backend: backend, Config: deskConfig()}

	_, err := runner.Snapshot(context.Background())
	require.Error(t, err)
}

func TestCachedOriginsSurviveEnumerationFailure(t *testing.T) {
	backend := deskBackend()
	backend.displayErr = errors.New("display services unavailable")
	hints := &memHints{stored: map[string]platform.Hint{
		"Built-in Display": {PositioningX: 0, PositioningY: 0},
		"Display-4k":       {PositioningX: 0, PositioningY: -2160},
	}}
	runner := &Runner{Backend: backend, Config: deskConfig(), Hints: hints}

	_, err := runner.Snapshot(context.Background())
	require.Error(t, err)

	cached := runner.CachedOrigins()
	require.Len(t, cached, 2)
	assert.Equal(t, platform.Hint{PositioningX: 0, PositioningY: -2160}, cached["Display-4k"])

	// The cache was only read, never rewritten from the failed snapshot.
	assert.Nil(t, hints.replaced)
}

func TestCachedOriginsWithoutStore(t *testing.T) {
	runner := &Runner{Backend: deskBackend(), Config: deskConfig()}
	assert.Nil(t, runner.CachedOrigins())
}

func TestSnapshotKeepsHintsOnBrokenArrangement(t *testing.T) {
	backend := deskBackend()
	// Two side-by-side monitors whose positioning rectangles overlap.
	backend.monitors = []platform.RawMonitor{
		{Name: "a", Width: 1920, Height: 1080, IsMain: true},
		{Name: "b", Width: 1920, Height: 1080, ArrangementX: 100},
	}
	hints := &memHints{}
	runner := &Runner{Backend: backend, Config: deskConfig(), Hints: hints}

	reg, err := runner.Snapshot(context.Background())
	require.ErrorIs(t, err, monitor.ErrConfiguration)
	require.NotNil(t, reg)
	assert.Nil(t, hints.replaced)
}
