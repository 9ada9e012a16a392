// Package app orchestrates the Drishti head tracking pipeline: camera
// frames in, face landmarks extracted, the pointer engine ticked, and
// activations dispatched to bound plugin actions.
package app

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/engine"
	"github.com/ayusman/drishti/internal/landmark"
	"github.com/ayusman/drishti/internal/plugin"
	"github.com/ayusman/drishti/internal/store"
	"github.com/ayusman/drishti/internal/ui"
)

// Pipeline timing constants.
const (
	// IdleTimeoutMs is the time in milliseconds without motion before the
	// pipeline drops back to the idle frame rate.
	IdleTimeoutMs = 2000
	// PluginTimeoutMs bounds a single plugin action execution.
	PluginTimeoutMs = 5000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	PluginDir    string
	CameraID     int
	MotionThresh float64
	Viewport     engine.Viewport
}

// App is the main application that orchestrates head tracking and action
// execution.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   landmark.Detector
	tree       *ui.Tree
	engine     *engine.Engine
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	// engineMu serializes engine access between the pipeline goroutine and
	// calibration updates arriving over HTTP.
	engineMu sync.Mutex

	// onResult receives every processed tick, e.g. for the pointer hub.
	onResult func(engine.TickResult)
	// onActivation receives dispatched activations, e.g. for the tray.
	onActivation func(engine.Activation)

	lastActivation   engine.Activation
	lastActivationMu sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}
	if config.Viewport.Width <= 0 || config.Viewport.Height <= 0 {
		config.Viewport = engine.Viewport{Width: 1280, Height: 800}
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		tree:       ui.NewTree(),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(PluginTimeoutMs),
		enabled:    false,
		stopCh:     nil,
	}

	a.engine = engine.New(config.Viewport, a.tree, engine.DispatcherFunc(a.dispatch))

	// Try MediaPipe first, fall back to mock detector
	if mp, err := landmark.NewMediaPipeDetector(landmark.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe face landmark detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = landmark.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables tracking. Disabling resets the engine so
// no half-finished dwell or pending gesture survives the toggle.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.engineMu.Lock()
		a.engine.Reset()
		a.engineMu.Unlock()
	}
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera implementation, e.g. a playback camera in
// tests. Must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetDetector sets the face landmark detector implementation to use.
func (a *App) SetDetector(d landmark.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetResultSink registers a callback that receives every processed tick.
func (a *App) SetResultSink(fn func(engine.TickResult)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onResult = fn
}

// SetActivationSink registers a callback that receives every activation.
func (a *App) SetActivationSink(fn func(engine.Activation)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onActivation = fn
}

// ApplyProfile applies a stored profile's calibration to the running
// engine, along with the baseline trained from the profile's samples, if
// it has any.
func (a *App) ApplyProfile(p *store.Profile) {
	a.engineMu.Lock()
	a.engine.SetCalibration(p.Calibration())
	a.engineMu.Unlock()

	if a.config.Store == nil || p.Samples == 0 {
		return
	}

	samples, err := a.config.Store.Samples().DataByProfileID(p.ID)
	if err != nil {
		log.Printf("Failed to load samples for profile %s: %v", p.Name, err)
		return
	}
	if len(samples) == 0 {
		return
	}

	baseline, err := engine.NewTuner().Train(samples)
	if err != nil {
		log.Printf("Failed to train baseline for profile %s: %v", p.Name, err)
		return
	}
	a.ApplyBaseline(baseline)

	log.Printf("Applied profile %q (%d samples)", p.Name, len(samples))
}

// ApplyBaseline applies a trained baseline to the running engine.
func (a *App) ApplyBaseline(b engine.Baseline) {
	a.engineMu.Lock()
	defer a.engineMu.Unlock()
	a.engine.SetBaseline(b)
}

// LoadActiveProfile looks up the active profile in the store and applies
// it. Without one the engine keeps its defaults.
func (a *App) LoadActiveProfile() error {
	if a.config.Store == nil {
		return nil
	}

	active, err := a.config.Store.Profiles().GetActive()
	if err != nil {
		return err
	}
	if active == nil {
		log.Println("No active profile; using default calibration")
		return nil
	}

	a.ApplyProfile(active)
	return nil
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Start at the idle frame rate
	a.camera.SetFPS(capture.IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the landmark detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// dispatch runs every enabled binding for the activated element. It is the
// engine's dispatcher; a failing binding is reported but does not block
// the others.
func (a *App) dispatch(act engine.Activation) error {
	a.lastActivationMu.Lock()
	a.lastActivation = act
	a.lastActivationMu.Unlock()

	a.mu.RLock()
	sink := a.onActivation
	a.mu.RUnlock()
	if sink != nil {
		sink(act)
	}

	if a.config.Store == nil {
		return nil
	}

	bindings, err := a.config.Store.Bindings().GetByElementID(act.Target)
	if err != nil {
		return fmt.Errorf("failed to load bindings for %s: %w", act.Target, err)
	}

	var firstErr error
	for _, b := range bindings {
		if err := a.runBinding(b, act); err != nil {
			log.Printf("Binding %s (%s/%s) failed: %v", b.ID, b.PluginName, b.ActionName, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// runBinding executes one plugin action for an activation.
func (a *App) runBinding(b *store.Binding, act engine.Activation) error {
	plug, err := a.pluginMgr.Get(b.PluginName)
	if err != nil {
		return err
	}

	params, err := json.Marshal(map[string]interface{}{
		"activated_at": act.At.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	req := &plugin.Request{
		Action:  b.ActionName,
		Element: act.Target,
		Source:  string(act.Source),
		Config:  b.Config,
		Params:  params,
	}

	resp, err := a.pluginExec.Execute(plug, req)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("plugin reported failure: %s", resp.Error)
	}
	return nil
}

// LastActivation returns the most recently dispatched activation.
func (a *App) LastActivation() engine.Activation {
	a.lastActivationMu.RLock()
	defer a.lastActivationMu.RUnlock()
	return a.lastActivation
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Tree returns the shared UI layout tree the engine hit-tests against.
func (a *App) Tree() *ui.Tree {
	return a.tree
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the face landmark detector.
func (a *App) Detector() landmark.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
