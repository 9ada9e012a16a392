package app

import (
	"log"
	"time"

	"github.com/ayusman/drishti/internal/capture"
	"github.com/ayusman/drishti/internal/engine"
)

// runPipeline is the main tracking loop. It manages the transition between
// idle and active modes based on motion detection, runs face landmark
// detection while active, and drives the pointer engine.
//
// Pipeline logic:
// 1. Start in idle mode (5 FPS)
// 2. On motion detected, switch to active mode (15 FPS)
// 3. Run face landmark detection
// 4. Extract the signal frame and tick the engine
// 5. No face means a nil tick: the pointer holds its position
// 6. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}) {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(capture.IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(capture.ActiveFPS)
					frameInterval = time.Second / time.Duration(capture.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(capture.IdleFPS)
					frameInterval = time.Second / time.Duration(capture.IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing if not in active mode or no detector
			detector := a.Detector()
			if !activeMode || detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Face landmark detection
			face, err := detector.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting face: %v", err)
				continue
			}

			// Step 3: Tick the engine. A missing face still ticks with nil
			// so the pointer holds in place instead of jumping.
			a.engineMu.Lock()
			now := time.Now()
			if face != nil {
				// A visible face counts as presence even when perfectly still
				lastMotionTime = now
				result := a.engine.Tick(face.Extract(), now)
				a.engineMu.Unlock()
				a.publish(result)
				continue
			}
			result := a.engine.Tick(nil, now)
			a.engineMu.Unlock()
			if result.Updated {
				a.publish(result)
			}
		}
	}
}

// publish hands a tick result to the registered sink, if any.
func (a *App) publish(result engine.TickResult) {
	a.mu.RLock()
	sink := a.onResult
	a.mu.RUnlock()
	if sink != nil {
		sink(result)
	}
}
