package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/perception"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the frame loop. It owns the idle/active mode switching
// and hands every detected frame to the session.
//
// Loop logic:
// 1. Start in idle mode at the idle frame rate
// 2. On motion, switch to active mode at the active frame rate
// 3. In active mode, run the landmark engine and step the session
// 4. After 2s without motion, drop back to idle
func (a *App) runPipeline(stopCh chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(a.config.IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.Grab()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame.Mat)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.config.ActiveFPS)
					frameInterval = time.Second / time.Duration(a.config.ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(a.config.IdleFPS)
					frameInterval = time.Second / time.Duration(a.config.IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			engine := a.Engine()
			result, err := engine.Detect(frame.Mat)
			timestampMs := frame.TimestampMs
			frame.Close()

			if err != nil {
				log.Printf("Error detecting landmarks: %v", err)
				continue
			}

			// The camera stamp, not the engine's, identifies the source
			// frame for dedup.
			result.TimestampMs = timestampMs

			a.Process(result)
		}
	}
}

// Process steps the session with one engine result and fans the update
// out. Duplicate frames produce no events and no broadcast.
func (a *App) Process(result perception.Result) session.Update {
	a.mu.Lock()
	update := a.session.Step(result)
	if update.Duplicate {
		a.mu.Unlock()
		return update
	}

	events := a.collectEvents(update)
	onUpdate := a.onUpdate
	onLabel := a.onLabel
	a.mu.Unlock()

	for i := range events {
		a.logEvent(&events[i])
		if events[i].Kind == store.EventGesture && onLabel != nil {
			onLabel(events[i].Label)
		}
	}
	if onUpdate != nil {
		onUpdate(update)
	}
	return update
}

// collectEvents diffs the update against the per-slot label state and
// returns the events to record. Caller holds the lock.
func (a *App) collectEvents(update session.Update) []store.Event {
	var events []store.Event

	for _, hand := range update.Hands {
		label := string(hand.Gesture)
		if a.lastGesture[hand.Slot] == label {
			continue
		}
		a.lastGesture[hand.Slot] = label
		events = append(events, store.Event{
			SessionID: a.sessionID,
			Kind:      store.EventGesture,
			Label:     label,
			Slot:      hand.Slot,
		})
	}

	for _, body := range update.Bodies {
		label := string(body.Pose)
		if a.lastPose[body.Slot] == label {
			continue
		}
		a.lastPose[body.Slot] = label
		events = append(events, store.Event{
			SessionID: a.sessionID,
			Kind:      store.EventPose,
			Label:     label,
			Slot:      body.Slot,
		})
	}

	if update.Committed != nil {
		events = append(events, store.Event{
			SessionID: a.sessionID,
			Kind:      store.EventStroke,
			Label:     update.Committed.ID,
		})
	}

	return events
}

// logEvent writes one event to the store, if one is configured.
func (a *App) logEvent(event *store.Event) {
	if a.config.Store == nil {
		return
	}
	if err := a.config.Store.Events().Log(event); err != nil {
		log.Printf("Failed to log %s event: %v", event.Kind, err)
	}
}
