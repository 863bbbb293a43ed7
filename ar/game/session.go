// Package game runs a single darts round: it tracks which phase the round
// is in, routes taps to the handler of that phase and keeps wall
// placeholders in sync with tracking while walls are being searched.
package game

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"

	"github.com/nobonobo/ar-darts/ar/anchor"
	"github.com/nobonobo/ar-darts/ar/launch"
	"github.com/nobonobo/ar-darts/ar/material"
	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/tracking"
)

var _ tracking.Delegate = (*Session)(nil)

// Session owns the state of one darts round. It is not safe for
// concurrent use; tracking and tap callbacks must arrive on one serial
// context.
type Session struct {
	renderer scene.Renderer
	logger   *slog.Logger
	status   StatusReporter

	onFailed      func(err error)
	onInterrupted func()
	onResumed     func()

	registry *anchor.Registry
	launcher *launch.Launcher

	phase    Phase
	selected opt.T[uuid.UUID]
	darts    []launch.Projectile
}

func NewSession(renderer scene.Renderer, cfg *Config) *Session {
	s := &Session{
		renderer:      renderer,
		logger:        cfg.logger,
		status:        cfg.status,
		onFailed:      cfg.onFailed,
		onInterrupted: cfg.onInterrupted,
		onResumed:     cfg.onResumed,
		phase:         PhaseSearching,
	}
	s.registry = anchor.NewRegistry(anchor.Info{
		Graph:  renderer,
		Policy: material.NewPolicy(cfg.dartboardTexture),
		Gate: func() bool {
			return s.phase == PhaseSearching
		},
		Logger: opt.V(cfg.logger),
	})
	s.launcher = launch.NewLauncher(launch.Info{
		Graph:       renderer,
		Animator:    renderer,
		PointOfView: renderer,
		Duration:    opt.V(cfg.dartDuration),
		Orientation: cfg.dartOrientation,
		Logger:      opt.V(cfg.logger),
	})
	s.reportStatus(s.phase.Status())
	return s
}

// Reset starts a new round. Placeholders are forgotten, not detached;
// the tracking provider is expected to restart as well.
func (s *Session) Reset() {
	s.registry.Reset()
	s.selected = opt.T[uuid.UUID]{}
	s.darts = nil
	s.phase = PhaseSearching
	s.logger.Info("Session reset")
	s.reportStatus(s.phase.Status())
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Selected returns the id of the wall chosen for the dartboard. It is a
// reference only; the surface itself belongs to the tracking provider.
func (s *Session) Selected() opt.T[uuid.UUID] {
	return s.selected
}

func (s *Session) Registry() *anchor.Registry {
	return s.registry
}

// Darts returns the darts thrown in this round.
func (s *Session) Darts() []launch.Projectile {
	return slices.Clone(s.darts)
}

func (s *Session) SurfaceAdded(surface tracking.Surface, container scene.NodeID) {
	s.registry.SurfaceAdded(surface, container)
}

func (s *Session) SurfaceUpdated(surface tracking.Surface, container scene.NodeID) {
	s.registry.SurfaceUpdated(surface, container)
}

func (s *Session) SurfaceRemoved(surface tracking.Surface) {
	s.registry.SurfaceRemoved(surface)
}

func (s *Session) SessionFailed(err error) {
	s.logger.Error("Tracking session failed",
		slog.Any("error", err),
	)
	s.reportStatus(StatusError)
	if s.onFailed != nil {
		s.onFailed(err)
	}
}

func (s *Session) SessionInterrupted() {
	s.logger.Warn("Tracking session interrupted")
	if s.onInterrupted != nil {
		s.onInterrupted()
	}
}

func (s *Session) SessionInterruptionEnded() {
	s.logger.Info("Tracking session resumed")
	if s.onResumed != nil {
		s.onResumed()
	}
}

func (s *Session) reportStatus(status Status) {
	if s.status != nil {
		s.status.SetStatus(status)
	}
}

func (s *Session) transition(to Phase) {
	if !CanTransition(s.phase, to) {
		panic(fmt.Sprintf("game: illegal transition from %v to %v", s.phase, to))
	}
	s.logger.Info("Phase changed",
		slog.String("from", s.phase.String()),
		slog.String("to", to.String()),
	)
	s.phase = to
	s.reportStatus(to.Status())
}

func (s *Session) mustBe(phase Phase) {
	if s.phase != phase {
		panic(fmt.Sprintf("game: handler for %v invoked in %v", phase, s.phase))
	}
}
