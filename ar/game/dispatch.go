package game

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"

	"github.com/nobonobo/ar-darts/ar/anchor"
	"github.com/nobonobo/ar-darts/ar/material"
	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/schema"
)

// Dispatch handles a tap on the camera view.
func (s *Session) Dispatch(point schema.Point) {
	switch s.phase {
	case PhaseSearching:
		s.handleSearching(point)
	case PhaseConfirmingSelection:
		s.handleConfirmingSelection(point)
	case PhaseActive:
		s.handleActive(point)
	default:
		panic(fmt.Sprintf("game: unknown phase %v", s.phase))
	}
}

// handleSearching picks the wall drawn under the tap. Only rendered
// placeholders can be picked, so this hit-tests the scene and not the
// world.
func (s *Session) handleSearching(point schema.Point) {
	s.mustBe(PhaseSearching)

	hit := s.renderer.ScreenHitTest(point)
	if !hit.Specified {
		s.logger.Debug("Tap missed all walls")
		return
	}
	placeholder, ok := s.registry.LookupNode(hit.Value)
	if !ok || placeholder.Tag != material.TagDetected {
		return
	}
	if err := s.registry.Recolor(placeholder.Surface, material.TagSelected); err != nil {
		s.logger.Warn("Failed to select wall",
			slog.String("error", err.Error()),
		)
		return
	}
	s.selected = opt.V(placeholder.Surface)
	s.transition(PhaseConfirmingSelection)
}

// handleConfirmingSelection turns the first wall under the tap into the
// dartboard. That is normally the selected wall, but any wall with a
// placeholder is accepted so that losing the selected wall to tracking
// does not leave the round stuck.
func (s *Session) handleConfirmingSelection(point schema.Point) {
	s.mustBe(PhaseConfirmingSelection)

	hits := s.renderer.WorldHitTest(point, scene.HitExistingPlaneUsingExtent)
	if len(hits) == 0 {
		s.logger.Debug("Tap missed all walls")
		return
	}
	hit := hits[0]
	if err := s.promote(hit.Surface); err != nil {
		s.logger.Warn("Failed to place dartboard",
			slog.String("surface", hit.Surface.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if hit.Surface != s.selected.Value {
		s.logger.Debug("Dartboard placed on another wall",
			slog.String("surface", hit.Surface.String()),
		)
	}
	s.selected = opt.V(hit.Surface)
	s.transition(PhaseActive)
}

// promote walks the placeholder of the surface through the remaining tags
// up to the dartboard.
func (s *Session) promote(surfaceID uuid.UUID) error {
	placeholder, ok := s.registry.Lookup(surfaceID)
	if !ok {
		return anchor.ErrUnknownSurface
	}
	for tag := placeholder.Tag + 1; tag <= material.TagFinal; tag++ {
		if err := s.registry.Recolor(surfaceID, tag); err != nil {
			return err
		}
	}
	return nil
}

// handleActive throws a dart at the wall point under the tap.
func (s *Session) handleActive(point schema.Point) {
	s.mustBe(PhaseActive)

	hits := s.renderer.WorldHitTest(point, scene.HitExistingPlaneUsingExtent)
	if len(hits) == 0 {
		return
	}
	s.darts = append(s.darts, s.launcher.Launch(hits[0].WorldTransform))
}
