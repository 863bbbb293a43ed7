package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/ar/game"
	"github.com/nobonobo/ar-darts/ar/launch"
	"github.com/nobonobo/ar-darts/ar/sim"
	"github.com/nobonobo/ar-darts/schema"
)

func loadScript(path string) (*schema.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var script schema.Script
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if script.Viewport.X <= 0 || script.Viewport.Y <= 0 {
		return nil, fmt.Errorf("invalid viewport %vx%v", script.Viewport.X, script.Viewport.Y)
	}
	return &script, nil
}

type replayOptions struct {
	logger      *slog.Logger
	orientation launch.Orientation
	duration    time.Duration
	texture     string
}

type replayer struct {
	logger  *slog.Logger
	world   *sim.World
	session *game.Session
	status  game.Status
	names   map[uuid.UUID]string
}

func newReplayer(script *schema.Script, opts replayOptions) *replayer {
	r := &replayer{
		logger: opts.logger,
		names:  make(map[uuid.UUID]string),
	}

	worldCfg := sim.NewConfig(int(script.Viewport.X), int(script.Viewport.Y))
	worldCfg.SetLogger(opts.logger)
	worldCfg.SetCameraPose(toPose(script.Camera))
	if script.FoV > 0 {
		worldCfg.SetFoV(dprec.Degrees(script.FoV))
	}
	r.world = sim.NewWorld(worldCfg)

	gameCfg := game.NewConfig()
	gameCfg.SetLogger(opts.logger)
	gameCfg.SetDartOrientation(opts.orientation)
	if opts.duration > 0 {
		gameCfg.SetDartDuration(opts.duration)
	}
	if opts.texture != "" {
		gameCfg.SetDartboardTexture(opts.texture)
	}
	gameCfg.SetStatusReporter(game.StatusReporterFunc(func(status game.Status) {
		r.status = status
	}))
	r.session = game.NewSession(r.world, gameCfg)
	r.world.SetDelegate(r.session)
	return r
}

func (r *replayer) run(events []schema.Event) error {
	for i, event := range events {
		if err := r.apply(event); err != nil {
			return fmt.Errorf("event %d (%s): %w", i, event.Type, err)
		}
	}
	return nil
}

func (r *replayer) surface(event schema.Event) (*schema.Surface, error) {
	if event.Surface == nil {
		return nil, errors.New("missing surface")
	}
	r.names[surfaceID(event.Surface.ID)] = event.Surface.ID
	return event.Surface, nil
}

func (r *replayer) apply(event schema.Event) error {
	switch event.Type {
	case schema.EventAdd:
		s, err := r.surface(event)
		if err != nil {
			return err
		}
		_, err = r.world.AddSurface(toSurface(*s))
		return err
	case schema.EventUpdate:
		s, err := r.surface(event)
		if err != nil {
			return err
		}
		return r.world.UpdateSurface(toSurface(*s))
	case schema.EventRemove:
		s, err := r.surface(event)
		if err != nil {
			return err
		}
		return r.world.RemoveSurface(surfaceID(s.ID))
	case schema.EventTap:
		if event.Point == nil {
			return errors.New("missing point")
		}
		r.session.Dispatch(*event.Point)
	case schema.EventCamera:
		if event.Camera == nil {
			return errors.New("missing camera")
		}
		r.world.SetCameraPose(toPose(*event.Camera))
	case schema.EventAdvance:
		r.world.Advance(time.Duration(event.Seconds * float64(time.Second)))
	case schema.EventReset:
		r.world.Restart()
		r.session.Reset()
	case schema.EventFail:
		message := event.Message
		if message == "" {
			message = "tracking failed"
		}
		r.world.Fail(errors.New(message))
	case schema.EventInterrupt:
		r.world.Interrupt()
	case schema.EventResume:
		r.world.Resume()
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	return nil
}

type placeholderSummary struct {
	Surface string `json:"surface"`
	Tag     string `json:"tag"`
}

type dartSummary struct {
	Target   schema.Vec3 `json:"target"`
	Position schema.Vec3 `json:"position"`
	Landed   bool        `json:"landed"`
}

type summary struct {
	Phase        string               `json:"phase"`
	Status       string               `json:"status"`
	Selected     string               `json:"selected,omitempty"`
	Placeholders []placeholderSummary `json:"placeholders"`
	Darts        []dartSummary        `json:"darts"`
	Clock        float64              `json:"clock"`
}

func (r *replayer) name(id uuid.UUID) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return id.String()
}

func toVec3(v dprec.Vec3) schema.Vec3 {
	return schema.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func (r *replayer) summary() summary {
	result := summary{
		Phase:        r.session.Phase().String(),
		Status:       string(r.status),
		Placeholders: []placeholderSummary{},
		Darts:        []dartSummary{},
		Clock:        r.world.Clock().Seconds(),
	}
	if selected := r.session.Selected(); selected.Specified {
		result.Selected = r.name(selected.Value)
	}
	for _, placeholder := range r.session.Registry().Placeholders() {
		result.Placeholders = append(result.Placeholders, placeholderSummary{
			Surface: r.name(placeholder.Surface),
			Tag:     placeholder.Tag.String(),
		})
	}
	for _, dart := range r.session.Darts() {
		position := r.world.PresentationPosition(dart.Node)
		result.Darts = append(result.Darts, dartSummary{
			Target:   toVec3(dart.End),
			Position: toVec3(position),
			Landed:   position == dart.End,
		})
	}
	return result
}
