package sim

import (
	"log/slog"

	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/schema"
)

// Config describes the simulated device.
type Config struct {
	logger *slog.Logger
	camera Camera
}

// NewConfig returns a configuration for a portrait phone screen with the
// camera at the world origin looking down -Z.
func NewConfig(width, height int) *Config {
	return &Config{
		logger: slog.Default(),
		camera: Camera{
			Pose: scene.Pose{
				Position:    dprec.ZeroVec3(),
				Orientation: dprec.IdentityQuat(),
			},
			Viewport: schema.Point{X: float64(width), Y: float64(height)},
			FoV:      dprec.Degrees(60),
		},
	}
}

func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetFoV sets the vertical field of view of the camera.
func (c *Config) SetFoV(fov dprec.Angle) {
	c.camera.FoV = fov
}

func (c *Config) SetCameraPose(pose scene.Pose) {
	c.camera.Pose = pose
}
