// Package launch throws darts from the camera towards a point on the
// dartboard surface.
package launch

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mokiat/gog/opt"
	"github.com/mokiat/gomath/dprec"

	"github.com/nobonobo/ar-darts/ar/scene"
	"github.com/nobonobo/ar-darts/ar/xform"
)

// Orientation selects how a dart is rotated in flight.
type Orientation int

const (
	// OrientationAlignToSurface gives the dart the orientation of the
	// surface it lands on with the W component inverted.
	OrientationAlignToSurface Orientation = iota
	// OrientationRelativeToCamera rotates the dart by the surface
	// orientation relative to the camera: surface * inverse(camera).
	OrientationRelativeToCamera
)

func (o Orientation) String() string {
	switch o {
	case OrientationAlignToSurface:
		return "align"
	case OrientationRelativeToCamera:
		return "relative"
	default:
		return "unknown"
	}
}

const (
	DefaultDuration = 500 * time.Millisecond

	animationKey = "throwDart"
)

// DartGeometry is the shape of a thrown dart.
var DartGeometry = scene.Cone{
	TopRadius:    0.0,
	BottomRadius: 0.01,
	Height:       0.1,
}

// DartMaterial is red with a white sheen.
var DartMaterial = scene.Material{
	Diffuse:  scene.Red(),
	Specular: opt.V(scene.White()),
}

type Info struct {
	Graph       scene.Graph
	Animator    scene.Animator
	PointOfView scene.PointOfView
	Duration    opt.T[time.Duration]
	Orientation Orientation
	Logger      opt.T[*slog.Logger]
}

// Projectile describes one thrown dart.
type Projectile struct {
	Node        scene.NodeID
	Start       dprec.Vec3
	End         dprec.Vec3
	Orientation dprec.Quat
	Duration    time.Duration
}

type Launcher struct {
	graph       scene.Graph
	animator    scene.Animator
	pov         scene.PointOfView
	duration    time.Duration
	orientation Orientation
	logger      *slog.Logger

	thrown int
}

func NewLauncher(info Info) *Launcher {
	duration := DefaultDuration
	if info.Duration.Specified {
		duration = info.Duration.Value
	}
	logger := slog.Default()
	if info.Logger.Specified {
		logger = info.Logger.Value
	}
	return &Launcher{
		graph:       info.Graph,
		animator:    info.Animator,
		pov:         info.PointOfView,
		duration:    duration,
		orientation: info.Orientation,
		logger:      logger,
	}
}

// Plan computes the flight of a dart towards hit without touching the
// scene.
func (l *Launcher) Plan(hit dprec.Mat4) Projectile {
	camera := l.pov.CameraPose()
	end, surface, _ := hit.TRS()

	var orientation dprec.Quat
	switch l.orientation {
	case OrientationRelativeToCamera:
		orientation = xform.Relative(surface, camera.Orientation)
	default:
		orientation = alignedOrientation(surface)
	}

	return Projectile{
		Start:       camera.Position,
		End:         end,
		Orientation: orientation,
		Duration:    l.duration,
	}
}

// alignedOrientation negates the W component of the surface orientation.
func alignedOrientation(surface dprec.Quat) dprec.Quat {
	return dprec.NegativeQuat(dprec.ConjugateQuat(surface))
}

// Launch adds a dart at the camera and animates it onto hit. Once the
// animation completes the dart rests exactly at the hit position. There
// is no way to cancel a launched dart.
func (l *Launcher) Launch(hit dprec.Mat4) Projectile {
	projectile := l.Plan(hit)

	projectile.Node = l.graph.AddChild(scene.NodeInfo{
		Parent:   l.graph.Root(),
		Name:     opt.V("dart-" + uuid.NewString()),
		Geometry: DartGeometry,
		Material: opt.V(DartMaterial),
		Position: opt.V(projectile.Start),
		Rotation: opt.V(projectile.Orientation),
	})

	node, end := projectile.Node, projectile.End
	l.animator.Animate(node, scene.Animation{
		Key:      animationKey,
		KeyPath:  scene.KeyPathPosition,
		From:     projectile.Start,
		To:       end,
		Duration: projectile.Duration,
		OnComplete: func() {
			l.graph.SetPosition(node, end)
		},
	})
	l.thrown++

	l.logger.Debug("Dart thrown",
		slog.String("node", node.String()),
		slog.Int("count", l.thrown),
	)
	return projectile
}

// Thrown returns the number of darts launched so far.
func (l *Launcher) Thrown() int {
	return l.thrown
}
