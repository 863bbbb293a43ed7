package schema

// Point is a location on the screen in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Surface is a tracked surface as it appears in a replay script. Rotation
// is given as euler angles in degrees.
type Surface struct {
	ID       string  `json:"id"`
	Center   Vec3    `json:"center"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	Position Vec3    `json:"position"`
	Rotation Vec3    `json:"rotation"`
	Vertical bool    `json:"vertical"`
	Planar   *bool   `json:"planar,omitempty"`
}

type Camera struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

type EventType string

const (
	EventAdd       EventType = "add"
	EventUpdate    EventType = "update"
	EventRemove    EventType = "remove"
	EventTap       EventType = "tap"
	EventCamera    EventType = "camera"
	EventAdvance   EventType = "advance"
	EventReset     EventType = "reset"
	EventFail      EventType = "fail"
	EventInterrupt EventType = "interrupt"
	EventResume    EventType = "resume"
)

type Event struct {
	Type    EventType `json:"type"`
	Surface *Surface  `json:"surface,omitempty"`
	Point   *Point    `json:"point,omitempty"`
	Camera  *Camera   `json:"camera,omitempty"`
	Seconds float64   `json:"seconds,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Script is a recorded session that can be replayed without a device.
type Script struct {
	Viewport Point   `json:"viewport"`
	FoV      float64 `json:"fov"`
	Camera   Camera  `json:"camera"`
	Events   []Event `json:"events"`
}
