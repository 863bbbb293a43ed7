package game

import (
	"log/slog"
	"time"

	"github.com/nobonobo/ar-darts/ar/launch"
	"github.com/nobonobo/ar-darts/ar/material"
)

// Config holds the tunables of a darts session.
type Config struct {
	logger           *slog.Logger
	dartDuration     time.Duration
	dartOrientation  launch.Orientation
	dartboardTexture string
	status           StatusReporter
	onFailed         func(err error)
	onInterrupted    func()
	onResumed        func()
}

func NewConfig() *Config {
	return &Config{
		logger:           slog.Default(),
		dartDuration:     launch.DefaultDuration,
		dartOrientation:  launch.OrientationAlignToSurface,
		dartboardTexture: material.DefaultDartboardTexture,
	}
}

func (c *Config) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetDartDuration sets how long a dart is in flight.
func (c *Config) SetDartDuration(duration time.Duration) {
	c.dartDuration = duration
}

func (c *Config) SetDartOrientation(orientation launch.Orientation) {
	c.dartOrientation = orientation
}

func (c *Config) SetDartboardTexture(texture string) {
	c.dartboardTexture = texture
}

func (c *Config) SetStatusReporter(reporter StatusReporter) {
	c.status = reporter
}

// SetSessionHooks registers callbacks for tracking faults. Any of them
// may be nil.
func (c *Config) SetSessionHooks(onFailed func(err error), onInterrupted, onResumed func()) {
	c.onFailed = onFailed
	c.onInterrupted = onInterrupted
	c.onResumed = onResumed
}
