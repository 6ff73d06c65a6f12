// Package scanner gates QR capture against browsing. Only one capture is
// accepted per activation; the mode leaves Scanning the moment it is.
package scanner

import (
	"context"
	"sync"

	"assetdirectory/internal/resolver"
	"assetdirectory/pkg/notification"

	"go.uber.org/zap"
)

type Mode int

const (
	Browsing Mode = iota
	Scanning
	Resolving
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Scanning:
		return "scanning"
	case Resolving:
		return "resolving"
	default:
		return "unknown"
	}
}

type event int

const (
	eventActivate event = iota
	eventDeactivate
	eventCapture
	eventResolved
)

// transition is the only place mode changes are decided.
func transition(from Mode, e event) (Mode, bool) {
	switch {
	case from == Browsing && e == eventActivate:
		return Scanning, true
	case from == Scanning && e == eventDeactivate:
		return Browsing, true
	case from == Scanning && e == eventCapture:
		return Resolving, true
	case from == Resolving && e == eventResolved:
		return Browsing, true
	default:
		return from, false
	}
}

type Resolver interface {
	Resolve(ctx context.Context, raw string) resolver.Outcome
}

// Camera is the capture session started while scanning.
type Camera interface {
	Start() error
	Stop()
}

type Controller struct {
	mu       sync.Mutex
	mode     Mode
	resolver Resolver
	camera   Camera
	notifier notification.Notifier
	logger   *zap.Logger
}

// NewController builds a controller in Browsing mode. camera may be nil.
func NewController(r Resolver, camera Camera, notifier notification.Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		mode:     Browsing,
		resolver: r,
		camera:   camera,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mode
}

// Activate starts a capture session. It reports false and does nothing
// unless the controller is Browsing.
func (c *Controller) Activate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := transition(c.mode, eventActivate)
	if !ok {
		return false
	}

	if c.camera != nil {
		if err := c.camera.Start(); err != nil {
			c.logger.Warn("camera start failed", zap.Error(err))
			c.notifier.Error(err.Error())
			return false
		}
	}

	c.set(next)
	return true
}

// Deactivate closes the capture session without resolving anything.
func (c *Controller) Deactivate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, ok := transition(c.mode, eventDeactivate)
	if !ok {
		return false
	}

	c.stopCamera()
	c.set(next)
	return true
}

// OnCapture accepts one captured text while Scanning and resolves it. Captures
// arriving in any other mode, and empty captures, are ignored and report
// false.
func (c *Controller) OnCapture(ctx context.Context, text string) (resolver.Outcome, bool) {
	if text == "" {
		return resolver.Outcome{}, false
	}

	c.mu.Lock()
	next, ok := transition(c.mode, eventCapture)
	if !ok {
		mode := c.mode
		c.mu.Unlock()
		c.logger.Debug("capture ignored", zap.Stringer("mode", mode))
		return resolver.Outcome{}, false
	}
	c.stopCamera()
	c.set(next)
	c.mu.Unlock()

	outcome := c.resolver.Resolve(ctx, text)

	c.mu.Lock()
	if next, ok := transition(c.mode, eventResolved); ok {
		c.set(next)
	}
	c.mu.Unlock()

	return outcome, true
}

// OnCaptureError surfaces a frame error. Scanning continues.
func (c *Controller) OnCaptureError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != Scanning {
		return
	}

	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.logger.Warn("capture error", zap.String("error", msg))
	c.notifier.Error(msg)
}

func (c *Controller) stopCamera() {
	if c.camera != nil {
		c.camera.Stop()
	}
}

func (c *Controller) set(next Mode) {
	c.logger.Debug("scan mode", zap.Stringer("from", c.mode), zap.Stringer("to", next))
	c.mode = next
}
