// Package fake implements an in-memory display for tests and headless tools.
package fake

import (
	"sync"

	"github.com/golang/geo/r3"

	"go.ccpose.dev/ccpose/camera"
	"go.ccpose.dev/ccpose/spatialmath"
)

// Display is a camera.Display that only records its state.
type Display struct {
	mu      sync.Mutex
	id      string
	params  camera.ViewportParameters
	redraws int
}

// NewDisplay returns a display with default viewport parameters.
func NewDisplay(id string) *Display {
	return &Display{id: id, params: camera.DefaultViewportParameters()}
}

// NewDisplayWith returns a display starting from params.
func NewDisplayWith(id string, params camera.ViewportParameters) *Display {
	return &Display{id: id, params: params}
}

// ID returns the display ID.
func (d *Display) ID() string {
	return d.id
}

// ViewportParameters returns the current parameters.
func (d *Display) ViewportParameters() camera.ViewportParameters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.params
}

// SetBaseViewMat sets the camera orientation.
func (d *Display) SetBaseViewMat(m spatialmath.Matrix) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.BaseViewMat = m
}

// SetPivotPoint sets the rotation center.
func (d *Display) SetPivotPoint(p r3.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.PivotPoint = p
}

// SetCameraPos sets the eye position.
func (d *Display) SetCameraPos(p r3.Vector) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.CameraCenter = p
}

// SetFov sets the field of view.
func (d *Display) SetFov(deg float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.FovDeg = deg
}

// SetNearPlaneCoef sets the near-plane coefficient.
func (d *Display) SetNearPlaneCoef(coef float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.NearPlaneCoef = coef
}

// SetPerspective switches between parallel and perspective projection.
func (d *Display) SetPerspective(perspective, objectCentered bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.params.Perspective = perspective
	d.params.ObjectCentered = objectCentered
}

// Redraw counts a redraw.
func (d *Display) Redraw() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.redraws++
}

// Redraws returns how many times Redraw was called.
func (d *Display) Redraws() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.redraws
}
