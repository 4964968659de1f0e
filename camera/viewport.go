package camera

import (
	"github.com/golang/geo/r3"

	"go.ccpose.dev/ccpose/spatialmath"
)

// ViewportParameters describe how a display looks at its scene.
type ViewportParameters struct {
	// BaseViewMat is the camera orientation.
	BaseViewMat spatialmath.Matrix
	// PivotPoint is what the camera rotates around in object-centered mode.
	PivotPoint r3.Vector
	// CameraCenter is the eye position in perspective mode.
	CameraCenter r3.Vector
	// FovDeg is the vertical field of view in degrees.
	FovDeg float64
	// NearPlaneCoef scales the near clipping distance, in [10^-3, 1].
	NearPlaneCoef float64
	// Perspective is false for parallel projection.
	Perspective bool
	// ObjectCentered rotates around PivotPoint rather than around the eye.
	ObjectCentered bool
}

// DefaultViewportParameters returns the parameters of a fresh display.
func DefaultViewportParameters() ViewportParameters {
	return ViewportParameters{
		BaseViewMat:    spatialmath.NewIdentity(),
		FovDeg:         30,
		NearPlaneCoef:  0.005,
		ObjectCentered: true,
	}
}

// ViewMode describes the projection in words.
func (p ViewportParameters) ViewMode() string {
	if !p.Perspective {
		return "parallel projection"
	}
	if p.ObjectCentered {
		return "object-based perspective"
	}
	return "viewer-based perspective"
}

// Display is the capability a viewport exposes to the camera editor. Implementations
// apply each setter to their own state; the editor calls Redraw once a change is complete.
type Display interface {
	// ID identifies the display; pushed matrices are kept per ID.
	ID() string
	ViewportParameters() ViewportParameters
	SetBaseViewMat(m spatialmath.Matrix)
	SetPivotPoint(p r3.Vector)
	SetCameraPos(p r3.Vector)
	SetFov(deg float64)
	SetNearPlaneCoef(coef float64)
	Redraw()
}
