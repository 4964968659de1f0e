package camera

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.ccpose.dev/ccpose/logging"
	"go.ccpose.dev/ccpose/spatialmath"
	"go.ccpose.dev/ccpose/utils"
)

var (
	// ErrNoDisplay is returned when the editor has no display to act on.
	ErrNoDisplay = errors.New("no display associated with the editor")
	// ErrNothingPushed is returned when reverting a display that never had a matrix pushed.
	ErrNothingPushed = errors.New("no matrix pushed for this display")
)

// Angles holds the camera orientation in degrees, as the editor displays it.
type Angles struct {
	Phi   float64
	Theta float64
	Psi   float64
}

// ChangeFunc is called with the display's parameters after the editor changed them.
type ChangeFunc func(ViewportParameters)

// ParamEditor edits the camera of one display at a time. It keeps the orientation as
// Euler angles, mirrors it into slider positions, and remembers one pushed matrix per
// display so the user can revert to it.
//
// ParamEditor is meant to be driven from a single event loop and is not safe for
// concurrent use.
type ParamEditor struct {
	logger    logging.Logger
	sliderMax int

	display        Display
	angles         Angles
	nearPlanePos   int
	pushed         map[string]spatialmath.Matrix
	listeners      map[int]ChangeFunc
	nextListenerID int
}

// NewParamEditor returns an editor with no display. nearPlaneSliderMax is the
// resolution of the near-plane slider.
func NewParamEditor(logger logging.Logger, nearPlaneSliderMax int) (*ParamEditor, error) {
	if nearPlaneSliderMax <= 0 {
		return nil, errors.Errorf("near-plane slider maximum must be positive, got %d", nearPlaneSliderMax)
	}
	return &ParamEditor{
		logger:    logger,
		sliderMax: nearPlaneSliderMax,
		pushed:    map[string]spatialmath.Matrix{},
		listeners: map[int]ChangeFunc{},
	}, nil
}

// OnChange registers fn to be called after every change the editor applies. The
// returned function unregisters it.
func (e *ParamEditor) OnChange(fn ChangeFunc) (unregister func()) {
	id := e.nextListenerID
	e.nextListenerID++
	e.listeners[id] = fn
	return func() {
		delete(e.listeners, id)
	}
}

// InitWith associates the editor with d and loads its current state. A nil display
// detaches the editor.
func (e *ParamEditor) InitWith(d Display) error {
	e.display = d
	if d == nil {
		return nil
	}
	params := d.ViewportParameters()
	e.InitWithMatrix(params.BaseViewMat)

	pos, err := NearPlaneCoefToSliderPos(params.NearPlaneCoef, e.sliderMax)
	if err != nil {
		return errors.Wrap(err, "reading display near plane")
	}
	e.nearPlanePos = pos
	e.logger.Debugw("editing display", "display", d.ID(), "mode", params.ViewMode())
	return nil
}

// Display returns the associated display, or nil.
func (e *ParamEditor) Display() Display {
	return e.display
}

// InitWithMatrix loads the orientation of m into the editor without writing it back
// to the display.
func (e *ParamEditor) InitWithMatrix(m spatialmath.Matrix) {
	phi, theta, psi, _ := m.Parameters()
	e.angles = Angles{
		Phi:   utils.RadToDeg(phi),
		Theta: utils.RadToDeg(theta),
		Psi:   utils.RadToDeg(psi),
	}
}

// Angles returns the current orientation in degrees.
func (e *ParamEditor) Angles() Angles {
	return e.angles
}

// AngleSliderPositions returns the orientation as angle slider positions.
func (e *ParamEditor) AngleSliderPositions() (phi, theta, psi int) {
	return DegreesToSliderPos(e.angles.Phi), DegreesToSliderPos(e.angles.Theta), DegreesToSliderPos(e.angles.Psi)
}

// Matrix returns the rotation described by the current angles, with no translation.
func (e *ParamEditor) Matrix() spatialmath.Matrix {
	return spatialmath.NewMatrixFromParameters(
		utils.DegToRad(e.angles.Phi),
		utils.DegToRad(e.angles.Theta),
		utils.DegToRad(e.angles.Psi),
		r3.Vector{},
	)
}

// SetAnglesDegrees sets the orientation and applies it to the display. Phi and psi
// wrap into (-180, 180]; theta must lie in [-90, 90].
func (e *ParamEditor) SetAnglesDegrees(phi, theta, psi float64) error {
	if !finite(phi) || !finite(psi) || !(theta >= -90 && theta <= 90) {
		return errors.Errorf("invalid camera angles phi=%v theta=%v psi=%v", phi, theta, psi)
	}
	e.angles = Angles{Phi: wrapDegrees(phi), Theta: theta, Psi: wrapDegrees(psi)}
	return e.reflectParamChange()
}

// SetAngleSliders sets the orientation from angle slider positions.
func (e *ParamEditor) SetAngleSliders(phi, theta, psi int) error {
	return e.SetAnglesDegrees(SliderPosToDegrees(phi), SliderPosToDegrees(theta), SliderPosToDegrees(psi))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func wrapDegrees(deg float64) float64 {
	if deg > -180 && deg <= 180 {
		return deg
	}
	return utils.RadToDeg(utils.WrapAngleRad(utils.DegToRad(deg)))
}

func (e *ParamEditor) reflectParamChange() error {
	if e.display == nil {
		return ErrNoDisplay
	}
	e.display.SetBaseViewMat(e.Matrix())
	e.redraw()
	return nil
}

// SetPivotPoint moves the rotation center of the display.
func (e *ParamEditor) SetPivotPoint(p r3.Vector) error {
	if e.display == nil {
		return ErrNoDisplay
	}
	e.display.SetPivotPoint(p)
	e.redraw()
	return nil
}

// SetCameraCenter moves the eye of the display.
func (e *ParamEditor) SetCameraCenter(p r3.Vector) error {
	if e.display == nil {
		return ErrNoDisplay
	}
	e.display.SetCameraPos(p)
	e.redraw()
	return nil
}

// SetFov sets the field of view in degrees, which must lie in (0, 180).
func (e *ParamEditor) SetFov(deg float64) error {
	if !(deg > 0 && deg < 180) {
		return errors.Errorf("field of view %v outside (0, 180)", deg)
	}
	if e.display == nil {
		return ErrNoDisplay
	}
	e.display.SetFov(deg)
	e.redraw()
	return nil
}

// MoveNearPlaneSlider sets the near-plane coefficient from a slider position.
func (e *ParamEditor) MoveNearPlaneSlider(i int) error {
	coef, err := SliderPosToNearPlaneCoef(i, e.sliderMax)
	if err != nil {
		return err
	}
	if e.display == nil {
		return ErrNoDisplay
	}
	e.nearPlanePos = i
	e.display.SetNearPlaneCoef(coef)
	e.redraw()
	return nil
}

// NearPlaneSliderPos returns the near-plane slider position.
func (e *ParamEditor) NearPlaneSliderPos() int {
	return e.nearPlanePos
}

// PushCurrentMatrix remembers the display's current base view matrix, replacing any
// matrix previously pushed for the same display.
func (e *ParamEditor) PushCurrentMatrix() error {
	if e.display == nil {
		return ErrNoDisplay
	}
	e.pushed[e.display.ID()] = e.display.ViewportParameters().BaseViewMat
	e.logger.Debugw("pushed view matrix", "display", e.display.ID())
	return nil
}

// CanRevert reports whether a matrix was pushed for the current display.
func (e *ParamEditor) CanRevert() bool {
	if e.display == nil {
		return false
	}
	_, ok := e.pushed[e.display.ID()]
	return ok
}

// RevertToPushedMatrix restores the matrix pushed for the current display.
func (e *ParamEditor) RevertToPushedMatrix() error {
	if e.display == nil {
		return ErrNoDisplay
	}
	m, ok := e.pushed[e.display.ID()]
	if !ok {
		return ErrNothingPushed
	}
	e.InitWithMatrix(m)
	e.display.SetBaseViewMat(m)
	e.redraw()
	e.logger.Debugw("reverted view matrix", "display", e.display.ID())
	return nil
}

// SetView applies a standard view on top of the matrix pushed for the current display,
// or on top of the identity when nothing was pushed, and loads its angles.
func (e *ParamEditor) SetView(o ViewOrientation) error {
	if e.display == nil {
		return ErrNoDisplay
	}
	view, err := ViewMatrix(o)
	if err != nil {
		return err
	}
	base, ok := e.pushed[e.display.ID()]
	if !ok {
		base = spatialmath.NewIdentity()
	}
	m := view.Mul(base)
	e.InitWithMatrix(m)
	e.display.SetBaseViewMat(m)
	e.redraw()
	e.logger.Debugw("set standard view", "display", e.display.ID(), "view", o, "pushed", ok)
	return nil
}

// ViewMode describes the current display's projection.
func (e *ParamEditor) ViewMode() string {
	if e.display == nil {
		return ""
	}
	return e.display.ViewportParameters().ViewMode()
}

func (e *ParamEditor) redraw() {
	e.display.Redraw()
	if len(e.listeners) == 0 {
		return
	}
	params := e.display.ViewportParameters()
	for _, fn := range e.listeners {
		fn(params)
	}
}
