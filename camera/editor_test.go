package camera_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.ccpose.dev/ccpose/camera"
	"go.ccpose.dev/ccpose/camera/fake"
	"go.ccpose.dev/ccpose/logging"
	"go.ccpose.dev/ccpose/spatialmath"
	"go.ccpose.dev/ccpose/utils"
)

func newEditor(t *testing.T) *camera.ParamEditor {
	t.Helper()
	e, err := camera.NewParamEditor(logging.NewTestLogger(t), camera.DefaultNearPlaneSliderMax)
	test.That(t, err, test.ShouldBeNil)
	return e
}

func TestNewParamEditorInvalid(t *testing.T) {
	_, err := camera.NewParamEditor(logging.NewTestLogger(t), 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNoDisplay(t *testing.T) {
	e := newEditor(t)
	test.That(t, errors.Is(e.SetAnglesDegrees(0, 0, 0), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.SetPivotPoint(r3.Vector{}), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.SetCameraCenter(r3.Vector{}), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.SetFov(30), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.MoveNearPlaneSlider(10), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.PushCurrentMatrix(), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, errors.Is(e.RevertToPushedMatrix(), camera.ErrNoDisplay), test.ShouldBeTrue)
	test.That(t, e.CanRevert(), test.ShouldBeFalse)
	test.That(t, e.ViewMode(), test.ShouldEqual, "")
}

func TestInitWith(t *testing.T) {
	params := camera.DefaultViewportParameters()
	params.BaseViewMat = spatialmath.NewMatrixFromParameters(
		utils.DegToRad(30), utils.DegToRad(-20), utils.DegToRad(100), r3.Vector{X: 5})
	params.NearPlaneCoef = 0.1
	d := fake.NewDisplayWith("main", params)

	e := newEditor(t)
	test.That(t, e.InitWith(d), test.ShouldBeNil)
	test.That(t, e.Display(), test.ShouldEqual, d)

	angles := e.Angles()
	test.That(t, angles.Phi, test.ShouldAlmostEqual, 30)
	test.That(t, angles.Theta, test.ShouldAlmostEqual, -20)
	test.That(t, angles.Psi, test.ShouldAlmostEqual, 100)

	phi, theta, psi := e.AngleSliderPositions()
	test.That(t, phi, test.ShouldBeBetweenOrEqual, 299, 300)
	test.That(t, theta, test.ShouldBeBetweenOrEqual, -200, -199)
	test.That(t, psi, test.ShouldBeBetweenOrEqual, 999, 1000)

	// 0.1 is two thirds of the way up a 3 decade slider
	test.That(t, e.NearPlaneSliderPos(), test.ShouldEqual, 667)

	// loading must not write back to the display
	test.That(t, d.Redraws(), test.ShouldEqual, 0)
	test.That(t, d.ViewportParameters().BaseViewMat, test.ShouldResemble, params.BaseViewMat)

	test.That(t, e.InitWith(nil), test.ShouldBeNil)
	test.That(t, e.Display(), test.ShouldBeNil)
}

func TestSetAngles(t *testing.T) {
	d := fake.NewDisplay("main")
	e := newEditor(t)
	test.That(t, e.InitWith(d), test.ShouldBeNil)

	var seen []camera.ViewportParameters
	unregister := e.OnChange(func(p camera.ViewportParameters) {
		seen = append(seen, p)
	})

	test.That(t, e.SetAnglesDegrees(90, 0, 0), test.ShouldBeNil)
	test.That(t, d.Redraws(), test.ShouldEqual, 1)
	test.That(t, seen, test.ShouldHaveLength, 1)
	p := d.ViewportParameters().BaseViewMat.Apply(r3.Vector{X: 1})
	test.That(t, p.X, test.ShouldAlmostEqual, 0)
	test.That(t, p.Y, test.ShouldAlmostEqual, 1)

	// out of range angles wrap
	test.That(t, e.SetAnglesDegrees(270, 10, -190), test.ShouldBeNil)
	test.That(t, e.Angles().Phi, test.ShouldAlmostEqual, -90)
	test.That(t, e.Angles().Psi, test.ShouldAlmostEqual, 170)

	test.That(t, e.SetAngleSliders(450, -300, 1200), test.ShouldBeNil)
	test.That(t, e.Angles(), test.ShouldResemble, camera.Angles{Phi: 45, Theta: -30, Psi: 120})
	want := spatialmath.NewMatrixFromParameters(math.Pi/4, -math.Pi/6, 2*math.Pi/3, r3.Vector{})
	test.That(t, d.ViewportParameters().BaseViewMat.AlmostEqual(want, 1e-9), test.ShouldBeTrue)

	test.That(t, e.SetAnglesDegrees(0, 91, 0), test.ShouldNotBeNil)
	test.That(t, e.SetAnglesDegrees(math.NaN(), 0, 0), test.ShouldNotBeNil)

	unregister()
	test.That(t, e.SetAnglesDegrees(0, 0, 0), test.ShouldBeNil)
	test.That(t, seen, test.ShouldHaveLength, 3)
	test.That(t, d.Redraws(), test.ShouldEqual, 4)
}

func TestViewportSetters(t *testing.T) {
	d := fake.NewDisplay("main")
	e := newEditor(t)
	test.That(t, e.InitWith(d), test.ShouldBeNil)

	test.That(t, e.SetPivotPoint(r3.Vector{X: 1, Y: 2, Z: 3}), test.ShouldBeNil)
	test.That(t, e.SetCameraCenter(r3.Vector{Z: -10}), test.ShouldBeNil)
	test.That(t, e.SetFov(45), test.ShouldBeNil)
	test.That(t, e.SetFov(0), test.ShouldNotBeNil)
	test.That(t, e.SetFov(180), test.ShouldNotBeNil)
	test.That(t, e.MoveNearPlaneSlider(1000), test.ShouldBeNil)
	test.That(t, e.MoveNearPlaneSlider(1001), test.ShouldNotBeNil)

	params := d.ViewportParameters()
	test.That(t, params.PivotPoint, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
	test.That(t, params.CameraCenter, test.ShouldResemble, r3.Vector{Z: -10})
	test.That(t, params.FovDeg, test.ShouldEqual, 45)
	test.That(t, params.NearPlaneCoef, test.ShouldEqual, 1)
	test.That(t, e.NearPlaneSliderPos(), test.ShouldEqual, 1000)
	test.That(t, d.Redraws(), test.ShouldEqual, 4)

	test.That(t, e.ViewMode(), test.ShouldEqual, "parallel projection")
	d.SetPerspective(true, false)
	test.That(t, e.ViewMode(), test.ShouldEqual, "viewer-based perspective")
}

func TestPushRevert(t *testing.T) {
	first := fake.NewDisplay("first")
	second := fake.NewDisplay("second")
	e := newEditor(t)

	test.That(t, e.InitWith(first), test.ShouldBeNil)
	test.That(t, e.CanRevert(), test.ShouldBeFalse)
	test.That(t, errors.Is(e.RevertToPushedMatrix(), camera.ErrNothingPushed), test.ShouldBeTrue)

	test.That(t, e.SetAnglesDegrees(10, 20, 30), test.ShouldBeNil)
	pushed := first.ViewportParameters().BaseViewMat
	test.That(t, e.PushCurrentMatrix(), test.ShouldBeNil)
	test.That(t, e.CanRevert(), test.ShouldBeTrue)

	test.That(t, e.SetAnglesDegrees(-50, 0, 5), test.ShouldBeNil)

	// pushed matrices are kept per display
	test.That(t, e.InitWith(second), test.ShouldBeNil)
	test.That(t, e.CanRevert(), test.ShouldBeFalse)

	test.That(t, e.InitWith(first), test.ShouldBeNil)
	test.That(t, e.CanRevert(), test.ShouldBeTrue)
	test.That(t, e.RevertToPushedMatrix(), test.ShouldBeNil)
	test.That(t, first.ViewportParameters().BaseViewMat, test.ShouldResemble, pushed)
	test.That(t, e.Angles().Phi, test.ShouldAlmostEqual, 10)
	test.That(t, e.Angles().Theta, test.ShouldAlmostEqual, 20)
	test.That(t, e.Angles().Psi, test.ShouldAlmostEqual, 30)

	// pushing again replaces the stored matrix
	test.That(t, e.SetAnglesDegrees(0, 0, 0), test.ShouldBeNil)
	test.That(t, e.PushCurrentMatrix(), test.ShouldBeNil)
	test.That(t, e.SetAnglesDegrees(1, 1, 1), test.ShouldBeNil)
	test.That(t, e.RevertToPushedMatrix(), test.ShouldBeNil)
	test.That(t, first.ViewportParameters().BaseViewMat.AlmostEqual(spatialmath.NewIdentity(), 1e-12), test.ShouldBeTrue)
}

func TestSetView(t *testing.T) {
	isoTheta := utils.RadToDeg(math.Asin(1 / math.Sqrt(3)))
	for _, tc := range []struct {
		view camera.ViewOrientation
		want camera.Angles
	}{
		{camera.TopView, camera.Angles{Phi: 0, Theta: 0, Psi: 0}},
		{camera.BottomView, camera.Angles{Phi: 180, Theta: 0, Psi: 180}},
		{camera.FrontView, camera.Angles{Phi: 0, Theta: 0, Psi: -90}},
		{camera.BackView, camera.Angles{Phi: 180, Theta: 0, Psi: 90}},
		{camera.LeftView, camera.Angles{Phi: 0, Theta: 90, Psi: -90}},
		{camera.RightView, camera.Angles{Phi: 0, Theta: -90, Psi: -90}},
		{camera.Iso1View, camera.Angles{Phi: 30, Theta: isoTheta, Psi: -45}},
		{camera.Iso2View, camera.Angles{Phi: -150, Theta: -isoTheta, Psi: 45}},
	} {
		t.Run(tc.view.String(), func(t *testing.T) {
			d := fake.NewDisplay("main")
			e := newEditor(t)
			test.That(t, e.InitWith(d), test.ShouldBeNil)

			test.That(t, e.SetView(tc.view), test.ShouldBeNil)
			got := e.Angles()
			test.That(t, utils.AngleDiffDeg(got.Phi, tc.want.Phi), test.ShouldAlmostEqual, 0, 1e-9)
			test.That(t, got.Theta, test.ShouldAlmostEqual, tc.want.Theta, 1e-9)
			test.That(t, utils.AngleDiffDeg(got.Psi, tc.want.Psi), test.ShouldAlmostEqual, 0, 1e-9)

			// nothing pushed, so the view is applied to the identity
			view, err := camera.ViewMatrix(tc.view)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, d.ViewportParameters().BaseViewMat.AlmostEqual(view, 1e-12), test.ShouldBeTrue)
			test.That(t, e.Matrix().AlmostEqual(view, 1e-9), test.ShouldBeTrue)
			test.That(t, d.Redraws(), test.ShouldEqual, 1)

			parsed, err := camera.ViewOrientationFromString(tc.view.String())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, parsed, test.ShouldEqual, tc.view)
		})
	}
}

func TestSetViewOnPushedMatrix(t *testing.T) {
	d := fake.NewDisplay("main")
	e := newEditor(t)
	test.That(t, e.InitWith(d), test.ShouldBeNil)

	pushed := spatialmath.NewMatrixFromParameters(utils.DegToRad(30), 0, 0, r3.Vector{X: 1, Y: 2, Z: 3})
	d.SetBaseViewMat(pushed)
	test.That(t, e.PushCurrentMatrix(), test.ShouldBeNil)

	test.That(t, e.SetView(camera.TopView), test.ShouldBeNil)
	test.That(t, d.ViewportParameters().BaseViewMat.AlmostEqual(pushed, 1e-12), test.ShouldBeTrue)
	test.That(t, e.Angles().Phi, test.ShouldAlmostEqual, 30)

	test.That(t, e.SetView(camera.FrontView), test.ShouldBeNil)
	front, err := camera.ViewMatrix(camera.FrontView)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.ViewportParameters().BaseViewMat.AlmostEqual(front.Mul(pushed), 1e-12), test.ShouldBeTrue)
	test.That(t, e.Angles().Psi, test.ShouldAlmostEqual, -90)
}

func TestSetViewInvalid(t *testing.T) {
	e := newEditor(t)
	test.That(t, errors.Is(e.SetView(camera.TopView), camera.ErrNoDisplay), test.ShouldBeTrue)

	d := fake.NewDisplay("main")
	test.That(t, e.InitWith(d), test.ShouldBeNil)
	test.That(t, e.SetView(camera.ViewOrientation(42)), test.ShouldNotBeNil)
	test.That(t, d.Redraws(), test.ShouldEqual, 0)

	_, err := camera.ViewOrientationFromString("sideways")
	test.That(t, err, test.ShouldNotBeNil)
	o, err := camera.ViewOrientationFromString("ISO2")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o, test.ShouldEqual, camera.Iso2View)
}
