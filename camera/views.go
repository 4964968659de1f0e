package camera

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"go.ccpose.dev/ccpose/spatialmath"
)

// ViewOrientation is one of the standard directions the camera can look from.
type ViewOrientation int

// The standard views. Each looks at the origin from the named side; the two iso
// views look down a cube diagonal.
const (
	TopView ViewOrientation = iota
	BottomView
	FrontView
	BackView
	LeftView
	RightView
	Iso1View
	Iso2View
)

var viewNames = map[ViewOrientation]string{
	TopView:    "top",
	BottomView: "bottom",
	FrontView:  "front",
	BackView:   "back",
	LeftView:   "left",
	RightView:  "right",
	Iso1View:   "iso1",
	Iso2View:   "iso2",
}

// eye and up direction of each view, looking at the origin.
var viewDirections = map[ViewOrientation][2]mgl64.Vec3{
	TopView:    {{0, 0, 1}, {0, 1, 0}},
	BottomView: {{0, 0, -1}, {0, 1, 0}},
	FrontView:  {{0, -1, 0}, {0, 0, 1}},
	BackView:   {{0, 1, 0}, {0, 0, 1}},
	LeftView:   {{-1, 0, 0}, {0, 0, 1}},
	RightView:  {{1, 0, 0}, {0, 0, 1}},
	Iso1View:   {{-1, -1, 1}, {1, 1, 1}},
	Iso2View:   {{1, 1, 1}, {-1, -1, 1}},
}

func (o ViewOrientation) String() string {
	if name, ok := viewNames[o]; ok {
		return name
	}
	return "unknown"
}

// ViewOrientationFromString parses a view name such as "top" or "iso1". The parsing is
// case-insensitive.
func ViewOrientationFromString(name string) (ViewOrientation, error) {
	for o, n := range viewNames {
		if strings.EqualFold(n, name) {
			return o, nil
		}
	}
	return 0, errors.Errorf("unknown view %q", name)
}

// ViewMatrix returns the rotation that makes the camera look from o towards the origin.
// The rows of the rotation are the side, up and backward directions of the camera; the
// translation is zero.
func ViewMatrix(o ViewOrientation) (spatialmath.Matrix, error) {
	dirs, ok := viewDirections[o]
	if !ok {
		return spatialmath.Matrix{}, errors.Errorf("unknown view orientation %d", int(o))
	}
	m := spatialmath.NewMatrix(mgl64.LookAtV(dirs[0], mgl64.Vec3{}, dirs[1]))
	return m.Rotation(), nil
}
