package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/erebus-go/common"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestGPUViewUniform(t *testing.T) {
	u := GPUViewUniform{}
	if got := u.Size(); got != 64 {
		t.Fatalf("GPUViewUniform size = %d, want 64", got)
	}
	u.ViewProj[3] = 1.5
	buf := u.Marshal()
	if len(buf) != 64 {
		t.Fatalf("marshaled length = %d, want 64", len(buf))
	}
	if bits := binary.LittleEndian.Uint32(buf[12:16]); bits != math.Float32bits(1.5) {
		t.Errorf("view_proj[3] bits = %#x, want %#x", bits, math.Float32bits(1.5))
	}
}

func TestEyePosition(t *testing.T) {
	c := NewCamera(WithDistance(5))
	eye := c.Eye()
	if !approx(eye[0], 5) || !approx(eye[1], 0) || !approx(eye[2], 0) {
		t.Errorf("eye at yaw 0, pitch 0 = %v, want (5, 0, 0)", eye)
	}

	c = NewCamera(WithDistance(5), WithAngles(float32(math.Pi/2), 0))
	eye = c.Eye()
	if !approx(eye[0], 0) || !approx(eye[1], 5) || !approx(eye[2], 0) {
		t.Errorf("eye at yaw pi/2 = %v, want (0, 5, 0)", eye)
	}

	c = NewCamera(WithDistance(2), WithCentre(1, 1, 1))
	eye = c.Eye()
	if !approx(eye[0], 3) || !approx(eye[1], 1) || !approx(eye[2], 1) {
		t.Errorf("eye with offset centre = %v, want (3, 1, 1)", eye)
	}
}

func TestViewProjectionCentresTarget(t *testing.T) {
	c := NewCamera(WithDistance(5), WithAngles(0.7, 0.4), WithCentre(1, -2, 3))
	vp := c.ViewProjection()
	clip := common.Mul4Vec4(vp[:], [4]float32{1, -2, 3, 1})

	// The orbit centre projects to the middle of the screen with a depth
	// strictly inside the WebGPU [0, 1] range.
	x := clip[0] / clip[3]
	y := clip[1] / clip[3]
	z := clip[2] / clip[3]
	if !approx(x, 0) || !approx(y, 0) {
		t.Errorf("centre projects to (%v, %v), want (0, 0)", x, y)
	}
	if z <= 0 || z >= 1 {
		t.Errorf("centre depth = %v, want inside (0, 1)", z)
	}
}

func TestViewProjectionIsProjTimesView(t *testing.T) {
	c := NewCamera(WithAngles(1.2, -0.3), WithDistance(8))
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()

	var want [16]float32
	common.Mul4(want[:], proj[:], view[:])
	got := c.ViewProjection()
	for i := range got {
		if !approx(got[i], want[i]) {
			t.Fatalf("viewProj[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if c.GPU().ViewProj != got {
		t.Errorf("GPU view uniform does not match ViewProjection")
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	c := NewCamera(WithDistance(5))
	c.Orbit(0, 10) // way past the pole
	eye := c.Eye()
	if eye[2] >= 5 {
		t.Errorf("pitch not clamped, eye z = %v", eye[2])
	}
	// Horizontal radius must stay positive so the up axis never degenerates.
	r := math.Hypot(float64(eye[0]), float64(eye[1]))
	if r < 1e-4 {
		t.Errorf("eye collapsed onto the up axis, horizontal radius = %v", r)
	}
}

func TestZoomFloor(t *testing.T) {
	c := NewCamera(WithDistance(5), WithClipPlanes(0.5, 100))
	c.Zoom(-10)
	eye := c.Eye()
	d := common.Length3([3]float32{eye[0], eye[1], eye[2]})
	if !approx(d, 0.5) {
		t.Errorf("zoom floor distance = %v, want 0.5", d)
	}
}

func TestSetAspect(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()
	if !approx(after[0], before[0]/2) {
		t.Errorf("proj[0] after aspect 2 = %v, want %v", after[0], before[0]/2)
	}
}
