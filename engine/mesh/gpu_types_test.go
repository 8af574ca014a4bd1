package mesh

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{}
	if got := v.Size(); got != 28 {
		t.Fatalf("GPUVertex size = %d, want 28", got)
	}
	if off := unsafe.Offsetof(v.Position); off != 0 {
		t.Errorf("Position offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(v.Normal); off != 12 {
		t.Errorf("Normal offset = %d, want 12", off)
	}
	if off := unsafe.Offsetof(v.InstanceIndex); off != 24 {
		t.Errorf("InstanceIndex offset = %d, want 24", off)
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position:      [3]float32{1, 2, 3},
		Normal:        [3]float32{0, 1, 0},
		InstanceIndex: 7,
	}
	buf := v.Marshal()
	if len(buf) != 28 {
		t.Fatalf("marshaled length = %d, want 28", len(buf))
	}
	if bits := binary.LittleEndian.Uint32(buf[0:4]); bits != math.Float32bits(1) {
		t.Errorf("position.x bits = %#x, want %#x", bits, math.Float32bits(1))
	}
	if bits := binary.LittleEndian.Uint32(buf[16:20]); bits != math.Float32bits(1) {
		t.Errorf("normal.y bits = %#x, want %#x", bits, math.Float32bits(1))
	}
	if idx := binary.LittleEndian.Uint32(buf[24:28]); idx != 7 {
		t.Errorf("instance index = %d, want 7", idx)
	}
}

func TestMarshalVertexBuffer(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{1, 0, 0}, InstanceIndex: 0},
		{Position: [3]float32{0, 1, 0}, InstanceIndex: 1},
	}
	buf := MarshalVertexBuffer(vertices)
	if len(buf) != 56 {
		t.Fatalf("buffer length = %d, want 56", len(buf))
	}
	if idx := binary.LittleEndian.Uint32(buf[28+24 : 28+28]); idx != 1 {
		t.Errorf("second vertex instance index = %d, want 1", idx)
	}
}

func TestNewCube(t *testing.T) {
	c := NewCube(2, WithColour(1, 0, 0, 1))
	if got := len(c.Vertices()); got != 24 {
		t.Errorf("cube vertex count = %d, want 24", got)
	}
	if got := len(c.Indices()); got != 36 {
		t.Errorf("cube index count = %d, want 36", got)
	}
	if got := c.Colour(); got != [4]float32{1, 0, 0, 1} {
		t.Errorf("cube colour = %v", got)
	}
	for _, idx := range c.Indices() {
		if int(idx) >= len(c.Vertices()) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	// Every corner sits sqrt(3) from the origin for a unit half-extent.
	want := float32(math.Sqrt(3))
	if r := c.BoundingRadius(); r < want-1e-5 || r > want+1e-5 {
		t.Errorf("bounding radius = %v, want %v", r, want)
	}
}

func TestNewCubeNormalsAreUnit(t *testing.T) {
	for _, v := range NewCube(1).Vertices() {
		n := v.Normal
		l := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if l < 0.99999 || l > 1.00001 {
			t.Fatalf("non-unit face normal %v", n)
		}
	}
}
