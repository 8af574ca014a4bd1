package scene

import (
	"testing"

	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/mesh"
)

func TestBuildFrameSingleNode(t *testing.T) {
	s := NewScene()
	s.Add(NewNode(mesh.NewCube(1, mesh.WithColour(1, 0, 0, 1)), WithPosition(1, 2, 3)))

	frame, err := s.BuildFrame()
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Vertices) != 24 || len(frame.Indices) != 36 {
		t.Fatalf("frame sizes = %d vertices, %d indices", len(frame.Vertices), len(frame.Indices))
	}
	if frame.Table.Len() != 1 {
		t.Fatalf("table length = %d, want 1", frame.Table.Len())
	}
	for _, v := range frame.Vertices {
		if v.InstanceIndex != 0 {
			t.Fatalf("vertex instance index = %d, want 0", v.InstanceIndex)
		}
	}
	rec, err := frame.Table.At(0)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Colour != [4]float32{1, 0, 0, 1} {
		t.Errorf("instance colour = %v", rec.Colour)
	}
	if rec.Transform[12] != 1 || rec.Transform[13] != 2 || rec.Transform[14] != 3 {
		t.Errorf("instance translation = (%v, %v, %v)", rec.Transform[12], rec.Transform[13], rec.Transform[14])
	}
	if err := frame.Validate(); err != nil {
		t.Errorf("valid frame rejected: %v", err)
	}
}

func TestBuildFrameOffsetsIndices(t *testing.T) {
	s := NewScene()
	s.Add(NewNode(mesh.NewCube(1)))
	s.Add(NewNode(mesh.NewCube(2), WithPosition(5, 0, 0)))

	frame, err := s.BuildFrame()
	if err != nil {
		t.Fatal(err)
	}
	if len(frame.Vertices) != 48 || len(frame.Indices) != 72 {
		t.Fatalf("frame sizes = %d vertices, %d indices", len(frame.Vertices), len(frame.Indices))
	}

	// The second node's indices must be shifted past the first node's
	// vertices, and its vertices stamped with instance index 1.
	for _, idx := range frame.Indices[36:] {
		if idx < 24 || idx >= 48 {
			t.Fatalf("second node index %d outside its vertex range [24, 48)", idx)
		}
	}
	for _, v := range frame.Vertices[24:] {
		if v.InstanceIndex != 1 {
			t.Fatalf("second node vertex instance index = %d, want 1", v.InstanceIndex)
		}
	}
	if err := frame.Validate(); err != nil {
		t.Errorf("valid frame rejected: %v", err)
	}
}

func TestBuildFrameDeterministic(t *testing.T) {
	s := NewScene(WithWorkers(4))
	for i := range 16 {
		s.Add(NewNode(mesh.NewCube(float32(i+1)), WithPosition(float32(i), 0, 0)))
	}

	a, err := s.BuildFrame()
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.BuildFrame()
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Vertices) != len(b.Vertices) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("frame sizes differ between builds")
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between builds", i)
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("index %d differs between builds", i)
		}
	}
	for i := range a.Table.Len() {
		ra, _ := a.Table.At(uint32(i))
		rb, _ := b.Table.At(uint32(i))
		if ra != rb {
			t.Fatalf("table record %d differs between builds", i)
		}
	}
}

func TestBuildFrameRejectsBrokenMesh(t *testing.T) {
	broken := mesh.NewMesh(
		mesh.WithVertices([]mesh.Vertex{{Position: [3]float32{0, 0, 0}}}),
		mesh.WithIndices([]uint32{0, 1, 2}),
	)
	s := NewScene()
	s.Add(NewNode(broken))
	if _, err := s.BuildFrame(); err == nil {
		t.Errorf("mesh with out-of-range indices accepted")
	}
}

func TestNodeColourOverride(t *testing.T) {
	m := mesh.NewCube(1, mesh.WithColour(1, 1, 1, 1))
	plain := NewNode(m)
	tinted := NewNode(m, WithColour(0, 0, 1, 1))

	if plain.Colour() != [4]float32{1, 1, 1, 1} {
		t.Errorf("node without override = %v, want mesh colour", plain.Colour())
	}
	if tinted.Colour() != [4]float32{0, 0, 1, 1} {
		t.Errorf("node with override = %v", tinted.Colour())
	}
}

func TestRemove(t *testing.T) {
	s := NewScene()
	n := NewNode(mesh.NewCube(1))
	s.Add(n)
	s.Add(NewNode(mesh.NewCube(1)))

	if !s.Remove(n.ID()) {
		t.Errorf("existing node not removed")
	}
	if s.Remove(n.ID()) {
		t.Errorf("removed node removed twice")
	}
	if s.Len() != 1 {
		t.Errorf("scene length = %d, want 1", s.Len())
	}
}

func TestFrameDataPacking(t *testing.T) {
	s := NewScene()
	s.Add(NewNode(mesh.NewCube(1)))
	frame, err := s.BuildFrame()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(frame.VertexData()); got != 24*28 {
		t.Errorf("vertex data length = %d, want %d", got, 24*28)
	}
	if got := len(frame.IndexData()); got != 36*4 {
		t.Errorf("index data length = %d, want %d", got, 36*4)
	}
	if frame.IndexCount() != 36 {
		t.Errorf("index count = %d, want 36", frame.IndexCount())
	}

	var id [16]float32
	common.Identity(id[:])
	rec, _ := frame.Table.At(0)
	if rec.Transform != id {
		t.Errorf("default node transform not identity")
	}
}
