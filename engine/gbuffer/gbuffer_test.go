package gbuffer

import "testing"

func TestDescriptorValidate(t *testing.T) {
	if err := (Descriptor{Width: 800, Height: 600}).Validate(); err != nil {
		t.Errorf("valid descriptor rejected: %v", err)
	}
	if err := (Descriptor{Width: 0, Height: 600}).Validate(); err == nil {
		t.Errorf("zero width accepted")
	}
	if err := (Descriptor{Width: 800, Height: 0}).Validate(); err == nil {
		t.Errorf("zero height accepted")
	}
}

func TestDescriptorTexelSize(t *testing.T) {
	ts := Descriptor{Width: 4, Height: 8}.TexelSize()
	if ts[0] != 0.25 || ts[1] != 0.125 {
		t.Errorf("texel size = %v, want (0.25, 0.125)", ts)
	}
}

func TestSoftwareTargetDepthTest(t *testing.T) {
	tgt, err := NewSoftwareTarget(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	far := Fragment{Colour: [4]float32{1, 0, 0, 1}, Depth: 0.8}
	near := Fragment{Colour: [4]float32{0, 1, 0, 1}, Depth: 0.3}

	if !tgt.Write(1, 1, far) {
		t.Fatalf("write into cleared target rejected")
	}
	if !tgt.Write(1, 1, near) {
		t.Fatalf("nearer fragment rejected")
	}
	if tgt.Write(1, 1, far) {
		t.Errorf("farther fragment overwrote nearer one")
	}
	if tgt.Write(1, 1, near) {
		t.Errorf("equal-depth fragment passed a strict less test")
	}

	got := tgt.TexelAt(1, 1)
	if got.Colour != near.Colour {
		t.Errorf("texel colour = %v, want %v", got.Colour, near.Colour)
	}
	if got.Depth != 0.3 {
		t.Errorf("texel depth = %v, want 0.3", got.Depth)
	}
}

func TestSoftwareTargetDiscards(t *testing.T) {
	tgt, _ := NewSoftwareTarget(2, 2)
	if tgt.Write(-1, 0, Fragment{Depth: 0.5}) {
		t.Errorf("out-of-bounds x accepted")
	}
	if tgt.Write(0, 2, Fragment{Depth: 0.5}) {
		t.Errorf("out-of-bounds y accepted")
	}
	if tgt.Write(0, 0, Fragment{Depth: 1.5}) {
		t.Errorf("depth beyond far plane accepted")
	}
	if tgt.Write(0, 0, Fragment{Depth: -0.1}) {
		t.Errorf("depth before near plane accepted")
	}
}

func TestSoftwareTargetClearDepth(t *testing.T) {
	tgt, _ := NewSoftwareTarget(2, 2)
	if d := tgt.TexelAt(0, 0).Depth; d != 1 {
		t.Errorf("cleared depth = %v, want 1", d)
	}
}

func TestSoftwareTargetSampling(t *testing.T) {
	tgt, _ := NewSoftwareTarget(4, 2)
	tgt.Write(3, 1, Fragment{Colour: [4]float32{0, 0, 1, 1}, Depth: 0.5})

	// Edge clamp: coordinates past the boundary read the border texel.
	if got := tgt.TexelAt(10, 10).Colour; got != [4]float32{0, 0, 1, 1} {
		t.Errorf("clamped texel colour = %v", got)
	}

	// Nearest UV sampling lands on the bottom-right texel.
	if got := tgt.SampleUV(0.9, 0.9).Colour; got != [4]float32{0, 0, 1, 1} {
		t.Errorf("UV sample colour = %v", got)
	}
	if got := tgt.SampleUV(0.1, 0.1).Depth; got != 1 {
		t.Errorf("UV sample of empty texel depth = %v, want 1", got)
	}
}

func TestNewSoftwareTargetRejectsBadSize(t *testing.T) {
	if _, err := NewSoftwareTarget(0, 4); err == nil {
		t.Errorf("zero width accepted")
	}
	if _, err := NewSoftwareTarget(4, -1); err == nil {
		t.Errorf("negative height accepted")
	}
}
