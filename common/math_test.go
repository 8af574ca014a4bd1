package common

import (
	"math"
	"testing"
)

func matApproxEqual(a, b []float32, eps float32) bool {
	for i := range 16 {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}
	return true
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	BuildModelMatrix(m[:], 1, 2, 3, 0.4, 0.5, 0.6, 1, 2, 3)

	Mul4(out[:], id[:], m[:])
	if !matApproxEqual(out[:], m[:], 0) {
		t.Errorf("I * M != M: got %v", out)
	}
	Mul4(out[:], m[:], id[:])
	if !matApproxEqual(out[:], m[:], 0) {
		t.Errorf("M * I != M: got %v", out)
	}
}

func TestMul4Vec4Identity(t *testing.T) {
	var id [16]float32
	Identity(id[:])
	v := [4]float32{1, 2, 3, 1}
	got := Mul4Vec4(id[:], v)
	if got != v {
		t.Errorf("I * v = %v, want %v", got, v)
	}
}

func TestMul4Vec4Translation(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	m[12], m[13], m[14] = 10, 20, 30

	got := Mul4Vec4(m[:], [4]float32{1, 2, 3, 1})
	want := [4]float32{11, 22, 33, 1}
	if got != want {
		t.Errorf("T * v = %v, want %v", got, want)
	}

	// Directions (w = 0) must ignore translation.
	got = Mul4Vec4(m[:], [4]float32{1, 2, 3, 0})
	want = [4]float32{1, 2, 3, 0}
	if got != want {
		t.Errorf("T * dir = %v, want %v", got, want)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, out, id [16]float32
	BuildModelMatrix(m[:], 4, -2, 7, 0.3, 1.1, -0.7, 2, 0.5, 1.5)
	Identity(id[:])

	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported a singular matrix for an affine transform")
	}
	Mul4(out[:], m[:], inv[:])
	if !matApproxEqual(out[:], id[:], 1e-4) {
		t.Errorf("M * M^-1 != I: got %v", out)
	}
}

func TestInvert4Singular(t *testing.T) {
	var m, out [16]float32 // all zeros, det = 0
	if Invert4(out[:], m[:]) {
		t.Error("Invert4 inverted a singular matrix")
	}
}

func TestTranspose4(t *testing.T) {
	var m, tt, back [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0.1, 0.2, 0.3, 1, 1, 1)
	Transpose4(tt[:], m[:])
	Transpose4(back[:], tt[:])
	if !matApproxEqual(back[:], m[:], 0) {
		t.Errorf("double transpose != original: got %v", back)
	}
	if tt[4] != m[1] || tt[1] != m[4] {
		t.Error("transpose did not swap off-diagonal elements")
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	// Under rotation + uniform scale the normal matrix is a scalar multiple
	// of the rotation, so a transformed normal stays collinear with the
	// model-transformed normal.
	var m, nm [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0.2, 0.9, -0.4, 3, 3, 3)
	if !NormalMatrix(nm[:], m[:]) {
		t.Fatal("NormalMatrix reported singular for a rotation + uniform scale")
	}

	n := [4]float32{0, 1, 0, 0}
	byModel := Mul4Vec4(m[:], n)
	byNormal := Mul4Vec4(nm[:], n)

	a := Normalize3([3]float32{byModel[0], byModel[1], byModel[2]})
	b := Normalize3([3]float32{byNormal[0], byNormal[1], byNormal[2]})
	if d := Dot3(a, b); d < 0.9999 {
		t.Errorf("directions diverge under uniform scale: dot = %v", d)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// Classic case: a plane slanted by non-uniform scale. Transforming the
	// normal by the model matrix skews it; the inverse-transpose keeps it
	// perpendicular to the transformed surface.
	var m, nm [16]float32
	Identity(m[:])
	m[0] = 2 // scale x by 2
	if !NormalMatrix(nm[:], m[:]) {
		t.Fatal("NormalMatrix reported singular for a pure scale")
	}

	// Surface tangent (1, 1, 0) maps to (2, 1, 0). The original normal
	// (-1, 1, 0) must map to something perpendicular to (2, 1, 0).
	tangent := Mul4Vec4(m[:], [4]float32{1, 1, 0, 0})
	normal := Mul4Vec4(nm[:], [4]float32{-1, 1, 0, 0})

	d := tangent[0]*normal[0] + tangent[1]*normal[1] + tangent[2]*normal[2]
	if d < -1e-5 || d > 1e-5 {
		t.Errorf("transformed normal not perpendicular to transformed tangent: dot = %v", d)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	var m, nm, id [16]float32 // zero upper 3x3
	m[15] = 1
	Identity(id[:])
	if NormalMatrix(nm[:], m[:]) {
		t.Error("NormalMatrix succeeded on a singular transform")
	}
	if !matApproxEqual(nm[:], id[:], 0) {
		t.Error("NormalMatrix did not fall back to identity for a singular transform")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	// WebGPU clip space: near plane maps to z/w = 0, far plane to z/w = 1.
	var p [16]float32
	near, far := float32(0.1), float32(100.0)
	Perspective(p[:], float32(math.Pi/4), 16.0/9.0, near, far)

	atNear := Mul4Vec4(p[:], [4]float32{0, 0, -near, 1})
	if z := atNear[2] / atNear[3]; z < -1e-5 || z > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", z)
	}
	atFar := Mul4Vec4(p[:], [4]float32{0, 0, -far, 1})
	if z := atFar[2] / atFar[3]; z < 1-1e-4 || z > 1+1e-4 {
		t.Errorf("far plane depth = %v, want 1", z)
	}
}

func TestLookAtOrigin(t *testing.T) {
	// Camera at +Z looking at the origin keeps a point at the origin
	// directly ahead at the camera's distance.
	var v [16]float32
	LookAt(v[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)

	got := Mul4Vec4(v[:], [4]float32{0, 0, 0, 1})
	want := [4]float32{0, 0, -5, 1}
	for i := range 4 {
		d := got[i] - want[i]
		if d < -1e-5 || d > 1e-5 {
			t.Fatalf("view * origin = %v, want %v", got, want)
		}
	}
}

func TestNormalize3(t *testing.T) {
	v := Normalize3([3]float32{0.3, 0.6, 0.9})
	if l := Length3(v); l < 0.99999 || l > 1.00001 {
		t.Errorf("normalized length = %v, want 1", l)
	}
	zero := Normalize3([3]float32{})
	if zero != [3]float32{} {
		t.Errorf("Normalize3 of zero vector = %v, want zero", zero)
	}
}
