package shading

import (
	"testing"

	"github.com/Carmen-Shannon/erebus-go/engine/gbuffer"
)

// perpNormal is orthogonal to LightDirection: the light is a scaled
// (0.3, 0.6, 0.9), and 0.3*0.6 - 0.6*0.3 cancels exactly in binary floats.
var perpNormal = [3]float32{0.6, -0.3, 0}

func TestLightDirectionIsUnit(t *testing.T) {
	d := LightDirection
	l := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
	if l < 0.99999 || l > 1.00001 {
		t.Fatalf("light direction not unit length: %v", d)
	}
}

func TestShadePlainAmbientFloor(t *testing.T) {
	colour := [4]float32{0.5, 0.25, 1, 1}
	got := ShadePlain(colour, perpNormal)
	for i := range 3 {
		if want := colour[i] * Ambient; got[i] != want {
			t.Errorf("channel %d = %v, want exactly %v", i, got[i], want)
		}
	}
	if got[3] != 1 {
		t.Errorf("alpha = %v, want forced 1", got[3])
	}
}

func TestShadePlainNoUpperClamp(t *testing.T) {
	colour := [4]float32{1, 1, 1, 1}
	got := ShadePlain(colour, LightDirection)
	// diffuse is ~1, so the light term is ~1.3 and the output overshoots
	// the input; the plain variant leaves that to downstream tone mapping.
	if got[0] <= 1 {
		t.Errorf("plain variant clamped: channel = %v, want > 1", got[0])
	}
}

func TestShadeEdgeHighlightedCeiling(t *testing.T) {
	colour := [4]float32{0.5, 0.25, 1, 1}
	got := ShadeEdgeHighlighted(colour, LightDirection, 0)
	for i := range 3 {
		if got[i] != colour[i] {
			t.Errorf("channel %d = %v, want exactly %v (light term clamped to 1)", i, got[i], colour[i])
		}
	}
}

func TestShadeEdgeHighlightedDarkens(t *testing.T) {
	colour := [4]float32{1, 1, 1, 1}
	lit := ShadeEdgeHighlighted(colour, perpNormal, 0)
	darkened := ShadeEdgeHighlighted(colour, perpNormal, EdgeDarkenAmount)
	for i := range 3 {
		if darkened[i] >= lit[i] {
			t.Errorf("channel %d not darkened: %v vs %v", i, darkened[i], lit[i])
		}
	}
	// darken 1 pulls the colour fully to black before lighting.
	if black := ShadeEdgeHighlighted(colour, perpNormal, 1); black[0] != 0 || black[1] != 0 || black[2] != 0 {
		t.Errorf("full darken = %v, want black rgb", black)
	}
}

func TestEdgeDarkenFactor(t *testing.T) {
	// Four neighbours at d, center at d - 0.002: the Laplacian is 0.008,
	// over the 0.005 threshold.
	d := float32(0.5)
	if got := EdgeDarkenFactor(d-0.002, d, d, d, d); got != EdgeDarkenAmount {
		t.Errorf("edge factor = %v, want exactly %v", got, EdgeDarkenAmount)
	}
	// Flat depth, zero Laplacian.
	if got := EdgeDarkenFactor(d, d, d, d, d); got != 0 {
		t.Errorf("flat factor = %v, want exactly 0", got)
	}
	// Negative spikes (center farther than neighbours) never darken.
	if got := EdgeDarkenFactor(d+0.01, d, d, d, d); got != 0 {
		t.Errorf("negative spike factor = %v, want 0", got)
	}
}

func TestFullscreenVertex(t *testing.T) {
	want := [3][4]float32{
		{-1, 1, 0, 1},
		{3, 1, 0, 1},
		{-1, -3, 0, 1},
	}
	var minX, maxX, minY, maxY float32
	for i := uint32(0); i < 3; i++ {
		got := FullscreenVertex(i)
		if got != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, got, want[i])
		}
		if i == 0 {
			minX, maxX, minY, maxY = got[0], got[0], got[1], got[1]
			continue
		}
		minX = min(minX, got[0])
		maxX = max(maxX, got[0])
		minY = min(minY, got[1])
		maxY = max(maxY, got[1])
	}
	// The triangle's bounding box must cover the whole viewport.
	if minX > -1 || maxX < 1 || minY > -1 || maxY < 1 {
		t.Errorf("bounding box [%v,%v]x[%v,%v] does not cover [-1,1]^2", minX, maxX, minY, maxY)
	}
}

func TestResolvePixelEdgeVsPlain(t *testing.T) {
	target, err := gbuffer.NewSoftwareTarget(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Fill the target with a flat surface, then punch the center nearer so
	// its four neighbours form a depth discontinuity around it.
	for y := range 5 {
		for x := range 5 {
			target.Write(x, y, gbuffer.Fragment{
				Colour: [4]float32{1, 1, 1, 1},
				Normal: [4]float32{perpNormal[0], perpNormal[1], perpNormal[2], 1},
				Depth:  0.5,
			})
		}
	}
	target.Write(2, 2, gbuffer.Fragment{
		Colour: [4]float32{1, 1, 1, 1},
		Normal: [4]float32{perpNormal[0], perpNormal[1], perpNormal[2], 1},
		Depth:  0.5 - 0.002,
	})

	edge := ResolvePixel(target, 2, 2, LightingEdgeHighlighted)
	plain := ResolvePixel(target, 2, 2, LightingPlain)
	flat := ResolvePixel(target, 0, 0, LightingEdgeHighlighted)

	if edge[0] >= flat[0] {
		t.Errorf("edge pixel %v not darker than flat pixel %v", edge, flat)
	}
	if plain[0] != flat[0] {
		t.Errorf("plain variant shaded the edge pixel differently: %v vs %v", plain, flat)
	}
}

func TestVariantNames(t *testing.T) {
	for _, tc := range []struct {
		name string
		want string
	}{
		{GeometryStandard.String(), "standard"},
		{GeometryDebugNormals.String(), "debug_normals"},
		{LightingPlain.String(), "plain"},
		{LightingEdgeHighlighted.String(), "edge_highlighted"},
	} {
		if tc.name != tc.want {
			t.Errorf("variant name = %q, want %q", tc.name, tc.want)
		}
	}

	if v, err := ParseGeometryVariant("debug_normals"); err != nil || v != GeometryDebugNormals {
		t.Errorf("ParseGeometryVariant(debug_normals) = %v, %v", v, err)
	}
	if _, err := ParseGeometryVariant("bogus"); err == nil {
		t.Errorf("bogus geometry variant accepted")
	}
	if v, err := ParseLightingVariant("edge_highlighted"); err != nil || v != LightingEdgeHighlighted {
		t.Errorf("ParseLightingVariant(edge_highlighted) = %v, %v", v, err)
	}
	if _, err := ParseLightingVariant("bogus"); err == nil {
		t.Errorf("bogus lighting variant accepted")
	}
}
