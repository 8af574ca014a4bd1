package mesh

import (
	"github.com/google/uuid"
)

// Vertex is a single CPU-side vertex: object-space position and normal.
// The instance index is not part of mesh data — it is stamped onto each
// vertex when a scene flattens its nodes into a frame vertex stream.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	id       uuid.UUID
	vertices []Vertex
	indices  []uint32
	colour   [4]float32
}

// Mesh defines the interface for a piece of drawable geometry: a vertex list,
// a triangle index list, and a flat RGBA colour applied uniformly across the
// surface (this core carries no per-texel albedo). Meshes are immutable
// during a draw; the scene references them by value when building a frame.
type Mesh interface {
	// ID returns the mesh's unique identifier, used for caching and debug labels.
	//
	// Returns:
	//   - uuid.UUID: the mesh identifier
	ID() uuid.UUID

	// Vertices returns the mesh's vertex list.
	//
	// Returns:
	//   - []Vertex: the vertices in object space
	Vertices() []Vertex

	// Indices returns the mesh's triangle index list (three indices per triangle).
	//
	// Returns:
	//   - []uint32: the indices into Vertices()
	Indices() []uint32

	// Colour returns the mesh's flat RGBA colour.
	//
	// Returns:
	//   - [4]float32: the colour as (r, g, b, a)
	Colour() [4]float32

	// SetColour sets the mesh's flat RGBA colour.
	//
	// Parameters:
	//   - colour: the colour as (r, g, b, a)
	SetColour(colour [4]float32)

	// BoundingRadius returns the bounding sphere radius of the mesh around
	// its object-space origin.
	//
	// Returns:
	//   - float32: the maximum vertex distance from the origin
	BoundingRadius() float32
}

var _ Mesh = &meshImpl{}

// MeshBuilderOption configures a Mesh during creation.
type MeshBuilderOption func(*meshImpl)

// WithVertices sets the mesh's vertex list.
//
// Parameters:
//   - vertices: the vertices in object space
//
// Returns:
//   - MeshBuilderOption: the builder option
func WithVertices(vertices []Vertex) MeshBuilderOption {
	return func(m *meshImpl) {
		m.vertices = vertices
	}
}

// WithIndices sets the mesh's triangle index list.
//
// Parameters:
//   - indices: three indices per triangle, each < len(vertices)
//
// Returns:
//   - MeshBuilderOption: the builder option
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indices = indices
	}
}

// WithColour sets the mesh's flat RGBA colour.
//
// Parameters:
//   - r, g, b, a: the colour components
//
// Returns:
//   - MeshBuilderOption: the builder option
func WithColour(r, g, b, a float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.colour = [4]float32{r, g, b, a}
	}
}

// NewMesh creates a new Mesh with the provided options applied.
// The default colour is opaque white, matching the fallback the original
// asset path uses when a material carries no base colour factor.
//
// Parameters:
//   - opts: a variadic list of MeshBuilderOption functions
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(opts ...MeshBuilderOption) Mesh {
	m := &meshImpl{
		id:     uuid.New(),
		colour: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewCube creates an axis-aligned cube centred on the origin with the given
// edge length. Each face carries its own four vertices so normals stay flat.
//
// Parameters:
//   - size: edge length of the cube
//   - opts: additional builder options (e.g. WithColour)
//
// Returns:
//   - Mesh: the cube mesh (24 vertices, 36 indices)
func NewCube(size float32, opts ...MeshBuilderOption) Mesh {
	h := size / 2

	faces := []struct {
		normal [3]float32
		quad   [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range faces {
		base := uint32(len(vertices))
		for _, p := range face.quad {
			vertices = append(vertices, Vertex{Position: p, Normal: face.normal})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	allOpts := append([]MeshBuilderOption{WithVertices(vertices), WithIndices(indices)}, opts...)
	return NewMesh(allOpts...)
}

func (m *meshImpl) ID() uuid.UUID {
	return m.id
}

func (m *meshImpl) Vertices() []Vertex {
	return m.vertices
}

func (m *meshImpl) Indices() []uint32 {
	return m.indices
}

func (m *meshImpl) Colour() [4]float32 {
	return m.colour
}

func (m *meshImpl) SetColour(colour [4]float32) {
	m.colour = colour
}

func (m *meshImpl) BoundingRadius() float32 {
	return ComputeBoundingRadius(m.vertices)
}
