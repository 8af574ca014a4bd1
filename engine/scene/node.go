package scene

import (
	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/mesh"
	"github.com/google/uuid"
)

// nodeImpl is the implementation of the Node interface.
type nodeImpl struct {
	id        uuid.UUID
	mesh      mesh.Mesh
	transform [16]float32
	colour    [4]float32
	hasColour bool
}

// Node defines the interface for one drawable entry in a scene: a mesh
// reference, a world transform, and an optional colour override. Each node
// becomes exactly one instance table record when the scene flattens into a
// frame.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uuid.UUID: the node identifier
	ID() uuid.UUID

	// Mesh returns the node's mesh.
	//
	// Returns:
	//   - mesh.Mesh: the mesh
	Mesh() mesh.Mesh

	// Transform returns the node's object-space to world-space transform.
	//
	// Returns:
	//   - [16]float32: the transform (column-major)
	Transform() [16]float32

	// SetTransform sets the node's world transform.
	//
	// Parameters:
	//   - transform: the transform (column-major)
	SetTransform(transform [16]float32)

	// Colour returns the colour this node's instance record carries: the
	// node override when one was set, otherwise the mesh's colour.
	//
	// Returns:
	//   - [4]float32: the colour as (r, g, b, a)
	Colour() [4]float32

	// SetColour overrides the mesh colour for this node only.
	//
	// Parameters:
	//   - colour: the colour as (r, g, b, a)
	SetColour(colour [4]float32)
}

var _ Node = &nodeImpl{}

// NodeBuilderOption configures a Node during creation.
type NodeBuilderOption func(*nodeImpl)

// WithTransform sets the node's initial world transform.
//
// Parameters:
//   - transform: the transform (column-major)
//
// Returns:
//   - NodeBuilderOption: the builder option
func WithTransform(transform [16]float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.transform = transform
	}
}

// WithPosition sets the node's transform to a plain translation.
//
// Parameters:
//   - x, y, z: the world position
//
// Returns:
//   - NodeBuilderOption: the builder option
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		common.BuildModelMatrix(n.transform[:], x, y, z, 0, 0, 0, 1, 1, 1)
	}
}

// WithColour overrides the mesh colour for this node.
//
// Parameters:
//   - r, g, b, a: the colour components
//
// Returns:
//   - NodeBuilderOption: the builder option
func WithColour(r, g, b, a float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.colour = [4]float32{r, g, b, a}
		n.hasColour = true
	}
}

// NewNode creates a Node for the given mesh with the provided options
// applied. Panics if the mesh is nil.
//
// Parameters:
//   - m: the mesh this node draws
//   - opts: a variadic list of NodeBuilderOption functions
//
// Returns:
//   - Node: the new node
func NewNode(m mesh.Mesh, opts ...NodeBuilderOption) Node {
	if m == nil {
		panic("mesh must be set to create a node")
	}
	n := &nodeImpl{
		id:   uuid.New(),
		mesh: m,
	}
	common.Identity(n.transform[:])
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *nodeImpl) ID() uuid.UUID {
	return n.id
}

func (n *nodeImpl) Mesh() mesh.Mesh {
	return n.mesh
}

func (n *nodeImpl) Transform() [16]float32 {
	return n.transform
}

func (n *nodeImpl) SetTransform(transform [16]float32) {
	n.transform = transform
}

func (n *nodeImpl) Colour() [4]float32 {
	if n.hasColour {
		return n.colour
	}
	return n.mesh.Colour()
}

func (n *nodeImpl) SetColour(colour [4]float32) {
	n.colour = colour
	n.hasColour = true
}
