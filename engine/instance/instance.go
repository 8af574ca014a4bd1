package instance

import (
	"github.com/Carmen-Shannon/erebus-go/common"
)

// instanceImpl is the implementation of the Instance interface.
type instanceImpl struct {
	transform       [16]float32
	normalTransform [16]float32
	colour          [4]float32
}

// Instance defines the interface for a single drawable mesh instance's
// per-frame shading data: a world transform, the derived normal correction
// transform, and a flat colour. Instances are collected into a Table each
// frame and addressed from vertex data by integer index.
type Instance interface {
	// Transform returns the object-space to world-space transform.
	//
	// Returns:
	//   - [16]float32: the transform (column-major)
	Transform() [16]float32

	// NormalTransform returns the matrix used to transform surface normals.
	// Kept equal to the inverse-transpose of Transform's upper 3x3 by
	// SetTransform so shading stays correct under non-uniform scale.
	//
	// Returns:
	//   - [16]float32: the normal transform (column-major)
	NormalTransform() [16]float32

	// Colour returns the instance's flat RGBA tint.
	//
	// Returns:
	//   - [4]float32: the colour as (r, g, b, a)
	Colour() [4]float32

	// SetTransform sets the world transform and recomputes the normal
	// transform as the inverse-transpose of its upper 3x3 submatrix.
	// A singular transform falls back to an identity normal transform.
	//
	// Parameters:
	//   - transform: the new transform (column-major)
	SetTransform(transform [16]float32)

	// SetColour sets the instance's flat RGBA tint.
	//
	// Parameters:
	//   - colour: the colour as (r, g, b, a)
	SetColour(colour [4]float32)

	// GPU returns the GPU-aligned record for this instance, ready for the
	// frame's instance table.
	//
	// Returns:
	//   - GPUInstance: the GPU record
	GPU() GPUInstance
}

var _ Instance = &instanceImpl{}

// InstanceBuilderOption configures an Instance during creation.
type InstanceBuilderOption func(*instanceImpl)

// WithTransform sets the initial world transform. The normal transform is
// derived from it, exactly as SetTransform does.
//
// Parameters:
//   - transform: the transform (column-major)
//
// Returns:
//   - InstanceBuilderOption: the builder option
func WithTransform(transform [16]float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.SetTransform(transform)
	}
}

// WithColour sets the instance's flat RGBA tint.
//
// Parameters:
//   - r, g, b, a: the colour components
//
// Returns:
//   - InstanceBuilderOption: the builder option
func WithColour(r, g, b, a float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.colour = [4]float32{r, g, b, a}
	}
}

// WithNormalTransform overrides the derived normal transform. Only needed
// when the producer computes its own correction matrix; the override must
// still satisfy the inverse-transpose invariant under non-uniform scale.
//
// Parameters:
//   - normalTransform: the normal transform (column-major)
//
// Returns:
//   - InstanceBuilderOption: the builder option
func WithNormalTransform(normalTransform [16]float32) InstanceBuilderOption {
	return func(i *instanceImpl) {
		i.normalTransform = normalTransform
	}
}

// NewInstance creates a new Instance with the provided options applied.
// Defaults to identity transforms and opaque white.
//
// Parameters:
//   - opts: a variadic list of InstanceBuilderOption functions
//
// Returns:
//   - Instance: the new instance
func NewInstance(opts ...InstanceBuilderOption) Instance {
	i := &instanceImpl{
		colour: [4]float32{1, 1, 1, 1},
	}
	common.Identity(i.transform[:])
	common.Identity(i.normalTransform[:])
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *instanceImpl) Transform() [16]float32 {
	return i.transform
}

func (i *instanceImpl) NormalTransform() [16]float32 {
	return i.normalTransform
}

func (i *instanceImpl) Colour() [4]float32 {
	return i.colour
}

func (i *instanceImpl) SetTransform(transform [16]float32) {
	i.transform = transform
	common.NormalMatrix(i.normalTransform[:], transform[:])
}

func (i *instanceImpl) SetColour(colour [4]float32) {
	i.colour = colour
}

func (i *instanceImpl) GPU() GPUInstance {
	return GPUInstance{
		Transform:       i.transform,
		NormalTransform: i.normalTransform,
		Colour:          i.colour,
	}
}
