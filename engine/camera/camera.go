package camera

import (
	"math"

	"github.com/Carmen-Shannon/erebus-go/common"
)

const (
	defaultFov      = float32(math.Pi / 3)
	defaultNear     = float32(0.1)
	defaultFar      = float32(100.0)
	defaultDistance = float32(5.0)

	// Pitch stops just short of the poles so the view basis never collapses
	// against the up axis.
	maxPitch = float32(math.Pi/2) - 0.01
)

// cameraImpl is the implementation of the Camera interface.
type cameraImpl struct {
	fovY   float32
	aspect float32
	near   float32
	far    float32

	centre   [3]float32
	distance float32
	yaw      float32
	pitch    float32

	view     [16]float32
	proj     [16]float32
	viewProj [16]float32
}

// Camera defines the interface for an orbit camera: it circles a centre
// point at a fixed distance, controlled by yaw and pitch angles, with +Z up.
// Every mutation recomputes the cached view and projection matrices, so the
// getters are cheap to call once per frame.
type Camera interface {
	// Eye returns the camera's position in world space.
	//
	// Returns:
	//   - [3]float32: the eye position
	Eye() [3]float32

	// ViewMatrix returns the world-space to view-space transform.
	//
	// Returns:
	//   - [16]float32: the view matrix (column-major)
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the perspective projection (WebGPU depth
	// convention, clip-space Z in [0, 1]).
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	ProjectionMatrix() [16]float32

	// ViewProjection returns projection * view, the matrix bound to the
	// geometry pass as the frame's view uniform.
	//
	// Returns:
	//   - [16]float32: the combined matrix (column-major)
	ViewProjection() [16]float32

	// GPU returns the GPU-aligned view uniform for the current frame.
	//
	// Returns:
	//   - GPUViewUniform: the view uniform record
	GPU() GPUViewUniform

	// SetAspect updates the viewport aspect ratio, typically on resize.
	//
	// Parameters:
	//   - aspect: width divided by height
	SetAspect(aspect float32)

	// SetCentre moves the orbit centre.
	//
	// Parameters:
	//   - x, y, z: the new centre in world space
	SetCentre(x, y, z float32)

	// Orbit rotates the camera around the centre.
	//
	// Parameters:
	//   - deltaYaw: yaw change in radians (around the up axis)
	//   - deltaPitch: pitch change in radians, clamped short of the poles
	Orbit(deltaYaw, deltaPitch float32)

	// Zoom moves the camera along its view ray. Distance never drops below
	// the near plane.
	//
	// Parameters:
	//   - delta: distance change (positive moves away from the centre)
	Zoom(delta float32)
}

var _ Camera = &cameraImpl{}

// CameraBuilderOption configures a Camera during creation.
type CameraBuilderOption func(*cameraImpl)

// WithFieldOfView sets the vertical field of view.
//
// Parameters:
//   - fovY: vertical field of view in radians
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithFieldOfView(fovY float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fovY = fovY
	}
}

// WithAspect sets the viewport aspect ratio.
//
// Parameters:
//   - aspect: width divided by height
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clip distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithCentre sets the orbit centre.
//
// Parameters:
//   - x, y, z: the centre in world space
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithCentre(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.centre = [3]float32{x, y, z}
	}
}

// WithDistance sets the orbit distance from the centre.
//
// Parameters:
//   - distance: distance in world units
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = distance
	}
}

// WithAngles sets the initial orbit yaw and pitch.
//
// Parameters:
//   - yaw: rotation around the up axis in radians
//   - pitch: elevation above the horizontal plane in radians
//
// Returns:
//   - CameraBuilderOption: the builder option
func WithAngles(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
		c.pitch = clampPitch(pitch)
	}
}

// NewCamera creates a new orbit Camera with the provided options applied.
// Defaults: 60 degree vertical FOV, 1:1 aspect, 0.1/100 clip planes, orbit
// centre at the origin, distance 5, yaw and pitch 0.
//
// Parameters:
//   - opts: a variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(opts ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		fovY:     defaultFov,
		aspect:   1,
		near:     defaultNear,
		far:      defaultFar,
		distance: defaultDistance,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.update()
	return c
}

func clampPitch(p float32) float32 {
	if p > maxPitch {
		return maxPitch
	}
	if p < -maxPitch {
		return -maxPitch
	}
	return p
}

// update recomputes the eye position and all cached matrices.
func (c *cameraImpl) update() {
	eye := c.Eye()
	common.LookAt(c.view[:],
		eye[0], eye[1], eye[2],
		c.centre[0], c.centre[1], c.centre[2],
		0, 0, 1)
	common.Perspective(c.proj[:], c.fovY, c.aspect, c.near, c.far)
	common.Mul4(c.viewProj[:], c.proj[:], c.view[:])
}

func (c *cameraImpl) Eye() [3]float32 {
	cp := float32(math.Cos(float64(c.pitch)))
	sp := float32(math.Sin(float64(c.pitch)))
	cy := float32(math.Cos(float64(c.yaw)))
	sy := float32(math.Sin(float64(c.yaw)))
	return [3]float32{
		c.centre[0] + c.distance*cp*cy,
		c.centre[1] + c.distance*cp*sy,
		c.centre[2] + c.distance*sp,
	}
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	return c.proj
}

func (c *cameraImpl) ViewProjection() [16]float32 {
	return c.viewProj
}

func (c *cameraImpl) GPU() GPUViewUniform {
	return GPUViewUniform{ViewProj: c.viewProj}
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.update()
}

func (c *cameraImpl) SetCentre(x, y, z float32) {
	c.centre = [3]float32{x, y, z}
	c.update()
}

func (c *cameraImpl) Orbit(deltaYaw, deltaPitch float32) {
	c.yaw += deltaYaw
	c.pitch = clampPitch(c.pitch + deltaPitch)
	c.update()
}

func (c *cameraImpl) Zoom(delta float32) {
	c.distance += delta
	if c.distance < c.near {
		c.distance = c.near
	}
	c.update()
}
