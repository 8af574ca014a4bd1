package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// shaderImpl is the implementation of the Shader interface.
type shaderImpl struct {
	key           string
	source        string
	vertexEntry   string
	fragmentEntry string
}

// Shader defines the interface for a validated WGSL shader program. The
// source is compiled through naga at construction, so a Shader that exists
// is a Shader the device will accept; pipeline creation failures from bad
// WGSL surface here instead, where they carry a useful error.
type Shader interface {
	// Key returns the shader's identifier, used for pipeline labels.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// VertexEntryPoint returns the vertex stage entry function name.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry function name.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string
}

var _ Shader = &shaderImpl{}

// ShaderBuilderOption configures a Shader during creation.
type ShaderBuilderOption func(*shaderImpl)

// WithVertexEntryPoint overrides the default "vs_main" vertex entry point.
//
// Parameters:
//   - name: the entry function name
//
// Returns:
//   - ShaderBuilderOption: the builder option
func WithVertexEntryPoint(name string) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.vertexEntry = name
	}
}

// WithFragmentEntryPoint overrides the default "fs_main" fragment entry point.
//
// Parameters:
//   - name: the entry function name
//
// Returns:
//   - ShaderBuilderOption: the builder option
func WithFragmentEntryPoint(name string) ShaderBuilderOption {
	return func(s *shaderImpl) {
		s.fragmentEntry = name
	}
}

// NewShader creates a Shader from WGSL source, validating it with naga
// before anything touches the GPU.
//
// Parameters:
//   - key: the shader identifier
//   - source: the WGSL source code
//   - opts: a variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the validated shader
//   - error: an error if the source fails to compile
func NewShader(key, source string, opts ...ShaderBuilderOption) (Shader, error) {
	if key == "" {
		return nil, fmt.Errorf("shader key must not be empty")
	}
	if _, err := naga.Compile(source); err != nil {
		return nil, fmt.Errorf("shader %q failed validation: %w", key, err)
	}

	s := &shaderImpl{
		key:           key,
		source:        source,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *shaderImpl) Key() string {
	return s.key
}

func (s *shaderImpl) Source() string {
	return s.source
}

func (s *shaderImpl) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shaderImpl) FragmentEntryPoint() string {
	return s.fragmentEntry
}
