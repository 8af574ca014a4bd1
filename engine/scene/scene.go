package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/erebus-go/common"
	"github.com/Carmen-Shannon/erebus-go/engine/instance"
	"github.com/Carmen-Shannon/erebus-go/engine/mesh"
	"github.com/google/uuid"
)

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	mu    sync.RWMutex
	nodes []Node

	// flattenPool runs per-node frame flattening in parallel. Workers
	// persist across frames, avoiding per-frame goroutine spawn/teardown.
	flattenPool worker.DynamicWorkerPool
	workers     int
}

// Scene defines the interface for a collection of nodes that flattens into
// one Frame per render: one instance table record per node, with the
// node's position in the table stamped onto its vertices as the instance
// index. Nodes added mid-flight take effect on the next BuildFrame.
type Scene interface {
	// Add appends a node to the scene.
	//
	// Parameters:
	//   - n: the node to add
	Add(n Node)

	// Remove removes the node with the given id.
	//
	// Parameters:
	//   - id: the node identifier
	//
	// Returns:
	//   - bool: true if a node was removed
	Remove(id uuid.UUID) bool

	// Len returns the current node count.
	//
	// Returns:
	//   - int: the node count
	Len() int

	// BuildFrame flattens the scene into an upload-ready Frame. Node
	// order fixes instance indices for the frame, so the result is
	// deterministic regardless of how the work is scheduled.
	//
	// Returns:
	//   - *Frame: the flattened frame
	//   - error: an error if any node's mesh violates the index contract
	BuildFrame() (*Frame, error)
}

var _ Scene = &sceneImpl{}

// SceneBuilderOption configures a Scene during creation.
type SceneBuilderOption func(*sceneImpl)

// WithWorkers sets the flatten pool size. Defaults to the CPU count.
//
// Parameters:
//   - n: worker count (values < 1 fall back to the default)
//
// Returns:
//   - SceneBuilderOption: the builder option
func WithWorkers(n int) SceneBuilderOption {
	return func(s *sceneImpl) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithNodes seeds the scene with initial nodes.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: the builder option
func WithNodes(nodes ...Node) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.nodes = append(s.nodes, nodes...)
	}
}

// NewScene creates an empty Scene with the provided options applied.
//
// Parameters:
//   - opts: a variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(opts ...SceneBuilderOption) Scene {
	s := &sceneImpl{}
	for _, opt := range opts {
		opt(s)
	}
	s.workers = common.Coalesce(s.workers, runtime.NumCPU())
	// Queue size of 256 accommodates typical node counts with headroom;
	// idle workers wind down after a second.
	s.flattenPool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *sceneImpl) Add(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
}

func (s *sceneImpl) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.nodes {
		if n.ID() == id {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *sceneImpl) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *sceneImpl) BuildFrame() (*Frame, error) {
	s.mu.RLock()
	nodes := make([]Node, len(s.nodes))
	copy(nodes, s.nodes)
	s.mu.RUnlock()

	// Prefix sums fix each node's slot in the shared streams up front, so
	// the parallel fill below writes disjoint ranges in any order while
	// the output stays byte-identical to a sequential build.
	vertexOffsets := make([]int, len(nodes))
	indexOffsets := make([]int, len(nodes))
	totalVertices, totalIndices := 0, 0
	for i, n := range nodes {
		vertexOffsets[i] = totalVertices
		indexOffsets[i] = totalIndices
		totalVertices += len(n.Mesh().Vertices())
		totalIndices += len(n.Mesh().Indices())
	}

	vertices := make([]mesh.GPUVertex, totalVertices)
	indices := make([]uint32, totalIndices)
	records := make([]instance.GPUInstance, len(nodes))
	errs := make([]error, len(nodes))

	var wg sync.WaitGroup
	for i, n := range nodes {
		wg.Add(1)
		s.flattenPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				inst := instance.NewInstance(
					instance.WithTransform(n.Transform()),
					instance.WithColour(n.Colour()[0], n.Colour()[1], n.Colour()[2], n.Colour()[3]),
				)
				records[i] = inst.GPU()

				meshVertices := n.Mesh().Vertices()
				base := vertexOffsets[i]
				for j, v := range meshVertices {
					vertices[base+j] = mesh.GPUVertex{
						Position:      v.Position,
						Normal:        v.Normal,
						InstanceIndex: uint32(i),
					}
				}

				ibase := indexOffsets[i]
				for j, idx := range n.Mesh().Indices() {
					if int(idx) >= len(meshVertices) {
						errs[i] = fmt.Errorf("node %s: index %d out of range for %d vertices", n.ID(), idx, len(meshVertices))
						return nil, errs[i]
					}
					indices[ibase+j] = uint32(base) + idx
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	table := instance.NewTable(len(records))
	for _, rec := range records {
		table.Append(rec)
	}
	return &Frame{
		Vertices: vertices,
		Indices:  indices,
		Table:    table,
	}, nil
}
