package light

import (
	"weak"

	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
)

// SceneGraph is the subset of a scene an area light needs to insert and remove its
// emissive geometry.
type SceneGraph interface {
	// AddModelInstance appends inst to the slot of its model, creating the slot if needed.
	AddModelInstance(inst instance.ObjectInstance[model.Model])

	// ModelCount returns the number of model slots.
	ModelCount() int

	// Model returns the shared model of slot id.
	Model(id int) model.Model

	// DeleteModel removes slot id and all of its instances.
	DeleteModel(id int)
}

// SceneRef is a non-owning reference to a scene. Holding a SceneRef never keeps
// the scene alive.
type SceneRef interface {
	// Resolve returns the scene if it is still alive.
	//
	// Returns:
	//   - SceneGraph: the live scene
	//   - bool: false once the scene has been collected
	Resolve() (SceneGraph, bool)
}

// SceneHost is a scene that can hand out weak references to itself.
type SceneHost interface {
	SceneGraph

	// WeakRef returns a non-owning reference to the scene.
	WeakRef() SceneRef
}

// weakSceneRef resolves a weak pointer to a concrete scene type.
type weakSceneRef[T any, PT interface {
	*T
	SceneGraph
}] struct {
	ptr weak.Pointer[T]
}

// NewWeakSceneRef creates a SceneRef backed by a weak pointer to p.
//
// Parameters:
//   - p: pointer to the scene
//
// Returns:
//   - SceneRef: the weak reference
func NewWeakSceneRef[T any, PT interface {
	*T
	SceneGraph
}](p PT) SceneRef {
	return weakSceneRef[T, PT]{ptr: weak.Make((*T)(p))}
}

func (w weakSceneRef[T, PT]) Resolve() (SceneGraph, bool) {
	p := w.ptr.Value()
	if p == nil {
		return nil, false
	}
	return PT(p), true
}

// findModelSlot returns the slot index holding m, or -1.
func findModelSlot(sc SceneGraph, m model.Model) int {
	for id := 0; id < sc.ModelCount(); id++ {
		if sc.Model(id) == m {
			return id
		}
	}
	return -1
}
