package scene

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/instance"
	"github.com/chewxy/math32"
)

// The extents pool is shared by every scene. Idle workers exit after the pool's
// idle timeout and are respawned on submit, but a scene has no close hook to call
// Stop, so the pool is created once rather than per scene.
var (
	extentPoolOnce sync.Once
	extentPoolMu   sync.Mutex
	extentPool     worker.DynamicWorkerPool
)

func sharedExtentPool() worker.DynamicWorkerPool {
	extentPoolOnce.Do(func() {
		extentPool = worker.NewDynamicWorkerPool(max(runtime.NumCPU(), 2), 256, 1*time.Second)
	})
	return extentPool
}

// extentsCache holds the bounding sphere and the versions it was computed at.
type extentsCache struct {
	valid     bool
	structure uint64
	epoch     uint64
	center    [3]float32
	radius    float32
	scans     int
}

// slotExtents is the world-space result of one model slot.
type slotExtents struct {
	corners  [][3]float32
	min, max [3]float32
}

func (s *scene) markExtentsDirty() {
	s.structure++
}

func (s *scene) extentsStale() bool {
	return !s.extents.valid ||
		s.extents.structure != s.structure ||
		s.extents.epoch != instance.TransformEpoch()
}

func (s *scene) Center() [3]float32 {
	s.updateExtents()
	return s.extents.center
}

func (s *scene) Radius() float32 {
	s.updateExtents()
	return s.extents.radius
}

func (s *scene) ExtentScans() int {
	return s.extents.scans
}

// updateExtents recomputes the bounding sphere if the cache is stale. The box of
// every transformed corner gives the center; the radius is the farthest corner.
func (s *scene) updateExtents() {
	if !s.extentsStale() {
		return
	}
	// read the epoch before scanning so a concurrent transform change is not lost
	epoch := instance.TransformEpoch()

	slots := s.models.items
	results := make([]slotExtents, len(slots))
	if s.extentWorkers >= 2 && len(slots) > 1 {
		s.scanParallel(slots, results)
	} else {
		for i, slot := range slots {
			results[i] = scanSlot(slot)
		}
	}

	var (
		bmin, bmax [3]float32
		found      bool
	)
	for _, r := range results {
		if len(r.corners) == 0 {
			continue
		}
		if !found {
			bmin, bmax = r.min, r.max
			found = true
			continue
		}
		for k := 0; k < 3; k++ {
			bmin[k] = math32.Min(bmin[k], r.min[k])
			bmax[k] = math32.Max(bmax[k], r.max[k])
		}
	}

	var center [3]float32
	var radius float32
	if found {
		center = common.Scale3(common.Add3(bmin, bmax), 0.5)
		for _, r := range results {
			for _, c := range r.corners {
				radius = math32.Max(radius, common.Length3(common.Sub3(c, center)))
			}
		}
	}

	s.extents = extentsCache{
		valid:     true,
		structure: s.structure,
		epoch:     epoch,
		center:    center,
		radius:    radius,
		scans:     s.extents.scans + 1,
	}
}

// scanParallel fans the per-slot corner transforms out over the shared pool and
// waits for all of them.
func (s *scene) scanParallel(slots []*modelSlot, results []slotExtents) {
	pool := sharedExtentPool()
	var wg sync.WaitGroup

	extentPoolMu.Lock()
	for i, slot := range slots {
		wg.Add(1)
		idx, sl := i, slot
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = scanSlot(sl)
				return nil, nil
			},
		})
	}
	extentPoolMu.Unlock()

	wg.Wait()
}

// scanSlot transforms the local bounding box of a slot's model by every instance.
func scanSlot(slot *modelSlot) slotExtents {
	var out slotExtents
	if slot.model == nil || slot.model.MeshCount() == 0 || len(slot.instances) == 0 {
		return out
	}
	lmin, lmax := slot.model.Bounds()

	out.corners = make([][3]float32, 0, 8*len(slot.instances))
	for _, inst := range slot.instances {
		m := inst.TransformMatrix()
		for c := 0; c < 8; c++ {
			local := [3]float32{lmin[0], lmin[1], lmin[2]}
			if c&1 != 0 {
				local[0] = lmax[0]
			}
			if c&2 != 0 {
				local[1] = lmax[1]
			}
			if c&4 != 0 {
				local[2] = lmax[2]
			}
			out.corners = append(out.corners, common.TransformPoint(m[:], local))
		}
	}

	out.min, out.max = out.corners[0], out.corners[0]
	for _, c := range out.corners[1:] {
		for k := 0; k < 3; k++ {
			out.min[k] = math32.Min(out.min[k], c[k])
			out.max[k] = math32.Max(out.max[k], c[k])
		}
	}
	return out
}
