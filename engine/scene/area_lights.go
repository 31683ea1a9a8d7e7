package scene

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/material"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
)

// meshLightKey identifies the mesh of an instance a mesh light is bound to.
type meshLightKey struct {
	inst      ModelInstance
	meshIndex int
}

func (s *scene) CreateAreaLights() ([]light.MeshAreaLight, error) {
	owned := make(map[model.Model]struct{})
	emissive := make(map[material.Material]struct{})
	bound := make(map[meshLightKey]struct{})
	for _, l := range s.lights.items {
		switch al := l.(type) {
		case light.AreaLight:
			if inst := al.Instance(); inst != nil {
				owned[inst.Object()] = struct{}{}
			}
			// the emissive material outlives geometry rebuilds, so it also marks
			// emitters left behind by an earlier radius or shape
			if m := al.Material(); m != nil {
				emissive[m] = struct{}{}
			}
		case light.MeshAreaLight:
			bound[meshLightKey{inst: al.Instance(), meshIndex: al.MeshIndex()}] = struct{}{}
		}
	}

	var created []light.MeshAreaLight
	for _, slot := range s.models.items {
		if _, ok := owned[slot.model]; ok {
			continue
		}
		for meshIndex, mesh := range slot.model.Meshes() {
			if _, ok := emissive[mesh.Material()]; ok {
				continue
			}
			if _, ok := material.EmissiveRadiance(mesh.Material()); !ok {
				continue
			}
			for _, inst := range slot.instances {
				if _, ok := bound[meshLightKey{inst: inst, meshIndex: meshIndex}]; ok {
					continue
				}
				l, err := light.NewMeshAreaLight(inst, meshIndex)
				if err != nil {
					return created, fmt.Errorf("scene %q: %w", s.name, err)
				}
				s.lights.add(l)
				created = append(created, l)
			}
		}
	}

	slog.Debug("scene.CreateAreaLights", "scene", s.name, "created", len(created))
	return created, nil
}

func (s *scene) DeleteAreaLights() int {
	removed := 0
	for i := s.lights.len() - 1; i >= 0; i-- {
		if s.lights.items[i].Provenance() == light.ProvenanceEmissiveMesh {
			s.lights.remove(i)
			removed++
		}
	}
	slog.Debug("scene.DeleteAreaLights", "scene", s.name, "removed", removed)
	return removed
}
