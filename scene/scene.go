package scene

import (
	"errors"
	"fmt"

	"pbr-viewer/material"
)

var (
	ErrMaterialShared = errors.New("scene: material already owned by another node")
	ErrNodeExists     = errors.New("scene: node already added")
)

// Scene is the ordered list of renderable nodes plus the ordered list of
// lights materials read by index.
type Scene struct {
	nodes  []*Node
	lights []*Node
	owners map[material.Material]*Node
}

func New() *Scene {
	return &Scene{owners: make(map[material.Material]*Node)}
}

// Add appends n to the node list, or to the light list for KindLight. A
// node whose material instance already belongs to another node is rejected.
func (s *Scene) Add(n *Node) error {
	if s.contains(n) {
		return fmt.Errorf("%w: %q", ErrNodeExists, n.Name)
	}
	if n.Material != nil {
		if owner, ok := s.owners[n.Material]; ok {
			return fmt.Errorf("%w: %q wants the material of %q", ErrMaterialShared, n.Name, owner.Name)
		}
		s.owners[n.Material] = n
	}
	if n.Kind == KindLight {
		s.lights = append(s.lights, n)
	} else {
		s.nodes = append(s.nodes, n)
	}
	return nil
}

func (s *Scene) contains(n *Node) bool {
	for _, list := range [][]*Node{s.nodes, s.lights} {
		for _, m := range list {
			if m == n {
				return true
			}
		}
	}
	return false
}

// Remove drops n and releases its material. It reports whether n was found.
func (s *Scene) Remove(n *Node) bool {
	for _, list := range []*[]*Node{&s.nodes, &s.lights} {
		for i, m := range *list {
			if m == n {
				*list = append((*list)[:i], (*list)[i+1:]...)
				if n.Material != nil {
					delete(s.owners, n.Material)
				}
				return true
			}
		}
	}
	return false
}

// Nodes returns the render list in order.
func (s *Scene) Nodes() []*Node { return s.nodes }

// Lights returns the light list in order.
func (s *Scene) Lights() []*Node { return s.lights }

// Find returns the first node or light called name.
func (s *Scene) Find(name string) *Node {
	for _, list := range [][]*Node{s.nodes, s.lights} {
		for _, n := range list {
			if n.Name == name {
				return n
			}
		}
	}
	return nil
}

// Lighting snapshots the light list for one frame.
func (s *Scene) Lighting() material.LightingContext {
	lights := make([]material.Light, len(s.lights))
	for i, n := range s.lights {
		lights[i] = n.Light
	}
	return material.NewLightingContext(lights...)
}
