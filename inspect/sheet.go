package inspect

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

var (
	ErrUnknownProperty = errors.New("inspect: unknown property")
	ErrType            = errors.New("inspect: value has the wrong type")
)

// Kind is the value type of a property.
type Kind int

const (
	KindFloat Kind = iota
	KindVec3
	KindColor
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec3:
		return "vec3"
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Property is one editable field registered on a Sheet.
type Property struct {
	Path string
	Kind Kind
	// Min and Max bound float properties when Min < Max.
	Min, Max float32

	get func() any
	set func(any) error
}

// Value returns the current value: float32, math.Vec3, core.Color or bool.
func (p Property) Value() any { return p.get() }

// Sheet records the fields described to it so they can be read and written
// by path ("Section/Sub/Label") after the Describe call returns. The
// pointers handed to the sheet must outlive it.
type Sheet struct {
	prefix []string
	props  []Property
	index  map[string]int
}

func NewSheet() *Sheet {
	return &Sheet{index: make(map[string]int)}
}

// Describe registers everything d exposes, nested under label when it is
// not empty.
func (s *Sheet) Describe(label string, d Describer) {
	if label == "" {
		d.Describe(s)
		return
	}
	s.Section(label, func() { d.Describe(s) })
}

func (s *Sheet) path(label string) string {
	if len(s.prefix) == 0 {
		return label
	}
	return strings.Join(s.prefix, "/") + "/" + label
}

func (s *Sheet) add(p Property) {
	if i, ok := s.index[p.Path]; ok {
		s.props[i] = p
		return
	}
	s.index[p.Path] = len(s.props)
	s.props = append(s.props, p)
}

func (s *Sheet) Section(label string, body func()) {
	s.prefix = append(s.prefix, label)
	defer func() { s.prefix = s.prefix[:len(s.prefix)-1] }()
	body()
}

func (s *Sheet) Color(label string, c *core.Color) {
	s.add(Property{
		Path: s.path(label),
		Kind: KindColor,
		get:  func() any { return *c },
		set: func(v any) error {
			rgb, err := toVec3(v)
			if err != nil {
				return err
			}
			c.R, c.G, c.B = rgb.X, rgb.Y, rgb.Z
			return nil
		},
	})
}

func (s *Sheet) ColorVec(label string, v *math.Vec3) {
	s.vec3(label, KindColor, v)
}

func (s *Sheet) DragVec3(label string, v *math.Vec3, _ float32) {
	s.vec3(label, KindVec3, v)
}

func (s *Sheet) vec3(label string, kind Kind, v *math.Vec3) {
	s.add(Property{
		Path: s.path(label),
		Kind: kind,
		get:  func() any { return *v },
		set: func(in any) error {
			out, err := toVec3(in)
			if err != nil {
				return err
			}
			*v = out
			return nil
		},
	})
}

func (s *Sheet) Slider(label string, v *float32, min, max float32) {
	s.float(label, v, min, max)
}

func (s *Sheet) Drag(label string, v *float32, _ float32, min, max float32) {
	s.float(label, v, min, max)
}

func (s *Sheet) float(label string, v *float32, min, max float32) {
	s.add(Property{
		Path: s.path(label),
		Kind: KindFloat,
		Min:  min,
		Max:  max,
		get:  func() any { return *v },
		set: func(in any) error {
			f, err := toFloat(in)
			if err != nil {
				return err
			}
			if min < max {
				f = clamp(f, min, max)
			}
			*v = f
			return nil
		},
	})
}

func (s *Sheet) Checkbox(label string, v *bool) {
	s.add(Property{
		Path: s.path(label),
		Kind: KindBool,
		get:  func() any { return *v },
		set: func(in any) error {
			b, ok := in.(bool)
			if !ok {
				return fmt.Errorf("%w: want bool, got %T", ErrType, in)
			}
			*v = b
			return nil
		},
	})
}

func (s *Sheet) Transform(label string, m *math.Mat4) {
	s.Section(label, func() {
		component := func(name string, field func(*Components) *math.Vec3) {
			s.add(Property{
				Path: s.path(name),
				Kind: KindVec3,
				get: func() any {
					c := Decompose(*m)
					return *field(&c)
				},
				set: func(in any) error {
					v, err := toVec3(in)
					if err != nil {
						return err
					}
					c := Decompose(*m)
					*field(&c) = v
					*m = Recompose(c)
					return nil
				},
			})
		}
		component("Position", func(c *Components) *math.Vec3 { return &c.Position })
		component("Rotation", func(c *Components) *math.Vec3 { return &c.Rotation })
		component("Scale", func(c *Components) *math.Vec3 { return &c.Scale })
	})
}

// Properties returns every registered property in registration order.
func (s *Sheet) Properties() []Property {
	out := make([]Property, len(s.props))
	copy(out, s.props)
	return out
}

// Paths returns the registered paths sorted alphabetically.
func (s *Sheet) Paths() []string {
	out := make([]string, 0, len(s.props))
	for _, p := range s.props {
		out = append(out, p.Path)
	}
	sort.Strings(out)
	return out
}

func (s *Sheet) Lookup(path string) (Property, bool) {
	i, ok := s.index[path]
	if !ok {
		return Property{}, false
	}
	return s.props[i], true
}

func (s *Sheet) Get(path string) (any, error) {
	p, ok := s.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, path)
	}
	return p.get(), nil
}

// Set writes v to the property at path. Floats accept any numeric type;
// vectors and colors accept math.Vec3, core.Color, [3]float32 or a
// three-element numeric slice.
func (s *Sheet) Set(path string, v any) error {
	p, ok := s.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, path)
	}
	if err := p.set(v); err != nil {
		return fmt.Errorf("set %q: %w", path, err)
	}
	return nil
}

func clamp(f, min, max float32) float32 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

func toFloat(v any) (float32, error) {
	switch f := v.(type) {
	case float32:
		return f, nil
	case float64:
		return float32(f), nil
	case int:
		return float32(f), nil
	case int64:
		return float32(f), nil
	}
	return 0, fmt.Errorf("%w: want number, got %T", ErrType, v)
}

func toVec3(v any) (math.Vec3, error) {
	switch t := v.(type) {
	case math.Vec3:
		return t, nil
	case core.Color:
		return t.RGB(), nil
	case [3]float32:
		return math.Vec3{X: t[0], Y: t[1], Z: t[2]}, nil
	case []float32:
		if len(t) == 3 {
			return math.Vec3{X: t[0], Y: t[1], Z: t[2]}, nil
		}
	case []float64:
		if len(t) == 3 {
			return math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}, nil
		}
	case []any:
		if len(t) == 3 {
			var out [3]float32
			for i, e := range t {
				f, err := toFloat(e)
				if err != nil {
					return math.Vec3{}, err
				}
				out[i] = f
			}
			return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
		}
	}
	return math.Vec3{}, fmt.Errorf("%w: want 3-vector, got %T", ErrType, v)
}
