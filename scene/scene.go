// Package scene adapts a YAML room description into the geometry and query
// inputs the acoustics façade needs. It is an external-collaborator concern
// per the core spec's scope section — file loading has no home in the core
// engine — and exists only to feed the demo CLI and its tests, the way the
// teacher's project.Config/level.Level feed its own cmd/ entry points.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/10log/BeamTrace2D-sub000/acoustics"
	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

// Vec3 is the YAML wire form of a point; Z is omitted for a 2D scene.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z,omitempty"`
}

func (v Vec3) toGeometry() geometry.Vec3 {
	return geometry.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Wall is a 2D scene wall segment.
type Wall struct {
	ID       int    `yaml:"id"`
	P1       Vec3   `yaml:"p1"`
	P2       Vec3   `yaml:"p2"`
	Material string `yaml:"material,omitempty"`
}

// Polygon is a 3D scene reflecting polygon.
type Polygon struct {
	ID       int    `yaml:"id"`
	Vertices []Vec3 `yaml:"vertices"`
	Material string `yaml:"material,omitempty"`
}

// Scene is the YAML root: a room description plus the build and query
// parameters needed to stand up an acoustics.Room.
type Scene struct {
	// Dimension selects which of Walls or Polygons describes the room:
	// "2d" or "3d".
	Dimension          string    `yaml:"dimension"`
	MaxReflectionOrder int       `yaml:"max_reflection_order"`
	BucketSize         int       `yaml:"bucket_size"`
	Walls              []Wall    `yaml:"walls,omitempty"`
	Polygons           []Polygon `yaml:"polygons,omitempty"`
	Source             Vec3      `yaml:"source"`
	Listener           Vec3      `yaml:"listener"`
}

// Load reads and parses a scene YAML file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: parsing %s: %w", path, err)
	}
	return &s, nil
}

// Build constructs the acoustics.Room described by the scene.
func (s *Scene) Build() (*acoustics.Room, error) {
	opts := acoustics.Options{MaxReflectionOrder: s.MaxReflectionOrder, BucketSize: s.BucketSize}
	source := s.Source.toGeometry()

	switch s.Dimension {
	case "2d":
		walls := make([]surface.Polygon, 0, len(s.Walls))
		for _, w := range s.Walls {
			poly, err := surface.NewWall(w.ID, w.P1.toGeometry(), w.P2.toGeometry(), w.Material)
			if err != nil {
				return nil, fmt.Errorf("scene: wall %d: %w", w.ID, err)
			}
			walls = append(walls, poly)
		}
		return acoustics.BuildRoom2D(walls, &source, opts)
	case "3d":
		polys := make([]surface.Polygon, 0, len(s.Polygons))
		for _, p := range s.Polygons {
			vertices := make([]geometry.Vec3, 0, len(p.Vertices))
			for _, v := range p.Vertices {
				vertices = append(vertices, v.toGeometry())
			}
			poly, err := surface.NewPolygon(p.ID, vertices, p.Material)
			if err != nil {
				return nil, fmt.Errorf("scene: polygon %d: %w", p.ID, err)
			}
			polys = append(polys, poly)
		}
		return acoustics.BuildRoom3D(polys, &source, opts)
	default:
		return nil, fmt.Errorf("scene: dimension %q: %w", s.Dimension, ErrUnknownDimension)
	}
}

// ListenerPoint returns the scene's configured listener position.
func (s *Scene) ListenerPoint() geometry.Vec3 {
	return s.Listener.toGeometry()
}
