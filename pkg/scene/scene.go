// Package scene assembles the default flatshade scene: a rotated cube, a
// turned pot or the user supplied models, and a checkerboard floor.
package scene

import (
	"bytes"
	"embed"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/models"
)

//go:embed assets/*.obj
var assets embed.FS

// Default placement and colours.
var (
	CubePosition  = math3d.V3(3, 3, 3)
	CubeRotation  = math3d.V3(45, 45, 45)
	CubeAlbedo    = color.RGBA{42, 170, 255, 255}
	ModelPosition = math3d.V3(0, 0, -8)
	ModelAlbedo   = color.RGBA{1, 204, 3, 255}
	LightDir      = math3d.V3(0, 10, -10)
)

// FloorTiles is the number of tiles along each side of the floor.
const FloorTiles = 20

// ModelSpacing separates consecutive user models along X.
const ModelSpacing = 6

// potProfile is the pot's outline as (radius, height) pairs, base to knob.
var potProfile = [][2]float32{
	{0, 0}, {0.9, 0}, {1.25, 0.25}, {1.5, 0.75}, {1.5, 1.25}, {1.3, 1.75},
	{1.0, 2.0}, {0.8, 2.1}, {0.55, 2.25}, {0.2, 2.35}, {0.15, 2.5}, {0.3, 2.6},
	{0, 2.7},
}

// PotSegments is the number of steps the pot profile is swept through.
const PotSegments = 24

// Options controls what goes into the scene.
type Options struct {
	Models []string // OBJ, glTF or GLB files placed in front of the camera
	Pot    bool     // place the built-in pot when Models is empty
	Floor  bool     // add the checkerboard floor
	Fit    float32  // scale each model so its largest side is Fit; 0 keeps the file's size
	Logger *log.Logger
}

// Scene is the assembled object list.
type Scene struct {
	Objects []*models.Object

	// Selected is the index of the object that input manipulates.
	Selected int
}

// Build loads every mesh and places the objects.
func Build(opts Options) (*Scene, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cube, err := Builtin("cube")
	if err != nil {
		return nil, err
	}
	s := &Scene{}
	s.Objects = append(s.Objects, models.NewObjectFromMesh(cube, models.Transform{
		Position: CubePosition,
		Rotation: CubeRotation,
	}, CubeAlbedo))

	loaded := make(map[string]*models.Mesh)
	for i, path := range opts.Models {
		raw, ok := loaded[path]
		if !ok {
			raw, err = LoadModel(path)
			if err != nil {
				return nil, err
			}
			loaded[path] = raw
		}
		mesh := raw.Clone()
		if opts.Fit > 0 {
			mesh.Normalize(opts.Fit)
		}
		albedo := ModelAlbedo
		if mesh.Material != nil {
			albedo = mesh.Material.BaseColor
		}
		pos := ModelPosition.Add(math3d.V3(float32(i)*ModelSpacing, 0, 0))
		s.Objects = append(s.Objects, models.NewObjectFromMesh(mesh, models.Transform{Position: pos}, albedo))
		logger.Info("loaded model", "path", path, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	}
	if len(opts.Models) == 0 && opts.Pot {
		pot, err := Pot()
		if err != nil {
			return nil, err
		}
		s.Objects = append(s.Objects, models.NewObjectFromMesh(pot, models.Transform{Position: ModelPosition}, ModelAlbedo))
	}
	if len(s.Objects) > 1 {
		s.Selected = 1
	}

	if opts.Floor {
		floor, err := Floor(FloorTiles)
		if err != nil {
			return nil, err
		}
		s.Objects = append(s.Objects, floor...)
	}

	logger.Debug("scene built", "objects", len(s.Objects), "triangles", s.TriangleCount())
	return s, nil
}

// TriangleCount returns the number of triangles across all objects.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, o := range s.Objects {
		n += len(o.Triangles)
	}
	return n
}

// SelectNext moves the selection to the next object, wrapping around.
func (s *Scene) SelectNext() {
	if len(s.Objects) == 0 {
		return
	}
	s.Selected = (s.Selected + 1) % len(s.Objects)
}

// SelectedObject returns the object input manipulates, or nil.
func (s *Scene) SelectedObject() *models.Object {
	if s.Selected < 0 || s.Selected >= len(s.Objects) {
		return nil
	}
	return s.Objects[s.Selected]
}

// Floor lays out n×n one-metre tiles centered on the origin, alternating
// white and black.
func Floor(n int) ([]*models.Object, error) {
	plane, err := Builtin("plane")
	if err != nil {
		return nil, err
	}
	tris := plane.Triangles()
	half := float32(n) / 2

	objs := make([]*models.Object, 0, n*n)
	for z := range n {
		for x := range n {
			albedo := color.RGBA{255, 255, 255, 255}
			if (x+z)%2 != 0 {
				albedo = color.RGBA{0, 0, 0, 255}
			}
			t := models.Transform{Position: math3d.V3(float32(x)-half, 0, float32(z)-half)}
			objs = append(objs, models.NewObject("floor", tris, t, albedo))
		}
	}
	return objs, nil
}

// Builtin returns one of the embedded meshes ("cube" or "plane").
func Builtin(name string) (*models.Mesh, error) {
	data, err := assets.ReadFile("assets/" + name + ".obj")
	if err != nil {
		return nil, errors.Wrapf(err, "builtin mesh %q", name)
	}
	return models.ReadOBJ(name, bytes.NewReader(data))
}

// Pot returns the built-in pot, standing on y = 0 and centred on the Y axis.
func Pot() (*models.Mesh, error) {
	return models.Lathe("pot", potProfile, PotSegments)
}

// LoadModel loads a mesh file, choosing the loader by extension.
func LoadModel(path string) (*models.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return models.LoadOBJ(path)
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	default:
		return nil, errors.Errorf("%s: unsupported model format %q", path, ext)
	}
}
