package models

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/render"
)

// ErrNoGeometry is returned when a glTF file has no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// GLTFLoader loads glTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Color for primitives without a material base color
	DefaultColor render.Color
	// If > 0, the mesh is centered and scaled so its largest
	// dimension equals FitSize.
	FitSize float64
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{DefaultColor: render.ColorDefault}
}

// LoadGLB loads a glTF or binary glTF (.glb) file with default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a glTF or GLB file and returns a Mesh. All triangle
// primitives of all meshes are merged; node transforms are ignored.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if l.FitSize > 0 {
		mesh.Fit(l.FitSize)
	}
	return mesh, nil
}

// FromDocument converts an already decoded glTF document.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("load %s: %w", name, ErrNoGeometry)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh extracts geometry from a glTF mesh. glTF front faces are
// counter-clockwise, which is the winding Mesh uses, so indices are kept in
// order.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("read positions: accessor %d out of range", posIdx)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		color := l.materialColor(doc, prim.Material)
		base := len(mesh.Vertices)
		for _, p := range positions {
			mesh.AddVertex(float64(p[0]), float64(p[1]), float64(p[2]))
		}

		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("read indices: accessor %d out of range", *prim.Indices)
			}
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.AddFace(color, base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
			}
			continue
		}

		// No indices: sequential triangles
		for i := 0; i+2 < len(positions); i += 3 {
			mesh.AddFace(color, base+i, base+i+1, base+i+2)
		}
	}

	return nil
}

// materialColor returns the base color factor of a material, or the
// loader default.
func (l *GLTFLoader) materialColor(doc *gltf.Document, idx *int) render.Color {
	if idx == nil || *idx < 0 || *idx >= len(doc.Materials) {
		return l.DefaultColor
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := pbr.BaseColorFactor
	return render.RGB(unitToByte(f[0]), unitToByte(f[1]), unitToByte(f[2]))
}

func unitToByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
