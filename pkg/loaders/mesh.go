// Package loaders holds the concrete external collaborators the renderer
// needs at its edges: a glTF/GLB mesh reader and a PNG image writer.
package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/riftwood/pathtracer/pkg/core"
)

// TriangleMeshData is the flat vertex/normal/index triple expected by
// geometry.NewTriangleMesh: xyz-interleaved vertex and normal buffers and
// 0-based triangle indices.
type TriangleMeshData struct {
	Vertices []float64
	Normals  []float64
	Indices  []uint32
}

// LoadMesh opens a glTF or GLB document at path and reads the POSITION and
// NORMAL accessors of its first mesh's first primitive. A primitive lacking
// POSITION is a core.GeometryError; a document with no meshes is as well.
func LoadMesh(path string) (TriangleMeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return TriangleMeshData{}, fmt.Errorf("gltf open %q: %w", path, err)
	}

	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return TriangleMeshData{}, &core.GeometryError{What: fmt.Sprintf("%q contains no mesh primitives", path)}
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return TriangleMeshData{}, &core.GeometryError{What: fmt.Sprintf("%q: mesh primitive has no POSITION attribute", path)}
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return TriangleMeshData{}, fmt.Errorf("gltf positions: %w", err)
	}

	vertices := make([]float64, 0, len(positions)*3)
	for _, p := range positions {
		vertices = append(vertices, float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var normals []float64
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		rawNormals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return TriangleMeshData{}, fmt.Errorf("gltf normals: %w", err)
		}
		normals = make([]float64, 0, len(rawNormals)*3)
		for _, n := range rawNormals {
			normals = append(normals, float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return TriangleMeshData{}, fmt.Errorf("gltf indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return TriangleMeshData{Vertices: vertices, Normals: normals, Indices: indices}, nil
}

// IntIndices converts Indices to the []int signature geometry.NewTriangleMesh
// expects.
func (d TriangleMeshData) IntIndices() []int {
	out := make([]int, len(d.Indices))
	for i, v := range d.Indices {
		out[i] = int(v)
	}
	return out
}
