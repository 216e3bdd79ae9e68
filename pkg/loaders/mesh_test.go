package loaders

import "testing"

func TestLoadMesh_MissingFileReturnsError(t *testing.T) {
	_, err := LoadMesh("/nonexistent/path/to/mesh.gltf")
	if err == nil {
		t.Fatal("expected an error opening a nonexistent glTF file")
	}
}

func TestTriangleMeshData_IntIndices(t *testing.T) {
	d := TriangleMeshData{Indices: []uint32{0, 2, 1, 1, 2, 3}}
	got := d.IntIndices()
	want := []int{0, 2, 1, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}
