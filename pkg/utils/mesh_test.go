package utils

import (
	"math"
	"testing"

	"github.com/gonewx/battlefx/internal/colorutil"
)

// TestMeshSectorCounts 验证扇形网格的顶点与索引数量
func TestMeshSectorCounts(t *testing.T) {
	tests := []struct {
		name               string
		rings, segments    int
		wantVerts, wantIdx int
	}{
		{"single ring", 1, 8, 1 + 9, 8 * 3},
		{"three rings", 3, 4, 1 + 3*5, 4*3 + 2*4*6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mesh
			m.AddSector(0, 0, 10, 0, math.Pi, tt.rings, tt.segments, SolidColor(colorutil.White))
			if len(m.Vertices) != tt.wantVerts {
				t.Errorf("vertices: got %d, want %d", len(m.Vertices), tt.wantVerts)
			}
			if len(m.Indices) != tt.wantIdx {
				t.Errorf("indices: got %d, want %d", len(m.Indices), tt.wantIdx)
			}
			for _, idx := range m.Indices {
				if int(idx) >= len(m.Vertices) {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}

func TestMeshSectorDegenerate(t *testing.T) {
	var m Mesh
	m.AddSector(0, 0, 0, 0, math.Pi, 2, 8, SolidColor(colorutil.White))
	m.AddSector(0, 0, 5, 1, 1, 2, 8, SolidColor(colorutil.White))
	if m.Len() != 0 {
		t.Errorf("degenerate sectors should add nothing, got %d vertices", m.Len())
	}
}

func TestMeshRectGrid(t *testing.T) {
	var m Mesh
	m.AddRectGrid(-50, -50, 100, 100, 4, 2, SolidColor(colorutil.Black))
	if got, want := len(m.Vertices), 5*3; got != want {
		t.Errorf("vertices: got %d, want %d", got, want)
	}
	if got, want := len(m.Indices), 4*2*6; got != want {
		t.Errorf("indices: got %d, want %d", got, want)
	}

	m.Reset()
	if m.Len() != 0 || len(m.Indices) != 0 {
		t.Error("Reset should empty the mesh")
	}
}

// TestMeshVertexColors 顶点颜色来自 ColorFunc
func TestMeshVertexColors(t *testing.T) {
	g := NewConcentricGradient(0, 0, 0, 10,
		GradientStop{Offset: 0, Color: colorutil.White},
		GradientStop{Offset: 1, Color: colorutil.Transparent},
	)
	var m Mesh
	m.AddDisc(0, 0, 10, 1, 16, GradientColor(g))

	center := m.Vertices[0]
	if center.ColorA != 1 {
		t.Errorf("center alpha: got %v, want 1", center.ColorA)
	}
	edge := m.Vertices[1]
	if edge.ColorA > 1e-6 {
		t.Errorf("edge alpha: got %v, want 0", edge.ColorA)
	}
}

func TestSegmentsForRadius(t *testing.T) {
	if got := SegmentsForRadius(1); got != 16 {
		t.Errorf("small radius: got %d, want 16", got)
	}
	if got := SegmentsForRadius(1000); got != 96 {
		t.Errorf("large radius: got %d, want 96", got)
	}
}
