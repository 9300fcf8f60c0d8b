package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list with per-vertex normals
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of triangles described by Indices
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Interleaved packs position and normal as 6 floats per vertex
func (g *Geometry) Interleaved() []float32 {
	data := make([]float32, 0, len(g.Positions)*6)
	for i, p := range g.Positions {
		n := g.Normals[i]
		data = append(data, p[0], p[1], p[2], n[0], n[1], n[2])
	}
	return data
}

// NewBoxGeometry builds an axis-aligned box centred at the origin.
// Each face has its own four vertices so normals stay flat.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2
	g := &Geometry{}

	faces := []struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
	}

	for _, f := range faces {
		base := uint32(len(g.Positions))
		for _, c := range f.corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, f.normal)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base+2, base+3, base)
	}

	return g
}

// NewIcosahedronGeometry builds an icosphere of the given radius.
// Every triangle is split detail+1 times per edge and projected onto the
// sphere; normals point outwards from the centre.
func NewIcosahedronGeometry(radius float32, detail int) *Geometry {
	const t = 1.618034 // golden ratio

	base := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	if detail < 0 {
		detail = 0
	}
	cols := detail + 1

	g := &Geometry{}
	emit := func(v mgl32.Vec3) {
		n := v.Normalize()
		g.Positions = append(g.Positions, n.Mul(radius))
		g.Normals = append(g.Normals, n)
		g.Indices = append(g.Indices, uint32(len(g.Indices)))
	}

	for _, f := range faces {
		a, b, c := base[f[0]], base[f[1]], base[f[2]]

		// grid[i][j] lerps from edge a->c to b->c
		grid := make([][]mgl32.Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			aj := a.Add(c.Sub(a).Mul(float32(i) / float32(cols)))
			bj := b.Add(c.Sub(b).Mul(float32(i) / float32(cols)))
			rows := cols - i
			grid[i] = make([]mgl32.Vec3, rows+1)
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i][j] = aj
				} else {
					grid[i][j] = aj.Add(bj.Sub(aj).Mul(float32(j) / float32(rows)))
				}
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					emit(grid[i][k+1])
					emit(grid[i+1][k])
					emit(grid[i][k])
				} else {
					emit(grid[i][k+1])
					emit(grid[i+1][k+1])
					emit(grid[i+1][k])
				}
			}
		}
	}

	return g
}
