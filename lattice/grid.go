package lattice

import "fmt"

// Grid addresses a Lx x Ly x Lz domain surrounded by a one cell halo. Cells are
// stored with x varying fastest.
type Grid struct {
	Lx, Ly, Lz int
	nx, ny, nz int
	// Offsets[i] is the linear index offset to the neighbor along Velocities[i]
	Offsets [Q]int
}

func NewGrid(lx, ly, lz int) (g Grid, err error) {
	if lx < 1 || ly < 1 || lz < 1 {
		err = fmt.Errorf("grid dimensions must be positive, have [%d, %d, %d]", lx, ly, lz)
		return
	}
	g = Grid{
		Lx: lx, Ly: ly, Lz: lz,
		nx: lx + 2, ny: ly + 2, nz: lz + 2,
	}
	for i, e := range Velocities {
		g.Offsets[i] = e[0] + g.nx*(e[1]+g.ny*e[2])
	}
	return
}

// Dims returns the number of cells along each axis including the halo
func (g Grid) Dims() [3]int {
	return [3]int{g.nx, g.ny, g.nz}
}

func (g Grid) NumCells() int {
	return g.nx * g.ny * g.nz
}

func (g Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.nx && y >= 0 && y < g.ny && z >= 0 && z < g.nz
}

// OnHalo is true for cells in the ghost layer
func (g Grid) OnHalo(x, y, z int) bool {
	return x == 0 || y == 0 || z == 0 || x == g.nx-1 || y == g.ny-1 || z == g.nz-1
}

// Index does no bounds checking, see IndexChecked
func (g Grid) Index(x, y, z int) int {
	return x + g.nx*(y+g.ny*z)
}

func (g Grid) IndexChecked(x, y, z int) (ind int, err error) {
	if !g.InBounds(x, y, z) {
		err = fmt.Errorf("cell [%d, %d, %d] is outside of grid [%d, %d, %d]",
			x, y, z, g.nx, g.ny, g.nz)
		return
	}
	return g.Index(x, y, z), nil
}

func (g Grid) Coord(ind int) (x, y, z int) {
	x = ind % g.nx
	ind /= g.nx
	y = ind % g.ny
	z = ind / g.ny
	return
}

// Neighbor is the index of the cell one step along direction i
func (g Grid) Neighbor(ind, i int) int {
	return ind + g.Offsets[i]
}

// Upstream is the cell a population moving along direction i streams from
func (g Grid) Upstream(ind, i int) int {
	return ind - g.Offsets[i]
}
