package ekq

import "slices"

// grid is a fixed size 2D store whose accessors never fail: reads outside
// the grid return the zero value and writes outside it are dropped.
type grid[T any] struct {
	w, h  int
	cells []T
}

func newGrid[T any](w, h int) grid[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return grid[T]{w: w, h: h, cells: make([]T, w*h)}
}

func (g *grid[T]) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *grid[T]) At(x, y int) T {
	var zero T
	if !g.inside(x, y) {
		return zero
	}
	return g.cells[y*g.w+x]
}

func (g *grid[T]) Put(x, y int, v T) bool {
	if !g.inside(x, y) {
		return false
	}
	g.cells[y*g.w+x] = v
	return true
}

// Ptr gives in-place access to a cell, or nil outside the grid.
func (g *grid[T]) Ptr(x, y int) *T {
	if !g.inside(x, y) {
		return nil
	}
	return &g.cells[y*g.w+x]
}

// sparseGrid is a grid that stores only the cells that were set, so a large
// and mostly empty area costs nothing. Each visits the set cells row by row.
type sparseGrid[T any] struct {
	w, h  int
	cells map[int]T
	order []int
}

func newSparseGrid[T any](w, h int) sparseGrid[T] {
	return sparseGrid[T]{w: max(w, 0), h: max(h, 0), cells: make(map[int]T)}
}

func (g *sparseGrid[T]) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

func (g *sparseGrid[T]) At(x, y int) T {
	var zero T
	if !g.inside(x, y) {
		return zero
	}
	return g.cells[y*g.w+x]
}

func (g *sparseGrid[T]) Put(x, y int, v T) bool {
	if !g.inside(x, y) {
		return false
	}
	if g.cells == nil {
		g.cells = make(map[int]T)
	}
	k := y*g.w + x
	if _, ok := g.cells[k]; !ok {
		i, _ := slices.BinarySearch(g.order, k)
		g.order = slices.Insert(g.order, i, k)
	}
	g.cells[k] = v
	return true
}

func (g *sparseGrid[T]) Len() int { return len(g.order) }

func (g *sparseGrid[T]) Each(fn func(x, y int, v T)) {
	for _, k := range g.order {
		fn(k%g.w, k/g.w, g.cells[k])
	}
}
